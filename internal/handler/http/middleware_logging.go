package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/forkeys/internal/logger"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		// bodies may carry e-mail addresses, only metadata is logged
		log.Info().
			Str("uri", r.URL.Path).
			Str("method", r.Method).
			Str("client", clientAddr(r)).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
