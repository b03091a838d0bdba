package http

import (
	"net/http"

	"github.com/MKhiriev/forkeys/internal/utils"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID tags the request with the caller's X-Trace-ID, or a fresh one
// when it is missing or unsafe to log, and attaches a logger carrying it to
// the request context.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	ids := utils.NewTraceIDSource()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := ids.Resolve(r.Header.Get(traceIDHeader))

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx := utils.WithTraceID(l.WithContext(r.Context()), traceID)

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
