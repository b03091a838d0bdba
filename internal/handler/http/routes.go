package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withCORS)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// mail-sending endpoints are rate limited per client
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Post("/api/register", h.register)
		r.Post("/api/send_recovery_email", h.sendRecoveryEmail)
		r.Post("/api/email_test", h.emailTest)
	})

	router.Get("/api/status", h.status)
	router.Get("/api/config", h.frontendConfig)
	router.Get("/api/version", h.version)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
