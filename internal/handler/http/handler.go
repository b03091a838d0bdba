package http

import (
	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server
	limiter  *clientLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		limiter:  newClientLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:   logger,
	}
}
