package service

import (
	"context"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/models"
)

const (
	serverName       = "forkeys registry"
	serverStatus     = "online"
	serverEncryption = "Argon2id + AES-256-GCM"
)

type appInfoService struct {
	appVersion string
	address    string
	publicURL  string

	logger *logger.Logger
}

func NewAppInfoService(app config.ServerApp, server config.Server, logger *logger.Logger) (AppInfoService, error) {
	if app.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: app.Version,
		address:    server.HTTPAddress,
		publicURL:  server.PublicURL,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Status(ctx context.Context) models.ServerStatus {
	return models.ServerStatus{
		Status:     serverStatus,
		Server:     serverName,
		Version:    s.appVersion,
		Encryption: serverEncryption,
		Address:    s.address,
	}
}

// FrontendConfig never exposes secrets such as the server key.
func (s *appInfoService) FrontendConfig(ctx context.Context) models.FrontendConfig {
	return models.FrontendConfig{
		APIBaseURL: s.publicURL,
		Version:    s.appVersion,
	}
}
