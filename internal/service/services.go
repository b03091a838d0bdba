package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/forkeys/internal/adapter"
	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/crypto"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/mailer"
	"github.com/MKhiriev/forkeys/internal/store"
)

// ClientServices groups the vault core services of one local vault.
type ClientServices struct {
	VaultService    VaultService
	RecoveryService RecoveryService
	BackupService   BackupService
	SettingsService SettingsService
}

// NewClientServices wires the vault core over kv. recoveryAdapter may be
// nil when no registry server is configured.
func NewClientServices(ctx context.Context, kv store.KeyValueStore, engine crypto.CipherEngine, recoveryAdapter adapter.RecoveryAdapter, logger *logger.Logger, opts ...VaultOption) (*ClientServices, error) {
	vault, err := NewVaultService(ctx, kv, engine, logger, opts...)
	if err != nil {
		return nil, err
	}
	settings := NewSettingsService(kv, logger)

	return &ClientServices{
		VaultService:    vault,
		RecoveryService: NewRecoveryService(vault, kv, engine, recoveryAdapter, logger),
		BackupService:   NewBackupService(vault, kv, engine, settings, logger),
		SettingsService: settings,
	}, nil
}

// Services groups the registry server services.
type Services struct {
	RegistryService RegistryService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.ServerStorages, cfg *config.ServerConfig, m mailer.Mailer, logger *logger.Logger) (*Services, error) {
	engine := crypto.NewEngine(crypto.Params{
		Time:      cfg.Crypto.Time,
		MemoryKiB: cfg.Crypto.MemoryKiB,
		Threads:   cfg.Crypto.Threads,
	})

	registry, err := NewRegistryService(storages.RegistryRepository, engine, cfg.App, m, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating registry service: %w", err)
	}
	appInfo, err := NewAppInfoService(cfg.App, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		RegistryService: NewRegistryValidationService().Wrap(registry),
		AppInfoService:  appInfo,
	}, nil
}
