package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	Version   string
	BackupDir string
	LogDir    string
	LogLevel  string
}

// Crypto holds the Argon2id cost parameters.
type Crypto struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// ClientAdapter holds the client's registry server endpoint.
type ClientAdapter struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ClientConfig is the client configuration view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Crypto  Crypto
	Adapter ClientAdapter
	// Storage is the vault store.
	Storage DB
}

// GetClientConfig builds and validates the client configuration.
// overrides carries values from the CLI flags and wins over every other
// source; it may be nil.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides).
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version:   cfg.App.Version,
			BackupDir: cfg.App.BackupDir,
			LogDir:    cfg.App.LogDir,
			LogLevel:  cfg.App.LogLevel,
		},
		Crypto: cryptoFrom(cfg.App),
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: cfg.Storage.DB,
	}

	return clientCfg, clientCfg.validate()
}

func cryptoFrom(app App) Crypto {
	return Crypto{
		Time:      app.ArgonTime,
		MemoryKiB: app.ArgonMemoryKiB,
		Threads:   app.ArgonThreads,
	}
}
