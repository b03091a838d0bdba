package config

import (
	"fmt"
)

// ServerApp holds registry server application settings.
type ServerApp struct {
	Version   string
	ServerKey string
	LogLevel  string
}

// ServerConfig is the registry server configuration view of
// [StructuredConfig].
type ServerConfig struct {
	App    ServerApp
	Crypto Crypto
	Server Server
	// Storage is the registry database.
	Storage DB
	SMTP    SMTP
}

// GetServerConfig builds and validates the server configuration from
// defaults, the config file, the environment and args (the command-line
// flags without the program name).
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withServerFlags(args).
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			Version:   cfg.App.Version,
			ServerKey: cfg.App.ServerKey,
			LogLevel:  cfg.App.LogLevel,
		},
		Crypto:  cryptoFrom(cfg.App),
		Server:  cfg.Server,
		Storage: cfg.Storage.Registry,
		SMTP:    cfg.SMTP,
	}

	return serverCfg, serverCfg.validate()
}
