package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultServerAddress  = "127.0.0.1:59999"
	DefaultRequestTimeout = 10 * time.Second
	DefaultSMTPPort       = 465
	DefaultVersion        = "1.0.0"
	dataDirName           = "forkeys"
)

// DataDir returns the per-user directory holding the vault, backups and
// logs. It falls back to the working directory when no user config
// directory is available.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, dataDirName)
}

func defaults() *StructuredConfig {
	dir := DataDir()

	return &StructuredConfig{
		App: App{
			Version:        DefaultVersion,
			ArgonTime:      1,
			ArgonMemoryKiB: 64 * 1024,
			ArgonThreads:   4,
			BackupDir:      filepath.Join(dir, "backups"),
			LogDir:         dir,
			LogLevel:       "info",
		},
		Storage: Storage{
			DB:       DB{DSN: filepath.Join(dir, "vault.db")},
			Registry: DB{DSN: "registry.db"},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
			RateLimit:      1,
			RateBurst:      5,
		},
		Adapter: Adapter{
			BaseURL:        "http://" + DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		SMTP: SMTP{
			Port: DefaultSMTPPort,
		},
	}
}
