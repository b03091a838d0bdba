// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging defaults, an optional config file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, key-stretching
	// parameters, directories and the registry server key.
	App App `envPrefix:"APP_"`

	// Storage holds the client vault DSN and the registry DSN.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener, timeout and rate-limit settings of the
	// registry server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the registry server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// SMTP holds outbound mail settings of the registry server.
	SMTP SMTP `envPrefix:"SMTP_"`

	// ConfigFilePath is the optional path to a JSON (.json) or YAML
	// (.yaml, .yml) configuration file.
	// Env: CONFIG
	ConfigFilePath string `env:"CONFIG"`

	// DotEnvPath is an optional .env file loaded into the process
	// environment before env variables are parsed.
	// Env: DOTENV
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values.
type App struct {
	// Version is reported by the status endpoints and the CLI.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ServerKey encrypts registrations at rest on the registry server.
	// Must be kept confidential.
	// Env: APP_SERVER_KEY
	ServerKey string `env:"SERVER_KEY"`

	// ArgonTime, ArgonMemoryKiB and ArgonThreads are the Argon2id cost
	// parameters applied to new ciphertexts.
	// Env: APP_ARGON_TIME, APP_ARGON_MEMORY_KIB, APP_ARGON_THREADS
	ArgonTime      uint32 `env:"ARGON_TIME"`
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`
	ArgonThreads   uint8  `env:"ARGON_THREADS"`

	// BackupDir is where the CLI writes backup files.
	// Env: APP_BACKUP_DIR
	BackupDir string `env:"BACKUP_DIR"`

	// LogDir is where the CLI appends its log file.
	// Env: APP_LOG_DIR
	LogDir string `env:"LOG_DIR"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the client vault store.
	// "memory" keeps it in process, "bolt://<path>" selects bbolt,
	// anything else is a SQLite file path.
	DB DB `envPrefix:"DB_"`

	// Registry is the registry server database.
	// A postgres:// URL selects PostgreSQL, anything else is a SQLite path.
	Registry DB `envPrefix:"REGISTRY_"`
}

// DB holds a data source name.
type DB struct {
	// Env: STORAGE_DB_DSN / STORAGE_REGISTRY_DSN
	DSN string `env:"DSN"`
}

// Server holds network settings of the registry server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the sustained number of requests per second allowed per
	// client address; RateBurst is the bucket size. Zero disables limiting.
	// Env: SERVER_RATE_LIMIT, SERVER_RATE_BURST
	RateLimit float64 `env:"RATE_LIMIT"`
	RateBurst int     `env:"RATE_BURST"`

	// PublicURL is advertised to clients by GET /api/config.
	// Env: SERVER_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// Adapter holds the client's outbound HTTP settings.
type Adapter struct {
	// BaseURL is the registry server root (e.g. "http://127.0.0.1:59999").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// SMTP holds the registry server's mail relay settings. Mail is sent over
// implicit TLS. When Host is empty, mails are only logged.
type SMTP struct {
	// Env: SMTP_HOST
	Host string `env:"HOST"`
	// Env: SMTP_PORT
	Port int `env:"PORT"`
	// Env: SMTP_SENDER_EMAIL
	SenderEmail string `env:"SENDER_EMAIL"`
	// Env: SMTP_SENDER_PASSWORD
	SenderPassword string `env:"SENDER_PASSWORD"`
}
