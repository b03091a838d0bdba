package config

import "errors"

// Validation errors returned when a configuration view is incomplete or
// invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing server key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCryptoConfigs indicates Argon2id parameters outside the
	// range the decryptor accepts.
	ErrInvalidCryptoConfigs = errors.New("invalid key stretching configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidSMTPConfigs indicates a partially configured mail relay.
	ErrInvalidSMTPConfigs = errors.New("invalid smtp configuration")
	// ErrUnsupportedConfigFile indicates a config file with an unknown
	// extension.
	ErrUnsupportedConfigFile = errors.New("unsupported config file type")
)
