// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// Bounds mirror the limits the decryptor enforces on embedded parameters.
const (
	maxArgonTime      = 32
	maxArgonMemoryKiB = 1 << 20
)

func (c Crypto) validate() error {
	if c.Time == 0 || c.Time > maxArgonTime {
		return ErrInvalidCryptoConfigs
	}
	if c.MemoryKiB == 0 || c.MemoryKiB > maxArgonMemoryKiB {
		return ErrInvalidCryptoConfigs
	}
	if c.Threads == 0 {
		return ErrInvalidCryptoConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if u, err := url.Parse(cfg.Adapter.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}

	return cfg.Crypto.validate()
}

func (cfg *ServerConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.RateLimit < 0 || (cfg.Server.RateLimit > 0 && cfg.Server.RateBurst < 1) {
		return ErrInvalidServerConfigs
	}

	if cfg.App.ServerKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.SMTP.Host != "" && (cfg.SMTP.Port <= 0 || cfg.SMTP.SenderEmail == "") {
		return ErrInvalidSMTPConfigs
	}

	return cfg.Crypto.validate()
}
