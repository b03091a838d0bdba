package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() ClientConfig {
	return ClientConfig{
		Crypto:  Crypto{Time: 1, MemoryKiB: 64 * 1024, Threads: 4},
		Adapter: ClientAdapter{BaseURL: "http://127.0.0.1:59999", RequestTimeout: time.Second},
		Storage: DB{DSN: "vault.db"},
	}
}

func validServerConfig() ServerConfig {
	return ServerConfig{
		App:     ServerApp{ServerKey: "k"},
		Crypto:  Crypto{Time: 1, MemoryKiB: 64 * 1024, Threads: 4},
		Server:  Server{HTTPAddress: "127.0.0.1:59999", RequestTimeout: time.Second, RateLimit: 1, RateBurst: 5},
		Storage: DB{DSN: "registry.db"},
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		want   error
	}{
		{"valid", func(*ClientConfig) {}, nil},
		{"memory dsn is allowed", func(c *ClientConfig) { c.Storage.DSN = "memory" }, nil},
		{"empty dsn", func(c *ClientConfig) { c.Storage.DSN = " " }, ErrInvalidStorageConfigs},
		{"no timeout", func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"relative url", func(c *ClientConfig) { c.Adapter.BaseURL = "127.0.0.1:59999" }, ErrInvalidAdapterConfigs},
		{"zero argon time", func(c *ClientConfig) { c.Crypto.Time = 0 }, ErrInvalidCryptoConfigs},
		{"memory above cap", func(c *ClientConfig) { c.Crypto.MemoryKiB = maxArgonMemoryKiB + 1 }, ErrInvalidCryptoConfigs},
		{"zero threads", func(c *ClientConfig) { c.Crypto.Threads = 0 }, ErrInvalidCryptoConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		want   error
	}{
		{"valid", func(*ServerConfig) {}, nil},
		{"rate limit disabled", func(c *ServerConfig) { c.Server.RateLimit, c.Server.RateBurst = 0, 0 }, nil},
		{"empty dsn", func(c *ServerConfig) { c.Storage.DSN = "" }, ErrInvalidStorageConfigs},
		{"no address", func(c *ServerConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"no timeout", func(c *ServerConfig) { c.Server.RequestTimeout = 0 }, ErrInvalidServerConfigs},
		{"negative rate", func(c *ServerConfig) { c.Server.RateLimit = -1 }, ErrInvalidServerConfigs},
		{"rate without burst", func(c *ServerConfig) { c.Server.RateBurst = 0 }, ErrInvalidServerConfigs},
		{"no server key", func(c *ServerConfig) { c.App.ServerKey = "" }, ErrInvalidAppConfigs},
		{"smtp without sender", func(c *ServerConfig) { c.SMTP = SMTP{Host: "smtp.example.com", Port: 465} }, ErrInvalidSMTPConfigs},
		{"smtp complete", func(c *ServerConfig) {
			c.SMTP = SMTP{Host: "smtp.example.com", Port: 465, SenderEmail: "a@b.co"}
		}, nil},
		{"bad crypto", func(c *ServerConfig) { c.Crypto.Time = 99 }, ErrInvalidCryptoConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
