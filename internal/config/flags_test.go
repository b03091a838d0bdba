package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 59999},
			expected: ":59999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "127.0.0.1:59999", want: NetAddress{Host: "127.0.0.1", Port: 59999}},
		{name: "all interfaces", input: ":443", want: NetAddress{Host: "", Port: 443}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname not ip", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseServerFlags(t *testing.T) {
	cfg, err := ParseServerFlags([]string{
		"-a", "127.0.0.1:7000",
		"-d", "postgres://localhost/registry",
		"-config", "/etc/forkeys.yaml",
		"-k", "secret",
		"-request-timeout", "20s",
		"-rate-limit", "3",
		"-rate-burst", "6",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/registry", cfg.Storage.Registry.DSN)
	assert.Equal(t, "/etc/forkeys.yaml", cfg.ConfigFilePath)
	assert.Equal(t, "secret", cfg.App.ServerKey)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.InDelta(t, 3.0, cfg.Server.RateLimit, 1e-9)
	assert.Equal(t, 6, cfg.Server.RateBurst)
}

func TestParseServerFlags_NoArgs(t *testing.T) {
	cfg, err := ParseServerFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseServerFlags_Invalid(t *testing.T) {
	_, err := ParseServerFlags([]string{"-a", "nowhere"})
	assert.Error(t, err)

	_, err = ParseServerFlags([]string{"-unknown"})
	assert.Error(t, err)
}
