package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no sources.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.sources)
	assert.Nil(t, b.base)
	assert.Nil(t, b.file)
}

// TestBuild_EmptyBuilder verifies that building with no sources returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesWin verifies the defaults < file < env < flags order.
func TestBuild_LaterSourcesWin(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.file = &StructuredConfig{
		App:     App{Version: "file", LogLevel: "warn"},
		Adapter: Adapter{BaseURL: "http://file:1"},
	}
	b.sources = append(b.sources,
		&StructuredConfig{App: App{Version: "env"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://flag:2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "http://flag:2", cfg.Adapter.BaseURL)
	// untouched by every source
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, uint8(4), cfg.App.ArgonThreads)
}

// TestBuild_ZeroFieldsDoNotOverride verifies that an empty field of a later
// source keeps the earlier value.
func TestBuild_ZeroFieldsDoNotOverride(t *testing.T) {
	b := newConfigBuilder()
	b.sources = append(b.sources,
		&StructuredConfig{Server: Server{HTTPAddress: "localhost:1", RequestTimeout: time.Second}},
		&StructuredConfig{Server: Server{HTTPAddress: "localhost:2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:2", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestWithFile_UsesLastConfiguredPath(t *testing.T) {
	first := writeTempConfig(t, "first.json", `{"app": {"version": "first"}}`)
	second := writeTempConfig(t, "second.yaml", "app:\n  version: second\n")

	b := newConfigBuilder()
	b.sources = append(b.sources,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: second},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.NotNil(t, b.file)
	assert.Equal(t, "second", b.file.App.Version)
}

func TestWithFile_Error(t *testing.T) {
	b := newConfigBuilder()
	b.sources = append(b.sources, &StructuredConfig{ConfigFilePath: "/nonexistent/forkeys.json"})

	_, err := b.withFile().build()
	assert.Error(t, err)
}

func TestWithOverrides_Nil(t *testing.T) {
	b := newConfigBuilder().withOverrides(nil)
	assert.Empty(t, b.sources)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	clearEnvVars(t)
	chdir(t, t.TempDir())

	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, cfg.App.Version)
	assert.Equal(t, "http://"+DefaultServerAddress, cfg.Adapter.BaseURL)
	assert.Equal(t, Crypto{Time: 1, MemoryKiB: 64 * 1024, Threads: 4}, cfg.Crypto)
	assert.NotEmpty(t, cfg.Storage.DSN)
}

func TestGetClientConfig_OverridesWinOverEnvAndFile(t *testing.T) {
	path := writeTempConfig(t, "client.yaml", "storage:\n  db:\n    dsn: from-file.db\nadapter:\n  base_url: http://file:1\n")
	setEnvVars(t, map[string]string{
		"CONFIG":           path,
		"ADAPTER_BASE_URL": "http://env:2",
	})
	chdir(t, t.TempDir())

	cfg, err := GetClientConfig(&StructuredConfig{Storage: Storage{DB: DB{DSN: "memory"}}})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.DSN)
	assert.Equal(t, "http://env:2", cfg.Adapter.BaseURL)
}

func TestGetServerConfig(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_SERVER_KEY":       "env-key",
		"STORAGE_REGISTRY_DSN": "env.db",
	})
	chdir(t, t.TempDir())

	cfg, err := GetServerConfig([]string{"-d", "flag.db", "-a", "localhost:7070"})
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.App.ServerKey)
	assert.Equal(t, "flag.db", cfg.Storage.DSN)
	assert.Equal(t, "localhost:7070", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTP.Port)
}

func TestGetServerConfig_MissingServerKey(t *testing.T) {
	clearEnvVars(t)
	chdir(t, t.TempDir())

	_, err := GetServerConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
