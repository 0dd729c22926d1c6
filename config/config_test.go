package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "operation failed"
	testErr := errors.New("internal database error")

	// nil err returns fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release mode hides details
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// no config: treated as development
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "UZS", cfg.Ledger.DefaultCurrency)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  driver: SQLite\n  path: /tmp/ledger.db\njwt:\n  expire_hours: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("LEDGER_LEDGER_DEFAULT_CURRENCY", "USD")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "USD", cfg.Ledger.DefaultCurrency)
	assert.Equal(t, "USD", DefaultCurrency())
}

func TestDefaultCurrency_NoConfig(t *testing.T) {
	GlobalConfig = nil
	assert.Equal(t, "UZS", DefaultCurrency())
}
