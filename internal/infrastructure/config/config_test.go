package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "1.0.0", cfg.Export.AppVersion)
	assert.Equal(t, 200, cfg.Restore.IntervalMS)
	assert.Equal(t, "/tmp/workspace-exports", cfg.Storage.DebugLogDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RESTORE_INTERVAL_MS", "50")
	t.Setenv("APP_VERSION", "2.0.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 50, cfg.Restore.IntervalMS)
	assert.Equal(t, "2.0.0", cfg.Export.AppVersion)
}

func TestLoadOrDefaultNeverFails(t *testing.T) {
	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Server.Port)
}
