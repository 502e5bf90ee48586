package config

import (
	"testing"
	"time"

	"carviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATA_SOURCE", "DATA_FETCH_TIMEOUT", "SESSION_TTL",
		"SELECT_RATE", "SELECT_BURST", "SESSION_MAX", "PPROF_ENABLED", "PPROF_PORT", "THEME_FILE", "ABOUT_FILE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, DefaultDataSource, cfg.Data.Source)
	assert.Equal(t, 30*time.Second, cfg.Data.FetchTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10000, cfg.Session.MaxSessions)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "testdata/cars.csv")
	t.Setenv("DATA_FETCH_TIMEOUT", "5s")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "testdata/cars.csv", cfg.Data.Source)
	assert.Equal(t, 5*time.Second, cfg.Data.FetchTimeout)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
