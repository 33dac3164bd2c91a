package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "filesystem", cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.API.Latency)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, "webmail", cfg.Session.Issuer)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.Expiry)
	assert.GreaterOrEqual(t, len(cfg.Session.Secret), 32)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WEBMAIL_STORAGE_BACKEND", "sqlite")
	t.Setenv("WEBMAIL_STORAGE_PATH", "/tmp/webmail-test.db")
	t.Setenv("WEBMAIL_API_LATENCY", "0s")
	t.Setenv("WEBMAIL_API_PAGE_SIZE", "50")
	t.Setenv("WEBMAIL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/webmail-test.db", cfg.Storage.Path)
	assert.Equal(t, time.Duration(0), cfg.API.Latency)
	assert.Equal(t, 50, cfg.API.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("WEBMAIL_STORAGE_BACKEND", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "storage.backend")
}

func TestLoad_InvalidLatency(t *testing.T) {
	t.Setenv("WEBMAIL_API_LATENCY", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "api.latency")
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("WEBMAIL_SESSION_SECRET", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "session.secret")
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("WEBMAIL_API_PAGE_SIZE", "-5")
	t.Setenv("WEBMAIL_SESSION_EXPIRY", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.Expiry)
}
