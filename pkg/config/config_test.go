package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
backend:
  base_url: https://gmao.example.org/api
  auth_scheme: Bearer
  timeout: 5s
session:
  ttl: 1h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg := Default()
	require.NoError(t, cfg.LoadYAML(path))

	assert.Equal(t, "https://gmao.example.org/api", cfg.Backend.BaseURL)
	assert.Equal(t, "Bearer", cfg.Backend.AuthScheme)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	// Не указанное в файле остаётся по умолчанию
	assert.Equal(t, "maintenance_session", cfg.Session.CookieName)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadYAML_MissingFile(t *testing.T) {
	cfg := Default()
	err := cfg.LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv_WinsOverYAML(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test/api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_SECURE_COOKIE", "true")

	cfg := Default()
	cfg.Backend.BaseURL = "http://from-yaml/api"
	cfg.applyEnv()

	assert.Equal(t, "http://api.test/api", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.Session.SecureCookie)
}

func TestApplyEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "two")

	cfg := Default()
	cfg.applyEnv()

	assert.Equal(t, 20*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestUsesDefaultSecret(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.UsesDefaultSecret())

	cfg.Session.SecretKey = ""
	assert.True(t, cfg.UsesDefaultSecret())

	t.Setenv("SESSION_SECRET_KEY", "0f3c9a-prod-secret")
	cfg.applyEnv()
	assert.False(t, cfg.UsesDefaultSecret())
}
