package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL", "PORT", "APP_ENV", "REDIS_ADDR",
		"KAFKA_BROKER", "AUDIT_TOPIC", "BACKEND_TIMEOUT", "SESSION_TTL", "REMEMBER_TTL", "CORS_ORIGINS", "RBAC_POLICY_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "https://api.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "backend_url: http://file.test\nport: \"8081\"\nsession_ttl: 2h\napp_env: production\nrbac_policy_file: /etc/dashboard/policy.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test", cfg.BackendURL)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/etc/dashboard/policy.csv", cfg.RBACPolicyFile)
}

func TestLoad_BackendFallbackKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_URL", "http://fallback.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://fallback.test", cfg.BackendURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing backend url", func(t *testing.T) {
		clearEnv(t)
		_, err := Load("")
		assert.ErrorContains(t, err, "NEXT_PUBLIC_BACKEND_URL is required")
	})

	t.Run("relative backend url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_BACKEND_URL", "/api")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://x.test")
		t.Setenv("SESSION_TTL", "forever")
		_, err := Load("")
		assert.ErrorContains(t, err, "SESSION_TTL")
	})

	t.Run("unknown env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://x.test")
		t.Setenv("APP_ENV", "staging")
		_, err := Load("")
		assert.ErrorContains(t, err, "APP_ENV")
	})
}
