package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrabridge/internal/config"
	"narrabridge/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "europe", cfg.Narratheque.Region)
	assert.Equal(t, domain.RegionEurope, cfg.Narratheque.PredefinedURL())
	assert.Equal(t, string(domain.PolicyFailFast), cfg.Dispatch.Policy)
	assert.Equal(t, "data", cfg.Dispatch.BinaryProperty)
	assert.Equal(t, "url", cfg.Dispatch.InputFieldName)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenExpiry)
	assert.False(t, cfg.DB.Enabled)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.Email.NotifyTo)
	assert.Equal(t, []string{"http://localhost:5678", "http://127.0.0.1:5678"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NARRA_NARRATHEQUE_REGION", "canada")
	t.Setenv("NARRA_NARRATHEQUE_TOKEN", "stored")
	t.Setenv("NARRA_NARRATHEQUE_TIMEOUT_SECS", "15")
	t.Setenv("NARRA_DISPATCH_POLICY", "collect_all")
	t.Setenv("NARRA_S3_REGION", "eu-west-3")
	t.Setenv("NARRA_EMAIL_NOTIFY_TO", "ops@example.com, ,dev@example.com")
	t.Setenv("NARRA_DB_ENABLED", "true")
	t.Setenv("NARRA_AUTH_FINGERPRINT_KEY", "audit-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.RegionCanada, cfg.Narratheque.PredefinedURL())
	assert.Equal(t, "stored", cfg.Narratheque.Token)
	assert.Equal(t, 15, cfg.Narratheque.TimeoutSecs)
	assert.Equal(t, "collect_all", cfg.Dispatch.Policy)
	assert.True(t, cfg.S3.Enabled())
	assert.True(t, cfg.DB.Enabled)
	assert.Equal(t, []string{"ops@example.com", "dev@example.com"}, cfg.Email.NotifyTo)
}

func TestLoad_PortFromPlatform(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("NARRA_DISPATCH_POLICY", "retry_forever")

	_, err := config.Load()
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}

func TestLoad_AuditRequiresFingerprintKey(t *testing.T) {
	t.Setenv("NARRA_DB_ENABLED", "true")
	t.Setenv("NARRA_AUTH_FINGERPRINT_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.fingerprint_key")
}

func TestNarrathequeConfig_LiteralRegionURL(t *testing.T) {
	cfg := config.NarrathequeConfig{Region: "https://staging.narratheque.io"}
	assert.Equal(t, "https://staging.narratheque.io", cfg.PredefinedURL())
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := config.DBConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "runs", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/runs?sslmode=disable", cfg.DSN())
}
