package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrabridge/internal/auth"
	"narrabridge/internal/config"
	"narrabridge/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:      "test-secret",
		Issuer:      "narrabridge",
		Audience:    "dispatch",
		TokenExpiry: time.Hour,
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := auth.NewTokenService(testAuthConfig())

	token, expiresAt, err := svc.Issue("n8n-prod")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "n8n-prod", claims.Subject)
	assert.Equal(t, "narrabridge", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpiry = -time.Minute
	svc := auth.NewTokenService(cfg)

	token, _, err := svc.Issue("n8n-prod")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := auth.NewTokenService(testAuthConfig()).Issue("n8n-prod")
	require.NoError(t, err)

	cfg := testAuthConfig()
	cfg.Secret = "other-secret"
	_, err = auth.NewTokenService(cfg).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_WrongAudience(t *testing.T) {
	token, _, err := auth.NewTokenService(testAuthConfig()).Issue("n8n-prod")
	require.NoError(t, err)

	cfg := testAuthConfig()
	cfg.Audience = "admin"
	_, err = auth.NewTokenService(cfg).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := auth.NewTokenService(testAuthConfig()).Validate("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFingerprint(t *testing.T) {
	a := auth.Fingerprint("key", "token-a")
	assert.Len(t, a, 24)
	assert.Equal(t, a, auth.Fingerprint("key", "token-a"))
	assert.NotEqual(t, a, auth.Fingerprint("key", "token-b"))
	assert.NotEqual(t, a, auth.Fingerprint("other", "token-a"))
	assert.NotContains(t, a, "token")

	assert.Empty(t, auth.Fingerprint("key", ""))
	assert.Len(t, auth.Fingerprint(string(make([]byte, 100)), "t"), 24)
	assert.Len(t, auth.Fingerprint("", "t"), 24)
}
