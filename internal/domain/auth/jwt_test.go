package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "alice@example.com", []string{"accountant"}, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "alice@example.com", uc.Email)
	assert.Equal(t, []string{"accountant"}, uc.Roles)
	assert.False(t, uc.IsAdmin)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("user-1", "a@example.com", nil, false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, true)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestUser_LoginLockout(t *testing.T) {
	u := NewUser("bob@example.com", "hash")

	require.NoError(t, u.CanLogin())

	for i := 0; i < 5; i++ {
		u.RecordFailedLogin(5, 15*time.Minute)
	}
	assert.True(t, u.IsLocked())
	assert.Error(t, u.CanLogin())

	u.RecordSuccessfulLogin()
	assert.False(t, u.IsLocked())
	require.NoError(t, u.CanLogin())
	assert.NotNil(t, u.LastLoginAt)
}
