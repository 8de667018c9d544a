package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "driver")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "driver", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTokenTypeMismatch(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken("user-1", "a@example.com", "client")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "client")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	m := NewManager("secret", time.Hour, 24*time.Hour)
	other := NewManager("different", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "client")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}
