package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(7, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	username, ok := decoded.Get("username")
	require.True(t, ok)
	assert.Equal(t, "admin", username)

	tokenType, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)

	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)
}

func TestJWTService_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "tomorrow")

	_, _, err := svc.GenerateAccessToken(1, "admin")
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	ours := NewJWTService("secret-a", "1h")
	theirs := NewJWTService("secret-b", "1h")

	token, _, err := theirs.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = ours.JWTAuth().Decode(token)
	assert.Error(t, err)
}
