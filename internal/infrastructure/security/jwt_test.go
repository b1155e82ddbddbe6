package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := tm.Generate("user-123", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	userID, role, err := tm.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "admin", role)

	userID, role, err = tm.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "admin", role)
}

func TestTokenManagerRejectsCrossTokens(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := tm.Generate("user-123", "user")
	require.NoError(t, err)

	// Секреты разные — access не проходит как refresh и наоборот
	_, _, err = tm.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, _, err = tm.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret")

	_, _, err := tm.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, h.Compare(hash, "secret123"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
