package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestJWTManager() *JWTManager {
	return &JWTManager{secret: "test-secret"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager()

	token, err := manager.GenerateAccessJWT("user-1", time.Minute)
	assert.NoError(t, err)

	userID, err := manager.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := newTestJWTManager()

	token, err := manager.GenerateAccessJWT("user-1", -time.Minute)
	assert.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := newTestJWTManager().GenerateAccessJWT("user-1", time.Minute)
	assert.NoError(t, err)

	other := &JWTManager{secret: "different-secret"}
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenBoundToHashToken(t *testing.T) {
	manager := newTestJWTManager()

	token, err := manager.GenerateRefreshJWT("user-1", "hash-token-a", time.Hour)
	assert.NoError(t, err)

	assert.NoError(t, manager.ValidateRefreshToken(token, "hash-token-a"))

	// Rotating the hash token revokes previously issued refresh tokens.
	assert.ErrorIs(t, manager.ValidateRefreshToken(token, "hash-token-b"), ErrInvalidJWTToken)

	userID, err := manager.ExtractUserIDFromRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
