package auth

import (
	"testing"
	"time"

	"github.com/factoryops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-32ch",
		AccessTokenExpiration: time.Hour,
		Issuer:                "fulfillment-backend-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateToken("user-1", "alice", "supervisor")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "supervisor", claims.Tier)
	assert.Equal(t, "fulfillment-backend-test", claims.Issuer)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-key-32",
		AccessTokenExpiration: time.Hour,
		Issuer:                "fulfillment-backend-test",
	})

	token, _, err := other.GenerateToken("user-1", "alice", "operator")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-32ch",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "fulfillment-backend-test",
	})

	token, _, err := svc.GenerateToken("user-1", "alice", "operator")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_MissingTier(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateToken("user-1", "alice", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrMissingTier)
}
