package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "procure-backend",
	})
}

func testTokenInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "user@plant.test",
		Role:   identity.RoleSecondaryAdmin,
	}
}

func TestGenerateTokenPair(t *testing.T) {
	service := newTestJWTService()
	input := testTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	service := newTestJWTService()
	input := testTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, int(input.Role), claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRefreshToken(t *testing.T) {
	service := newTestJWTService()
	input := testTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestValidateRejectsGarbage(t *testing.T) {
	service := newTestJWTService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "procure-backend",
	})

	pair, err := other.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "procure-backend",
	})

	pair, err := service.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshTokenPair(t *testing.T) {
	service := newTestJWTService()
	input := testTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	renewed, err := service.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(renewed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, int(input.Role), claims.Role)
}

func TestRefreshTokenPairRejectsAccessToken(t *testing.T) {
	service := newTestJWTService()

	pair, err := service.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = service.RefreshTokenPair(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsHelpers(t *testing.T) {
	service := newTestJWTService()
	input := testTokenInput()

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, id)

	assert.False(t, claims.GetIssuedAtTime().IsZero())
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	assert.LessOrEqual(t, claims.GetRemainingTTL(), 15*time.Minute)
}
