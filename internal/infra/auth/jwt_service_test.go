package auth

import (
	"testing"

	"ratinity/config"
	"ratinity/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestTokenService(t)
	accountID := uuid.New()
	roles := entity.Roles{entity.RoleNormalUser}.ToStrings()

	accessToken, refreshToken, err := svc.GenerateTokens(accountID, roles)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	token, err := svc.ValidateToken(accessToken, "test-access-secret")
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, accountID.String(), claims["sub"])
	assert.Equal(t, "access", claims["type"])

	rolesClaim, ok := claims["roles"].([]any)
	require.True(t, ok)
	require.Len(t, rolesClaim, 1)
	assert.Equal(t, entity.RoleNormalUser.String(), rolesClaim[0])
}

func TestJWTService_RefreshTokenCarriesNoRoles(t *testing.T) {
	svc := newTestTokenService(t)

	_, refreshToken, err := svc.GenerateTokens(uuid.New(), []string{"ADMIN"})
	require.NoError(t, err)

	token, err := svc.ValidateToken(refreshToken, "test-refresh-secret")
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
	assert.NotContains(t, claims, "roles")
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	accessToken, _, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken, "other-secret")
	assert.Error(t, err)
}
