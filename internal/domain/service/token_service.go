// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating session tokens.
type TokenService interface {
	// GenerateTokens creates a signed access/refresh token pair for an account.
	// Roles are embedded in the access token for stateless authorization.
	GenerateTokens(accountID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks a token string against a secret and returns the parsed token.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
