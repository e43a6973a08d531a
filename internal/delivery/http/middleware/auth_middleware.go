package middleware

import (
	"slices"
	"strings"

	"ratinity/config"
	"ratinity/internal/delivery/http/response"
	"ratinity/internal/domain/entity"
	"ratinity/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys used by the authentication middleware.
const (
	contextKeyAccountID = "accountID"
	contextKeyRoles     = "roles"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Failed to parse token claims")
		}

		// Extract account ID
		accountIDStr, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Account ID missing from token")
		}
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID format in token")
		}

		// Extract roles
		rolesClaim, _ := claims["roles"].([]any)
		var roles []string
		for _, r := range rolesClaim {
			if roleStr, ok := r.(string); ok {
				roles = append(roles, roleStr)
			}
		}

		// Set account info on the context for handlers to use
		c.Set(contextKeyAccountID, accountID)
		c.Set(contextKeyRoles, roles)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the account has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := GetRoles(c)
			if !ok {
				return response.Forbidden(c, "PERMISSION_DENIED", "Permission denied: role information missing")
			}

			if !slices.Contains(roles, requiredRole.String()) {
				return response.Forbidden(c, "PERMISSION_DENIED", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// GetAccountID extracts the authenticated account ID set by Authenticate.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(contextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// GetRoles extracts the authenticated account's roles set by Authenticate.
func GetRoles(c echo.Context) ([]string, bool) {
	roles, ok := c.Get(contextKeyRoles).([]string)

	return roles, ok
}

// HasRole reports whether the authenticated account holds the given role.
func HasRole(c echo.Context, role entity.Role) bool {
	roles, ok := GetRoles(c)
	if !ok {
		return false
	}

	return slices.Contains(roles, role.String())
}
