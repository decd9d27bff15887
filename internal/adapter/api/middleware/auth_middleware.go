package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"armabazar/internal/domain/entity"
	"armabazar/internal/infrastructure/auth"
)

type AuthMiddleware struct {
	tokenManager *auth.TokenManager
}

func NewAuthMiddleware(tokenManager *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		principal, err := m.tokenManager.Verify(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		if principal.IsBanned {
			return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
		}

		c.Set("uid", principal.ID)
		c.Set("principal", principal)

		return next(c)
	}
}

// OptionalAuthenticate resolves the principal when a valid token is present
// and continues anonymously otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return next(c)
		}

		principal, err := m.tokenManager.Verify(parts[1])
		if err != nil {
			return next(c)
		}

		c.Set("uid", principal.ID)
		c.Set("principal", principal)

		return next(c)
	}
}

// CurrentPrincipal returns the authenticated principal or nil.
func CurrentPrincipal(c echo.Context) *entity.Principal {
	principal, ok := c.Get("principal").(*entity.Principal)
	if !ok {
		return nil
	}
	return principal
}
