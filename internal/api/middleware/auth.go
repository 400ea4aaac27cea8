package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// Auth validates the bearer token and injects the decoded identity into context.
func Auth(tokens ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthenticated
			}

			identity, err := tokens.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(IdentityKey, *identity)
			c.Set(RoleKey, identity.Role)

			return next(c)
		}
	}
}
