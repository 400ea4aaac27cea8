package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// Authorize lets the request through only when policy grants the caller's
// role the given operation. It must run after Auth.
func Authorize(policy domain.Policy, op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(RoleKey).(string)
			if !ok || !policy.Allows(role, op) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
