package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/api/middleware"
	"github.com/testbot/testbot-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. A missing
// identity means the route was mounted without Auth and is treated as
// unauthenticated rather than trusted.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
