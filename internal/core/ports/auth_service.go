package ports

import (
	"context"

	"github.com/testbot/testbot-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
}

// TokenValidator decodes a bearer token back into the identity it was issued for.
type TokenValidator interface {
	Validate(token string) (*domain.Identity, error)
}
