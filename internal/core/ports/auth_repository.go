package ports

import (
	"context"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// AuthRepository defines the user lookups needed for authentication.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
