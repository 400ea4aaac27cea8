package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("access denied, no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrIdempotencyReused  = errors.New("idempotency key already used for another test case")

	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrTestCaseNotFound = fmt.Errorf("test case %w", ErrNotFound)
	ErrProjectNotFound  = fmt.Errorf("project %w", ErrNotFound)
)
