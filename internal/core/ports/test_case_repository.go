package ports

import (
	"context"
	"encoding/json"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// TestCaseRepository defines persistence operations for test cases.
type TestCaseRepository interface {
	Create(ctx context.Context, tc *domain.TestCase) error
	// Transition moves a test case to status `to`, storing pausedState
	// (nil clears the column). It returns domain.ErrTestCaseNotFound for an
	// unknown id and domain.ErrInvalidTransition when the current status does
	// not allow the move.
	Transition(ctx context.Context, id string, to domain.TestCaseStatus, pausedState json.RawMessage) error
}
