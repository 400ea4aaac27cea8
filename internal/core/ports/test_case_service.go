package ports

import (
	"context"
	"encoding/json"
)

// CreateTestCaseInput carries the fields needed to open a new test case.
type CreateTestCaseInput struct {
	ProjectID    string
	TemplateID   string
	AssignedToID string // optional
	CustomFields json.RawMessage
}

// TestCaseService defines the lifecycle operations on a test case.
type TestCaseService interface {
	Create(ctx context.Context, input CreateTestCaseInput) (string, error)
	Pause(ctx context.Context, id string, pausedState json.RawMessage) error
	Resume(ctx context.Context, id string) error
}
