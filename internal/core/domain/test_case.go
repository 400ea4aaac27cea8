package domain

import "encoding/json"

// TestCaseStatus is the lifecycle state of a test case.
type TestCaseStatus string

const (
	StatusPending   TestCaseStatus = "pending"
	StatusPaused    TestCaseStatus = "paused"
	StatusCompleted TestCaseStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// paused -> paused refreshes the stored snapshot; completed is terminal.
var validTransitions = map[TestCaseStatus][]TestCaseStatus{
	StatusPending: {StatusPaused, StatusCompleted},
	StatusPaused:  {StatusPaused, StatusPending},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TestCaseStatus) CanTransitionTo(next TestCaseStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TestCase is a unit of manual test work.
type TestCase struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	TemplateID   string          `json:"template_id"`
	AssignedToID *string         `json:"assigned_to_id"`
	Status       TestCaseStatus  `json:"status"`
	CustomFields json.RawMessage `json:"custom_fields"`
	PausedState  json.RawMessage `json:"paused_state"`
}
