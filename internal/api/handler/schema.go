package handler

import (
	"encoding/json"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// errorResponse is the envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.Identity `json:"user"`
}

// --- test cases ---

type createTestCaseRequest struct {
	ProjectID    string          `json:"projectId"    validate:"required,max=64"`
	TypeID       string          `json:"typeId"       validate:"required,max=64"`
	AssignedTo   string          `json:"assignedTo"   validate:"max=64"`
	CustomFields json.RawMessage `json:"customFields" swaggertype:"array,object"`
}

type pauseTestCaseRequest struct {
	PausedState json.RawMessage `json:"pausedState" validate:"required" swaggertype:"object"`
}

// --- reports ---

type submitReportRequest struct {
	TestCaseID string          `json:"testCaseId" validate:"required,max=64"`
	ResultData json.RawMessage `json:"resultData" swaggertype:"object"`
}

// --- templates ---

type createTemplateRequest struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Description string          `json:"description"`
	FormFields  json.RawMessage `json:"formFields"  swaggertype:"array,object"`
}
