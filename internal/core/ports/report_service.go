package ports

import (
	"context"
	"encoding/json"
)

// SubmitReportInput is the DTO passed from the transport layer to ReportService.
type SubmitReportInput struct {
	TestCaseID     string
	TesterID       string // always taken from the validated token
	Results        json.RawMessage
	IdempotencyKey string // optional
}

// SubmitReportResult is returned after a report is stored.
type SubmitReportResult struct {
	ReportID string
	// AlreadyExisted is true when the Idempotency-Key matched an earlier submission.
	AlreadyExisted bool
}

type ReportService interface {
	Submit(ctx context.Context, input SubmitReportInput) (*SubmitReportResult, error)
}
