package ports

import (
	"context"
	"time"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// ReportReceipt describes a committed report submission.
type ReportReceipt struct {
	ReportID   string
	TestCaseID string
	ProjectID  string
	ClientID   string
}

// ReportRepository persists report submissions.
type ReportRepository interface {
	// Submit inserts the report and completes its test case in one
	// transaction. Nothing is written unless both steps succeed.
	Submit(ctx context.Context, report *domain.Report) (*ReportReceipt, error)
}

// AuditRepository keeps an append-only trail of report submissions.
type AuditRepository interface {
	RecordReport(ctx context.Context, entry domain.ReportAudit) error
}

// IdempotencyRecord is what an idempotency key resolves to.
type IdempotencyRecord struct {
	ReportID   string `json:"report_id"`
	TestCaseID string `json:"test_case_id"`
}

// ReportDeduplicator remembers which report an idempotency key produced.
type ReportDeduplicator interface {
	// Lookup returns the record stored for key, or nil when unseen.
	Lookup(ctx context.Context, testerID, key string) (*IdempotencyRecord, error)
	Remember(ctx context.Context, testerID, key string, record IdempotencyRecord, ttl time.Duration) error
}
