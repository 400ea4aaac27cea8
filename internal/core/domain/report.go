package domain

import (
	"encoding/json"
	"time"
)

// Report is the immutable outcome of a completed test case.
type Report struct {
	ID            string          `json:"id"`
	TestCaseID    string          `json:"test_case_id"`
	TesterID      string          `json:"tester_id"`
	ExecutionDate time.Time       `json:"execution_date"`
	Results       json.RawMessage `json:"results"`
}

// ReportAudit records who completed what, written after a submission commits.
type ReportAudit struct {
	ReportID    string
	TestCaseID  string
	ProjectID   string
	ClientID    string
	TesterID    string
	SubmittedAt time.Time
}
