package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/pkg/metrics"
)

const idempotencyTTL = 24 * time.Hour

type reportService struct {
	repo  ports.ReportRepository
	dedup ports.ReportDeduplicator // optional
	audit ports.AuditRepository    // optional
	log   zerolog.Logger
	now   func() time.Time
}

// NewReportService returns a ReportService. dedup and audit may be nil, in
// which case idempotency keys are ignored and no audit trail is written.
func NewReportService(
	repo ports.ReportRepository,
	dedup ports.ReportDeduplicator,
	audit ports.AuditRepository,
	log zerolog.Logger,
) ports.ReportService {
	return &reportService{
		repo:  repo,
		dedup: dedup,
		audit: audit,
		log:   log.With().Str("component", "reports").Logger(),
		now:   time.Now,
	}
}

// Submit records the outcome of a test case and completes it.
func (s *reportService) Submit(ctx context.Context, in ports.SubmitReportInput) (*ports.SubmitReportResult, error) {
	start := time.Now()

	if in.TestCaseID == "" {
		return nil, fmt.Errorf("%w: testCaseId is required", domain.ErrInvalidInput)
	}
	if in.TesterID == "" {
		return nil, domain.ErrUnauthenticated
	}

	results, err := compactBlob(in.Results)
	if err != nil {
		return nil, err
	}

	// 1. Idempotent replay: a Redis failure only costs the replay protection.
	if in.IdempotencyKey != "" && s.dedup != nil {
		existing, err := s.dedup.Lookup(ctx, in.TesterID, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, submitting anyway")
		} else if existing != nil {
			if existing.TestCaseID != in.TestCaseID {
				metrics.ReportsSubmittedTotal.WithLabelValues("idempotency_conflict").Inc()
				s.log.Warn().
					Str("idempotency_key", in.IdempotencyKey).
					Str("test_case_id", in.TestCaseID).
					Str("original_test_case_id", existing.TestCaseID).
					Msg("idempotency key reused for another test case")
				return nil, fmt.Errorf("%w (%s)", domain.ErrIdempotencyReused, existing.TestCaseID)
			}
			metrics.ReportsSubmittedTotal.WithLabelValues("replayed").Inc()
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("report_id", existing.ReportID).Msg("idempotent replay")
			return &ports.SubmitReportResult{ReportID: existing.ReportID, AlreadyExisted: true}, nil
		}
	}

	id, err := newID(reportIDPrefix)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:            id,
		TestCaseID:    in.TestCaseID,
		TesterID:      in.TesterID,
		ExecutionDate: s.now().UTC(),
		Results:       results,
	}

	// 2. Insert report + complete test case atomically.
	receipt, err := s.repo.Submit(ctx, report)
	if err != nil {
		metrics.ReportsSubmittedTotal.WithLabelValues(submitFailureReason(err)).Inc()
		metrics.ReportSubmissionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		s.log.Error().Err(err).Str("test_case_id", in.TestCaseID).Msg("report submission rolled back")
		return nil, err
	}

	// 3. Post-commit side effects are best effort.
	if in.IdempotencyKey != "" && s.dedup != nil {
		record := ports.IdempotencyRecord{ReportID: id, TestCaseID: in.TestCaseID}
		if err := s.dedup.Remember(ctx, in.TesterID, in.IdempotencyKey, record, idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}
	if s.audit != nil {
		entry := domain.ReportAudit{
			ReportID:    receipt.ReportID,
			TestCaseID:  receipt.TestCaseID,
			ProjectID:   receipt.ProjectID,
			ClientID:    receipt.ClientID,
			TesterID:    in.TesterID,
			SubmittedAt: report.ExecutionDate,
		}
		if err := s.audit.RecordReport(ctx, entry); err != nil {
			s.log.Warn().Err(err).Str("report_id", id).Msg("failed to write audit entry")
		}
	}

	metrics.ReportsSubmittedTotal.WithLabelValues("created").Inc()
	metrics.ReportSubmissionDuration.WithLabelValues("created").Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("report_id", id).
		Str("test_case_id", in.TestCaseID).
		Str("client_id", receipt.ClientID).
		Str("tester_id", in.TesterID).
		Msg("report submitted")

	return &ports.SubmitReportResult{ReportID: id}, nil
}

func submitFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTestCaseNotFound):
		return "test_case_not_found"
	case errors.Is(err, domain.ErrProjectNotFound):
		return "project_not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "store_error"
	}
}
