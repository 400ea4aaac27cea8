package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/pkg/metrics"
)

type TestCaseService struct {
	repo ports.TestCaseRepository
	log  zerolog.Logger
}

func NewTestCaseService(repo ports.TestCaseRepository, log zerolog.Logger) *TestCaseService {
	return &TestCaseService{repo: repo, log: log.With().Str("component", "test_cases").Logger()}
}

// Create opens a new pending test case and returns its id.
func (s *TestCaseService) Create(ctx context.Context, input ports.CreateTestCaseInput) (string, error) {
	if input.ProjectID == "" || input.TemplateID == "" {
		return "", fmt.Errorf("%w: projectId and typeId are required", domain.ErrInvalidInput)
	}

	fields, err := compactBlob(input.CustomFields)
	if err != nil {
		return "", err
	}

	id, err := newID(testCaseIDPrefix)
	if err != nil {
		return "", err
	}

	tc := &domain.TestCase{
		ID:           id,
		ProjectID:    input.ProjectID,
		TemplateID:   input.TemplateID,
		Status:       domain.StatusPending,
		CustomFields: fields,
	}
	if input.AssignedToID != "" {
		assignee := input.AssignedToID
		tc.AssignedToID = &assignee
	}

	if err := s.repo.Create(ctx, tc); err != nil {
		s.log.Error().Err(err).Str("project_id", input.ProjectID).Msg("failed to create test case")
		return "", err
	}

	metrics.TestCasesCreatedTotal.Inc()
	s.log.Info().Str("test_case_id", id).Str("project_id", input.ProjectID).Msg("test case created")
	return id, nil
}

// Pause stores the tester's in-progress snapshot and marks the case paused.
// Pausing an already paused case replaces the snapshot.
func (s *TestCaseService) Pause(ctx context.Context, id string, pausedState json.RawMessage) error {
	state, err := compactBlob(pausedState)
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("%w: pausedState is required", domain.ErrInvalidInput)
	}

	return s.transition(ctx, id, domain.StatusPaused, state)
}

// Resume puts a paused case back to pending and drops its snapshot.
func (s *TestCaseService) Resume(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusPending, nil)
}

func (s *TestCaseService) transition(ctx context.Context, id string, to domain.TestCaseStatus, state json.RawMessage) error {
	if err := s.repo.Transition(ctx, id, to, state); err != nil {
		s.log.Warn().Err(err).Str("test_case_id", id).Str("to", string(to)).Msg("status change rejected")
		return err
	}

	metrics.TestCaseTransitionsTotal.WithLabelValues(string(to)).Inc()
	s.log.Info().Str("test_case_id", id).Str("status", string(to)).Msg("test case status changed")
	return nil
}
