package sqldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

type TestCaseRepository struct {
	db *gorm.DB
}

func NewTestCaseRepository(db *gorm.DB) ports.TestCaseRepository {
	return &TestCaseRepository{db: db}
}

// Create inserts a new test case row.
func (r *TestCaseRepository) Create(ctx context.Context, tc *domain.TestCase) error {
	m := testCaseModel{
		ID:           tc.ID,
		ProjectID:    tc.ProjectID,
		TemplateID:   tc.TemplateID,
		AssignedToID: tc.AssignedToID,
		Status:       string(tc.Status),
		CustomFields: blobText(tc.CustomFields),
		PausedState:  blobText(tc.PausedState),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert test case: %w", err)
	}
	return nil
}

// Transition reads the current status and applies the change with a guard on
// that status, so a concurrent change between read and write is reported as
// an invalid transition rather than silently overwritten.
func (r *TestCaseRepository) Transition(ctx context.Context, id string, to domain.TestCaseStatus, pausedState json.RawMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findTestCase(tx, id)
		if err != nil {
			return err
		}
		from := domain.TestCaseStatus(current.Status)
		if !from.CanTransitionTo(to) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, from, to)
		}

		res := tx.Model(&testCaseModel{}).
			Where("id = ? AND status = ?", id, current.Status).
			Updates(map[string]interface{}{
				"status":       string(to),
				"paused_state": blobText(pausedState),
			})
		if res.Error != nil {
			return fmt.Errorf("update test case status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w (status of %s changed concurrently)", domain.ErrInvalidTransition, id)
		}
		return nil
	})
}

func findTestCase(tx *gorm.DB, id string) (*testCaseModel, error) {
	var m testCaseModel
	if err := tx.Select("id", "project_id", "status").Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTestCaseNotFound
		}
		return nil, fmt.Errorf("find test case: %w", err)
	}
	return &m, nil
}
