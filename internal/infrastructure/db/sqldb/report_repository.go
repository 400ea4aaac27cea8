package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ports.ReportRepository {
	return &ReportRepository{db: db}
}

// Submit inserts the report and completes its test case in a single
// transaction. gorm commits when the callback returns nil and rolls back
// otherwise; either way database/sql hands the connection back to the pool.
func (r *ReportRepository) Submit(ctx context.Context, report *domain.Report) (*ports.ReportReceipt, error) {
	var receipt ports.ReportReceipt

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. The test case must exist and still be open.
		tc, err := findTestCase(tx, report.TestCaseID)
		if err != nil {
			return err
		}

		// 2. Its project must exist; the client id feeds the audit trail.
		var project projectModel
		if err := tx.Select("id", "client_id").Where("id = ?", tc.ProjectID).Take(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProjectNotFound
			}
			return fmt.Errorf("find project: %w", err)
		}

		from := domain.TestCaseStatus(tc.Status)
		if !from.CanTransitionTo(domain.StatusCompleted) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, from, domain.StatusCompleted)
		}

		// 3. Insert the report.
		m := reportModel{
			ID:            report.ID,
			TestCaseID:    report.TestCaseID,
			TesterID:      report.TesterID,
			ExecutionDate: report.ExecutionDate,
			Results:       blobText(report.Results),
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		// 4. Complete the test case and drop any paused snapshot.
		res := tx.Model(&testCaseModel{}).
			Where("id = ? AND status = ?", report.TestCaseID, tc.Status).
			Updates(map[string]interface{}{
				"status":       string(domain.StatusCompleted),
				"paused_state": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("complete test case: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w (status of %s changed concurrently)", domain.ErrInvalidTransition, report.TestCaseID)
		}

		receipt = ports.ReportReceipt{
			ReportID:   report.ID,
			TestCaseID: report.TestCaseID,
			ProjectID:  project.ID,
			ClientID:   project.ClientID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}
