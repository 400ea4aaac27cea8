package sqldb

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
)

func newReport(id, testCaseID string) *domain.Report {
	return &domain.Report{
		ID:            id,
		TestCaseID:    testCaseID,
		TesterID:      "U1",
		ExecutionDate: time.Now().UTC(),
		Results:       json.RawMessage(`{"passed":true}`),
	}
}

func countReports(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&reportModel{}).Count(&n).Error)
	return n
}

func TestReportRepository_Submit(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	require.NoError(t, db.Create(&testCaseModel{
		ID:          "TEST-1",
		ProjectID:   "P1",
		TemplateID:  "T1",
		Status:      "pending",
		PausedState: nil,
	}).Error)

	repo := NewReportRepository(db)
	receipt, err := repo.Submit(context.Background(), newReport("REP-1", "TEST-1"))
	require.NoError(t, err)
	assert.Equal(t, "REP-1", receipt.ReportID)
	assert.Equal(t, "P1", receipt.ProjectID)
	assert.Equal(t, "C1", receipt.ClientID)

	var tc testCaseModel
	require.NoError(t, db.Where("id = ?", "TEST-1").Take(&tc).Error)
	assert.Equal(t, "completed", tc.Status)
	assert.Nil(t, tc.PausedState)

	var rep reportModel
	require.NoError(t, db.Where("id = ?", "REP-1").Take(&rep).Error)
	assert.Equal(t, "U1", rep.TesterID)
	require.NotNil(t, rep.Results)
	assert.JSONEq(t, `{"passed":true}`, *rep.Results)

	// Completed is terminal: a second report for the same case is rejected.
	_, err = repo.Submit(context.Background(), newReport("REP-2", "TEST-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(1), countReports(t, db))
}

func TestReportRepository_Submit_TestCaseNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	_, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-MISSING"))
	assert.ErrorIs(t, err, domain.ErrTestCaseNotFound)
	assert.Equal(t, "test case not found", err.Error())
	assert.Equal(t, int64(0), countReports(t, db))
}

func TestReportRepository_Submit_ProjectNotFoundLeavesStoreUnchanged(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	require.NoError(t, db.Create(&testCaseModel{
		ID:         "TEST-ORPHAN",
		ProjectID:  "P-GONE",
		TemplateID: "T1",
		Status:     "pending",
	}).Error)

	_, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-ORPHAN"))
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Equal(t, "project not found", err.Error())

	assert.Equal(t, int64(0), countReports(t, db))
	var tc testCaseModel
	require.NoError(t, db.Where("id = ?", "TEST-ORPHAN").Take(&tc).Error)
	assert.Equal(t, "pending", tc.Status)
}

func TestReportRepository_Submit_RollsBackOnCompletionFailure(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	require.NoError(t, db.Create(&testCaseModel{
		ID:           "TEST-1",
		ProjectID:    "P1",
		TemplateID:   "T1",
		Status:       "pending",
		CustomFields: strPtr(`[]`),
	}).Error)

	// Fail every UPDATE of test_cases: the report INSERT has already run
	// inside the transaction when this fires.
	injected := errors.New("injected failure")
	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("test:fail_test_case_update", func(tx *gorm.DB) {
			if tx.Statement.Table == "test_cases" {
				_ = tx.AddError(injected)
			}
		}))

	_, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-1"))
	require.ErrorIs(t, err, injected)

	assert.Equal(t, int64(0), countReports(t, db), "report insert must be rolled back")
	var tc testCaseModel
	require.NoError(t, db.Where("id = ?", "TEST-1").Take(&tc).Error)
	assert.Equal(t, "pending", tc.Status)
}
