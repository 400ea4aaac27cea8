package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := Open(context.Background(), mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), Config{}, zerolog.Nop())
	require.NoError(t, err)

	return db, mock
}

func TestReportRepository_Submit_MockRollbackBetweenInsertAndUpdate(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `test_cases`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).
			AddRow("TEST-1", "P1", "pending"))
	mock.ExpectQuery("SELECT .+ FROM `projects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id"}).AddRow("P1", "C1"))
	mock.ExpectExec("INSERT INTO `reports`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `test_cases` SET").
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete test case")

	// No COMMIT was issued: an unexpected commit would fail this check.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Submit_MockConcurrentCompletionRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `test_cases`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).
			AddRow("TEST-1", "P1", "pending"))
	mock.ExpectQuery("SELECT .+ FROM `projects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id"}).AddRow("P1", "C1"))
	mock.ExpectExec("INSERT INTO `reports`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Another submission completed the case after it was read.
	mock.ExpectExec("UPDATE `test_cases` SET .+ WHERE .*status = \\?").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "TEST-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	receipt, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-2", "TEST-1"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Nil(t, receipt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Submit_MockProjectMissingNeverInserts(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `test_cases`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).
			AddRow("TEST-1", "P-GONE", "pending"))
	mock.ExpectQuery("SELECT .+ FROM `projects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id"}))
	mock.ExpectRollback()

	_, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-1"))
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Submit_MockCommit(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `test_cases`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).
			AddRow("TEST-1", "P1", "pending"))
	mock.ExpectQuery("SELECT .+ FROM `projects`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id"}).AddRow("P1", "C1"))
	mock.ExpectExec("INSERT INTO `reports`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `test_cases` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	receipt, err := NewReportRepository(db).Submit(context.Background(), newReport("REP-1", "TEST-1"))
	require.NoError(t, err)
	assert.Equal(t, "C1", receipt.ClientID)
	require.NoError(t, mock.ExpectationsWereMet())
}
