package sqldb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testbot/testbot-api/internal/core/domain"
)

func loadTestCase(t *testing.T, repo *TestCaseRepository, id string) testCaseModel {
	t.Helper()
	var m testCaseModel
	require.NoError(t, repo.db.Where("id = ?", id).Take(&m).Error)
	return m
}

func TestTestCaseRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTestCaseRepository(db).(*TestCaseRepository)

	err := repo.Create(context.Background(), &domain.TestCase{
		ID:           "TEST-1",
		ProjectID:    "P1",
		TemplateID:   "T1",
		Status:       domain.StatusPending,
		CustomFields: json.RawMessage(`[{"k":"severity","v":"high"}]`),
	})
	require.NoError(t, err)

	m := loadTestCase(t, repo, "TEST-1")
	assert.Equal(t, "pending", m.Status)
	require.NotNil(t, m.CustomFields)
	assert.Equal(t, `[{"k":"severity","v":"high"}]`, *m.CustomFields)
	assert.Nil(t, m.PausedState)
	assert.Nil(t, m.AssignedToID)

	err = repo.Create(context.Background(), &domain.TestCase{ID: "TEST-1", ProjectID: "P1", TemplateID: "T1", Status: domain.StatusPending})
	assert.Error(t, err, "duplicate ids must be rejected by the store")
}

func TestTestCaseRepository_PauseResumeCycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTestCaseRepository(db).(*TestCaseRepository)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.TestCase{ID: "TEST-1", ProjectID: "P1", TemplateID: "T1", Status: domain.StatusPending}))

	state := json.RawMessage(`{"answers":{"q1":"ok"},"step":2}`)
	require.NoError(t, repo.Transition(ctx, "TEST-1", domain.StatusPaused, state))
	m := loadTestCase(t, repo, "TEST-1")
	assert.Equal(t, "paused", m.Status)
	require.NotNil(t, m.PausedState)
	assert.Equal(t, string(state), *m.PausedState)

	// Pausing again replaces the snapshot.
	require.NoError(t, repo.Transition(ctx, "TEST-1", domain.StatusPaused, json.RawMessage(`{"step":3}`)))
	m = loadTestCase(t, repo, "TEST-1")
	assert.Equal(t, `{"step":3}`, *m.PausedState)

	require.NoError(t, repo.Transition(ctx, "TEST-1", domain.StatusPending, nil))
	m = loadTestCase(t, repo, "TEST-1")
	assert.Equal(t, "pending", m.Status)
	assert.Nil(t, m.PausedState, "resume clears the paused snapshot")

	err := repo.Transition(ctx, "TEST-1", domain.StatusPending, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTestCaseRepository_TransitionErrors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTestCaseRepository(db).(*TestCaseRepository)
	ctx := context.Background()

	err := repo.Transition(ctx, "TEST-MISSING", domain.StatusPaused, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrTestCaseNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, db.Create(&testCaseModel{ID: "TEST-DONE", ProjectID: "P1", TemplateID: "T1", Status: "completed"}).Error)

	err = repo.Transition(ctx, "TEST-DONE", domain.StatusPaused, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	m := loadTestCase(t, repo, "TEST-DONE")
	assert.Equal(t, "completed", m.Status)
	assert.Nil(t, m.PausedState)
}
