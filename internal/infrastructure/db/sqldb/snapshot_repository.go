package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

// SnapshotRepository implements ports.SnapshotRepository. Every method
// returns a non-nil slice so empty tables serialise as [].
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) ports.SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	var rows []clientModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}

	out := make([]domain.Client, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Client{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

func (r *SnapshotRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var rows []projectModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}

	out := make([]domain.Project, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Project{ID: m.ID, ClientID: m.ClientID, Name: m.Name})
	}
	return out, nil
}

// ListUsers never selects the password hash.
func (r *SnapshotRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role})
	}
	return out, nil
}

func (r *SnapshotRepository) ListTestCases(ctx context.Context) ([]domain.TestCase, error) {
	var rows []testCaseModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query test cases: %w", err)
	}

	out := make([]domain.TestCase, 0, len(rows))
	for _, m := range rows {
		fields, err := decodeBlob("test_cases", "custom_fields", m.ID, m.CustomFields, emptyList)
		if err != nil {
			return nil, err
		}
		state, err := decodeBlob("test_cases", "paused_state", m.ID, m.PausedState, emptyObject)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TestCase{
			ID:           m.ID,
			ProjectID:    m.ProjectID,
			TemplateID:   m.TemplateID,
			AssignedToID: m.AssignedToID,
			Status:       domain.TestCaseStatus(m.Status),
			CustomFields: fields,
			PausedState:  state,
		})
	}
	return out, nil
}

func (r *SnapshotRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	var rows []reportModel
	if err := r.db.WithContext(ctx).Order("execution_date").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	out := make([]domain.Report, 0, len(rows))
	for _, m := range rows {
		results, err := decodeBlob("reports", "results", m.ID, m.Results, emptyObject)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Report{
			ID:            m.ID,
			TestCaseID:    m.TestCaseID,
			TesterID:      m.TesterID,
			ExecutionDate: m.ExecutionDate.UTC(),
			Results:       results,
		})
	}
	return out, nil
}

func (r *SnapshotRepository) ListTemplates(ctx context.Context, custom bool) ([]domain.Template, error) {
	var rows []templateModel
	if err := r.db.WithContext(ctx).Where("is_custom = ?", custom).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}

	out := make([]domain.Template, 0, len(rows))
	for _, m := range rows {
		fields, err := decodeBlob("test_templates", "form_fields", m.ID, m.FormFields, emptyList)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Template{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			FormFields:  fields,
			IsCustom:    m.IsCustom,
		})
	}
	return out, nil
}
