package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) ports.TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *domain.Template) error {
	m := templateModel{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		FormFields:  blobText(t.FormFields),
		IsCustom:    t.IsCustom,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}
