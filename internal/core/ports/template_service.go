package ports

import (
	"context"
	"encoding/json"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// TemplateRepository persists custom test templates.
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.Template) error
}

// CreateTemplateInput carries a custom template definition.
type CreateTemplateInput struct {
	Name        string
	Description string
	FormFields  json.RawMessage
}

type TemplateService interface {
	Create(ctx context.Context, input CreateTemplateInput) (string, error)
}
