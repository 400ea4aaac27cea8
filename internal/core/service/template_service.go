package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
	"github.com/testbot/testbot-api/internal/pkg/metrics"
)

type TemplateService struct {
	repo ports.TemplateRepository
	log  zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, log: log.With().Str("component", "templates").Logger()}
}

// Create stores a custom template. Field definitions are kept as given.
func (s *TemplateService) Create(ctx context.Context, input ports.CreateTemplateInput) (string, error) {
	if input.Name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	fields, err := compactBlob(input.FormFields)
	if err != nil {
		return "", err
	}

	id, err := newID(templateIDPrefix)
	if err != nil {
		return "", err
	}

	tpl := &domain.Template{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		FormFields:  fields,
		IsCustom:    true,
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create template")
		return "", err
	}

	metrics.TemplatesCreatedTotal.Inc()
	s.log.Info().Str("template_id", id).Msg("custom template created")
	return id, nil
}
