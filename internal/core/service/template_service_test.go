package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

type stubTemplateRepo struct {
	created []*domain.Template
	err     error
}

func (r *stubTemplateRepo) Create(_ context.Context, tpl *domain.Template) error {
	if r.err != nil {
		return r.err
	}
	clone := *tpl
	r.created = append(r.created, &clone)
	return nil
}

func TestTemplateService_Create(t *testing.T) {
	repo := &stubTemplateRepo{}
	svc := NewTemplateService(repo, zerolog.Nop())

	id, err := svc.Create(context.Background(), ports.CreateTemplateInput{
		Name:        "Login flow",
		Description: "Checks login",
		FormFields:  json.RawMessage(`[{"type":"text","label":"User"}]`),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(id, "CUSTOM-") {
		t.Fatalf("unexpected id %q", id)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored template, got %d", len(repo.created))
	}
	tpl := repo.created[0]
	if !tpl.IsCustom || tpl.ID != id || tpl.Name != "Login flow" {
		t.Fatalf("unexpected template: %+v", tpl)
	}
}

func TestTemplateService_Create_Validation(t *testing.T) {
	repo := &stubTemplateRepo{}
	svc := NewTemplateService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateTemplateInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestTemplateService_Create_StoreFailure(t *testing.T) {
	storeErr := errors.New("duplicate key")
	svc := NewTemplateService(&stubTemplateRepo{err: storeErr}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateTemplateInput{Name: "x"}); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
