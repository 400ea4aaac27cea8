package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/testbot/testbot-api/internal/api/middleware"
	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Identity, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

type stubDataService struct {
	snapshotFn func(ctx context.Context) (*domain.Snapshot, error)
}

func (s *stubDataService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return s.snapshotFn(ctx)
}

type stubTestCaseService struct {
	createFn func(ctx context.Context, input ports.CreateTestCaseInput) (string, error)
	pauseFn  func(ctx context.Context, id string, state json.RawMessage) error
	resumeFn func(ctx context.Context, id string) error
}

func (s *stubTestCaseService) Create(ctx context.Context, input ports.CreateTestCaseInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubTestCaseService) Pause(ctx context.Context, id string, state json.RawMessage) error {
	return s.pauseFn(ctx, id, state)
}

func (s *stubTestCaseService) Resume(ctx context.Context, id string) error {
	return s.resumeFn(ctx, id)
}

type stubReportService struct {
	submitFn func(ctx context.Context, input ports.SubmitReportInput) (*ports.SubmitReportResult, error)
}

func (s *stubReportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*ports.SubmitReportResult, error) {
	return s.submitFn(ctx, input)
}

type stubTemplateService struct {
	createFn func(ctx context.Context, input ports.CreateTemplateInput) (string, error)
}

func (s *stubTemplateService) Create(ctx context.Context, input ports.CreateTemplateInput) (string, error) {
	return s.createFn(ctx, input)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id domain.Identity) {
	c.Set(middleware.IdentityKey, id)
	c.Set(middleware.RoleKey, id.Role)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

