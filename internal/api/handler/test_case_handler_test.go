package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

func TestTestCaseHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTestCaseService{
		createFn: func(ctx context.Context, in ports.CreateTestCaseInput) (string, error) {
			if in.ProjectID != "P1" || in.TemplateID != "T1" || in.AssignedToID != "U1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if string(in.CustomFields) != `[{"label":"Browser","value":"Firefox"}]` {
				t.Fatalf("custom fields not forwarded verbatim: %s", in.CustomFields)
			}
			return "TEST-1", nil
		},
	}
	handler := NewTestCaseHandler(stub)

	body := `{"projectId":"P1","typeId":"T1","assignedTo":"U1","customFields":[{"label":"Browser","value":"Firefox"}]}`
	c, rec := newJSONContext(e, http.MethodPost, "/test-cases", strings.NewReader(body))
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["id"] != "TEST-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTestCaseHandler_Create_MissingProject(t *testing.T) {
	e := newTestEcho()
	stub := &stubTestCaseService{
		createFn: func(ctx context.Context, in ports.CreateTestCaseInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewTestCaseHandler(stub)

	c, _ := newJSONContext(e, http.MethodPost, "/test-cases", strings.NewReader(`{"typeId":"T1"}`))
	if err := handler.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTestCaseHandler_Create_StoreFailure(t *testing.T) {
	e := newTestEcho()
	storeErr := errors.New("connection reset")
	stub := &stubTestCaseService{
		createFn: func(ctx context.Context, in ports.CreateTestCaseInput) (string, error) {
			return "", storeErr
		},
	}
	handler := NewTestCaseHandler(stub)

	c, _ := newJSONContext(e, http.MethodPost, "/test-cases", strings.NewReader(`{"projectId":"P1","typeId":"T1"}`))
	err := handler.Create(c)

	var f *Failure
	if !errors.As(err, &f) || f.Message != "error creating test case" {
		t.Fatalf("expected Failure with operation message, got %v", err)
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("failure must wrap the cause")
	}
}

func TestTestCaseHandler_Pause(t *testing.T) {
	e := newTestEcho()
	stub := &stubTestCaseService{
		pauseFn: func(ctx context.Context, id string, state json.RawMessage) error {
			if id != "TEST-1" {
				t.Fatalf("unexpected id %q", id)
			}
			if string(state) != `{"step":3,"notes":"halfway"}` {
				t.Fatalf("unexpected state %s", state)
			}
			return nil
		},
	}
	handler := NewTestCaseHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/test-cases/TEST-1/pause", strings.NewReader(`{"pausedState":{"step":3,"notes":"halfway"}}`))
	c.SetParamNames("id")
	c.SetParamValues("TEST-1")

	if err := handler.Pause(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTestCaseHandler_Pause_MissingState(t *testing.T) {
	e := newTestEcho()
	stub := &stubTestCaseService{
		pauseFn: func(ctx context.Context, id string, state json.RawMessage) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewTestCaseHandler(stub)

	c, _ := newJSONContext(e, http.MethodPut, "/test-cases/TEST-1/pause", strings.NewReader(`{}`))
	c.SetParamNames("id")
	c.SetParamValues("TEST-1")

	if err := handler.Pause(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTestCaseHandler_Resume_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubTestCaseService{
		resumeFn: func(ctx context.Context, id string) error {
			return domain.ErrTestCaseNotFound
		},
	}
	handler := NewTestCaseHandler(stub)

	c, _ := newJSONContext(e, http.MethodPut, "/test-cases/TEST-404/resume", nil)
	c.SetParamNames("id")
	c.SetParamValues("TEST-404")

	if err := handler.Resume(c); !errors.Is(err, domain.ErrTestCaseNotFound) {
		t.Fatalf("expected ErrTestCaseNotFound, got %v", err)
	}
}
