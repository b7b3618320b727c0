package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/odam/tallybot/internal/adapter/http/dto"
	"github.com/odam/tallybot/internal/domain"
)

type resetServiceStub struct {
	requestFn func(ctx context.Context) (string, error)
	confirmFn func(ctx context.Context, token string) error
	cancelFn  func(ctx context.Context, token string) error
}

func (s *resetServiceStub) RequestReset(ctx context.Context) (string, error) {
	return s.requestFn(ctx)
}

func (s *resetServiceStub) ConfirmReset(ctx context.Context, token string) error {
	return s.confirmFn(ctx, token)
}

func (s *resetServiceStub) CancelReset(ctx context.Context, token string) error {
	return s.cancelFn(ctx, token)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestResetHandler_Request(t *testing.T) {
	h := NewResetHandler(&resetServiceStub{
		requestFn: func(ctx context.Context) (string, error) {
			return "01HTOKEN", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	rec := httptest.NewRecorder()

	h.Request(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ResetRequestedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "01HTOKEN" {
		t.Fatalf("expected token 01HTOKEN, got %s", resp.Token)
	}
}

func TestResetHandler_Confirm_Success(t *testing.T) {
	var captured string
	h := NewResetHandler(&resetServiceStub{
		confirmFn: func(ctx context.Context, token string) error {
			captured = token
			return nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/reset/01HTOKEN/confirm", nil), "token", "01HTOKEN")
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured != "01HTOKEN" {
		t.Fatalf("expected token to reach the use case, got %q", captured)
	}
}

func TestResetHandler_Confirm_UnknownToken(t *testing.T) {
	h := NewResetHandler(&resetServiceStub{
		confirmFn: func(ctx context.Context, token string) error {
			return domain.ErrUnknownResetToken
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/reset/stale/confirm", nil), "token", "stale")
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResetHandler_Cancel(t *testing.T) {
	var captured string
	h := NewResetHandler(&resetServiceStub{
		cancelFn: func(ctx context.Context, token string) error {
			captured = token
			return nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/reset/01HTOKEN/cancel", nil), "token", "01HTOKEN")
	rec := httptest.NewRecorder()

	h.Cancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured != "01HTOKEN" {
		t.Fatalf("expected token to reach the use case, got %q", captured)
	}
}
