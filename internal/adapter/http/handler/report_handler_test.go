package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/odam/tallybot/internal/adapter/http/dto"
)

type reportServiceStub struct {
	buildFn  func(ctx context.Context, recentLimit int) (string, error)
	cachedFn func(ctx context.Context, recentLimit int) (string, error)
}

func (s *reportServiceStub) Build(ctx context.Context, recentLimit int) (string, error) {
	return s.buildFn(ctx, recentLimit)
}

func (s *reportServiceStub) Cached(ctx context.Context, recentLimit int) (string, error) {
	return s.cachedFn(ctx, recentLimit)
}

func TestReportHandler_Get_ServesCached(t *testing.T) {
	h := NewReportHandler(&reportServiceStub{
		cachedFn: func(ctx context.Context, recentLimit int) (string, error) {
			return "cached report", nil
		},
		buildFn: func(ctx context.Context, recentLimit int) (string, error) {
			t.Fatal("Build should not be called without fresh=true")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Report != "cached report" {
		t.Fatalf("expected cached report, got %q", resp.Report)
	}
}

func TestReportHandler_Get_FreshForcesBuild(t *testing.T) {
	var gotLimit int
	h := NewReportHandler(&reportServiceStub{
		cachedFn: func(ctx context.Context, recentLimit int) (string, error) {
			t.Fatal("Cached should not be called with fresh=true")
			return "", nil
		},
		buildFn: func(ctx context.Context, recentLimit int) (string, error) {
			gotLimit = recentLimit
			return "fresh report", nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/report?fresh=true&recent=12", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotLimit != 12 {
		t.Fatalf("expected recent limit 12, got %d", gotLimit)
	}
}
