package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/adapter/http/dto"
	"github.com/odam/tallybot/internal/domain"
)

type rateServiceStub struct {
	rateFn    func(ctx context.Context) (decimal.Decimal, error)
	setRateFn func(ctx context.Context, rate decimal.Decimal) error
}

func (s *rateServiceStub) Rate(ctx context.Context) (decimal.Decimal, error) {
	return s.rateFn(ctx)
}

func (s *rateServiceStub) SetRate(ctx context.Context, rate decimal.Decimal) error {
	return s.setRateFn(ctx, rate)
}

func TestRateHandler_Get(t *testing.T) {
	h := NewRateHandler(&rateServiceStub{
		rateFn: func(ctx context.Context) (decimal.Decimal, error) {
			return decimal.RequireFromString("93.5"), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/rate", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Rate.Equal(decimal.RequireFromString("93.5")) {
		t.Fatalf("expected rate 93.5, got %s", resp.Rate)
	}
}

func TestRateHandler_Set_Success(t *testing.T) {
	var captured decimal.Decimal
	h := NewRateHandler(&rateServiceStub{
		setRateFn: func(ctx context.Context, rate decimal.Decimal) error {
			captured = rate
			return nil
		},
	})

	body, _ := json.Marshal(dto.SetRateRequest{Rate: decimal.RequireFromString("88.25")})

	req := httptest.NewRequest(http.MethodPut, "/rate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !captured.Equal(decimal.RequireFromString("88.25")) {
		t.Fatalf("expected rate 88.25, got %s", captured)
	}
}

func TestRateHandler_Set_InvalidRate(t *testing.T) {
	h := NewRateHandler(&rateServiceStub{
		setRateFn: func(ctx context.Context, rate decimal.Decimal) error {
			return domain.ErrInvalidRate
		},
	})

	body, _ := json.Marshal(dto.SetRateRequest{Rate: decimal.Zero})

	req := httptest.NewRequest(http.MethodPut, "/rate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
