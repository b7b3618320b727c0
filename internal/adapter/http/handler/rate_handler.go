package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/adapter/http/dto"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
	SetRate(ctx context.Context, rate decimal.Decimal) error
}

// RateHandler handles exchange rate requests.
type RateHandler struct {
	ledgerUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(ledgerUC RateService) *RateHandler {
	return &RateHandler{ledgerUC: ledgerUC}
}

// Get returns the current exchange rate.
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	rate, err := h.ledgerUC.Rate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{Rate: rate})
}

// Set replaces the exchange rate. Stored entries keep their frozen
// conversions.
func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ledgerUC.SetRate(r.Context(), req.Rate); err != nil {
		writeError(w, mapDomainError(err), "failed to set rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{Rate: req.Rate})
}
