package dto

import (
	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/usecase"
)

// RecordEntryRequest represents a request to record a signed adjustment.
// Amount carries the raw signed token, commas and all, so the server is the
// single place that decides what parses.
type RecordEntryRequest struct {
	Amount      string `json:"amount"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput() usecase.RecordAdjustmentInput {
	return usecase.RecordAdjustmentInput{
		RawToken:    r.Amount,
		UserID:      r.UserID,
		DisplayName: r.DisplayName,
	}
}

// SetRateRequest represents a request to replace the exchange rate.
type SetRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}
