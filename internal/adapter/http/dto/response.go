package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	DisplayName     string          `json:"display_name"`
	AmountPrimary   decimal.Decimal `json:"amount_primary"`
	AmountSecondary decimal.Decimal `json:"amount_secondary"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		DisplayName:     e.DisplayName,
		AmountPrimary:   e.Primary,
		AmountSecondary: e.Secondary,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// RateResponse represents the exchange rate in API responses.
type RateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

// ReportResponse carries the rendered report text.
type ReportResponse struct {
	Report string `json:"report"`
}

// ResetRequestedResponse carries the confirmation token for a pending reset.
type ResetRequestedResponse struct {
	Token string `json:"token"`
}

// UndoResponse reports which entry an undo removed.
type UndoResponse struct {
	DeletedID int64 `json:"deleted_id"`
}
