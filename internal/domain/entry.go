package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents a single signed ledger adjustment.
//
// Primary holds the amount in the source currency (INR); Secondary holds
// the converted amount (USDT), computed once at creation time from the rate
// then in force. Secondary is never recomputed when the rate changes.
type Entry struct {
	CreatedAt   time.Time
	DisplayName string
	Primary     decimal.Decimal
	Secondary   decimal.Decimal
	ID          int64
	UserID      int64
}

// IsRefund reports whether the entry is a debit (negative primary amount).
func (e *Entry) IsRefund() bool {
	return e.Primary.IsNegative()
}

// DefaultRate is the exchange rate seeded on first startup and restored
// when the stored value cannot be parsed.
var DefaultRate = decimal.RequireFromString("93.5")

// Convert derives the secondary amount from a primary amount and rate.
// A zero rate yields a zero secondary amount instead of dividing.
func Convert(primary, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return primary.Div(rate)
}

// ValidateRate checks that a rate is usable as a divisor for future
// conversions. Zero and negative values are rejected.
func ValidateRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	return nil
}

// ValidateDisplayName checks the report label for an entry.
func ValidateDisplayName(name string) error {
	if name == "" {
		return ErrEmptyDisplayName
	}
	return nil
}
