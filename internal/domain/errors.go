package domain

import "errors"

var (
	// Validation errors
	ErrMalformedToken   = errors.New("token is not a signed number")
	ErrZeroMagnitude    = errors.New("amount magnitude below minimum")
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
	ErrInvalidRate      = errors.New("rate must be positive")

	// Ledger errors
	ErrNoEntries         = errors.New("ledger has no entries")
	ErrUnknownResetToken = errors.New("unknown or already consumed reset token")
)
