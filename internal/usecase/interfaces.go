package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	// Append inserts a new entry, assigning its id and timestamp. The
	// stored secondary amount is exactly the value on the entry, never
	// recomputed.
	Append(ctx context.Context, entry *domain.Entry) error
	// DeleteMostRecent removes the entry with the highest id and returns
	// its id. Returns domain.ErrNoEntries when the ledger is empty.
	DeleteMostRecent(ctx context.Context) (int64, error)
	// ResetAll deletes every entry. The rate setting is untouched.
	ResetAll(ctx context.Context) error
	Recent(ctx context.Context, limit int) ([]*domain.Entry, error)
	AllOrderedByID(ctx context.Context) ([]*domain.Entry, error)
	AllOrderedByIDTx(ctx context.Context, tx Transaction) ([]*domain.Entry, error)
	EntriesForUser(ctx context.Context, userID int64, limit int) ([]*domain.Entry, error)
}

// SettingsRepository defines data access for the rate setting.
type SettingsRepository interface {
	// GetRate returns the current rate, seeding or restoring the default
	// when the stored value is absent or malformed.
	GetRate(ctx context.Context) (decimal.Decimal, error)
	GetRateTx(ctx context.Context, tx Transaction) (decimal.Decimal, error)
	SetRate(ctx context.Context, rate decimal.Decimal) error
}

// ResetStore keeps pending reset confirmation tokens. Tokens have no
// expiry: the state machine defines no timeout for PendingConfirmation.
type ResetStore interface {
	Create(ctx context.Context, token string) error
	// Take consumes the token, reporting whether it existed.
	Take(ctx context.Context, token string) (bool, error)
	Cancel(ctx context.Context, token string) (bool, error)
}

// ReportCache holds the last rendered report text.
type ReportCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, text string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	// BeginReadOnly starts a read-only transaction so a report build sees
	// one consistent snapshot across its queries.
	BeginReadOnly(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique tokens.
type IDGenerator interface {
	Generate() string
}
