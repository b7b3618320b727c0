package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/usecase"
)

const rateKey = "rate"

// SettingsRepository implements usecase.SettingsRepository. The rate lives
// as a single text row in the settings table so a malformed value can be
// detected and replaced instead of poisoning every conversion.
type SettingsRepository struct {
	pool        *pgxpool.Pool
	defaultRate decimal.Decimal
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool, defaultRate decimal.Decimal) *SettingsRepository {
	return &SettingsRepository{pool: pool, defaultRate: defaultRate}
}

// GetRate returns the current rate. A missing or malformed stored value is
// healed: the default is persisted and returned.
func (r *SettingsRepository) GetRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := r.readRate(ctx, r.pool)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, errRateUnusable) {
		return decimal.Zero, err
	}

	if err := r.SetRate(ctx, r.defaultRate); err != nil {
		return decimal.Zero, fmt.Errorf("heal rate setting: %w", err)
	}

	return r.defaultRate, nil
}

// GetRateTx reads the rate inside a caller-managed transaction. Healing is
// skipped here: report snapshots run read-only, so an unusable value just
// falls back to the default for this read.
func (r *SettingsRepository) GetRateTx(ctx context.Context, tx usecase.Transaction) (decimal.Decimal, error) {
	rate, err := r.readRate(ctx, tx.(*Tx).PgxTx())
	if err == nil {
		return rate, nil
	}
	if errors.Is(err, errRateUnusable) {
		return r.defaultRate, nil
	}
	return decimal.Zero, err
}

// SetRate stores the rate. Validation happens in the use case; this is a
// plain upsert.
func (r *SettingsRepository) SetRate(ctx context.Context, rate decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		rateKey, rate.String())
	if err != nil {
		return fmt.Errorf("store rate: %w", err)
	}
	return nil
}

// errRateUnusable marks an absent or unparseable stored rate.
var errRateUnusable = errors.New("stored rate unusable")

func (r *SettingsRepository) readRate(ctx context.Context, q querier) (decimal.Decimal, error) {
	var raw string

	err := q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, rateKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, errRateUnusable
		}
		return decimal.Zero, fmt.Errorf("read rate: %w", err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errRateUnusable
	}

	return rate, nil
}
