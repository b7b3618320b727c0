package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/usecase"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const entryColumns = "id, user_id, display_name, amount_primary, amount_secondary, created_at"

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool, retrier *Retrier) *EntryRepository {
	return &EntryRepository{pool: pool, retrier: retrier}
}

// Append inserts the entry and fills in its assigned id and timestamp.
// The secondary amount is stored exactly as passed: it is never recomputed
// here, even though call sites derive it from the current rate.
func (r *EntryRepository) Append(ctx context.Context, entry *domain.Entry) error {
	return r.retrier.Retry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO entries (user_id, display_name, amount_primary, amount_secondary)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			entry.UserID,
			entry.DisplayName,
			decimalToNumeric(entry.Primary),
			decimalToNumeric(entry.Secondary),
		).Scan(&entry.ID, &entry.CreatedAt)
	})
}

// DeleteMostRecent removes the entry with the maximum id and returns it.
func (r *EntryRepository) DeleteMostRecent(ctx context.Context) (int64, error) {
	var id int64

	err := r.retrier.Retry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`DELETE FROM entries
			 WHERE id = (SELECT max(id) FROM entries)
			 RETURNING id`,
		).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNoEntries
		}
		return 0, fmt.Errorf("delete most recent entry: %w", err)
	}

	return id, nil
}

// ResetAll deletes every entry. The settings table is untouched.
func (r *EntryRepository) ResetAll(ctx context.Context) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM entries`)
		return err
	})
}

// Recent returns at most limit entries, newest first.
func (r *EntryRepository) Recent(ctx context.Context, limit int) ([]*domain.Entry, error) {
	return r.queryEntries(ctx, r.pool,
		`SELECT `+entryColumns+` FROM entries ORDER BY id DESC LIMIT $1`, limit)
}

// AllOrderedByID returns the full ledger, ascending by id.
func (r *EntryRepository) AllOrderedByID(ctx context.Context) ([]*domain.Entry, error) {
	return r.queryEntries(ctx, r.pool,
		`SELECT `+entryColumns+` FROM entries ORDER BY id`)
}

// AllOrderedByIDTx is AllOrderedByID inside a caller-managed transaction.
func (r *EntryRepository) AllOrderedByIDTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Entry, error) {
	return r.queryEntries(ctx, tx.(*Tx).PgxTx(),
		`SELECT `+entryColumns+` FROM entries ORDER BY id`)
}

// EntriesForUser returns the newest entries recorded against userID.
func (r *EntryRepository) EntriesForUser(ctx context.Context, userID int64, limit int) ([]*domain.Entry, error) {
	return r.queryEntries(ctx, r.pool,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, limit)
}

func (r *EntryRepository) queryEntries(ctx context.Context, q querier, sql string, args ...any) ([]*domain.Entry, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		e         domain.Entry
		primary   pgtype.Numeric
		secondary pgtype.Numeric
	)

	if err := row.Scan(&e.ID, &e.UserID, &e.DisplayName, &primary, &secondary, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.Primary = numericToDecimal(primary)
	e.Secondary = numericToDecimal(secondary)

	return &e, nil
}
