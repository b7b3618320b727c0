package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/infrastructure/metrics"
)

// LedgerUseCase handles all ledger mutations: recording adjustments,
// undoing the last entry, the two-phase reset, and the rate setting.
type LedgerUseCase struct {
	entryRepo    EntryRepository
	settingsRepo SettingsRepository
	resetStore   ResetStore
	cache        ReportCache
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	entryRepo EntryRepository,
	settingsRepo SettingsRepository,
	resetStore ResetStore,
	cache ReportCache,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		resetStore:   resetStore,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
	}
}

// RecordAdjustmentInput represents one signed adjustment request.
type RecordAdjustmentInput struct {
	RawToken    string
	UserID      int64
	DisplayName string
}

// RecordAdjustment validates the signed token, converts it at the current
// rate and appends the entry. The converted amount is frozen on the entry:
// later rate changes never touch it.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, input RecordAdjustmentInput) (*domain.Entry, error) {
	amount, err := domain.ParseSignedToken(input.RawToken)
	if err != nil {
		uc.metrics.EntriesRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	if err := domain.ValidateDisplayName(input.DisplayName); err != nil {
		uc.metrics.EntriesRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	rate, err := uc.settingsRepo.GetRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rate: %w", err)
	}

	entry := &domain.Entry{
		UserID:      input.UserID,
		DisplayName: input.DisplayName,
		Primary:     amount,
		Secondary:   domain.Convert(amount, rate),
	}

	if err := uc.entryRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	uc.metrics.EntriesRecorded.Inc()
	uc.invalidateCache(ctx)

	return entry, nil
}

// UndoLast deletes the most recent entry and returns its id. Undoing an
// empty ledger returns domain.ErrNoEntries; that is informational, not a
// failure.
func (uc *LedgerUseCase) UndoLast(ctx context.Context) (int64, error) {
	id, err := uc.entryRepo.DeleteMostRecent(ctx)
	if err != nil {
		return 0, err
	}

	uc.metrics.UndoOperations.Inc()
	uc.invalidateCache(ctx)

	return id, nil
}

// RequestReset starts the two-phase reset and returns the confirmation
// token. Nothing is deleted until the token is confirmed.
func (uc *LedgerUseCase) RequestReset(ctx context.Context) (string, error) {
	token := uc.idGen.Generate()
	if err := uc.resetStore.Create(ctx, token); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ConfirmReset consumes the token and clears every entry. Unknown or
// already consumed tokens return domain.ErrUnknownResetToken and change
// nothing.
func (uc *LedgerUseCase) ConfirmReset(ctx context.Context, token string) error {
	ok, err := uc.resetStore.Take(ctx, token)
	if err != nil {
		return fmt.Errorf("take reset token: %w", err)
	}
	if !ok {
		return domain.ErrUnknownResetToken
	}

	if err := uc.entryRepo.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}

	uc.metrics.ResetsCompleted.Inc()
	uc.invalidateCache(ctx)

	return nil
}

// CancelReset discards a pending reset token.
func (uc *LedgerUseCase) CancelReset(ctx context.Context, token string) error {
	ok, err := uc.resetStore.Cancel(ctx, token)
	if err != nil {
		return fmt.Errorf("cancel reset token: %w", err)
	}
	if !ok {
		return domain.ErrUnknownResetToken
	}
	return nil
}

// Rate returns the current exchange rate.
func (uc *LedgerUseCase) Rate(ctx context.Context) (decimal.Decimal, error) {
	return uc.settingsRepo.GetRate(ctx)
}

// SetRate replaces the exchange rate. Only future conversions see the new
// value; stored entries keep their frozen secondary amounts.
func (uc *LedgerUseCase) SetRate(ctx context.Context, rate decimal.Decimal) error {
	if err := domain.ValidateRate(rate); err != nil {
		return err
	}
	return uc.settingsRepo.SetRate(ctx, rate)
}

// Export returns the full ledger, ascending by id, for the caller to
// serialize.
func (uc *LedgerUseCase) Export(ctx context.Context) ([]*domain.Entry, error) {
	return uc.entryRepo.AllOrderedByID(ctx)
}

// Recent lists the newest entries, newest first.
func (uc *LedgerUseCase) Recent(ctx context.Context, limit int) ([]*domain.Entry, error) {
	return uc.entryRepo.Recent(ctx, clampLimit(limit))
}

// EntriesForUser lists the newest entries recorded against a user id.
func (uc *LedgerUseCase) EntriesForUser(ctx context.Context, userID int64, limit int) ([]*domain.Entry, error) {
	return uc.entryRepo.EntriesForUser(ctx, userID, clampLimit(limit))
}

func (uc *LedgerUseCase) invalidateCache(ctx context.Context) {
	// Cache staleness is cosmetic; mutation outcomes never depend on it.
	_ = uc.cache.Invalidate(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func rejectReason(err error) string {
	switch err {
	case domain.ErrMalformedToken:
		return "malformed_token"
	case domain.ErrZeroMagnitude:
		return "zero_magnitude"
	case domain.ErrEmptyDisplayName:
		return "empty_display_name"
	default:
		return "other"
	}
}
