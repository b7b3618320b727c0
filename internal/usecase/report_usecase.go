package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/odam/tallybot/internal/infrastructure/metrics"
	"github.com/odam/tallybot/internal/report"
)

// ReportUseCase builds the published report from a consistent snapshot of
// the ledger.
type ReportUseCase struct {
	txManager    TransactionManager
	entryRepo    EntryRepository
	settingsRepo SettingsRepository
	cache        ReportCache
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	settingsRepo SettingsRepository,
	cache ReportCache,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		txManager:    txManager,
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		metrics:      m,
		logger:       logger,
	}
}

// Build renders a fresh report. Entries and rate are read inside one
// read-only transaction so the three sections reflect the same moment.
func (uc *ReportUseCase) Build(ctx context.Context, recentLimit int) (string, error) {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	start := time.Now()

	tx, err := uc.txManager.BeginReadOnly(ctx)
	if err != nil {
		return "", fmt.Errorf("begin report snapshot: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only

	entries, err := uc.entryRepo.AllOrderedByIDTx(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("load entries: %w", err)
	}

	rate, err := uc.settingsRepo.GetRateTx(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("load rate: %w", err)
	}

	text := report.Render(report.Snapshot{
		Entries:     entries,
		Rate:        rate,
		RecentLimit: recentLimit,
	})

	uc.metrics.ReportBuilds.Inc()
	uc.metrics.ReportBuildDuration.Observe(time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, text, ReportCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to cache report")
	}

	return text, nil
}

// Cached returns the last rendered report when it is still fresh, building
// a new one otherwise.
func (uc *ReportUseCase) Cached(ctx context.Context, recentLimit int) (string, error) {
	if text, err := uc.cache.Get(ctx); err == nil && text != "" {
		return text, nil
	}
	return uc.Build(ctx, recentLimit)
}
