package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/infrastructure/metrics"
	"github.com/odam/tallybot/internal/usecase"
	"github.com/odam/tallybot/internal/usecase/mocks"
)

type reportMocks struct {
	txManager    *mocks.MockTransactionManager
	tx           *mocks.MockTransaction
	entryRepo    *mocks.MockEntryRepository
	settingsRepo *mocks.MockSettingsRepository
	cache        *mocks.MockReportCache
}

func newReportUseCase(t *testing.T) (*usecase.ReportUseCase, reportMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := reportMocks{
		txManager:    mocks.NewMockTransactionManager(ctrl),
		tx:           mocks.NewMockTransaction(ctrl),
		entryRepo:    mocks.NewMockEntryRepository(ctrl),
		settingsRepo: mocks.NewMockSettingsRepository(ctrl),
		cache:        mocks.NewMockReportCache(ctrl),
	}

	uc := usecase.NewReportUseCase(
		m.txManager, m.entryRepo, m.settingsRepo, m.cache,
		metrics.NewWithRegistry(prometheus.NewRegistry()),
		zerolog.Nop(),
	)

	return uc, m
}

func TestReportUseCase_Build(t *testing.T) {
	uc, m := newReportUseCase(t)

	entries := []*domain.Entry{
		{
			ID:          1,
			DisplayName: "Alice",
			Primary:     decimal.NewFromInt(1000),
			Secondary:   decimal.NewFromInt(10),
			CreatedAt:   time.Now(),
		},
		{
			ID:          2,
			DisplayName: "Alice",
			Primary:     decimal.NewFromInt(2000),
			Secondary:   decimal.NewFromInt(20),
			CreatedAt:   time.Now(),
		},
	}

	m.txManager.EXPECT().BeginReadOnly(gomock.Any()).Return(m.tx, nil)
	m.entryRepo.EXPECT().AllOrderedByIDTx(gomock.Any(), m.tx).Return(entries, nil)
	m.settingsRepo.EXPECT().GetRateTx(gomock.Any(), m.tx).Return(decimal.NewFromInt(100), nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.cache.EXPECT().Set(gomock.Any(), gomock.Any(), usecase.ReportCacheTTL).Return(nil)

	text, err := uc.Build(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Alice ▶ 3,000 = 30 USDT") {
		t.Errorf("missing per-user row in report:\n%s", text)
	}
	if !strings.Contains(text, "Rate | 汇率: 100") {
		t.Errorf("missing rate line in report:\n%s", text)
	}
}

func TestReportUseCase_Build_CacheFailureIsNonFatal(t *testing.T) {
	uc, m := newReportUseCase(t)

	m.txManager.EXPECT().BeginReadOnly(gomock.Any()).Return(m.tx, nil)
	m.entryRepo.EXPECT().AllOrderedByIDTx(gomock.Any(), m.tx).Return(nil, nil)
	m.settingsRepo.EXPECT().GetRateTx(gomock.Any(), m.tx).Return(domain.DefaultRate, nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
	m.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	text, err := uc.Build(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected cache failure to be swallowed, got %v", err)
	}
	if !strings.Contains(text, "No user totals yet.") {
		t.Errorf("expected empty-ledger placeholder in report:\n%s", text)
	}
}

func TestReportUseCase_Cached(t *testing.T) {
	t.Run("serves cached text", func(t *testing.T) {
		uc, m := newReportUseCase(t)

		m.cache.EXPECT().Get(gomock.Any()).Return("cached report", nil)

		text, err := uc.Cached(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "cached report" {
			t.Errorf("text = %q, want cached report", text)
		}
	})

	t.Run("falls back to a fresh build on miss", func(t *testing.T) {
		uc, m := newReportUseCase(t)

		m.cache.EXPECT().Get(gomock.Any()).Return("", context.DeadlineExceeded)
		m.txManager.EXPECT().BeginReadOnly(gomock.Any()).Return(m.tx, nil)
		m.entryRepo.EXPECT().AllOrderedByIDTx(gomock.Any(), m.tx).Return(nil, nil)
		m.settingsRepo.EXPECT().GetRateTx(gomock.Any(), m.tx).Return(domain.DefaultRate, nil)
		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		text, err := uc.Cached(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "📋 Ledger") {
			t.Errorf("expected freshly built report, got:\n%s", text)
		}
	})
}
