package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EntriesRecorded prometheus.Counter
	EntriesRejected *prometheus.CounterVec
	UndoOperations  prometheus.Counter
	ResetsCompleted prometheus.Counter

	// Report metrics
	ReportBuilds        prometheus.Counter
	ReportBuildDuration prometheus.Histogram

	// Telegram metrics
	TelegramUpdates *prometheus.CounterVec
}

// New creates all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics on the given registry. Tests pass a
// fresh registry to avoid duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallybot_entries_recorded_total",
			Help: "Total number of ledger entries recorded",
		}),
		EntriesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tallybot_entries_rejected_total",
				Help: "Total number of rejected adjustment tokens by reason",
			},
			[]string{"reason"},
		),
		UndoOperations: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallybot_undo_operations_total",
			Help: "Total number of undo operations",
		}),
		ResetsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallybot_resets_completed_total",
			Help: "Total number of confirmed ledger resets",
		}),
		ReportBuilds: factory.NewCounter(prometheus.CounterOpts{
			Name: "tallybot_report_builds_total",
			Help: "Total number of report builds",
		}),
		ReportBuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tallybot_report_build_duration_seconds",
			Help:    "Duration of report builds",
			Buckets: prometheus.DefBuckets,
		}),
		TelegramUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tallybot_telegram_updates_total",
				Help: "Total telegram updates handled by kind",
			},
			[]string{"kind"},
		),
	}
}
