package usecase

import "time"

const (
	// DefaultRecentLimit is how many entries the recent-entries section
	// shows when the caller does not say otherwise.
	DefaultRecentLimit = 10

	// MaxListLimit caps /ledger and /myentries style listings.
	MaxListLimit = 100

	// ReportCacheTTL bounds how stale a cached report may get between
	// mutations.
	ReportCacheTTL = 30 * time.Second
)
