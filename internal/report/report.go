// Package report turns a snapshot of ledger entries into the published
// three-section text report: per-user totals on top, recent entries in the
// middle, totals block at the bottom.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

const (
	headerLine   = "📋 Ledger"
	recentHeader = "➡️ 已入账 (Recent):"

	noUserTotalsLine    = "No user totals yet."
	noRecentEntriesLine = "No recent entries."

	timestampLayout = "2006-01-02 15:04:05"
)

// Snapshot is everything a report build reads: the full entry list in id
// order (ascending), the rate in force, and how many recent entries to
// show.
type Snapshot struct {
	Entries     []*domain.Entry
	Rate        decimal.Decimal
	RecentLimit int
}

// Recent returns the newest entries of the snapshot, newest first, at most
// RecentLimit of them.
func (s Snapshot) Recent() []*domain.Entry {
	limit := s.RecentLimit
	if limit <= 0 || limit > len(s.Entries) {
		limit = len(s.Entries)
	}

	out := make([]*domain.Entry, 0, limit)
	for i := len(s.Entries) - 1; i >= len(s.Entries)-limit; i-- {
		out = append(out, s.Entries[i])
	}
	return out
}

// Render builds the full report text.
func Render(s Snapshot) string {
	recent := s.Recent()
	totals := UserTotals(s.Entries)
	if len(recent) > 0 {
		totals = reorderFront(totals, displayNameOf(recent[0]))
	}
	sums := ComputeTotals(s.Entries)

	lines := make([]string, 0, 16+len(totals)+3*len(recent))
	lines = append(lines, headerLine, "")

	if len(totals) > 0 {
		for _, t := range totals {
			lines = append(lines, fmt.Sprintf("%s ▶ %s = %s USDT",
				t.DisplayName, Grouped(t.Primary), Plain(t.Secondary)))
		}
	} else {
		lines = append(lines, noUserTotalsLine)
	}
	lines = append(lines, "")

	lines = append(lines, recentHeader)
	if len(recent) > 0 {
		for _, e := range recent {
			lines = append(lines, formatTimestamp(e.CreatedAt)+" |")
			lines = append(lines, fmt.Sprintf("%s | %s%s = %s USDT",
				displayNameOf(e), signOf(e.Primary),
				Grouped(e.Primary.Abs()), Plain(e.Secondary.Abs())))
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, noRecentEntriesLine, "")
	}

	lines = append(lines,
		"💰 Total INR (Gross) | 总入款: "+Grouped(sums.GrossPrimary),
		"↩️ Refunded INR | 已退款: "+Grouped(sums.RefundedPrimary),
		"🔢 Net INR | 实际入款: "+Grouped(sums.NetPrimary),
		"",
		"💲 Total USDT (Gross) | 总 USDT: "+Plain(sums.GrossSecondary),
		"↩️ Refunded USDT | 已退款 USDT: "+Plain(sums.RefundedSecondary),
		"🔢 Net USDT | 实际 USDT: "+Plain(sums.NetSecondary),
		"",
		"Rate | 汇率: "+Plain(s.Rate),
	)

	return strings.Join(lines, "\n")
}

// SignOf returns the display sign for a stored amount: '+' for credits,
// '-' for refunds.
func SignOf(amount decimal.Decimal) string {
	return signOf(amount)
}

func signOf(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-"
	}
	return "+"
}

func formatTimestamp(ts time.Time) string {
	return ts.Local().Format(timestampLayout)
}
