package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

// unknownName labels entries whose display name is missing. Matches the
// historical report output for rows imported without a name.
const unknownName = "Unknown"

// UserTotal is one per-user row of the report: all entries sharing a
// display name summed per currency. Grouping is by display name, not user
// id — two accounts with the same name merge into one row.
type UserTotal struct {
	DisplayName string
	Primary     decimal.Decimal
	Secondary   decimal.Decimal
}

// Totals is the bottom block of the report. Refunded values are reported
// as positive magnitudes; Net = Gross - Refunded holds exactly per
// currency.
type Totals struct {
	GrossPrimary      decimal.Decimal
	RefundedPrimary   decimal.Decimal
	NetPrimary        decimal.Decimal
	GrossSecondary    decimal.Decimal
	RefundedSecondary decimal.Decimal
	NetSecondary      decimal.Decimal
}

// UserTotals groups a snapshot of entries by display name and orders the
// groups by summed primary amount, largest first. The sort is stable:
// equal totals keep first-appearance order.
func UserTotals(entries []*domain.Entry) []UserTotal {
	idx := make(map[string]int)
	var totals []UserTotal

	for _, e := range entries {
		name := displayNameOf(e)
		i, ok := idx[name]
		if !ok {
			i = len(totals)
			idx[name] = i
			totals = append(totals, UserTotal{
				DisplayName: name,
				Primary:     decimal.Zero,
				Secondary:   decimal.Zero,
			})
		}
		totals[i].Primary = totals[i].Primary.Add(e.Primary)
		totals[i].Secondary = totals[i].Secondary.Add(e.Secondary)
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].Primary.GreaterThan(totals[b].Primary)
	})

	return totals
}

// ComputeTotals partitions entries on the sign of the primary amount and
// sums each side per currency. An empty snapshot yields all zeros.
func ComputeTotals(entries []*domain.Entry) Totals {
	t := Totals{
		GrossPrimary:      decimal.Zero,
		RefundedPrimary:   decimal.Zero,
		GrossSecondary:    decimal.Zero,
		RefundedSecondary: decimal.Zero,
	}

	for _, e := range entries {
		if e.Primary.IsNegative() {
			t.RefundedPrimary = t.RefundedPrimary.Sub(e.Primary)
			t.RefundedSecondary = t.RefundedSecondary.Sub(e.Secondary)
		} else {
			t.GrossPrimary = t.GrossPrimary.Add(e.Primary)
			t.GrossSecondary = t.GrossSecondary.Add(e.Secondary)
		}
	}

	t.NetPrimary = t.GrossPrimary.Sub(t.RefundedPrimary)
	t.NetSecondary = t.GrossSecondary.Sub(t.RefundedSecondary)

	return t
}

// reorderFront moves the row for lastActive to the head of the list,
// keeping the relative order of every other row. A stable partition, not a
// re-sort: the rule is identity-based, not total-based.
func reorderFront(totals []UserTotal, lastActive string) []UserTotal {
	for i, t := range totals {
		if t.DisplayName != lastActive {
			continue
		}
		out := make([]UserTotal, 0, len(totals))
		out = append(out, totals[i])
		out = append(out, totals[:i]...)
		out = append(out, totals[i+1:]...)
		return out
	}
	return totals
}

func displayNameOf(e *domain.Entry) string {
	if e.DisplayName == "" {
		return unknownName
	}
	return e.DisplayName
}
