package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Plain renders an amount without thousands separators: whole values have
// no fractional part, everything else gets exactly two digits.
func Plain(d decimal.Decimal) string {
	if isWhole(d) {
		return d.Truncate(0).String()
	}
	return d.StringFixed(2)
}

// Grouped renders an amount with thousands separators, following the same
// whole-number rule as Plain.
func Grouped(d decimal.Decimal) string {
	var sign string
	if d.IsNegative() {
		sign = "-"
	}

	abs := d.Abs()
	var intPart, frac string
	if isWhole(abs) {
		intPart = abs.Truncate(0).String()
	} else {
		s := abs.StringFixed(2)
		i := strings.IndexByte(s, '.')
		intPart, frac = s[:i], s[i:]
	}

	return sign + groupThousands(intPart) + frac
}

func isWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(n + (n-1)/3)

	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
