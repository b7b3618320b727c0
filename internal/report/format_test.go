package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"30", "30"},
		{"30.000", "30"},
		{"-200", "-200"},
		{"32.0855614973", "32.09"},
		{"21.39", "21.39"},
		{"-21.39", "-21.39"},
		{"0.004", "0.00"},
		{"93.5", "93.50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Plain(decimal.RequireFromString(tc.in)), "Plain(%s)", tc.in)
	}
}

func TestGrouped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"100", "100"},
		{"1000", "1,000"},
		{"3000", "3,000"},
		{"1234567", "1,234,567"},
		{"-1234567", "-1,234,567"},
		{"1234.5", "1,234.50"},
		{"-1000.25", "-1,000.25"},
		{"999.99", "999.99"},
		{"1000000.001", "1,000,000.00"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Grouped(decimal.RequireFromString(tc.in)), "Grouped(%s)", tc.in)
	}
}
