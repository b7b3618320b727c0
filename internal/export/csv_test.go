package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odam/tallybot/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	entries := []*domain.Entry{
		{
			ID:          1,
			UserID:      42,
			DisplayName: "Alice",
			Primary:     decimal.RequireFromString("5000"),
			Secondary:   decimal.RequireFromString("53.475935"),
			CreatedAt:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:          2,
			UserID:      43,
			DisplayName: "Bob",
			Primary:     decimal.RequireFromString("-2000"),
			Secondary:   decimal.RequireFromString("-21.390374"),
			CreatedAt:   time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, entries); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "id,username,amount_inr,amount_usdt,timestamp" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,Alice,5000,53.475935,") {
		t.Fatalf("unexpected first record: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,Bob,-2000,-21.390374,") {
		t.Fatalf("unexpected second record: %q", lines[2])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	if sb.String() != "id,username,amount_inr,amount_usdt,timestamp\n" {
		t.Fatalf("expected header only, got %q", sb.String())
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	if got := Filename(now); got != "ledger_export_20240301_123045.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
