// Package export serializes the ledger for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/odam/tallybot/internal/domain"
)

var header = []string{"id", "username", "amount_inr", "amount_usdt", "timestamp"}

const timestampLayout = "2006-01-02 15:04:05"

// Filename returns the download name for an export taken at now.
func Filename(now time.Time) string {
	return "ledger_export_" + now.Format("20060102_150405") + ".csv"
}

// WriteCSV writes the entries as CSV, header first, in the order given.
func WriteCSV(w io.Writer, entries []*domain.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.DisplayName,
			e.Primary.String(),
			e.Secondary.String(),
			e.CreatedAt.Local().Format(timestampLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
