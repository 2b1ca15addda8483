package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// Write emits a plain export CSV (Date,Type,Category,Amount,Notes).
func Write(w io.Writer, txns []model.LegacyTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Category", "Amount", "Notes"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range txns {
		rec := []string{t.Date, t.Type, t.Category, t.Amount.String(), t.Notes}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing record %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBackup emits a backup CSV: "# Key: Value" metadata lines, then the
// export table extended with ID and CreatedAt columns.
func WriteBackup(w io.Writer, txns []model.LegacyTransaction, now time.Time) error {
	for _, line := range backupMetadata(txns, now) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing metadata: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Category", "Amount", "Notes", "ID", "CreatedAt"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range txns {
		rec := []string{
			t.Date, t.Type, t.Category, t.Amount.String(), t.Notes,
			t.ID, t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing record %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func backupMetadata(txns []model.LegacyTransaction, now time.Time) []string {
	dateRange := "No transactions"
	if len(txns) > 0 {
		dates := make([]string, 0, len(txns))
		for _, t := range txns {
			dates = append(dates, t.Date)
		}
		sort.Strings(dates)
		dateRange = fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
	}
	return []string{
		"# Keepbook Backup",
		fmt.Sprintf("# Backup Date: %s", now.UTC().Format(time.RFC3339)),
		fmt.Sprintf("# Transaction Count: %d", len(txns)),
		fmt.Sprintf("# Date Range: %s", dateRange),
	}
}
