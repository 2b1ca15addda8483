// Package importer reads and writes the legacy flat-file CSV formats:
// plain exports (Date,Type,Category,Amount,Notes) and backup files that
// prefix the same table with "# Key: Value" metadata lines.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/id"
	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/validate"
)

// columns maps header positions. -1 means the column is absent.
type columns struct {
	date      int
	txnType   int
	category  int
	amount    int
	notes     int
	id        int
	createdAt int
}

// ParseResult is the outcome of parsing a CSV: the records that survived
// plus a count of rows skipped for a missing date or unparseable amount.
type ParseResult struct {
	Transactions []model.LegacyTransaction
	Skipped      int
}

// BackupFile is a parsed backup: its comment metadata and the records.
type BackupFile struct {
	Metadata map[string]string
	ParseResult
}

// Parse reads a plain legacy export CSV. Headers are matched
// case-insensitively; Amount tolerates a currency suffix like
// "Amount (USD)". Rows with no usable date or amount are skipped,
// not fatal.
func Parse(r io.Reader) (ParseResult, error) {
	return parse(r, false)
}

func parse(r io.Reader, requireType bool) (ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading CSV: %w", err)
	}
	return parseRows(rows, requireType)
}

// ParseBackup reads a backup CSV, collecting "# Key: Value" metadata
// lines before handing the rest to the regular parser. Unlike a plain
// export, a backup must carry a Type column: without it every record
// would default to "expense" and income would migrate backwards.
func ParseBackup(r io.Reader) (BackupFile, error) {
	metadata := make(map[string]string)
	var data strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	inHeader := true
	for scanner.Scan() {
		line := scanner.Text()
		if inHeader && strings.HasPrefix(strings.TrimSpace(line), "#") {
			key, value, ok := strings.Cut(strings.TrimPrefix(strings.TrimSpace(line), "#"), ":")
			if ok {
				metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
			continue
		}
		inHeader = false
		data.WriteString(line)
		data.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return BackupFile{}, fmt.Errorf("reading backup: %w", err)
	}

	result, err := parse(strings.NewReader(data.String()), true)
	if err != nil {
		return BackupFile{}, err
	}
	return BackupFile{Metadata: metadata, ParseResult: result}, nil
}

func parseRows(rows [][]string, requireType bool) (ParseResult, error) {
	rows = dropEmptyRows(rows)
	if len(rows) < 2 {
		return ParseResult{}, fmt.Errorf("no transaction data found")
	}

	cols, err := mapColumns(rows[0], requireType)
	if err != nil {
		return ParseResult{}, err
	}

	result := ParseResult{}
	now := time.Now().UTC()
	for _, row := range rows[1:] {
		txn, ok := parseRow(row, cols, now)
		if !ok {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}
	return result, nil
}

func dropEmptyRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func mapColumns(header []string, requireType bool) (columns, error) {
	cols := columns{date: -1, txnType: -1, category: -1, amount: -1, notes: -1, id: -1, createdAt: -1}
	for i, h := range header {
		switch name := strings.ToLower(strings.TrimSpace(h)); {
		case name == "date":
			cols.date = i
		case name == "type":
			cols.txnType = i
		case name == "category":
			cols.category = i
		case strings.HasPrefix(name, "amount"):
			cols.amount = i
		case name == "notes", name == "description":
			cols.notes = i
		case name == "id":
			cols.id = i
		case name == "createdat":
			cols.createdAt = i
		}
	}
	if requireType && cols.txnType == -1 {
		return columns{}, fmt.Errorf("missing required columns (Date, Type, Category, Amount)")
	}
	if cols.date == -1 || cols.category == -1 || cols.amount == -1 {
		return columns{}, fmt.Errorf("missing required columns (Date, Category, Amount)")
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, cols columns, now time.Time) (model.LegacyTransaction, bool) {
	date, _, err := validate.Date(cell(row, cols.date))
	if err != nil {
		return model.LegacyTransaction{}, false
	}

	raw := strings.ReplaceAll(cell(row, cols.amount), ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.LegacyTransaction{}, false
	}

	txnType := strings.ToLower(cell(row, cols.txnType))
	if txnType != "income" {
		txnType = "expense"
	}

	txnID := cell(row, cols.id)
	if txnID == "" {
		txnID = id.NewLegacyID()
	}

	createdAt := now
	if raw := cell(row, cols.createdAt); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			createdAt = parsed
		}
	}

	return model.LegacyTransaction{
		ID:        txnID,
		Type:      txnType,
		Amount:    amount.Abs(),
		Category:  cell(row, cols.category),
		Date:      date,
		Notes:     cell(row, cols.notes),
		CreatedAt: createdAt,
	}, true
}

// IsDuplicate reports whether txn matches an existing record on date,
// type, category, amount, and notes. IDs are ignored so re-imported
// files with fresh IDs still dedupe.
func IsDuplicate(txn model.LegacyTransaction, existing []model.LegacyTransaction) bool {
	for _, e := range existing {
		if e.Date == txn.Date &&
			e.Type == txn.Type &&
			e.Category == txn.Category &&
			e.Amount.Equal(txn.Amount) &&
			e.Notes == txn.Notes {
			return true
		}
	}
	return false
}
