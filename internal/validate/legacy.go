package validate

import (
	"fmt"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// maxLedgerIssues caps the issue list so a corrupt import does not flood
// the caller with thousands of identical messages.
const maxLedgerIssues = 10

// Legacy validates a flat legacy transaction before migration.
func Legacy(txn model.LegacyTransaction) Result {
	var res Result

	if txn.Type != "income" && txn.Type != "expense" {
		res.errorf("type must be income or expense, got %q", txn.Type)
	}
	if !txn.Amount.IsPositive() {
		res.errorf("invalid amount: %s", txn.Amount)
	}
	if txn.Date == "" {
		res.errorf("date required")
	} else if _, _, err := Date(txn.Date); err != nil {
		res.errorf("%v", err)
	}
	if txn.Category == "" {
		res.errorf("category required")
	}

	return res
}

// LedgerReport summarizes validation over a whole legacy data set.
type LedgerReport struct {
	Valid        bool
	Total        int
	ValidCount   int
	InvalidCount int
	Issues       []string
}

// LegacyLedger validates every legacy record, reporting up to
// maxLedgerIssues individual problems.
func LegacyLedger(txns []model.LegacyTransaction) LedgerReport {
	report := LedgerReport{Total: len(txns)}

	for i, txn := range txns {
		res := Legacy(txn)
		if res.Valid() {
			report.ValidCount++
			continue
		}
		report.InvalidCount++
		if len(report.Issues) < maxLedgerIssues {
			report.Issues = append(report.Issues, fmt.Sprintf("transaction %d: %v", i+1, res.Errors))
		}
	}

	report.Valid = report.InvalidCount == 0
	return report
}
