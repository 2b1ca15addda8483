package validate

import (
	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// Entry validates a complete journal entry: structure, per-line rules, and
// the entry-level trial balance. An unbalanced entry is always a hard error.
// Account existence is only checked when an accounts list is supplied.
func Entry(entry model.JournalEntry, accounts []model.Account) Result {
	var res Result

	if len(entry.Lines) == 0 {
		res.errorf("entry must have at least one line item")
	} else if len(entry.Lines) < 2 {
		res.errorf("entry must have at least 2 line items (debit + credit)")
	}

	if entry.Date == "" {
		res.errorf("entry must have a date")
	} else if _, future, err := Date(entry.Date); err != nil {
		res.errorf("%v", err)
	} else if future {
		res.warnf("future-dated entry")
	}

	// Structural problems make the remaining checks meaningless.
	if len(res.Errors) > 0 {
		return res
	}

	for i, line := range entry.Lines {
		lineNum := i + 1

		if line.AccountID == "" {
			res.errorf("line %d: missing account ID", lineNum)
		} else if len(accounts) > 0 {
			if _, err := AccountID(line.AccountID, "", accounts); err != nil {
				res.errorf("line %d: %v", lineNum, err)
			}
		}

		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()

		if line.Debit.IsNegative() {
			res.errorf("line %d: debit cannot be negative", lineNum)
		}
		if line.Credit.IsNegative() {
			res.errorf("line %d: credit cannot be negative", lineNum)
		}
		if hasDebit && hasCredit {
			res.errorf("line %d: cannot have both debit and credit", lineNum)
		}
		if !hasDebit && !hasCredit && !line.Debit.IsNegative() && !line.Credit.IsNegative() {
			res.errorf("line %d: must have either debit or credit", lineNum)
		}
	}

	totalDebits := entry.TotalDebits()
	totalCredits := entry.TotalCredits()
	if !totalDebits.Equal(totalCredits) {
		res.errorf("trial balance failed: debits %s != credits %s",
			totalDebits.StringFixed(2), totalCredits.StringFixed(2))
	}

	if totalDebits.Abs().GreaterThan(largeAmountThreshold) {
		res.warnf("large transaction amount")
	}
	if len(entry.Notes) == 0 {
		res.warnf("no notes provided")
	}

	return res
}

// OpeningBalance validates an opening-balance entry. On top of the regular
// entry rules it must post to at least one asset account and at least one
// equity account, so the owner's-equity balancing line is isolated. The
// type checks need an accounts list; without one only the base rules apply.
func OpeningBalance(entry model.JournalEntry, accounts []model.Account) Result {
	res := Entry(entry, accounts)
	if !res.Valid() || len(accounts) == 0 {
		return res
	}

	hasType := func(t model.AccountType) bool {
		for _, line := range entry.Lines {
			if acct, err := AccountID(line.AccountID, "", accounts); err == nil && acct.Type == t {
				return true
			}
		}
		return false
	}

	if !hasType(model.AccountTypeAsset) {
		res.errorf("opening balance must include at least one asset account")
	}
	if !hasType(model.AccountTypeEquity) {
		res.errorf("opening balance must include an equity account to balance")
	}
	return res
}

// TrialBalanceReport is the aggregate debit/credit check over a set of
// entries. Totals and difference are rounded to 2 decimals for reporting;
// Balanced itself is exact.
type TrialBalanceReport struct {
	Balanced     bool
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	Entries      int
	Lines        int
}

// TrialBalance computes the aggregate trial balance over an arbitrary set of
// entries. Any nonzero difference means the ledger is corrupt.
func TrialBalance(entries []model.JournalEntry) TrialBalanceReport {
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	lines := 0

	for _, entry := range entries {
		totalDebits = totalDebits.Add(entry.TotalDebits())
		totalCredits = totalCredits.Add(entry.TotalCredits())
		lines += len(entry.Lines)
	}

	return TrialBalanceReport{
		Balanced:     totalDebits.Equal(totalCredits),
		TotalDebits:  totalDebits.Round(2),
		TotalCredits: totalCredits.Round(2),
		Difference:   totalDebits.Sub(totalCredits).Abs().Round(2),
		Entries:      len(entries),
		Lines:        lines,
	}
}

// EntryResult is the per-entry outcome within a batch validation.
type EntryResult struct {
	Index   int
	EntryID string
	Result
}

// BatchResult is the outcome of validating a set of entries. Individual
// validity and the aggregate trial balance are independent checks; both must
// pass for the batch to be valid.
type BatchResult struct {
	Valid        bool
	Total        int
	ValidCount   int
	InvalidCount int
	TrialBalance TrialBalanceReport
	Details      []EntryResult
}

// Entries validates every entry in the set and the aggregate trial balance.
func Entries(entries []model.JournalEntry, accounts []model.Account) BatchResult {
	batch := BatchResult{Total: len(entries)}

	for i, entry := range entries {
		res := Entry(entry, accounts)
		entryID := entry.ID
		if entryID == "" {
			entryID = "unknown"
		}
		batch.Details = append(batch.Details, EntryResult{Index: i, EntryID: entryID, Result: res})
		if res.Valid() {
			batch.ValidCount++
		} else {
			batch.InvalidCount++
		}
	}

	batch.TrialBalance = TrialBalance(entries)
	batch.Valid = batch.InvalidCount == 0 && batch.TrialBalance.Balanced
	return batch
}

// AccountBalances flags balances that usually indicate a booking mistake:
// negative assets, expenses, or income.
func AccountBalances(balances map[string]decimal.Decimal, accounts []model.Account) []string {
	var issues []string
	for _, acct := range accounts {
		bal, ok := balances[acct.ID]
		if !ok || !bal.IsNegative() {
			continue
		}
		switch acct.Type {
		case model.AccountTypeAsset, model.AccountTypeExpense, model.AccountTypeIncome:
			issues = append(issues, "account "+acct.Name+" has negative balance "+bal.StringFixed(2))
		}
	}
	return issues
}
