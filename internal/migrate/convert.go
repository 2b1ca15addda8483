// Package migrate upgrades flat single-entry legacy records into balanced
// double-entry journal entries. The migration is one way: backups snapshot
// the source data, they do not reverse a completed run.
package migrate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/id"
	"github.com/keepbook-dev/keepbook/internal/model"
)

// DefaultBankAccount is the checking account every legacy movement is
// balanced against.
const DefaultBankAccount = "1100"

// fallbackCategory catches categories with no mapping.
const fallbackCategory = "other_expense"

// DefaultCategoryMap maps normalized legacy category names to account IDs.
func DefaultCategoryMap() map[string]string {
	return map[string]string{
		// Income categories.
		"salary":       "4000",
		"freelance":    "4100",
		"bonus":        "4300",
		"investment":   "4200",
		"other_income": "4900",

		// Expense categories.
		"groceries":     "5000",
		"food":          "5000",
		"dining":        "5100",
		"transport":     "5200",
		"utilities":     "5300",
		"rent":          "5400",
		"entertainment": "5500",
		"health":        "5600",
		"shopping":      "5700",
		"subscriptions": "5800",
		"other_expense": "5900",
	}
}

// Options configures a conversion or migration run.
type Options struct {
	// CategoryMap overrides the default category-to-account table.
	CategoryMap map[string]string
	// BankAccount overrides the default balancing bank account.
	BankAccount string
	// CreateBackup snapshots the legacy data before Execute touches anything.
	CreateBackup bool
	// DryRun gates Execute behind a full non-persisting pipeline pass.
	DryRun bool
}

func (o Options) categoryMap() map[string]string {
	if o.CategoryMap != nil {
		return o.CategoryMap
	}
	return DefaultCategoryMap()
}

func (o Options) bankAccount() string {
	if o.BankAccount != "" {
		return o.BankAccount
	}
	return DefaultBankAccount
}

// normalizeCategory lower-cases and squeezes whitespace runs to underscores,
// so "Other Income" matches "other_income".
func normalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(category))), "_")
}

// ConvertOne maps one legacy record to a balanced two-line journal entry.
// Income debits the bank account and credits the mapped income account;
// expenses debit the mapped expense account and credit the bank. The
// resulting entry always balances by construction; the final check is
// defense in depth, not a reachable path.
func ConvertOne(txn model.LegacyTransaction, categoryMap map[string]string, bankAccount string) (model.JournalEntry, error) {
	if txn.Type == "" || txn.Date == "" || txn.Category == "" {
		return model.JournalEntry{}, fmt.Errorf("legacy record %s: missing required field", txn.ID)
	}
	if !txn.Amount.IsPositive() {
		return model.JournalEntry{}, fmt.Errorf("legacy record %s: invalid amount %s", txn.ID, txn.Amount)
	}

	target, ok := categoryMap[normalizeCategory(txn.Category)]
	if !ok {
		target = categoryMap[fallbackCategory]
	}
	if target == "" {
		return model.JournalEntry{}, fmt.Errorf("legacy record %s: cannot map category %q", txn.ID, txn.Category)
	}

	var lines []model.LineItem
	switch txn.Type {
	case "income":
		lines = []model.LineItem{
			{AccountID: bankAccount, Debit: txn.Amount, Credit: decimal.Zero},
			{AccountID: target, Debit: decimal.Zero, Credit: txn.Amount},
		}
	case "expense":
		lines = []model.LineItem{
			{AccountID: target, Debit: txn.Amount, Credit: decimal.Zero},
			{AccountID: bankAccount, Debit: decimal.Zero, Credit: txn.Amount},
		}
	default:
		return model.JournalEntry{}, fmt.Errorf("legacy record %s: unknown type %q", txn.ID, txn.Type)
	}

	notes := txn.Notes
	if notes == "" {
		notes = "Migrated from legacy: " + txn.Category
	}

	entry := model.JournalEntry{
		ID:           id.MigratedID(txn.ID),
		Date:         txn.Date,
		Lines:        lines,
		Notes:        notes,
		Tags:         []string{model.TagMigrated},
		Type:         model.EntryTypeTransaction,
		Flow:         model.FlowType(txn.Type),
		BalanceCheck: true,
		CreatedAt:    txn.CreatedAt,
		SourceID:     txn.ID,
	}

	if !entry.TotalDebits().Equal(entry.TotalCredits()) {
		return model.JournalEntry{}, fmt.Errorf("legacy record %s: conversion produced unbalanced entry", txn.ID)
	}
	return entry, nil
}

// Failure records one legacy record that could not be converted.
type Failure struct {
	Transaction model.LegacyTransaction
	Reason      string
}

// Stats counts the outcome of a batch conversion.
type Stats struct {
	Total       int
	Converted   int
	Failed      int
	SuccessRate decimal.Decimal // percent, 2 decimals
}

// Conversion is the outcome of converting a batch of legacy records.
// Partial success is a valid outcome; Success is true only with zero
// failures.
type Conversion struct {
	Success bool
	Entries []model.JournalEntry
	Failed  []Failure
	Stats   Stats
}

// ConvertMany converts a whole batch, collecting per-record failures and
// continuing. It never fails as a whole.
func ConvertMany(txns []model.LegacyTransaction, opts Options) Conversion {
	categoryMap := opts.categoryMap()
	bankAccount := opts.bankAccount()

	conv := Conversion{}
	for _, txn := range txns {
		entry, err := ConvertOne(txn, categoryMap, bankAccount)
		if err != nil {
			conv.Failed = append(conv.Failed, Failure{Transaction: txn, Reason: err.Error()})
			continue
		}
		conv.Entries = append(conv.Entries, entry)
	}

	conv.Stats = Stats{
		Total:       len(txns),
		Converted:   len(conv.Entries),
		Failed:      len(conv.Failed),
		SuccessRate: decimal.Zero,
	}
	if len(txns) > 0 {
		conv.Stats.SuccessRate = decimal.NewFromInt(int64(len(conv.Entries))).
			Div(decimal.NewFromInt(int64(len(txns)))).
			Mul(decimal.NewFromInt(100)).Round(2)
	}
	conv.Success = len(conv.Failed) == 0
	return conv
}
