package migrate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepbook-dev/keepbook/internal/model"
)

func legacyTxn(id, txnType, category, amount, date string) model.LegacyTransaction {
	return model.LegacyTransaction{
		ID:        id,
		Type:      txnType,
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Date:      date,
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestConvertOneIncome(t *testing.T) {
	txn := legacyTxn("42", "income", "salary", "3000.00", "2020-01-31")

	entry, err := ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)

	assert.Equal(t, "migrated_42", entry.ID)
	assert.Equal(t, "42", entry.SourceID)
	assert.Equal(t, model.FlowIncome, entry.Flow)
	assert.True(t, entry.HasTag(model.TagMigrated))

	require.Len(t, entry.Lines, 2)
	// Income lands in the bank and is credited to the income account.
	assert.Equal(t, "1100", entry.Lines[0].AccountID)
	assert.Equal(t, "3000.00", entry.Lines[0].Debit.StringFixed(2))
	assert.Equal(t, "4000", entry.Lines[1].AccountID)
	assert.Equal(t, "3000.00", entry.Lines[1].Credit.StringFixed(2))

	assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))
}

func TestConvertOneExpense(t *testing.T) {
	txn := legacyTxn("43", "expense", "groceries", "84.50", "2020-02-01")

	entry, err := ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)

	require.Len(t, entry.Lines, 2)
	// Expenses debit the category and come out of the bank.
	assert.Equal(t, "5000", entry.Lines[0].AccountID)
	assert.Equal(t, "84.50", entry.Lines[0].Debit.StringFixed(2))
	assert.Equal(t, "1100", entry.Lines[1].AccountID)
	assert.Equal(t, "84.50", entry.Lines[1].Credit.StringFixed(2))
	assert.Equal(t, model.FlowExpense, entry.Flow)
}

func TestConvertOneNormalizesCategory(t *testing.T) {
	txn := legacyTxn("44", "income", "  Other   Income ", "10.00", "2020-02-01")
	entry, err := ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)
	assert.Equal(t, "4900", entry.Lines[1].AccountID)
}

func TestConvertOneUnknownCategoryFallsBack(t *testing.T) {
	txn := legacyTxn("45", "expense", "llama grooming", "25.00", "2020-02-01")
	entry, err := ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)
	assert.Equal(t, "5900", entry.Lines[0].AccountID)
}

func TestConvertOneDefaultNotes(t *testing.T) {
	txn := legacyTxn("46", "expense", "rent", "1200.00", "2020-02-01")
	entry, err := ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)
	assert.Equal(t, "Migrated from legacy: rent", entry.Notes)

	txn.Notes = "February rent"
	entry, err = ConvertOne(txn, DefaultCategoryMap(), DefaultBankAccount)
	require.NoError(t, err)
	assert.Equal(t, "February rent", entry.Notes)
}

func TestConvertOneRejects(t *testing.T) {
	bad := legacyTxn("47", "transfer", "salary", "10.00", "2020-02-01")
	_, err := ConvertOne(bad, DefaultCategoryMap(), DefaultBankAccount)
	assert.ErrorContains(t, err, "unknown type")

	bad = legacyTxn("48", "income", "salary", "10.00", "2020-02-01")
	bad.Amount = decimal.Zero
	_, err = ConvertOne(bad, DefaultCategoryMap(), DefaultBankAccount)
	assert.ErrorContains(t, err, "invalid amount")

	bad = legacyTxn("49", "income", "", "10.00", "2020-02-01")
	_, err = ConvertOne(bad, DefaultCategoryMap(), DefaultBankAccount)
	assert.ErrorContains(t, err, "missing required field")
}

func TestConvertManyPartialFailure(t *testing.T) {
	txns := []model.LegacyTransaction{
		legacyTxn("1", "income", "salary", "3000.00", "2020-01-31"),
		legacyTxn("2", "expense", "groceries", "84.50", "2020-02-01"),
		legacyTxn("3", "expense", "rent", "1200.00", "2020-02-01"),
		legacyTxn("4", "income", "freelance", "500.00", "2020-02-03"),
		legacyTxn("5", "expense", "dining", "35.00", "2020-02-05"),
		legacyTxn("6", "expense", "transport", "12.50", "2020-02-06"),
		legacyTxn("7", "income", "bonus", "250.00", "2020-02-10"),
		legacyTxn("8", "expense", "utilities", "90.00", "2020-02-12"),
		legacyTxn("bad1", "transfer", "salary", "10.00", "2020-02-13"),
		{ID: "bad2", Type: "expense", Category: "food", Date: "2020-02-14"}, // zero amount
	}

	conv := ConvertMany(txns, Options{})

	assert.False(t, conv.Success)
	assert.Len(t, conv.Entries, 8)
	require.Len(t, conv.Failed, 2)
	assert.Equal(t, "bad1", conv.Failed[0].Transaction.ID)
	assert.Equal(t, "bad2", conv.Failed[1].Transaction.ID)

	assert.Equal(t, 10, conv.Stats.Total)
	assert.Equal(t, 8, conv.Stats.Converted)
	assert.Equal(t, 2, conv.Stats.Failed)
	assert.Equal(t, "80.00", conv.Stats.SuccessRate.StringFixed(2))
}

func TestConvertManyCustomOptions(t *testing.T) {
	txns := []model.LegacyTransaction{legacyTxn("1", "expense", "coffee", "4.50", "2020-02-01")}
	conv := ConvertMany(txns, Options{
		CategoryMap: map[string]string{"coffee": "5100", "other_expense": "5900"},
		BankAccount: "1000",
	})

	require.True(t, conv.Success)
	require.Len(t, conv.Entries, 1)
	assert.Equal(t, "5100", conv.Entries[0].Lines[0].AccountID)
	assert.Equal(t, "1000", conv.Entries[0].Lines[1].AccountID)
}

func TestConvertManyEmpty(t *testing.T) {
	conv := ConvertMany(nil, Options{})
	assert.True(t, conv.Success)
	assert.Zero(t, conv.Stats.Total)
	assert.True(t, conv.Stats.SuccessRate.IsZero())
}
