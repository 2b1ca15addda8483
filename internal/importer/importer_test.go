package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepbook-dev/keepbook/internal/model"
)

const plainCSV = `Date,Type,Category,Amount,Notes
2020-01-15,expense,Groceries,84.50,Weekly shop
2020-01-31,income,Salary,"3,000.00",January pay
2020-02-01,expense,Rent,1200,
`

func TestParsePlainCSV(t *testing.T) {
	result, err := Parse(strings.NewReader(plainCSV))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	assert.Zero(t, result.Skipped)

	first := result.Transactions[0]
	assert.Equal(t, "expense", first.Type)
	assert.Equal(t, "Groceries", first.Category)
	assert.Equal(t, "84.50", first.Amount.StringFixed(2))
	assert.Equal(t, "2020-01-15", first.Date)
	assert.Equal(t, "Weekly shop", first.Notes)
	assert.NotEmpty(t, first.ID)

	// Thousands separators are tolerated.
	assert.Equal(t, "3000.00", result.Transactions[1].Amount.StringFixed(2))
}

func TestParseSkipsInvalidRows(t *testing.T) {
	csv := `Date,Type,Category,Amount,Notes
2020-01-15,expense,Groceries,84.50,ok
,expense,Groceries,10.00,missing date
2020-01-16,expense,Groceries,not-a-number,bad amount
`
	result, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 1)
	assert.Equal(t, 2, result.Skipped)
}

func TestParseTolerantHeaders(t *testing.T) {
	csv := `date,TYPE,Category,Amount (USD),Description
15/01/2020,Income,Salary,3000,pay
`
	result, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	txn := result.Transactions[0]
	assert.Equal(t, "income", txn.Type)
	assert.Equal(t, "2020-01-15", txn.Date, "DD/MM/YYYY is normalized to ISO")
	assert.Equal(t, "pay", txn.Notes)
}

func TestParseUnknownTypeDefaultsToExpense(t *testing.T) {
	csv := `Date,Type,Category,Amount
2020-01-15,transfer,Misc,10.00
`
	result, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "expense", result.Transactions[0].Type)
}

func TestParseMissingTypeColumnDefaultsToExpense(t *testing.T) {
	csv := `Date,Category,Amount
2020-01-15,Groceries,84.50
`
	result, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "expense", result.Transactions[0].Type)
}

func TestParseBackupRequiresTypeColumn(t *testing.T) {
	csv := `# Keepbook Backup
# Transaction Count: 1
Date,Category,Amount,Notes
2020-01-31,Salary,3000.00,January pay
`
	_, err := ParseBackup(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}

func TestParseNegativeAmountsAbsoluted(t *testing.T) {
	csv := `Date,Type,Category,Amount
2020-01-15,expense,Groceries,-84.50
`
	result, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "84.50", result.Transactions[0].Amount.StringFixed(2))
}

func TestParseMissingRequiredColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("Foo,Bar\n1,2\n"))
	assert.ErrorContains(t, err, "missing required columns")
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorContains(t, err, "no transaction data")
}

func TestBackupRoundTrip(t *testing.T) {
	txns := []model.LegacyTransaction{
		{
			ID: "42", Type: "income", Amount: decimal.RequireFromString("3000.00"),
			Category: "Salary", Date: "2020-01-31", Notes: "January pay",
			CreatedAt: time.Date(2020, 1, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: "43", Type: "expense", Amount: decimal.RequireFromString("84.50"),
			Category: "Groceries", Date: "2020-02-01",
			CreatedAt: time.Date(2020, 2, 1, 18, 30, 0, 0, time.UTC),
		},
	}

	var buf strings.Builder
	now := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteBackup(&buf, txns, now))

	out := buf.String()
	assert.Contains(t, out, "# Transaction Count: 2")
	assert.Contains(t, out, "# Date Range: 2020-01-31 to 2020-02-01")

	parsed, err := ParseBackup(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "2", parsed.Metadata["Transaction Count"])
	require.Len(t, parsed.Transactions, 2)

	got := parsed.Transactions[0]
	assert.Equal(t, "42", got.ID, "backup files carry IDs through")
	assert.Equal(t, "3000.00", got.Amount.StringFixed(2))
	assert.Equal(t, txns[0].CreatedAt, got.CreatedAt)
}

func TestWritePlainCSV(t *testing.T) {
	txns := []model.LegacyTransaction{
		{ID: "1", Type: "expense", Amount: decimal.RequireFromString("84.50"),
			Category: "Groceries", Date: "2020-01-15", Notes: `say "hi"`},
	}

	var buf strings.Builder
	require.NoError(t, Write(&buf, txns))

	out := buf.String()
	assert.Contains(t, out, "Date,Type,Category,Amount,Notes")
	assert.Contains(t, out, `"say ""hi"""`, "quotes must be CSV-escaped")

	parsed, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, parsed.Transactions, 1)
	assert.Equal(t, `say "hi"`, parsed.Transactions[0].Notes)
}

func TestIsDuplicate(t *testing.T) {
	existing := []model.LegacyTransaction{
		{ID: "1", Type: "expense", Amount: decimal.RequireFromString("84.50"),
			Category: "Groceries", Date: "2020-01-15", Notes: "Weekly shop"},
	}

	dup := existing[0]
	dup.ID = "999" // dedupe ignores IDs
	assert.True(t, IsDuplicate(dup, existing))

	other := dup
	other.Amount = decimal.RequireFromString("84.51")
	assert.False(t, IsDuplicate(other, existing))

	other = dup
	other.Notes = ""
	assert.False(t, IsDuplicate(other, existing))
}
