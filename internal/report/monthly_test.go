package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthSummary(t *testing.T) {
	r := New(nil)
	s := r.MonthSummary(testEntries(), testAccounts(), "2020-01")

	assert.Equal(t, "2020-01", s.Month)
	assert.Equal(t, "3000.00", s.Income.StringFixed(2))
	assert.Equal(t, "1284.50", s.Expenses.StringFixed(2))
	assert.Equal(t, "1715.50", s.Net.StringFixed(2))
	assert.Equal(t, 3, s.Count)
}

func TestAllMonthSummariesNewestFirst(t *testing.T) {
	r := New(nil)
	summaries := r.AllMonthSummaries(testEntries(), testAccounts())

	require.Len(t, summaries, 2)
	assert.Equal(t, "2020-02", summaries[0].Month)
	assert.Equal(t, "2020-01", summaries[1].Month)
}

func TestMonthOverMonth(t *testing.T) {
	r := New(nil)
	change := r.MonthOverMonth(testEntries(), testAccounts(), "2020-02")

	assert.Equal(t, "2020-01", change.PreviousMonth)
	assert.Equal(t, "180.00", change.CurrentExpenses.StringFixed(2))
	assert.Equal(t, "1284.50", change.PreviousExpenses.StringFixed(2))
	assert.Equal(t, "down", change.Direction)
	// (180 - 1284.50) / 1284.50 * 100
	assert.Equal(t, "-85.99", change.PercentChange.StringFixed(2))
}

func TestMonthOverMonthZeroPrevious(t *testing.T) {
	r := New(nil)
	accounts := testAccounts()

	// Spending appears out of nowhere: pinned to 100%, never infinity.
	change := r.MonthOverMonth(testEntries(), accounts, "2020-01")
	assert.Equal(t, "100", change.PercentChange.String())
	assert.Equal(t, "up", change.Direction)

	// Two empty months are flat zero.
	change = r.MonthOverMonth(nil, accounts, "2020-01")
	assert.True(t, change.PercentChange.IsZero())
	assert.Equal(t, "flat", change.Direction)
}

func TestMonthYearBoundary(t *testing.T) {
	r := New(nil)
	change := r.MonthOverMonth(nil, testAccounts(), "2020-01")
	assert.Equal(t, "2019-12", change.PreviousMonth)
}

func TestMonthlySavingsRate(t *testing.T) {
	r := New(nil)
	rate := r.MonthlySavingsRate(testEntries(), testAccounts(), "2020-01")

	assert.Equal(t, "1715.50", rate.Savings.StringFixed(2))
	// 1715.50 / 3000 * 100
	assert.Equal(t, "57.18", rate.Rate.StringFixed(2))

	// No income means a zero rate, not a division error.
	rate = r.MonthlySavingsRate(nil, testAccounts(), "2020-01")
	assert.True(t, rate.Rate.IsZero())
}

func TestSpendingAnalysis(t *testing.T) {
	r := New(nil)
	stats := r.SpendingAnalysis(testEntries(), testAccounts(), 6)

	assert.Equal(t, 2, stats.MonthsAnalyzed)
	// (1284.50 + 180) / 2
	assert.Equal(t, "732.25", stats.Average.StringFixed(2))
	assert.Equal(t, "1284.50", stats.Highest.StringFixed(2))
	assert.Equal(t, "180.00", stats.Lowest.StringFixed(2))
	assert.Equal(t, "1104.50", stats.Range.StringFixed(2))
}

func TestSpendingByCategorySorted(t *testing.T) {
	r := New(nil)
	spend := r.SpendingByCategory(testEntries(), testAccounts(), "2020-01")

	require.Len(t, spend, 2)
	assert.Equal(t, "Rent", spend[0].Category)
	assert.Equal(t, "Groceries", spend[1].Category)
	// 1200 / 1284.50 * 100
	assert.Equal(t, "93.42", spend[0].Percentage.StringFixed(2))
}

func TestTopExpenseCategoriesLimit(t *testing.T) {
	r := New(nil)
	top := r.TopExpenseCategories(testEntries(), testAccounts(), 1, "2020-01")

	require.Len(t, top, 1)
	assert.Equal(t, "Rent", top[0].Category)
}

func TestFinancialSummary(t *testing.T) {
	r := New(nil)
	s := r.FinancialSummary(testEntries(), testAccounts(), "2020-02")

	assert.Equal(t, "2020-02", s.Period)
	assert.Equal(t, "3000.00", s.Month.Income.StringFixed(2))
	assert.Equal(t, "180.00", s.Month.Expenses.StringFixed(2))
	assert.Equal(t, 3, s.Month.Count)
	assert.Equal(t, "6000.00", s.AllTime.Income.StringFixed(2))
	assert.Equal(t, 6, s.AllTime.Count)
	assert.Equal(t, "4535.50", s.NetWorth.StringFixed(2))
	assert.True(t, s.TrialBalance.Balanced)
	assert.Empty(t, s.Warnings)
	assert.NotEmpty(t, s.TopExpenses)
}
