package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/validate"
)

// MonthlySummary is the income/expense snapshot for one "YYYY-MM" month.
type MonthlySummary struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

// MonthSummary computes the summary for one month.
func (r *Reporter) MonthSummary(entries []model.JournalEntry, accounts []model.Account, month string) MonthlySummary {
	income := r.IncomeTotal(entries, accounts, month)
	expenses := r.ExpenseTotal(entries, accounts, month)

	count := 0
	for _, entry := range entries {
		if inMonth(entry, month) {
			count++
		}
	}

	return MonthlySummary{
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
		Count:    count,
	}
}

// AllMonthSummaries returns one summary per distinct month present in the
// data, newest month first.
func (r *Reporter) AllMonthSummaries(entries []model.JournalEntry, accounts []model.Account) []MonthlySummary {
	seen := make(map[string]bool)
	var months []string
	for _, entry := range entries {
		m := entry.Month()
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	summaries := make([]MonthlySummary, 0, len(months))
	for _, m := range months {
		summaries = append(summaries, r.MonthSummary(entries, accounts, m))
	}
	return summaries
}

// MonthChange compares one month's expenses against the previous calendar
// month. Direction is "up", "down" or "flat" by the sign of the delta.
type MonthChange struct {
	CurrentMonth     string
	PreviousMonth    string
	CurrentExpenses  decimal.Decimal
	PreviousExpenses decimal.Decimal
	Change           decimal.Decimal
	PercentChange    decimal.Decimal
	Direction        string
}

// MonthOverMonth computes the expense delta against the prior calendar
// month. When the previous month has zero expenses, the percent change is
// pinned to 100 if spending appeared, 0 if both months are empty; never
// infinity.
func (r *Reporter) MonthOverMonth(entries []model.JournalEntry, accounts []model.Account, currentMonth string) MonthChange {
	previousMonth := prevMonth(currentMonth)

	current := r.ExpenseTotal(entries, accounts, currentMonth)
	previous := r.ExpenseTotal(entries, accounts, previousMonth)
	change := current.Sub(previous)

	var percent decimal.Decimal
	switch {
	case previous.IsZero() && current.IsPositive():
		percent = decimal.NewFromInt(100)
	case previous.IsZero():
		percent = decimal.Zero
	default:
		percent = change.Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
	}

	direction := "flat"
	if change.IsPositive() {
		direction = "up"
	} else if change.IsNegative() {
		direction = "down"
	}

	return MonthChange{
		CurrentMonth:     currentMonth,
		PreviousMonth:    previousMonth,
		CurrentExpenses:  current,
		PreviousExpenses: previous,
		Change:           change,
		PercentChange:    percent,
		Direction:        direction,
	}
}

// prevMonth returns the "YYYY-MM" before the given one.
func prevMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format("2006-01")
}

// SavingsRate is a month's savings as a share of its income.
type SavingsRate struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
	Rate     decimal.Decimal // percent, 2 decimals; 0 when there is no income
}

// MonthlySavingsRate computes income minus expenses as a percentage of
// income for one month.
func (r *Reporter) MonthlySavingsRate(entries []model.JournalEntry, accounts []model.Account, month string) SavingsRate {
	income := r.IncomeTotal(entries, accounts, month)
	expenses := r.ExpenseTotal(entries, accounts, month)
	savings := income.Sub(expenses)

	rate := decimal.Zero
	if income.IsPositive() {
		rate = savings.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return SavingsRate{Month: month, Income: income, Expenses: expenses, Savings: savings, Rate: rate}
}

// SpendingStats summarizes expense totals over the most recent months.
type SpendingStats struct {
	Average        decimal.Decimal
	Highest        decimal.Decimal
	Lowest         decimal.Decimal
	Range          decimal.Decimal
	MonthsAnalyzed int
}

// SpendingAnalysis looks at the expense totals of the most recent N months
// present in the data.
func (r *Reporter) SpendingAnalysis(entries []model.JournalEntry, accounts []model.Account, months int) SpendingStats {
	summaries := r.AllMonthSummaries(entries, accounts)
	if len(summaries) > months {
		summaries = summaries[:months]
	}
	if len(summaries) == 0 {
		return SpendingStats{
			Average: decimal.Zero, Highest: decimal.Zero, Lowest: decimal.Zero, Range: decimal.Zero,
		}
	}

	sum := decimal.Zero
	highest := summaries[0].Expenses
	lowest := summaries[0].Expenses
	for _, s := range summaries {
		sum = sum.Add(s.Expenses)
		if s.Expenses.GreaterThan(highest) {
			highest = s.Expenses
		}
		if s.Expenses.LessThan(lowest) {
			lowest = s.Expenses
		}
	}

	return SpendingStats{
		Average:        sum.Div(decimal.NewFromInt(int64(len(summaries)))).Round(2),
		Highest:        highest,
		Lowest:         lowest,
		Range:          highest.Sub(lowest),
		MonthsAnalyzed: len(summaries),
	}
}

// CategorySpend is one expense category's share of total spending.
type CategorySpend struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal // 2 decimals
}

// SpendingByCategory returns expense categories sorted by amount descending,
// each with its percentage of the total.
func (r *Reporter) SpendingByCategory(entries []model.JournalEntry, accounts []model.Account, month string) []CategorySpend {
	byCategory := r.ExpenseByCategory(entries, accounts, month)

	total := decimal.Zero
	for _, amount := range byCategory {
		total = total.Add(amount)
	}

	result := make([]CategorySpend, 0, len(byCategory))
	for category, amount := range byCategory {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		result = append(result, CategorySpend{Category: category, Amount: amount, Percentage: percentage})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// TopExpenseCategories returns the first limit categories of
// SpendingByCategory.
func (r *Reporter) TopExpenseCategories(entries []model.JournalEntry, accounts []model.Account, limit int, month string) []CategorySpend {
	all := r.SpendingByCategory(entries, accounts, month)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// PeriodTotals is one period's income/expense/net slice of a Summary.
type PeriodTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

// Summary is the composite dashboard snapshot: current month, all time, top
// expense categories and the ledger-wide trial balance state.
type Summary struct {
	Period       string
	Month        PeriodTotals
	NetWorth     decimal.Decimal
	AllTime      PeriodTotals
	TopExpenses  []CategorySpend
	TrialBalance validate.TrialBalanceReport
	Warnings     []string
}

// FinancialSummary combines the month totals, all-time totals, top five
// expense categories and the trial balance flag into one snapshot.
func (r *Reporter) FinancialSummary(entries []model.JournalEntry, accounts []model.Account, currentMonth string) Summary {
	monthSummary := r.MonthSummary(entries, accounts, currentMonth)
	allIncome := r.IncomeTotal(entries, accounts, "")
	allExpenses := r.ExpenseTotal(entries, accounts, "")
	tb := validate.TrialBalance(entries)

	summary := Summary{
		Period: currentMonth,
		Month: PeriodTotals{
			Income:   monthSummary.Income,
			Expenses: monthSummary.Expenses,
			Net:      monthSummary.Net,
			Count:    monthSummary.Count,
		},
		NetWorth: r.NetWorth(entries, accounts),
		AllTime: PeriodTotals{
			Income:   allIncome,
			Expenses: allExpenses,
			Net:      allIncome.Sub(allExpenses),
			Count:    len(entries),
		},
		TopExpenses:  r.TopExpenseCategories(entries, accounts, 5, currentMonth),
		TrialBalance: tb,
	}

	if !tb.Balanced {
		summary.Warnings = append(summary.Warnings,
			"trial balance failed: difference "+tb.Difference.StringFixed(2))
	}
	return summary
}
