// Package report derives balances, totals and summaries by replaying journal
// entries. Nothing here caches or stores state: recomputation is the source
// of truth, which keeps writes free of invalidation logic. Fine below a few
// thousand entries; an incremental balance cache is the known next step past
// that.
package report

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/balance"
	"github.com/keepbook-dev/keepbook/internal/model"
)

// Reporter computes aggregations over a ledger snapshot. It holds no data,
// only a logger for unknown-account warnings.
type Reporter struct {
	logger *slog.Logger
}

// New creates a Reporter.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

func accountIndex(accounts []model.Account) map[string]model.Account {
	byID := make(map[string]model.Account, len(accounts))
	for _, acct := range accounts {
		byID[acct.ID] = acct
	}
	return byID
}

func inMonth(entry model.JournalEntry, month string) bool {
	return month == "" || strings.HasPrefix(entry.Date, month)
}

// AccountBalance replays every entry referencing the account through the
// balance rule. Unknown accounts contribute zero and log a warning.
func (r *Reporter) AccountBalance(accountID string, entries []model.JournalEntry, accounts []model.Account) decimal.Decimal {
	byID := accountIndex(accounts)
	acct, ok := byID[accountID]
	if !ok {
		r.logger.Warn("balance requested for unknown account", "account", accountID)
		return decimal.Zero
	}

	total := decimal.Zero
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID == accountID {
				total = total.Add(balance.Line(line, acct.Type))
			}
		}
	}
	return total
}

// AllAccountBalances computes every account's balance in one pass.
func (r *Reporter) AllAccountBalances(entries []model.JournalEntry, accounts []model.Account) map[string]decimal.Decimal {
	byID := accountIndex(accounts)
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acct := range accounts {
		balances[acct.ID] = decimal.Zero
	}

	for _, entry := range entries {
		for _, line := range entry.Lines {
			acct, ok := byID[line.AccountID]
			if !ok {
				r.logger.Warn("entry references unknown account", "entry", entry.ID, "account", line.AccountID)
				continue
			}
			balances[acct.ID] = balances[acct.ID].Add(balance.Line(line, acct.Type))
		}
	}
	return balances
}

// IncomeTotal sums credits to active income accounts, optionally restricted
// to a "YYYY-MM" month.
func (r *Reporter) IncomeTotal(entries []model.JournalEntry, accounts []model.Account, month string) decimal.Decimal {
	return r.flowTotal(entries, accounts, month, model.AccountTypeIncome)
}

// ExpenseTotal sums debits to active expense accounts, optionally restricted
// to a "YYYY-MM" month.
func (r *Reporter) ExpenseTotal(entries []model.JournalEntry, accounts []model.Account, month string) decimal.Decimal {
	return r.flowTotal(entries, accounts, month, model.AccountTypeExpense)
}

func (r *Reporter) flowTotal(entries []model.JournalEntry, accounts []model.Account, month string, t model.AccountType) decimal.Decimal {
	byID := accountIndex(accounts)
	total := decimal.Zero

	for _, entry := range entries {
		if !inMonth(entry, month) {
			continue
		}
		for _, line := range entry.Lines {
			acct, ok := byID[line.AccountID]
			if !ok || acct.Type != t || !acct.IsActive {
				continue
			}
			// Income grows on credit, expenses grow on debit.
			if t == model.AccountTypeIncome {
				total = total.Add(line.Credit)
			} else {
				total = total.Add(line.Debit)
			}
		}
	}
	return total
}

// IncomeByCategory buckets income per account name. Zero buckets are elided.
func (r *Reporter) IncomeByCategory(entries []model.JournalEntry, accounts []model.Account, month string) map[string]decimal.Decimal {
	return r.flowByCategory(entries, accounts, month, model.AccountTypeIncome)
}

// ExpenseByCategory buckets expenses per account name. Zero buckets are elided.
func (r *Reporter) ExpenseByCategory(entries []model.JournalEntry, accounts []model.Account, month string) map[string]decimal.Decimal {
	return r.flowByCategory(entries, accounts, month, model.AccountTypeExpense)
}

func (r *Reporter) flowByCategory(entries []model.JournalEntry, accounts []model.Account, month string, t model.AccountType) map[string]decimal.Decimal {
	byID := accountIndex(accounts)
	totals := make(map[string]decimal.Decimal)

	for _, entry := range entries {
		if !inMonth(entry, month) {
			continue
		}
		for _, line := range entry.Lines {
			acct, ok := byID[line.AccountID]
			if !ok || acct.Type != t || !acct.IsActive {
				continue
			}
			amount := line.Debit
			if t == model.AccountTypeIncome {
				amount = line.Credit
			}
			if amount.IsZero() {
				continue
			}
			totals[acct.Name] = totals[acct.Name].Add(amount)
		}
	}

	for name, total := range totals {
		if total.IsZero() {
			delete(totals, name)
		}
	}
	return totals
}

// NetWorth is total asset balances minus total liability balances across
// active accounts.
func (r *Reporter) NetWorth(entries []model.JournalEntry, accounts []model.Account) decimal.Decimal {
	balances := r.AllAccountBalances(entries, accounts)
	assets := decimal.Zero
	liabilities := decimal.Zero

	for _, acct := range accounts {
		if !acct.IsActive {
			continue
		}
		switch acct.Type {
		case model.AccountTypeAsset:
			assets = assets.Add(balances[acct.ID])
		case model.AccountTypeLiability:
			liabilities = liabilities.Add(balances[acct.ID])
		}
	}
	return assets.Sub(liabilities)
}

// NetWorthItem is one account line in a net worth breakdown.
type NetWorthItem struct {
	ID      string
	Name    string
	Balance decimal.Decimal
}

// NetWorthBreakdown itemizes assets and liabilities with totals. Liability
// balances are shown as positive magnitudes.
type NetWorthBreakdown struct {
	Assets           []NetWorthItem
	TotalAssets      decimal.Decimal
	Liabilities      []NetWorthItem
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
}

// NetWorthDetail builds an itemized net worth breakdown over active accounts.
func (r *Reporter) NetWorthDetail(entries []model.JournalEntry, accounts []model.Account) NetWorthBreakdown {
	balances := r.AllAccountBalances(entries, accounts)
	out := NetWorthBreakdown{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}

	for _, acct := range accounts {
		if !acct.IsActive {
			continue
		}
		bal := balances[acct.ID]
		switch acct.Type {
		case model.AccountTypeAsset:
			out.Assets = append(out.Assets, NetWorthItem{ID: acct.ID, Name: acct.Name, Balance: bal})
			out.TotalAssets = out.TotalAssets.Add(bal)
		case model.AccountTypeLiability:
			out.Liabilities = append(out.Liabilities, NetWorthItem{ID: acct.ID, Name: acct.Name, Balance: bal.Abs()})
			out.TotalLiabilities = out.TotalLiabilities.Add(bal.Abs())
		}
	}

	out.NetWorth = out.TotalAssets.Sub(out.TotalLiabilities)
	return out
}
