package accounts

import "github.com/keepbook-dev/keepbook/internal/model"

// sentinelAccountID is the default salary account; its presence means the
// chart has been seeded.
const sentinelAccountID = "4000"

// DefaultChart returns the seed chart of accounts: 3 asset, 2 liability,
// 1 equity, 5 income, and 10 expense accounts. All are system accounts.
func DefaultChart() []model.Account {
	return []model.Account{
		// Assets (1000s): things you own.
		{ID: "1000", Name: "Cash", Type: model.AccountTypeAsset, Subtype: "cash", IsActive: true, IsSystem: true},
		{ID: "1100", Name: "Checking Account", Type: model.AccountTypeAsset, Subtype: "bank", IsActive: true, IsSystem: true},
		{ID: "1200", Name: "Savings Account", Type: model.AccountTypeAsset, Subtype: "bank", IsActive: true, IsSystem: true},

		// Liabilities (2000s): things you owe.
		{ID: "2000", Name: "Credit Card Debt", Type: model.AccountTypeLiability, Subtype: "credit_card", IsActive: true, IsSystem: true},
		{ID: "2100", Name: "Loans", Type: model.AccountTypeLiability, Subtype: "loan", IsActive: true, IsSystem: true},

		// Equity (3000s).
		{ID: "3000", Name: "Opening Balance", Type: model.AccountTypeEquity, Subtype: "opening", IsActive: true, IsSystem: true},

		// Income (4000s): money in.
		{ID: "4000", Name: "Salary", Type: model.AccountTypeIncome, Subtype: "salary", IsActive: true, IsSystem: true},
		{ID: "4100", Name: "Freelance Income", Type: model.AccountTypeIncome, Subtype: "business", IsActive: true, IsSystem: true},
		{ID: "4200", Name: "Investment Returns", Type: model.AccountTypeIncome, Subtype: "investment", IsActive: false, IsSystem: true},
		{ID: "4300", Name: "Bonus", Type: model.AccountTypeIncome, Subtype: "bonus", IsActive: false, IsSystem: true},
		{ID: "4900", Name: "Other Income", Type: model.AccountTypeIncome, Subtype: "other", IsActive: true, IsSystem: true},

		// Expenses (5000s): money out.
		{ID: "5000", Name: "Groceries", Type: model.AccountTypeExpense, Subtype: "food", IsActive: true, IsSystem: true},
		{ID: "5100", Name: "Dining Out", Type: model.AccountTypeExpense, Subtype: "food", IsActive: true, IsSystem: true},
		{ID: "5200", Name: "Transportation", Type: model.AccountTypeExpense, Subtype: "transport", IsActive: true, IsSystem: true},
		{ID: "5300", Name: "Utilities/Internet", Type: model.AccountTypeExpense, Subtype: "bills", IsActive: true, IsSystem: true},
		{ID: "5400", Name: "Rent", Type: model.AccountTypeExpense, Subtype: "housing", IsActive: true, IsSystem: true},
		{ID: "5500", Name: "Entertainment", Type: model.AccountTypeExpense, Subtype: "entertainment", IsActive: true, IsSystem: true},
		{ID: "5600", Name: "Healthcare", Type: model.AccountTypeExpense, Subtype: "health", IsActive: true, IsSystem: true},
		{ID: "5700", Name: "Shopping", Type: model.AccountTypeExpense, Subtype: "personal", IsActive: true, IsSystem: true},
		{ID: "5800", Name: "Subscriptions", Type: model.AccountTypeExpense, Subtype: "subscriptions", IsActive: true, IsSystem: true},
		{ID: "5900", Name: "Other Expenses", Type: model.AccountTypeExpense, Subtype: "other", IsActive: true, IsSystem: true},
	}
}
