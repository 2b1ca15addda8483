package model

import "time"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Account is one row in the chart of accounts. The ID is a numeric code in
// the 1000..5999 range; the thousands digit namespaces the type (1000s asset,
// 2000s liability, 3000s equity, 4000s income, 5000s expense). Type and ID
// are immutable after creation. System accounts may be deactivated but never
// deleted or retyped.
type Account struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       AccountType `json:"type"`
	Subtype    string      `json:"subtype,omitempty"`
	IsActive   bool        `json:"isActive"`
	IsSystem   bool        `json:"isSystem"`
	CreatedAt  time.Time   `json:"createdAt"`
	ModifiedAt *time.Time  `json:"modifiedAt,omitempty"`
}
