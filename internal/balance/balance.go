// Package balance holds the sign convention every other computation builds
// on: whether a debit or a credit raises an account's balance.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// Rule says which side of an entry increases an account's balance.
type Rule string

const (
	DebitIncreasing  Rule = "debit"
	CreditIncreasing Rule = "credit"
)

// RuleFor returns the balance rule for an account type. Assets and expenses
// grow on debit; liabilities, income and equity grow on credit.
func RuleFor(t model.AccountType) Rule {
	switch t {
	case model.AccountTypeAsset, model.AccountTypeExpense:
		return DebitIncreasing
	default:
		return CreditIncreasing
	}
}

// Line converts a line item into a signed balance contribution for an
// account of the given type.
//
//	asset account:   debit 100 -> +100, credit 50 -> -50
//	income account:  debit 10  -> -10,  credit 500 -> +500
func Line(line model.LineItem, t model.AccountType) decimal.Decimal {
	if RuleFor(t) == DebitIncreasing {
		return line.Debit.Sub(line.Credit)
	}
	return line.Credit.Sub(line.Debit)
}
