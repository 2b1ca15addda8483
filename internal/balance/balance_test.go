package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keepbook-dev/keepbook/internal/model"
)

func TestRuleFor(t *testing.T) {
	assert.Equal(t, DebitIncreasing, RuleFor(model.AccountTypeAsset))
	assert.Equal(t, DebitIncreasing, RuleFor(model.AccountTypeExpense))
	assert.Equal(t, CreditIncreasing, RuleFor(model.AccountTypeLiability))
	assert.Equal(t, CreditIncreasing, RuleFor(model.AccountTypeIncome))
	assert.Equal(t, CreditIncreasing, RuleFor(model.AccountTypeEquity))
}

func TestLineSigns(t *testing.T) {
	debit := model.LineItem{AccountID: "1100", Debit: decimal.NewFromInt(100)}
	credit := model.LineItem{AccountID: "1100", Credit: decimal.NewFromInt(40)}

	// Asset grows on debit, shrinks on credit.
	assert.True(t, Line(debit, model.AccountTypeAsset).Equal(decimal.NewFromInt(100)))
	assert.True(t, Line(credit, model.AccountTypeAsset).Equal(decimal.NewFromInt(-40)))

	// Income is the mirror image.
	assert.True(t, Line(debit, model.AccountTypeIncome).Equal(decimal.NewFromInt(-100)))
	assert.True(t, Line(credit, model.AccountTypeIncome).Equal(decimal.NewFromInt(40)))
}
