// Package validate holds the structural and business-rule checks applied on
// every write path. Checks are independent of each other and of storage; the
// write path composes them.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// maxAmount is the upper bound for a single debit or credit.
var maxAmount = decimal.NewFromInt(1_000_000_000)

// largeAmountThreshold triggers a warning, not an error.
var largeAmountThreshold = decimal.NewFromInt(1_000_000)

// Result collects the outcome of validating one subject. Errors block the
// operation; warnings are surfaced and ignored at the caller's discretion.
type Result struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the subject passed with no errors.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Amount parses and validates a money amount from user input. Amounts are
// strictly positive, at most one billion, and carry at most two decimal
// places. Sign is expressed through the debit/credit columns, never here.
func Amount(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("amount required")
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must be a number", input)
	}

	if value.IsZero() {
		return decimal.Zero, fmt.Errorf("amount must be greater than 0")
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative: use the debit/credit columns")
	}
	if value.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large: max 1 billion")
	}
	if !value.Equal(value.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("too many decimal places: max 2")
	}

	return value, nil
}

// Date parses a date in ISO "YYYY-MM-DD", "DD/MM/YYYY" or "DD-MMM" form
// (the last assumes the current year) and normalizes it to ISO. Future
// dates are accepted; the returned flag lets the caller warn.
func Date(input string) (iso string, future bool, err error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false, fmt.Errorf("date required")
	}

	var parsed time.Time
	switch {
	case len(trimmed) == 10 && trimmed[4] == '-' && trimmed[7] == '-':
		parsed, err = time.Parse("2006-01-02", trimmed)
	case len(trimmed) == 10 && trimmed[2] == '/' && trimmed[5] == '/':
		parsed, err = time.Parse("02/01/2006", trimmed)
	case len(trimmed) == 6 && trimmed[2] == '-':
		day := trimmed[:2]
		mon := normalizeMonth(trimmed[3:])
		parsed, err = time.Parse("02-Jan-2006", fmt.Sprintf("%s-%s-%d", day, mon, time.Now().Year()))
	default:
		err = fmt.Errorf("unrecognized format")
	}
	if err != nil {
		return "", false, fmt.Errorf("invalid date %q: use YYYY-MM-DD, DD/MM/YYYY, or DD-MMM", input)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	return parsed.Format("2006-01-02"), parsed.After(today), nil
}

// normalizeMonth maps "feb"/"FEB" to "Feb" so time.Parse accepts it.
func normalizeMonth(mon string) string {
	if len(mon) != 3 {
		return mon
	}
	return strings.ToUpper(mon[:1]) + strings.ToLower(mon[1:])
}

// AccountID checks that an account exists and, when expectedType is
// non-empty, that it has that type.
func AccountID(accountID string, expectedType model.AccountType, accounts []model.Account) (model.Account, error) {
	if accountID == "" {
		return model.Account{}, fmt.Errorf("account ID required")
	}

	for _, acct := range accounts {
		if acct.ID != accountID {
			continue
		}
		if expectedType != "" && acct.Type != expectedType {
			return model.Account{}, fmt.Errorf("account %s must be type %s, got %s", accountID, expectedType, acct.Type)
		}
		return acct, nil
	}
	return model.Account{}, fmt.Errorf("account not found: %s", accountID)
}

// AccountName checks a proposed account name: 2..50 characters after
// trimming, restricted to letters, digits, spaces and common punctuation.
func AccountName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("account name required")
	}
	if len(trimmed) < 2 {
		return fmt.Errorf("account name too short: min 2 characters")
	}
	if len(trimmed) > 50 {
		return fmt.Errorf("account name too long: max 50 characters")
	}
	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '-', r == '/', r == '.', r == '(', r == ')', r == '&':
		default:
			return fmt.Errorf("account name contains invalid character %q", r)
		}
	}
	return nil
}

// Account validates a full account record: ID numeric and in 1000..5999,
// known type, acceptable name.
func Account(acct model.Account) Result {
	var res Result

	if acct.ID == "" {
		res.errorf("account ID required")
	} else {
		idNum := 0
		if _, err := fmt.Sscanf(acct.ID, "%d", &idNum); err != nil {
			res.errorf("account ID must be numeric: %s", acct.ID)
		} else if idNum < 1000 || idNum > 5999 {
			res.errorf("account ID must be between 1000 and 5999: %s", acct.ID)
		}
	}

	if acct.Type == "" {
		res.errorf("account type required")
	} else if !acct.Type.Valid() {
		res.errorf("invalid account type: %s", acct.Type)
	}

	if acct.Name == "" {
		res.errorf("account name required")
	} else if err := AccountName(acct.Name); err != nil {
		res.errorf("%v", err)
	}

	return res
}
