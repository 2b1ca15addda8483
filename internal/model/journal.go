package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes regular transactions from special entries.
type EntryType string

const (
	EntryTypeTransaction    EntryType = "transaction"
	EntryTypeOpeningBalance EntryType = "opening-balance"
	EntryTypeMigration      EntryType = "migration"
)

// FlowType records whether an entry moved money in or out. Older data
// encoded this as a free-form tag; the explicit field is authoritative.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

// TagMigrated marks entries produced by the legacy migration pipeline.
const TagMigrated = "migrated_v3"

// LineItem is one account-tagged debit-or-credit amount within a journal
// entry. Exactly one of Debit/Credit is nonzero.
type LineItem struct {
	AccountID string          `json:"accountId"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntry is one balanced double-entry record: at least two line items
// whose debits and credits sum to the same total, to the cent.
type JournalEntry struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"` // ISO "YYYY-MM-DD"
	Lines          []LineItem `json:"entries"`
	Notes          string     `json:"notes"`
	Tags           []string   `json:"tags,omitempty"`
	Type           EntryType  `json:"type"`
	Flow           FlowType   `json:"flowType,omitempty"`
	BalanceCheck   bool       `json:"balanceCheck"`
	CreatedAt      time.Time  `json:"createdAt"`
	ModifiedAt     *time.Time `json:"modifiedAt,omitempty"`
	ModifiedReason string     `json:"modifiedReason,omitempty"`

	// SourceID back-references the legacy record an entry was migrated
	// from. Lookup and debugging only, never ownership.
	SourceID string `json:"sourceId,omitempty"`
}

// Month returns the "YYYY-MM" prefix of the entry date.
func (e JournalEntry) Month() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

// TotalDebits sums the debit side of all lines.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit side of all lines.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// HasTag reports whether the entry carries the given tag.
func (e JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
