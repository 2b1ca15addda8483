package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyTransaction is a flat single-entry record from the pre-double-entry
// data format: one signed money movement with a category, no account lines.
type LegacyTransaction struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // "income" or "expense"
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      string          `json:"date"` // ISO "YYYY-MM-DD"
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Backup is an immutable snapshot of legacy transactions taken before a
// migration run. Restore surfaces the raw snapshot; it does not reverse the
// forward migration.
type Backup struct {
	ID           string              `json:"id"`
	Label        string              `json:"label"`
	Timestamp    time.Time           `json:"timestamp"`
	Count        int                 `json:"count"`
	Transactions []LegacyTransaction `json:"data"`
}
