package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// Store is what both backends implement; the behavior tests run against each.
type store interface {
	GetAccount(ctx context.Context, accountID string) (model.Account, bool, error)
	PutAccount(ctx context.Context, acct model.Account) error
	ScanAccounts(ctx context.Context) ([]model.Account, error)
	GetEntry(ctx context.Context, entryID string) (model.JournalEntry, bool, error)
	PutEntry(ctx context.Context, entry model.JournalEntry) error
	DeleteEntry(ctx context.Context, entryID string) (bool, error)
	ScanEntries(ctx context.Context) ([]model.JournalEntry, error)
	ScanEntriesByMonth(ctx context.Context, monthPrefix string) ([]model.JournalEntry, error)
	ScanLegacyTransactions(ctx context.Context) ([]model.LegacyTransaction, error)
	PutLegacyTransaction(ctx context.Context, txn model.LegacyTransaction) error
	PutBackup(ctx context.Context, b model.Backup) error
	GetBackup(ctx context.Context, backupID string) (model.Backup, bool, error)
	ListBackups(ctx context.Context) ([]model.Backup, error)
	GetMeta(ctx context.Context, key string) (string, bool, error)
	PutMeta(ctx context.Context, key, value string) error
}

func stores(t *testing.T) map[string]store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]store{"sqlite": db, "mem": NewMem()}
}

func TestAccountRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.GetAccount(ctx, "1100")
			require.NoError(t, err)
			assert.False(t, ok)

			acct := model.Account{
				ID: "1100", Name: "Checking Account", Type: model.AccountTypeAsset,
				IsActive: true, IsSystem: true,
				CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			require.NoError(t, s.PutAccount(ctx, acct))

			got, ok, err := s.GetAccount(ctx, "1100")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, acct.Name, got.Name)
			assert.Equal(t, acct.Type, got.Type)
			assert.True(t, got.IsSystem)

			// Put with the same ID replaces.
			acct.Name = "Main Checking"
			require.NoError(t, s.PutAccount(ctx, acct))
			got, _, err = s.GetAccount(ctx, "1100")
			require.NoError(t, err)
			assert.Equal(t, "Main Checking", got.Name)
		})
	}
}

func TestScanAccountsNumericOrder(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"5000", "1100", "4000"} {
				require.NoError(t, s.PutAccount(ctx, model.Account{
					ID: id, Name: "Account " + id, Type: model.AccountTypeAsset,
				}))
			}

			accts, err := s.ScanAccounts(ctx)
			require.NoError(t, err)
			require.Len(t, accts, 3)
			assert.Equal(t, "1100", accts[0].ID)
			assert.Equal(t, "4000", accts[1].ID)
			assert.Equal(t, "5000", accts[2].ID)
		})
	}
}

func TestEntryRoundTripAndScans(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			amt := decimal.RequireFromString("84.50")
			dates := []string{"2020-01-15", "2020-02-01", "2020-01-31"}
			for i, date := range dates {
				require.NoError(t, s.PutEntry(ctx, model.JournalEntry{
					ID: "je_" + string(rune('a'+i)), Date: date,
					Lines: []model.LineItem{
						{AccountID: "5000", Debit: amt},
						{AccountID: "1100", Credit: amt},
					},
					Type:      model.EntryTypeTransaction,
					CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				}))
			}

			got, ok, err := s.GetEntry(ctx, "je_a")
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, got.Lines, 2)
			assert.True(t, got.Lines[0].Debit.Equal(amt), "amounts survive serialization exactly")

			all, err := s.ScanEntries(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "2020-02-01", all[0].Date)
			assert.Equal(t, "2020-01-31", all[1].Date)
			assert.Equal(t, "2020-01-15", all[2].Date)

			jan, err := s.ScanEntriesByMonth(ctx, "2020-01")
			require.NoError(t, err)
			assert.Len(t, jan, 2)
		})
	}
}

func TestDeleteEntry(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			deleted, err := s.DeleteEntry(ctx, "je_missing")
			require.NoError(t, err)
			assert.False(t, deleted)

			require.NoError(t, s.PutEntry(ctx, model.JournalEntry{ID: "je_x", Date: "2020-01-15"}))
			deleted, err = s.DeleteEntry(ctx, "je_x")
			require.NoError(t, err)
			assert.True(t, deleted)

			_, ok, err := s.GetEntry(ctx, "je_x")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLegacyTransactions(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.PutLegacyTransaction(ctx, model.LegacyTransaction{
				ID: "1", Type: "expense", Amount: decimal.RequireFromString("84.50"),
				Category: "groceries", Date: "2020-01-15",
			}))

			txns, err := s.ScanLegacyTransactions(ctx)
			require.NoError(t, err)
			require.Len(t, txns, 1)
			assert.Equal(t, "groceries", txns[0].Category)
			assert.Equal(t, "84.50", txns[0].Amount.StringFixed(2))
		})
	}
}

func TestBackups(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			older := model.Backup{ID: "backup_1", Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Count: 1}
			newer := model.Backup{ID: "backup_2", Timestamp: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), Count: 2}
			require.NoError(t, s.PutBackup(ctx, older))
			require.NoError(t, s.PutBackup(ctx, newer))

			got, ok, err := s.GetBackup(ctx, "backup_1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 1, got.Count)

			list, err := s.ListBackups(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "backup_2", list[0].ID, "newest first")
		})
	}
}

func TestMeta(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.GetMeta(ctx, "migration_complete")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.PutMeta(ctx, "migration_complete", "2020-03-01T12:00:00Z"))
			require.NoError(t, s.PutMeta(ctx, "migration_complete", "2020-03-02T12:00:00Z"))

			value, ok, err := s.GetMeta(ctx, "migration_complete")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "2020-03-02T12:00:00Z", value)
		})
	}
}
