package journal

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/storage"
)

func entry(date, debitAcct, creditAcct, amount string) model.JournalEntry {
	amt := decimal.RequireFromString(amount)
	return model.JournalEntry{
		Date: date,
		Lines: []model.LineItem{
			{AccountID: debitAcct, Debit: amt},
			{AccountID: creditAcct, Credit: amt},
		},
		Notes: "test",
	}
}

func TestSaveNewEntry(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, entry("2020-01-15", "5000", "1100", "45.20"), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(saved.ID, "je_"))
	assert.Equal(t, model.EntryTypeTransaction, saved.Type)
	assert.True(t, saved.BalanceCheck)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Nil(t, saved.ModifiedAt)

	got, ok, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved.ID, got.ID)
}

func TestSaveKeepsExplicitEntryType(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	e := entry("2020-01-01", "1100", "3000", "5000.00")
	e.Type = model.EntryTypeOpeningBalance

	saved, err := svc.Save(ctx, e, "")
	require.NoError(t, err)
	assert.Equal(t, model.EntryTypeOpeningBalance, saved.Type)

	got, ok, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.EntryTypeOpeningBalance, got.Type)
}

func TestSaveRejectsUnbalanced(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)

	e := model.JournalEntry{
		Date: "2020-01-15",
		Lines: []model.LineItem{
			{AccountID: "5000", Debit: decimal.RequireFromString("50.00")},
			{AccountID: "1100", Credit: decimal.RequireFromString("45.00")},
		},
	}
	_, err := svc.Save(context.Background(), e, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.Contains(t, err.Error(), "50.00")
	assert.Contains(t, err.Error(), "45.00")
}

func TestSaveRejectsStructurallyInvalid(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, model.JournalEntry{Date: "2020-01-15"}, "")
	assert.ErrorIs(t, err, ErrInvalidEntry)

	e := entry("", "5000", "1100", "10")
	_, err = svc.Save(ctx, e, "")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestSaveUpdatePreservesCreatedAt(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, entry("2020-01-15", "5000", "1100", "45.20"), "")
	require.NoError(t, err)

	saved.Notes = "corrected amount"
	saved.Lines[0].Debit = decimal.RequireFromString("47.20")
	saved.Lines[1].Credit = decimal.RequireFromString("47.20")

	updated, err := svc.Save(ctx, saved, "typo in amount")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.ModifiedAt)
	assert.Equal(t, "typo in amount", updated.ModifiedReason)
}

func TestForMonth(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	for _, date := range []string{"2020-01-15", "2020-01-31", "2020-02-01"} {
		_, err := svc.Save(ctx, entry(date, "5000", "1100", "10"), "")
		require.NoError(t, err)
	}

	jan, err := svc.ForMonth(ctx, "2020-01")
	require.NoError(t, err)
	require.Len(t, jan, 2)
	// Newest first.
	assert.Equal(t, "2020-01-31", jan[0].Date)
	assert.Equal(t, "2020-01-15", jan[1].Date)

	feb, err := svc.ForMonth(ctx, "2020-02")
	require.NoError(t, err)
	assert.Len(t, feb, 1)
}

func TestDeleteMissingIsNotAnError(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "je_does_not_exist")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDelete(t *testing.T) {
	svc := NewService(storage.NewMem(), nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, entry("2020-01-15", "5000", "1100", "10"), "")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
