// Package journal provides CRUD over journal entries. Every write re-checks
// the entry balance; an unbalanced entry can never reach the store.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keepbook-dev/keepbook/internal/id"
	"github.com/keepbook-dev/keepbook/internal/model"
)

// ErrUnbalanced means an entry's debits and credits do not match. This is
// the one invariant that is never tolerated, even from callers that claim
// to have validated already.
var ErrUnbalanced = errors.New("unbalanced entry")

// ErrInvalidEntry means the entry fails a structural requirement.
var ErrInvalidEntry = errors.New("invalid entry")

// Store is the slice of the durable store the journal needs.
type Store interface {
	GetEntry(ctx context.Context, entryID string) (model.JournalEntry, bool, error)
	PutEntry(ctx context.Context, entry model.JournalEntry) error
	DeleteEntry(ctx context.Context, entryID string) (bool, error)
	ScanEntries(ctx context.Context) ([]model.JournalEntry, error)
	ScanEntriesByMonth(ctx context.Context, monthPrefix string) ([]model.JournalEntry, error)
}

// Service provides journal entry storage operations.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a journal Service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Save stores a journal entry, minting an ID and createdAt when absent.
// Saving an existing ID is a full replacement that preserves the original
// createdAt and stamps modifiedAt and the given reason. The trial balance is
// re-verified here regardless of what the caller already checked.
func (s *Service) Save(ctx context.Context, entry model.JournalEntry, modifiedReason string) (model.JournalEntry, error) {
	if len(entry.Lines) < 2 {
		return model.JournalEntry{}, fmt.Errorf("%w: must have at least 2 line items", ErrInvalidEntry)
	}
	if entry.Date == "" {
		return model.JournalEntry{}, fmt.Errorf("%w: must have a date", ErrInvalidEntry)
	}

	totalDebits := entry.TotalDebits()
	totalCredits := entry.TotalCredits()
	if !totalDebits.Equal(totalCredits) {
		return model.JournalEntry{}, fmt.Errorf("%w: debits %s != credits %s",
			ErrUnbalanced, totalDebits.StringFixed(2), totalCredits.StringFixed(2))
	}

	now := time.Now().UTC()

	if entry.ID == "" {
		entry.ID = id.NewEntryID()
	}
	if entry.Type == "" {
		entry.Type = model.EntryTypeTransaction
	}
	entry.BalanceCheck = true

	existing, exists, err := s.store.GetEntry(ctx, entry.ID)
	if err != nil {
		return model.JournalEntry{}, err
	}
	if exists {
		entry.CreatedAt = existing.CreatedAt
		entry.ModifiedAt = &now
		entry.ModifiedReason = modifiedReason
	} else {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		entry.ModifiedAt = nil
		entry.ModifiedReason = ""
	}

	if err := s.store.PutEntry(ctx, entry); err != nil {
		return model.JournalEntry{}, err
	}

	s.logger.Debug("entry saved", "id", entry.ID, "date", entry.Date, "updated", exists)
	return entry, nil
}

// Get returns a journal entry by ID. The second return is false when absent.
func (s *Service) Get(ctx context.Context, entryID string) (model.JournalEntry, bool, error) {
	return s.store.GetEntry(ctx, entryID)
}

// ForMonth returns entries whose date starts with the "YYYY-MM" prefix,
// newest first.
func (s *Service) ForMonth(ctx context.Context, monthPrefix string) ([]model.JournalEntry, error) {
	return s.store.ScanEntriesByMonth(ctx, monthPrefix)
}

// All returns every journal entry, newest first. Cost grows with the ledger;
// acceptable below a few thousand entries.
func (s *Service) All(ctx context.Context) ([]model.JournalEntry, error) {
	return s.store.ScanEntries(ctx)
}

// Delete removes an entry. Returns false, not an error, when the entry does
// not exist. Deletion is irreversible and breaks the audit trail, so it is
// logged loudly, but it is the user's call.
func (s *Service) Delete(ctx context.Context, entryID string) (bool, error) {
	deleted, err := s.store.DeleteEntry(ctx, entryID)
	if err != nil {
		return false, err
	}
	if !deleted {
		s.logger.Warn("delete requested for unknown entry", "id", entryID)
		return false, nil
	}

	s.logger.Warn("journal entry deleted, audit trail broken", "id", entryID)
	return true, nil
}
