package storage

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// Mem is an in-memory store with the same access surface as DB. It backs
// package tests and throwaway dry-run sessions; nothing it holds survives
// the process.
type Mem struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	entries  map[string]model.JournalEntry
	legacy   map[string]model.LegacyTransaction
	backups  map[string]model.Backup
	meta     map[string]string
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{
		accounts: make(map[string]model.Account),
		entries:  make(map[string]model.JournalEntry),
		legacy:   make(map[string]model.LegacyTransaction),
		backups:  make(map[string]model.Backup),
		meta:     make(map[string]string),
	}
}

// GetAccount returns the account with the given ID, if present.
func (m *Mem) GetAccount(_ context.Context, accountID string) (model.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	return acct, ok, nil
}

// PutAccount inserts or replaces an account.
func (m *Mem) PutAccount(_ context.Context, acct model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[acct.ID] = acct
	return nil
}

// ScanAccounts returns every account, sorted by numeric ID ascending.
func (m *Mem) ScanAccounts(_ context.Context) ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := make([]model.Account, 0, len(m.accounts))
	for _, acct := range m.accounts {
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		a, _ := strconv.Atoi(accounts[i].ID)
		b, _ := strconv.Atoi(accounts[j].ID)
		return a < b
	})
	return accounts, nil
}

// GetEntry returns the journal entry with the given ID, if present.
func (m *Mem) GetEntry(_ context.Context, entryID string) (model.JournalEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[entryID]
	return entry, ok, nil
}

// PutEntry inserts or replaces a journal entry.
func (m *Mem) PutEntry(_ context.Context, entry model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

// DeleteEntry removes a journal entry. Returns false if it did not exist.
func (m *Mem) DeleteEntry(_ context.Context, entryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entryID]; !ok {
		return false, nil
	}
	delete(m.entries, entryID)
	return true, nil
}

// ScanEntries returns all journal entries, newest date first.
func (m *Mem) ScanEntries(_ context.Context) ([]model.JournalEntry, error) {
	return m.scanEntries(""), nil
}

// ScanEntriesByMonth returns entries whose date starts with the given
// "YYYY-MM" prefix, newest date first.
func (m *Mem) ScanEntriesByMonth(_ context.Context, monthPrefix string) ([]model.JournalEntry, error) {
	return m.scanEntries(monthPrefix), nil
}

func (m *Mem) scanEntries(prefix string) []model.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []model.JournalEntry
	for _, entry := range m.entries {
		if prefix == "" || strings.HasPrefix(entry.Date, prefix) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// ScanLegacyTransactions returns every record in the legacy collection.
func (m *Mem) ScanLegacyTransactions(_ context.Context) ([]model.LegacyTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txns := make([]model.LegacyTransaction, 0, len(m.legacy))
	for _, txn := range m.legacy {
		txns = append(txns, txn)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].ID < txns[j].ID })
	return txns, nil
}

// PutLegacyTransaction stores a legacy record.
func (m *Mem) PutLegacyTransaction(_ context.Context, txn model.LegacyTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legacy[txn.ID] = txn
	return nil
}

// PutBackup stores a migration backup snapshot.
func (m *Mem) PutBackup(_ context.Context, b model.Backup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backups[b.ID] = b
	return nil
}

// GetBackup returns a backup snapshot by ID, if present.
func (m *Mem) GetBackup(_ context.Context, backupID string) (model.Backup, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.backups[backupID]
	return b, ok, nil
}

// ListBackups returns all backup snapshots, most recent first.
func (m *Mem) ListBackups(_ context.Context) ([]model.Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	backups := make([]model.Backup, 0, len(m.backups))
	for _, b := range m.backups {
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Timestamp.After(backups[j].Timestamp) })
	return backups, nil
}

// GetMeta returns a value from the meta collection, if present.
func (m *Mem) GetMeta(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.meta[key]
	return value, ok, nil
}

// PutMeta sets a value in the meta collection.
func (m *Mem) PutMeta(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[key] = value
	return nil
}
