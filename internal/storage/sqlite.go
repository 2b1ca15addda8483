// Package storage is the durable store boundary: named collections of JSON
// documents over SQLite, with get/put/delete/scan access and prefix scans on
// the entry date index. The store creates its own schema but never migrates
// data; data migration belongs to the migrate package.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/keepbook-dev/keepbook/internal/model"
)

// schemaVersion is bumped when the table layout changes.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id   TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	doc  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS journal_entries (
	id   TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	type TEXT NOT NULL,
	doc  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS journal_entries_date_idx ON journal_entries (date);
CREATE TABLE IF NOT EXISTS transactions (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS backups (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	doc        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// DB is a SQLite-backed document store. Safe to share: database/sql pools
// connections, and the single-writer discipline is SQLite's own.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading schema version: %w", err)
	}

	if version < schemaVersion {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting schema version: %w", err)
		}
	}

	return &DB{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetAccount returns the account with the given ID, if present.
func (d *DB) GetAccount(ctx context.Context, accountID string) (model.Account, bool, error) {
	var doc string
	err := d.db.QueryRowContext(ctx, "SELECT doc FROM accounts WHERE id = ?", accountID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("reading account %s: %w", accountID, err)
	}

	var acct model.Account
	if err := json.Unmarshal([]byte(doc), &acct); err != nil {
		return model.Account{}, false, fmt.Errorf("decoding account %s: %w", accountID, err)
	}
	return acct, true, nil
}

// PutAccount inserts or replaces an account.
func (d *DB) PutAccount(ctx context.Context, acct model.Account) error {
	doc, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encoding account %s: %w", acct.ID, err)
	}
	_, err = d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO accounts (id, type, doc) VALUES (?, ?, ?)",
		acct.ID, string(acct.Type), string(doc))
	if err != nil {
		return fmt.Errorf("writing account %s: %w", acct.ID, err)
	}
	return nil
}

// ScanAccounts returns every account, sorted by numeric ID ascending.
func (d *DB) ScanAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT doc FROM accounts ORDER BY CAST(id AS INTEGER)")
	if err != nil {
		return nil, fmt.Errorf("scanning accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		var acct model.Account
		if err := json.Unmarshal([]byte(doc), &acct); err != nil {
			return nil, fmt.Errorf("decoding account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// GetEntry returns the journal entry with the given ID, if present.
func (d *DB) GetEntry(ctx context.Context, entryID string) (model.JournalEntry, bool, error) {
	var doc string
	err := d.db.QueryRowContext(ctx, "SELECT doc FROM journal_entries WHERE id = ?", entryID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.JournalEntry{}, false, nil
	}
	if err != nil {
		return model.JournalEntry{}, false, fmt.Errorf("reading entry %s: %w", entryID, err)
	}

	var entry model.JournalEntry
	if err := json.Unmarshal([]byte(doc), &entry); err != nil {
		return model.JournalEntry{}, false, fmt.Errorf("decoding entry %s: %w", entryID, err)
	}
	return entry, true, nil
}

// PutEntry inserts or replaces a journal entry.
func (d *DB) PutEntry(ctx context.Context, entry model.JournalEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding entry %s: %w", entry.ID, err)
	}
	_, err = d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO journal_entries (id, date, type, doc) VALUES (?, ?, ?, ?)",
		entry.ID, entry.Date, string(entry.Type), string(doc))
	if err != nil {
		return fmt.Errorf("writing entry %s: %w", entry.ID, err)
	}
	return nil
}

// DeleteEntry removes a journal entry. Returns false if it did not exist.
func (d *DB) DeleteEntry(ctx context.Context, entryID string) (bool, error) {
	res, err := d.db.ExecContext(ctx, "DELETE FROM journal_entries WHERE id = ?", entryID)
	if err != nil {
		return false, fmt.Errorf("deleting entry %s: %w", entryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting entry %s: %w", entryID, err)
	}
	return n > 0, nil
}

// ScanEntries returns all journal entries, newest date first.
func (d *DB) ScanEntries(ctx context.Context) ([]model.JournalEntry, error) {
	return d.scanEntries(ctx, "SELECT doc FROM journal_entries ORDER BY date DESC, id")
}

// ScanEntriesByMonth returns entries whose date starts with the given
// "YYYY-MM" prefix, newest date first.
func (d *DB) ScanEntriesByMonth(ctx context.Context, monthPrefix string) ([]model.JournalEntry, error) {
	return d.scanEntries(ctx,
		"SELECT doc FROM journal_entries WHERE date LIKE ? ORDER BY date DESC, id", monthPrefix+"%")
}

func (d *DB) scanEntries(ctx context.Context, query string, args ...any) ([]model.JournalEntry, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scanning entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		var entry model.JournalEntry
		if err := json.Unmarshal([]byte(doc), &entry); err != nil {
			return nil, fmt.Errorf("decoding entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ScanLegacyTransactions returns every record in the legacy transactions
// collection. The collection is migration input; nothing writes to it except
// imports of old backups.
func (d *DB) ScanLegacyTransactions(ctx context.Context) ([]model.LegacyTransaction, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT doc FROM transactions")
	if err != nil {
		return nil, fmt.Errorf("scanning legacy transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.LegacyTransaction
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning legacy row: %w", err)
		}
		var txn model.LegacyTransaction
		if err := json.Unmarshal([]byte(doc), &txn); err != nil {
			return nil, fmt.Errorf("decoding legacy transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// PutLegacyTransaction stores a legacy record, typically from a backup import.
func (d *DB) PutLegacyTransaction(ctx context.Context, txn model.LegacyTransaction) error {
	doc, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("encoding legacy transaction %s: %w", txn.ID, err)
	}
	_, err = d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO transactions (id, doc) VALUES (?, ?)", txn.ID, string(doc))
	if err != nil {
		return fmt.Errorf("writing legacy transaction %s: %w", txn.ID, err)
	}
	return nil
}

// PutBackup stores a migration backup snapshot. Snapshots are immutable;
// writing an existing ID replaces it byte for byte, nothing else touches them.
func (d *DB) PutBackup(ctx context.Context, b model.Backup) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding backup %s: %w", b.ID, err)
	}
	_, err = d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO backups (id, created_at, doc) VALUES (?, ?, ?)",
		b.ID, b.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), string(doc))
	if err != nil {
		return fmt.Errorf("writing backup %s: %w", b.ID, err)
	}
	return nil
}

// GetBackup returns a backup snapshot by ID, if present.
func (d *DB) GetBackup(ctx context.Context, backupID string) (model.Backup, bool, error) {
	var doc string
	err := d.db.QueryRowContext(ctx, "SELECT doc FROM backups WHERE id = ?", backupID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Backup{}, false, nil
	}
	if err != nil {
		return model.Backup{}, false, fmt.Errorf("reading backup %s: %w", backupID, err)
	}

	var b model.Backup
	if err := json.Unmarshal([]byte(doc), &b); err != nil {
		return model.Backup{}, false, fmt.Errorf("decoding backup %s: %w", backupID, err)
	}
	return b, true, nil
}

// ListBackups returns all backup snapshots, most recent first.
func (d *DB) ListBackups(ctx context.Context) ([]model.Backup, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT doc FROM backups ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("scanning backups: %w", err)
	}
	defer rows.Close()

	var backups []model.Backup
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning backup row: %w", err)
		}
		var b model.Backup
		if err := json.Unmarshal([]byte(doc), &b); err != nil {
			return nil, fmt.Errorf("decoding backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// GetMeta returns a value from the meta collection, if present.
func (d *DB) GetMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value, true, nil
}

// PutMeta sets a value in the meta collection.
func (d *DB) PutMeta(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}
