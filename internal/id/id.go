package id

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	entryPrefix    = "je_"
	migratedPrefix = "migrated_"
	backupPrefix   = "backup_"
	legacyPrefix   = "txn_"
)

// NewEntryID returns a fresh journal entry ID like "je_6a1f...".
func NewEntryID() string {
	return entryPrefix + uuid.NewString()
}

// MigratedID derives the journal entry ID for a migrated legacy record.
// Deterministic so a re-run overwrites rather than duplicates.
func MigratedID(sourceID string) string {
	return migratedPrefix + sourceID
}

// IsMigrated reports whether an entry ID came from the migration pipeline.
func IsMigrated(entryID string) bool {
	return strings.HasPrefix(entryID, migratedPrefix)
}

// NewLegacyID returns an ID for an imported legacy record with none of its own.
func NewLegacyID() string {
	return legacyPrefix + uuid.NewString()
}

// NewBackupID returns a timestamp-keyed backup ID like "backup_20250901T101500".
func NewBackupID(t time.Time) string {
	return backupPrefix + t.UTC().Format("20060102T150405")
}
