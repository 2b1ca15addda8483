package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/keepbook-dev/keepbook/internal/accounts"
	"github.com/keepbook-dev/keepbook/internal/id"
	"github.com/keepbook-dev/keepbook/internal/journal"
	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/validate"
)

// Phase names the pipeline stage a run is in, or the stage it failed at.
type Phase string

const (
	PhaseNotStarted          Phase = "not_started"
	PhaseLoading             Phase = "load"
	PhaseBackup              Phase = "backup"
	PhaseValidating          Phase = "validation"
	PhaseConverting          Phase = "conversion"
	PhaseValidatingConverted Phase = "converted_validation"
	PhaseTrialBalance        Phase = "trial_balance"
	PhaseSeeding             Phase = "seeding"
	PhaseSaving              Phase = "saving"
	PhaseComplete            Phase = "complete"
)

// Meta keys recording a completed migration.
const (
	metaMigrationComplete = "migration_complete"
	metaMigrationBackup   = "migration_backup_id"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	ScanLegacyTransactions(ctx context.Context) ([]model.LegacyTransaction, error)
	PutBackup(ctx context.Context, backup model.Backup) error
	GetBackup(ctx context.Context, backupID string) (model.Backup, bool, error)
	ListBackups(ctx context.Context) ([]model.Backup, error)
	GetMeta(ctx context.Context, key string) (string, bool, error)
	PutMeta(ctx context.Context, key, value string) error
}

// Pipeline runs the legacy-to-double-entry migration.
type Pipeline struct {
	store    Store
	accounts *accounts.Service
	journal  *journal.Service
	logger   *slog.Logger
}

// NewPipeline wires a migration pipeline over the given store and services.
func NewPipeline(store Store, accountSvc *accounts.Service, journalSvc *journal.Service, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: store, accounts: accountSvc, journal: journalSvc, logger: logger}
}

// RunSummary carries the numbers behind a pipeline result.
type RunSummary struct {
	SourceCount  int
	Converted    int
	Failed       int
	BackupID     string
	TrialBalance validate.TrialBalanceReport
}

// Result reports the outcome of a dry run or a full migration. On failure,
// Phase names the stage that refused.
type Result struct {
	Success bool
	Phase   Phase
	Message string
	Summary RunSummary
}

func failed(phase Phase, format string, args ...any) Result {
	return Result{Phase: phase, Message: fmt.Sprintf(format, args...)}
}

// DryRun walks the full pipeline over the given records without persisting
// anything: source validation, conversion, converted-entry validation, and
// a trial balance over the converted batch.
func (p *Pipeline) DryRun(ctx context.Context, txns []model.LegacyTransaction, opts Options) Result {
	ledger := validate.LegacyLedger(txns)
	if !ledger.Valid {
		return failed(PhaseValidating, "%d of %d legacy records invalid: %v",
			ledger.InvalidCount, ledger.Total, ledger.Issues)
	}

	conv := ConvertMany(txns, opts)
	if !conv.Success {
		return failed(PhaseConverting, "%d of %d records failed conversion, first: %s",
			conv.Stats.Failed, conv.Stats.Total, conv.Failed[0].Reason)
	}

	batch := validate.Entries(conv.Entries, nil)
	if batch.InvalidCount > 0 {
		return failed(PhaseValidatingConverted, "%d converted entries invalid", batch.InvalidCount)
	}

	trial := validate.TrialBalance(conv.Entries)
	if !trial.Balanced {
		return failed(PhaseTrialBalance, "converted batch out of balance by %s",
			trial.Difference.StringFixed(2))
	}

	return Result{
		Success: true,
		Phase:   PhaseComplete,
		Message: fmt.Sprintf("dry run passed: %d records ready", conv.Stats.Converted),
		Summary: RunSummary{
			SourceCount:  conv.Stats.Total,
			Converted:    conv.Stats.Converted,
			TrialBalance: trial,
		},
	}
}

// Execute runs the full migration: load, backup, dry-run gate, chart
// seeding, conversion, persistence, and a global trial balance over the
// whole journal. Completion is recorded in meta so Status can report it.
func (p *Pipeline) Execute(ctx context.Context, opts Options) Result {
	txns, err := p.store.ScanLegacyTransactions(ctx)
	if err != nil {
		return failed(PhaseLoading, "loading legacy records: %v", err)
	}
	p.logger.Info("migration started", "records", len(txns))

	var backupID string
	if opts.CreateBackup {
		backup, err := p.Backup(ctx, txns, "pre-migration")
		if err != nil {
			return failed(PhaseBackup, "creating backup: %v", err)
		}
		backupID = backup.ID
	}

	if opts.DryRun {
		dry := p.DryRun(ctx, txns, opts)
		dry.Summary.BackupID = backupID
		return dry
	}

	if dry := p.DryRun(ctx, txns, opts); !dry.Success {
		dry.Summary.BackupID = backupID
		return dry
	}

	seeded, err := p.accounts.Seed(ctx)
	if err != nil {
		return failed(PhaseSeeding, "seeding chart of accounts: %v", err)
	}
	if seeded > 0 {
		p.logger.Info("chart of accounts seeded", "accounts", seeded)
	}

	conv := ConvertMany(txns, opts)
	if !conv.Success {
		return failed(PhaseConverting, "%d of %d records failed conversion, first: %s",
			conv.Stats.Failed, conv.Stats.Total, conv.Failed[0].Reason)
	}

	for _, entry := range conv.Entries {
		if _, err := p.journal.Save(ctx, entry, ""); err != nil {
			return failed(PhaseSaving, "saving entry %s: %v", entry.ID, err)
		}
	}

	all, err := p.journal.All(ctx)
	if err != nil {
		return failed(PhaseTrialBalance, "reloading journal: %v", err)
	}
	trial := validate.TrialBalance(all)
	if !trial.Balanced {
		return failed(PhaseTrialBalance, "journal out of balance after migration by %s",
			trial.Difference.StringFixed(2))
	}

	if err := p.store.PutMeta(ctx, metaMigrationComplete, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return failed(PhaseSaving, "recording completion: %v", err)
	}
	if backupID != "" {
		if err := p.store.PutMeta(ctx, metaMigrationBackup, backupID); err != nil {
			return failed(PhaseSaving, "recording backup id: %v", err)
		}
	}

	p.logger.Info("migration complete", "converted", conv.Stats.Converted, "backup", backupID)
	return Result{
		Success: true,
		Phase:   PhaseComplete,
		Message: fmt.Sprintf("migrated %d records", conv.Stats.Converted),
		Summary: RunSummary{
			SourceCount:  conv.Stats.Total,
			Converted:    conv.Stats.Converted,
			BackupID:     backupID,
			TrialBalance: trial,
		},
	}
}

// Status reports whether a migration has completed and when.
type Status struct {
	Migrated    bool
	CompletedAt string
	BackupID    string
}

// MigrationStatus reads the completion markers left by Execute.
func (p *Pipeline) MigrationStatus(ctx context.Context) (Status, error) {
	completed, ok, err := p.store.GetMeta(ctx, metaMigrationComplete)
	if err != nil {
		return Status{}, fmt.Errorf("reading migration status: %w", err)
	}
	if !ok {
		return Status{}, nil
	}
	status := Status{Migrated: true, CompletedAt: completed}
	if backupID, ok, err := p.store.GetMeta(ctx, metaMigrationBackup); err != nil {
		return Status{}, fmt.Errorf("reading migration status: %w", err)
	} else if ok {
		status.BackupID = backupID
	}
	return status, nil
}

// Backup snapshots the given legacy records under a timestamped id.
func (p *Pipeline) Backup(ctx context.Context, txns []model.LegacyTransaction, label string) (model.Backup, error) {
	now := time.Now().UTC()
	backup := model.Backup{
		ID:           id.NewBackupID(now),
		Label:        label,
		Timestamp:    now,
		Count:        len(txns),
		Transactions: txns,
	}
	if err := p.store.PutBackup(ctx, backup); err != nil {
		return model.Backup{}, fmt.Errorf("storing backup: %w", err)
	}
	p.logger.Info("backup created", "id", backup.ID, "records", backup.Count)
	return backup, nil
}

// GetBackup loads one backup by id.
func (p *Pipeline) GetBackup(ctx context.Context, backupID string) (model.Backup, error) {
	backup, ok, err := p.store.GetBackup(ctx, backupID)
	if err != nil {
		return model.Backup{}, fmt.Errorf("loading backup %s: %w", backupID, err)
	}
	if !ok {
		return model.Backup{}, fmt.Errorf("backup %s not found", backupID)
	}
	return backup, nil
}

// ListBackups returns all backups, newest first.
func (p *Pipeline) ListBackups(ctx context.Context) ([]model.Backup, error) {
	backups, err := p.store.ListBackups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	return backups, nil
}

// Restore surfaces a backup's raw snapshot for manual reinstatement. It
// does not undo journal entries a completed migration created.
func (p *Pipeline) Restore(ctx context.Context, backupID string) (model.Backup, error) {
	backup, err := p.GetBackup(ctx, backupID)
	if err != nil {
		return model.Backup{}, err
	}
	p.logger.Warn("backup restore returns the legacy snapshot only; migrated journal entries are not removed",
		"id", backup.ID, "records", backup.Count)
	return backup, nil
}
