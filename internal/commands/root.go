// Package commands wires the keepbook CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/accounts"
	"github.com/keepbook-dev/keepbook/internal/buildinfo"
	"github.com/keepbook-dev/keepbook/internal/config"
	"github.com/keepbook-dev/keepbook/internal/journal"
	"github.com/keepbook-dev/keepbook/internal/migrate"
	"github.com/keepbook-dev/keepbook/internal/report"
	"github.com/keepbook-dev/keepbook/internal/storage"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "keepbook",
		Short:   "Personal double-entry bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "keepbook.yaml", "config file path")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newAccountsCommand(&configPath))
	rootCmd.AddCommand(newAddCommand(&configPath))
	rootCmd.AddCommand(newEntriesCommand(&configPath))
	rootCmd.AddCommand(newDeleteCommand(&configPath))
	rootCmd.AddCommand(newSummaryCommand(&configPath))
	rootCmd.AddCommand(newNetWorthCommand(&configPath))
	rootCmd.AddCommand(newTrialBalanceCommand(&configPath))
	rootCmd.AddCommand(newMigrateCommand(&configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))

	return rootCmd
}

// app bundles the services a command needs, built from one config load.
type app struct {
	cfg      *config.Config
	db       *storage.DB
	logger   *slog.Logger
	accounts *accounts.Service
	journal  *journal.Service
	reporter *report.Reporter
	pipeline *migrate.Pipeline
}

func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)

	db, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database, err)
	}

	accountSvc := accounts.NewService(db, logger)
	journalSvc := journal.NewService(db, logger)
	return &app{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		accounts: accountSvc,
		journal:  journalSvc,
		reporter: report.New(logger),
		pipeline: migrate.NewPipeline(db, accountSvc, journalSvc, logger),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// migrateOptions builds pipeline options from config.
func (a *app) migrateOptions() migrate.Options {
	opts := migrate.Options{BankAccount: a.cfg.BankAccount}
	if len(a.cfg.CategoryMap) > 0 {
		merged := migrate.DefaultCategoryMap()
		for k, v := range a.cfg.CategoryMap {
			merged[k] = v
		}
		opts.CategoryMap = merged
	}
	return opts
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
