package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy flat records into the double-entry journal",
	}
	cmd.AddCommand(newMigrateRunCommand(configPath))
	cmd.AddCommand(newMigrateStatusCommand(configPath))
	cmd.AddCommand(newMigrateBackupsCommand(configPath))
	return cmd
}

func newMigrateRunCommand(configPath *string) *cobra.Command {
	var dryRun bool
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the migration pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			opts := app.migrateOptions()
			opts.CreateBackup = !noBackup
			opts.DryRun = dryRun

			result := app.pipeline.Execute(cmd.Context(), opts)
			if !result.Success {
				return fmt.Errorf("migration failed at %s: %s", result.Phase, result.Message)
			}

			fmt.Println(result.Message)
			if result.Summary.BackupID != "" {
				fmt.Printf("Backup: %s\n", result.Summary.BackupID)
			}
			fmt.Printf("Trial balance: %s debits, %s credits over %d entries\n",
				result.Summary.TrialBalance.TotalDebits.StringFixed(2),
				result.Summary.TrialBalance.TotalCredits.StringFixed(2),
				result.Summary.TrialBalance.Entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and convert without saving")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-migration backup")
	return cmd
}

func newMigrateStatusCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			status, err := app.pipeline.MigrationStatus(cmd.Context())
			if err != nil {
				return err
			}
			if !status.Migrated {
				fmt.Println("Migration has not run.")
				return nil
			}
			fmt.Printf("Migration completed at %s\n", status.CompletedAt)
			if status.BackupID != "" {
				fmt.Printf("Backup: %s\n", status.BackupID)
			}
			return nil
		},
	}
}

func newMigrateBackupsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List legacy data backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			backups, err := app.pipeline.ListBackups(cmd.Context())
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups.")
				return nil
			}
			for _, b := range backups {
				label := b.Label
				if label == "" {
					label = "-"
				}
				fmt.Printf("%s  %s  %d records  %s\n",
					b.ID, b.Timestamp.Format("2006-01-02 15:04"), b.Count, label)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <backup-id>",
		Short: "Show the records in a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			backup, err := app.pipeline.GetBackup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, %d records)\n", backup.ID, backup.Timestamp.Format("2006-01-02 15:04"), backup.Count)
			for _, t := range backup.Transactions {
				fmt.Printf("  %s  %-7s  %-16s %10s  %s\n", t.Date, t.Type, t.Category, t.Amount.StringFixed(2), t.Notes)
			}
			return nil
		},
	})
	return cmd
}
