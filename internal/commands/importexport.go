package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/importer"
)

func newImportCommand(configPath *string) *cobra.Command {
	var backup bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import legacy records from a CSV export or backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			var result importer.ParseResult
			if backup {
				parsed, err := importer.ParseBackup(f)
				if err != nil {
					return err
				}
				result = parsed.ParseResult
				if date := parsed.Metadata["Backup Date"]; date != "" {
					app.logger.Info("importing backup", "backup_date", date)
				}
			} else {
				result, err = importer.Parse(f)
				if err != nil {
					return err
				}
			}

			existing, err := app.db.ScanLegacyTransactions(cmd.Context())
			if err != nil {
				return err
			}

			added, duplicates := 0, 0
			for _, txn := range result.Transactions {
				if importer.IsDuplicate(txn, existing) {
					duplicates++
					continue
				}
				if err := app.db.PutLegacyTransaction(cmd.Context(), txn); err != nil {
					return fmt.Errorf("storing record %s: %w", txn.ID, err)
				}
				existing = append(existing, txn)
				added++
			}

			fmt.Printf("Imported %d record(s)", added)
			if duplicates > 0 {
				fmt.Printf(", %d duplicate(s) skipped", duplicates)
			}
			if result.Skipped > 0 {
				fmt.Printf(", %d invalid row(s) skipped", result.Skipped)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&backup, "backup", false, "file is a backup with metadata headers")
	return cmd
}

func newExportCommand(configPath *string) *cobra.Command {
	var out string
	var backup bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export legacy records to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			txns, err := app.db.ScanLegacyTransactions(cmd.Context())
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				return fmt.Errorf("no legacy records to export")
			}

			if out == "" {
				stamp := time.Now().Format("2006-01-02")
				out = fmt.Sprintf("keepbook-%s.csv", stamp)
				if backup {
					out = fmt.Sprintf("keepbook-backup-%s.csv", time.Now().Format("2006-01-02-150405"))
				}
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			if backup {
				err = importer.WriteBackup(f, txns, time.Now())
			} else {
				err = importer.Write(f, txns)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d record(s) to %s\n", len(txns), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default keepbook-<date>.csv)")
	cmd.Flags().BoolVar(&backup, "backup", false, "write a backup with metadata headers and IDs")
	return cmd
}
