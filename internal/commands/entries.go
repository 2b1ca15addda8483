package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/model"
)

func newEntriesCommand(configPath *string) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			var entries []model.JournalEntry
			if month != "" {
				entries, err = app.journal.ForMonth(cmd.Context(), month)
			} else {
				entries, err = app.journal.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Printf("%s  %s  %s  %s\n", e.Date, e.ID, e.TotalDebits().StringFixed(2), e.Notes)
				for _, line := range e.Lines {
					if line.Debit.IsPositive() {
						fmt.Printf("    Dr %-6s %s\n", line.AccountID, line.Debit.StringFixed(2))
					} else {
						fmt.Printf("    Cr %-6s %s\n", line.AccountID, line.Credit.StringFixed(2))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "filter by month (YYYY-MM)")
	return cmd
}

func newDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			deleted, err := app.journal.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Printf("Entry %s not found\n", args[0])
				return nil
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
