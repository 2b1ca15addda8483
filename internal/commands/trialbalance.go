package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/validate"
)

func newTrialBalanceCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Verify the whole journal balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.journal.All(cmd.Context())
			if err != nil {
				return err
			}

			trial := validate.TrialBalance(entries)
			fmt.Printf("Entries: %d (%d lines)\n", trial.Entries, trial.Lines)
			fmt.Printf("Total debits:  %s\n", trial.TotalDebits.StringFixed(2))
			fmt.Printf("Total credits: %s\n", trial.TotalCredits.StringFixed(2))
			if !trial.Balanced {
				return fmt.Errorf("trial balance failed: difference %s", trial.Difference.StringFixed(2))
			}
			fmt.Println("Balanced.")

			accts, err := app.accounts.List(cmd.Context(), "", false)
			if err != nil {
				return err
			}
			balances := app.reporter.AllAccountBalances(entries, accts)
			for _, issue := range validate.AccountBalances(balances, accts) {
				fmt.Printf("Warning: %s\n", issue)
			}
			return nil
		},
	}
}
