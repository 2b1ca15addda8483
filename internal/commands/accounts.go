package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/model"
)

func newAccountsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(newAccountsListCommand(configPath))
	cmd.AddCommand(newAccountsRenameCommand(configPath))
	cmd.AddCommand(newAccountsActivateCommand(configPath, true))
	cmd.AddCommand(newAccountsActivateCommand(configPath, false))
	return cmd
}

func newAccountsListCommand(configPath *string) *cobra.Command {
	var accountType string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			if accountType != "" && !model.AccountType(accountType).Valid() {
				return fmt.Errorf("unknown account type %q", accountType)
			}

			accts, err := app.accounts.List(cmd.Context(), model.AccountType(accountType), activeOnly)
			if err != nil {
				return err
			}

			for _, a := range accts {
				status := ""
				if !a.IsActive {
					status = " (inactive)"
				}
				fmt.Printf("%-6s %-10s %s%s\n", a.ID, a.Type, a.Name, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "filter by account type")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "active accounts only")
	return cmd
}

func newAccountsRenameCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <account-id> <new-name>",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			acct, err := app.accounts.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %q\n", acct.ID, acct.Name)
			return nil
		},
	}
}

func newAccountsActivateCommand(configPath *string, active bool) *cobra.Command {
	use, short, verb := "activate", "Activate an account", "Activated"
	if !active {
		use, short, verb = "deactivate", "Deactivate an account", "Deactivated"
	}
	return &cobra.Command{
		Use:   use + " <account-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			acct, err := app.accounts.SetActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s (%s)\n", verb, acct.ID, acct.Name)
			return nil
		},
	}
}
