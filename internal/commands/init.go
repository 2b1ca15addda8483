package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/config"
)

func newInitCommand(configPath *string) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a keepbook config and seed the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(*configPath); err == nil {
				return fmt.Errorf("%s already exists", *configPath)
			}

			cfg := config.Default()
			if database != "" {
				cfg.Database = database
			}
			if err := config.Save(*configPath, cfg); err != nil {
				return err
			}

			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			seeded, err := app.accounts.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding chart of accounts: %w", err)
			}

			fmt.Printf("Initialized %s with %d accounts in %s\n", *configPath, seeded, cfg.Database)
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "SQLite database path")
	return cmd
}
