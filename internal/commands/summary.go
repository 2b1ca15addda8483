package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSummaryCommand(configPath *string) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the financial dashboard for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			if month == "" {
				month = time.Now().Format("2006-01")
			}

			entries, err := app.journal.All(cmd.Context())
			if err != nil {
				return err
			}
			accts, err := app.accounts.List(cmd.Context(), "", false)
			if err != nil {
				return err
			}

			s := app.reporter.FinancialSummary(entries, accts, month)

			fmt.Printf("Summary for %s\n", s.Period)
			fmt.Printf("  Income:    %s\n", s.Month.Income.StringFixed(2))
			fmt.Printf("  Expenses:  %s\n", s.Month.Expenses.StringFixed(2))
			fmt.Printf("  Net:       %s\n", s.Month.Net.StringFixed(2))
			fmt.Printf("  Entries:   %d\n", s.Month.Count)
			fmt.Printf("Net worth:   %s\n", s.NetWorth.StringFixed(2))
			fmt.Printf("All time:    %s income, %s expenses over %d entries\n",
				s.AllTime.Income.StringFixed(2), s.AllTime.Expenses.StringFixed(2), s.AllTime.Count)

			if len(s.TopExpenses) > 0 {
				fmt.Println("Top expense categories:")
				for _, c := range s.TopExpenses {
					fmt.Printf("  %-20s %10s  %s%%\n", c.Category, c.Amount.StringFixed(2), c.Percentage.StringFixed(2))
				}
			}
			for _, w := range s.Warnings {
				fmt.Printf("Warning: %s\n", w)
			}

			change := app.reporter.MonthOverMonth(entries, accts, month)
			fmt.Printf("Spending vs %s: %s (%s%%, %s)\n",
				change.PreviousMonth, change.Change.StringFixed(2),
				change.PercentChange.StringFixed(2), change.Direction)

			rate := app.reporter.MonthlySavingsRate(entries, accts, month)
			fmt.Printf("Savings rate: %s%%\n", rate.Rate.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize (YYYY-MM, default current)")
	return cmd
}

func newNetWorthCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Show itemized net worth",
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
			accts, err := app.accounts.List(cmd.Context(), "", true)
			if err != nil {
				return err
			}

			b := app.reporter.NetWorthDetail(entries, accts)

			fmt.Println("Assets:")
			for _, item := range b.Assets {
				fmt.Printf("  %-6s %-24s %12s\n", item.ID, item.Name, item.Balance.StringFixed(2))
			}
			fmt.Printf("  Total assets: %s\n", b.TotalAssets.StringFixed(2))

			fmt.Println("Liabilities:")
			for _, item := range b.Liabilities {
				fmt.Printf("  %-6s %-24s %12s\n", item.ID, item.Name, item.Balance.StringFixed(2))
			}
			fmt.Printf("  Total liabilities: %s\n", b.TotalLiabilities.StringFixed(2))

			fmt.Printf("Net worth: %s\n", b.NetWorth.StringFixed(2))
			return nil
		},
	}
}
