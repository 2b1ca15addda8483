package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/validate"
)

func newAddCommand(configPath *string) *cobra.Command {
	var date string
	var notes string
	var tags []string
	var debits []string
	var credits []string
	var opening bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a journal entry",
		Example: `  keepbook add --date 2026-01-15 \
    --debit 5000=45.20 --credit 1100=45.20 --notes "Weekly shop"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			iso, future, err := validate.Date(date)
			if err != nil {
				return err
			}
			if future {
				app.logger.Warn("entry dated in the future", "date", iso)
			}

			var lines []model.LineItem
			for _, spec := range debits {
				line, err := parseLine(spec, true)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}
			for _, spec := range credits {
				line, err := parseLine(spec, false)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}

			entry := model.JournalEntry{
				Date:  iso,
				Lines: lines,
				Notes: notes,
				Tags:  tags,
			}
			if opening {
				entry.Type = model.EntryTypeOpeningBalance
			}

			accts, err := app.accounts.List(cmd.Context(), "", false)
			if err != nil {
				return err
			}
			var result validate.Result
			if opening {
				result = validate.OpeningBalance(entry, accts)
			} else {
				result = validate.Entry(entry, accts)
			}
			for _, w := range result.Warnings {
				app.logger.Warn(w)
			}
			if !result.Valid() {
				return fmt.Errorf("invalid entry: %s", strings.Join(result.Errors, "; "))
			}

			saved, err := app.journal.Save(cmd.Context(), entry, "")
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s on %s (%s debited, %s credited)\n",
				saved.ID, saved.Date,
				saved.TotalDebits().StringFixed(2), saved.TotalCredits().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD, DD/MM/YYYY, or DD-MMM)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&notes, "notes", "", "entry notes")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit line as ACCOUNT=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit line as ACCOUNT=AMOUNT (repeatable)")
	cmd.Flags().BoolVar(&opening, "opening", false, "record an opening balance (asset lines balanced by equity)")
	return cmd
}

// parseLine turns "1100=45.20" into a single-sided line item.
func parseLine(spec string, debit bool) (model.LineItem, error) {
	accountID, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return model.LineItem{}, fmt.Errorf("line %q: expected ACCOUNT=AMOUNT", spec)
	}
	amount, err := validate.Amount(raw)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("line %q: %w", spec, err)
	}
	line := model.LineItem{AccountID: strings.TrimSpace(accountID), Debit: decimal.Zero, Credit: decimal.Zero}
	if debit {
		line.Debit = amount
	} else {
		line.Credit = amount
	}
	return line, nil
}
