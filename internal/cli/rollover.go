package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/moneymate/backend/internal/clock"
	"github.com/moneymate/backend/internal/config"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/money"
	"github.com/moneymate/backend/internal/store"
	"github.com/spf13/cobra"
)

func newRolloverCmd(c clock.Clock) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Show the savings plans as seen in a month",
		Long: `Shows the savings plans and their totals as they are seen in the given
month, or the current month if none is given. Plans executed in another
month are shown as planned.

The plans are never changed. A database that does not exist yet is shown
as empty and is not created. An existing database is migrated to the
current schema, like on serve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("invalid month %d: must be between 1 and 12", month)
			}

			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			setup(cfg)

			today := c.Now()
			if month != 0 {
				today = time.Date(today.Year(), time.Month(month), 1, 0, 0, 0, 0, today.Location())
			}

			plans, err := readSavePlans(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}

			f, err := money.NewFormatter(cfg.Currency, cfg.Language)
			if err != nil {
				return err
			}

			rolled, changes := engine.RolloverAll(plans, today)
			printRollover(cmd.OutOrStdout(), f, today.Month(), engine.NewSavePlanList(rolled), len(changes))

			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12) to show the plans for, defaults to the current month")

	return cmd
}

// readSavePlans returns all save plans in the database at path. A missing
// database has no plans.
func readSavePlans(ctx context.Context, path string) ([]models.SavePlan, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err := models.Connect(path); err != nil {
		return nil, err
	}

	return store.New[models.SavePlan](models.DB, store.NewHub()).All(ctx)
}

func printRollover(w io.Writer, f money.Formatter, month time.Month, list engine.SavePlanList, changed int) {
	_, _ = headerColor.Fprintf(w, "▸ Savings plans for %s\n\n", month)

	if list.IsEmpty() {
		_, _ = dimColor.Fprintln(w, "  No savings plans")
		return
	}

	for _, p := range list.Plans {
		state := plannedColor
		if p.State() == engine.SaveStateExecuted {
			state = executedColor
		}

		_, _ = state.Fprintf(w, "  %-8s ", p.State())
		_, _ = fmt.Fprintf(w, "%-24s %-20s day %2d  %s\n", p.Title, p.Category, p.PlanDay, f.Format(p.Amount))
	}

	_, _ = fmt.Fprintln(w)
	for _, t := range list.CategoryTotals() {
		_, _ = labelColor.Fprintf(w, "  %s: ", t.Category)
		_, _ = fmt.Fprintf(w, "%s of %s\n", f.Format(t.ExecutedTotal), f.Format(t.Total))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = labelColor.Fprint(w, "  Executed: ")
	_, _ = fmt.Fprintf(w, "%s of %s\n", f.Format(list.ExecutedTotal()), f.Format(list.Total()))

	if changed > 0 {
		_, _ = dimColor.Fprintf(w, "  %d plan(s) are rolled over when the list is next opened\n", changed)
	}
}
