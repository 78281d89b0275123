// Package cli implements the moneymate command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/moneymate/backend/internal/clock"
	"github.com/spf13/cobra"
)

var (
	headerColor   = color.New(color.FgBlue, color.Bold)
	labelColor    = color.New(color.FgWhite, color.Bold)
	executedColor = color.New(color.FgGreen, color.Bold)
	plannedColor  = color.New(color.FgYellow)
	dimColor      = color.New(color.FgHiBlack)
	errorColor    = color.New(color.FgRed, color.Bold)
)

func newRootCmd(c clock.Clock) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moneymate",
		Short: "Money Mate backend",
		Long: `moneymate tracks incomes, savings plans and spending plans.

It serves the Money Mate API and keeps the monthly execution state of
savings plans up to date.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newServeCmd(c))
	rootCmd.AddCommand(newRolloverCmd(c))

	return rootCmd
}

// Execute runs the command line. It is cancelled on SIGINT and SIGTERM.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(clock.Real{}).ExecuteContext(ctx)
	if err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", err)
		return 1
	}

	return 0
}
