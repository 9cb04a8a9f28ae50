package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LedgerOptions holds flags for the ledger command.
type LedgerOptions struct {
	*RootOptions
	EventID string
}

// NewLedgerCommand creates the ledger command group.
func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Read the invitation ledger",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the ledger entry of an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerShow(opts, cmd)
		},
	}
	show.Flags().StringVar(&opts.EventID, "event", "", "event ID (required)")
	_ = show.MarkFlagRequired("event")

	cmd.AddCommand(show)
	return cmd
}

func runLedgerShow(opts *LedgerOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	ledger, err := a.ledger.GetOrCreate(ctx, opts.EventID)
	if err != nil {
		return serviceFailure("failed to read ledger", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), ledger)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Event %s\n", ledger.EventID)
	fmt.Fprintf(out, "  invited (%d):   %s\n", len(ledger.Invited), strings.Join(ledger.Invited, ", "))
	fmt.Fprintf(out, "  waiting (%d):   %s\n", len(ledger.Waiting), strings.Join(ledger.Waiting, ", "))
	fmt.Fprintf(out, "  cancelled (%d): %s\n", len(ledger.Cancelled), strings.Join(ledger.Cancelled, ", "))
	return nil
}
