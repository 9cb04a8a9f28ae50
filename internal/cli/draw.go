package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
)

// DrawOptions holds flags for the draw command.
type DrawOptions struct {
	*RootOptions
	EventID        string
	EventName      string
	Count          int
	ExcludeInvited bool
}

// NewDrawCommand creates the draw command.
func NewDrawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DrawOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Run a lottery for an event",
		Long: `Run a lottery for an event.

Draws --count winners from the event's waitlist, records them in the invitation
ledger and writes one win and one loss notification.

Examples:
  lotteryctl draw --event 65f0c0ffee --count 10
  lotteryctl draw --event 65f0c0ffee --exclude-invited --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.EventID, "event", "", "event ID (required)")
	_ = cmd.MarkFlagRequired("event")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "number of winners (0 uses the event default)")
	cmd.Flags().StringVar(&opts.EventName, "name", "", "event name used in notifications")
	cmd.Flags().BoolVar(&opts.ExcludeInvited, "exclude-invited", false, "skip entrants invited by earlier runs")

	return cmd
}

func runDraw(opts *DrawOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	report, runErr := a.lottery.RunLottery(ctx, &models.LotteryRequest{
		EventID:        opts.EventID,
		EventName:      opts.EventName,
		RequestedCount: opts.Count,
		ExcludeInvited: opts.ExcludeInvited,
	})

	if report != nil {
		if opts.Format == "json" {
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
		} else {
			printReport(cmd, report)
		}
	}
	if runErr != nil {
		return serviceFailure("lottery run failed", runErr)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *models.RunReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s for event %s: %s (last state %s)\n", report.RunID, report.EventID, report.State, report.LastState)
	fmt.Fprintf(out, "Winners (%d): %s\n", len(report.Winners), strings.Join(report.Winners, ", "))
	fmt.Fprintf(out, "Losers (%d): %s\n", len(report.Losers), strings.Join(report.Losers, ", "))
	for _, line := range report.Log {
		fmt.Fprintf(out, "  %s\n", line)
	}
}
