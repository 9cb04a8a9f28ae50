package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// WaitlistOptions holds flags for the waitlist commands.
type WaitlistOptions struct {
	*RootOptions
	EventID   string
	EntrantID string
}

// NewWaitlistCommand creates the waitlist command group.
func NewWaitlistCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WaitlistOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Show or change an event's waitlist",
	}
	cmd.PersistentFlags().StringVar(&opts.EventID, "event", "", "event ID (required)")
	_ = cmd.MarkPersistentFlagRequired("event")

	show := &cobra.Command{
		Use:   "show",
		Short: "List the entrants on the waitlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaitlistShow(opts, cmd)
		},
	}

	join := &cobra.Command{
		Use:   "join",
		Short: "Add an entrant to the waitlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaitlistChange(opts, cmd, true)
		},
	}
	join.Flags().StringVar(&opts.EntrantID, "entrant", "", "entrant ID (required)")
	_ = join.MarkFlagRequired("entrant")

	leave := &cobra.Command{
		Use:   "leave",
		Short: "Remove an entrant from the waitlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaitlistChange(opts, cmd, false)
		},
	}
	leave.Flags().StringVar(&opts.EntrantID, "entrant", "", "entrant ID (required)")
	_ = leave.MarkFlagRequired("entrant")

	cmd.AddCommand(show, join, leave)
	return cmd
}

func runWaitlistShow(opts *WaitlistOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	waitlist, err := a.waitlists.GetWaitlist(ctx, opts.EventID)
	if err != nil {
		return serviceFailure("failed to read waitlist", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"eventId": opts.EventID, "waitlist": waitlist})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Event %s: %d entrant(s)\n", opts.EventID, len(waitlist))
	for _, id := range waitlist {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
	}
	return nil
}

func runWaitlistChange(opts *WaitlistOptions, cmd *cobra.Command, join bool) error {
	ctx := context.Background()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	verb := "joined"
	if join {
		err = a.waitlists.Join(ctx, opts.EventID, opts.EntrantID)
	} else {
		verb = "left"
		err = a.waitlists.Leave(ctx, opts.EventID, opts.EntrantID)
	}
	if err != nil {
		return serviceFailure("waitlist update failed", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"eventId": opts.EventID, "entrantId": opts.EntrantID, "status": verb})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s waitlist of %s\n", opts.EntrantID, verb, opts.EventID)
	return nil
}
