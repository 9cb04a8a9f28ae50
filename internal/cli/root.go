package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/eventlottery-backend/internal/config"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
	"github.com/ArowuTest/eventlottery-backend/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Storage    string // overrides Storage.Driver when set
	Format     string // "json" | "text"

	// repos replaces the configured backend; tests use it to share one memory store.
	repos *storage.Repositories
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for lotteryctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lotteryctl",
		Short: "Operate event waitlists and lotteries",
		Long:  "Inspect and change event waitlists, run lottery draws and read the invitation ledger.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", ".", "directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "storage driver override (mongodb|postgres|memory)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewWaitlistCommand(opts))
	cmd.AddCommand(NewDrawCommand(opts))
	cmd.AddCommand(NewLedgerCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// app is the service graph a command runs against.
type app struct {
	waitlists *services.WaitlistService
	ledger    *services.LedgerService
	lottery   *services.LotteryService
	repos     *storage.Repositories
}

func (a *app) Close() {
	_ = a.repos.Close(context.Background())
}

func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg := &config.Config{
		Lottery:  config.LotteryConfig{DefaultDrawSize: 1},
		Timeouts: config.TimeoutsConfig{Store: defaultStoreTimeout, Auth: defaultConnectTimeout},
	}
	repos := opts.repos
	if repos == nil {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, WrapExitError(ExitCommandError, "failed to load .env", err)
		}
		loaded, err := config.LoadConfig(opts.ConfigPath)
		if err != nil && opts.Storage == "" {
			return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
		}
		if loaded != nil {
			cfg = loaded
		}
		if opts.Storage != "" {
			cfg.Storage.Driver = opts.Storage
			if err := cfg.Validate(); err != nil {
				return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
			}
		}
		repos, err = storage.Open(ctx, cfg)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
		}
	}

	engine, err := services.NewLotteryEngine()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to seed lottery engine", err)
	}
	waitlists := services.NewWaitlistService(repos.Waitlists, cfg.Timeouts.Store)
	ledger := services.NewLedgerService(repos.Ledgers, cfg.Timeouts.Store)
	notifier := services.NewNotificationService(repos.Notifications, cfg.Timeouts.Store)
	return &app{
		waitlists: waitlists,
		ledger:    ledger,
		lottery: services.NewLotteryService(repos.Events, waitlists, ledger, notifier, engine,
			cfg.Lottery.DefaultDrawSize, cfg.Timeouts.Store),
		repos: repos,
	}, nil
}
