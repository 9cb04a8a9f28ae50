package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	File string
}

// ImportResult summarizes a waitlist import.
type ImportResult struct {
	Rows     int           `json:"rows"`
	Joined   int           `json:"joined"`
	Failures []ImportError `json:"failures"`
}

// ImportError is a rejected CSV row. Line is 1-based.
type ImportError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-join entrants from a CSV file",
		Long: `Bulk-join entrants from a CSV file of eventId,entrantId rows.

A header row starting with "eventId" is skipped. Rows that fail are reported and
the import continues; joining is idempotent so a file can be imported again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "path to CSV file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command) error {
	file, err := os.Open(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open CSV file", err)
	}
	defer file.Close()

	ctx := context.Background()
	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := ImportWaitlist(ctx, file, a.waitlists)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse CSV file", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows\n", result.Joined, result.Rows)
		for _, f := range result.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  line %d: %s\n", f.Line, f.Reason)
		}
	}
	if len(result.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d row(s) failed", len(result.Failures)))
	}
	return nil
}

// ImportWaitlist joins every eventId,entrantId row of r. Row failures are collected; only a
// malformed CSV stream aborts the import.
func ImportWaitlist(ctx context.Context, r io.Reader, waitlists services.WaitlistManager) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{Failures: []ImportError{}}
	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, err
		}
		line, _ := reader.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(record[0]), "eventId") {
			continue
		}

		result.Rows++
		if len(record) != 2 {
			result.Failures = append(result.Failures, ImportError{Line: line, Reason: fmt.Sprintf("expected 2 fields, got %d", len(record))})
			continue
		}
		eventID, entrantID := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if err := waitlists.Join(ctx, eventID, entrantID); err != nil {
			result.Failures = append(result.Failures, ImportError{Line: line, Reason: err.Error()})
			continue
		}
		result.Joined++
	}
	return result, nil
}
