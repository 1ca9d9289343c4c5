package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linux-audit-script/auditreport/internal/validate"
)

// errInvalidFiles is returned when at least one file failed to parse.
// The per-file messages have already been printed.
var errInvalidFiles = errors.New("invalid JSON files found")

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check that every JSON file in a directory parses",
		Long: `Validate parses every *.json file in the directory (default: current
directory) and prints one line per file, in name order.

The exit status is 1 when any file is invalid.

Examples:
  auditreport validate ./results

  # Also accept files holding one JSON value per line
  auditreport validate --lines ./results`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidateCmd,
	}

	cmd.Flags().BoolP("lines", "l", false,
		"Accept line-delimited files (one JSON value per line)")
	cmd.Flags().IntP("jobs", "j", 0,
		"Number of files parsed at once (default: number of CPUs)")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	lines, err := cmd.Flags().GetBool("lines")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	setupLogger(cmd, getVerboseFlag(cmd))

	results, err := validate.Dir(cmd.Context(), dir, validate.Options{AllowLines: lines, Jobs: jobs})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintln(out, r.String())
	}

	if n := validate.Invalid(results); n > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidFiles, n, len(results))
	}
	return nil
}
