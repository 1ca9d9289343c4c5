package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	auditlog "github.com/linux-audit-script/auditreport/internal/log"
)

// NewRootCmd creates the root command for auditreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auditreport",
		Short: "Consolidate Linux audit results into a single report",
		Long: `auditreport reads the JSON files produced by the audit scripts and
renders them into one report, one section per file, in a fixed order.

Supported outputs are an Excel workbook (default), a paginated PDF,
Markdown and JSON. A single audit file can also be drawn as a
stand-alone PDF with the category command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewCategoryCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context; the pipeline stops before the next step or file.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting structured logger and installs it as
// the slog default.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logger := auditlog.NewLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
	return logger
}
