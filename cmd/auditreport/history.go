package main

import (
	"errors"
	"fmt"
	"io/fs"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/linux-audit-script/auditreport/internal/config"
	"github.com/linux-audit-script/auditreport/internal/database"
	"github.com/linux-audit-script/auditreport/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous report runs",
		Long: `History lists the runs recorded with --history, newest first.

With --id, the sections of one run are shown together with the digest
of the input file each section was read from.

Examples:
  auditreport history
  auditreport history --limit 5
  auditreport history --id 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .auditreport in current or home directory)")
	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64("id", 0,
		"Show the sections of a single run")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	setupLogger(cmd, getVerboseFlag(cmd))

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet. Use --history to record one.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	if id > 0 {
		return showRun(cmd, db, id)
	}
	return listRuns(cmd, db, limit)
}

// listRuns prints the most recent runs as a table.
func listRuns(cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFORMAT\tSECTIONS\tRECORDS\tSKIPPED\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Timestamp.Local().Format(time.DateTime), r.Format,
			r.Sections, r.Records, r.Skipped, r.Output)
	}
	return tw.Flush()
}

// showRun prints the stored sections of one run.
func showRun(cmd *cobra.Command, db *database.HistoryDB, id int64) error {
	ctx := cmd.Context()

	r, err := db.RunReport(ctx, id)
	if err != nil {
		return err
	}
	sections, err := db.RunSections(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := report.NewSummaryWriter(out, report.WithShowEmpty(true)).Write(r); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tDIGEST")
	for _, s := range sections {
		digest := s.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(tw, "%s\t%s\n", s.Source, digest)
	}
	return tw.Flush()
}
