package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linux-audit-script/auditreport/internal/config"
	"github.com/linux-audit-script/auditreport/internal/model"
	"github.com/linux-audit-script/auditreport/internal/pipeline"
	"github.com/linux-audit-script/auditreport/internal/report"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render all audit results into one report",
		Long: `Render reads every audit file of the manifest, in order, and writes a
single report with one section per file.

A missing or malformed file aborts the run; no partial report is left
behind. Entries that are not JSON objects are skipped and counted.

Examples:
  # Excel workbook from the files in ./results
  auditreport render -i ./results

  # Paginated PDF with sub-category captions
  auditreport render -f pdf --groups -o report.pdf

  # Only two files, as Markdown
  auditreport render -f markdown --manifest ssh_server_audit.json --manifest chrony_audit.json

  # Use a custom configuration file
  auditreport render -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .auditreport in current or home directory)")
	cmd.Flags().StringP("input-dir", "i", "",
		"Directory holding the audit result files (default: current directory)")
	cmd.Flags().StringP("format", "f", string(config.FormatXLSX),
		"Output format: xlsx, pdf, markdown or json")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: final_audit_report.<extension>)")
	cmd.Flags().String("title", "",
		"Report title (default: \""+model.DefaultTitle+"\")")
	cmd.Flags().StringArray("manifest", nil,
		"Audit file to include, in order (repeatable; replaces the built-in list)")
	cmd.Flags().Bool("groups", false,
		"Show a caption for each sub-category (pdf and markdown)")
	cmd.Flags().Bool("history", false,
		"Record the run in the history database")
	cmd.Flags().Bool("summary", false,
		"Print per-section record counts after rendering")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	logger.Debug("configuration loaded",
		"file", cfg.ConfigFilePath,
		"inputDir", cfg.InputDir,
		"format", cfg.Format,
		"files", len(cfg.Manifest),
	)

	p := pipeline.DefaultPipeline(cfg,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithStdout(cmd.OutOrStdout()),
		pipeline.WithVersion(getVersion()),
	)

	r := model.NewReport(cfg.Title)
	if err := p.Execute(cmd.Context(), r); err != nil {
		return err
	}

	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}
	if summary {
		w := report.NewSummaryWriter(cmd.OutOrStdout(), report.WithShowEmpty(true), report.WithVerbose(cfg.Verbose))
		if _, err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// buildConfig creates the effective Config: defaults, then the
// configuration file, then the flags the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		if cfg.InputDir, err = flags.GetString("input-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		name, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		if cfg.Format, err = config.ParseFormat(name); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("title") {
		if cfg.Title, err = flags.GetString("title"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("manifest") {
		if cfg.Manifest, err = flags.GetStringArray("manifest"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("groups") {
		if cfg.ShowGroups, err = flags.GetBool("groups"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history") {
		if cfg.HistoryEnabled, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
