package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linux-audit-script/auditreport/internal/config"
	"github.com/linux-audit-script/auditreport/internal/model"
	"github.com/linux-audit-script/auditreport/internal/pipeline"
)

// NewCategoryCmd creates the category command.
func NewCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category [file]",
		Short: "Draw a single audit file as a stand-alone PDF",
		Long: `Category draws one audit file as a fixed-layout A4 PDF table titled
after the file. Entries keyed by "service" are accepted as checks and
a missing recommendation is shown as "None".

Examples:
  # service_clients_audit.json in the current directory
  auditreport category

  # Another file, custom output
  auditreport category ssh_server_audit.json -o ssh.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCategoryCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .auditreport in current or home directory)")
	cmd.Flags().StringP("input-dir", "i", "",
		"Directory the file is resolved against (default: current directory)")
	cmd.Flags().StringP("output", "o", "",
		"Output PDF path (default: "+config.DefaultCategoryOutput+")")
	cmd.Flags().String("title", "",
		"Page title (default: section title followed by \"Report\")")
	cmd.Flags().Bool("history", false,
		"Record the run in the history database")

	return cmd
}

// runCategoryCmd executes the category command.
func runCategoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCategoryConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.ValidateCategory(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.HistoryEnabled && cfg.DBDir == "" {
		return fmt.Errorf("configuration error: %w", config.ErrEmptyDBDir)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	logger.Debug("rendering category", "file", cfg.CategoryPath(), "output", cfg.Category.OutputPath)

	p := pipeline.CategoryPipeline(cfg,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithStdout(cmd.OutOrStdout()),
		pipeline.WithVersion(getVersion()),
	)
	return p.Execute(cmd.Context(), model.NewReport(""))
}

// buildCategoryConfig creates the effective Config for the category command.
func buildCategoryConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) == 1 {
		cfg.Category.File = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		if cfg.InputDir, err = flags.GetString("input-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.Category.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("title") {
		if cfg.Category.Title, err = flags.GetString("title"); err != nil {
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
