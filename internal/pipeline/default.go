package pipeline

import (
	"io"
	"os"

	"github.com/linux-audit-script/auditreport/internal/config"
	"github.com/linux-audit-script/auditreport/internal/database"
	"github.com/linux-audit-script/auditreport/internal/normalize"
	"github.com/linux-audit-script/auditreport/internal/report"
)

// Confirmation messages printed after the artifact is written.
var confirmations = map[config.Format]string{
	config.FormatXLSX:     "Excel report generated",
	config.FormatPDF:      "PDF report generated",
	config.FormatMarkdown: "Markdown report generated",
	config.FormatJSON:     "JSON report generated",
}

// Confirmation returns the confirmation message for format.
func Confirmation(format config.Format) string {
	return confirmations[format]
}

// SetupConfig holds settings for the assembled pipelines that do not come
// from config.Config.
type SetupConfig struct {
	// Stdout receives the confirmation line.
	Stdout io.Writer

	// Version is stamped into JSON output and history records.
	Version string
}

// SetupOption configures a SetupConfig.
type SetupOption func(*SetupConfig)

// WithStdout sets where the confirmation line is printed.
func WithStdout(w io.Writer) SetupOption {
	return func(c *SetupConfig) {
		c.Stdout = w
	}
}

// WithVersion sets the tool version.
func WithVersion(version string) SetupOption {
	return func(c *SetupConfig) {
		c.Version = version
	}
}

func newSetup(opts []SetupOption) *SetupConfig {
	c := &SetupConfig{Stdout: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriterFor returns the writer factory for the configured format.
func WriterFor(cfg *config.Config, version string) WriterFactory {
	switch cfg.Format {
	case config.FormatPDF:
		return func(w io.Writer) report.Writer {
			return report.NewDocumentWriter(w, report.WithShowGroups(cfg.ShowGroups))
		}
	case config.FormatMarkdown:
		return func(w io.Writer) report.Writer {
			return report.NewMarkdownWriter(w, report.WithMarkdownGroups(cfg.ShowGroups))
		}
	case config.FormatJSON:
		return func(w io.Writer) report.Writer {
			return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(version))
		}
	default:
		return func(w io.Writer) report.Writer {
			return report.NewSpreadsheetWriter(w)
		}
	}
}

// DefaultPipeline creates the render pipeline for cfg: collect every
// manifest file, render the report in the configured format, then record
// the run when history is enabled.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts setup options (WithStdout, etc).
func DefaultPipeline(cfg *config.Config, pipelineOpts []Option, setupOpts ...SetupOption) *Pipeline {
	p := New(pipelineOpts...)
	setup := newSetup(setupOpts)
	logger := p.logger

	collect := NewCollectStep(cfg.ManifestPaths(), WithCollectLogger(logger))
	p.AddSteps(
		collect,
		NewRenderStep(cfg.Output(), WriterFor(cfg, setup.Version),
			WithRenderLogger(logger),
			WithConfirmation(setup.Stdout, Confirmation(cfg.Format)),
		),
	)

	if cfg.HistoryEnabled {
		meta := database.RunMeta{
			Format:  string(cfg.Format),
			Output:  cfg.Output(),
			Version: setup.Version,
		}
		p.AddStep(NewHistoryStep(cfg.DBDir, meta, collect.Digests, logger))
	}

	return p
}

// CategoryPipeline creates the single-category pipeline for cfg: collect
// the category file, title the report after it and draw it with the
// canvas writer.
func CategoryPipeline(cfg *config.Config, pipelineOpts []Option, setupOpts ...SetupOption) *Pipeline {
	p := New(pipelineOpts...)
	setup := newSetup(setupOpts)
	logger := p.logger

	collect := NewCollectStep(
		[]string{cfg.CategoryPath()},
		WithCollectLogger(logger),
		WithNormalizeOptions(
			normalize.WithCheckKeys("service", normalize.FieldCheck),
			normalize.WithDefault(normalize.FieldCheck, "Unknown"),
			normalize.WithDefault(normalize.FieldRecommendation, "None"),
		),
	)

	p.AddSteps(
		collect,
		NewTitleStep(cfg.Category.Title),
		NewRenderStep(cfg.Category.OutputPath,
			func(w io.Writer) report.Writer { return report.NewCanvasWriter(w) },
			WithRenderLogger(logger),
			WithConfirmation(setup.Stdout, Confirmation(config.FormatPDF)),
		),
	)

	if cfg.HistoryEnabled {
		meta := database.RunMeta{
			Format:  "canvas",
			Output:  cfg.Category.OutputPath,
			Version: setup.Version,
		}
		p.AddStep(NewHistoryStep(cfg.DBDir, meta, collect.Digests, logger))
	}

	return p
}
