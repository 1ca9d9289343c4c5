package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/linux-audit-script/auditreport/internal/database"
	"github.com/linux-audit-script/auditreport/internal/loader"
	"github.com/linux-audit-script/auditreport/internal/model"
	"github.com/linux-audit-script/auditreport/internal/normalize"
	"github.com/linux-audit-script/auditreport/internal/report"
)

// CollectStep loads and normalizes every manifest file, appending one
// section per file in manifest order. Any load failure aborts the step.
type CollectStep struct {
	paths       []string
	normalizers []normalize.Option
	logger      *slog.Logger
	digests     map[string]string
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithNormalizeOptions passes options to the normalizer for every file.
func WithNormalizeOptions(opts ...normalize.Option) CollectStepOption {
	return func(s *CollectStep) {
		s.normalizers = append(s.normalizers, opts...)
	}
}

// WithCollectLogger sets the logger for the collect step.
func WithCollectLogger(logger *slog.Logger) CollectStepOption {
	return func(s *CollectStep) {
		s.logger = logger
	}
}

// NewCollectStep creates a CollectStep for the given file paths.
func NewCollectStep(paths []string, opts ...CollectStepOption) *CollectStep {
	s := &CollectStep{
		paths:   paths,
		digests: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do loads each file and appends its section to the report.
func (s *CollectStep) Do(ctx context.Context, r *model.Report) error {
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := loader.Load(path)
		if err != nil {
			return err
		}

		name := filepath.Base(path)
		section := normalize.Section(name, doc.Value, s.normalizers...)
		r.AddSection(section)

		s.digests[section.Source] = doc.Digest

		s.logger.Debug("section collected",
			"file", path,
			"title", section.Title,
			"records", section.RecordCount(),
			"line_delimited", doc.LineDelimited,
		)
		if section.Skipped > 0 {
			s.logger.Warn("entries skipped",
				"file", path,
				"skipped", section.Skipped,
			)
		}
	}
	return nil
}

// Digests returns the content digest of each collected file keyed by
// section source. Call it after the step has run.
func (s *CollectStep) Digests() map[string]string {
	out := make(map[string]string, len(s.digests))
	for k, v := range s.digests {
		out[k] = v
	}
	return out
}

// TitleStep sets the report title from its first section for
// single-category reports. A non-empty override wins.
type TitleStep struct {
	override string
}

// NewTitleStep creates a TitleStep.
func NewTitleStep(override string) *TitleStep {
	return &TitleStep{override: override}
}

// Name returns the step name.
func (s *TitleStep) Name() string {
	return "title"
}

// Do sets the title.
func (s *TitleStep) Do(_ context.Context, r *model.Report) error {
	switch {
	case s.override != "":
		r.Title = s.override
	case len(r.Sections) > 0:
		r.Title = report.CanvasTitle(r.Sections[0])
	}
	return nil
}

// WriterFactory creates the report writer for an output stream.
type WriterFactory func(w io.Writer) report.Writer

// RenderStep serializes the report once into a temporary file next to the
// output path and renames it into place, so a failed run never leaves a
// partial artifact behind.
type RenderStep struct {
	output  string
	factory WriterFactory
	logger  *slog.Logger

	// confirm receives the confirmation line after a successful rename.
	confirm io.Writer
	message string
}

// RenderStepOption configures a RenderStep.
type RenderStepOption func(*RenderStep)

// WithRenderLogger sets the logger for the render step.
func WithRenderLogger(logger *slog.Logger) RenderStepOption {
	return func(s *RenderStep) {
		s.logger = logger
	}
}

// WithConfirmation prints message followed by the output path to w once
// the artifact is in place.
func WithConfirmation(w io.Writer, message string) RenderStepOption {
	return func(s *RenderStep) {
		s.confirm = w
		s.message = message
	}
}

// NewRenderStep creates a RenderStep writing to output.
func NewRenderStep(output string, factory WriterFactory, opts ...RenderStepOption) *RenderStep {
	s := &RenderStep{output: output, factory: factory}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do writes the artifact.
func (s *RenderStep) Do(_ context.Context, r *model.Report) error {
	dir := filepath.Dir(s.output)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.output)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	n, err := s.factory(tmp).Write(r)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", s.output, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil { //nolint:gosec // reports are meant to be shared
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.output); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	committed = true

	s.logger.Debug("report written", "output", s.output, "bytes", n)

	if s.confirm != nil {
		fmt.Fprintf(s.confirm, "%s: %s\n", s.message, s.output)
	}
	return nil
}

// HistoryStep records the run in the history database.
type HistoryStep struct {
	dbDir   string
	meta    database.RunMeta
	digests func() map[string]string
	logger  *slog.Logger
}

// NewHistoryStep creates a HistoryStep. digests is called when the step
// runs, after collection has finished; it may be nil.
func NewHistoryStep(dbDir string, meta database.RunMeta, digests func() map[string]string, logger *slog.Logger) *HistoryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryStep{dbDir: dbDir, meta: meta, digests: digests, logger: logger}
}

// Name returns the step name.
func (s *HistoryStep) Name() string {
	return "history"
}

// Do saves the run.
func (s *HistoryStep) Do(ctx context.Context, r *model.Report) error {
	db, err := database.Open(s.dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	var digests map[string]string
	if s.digests != nil {
		digests = s.digests()
	}

	for source, digest := range digests {
		prev, err := db.LatestDigest(ctx, source)
		if err != nil {
			return err
		}
		if prev != "" && prev != digest {
			s.logger.Info("audit result changed since last run", "file", source)
		}
	}

	id, err := db.SaveRun(ctx, s.meta, r, digests)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	s.logger.Debug("run recorded", "id", id, "database", db.Path())
	return nil
}
