package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// SummaryWriter outputs a plain-text overview of a report for terminal
// display: one line per section with its record and skipped counts.
type SummaryWriter struct {
	baseWriter

	// showEmpty controls whether sections with no records are listed.
	showEmpty bool

	// verbose adds the source path of every section.
	verbose bool
}

// SummaryWriterOption configures a SummaryWriter.
type SummaryWriterOption func(*SummaryWriter)

// WithShowEmpty lists sections that hold no records.
func WithShowEmpty(show bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.showEmpty = show
	}
}

// WithVerbose adds source paths to the output.
func WithVerbose(verbose bool) SummaryWriterOption {
	return func(w *SummaryWriter) {
		w.verbose = verbose
	}
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, opts ...SummaryWriterOption) *SummaryWriter {
	w := &SummaryWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary.
func (w *SummaryWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	sb.WriteString(report.Title + "\n")
	sb.WriteString(strings.Repeat("=", len([]rune(report.Title))) + "\n")

	width := 0
	for _, s := range report.Sections {
		width = max(width, len(s.Title))
	}

	for _, s := range report.Sections {
		if s.RecordCount() == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(&sb, "  %-*s %5d records", width, s.Title, s.RecordCount())
		if s.Skipped > 0 {
			fmt.Fprintf(&sb, ", %d skipped", s.Skipped)
		}
		if w.verbose && s.Source != "" {
			fmt.Fprintf(&sb, "  (%s)", s.Source)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Total: %d sections, %d records", len(report.Sections), report.RecordCount())
	if n := report.SkippedCount(); n > 0 {
		fmt.Fprintf(&sb, ", %d skipped", n)
	}
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}
