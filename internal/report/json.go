package report

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// JSONWriter outputs the normalized report in JSON format for tool
// integration: titles, sources, groups, records and skipped counts.
type JSONWriter struct {
	baseWriter

	// indent is the per-level indentation; empty means compact output.
	indent string

	// version is stamped into the output when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON using indent for each level.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("  ")
}

// WithVersion records the tool version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps a report with totals and tool metadata.
type JSONReport struct {
	Version string        `json:"version,omitempty"`
	Summary JSONSummary   `json:"summary"`
	Report  *model.Report `json:"report"`
}

// JSONSummary holds report-wide totals.
type JSONSummary struct {
	Sections int `json:"sections"`
	Records  int `json:"records"`
	Skipped  int `json:"skipped"`
}

// NewJSONReport creates a JSONReport for report.
func NewJSONReport(report *model.Report, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Summary: JSONSummary{
			Sections: len(report.Sections),
			Records:  report.RecordCount(),
			Skipped:  report.SkippedCount(),
		},
		Report: report,
	}
}

// Write outputs the wrapped report followed by a newline.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	var opts []json.Options
	if w.indent != "" {
		opts = append(opts, jsontext.WithIndent(w.indent))
	}

	data, err := json.Marshal(NewJSONReport(report, w.version), opts...)
	if err != nil {
		return 0, fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	return w.output.Write(data)
}
