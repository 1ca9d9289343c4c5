package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// MarkdownWriter outputs reports in Markdown format: a summary, then one
// heading and one table per section.
type MarkdownWriter struct {
	baseWriter

	// showGroups adds a level-3 heading per named group.
	showGroups bool
}

// MarkdownOption configures a MarkdownWriter.
type MarkdownOption func(*MarkdownWriter)

// WithMarkdownGroups splits section tables by group.
func WithMarkdownGroups(show bool) MarkdownOption {
	return func(w *MarkdownWriter) {
		w.showGroups = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	for _, s := range report.Sections {
		w.writeSection(md, s)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title, the run summary and the status chart.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1(report.Title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Sections", strconv.Itoa(len(report.Sections))},
			{"Records", strconv.Itoa(report.RecordCount())},
			{"Skipped entries", strconv.Itoa(report.SkippedCount())},
		},
	})
	md.PlainText("")

	if report.RecordCount() > 0 {
		w.writePieChart(md, report)
	}

	if n := report.SkippedCount(); n > 0 {
		md.Warningf("%d entries were not objects and were left out of the tables.", n)
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of record statuses in the order
// they first appear.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Status Distribution"),
		piechart.WithShowData(true),
	)

	var order []string
	counts := make(map[string]uint64)
	for _, s := range report.Sections {
		for _, rec := range s.Records() {
			if _, ok := counts[rec.Status]; !ok {
				order = append(order, rec.Status)
			}
			counts[rec.Status]++
		}
	}
	for _, status := range order {
		label := status
		if label == "" {
			label = "(empty)"
		}
		chart.LabelAndIntValue(label, counts[status])
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSection writes the section heading and its table.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, s model.Section) {
	md.H2(s.Banner())
	md.PlainText("")

	if s.RecordCount() == 0 {
		md.PlainText("No records.")
		md.PlainText("")
		return
	}

	if !w.showGroups {
		w.writeTable(md, s.Records())
		return
	}
	for _, g := range s.Groups {
		if len(g.Records) == 0 {
			continue
		}
		if g.Name != "" {
			md.H3(g.Name)
			md.PlainText("")
		}
		w.writeTable(md, g.Records)
	}
}

func (w *MarkdownWriter) writeTable(md *markdown.Markdown, records []model.Record) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		cells := rec.Cells()
		for i, c := range cells {
			cells[i] = escapeCell(c)
		}
		rows = append(rows, cells)
	}

	md.Table(markdown.TableSet{
		Header: model.Columns,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by auditreport*")
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}
