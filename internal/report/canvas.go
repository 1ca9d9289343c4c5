package report

import (
	"fmt"
	"io"

	"github.com/linux-audit-script/auditreport/internal/layout"
	"github.com/linux-audit-script/auditreport/internal/model"
)

// baselineOffset is the gap between a canvas row's bottom edge and its
// text baseline.
const baselineOffset = 4

// CanvasWriter outputs one section as an A4 PDF with text placed at fixed
// positions: no grid, no wrapping, recommendations cut to
// layout.TruncateLimit runes. Only the first section of the report is drawn.
type CanvasWriter struct {
	baseWriter

	profile  layout.Profile
	compress bool
}

// NewCanvasWriter creates a CanvasWriter that outputs to the given writer.
func NewCanvasWriter(output io.Writer) *CanvasWriter {
	return &CanvasWriter{
		baseWriter: newBaseWriter(output),
		profile:    layout.CanvasProfile(),
		compress:   true,
	}
}

// CanvasTitle returns the page title for a single-category report.
func CanvasTitle(section model.Section) string {
	return section.Title + " Report"
}

// Write draws the first section of report. A report without sections
// produces a page holding only the header row.
func (w *CanvasWriter) Write(report *model.Report) (int, error) {
	single := &model.Report{Title: report.Title, GeneratedAt: report.GeneratedAt}
	if len(report.Sections) > 0 {
		single.Sections = report.Sections[:1]
	}

	doc := newPDFDocument(w.profile, "A4", w.compress)
	doc.setMetadata(single.Title, single.GeneratedAt)

	pages := layout.NewEngine(w.profile, doc).Layout(single)
	for _, page := range pages {
		doc.pdf.AddPage()
		for _, el := range page.Elements {
			w.draw(doc, el)
		}
	}
	if err := doc.err(); err != nil {
		return 0, err
	}

	out := w.counter()
	if err := doc.pdf.Output(out); err != nil {
		return out.n, fmt.Errorf("failed to write PDF: %w", err)
	}
	return out.n, nil
}

func (w *CanvasWriter) draw(doc *pdfDocument, el layout.Element) {
	doc.setFont(el.Font)
	doc.setText(colorBlack)

	switch el.Kind {
	case layout.KindTitle:
		x := (w.profile.PageWidth - doc.width(el.Text)) / 2
		doc.pdf.Text(x, el.Y+el.Font.Size, doc.tr(el.Text))
	case layout.KindGroup:
		doc.pdf.Text(w.profile.MarginLeft, el.Y+el.Height-baselineOffset, doc.tr(el.Text))
	case layout.KindHeader, layout.KindRow:
		for _, c := range el.Cells {
			if len(c.Lines) == 0 {
				continue
			}
			doc.pdf.Text(c.X, el.Y+el.Height-baselineOffset, doc.tr(c.Lines[0]))
		}
	}
}
