package report

import (
	"fmt"
	"io"

	"github.com/linux-audit-script/auditreport/internal/layout"
	"github.com/linux-audit-script/auditreport/internal/model"
)

// DocumentWriter outputs reports as a flowed, paginated PDF on Letter
// pages: a centered title, then one heading and one table per section.
// Tables continue on the next page with their header repeated.
type DocumentWriter struct {
	baseWriter

	profile  layout.Profile
	compress bool
}

// DocumentOption configures a DocumentWriter.
type DocumentOption func(*DocumentWriter)

// WithShowGroups draws a caption before the records of each named group.
func WithShowGroups(show bool) DocumentOption {
	return func(w *DocumentWriter) {
		w.profile.ShowGroups = show
	}
}

// NewDocumentWriter creates a DocumentWriter that outputs to the given writer.
func NewDocumentWriter(output io.Writer, opts ...DocumentOption) *DocumentWriter {
	w := &DocumentWriter{
		baseWriter: newBaseWriter(output),
		profile:    layout.DocumentProfile(),
		compress:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write lays out the report, draws every page and writes the PDF.
func (w *DocumentWriter) Write(report *model.Report) (int, error) {
	doc := newPDFDocument(w.profile, "Letter", w.compress)
	doc.setMetadata(report.Title, report.GeneratedAt)

	pages := layout.NewEngine(w.profile, doc).Layout(report)
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

func (w *DocumentWriter) draw(doc *pdfDocument, el layout.Element) {
	p := w.profile
	frame := p.PageWidth - p.MarginLeft - p.MarginRight

	doc.setFont(el.Font)
	switch el.Kind {
	case layout.KindTitle:
		doc.setText(colorBlack)
		doc.pdf.SetXY(p.MarginLeft, el.Y)
		doc.pdf.CellFormat(frame, el.Height, doc.tr(el.Text), "", 0, "C", false, 0, "")
	case layout.KindHeading, layout.KindGroup:
		doc.setText(colorBlack)
		doc.pdf.SetXY(p.MarginLeft, el.Y)
		doc.pdf.CellFormat(frame, el.Height, doc.tr(el.Text), "", 0, "LM", false, 0, "")
	case layout.KindHeader:
		w.drawRow(doc, el, colorGrey, colorWhitesmoke)
	case layout.KindRow:
		w.drawRow(doc, el, colorBeige, colorBlack)
	}
}

// drawRow draws the grid cells of a table row and its centered lines.
func (w *DocumentWriter) drawRow(doc *pdfDocument, el layout.Element, fill, text rgb) {
	p := w.profile

	doc.setFill(fill)
	doc.setDraw(colorBlack)
	doc.setText(text)
	doc.pdf.SetLineWidth(1)

	for _, c := range el.Cells {
		doc.pdf.Rect(c.X, el.Y, c.Width, el.Height, "FD")
		for i, line := range c.Lines {
			doc.pdf.SetXY(c.X, el.Y+p.CellPadding+float64(i)*p.LineHeight)
			doc.pdf.CellFormat(c.Width, p.LineHeight, doc.tr(line), "", 0, "C", false, 0, "")
		}
	}
}
