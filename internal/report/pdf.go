package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/linux-audit-script/auditreport/internal/layout"
)

// rgb is a color triple for fpdf.
type rgb struct{ r, g, b int }

var (
	colorBlack      = rgb{0, 0, 0}
	colorGrey       = rgb{128, 128, 128}
	colorWhitesmoke = rgb{245, 245, 245}
	colorBeige      = rgb{245, 245, 220}
)

// pdfDocument wraps an fpdf document configured for a layout profile.
// Text is converted to the core-font code page before it is measured
// or drawn.
type pdfDocument struct {
	pdf     *fpdf.Fpdf
	profile layout.Profile
	tr      func(string) string
}

func newPDFDocument(profile layout.Profile, size string, compress bool) *pdfDocument {
	pdf := fpdf.New("P", "pt", size, "")
	pdf.SetMargins(profile.MarginLeft, profile.MarginTop, profile.MarginRight)
	pdf.SetAutoPageBreak(false, profile.MarginBottom)
	pdf.SetCellMargin(0)
	pdf.SetCompression(compress)
	pdf.SetCreator("auditreport", true)

	return &pdfDocument{
		pdf:     pdf,
		profile: profile,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// setMetadata records the title and a fixed creation time so repeated runs
// over the same report produce the same bytes.
func (d *pdfDocument) setMetadata(title string, at time.Time) {
	d.pdf.SetTitle(title, true)
	d.pdf.SetCreationDate(at)
	d.pdf.SetModificationDate(at)
}

func (d *pdfDocument) setFont(f layout.Font) {
	d.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (d *pdfDocument) setFill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *pdfDocument) setText(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *pdfDocument) setDraw(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }

// width returns the drawn width of s in the current font.
func (d *pdfDocument) width(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// SplitText implements layout.Measurer. fpdf wraps the code-page bytes;
// each line is decoded back to UTF-8 so the draw path translates it once.
func (d *pdfDocument) SplitText(font layout.Font, text string, width float64) []string {
	d.setFont(font)
	chunks := d.pdf.SplitLines([]byte(d.tr(text)), width)
	if len(chunks) == 0 {
		return []string{""}
	}

	dec := charmap.Windows1252.NewDecoder()
	lines := make([]string, len(chunks))
	for i, c := range chunks {
		line, err := dec.Bytes(c)
		if err != nil {
			line = c
		}
		lines[i] = string(line)
	}
	return lines
}

func (d *pdfDocument) err() error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
