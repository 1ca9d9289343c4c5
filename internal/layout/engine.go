package layout

import (
	"math"
	"unicode/utf8"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// Ellipsis marks shortened text.
const Ellipsis = "..."

// Measurer splits text into lines that fit a width when drawn in font.
type Measurer interface {
	SplitText(font Font, text string, width float64) []string
}

// ElementKind identifies what an Element represents.
type ElementKind int

const (
	// KindTitle is the report title.
	KindTitle ElementKind = iota
	// KindHeading is a section heading.
	KindHeading
	// KindGroup is a sub-category caption.
	KindGroup
	// KindHeader is a table header row.
	KindHeader
	// KindRow is a table data row.
	KindRow
)

// Cell is one positioned table cell.
type Cell struct {
	X     float64
	Width float64
	Lines []string
}

// Element is one positioned block on a page.
type Element struct {
	Kind   ElementKind
	Y      float64
	Height float64
	Font   Font
	// Text is set for title, heading and group elements.
	Text string
	// Cells is set for header and row elements.
	Cells []Cell
}

// Page is the ordered list of elements drawn on one page.
type Page struct {
	Number   int
	Elements []Element
}

// Engine places report content on pages according to a Profile.
type Engine struct {
	profile  Profile
	measurer Measurer
	xs       []float64
	widths   []float64
}

// NewEngine creates an Engine for profile using measurer for text metrics.
func NewEngine(profile Profile, measurer Measurer) *Engine {
	xs, widths := profile.Columns()
	return &Engine{
		profile:  profile,
		measurer: measurer,
		xs:       xs,
		widths:   widths,
	}
}

// Profile returns the profile the engine lays out with.
func (e *Engine) Profile() Profile {
	return e.profile
}

// cursor tracks the page being filled.
type cursor struct {
	pages  []Page
	y      float64
	header *Element // header of the table in progress, if any
}

func (c *cursor) page() *Page {
	return &c.pages[len(c.pages)-1]
}

// empty reports whether nothing was placed on the current page yet.
func (c *cursor) empty() bool {
	return len(c.page().Elements) == 0
}

// Layout places the report title, then every section in order.
func (e *Engine) Layout(r *model.Report) []Page {
	c := &cursor{}
	e.newPage(c, false)

	if r.Title != "" {
		e.place(c, Element{
			Kind:   KindTitle,
			Height: e.profile.TitleHeight,
			Font:   e.profile.TitleFont,
			Text:   r.Title,
		})
		c.y += e.profile.SpaceAfterTitle
	}

	for _, s := range r.Sections {
		e.layoutSection(c, s)
	}

	return c.pages
}

func (e *Engine) layoutSection(c *cursor, s model.Section) {
	p := e.profile
	header := e.headerRow()

	var first *Element
	for _, g := range s.Groups {
		if len(g.Records) > 0 {
			row := e.dataRow(g.Records[0])
			first = &row
			break
		}
	}

	if p.SectionHeadings {
		if p.KeepWithNext && !c.empty() {
			need := p.HeadingHeight + p.SpaceAfterHeading + header.Height
			if first != nil {
				need += first.Height
			}
			if c.y+need > p.contentBottom() {
				e.newPage(c, false)
			}
		}
		e.place(c, Element{
			Kind:   KindHeading,
			Height: p.HeadingHeight,
			Font:   p.HeadingFont,
			Text:   s.Banner(),
		})
		c.y += p.SpaceAfterHeading
	}

	e.place(c, header)
	c.header = &header

	for _, g := range s.Groups {
		if p.ShowGroups && g.Name != "" {
			e.place(c, Element{
				Kind:   KindGroup,
				Height: p.GroupHeight,
				Font:   p.GroupFont,
				Text:   g.Name,
			})
		}
		for _, rec := range g.Records {
			e.place(c, e.dataRow(rec))
		}
	}

	c.header = nil
	c.y += p.SpaceAfterTable
}

// place puts el at the cursor, starting a new page first when el does not
// fit below what is already there.
func (e *Engine) place(c *cursor, el Element) {
	if !c.empty() && c.y+el.Height > e.profile.contentBottom() {
		e.newPage(c, el.Kind != KindHeader)
	}
	el.Y = c.y
	c.page().Elements = append(c.page().Elements, el)
	c.y += el.Height
}

// newPage finalizes the current page. When a table is in progress and the
// profile repeats headers, the header is redrawn first.
func (e *Engine) newPage(c *cursor, continueTable bool) {
	c.pages = append(c.pages, Page{Number: len(c.pages) + 1})
	c.y = e.profile.contentTop(len(c.pages))

	if continueTable && c.header != nil && e.profile.RepeatHeader {
		h := *c.header
		h.Y = c.y
		c.page().Elements = append(c.page().Elements, h)
		c.y += h.Height
	}
}

func (e *Engine) headerRow() Element {
	labels := e.profile.HeaderLabels
	if labels == nil {
		labels = model.Columns
	}
	return e.row(KindHeader, e.profile.HeaderFont, labels, e.profile.HeaderBottomPadding)
}

func (e *Engine) dataRow(r model.Record) Element {
	return e.row(KindRow, e.profile.BodyFont, r.Cells(), 0)
}

func (e *Engine) row(kind ElementKind, font Font, texts []string, extra float64) Element {
	p := e.profile
	pad := p.CellPadding

	cells := make([]Cell, len(e.widths))
	maxLines := 1
	for i := range cells {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		if i == p.TruncateColumn && kind == KindRow {
			text = Truncate(text, p.TruncateAt)
		}

		var lines []string
		if p.Wrap {
			lines = e.measurer.SplitText(font, text, e.widths[i]-2*pad)
		}
		if len(lines) == 0 {
			lines = []string{text}
		}
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
		cells[i] = Cell{X: e.xs[i], Width: e.widths[i], Lines: lines}
	}

	if limit := e.maxLines(extra); maxLines > limit {
		for i := range cells {
			cells[i].Lines = clip(cells[i].Lines, limit)
		}
		maxLines = limit
	}

	return Element{
		Kind:   kind,
		Height: float64(maxLines)*p.LineHeight + 2*pad + extra,
		Font:   font,
		Cells:  cells,
	}
}

// maxLines returns how many lines of a single row fit on a continuation page
// below a repeated header.
func (e *Engine) maxLines(extra float64) int {
	p := e.profile
	usable := p.contentBottom() - p.contentTop(2) - 2*p.CellPadding - extra
	if p.RepeatHeader {
		usable -= p.LineHeight + 2*p.CellPadding + p.HeaderBottomPadding
	}
	n := int(math.Floor(usable / p.LineHeight))
	if n < 1 {
		return 1
	}
	return n
}

func clip(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] += Ellipsis
	return out
}

// Truncate shortens s to n runes followed by Ellipsis when s is longer than
// n runes. A non-positive n disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + Ellipsis
}
