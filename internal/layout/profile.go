package layout

// Font describes the typeface used for an element.
type Font struct {
	Family string
	Style  string // "", "B", "I" or "BI"
	Size   float64
}

// Profile describes page geometry and table styling for one backend.
type Profile struct {
	PageWidth  float64
	PageHeight float64

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	// ContinuationTop is the cursor position on every page after the first.
	// Zero means MarginTop.
	ContinuationTop float64

	// ColumnRatios are scaled to the frame width to obtain column widths.
	ColumnRatios []float64

	// HeaderLabels replaces the table header text. Nil means model.Columns.
	HeaderLabels []string

	TitleFont   Font
	HeadingFont Font
	GroupFont   Font
	HeaderFont  Font
	BodyFont    Font

	TitleHeight   float64
	HeadingHeight float64
	GroupHeight   float64

	SpaceAfterTitle   float64
	SpaceAfterHeading float64
	SpaceAfterTable   float64

	// LineHeight is the height of one line of cell text.
	LineHeight float64

	// CellPadding is applied on every side of a cell.
	CellPadding float64

	// HeaderBottomPadding is added below the header row text.
	HeaderBottomPadding float64

	// Wrap splits cell text over several lines. When false every cell holds
	// exactly one line.
	Wrap bool

	// TruncateColumn is the index of the column shortened to TruncateAt
	// runes, or -1 for none.
	TruncateColumn int
	TruncateAt     int

	// SectionHeadings emits an "Audit Results: <title>" heading per section.
	SectionHeadings bool

	// ShowGroups emits a caption before the records of each named group.
	ShowGroups bool

	// RepeatHeader redraws the table header at the top of continuation pages.
	RepeatHeader bool

	// KeepWithNext moves a heading to the next page when its table header
	// and first row would not fit below it.
	KeepWithNext bool
}

// Page sizes in points.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
	A4Width      = 595.28
	A4Height     = 841.89
)

// CanvasHeaderLabels heads the single-category table, whose rows name
// services rather than checks.
var CanvasHeaderLabels = []string{"Service", "Status", "Recommendation"}

// TruncateLimit is the rune count above which the canvas profile shortens
// recommendation text.
const TruncateLimit = 50

// DocumentProfile returns the flowed document profile: Letter pages with
// one inch margins, wrapped and centered cells, 200:80:250 column ratios.
func DocumentProfile() Profile {
	return Profile{
		PageWidth:    LetterWidth,
		PageHeight:   LetterHeight,
		MarginLeft:   72,
		MarginRight:  72,
		MarginTop:    72,
		MarginBottom: 72,

		ColumnRatios: []float64{200, 80, 250},

		TitleFont:   Font{Family: "Helvetica", Style: "B", Size: 18},
		HeadingFont: Font{Family: "Helvetica", Style: "B", Size: 14},
		GroupFont:   Font{Family: "Helvetica", Style: "I", Size: 11},
		HeaderFont:  Font{Family: "Helvetica", Style: "B", Size: 10},
		BodyFont:    Font{Family: "Helvetica", Size: 10},

		TitleHeight:   30,
		HeadingHeight: 20,
		GroupHeight:   16,

		SpaceAfterTitle:   12,
		SpaceAfterHeading: 12,
		SpaceAfterTable:   12,

		LineHeight:          12,
		CellPadding:         3,
		HeaderBottomPadding: 12,

		Wrap:            true,
		TruncateColumn:  -1,
		SectionHeadings: true,
		RepeatHeader:    true,
		KeepWithNext:    true,
	}
}

// CanvasProfile returns the single-category canvas profile: A4 pages, a
// 20pt row step, no wrapping and recommendations cut at TruncateLimit runes.
// Column origins sit at x = 50, 200 and 300. The first column is headed
// "Service".
func CanvasProfile() Profile {
	return Profile{
		PageWidth:       A4Width,
		PageHeight:      A4Height,
		MarginLeft:      50,
		MarginRight:     50,
		MarginTop:       34,
		MarginBottom:    46,
		ContinuationTop: 34,

		ColumnRatios: []float64{150, 100, A4Width - 350},
		HeaderLabels: CanvasHeaderLabels,

		TitleFont:  Font{Family: "Helvetica", Style: "B", Size: 16},
		HeaderFont: Font{Family: "Helvetica", Style: "B", Size: 12},
		BodyFont:   Font{Family: "Helvetica", Size: 10},
		GroupFont:  Font{Family: "Helvetica", Style: "I", Size: 10},

		TitleHeight: 50,
		GroupHeight: 20,

		LineHeight: 20,

		TruncateColumn: 2,
		TruncateAt:     TruncateLimit,
	}
}

// Columns returns the absolute x origin and width of each column.
func (p Profile) Columns() (xs, widths []float64) {
	frame := p.PageWidth - p.MarginLeft - p.MarginRight
	total := 0.0
	for _, r := range p.ColumnRatios {
		total += r
	}

	x := p.MarginLeft
	for _, r := range p.ColumnRatios {
		w := frame * r / total
		xs = append(xs, x)
		widths = append(widths, w)
		x += w
	}
	return xs, widths
}

// contentTop returns the first usable y for the given 1-based page number.
func (p Profile) contentTop(page int) float64 {
	if page > 1 && p.ContinuationTop > 0 {
		return p.ContinuationTop
	}
	return p.MarginTop
}

// contentBottom returns the last usable y on every page.
func (p Profile) contentBottom() float64 {
	return p.PageHeight - p.MarginBottom
}
