package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// SheetName is the name of the single worksheet in the workbook.
const SheetName = "Audit Report"

// headerFill is the background of table header rows.
const headerFill = "4F81BD"

// ColumnWidth returns the column width for a column whose longest value is
// maxLen characters long. Widths above excelize.MaxColumnWidth are clamped
// when applied to the sheet.
func ColumnWidth(maxLen int) float64 {
	return float64(maxLen+2) * 1.2
}

// SpreadsheetWriter outputs reports as an .xlsx workbook with one worksheet.
// The title sits in a merged banner on row 1; sections follow from row 3,
// each with its own merged banner, header row and one row per record.
type SpreadsheetWriter struct {
	baseWriter
}

// NewSpreadsheetWriter creates a SpreadsheetWriter that outputs to the given writer.
func NewSpreadsheetWriter(output io.Writer) *SpreadsheetWriter {
	return &SpreadsheetWriter{baseWriter: newBaseWriter(output)}
}

// sheetStyles holds the style IDs registered with the workbook.
type sheetStyles struct {
	title  int
	banner int
	header int
	cell   int
}

// Write builds the workbook in memory and writes it to the output once.
func (w *SpreadsheetWriter) Write(report *model.Report) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return 0, fmt.Errorf("failed to name worksheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return 0, err
	}

	s := &sheet{file: f, styles: styles, widths: make([]int, len(model.Columns))}
	if err := s.writeBanner(1, report.Title, styles.title); err != nil {
		return 0, err
	}

	row := 3
	for _, section := range report.Sections {
		row, err = s.writeSection(row, section)
		if err != nil {
			return 0, fmt.Errorf("failed to write section %q: %w", section.Title, err)
		}
	}

	if err := s.applyWidths(); err != nil {
		return 0, err
	}

	n, err := f.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 16},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
			Border:    thin,
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		{
			Border:    thin,
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return sheetStyles{}, fmt.Errorf("failed to create cell style: %w", err)
		}
		ids[i] = id
	}
	return sheetStyles{title: ids[0], banner: ids[1], header: ids[2], cell: ids[3]}, nil
}

// sheet writes rows and tracks the longest value per column.
type sheet struct {
	file   *excelize.File
	styles sheetStyles
	widths []int
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// writeBanner merges columns A to C of row and sets text in the anchor.
// The anchor counts toward column A's width; the covered cells hold no value.
func (s *sheet) writeBanner(row int, text string, style int) error {
	first, last := cellName(1, row), cellName(len(model.Columns), row)
	if err := s.file.MergeCell(SheetName, first, last); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", first, last, err)
	}
	if err := s.file.SetCellStr(SheetName, first, text); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(text); n > s.widths[0] {
		s.widths[0] = n
	}
	return s.file.SetCellStyle(SheetName, first, last, style)
}

// writeRow writes one table row and records value lengths.
func (s *sheet) writeRow(row int, values []string, style int) error {
	for i, v := range values {
		if err := s.file.SetCellStr(SheetName, cellName(i+1, row), v); err != nil {
			return err
		}
		if n := utf8.RuneCountInString(v); n > s.widths[i] {
			s.widths[i] = n
		}
	}
	return s.file.SetCellStyle(SheetName, cellName(1, row), cellName(len(values), row), style)
}

// writeSection writes the banner, header and records of section starting at
// row and returns the first row of the next section.
func (s *sheet) writeSection(row int, section model.Section) (int, error) {
	if err := s.writeBanner(row, section.Banner(), s.styles.banner); err != nil {
		return 0, err
	}
	row++

	if err := s.writeRow(row, model.Columns, s.styles.header); err != nil {
		return 0, err
	}
	row++

	for _, rec := range section.Records() {
		if err := s.writeRow(row, rec.Cells(), s.styles.cell); err != nil {
			return 0, err
		}
		row++
	}

	// one blank separator row
	return row + 1, nil
}

func (s *sheet) applyWidths() error {
	for i, n := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := min(ColumnWidth(n), excelize.MaxColumnWidth)
		if err := s.file.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}
