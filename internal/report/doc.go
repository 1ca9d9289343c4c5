// Package report serializes a model.Report into an output artifact.
//
// Writers for each supported format:
//   - SpreadsheetWriter: one-sheet .xlsx workbook (excelize)
//   - DocumentWriter: flowed, paginated PDF (fpdf)
//   - CanvasWriter: single-category PDF with fixed row placement (fpdf)
//   - MarkdownWriter: Markdown document with one table per section
//   - JSONWriter: normalized report as JSON
//   - SummaryWriter: plain-text per-section counts for the terminal
//
// Both PDF writers place content through package layout and only draw the
// resulting pages. Every writer implements Writer, so callers choose the
// format once and serialize the whole report in a single call.
package report
