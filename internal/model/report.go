package model

import "time"

// DefaultTitle is the report title used when none is configured.
const DefaultTitle = "Final Audit Report"

// Report is the ordered collection of sections rendered into one document.
// It is built section by section in manifest order and serialized once.
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
}

// NewReport creates an empty report with the given title.
func NewReport(title string) *Report {
	if title == "" {
		title = DefaultTitle
	}
	return &Report{
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Sections:    make([]Section, 0),
	}
}

// AddSection appends a section, keeping manifest order.
func (r *Report) AddSection(s Section) {
	r.Sections = append(r.Sections, s)
}

// RecordCount returns the number of records across all sections.
func (r *Report) RecordCount() int {
	n := 0
	for _, s := range r.Sections {
		n += s.RecordCount()
	}
	return n
}

// SkippedCount returns the number of non-object elements dropped across all sections.
func (r *Report) SkippedCount() int {
	n := 0
	for _, s := range r.Sections {
		n += s.Skipped
	}
	return n
}
