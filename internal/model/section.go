package model

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SectionPrefix is prepended to a section title in every section banner.
const SectionPrefix = "Audit Results: "

// Group is the ordered set of records contributed by one key of an audit file.
// A top-level JSON list produces a single group with an empty Name.
type Group struct {
	Name    string   `json:"name,omitempty"`
	Records []Record `json:"records"`
}

// Section is the rendered representation of one audit file.
type Section struct {
	// Title is derived from the source file name, see SectionTitle.
	Title string `json:"title"`

	// Source is the manifest entry the section was loaded from.
	Source string `json:"source"`

	// Groups preserves the sub-category structure of the source file.
	Groups []Group `json:"groups"`

	// Skipped counts collected elements that were not JSON objects and
	// therefore produced no record.
	Skipped int `json:"skipped"`
}

// Banner returns the heading text shown above the section table.
func (s Section) Banner() string {
	return SectionPrefix + s.Title
}

// Records returns all records of the section in traversal order.
func (s Section) Records() []Record {
	records := make([]Record, 0, s.RecordCount())
	for _, g := range s.Groups {
		records = append(records, g.Records...)
	}
	return records
}

// RecordCount returns the number of records across all groups.
func (s Section) RecordCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Records)
	}
	return n
}

// SectionTitle derives a display title from an audit file name:
// the directory and extension are dropped, underscores and hyphens become
// spaces and the result is title-cased.
//
//	SectionTitle("ssh_server_audit.json") == "Ssh Server Audit"
func SectionTitle(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
