// Package layout computes page placement for tabular audit reports
// independently of the output backend.
//
// The Engine walks a model.Report once and produces an ordered list of
// pages, each holding positioned elements (title, section heading, group
// caption, table header, table row). Backends only draw what they are
// given: the flowed PDF writer and the canvas PDF writer in package report
// consume the same Page values, produced with different Profiles.
//
// Rows are never split across pages. Text measurement is delegated to a
// Measurer so the engine can be exercised without a PDF library.
//
// Coordinates are in points with the origin at the top-left corner of the
// page; Y grows downwards.
package layout
