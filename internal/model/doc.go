// Package model defines the data structures shared by the audit report pipeline.
//
// This package contains the following main types:
//   - Record: one normalized check / status / recommendation triple
//   - Group: the records contributed by one key of an audit file
//   - Section: everything rendered for one audit file
//   - Report: the ordered sections plus the report title
//
// Multiple packages (normalize, layout, report, database) use these types,
// so they live in their own package to keep the import graph acyclic.
package model
