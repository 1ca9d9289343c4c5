// Package database provides SQLite-based run history for auditreport.
//
// Each rendered report can be recorded as a run: when it was generated,
// which format and output path were used, the totals, and one row per
// section with the digest of the audit file it came from. Comparing
// digests across runs shows which audit results changed between reports.
//
// The database is a single file (modernc.org/sqlite, no CGO) in the XDG
// data directory unless configured otherwise.
package database
