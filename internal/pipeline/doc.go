// Package pipeline drives report generation as a sequence of steps.
//
// A run collects the manifest files into sections (load, then normalize,
// one file at a time and in manifest order), renders the finished report
// once to a temporary file that is renamed into place, and optionally
// records the run in the history database. Each stage is a Step that
// receives the report being built.
//
// Steps run strictly in order; the first failing step stops the run.
// Cancellation is checked between steps and between manifest entries.
package pipeline
