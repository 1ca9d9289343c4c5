// Package normalize flattens loosely structured audit documents into
// ordered audit records.
//
// A document is either an object whose members hold lists or single
// entries, or a top-level list. Every collected entry that is a JSON object
// becomes one model.Record; anything else is counted and skipped. The
// member names of an outer object are kept as model.Group names so that
// renderers can show sub-categories when asked to.
package normalize
