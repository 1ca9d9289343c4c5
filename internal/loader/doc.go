// Package loader reads audit result files from disk.
//
// Audit producers are inconsistent about encoding: some write one JSON
// document per file, others write one JSON value per line. Load tries the
// whole file as a single document first and falls back to line-delimited
// parsing when that fails.
//
// Values are decoded into an ordered tree (Value) rather than Go maps,
// because the normalizer depends on the order of object members.
// Decoding is built on github.com/go-json-experiment/json/jsontext.
package loader
