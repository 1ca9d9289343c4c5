package loader

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Document is the raw JSON content of one audit file.
type Document struct {
	// Path is the file the document was read from.
	Path string

	// Value is the decoded content. For line-delimited files it is an
	// array holding one element per non-blank line.
	Value Value

	// LineDelimited reports whether the fallback line-by-line parse was used.
	LineDelimited bool

	// Digest is the hex encoded BLAKE2b-256 sum of the file content.
	Digest string
}

// Load reads and decodes the audit file at path.
//
// The whole file is parsed as a single JSON value first. If that fails for
// any syntactic reason the file is parsed again as one JSON value per
// non-blank line, in line order. A malformed line is returned as a
// *ParseError; a missing or unreadable file as the underlying *fs.PathError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the configured manifest
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:   path,
		Digest: digest(data),
	}

	if v, err := Parse(data); err == nil {
		doc.Value = v
		return doc, nil
	}

	v, err := parseLines(path, data)
	if err != nil {
		return nil, err
	}
	doc.Value = v
	doc.LineDelimited = true
	return doc, nil
}

// parseLines decodes one JSON value per non-blank line.
func parseLines(path string, data []byte) (Value, error) {
	elems := make([]Value, 0)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		v, err := Parse(line)
		if err != nil {
			return Value{}, &ParseError{Path: path, Line: lineNo, Err: err}
		}
		elems = append(elems, v)
	}
	if err := scanner.Err(); err != nil {
		return Value{}, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	return Array(elems...), nil
}

func digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
