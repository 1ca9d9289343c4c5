package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/linux-audit-script/auditreport/internal/loader"
)

// Options configures a validation run.
type Options struct {
	// AllowLines accepts files holding one JSON value per line.
	AllowLines bool

	// Jobs bounds the number of files parsed at once. Zero or less uses
	// runtime.NumCPU.
	Jobs int
}

// Result is the outcome for one file.
type Result struct {
	// Name is the file name within the directory.
	Name string

	// Path is the full path of the file.
	Path string

	// LineDelimited reports that the file only parsed line by line.
	LineDelimited bool

	// Err is the parse or read error; nil when the file is valid.
	Err error
}

// Valid reports whether the file parsed.
func (r Result) Valid() bool {
	return r.Err == nil
}

// String formats the result the way the validate command prints it.
func (r Result) String() string {
	if r.Valid() {
		return fmt.Sprintf("✅ %s is valid.", r.Name)
	}
	return fmt.Sprintf("❌ %s has an issue: %v", r.Name, r.Err)
}

// Dir validates every regular *.json file directly inside dir.
// Per-file problems are reported in the results; the returned error is
// only set when the directory cannot be listed or ctx is cancelled.
func Dir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return Files(ctx, paths, opts)
}

// Files validates the given files and returns results in the same order.
func Files(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func check(path string, opts Options) Result {
	r := Result{Name: filepath.Base(path), Path: path}

	if opts.AllowLines {
		doc, err := loader.Load(path)
		if err != nil {
			r.Err = err
			return r
		}
		r.LineDelimited = doc.LineDelimited
		return r
	}

	data, err := os.ReadFile(path) //nolint:gosec // paths come from the scanned directory
	if err != nil {
		r.Err = err
		return r
	}
	if _, err := loader.Parse(data); err != nil {
		r.Err = err
	}
	return r
}

// Invalid returns the number of results holding an error.
func Invalid(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Valid() {
			n++
		}
	}
	return n
}
