package validate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linux-audit-script/auditreport/internal/loader"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestDir(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"b_valid.json":  `{"check": "x"}`,
		"a_broken.json": `{"check": `,
		"c_lines.json":  "{\"a\": 1}\n{\"b\": 2}\n",
		"notes.txt":     "not json",
	}

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		results, err := Dir(context.Background(), writeFiles(t, files), Options{Jobs: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var names []string
		for _, r := range results {
			names = append(names, r.Name)
		}
		if strings.Join(names, ",") != "a_broken.json,b_valid.json,c_lines.json" {
			t.Fatalf("unexpected order: %v", names)
		}

		if results[0].Valid() || !errors.Is(results[0].Err, loader.ErrSyntax) {
			t.Errorf("a_broken.json: expected syntax error, got %v", results[0].Err)
		}
		if !results[1].Valid() {
			t.Errorf("b_valid.json: unexpected error %v", results[1].Err)
		}
		if results[2].Valid() {
			t.Error("c_lines.json should be invalid without AllowLines")
		}
		if Invalid(results) != 2 {
			t.Errorf("Invalid() = %d, want 2", Invalid(results))
		}
	})

	t.Run("allow lines", func(t *testing.T) {
		t.Parallel()

		results, err := Dir(context.Background(), writeFiles(t, files), Options{AllowLines: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !results[2].Valid() || !results[2].LineDelimited {
			t.Errorf("c_lines.json: got %+v", results[2])
		}
		if results[0].Valid() {
			t.Error("a_broken.json should stay invalid")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		if _, err := Dir(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Dir(ctx, writeFiles(t, files), Options{Jobs: 1}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestResultString(t *testing.T) {
	t.Parallel()

	ok := Result{Name: "a.json"}
	if got := ok.String(); got != "✅ a.json is valid." {
		t.Errorf("String() = %q", got)
	}

	bad := Result{Name: "b.json", Err: errors.New("boom")}
	if got := bad.String(); got != "❌ b.json has an issue: boom" {
		t.Errorf("String() = %q", got)
	}
}
