package loader

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeFile creates a file with the given content inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("single document round trips through encoding/json", func(t *testing.T) {
		t.Parallel()

		content := `{
  "ssh_server_audit": [
    {"check": "PermitRootLogin", "status": "FAIL", "recommendation": "Set to no"},
    {"check": "Protocol", "status": "PASS", "score": 1.5, "tags": ["a", "b"]}
  ],
  "summary": {"check": "overall", "status": null, "ok": true}
}`
		path := writeFile(t, "ssh_server_audit.json", content)

		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.LineDelimited {
			t.Error("expected single document, got line-delimited")
		}

		var want any
		if err := json.Unmarshal([]byte(content), &want); err != nil {
			t.Fatalf("failed to decode fixture: %v", err)
		}
		if diff := cmp.Diff(want, doc.Value.Interface()); diff != "" {
			t.Errorf("decoded value mismatch (-want +got):\n%s", diff)
		}

		// Re-encoding must also be equivalent content.
		encoded, err := doc.Value.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		var again any
		if err := json.Unmarshal(encoded, &again); err != nil {
			t.Fatalf("re-encoded JSON is invalid: %v", err)
		}
		if diff := cmp.Diff(want, again); diff != "" {
			t.Errorf("re-encoded value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("object member order is preserved", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "order.json", `{"zeta": 1, "alpha": 2, "mid": 3}`)
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var keys []string
		for _, m := range doc.Value.Members() {
			keys = append(keys, m.Key)
		}
		if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keys); diff != "" {
			t.Errorf("key order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("line-delimited file yields one value per non-blank line", func(t *testing.T) {
		t.Parallel()

		content := "{\"check\": \"one\"}\n\n  {\"check\": \"two\"}  \n[1, 2]\n\"three\"\n"
		path := writeFile(t, "lines.json", content)

		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !doc.LineDelimited {
			t.Error("expected line-delimited document")
		}
		if doc.Value.Kind() != KindArray {
			t.Fatalf("expected array, got %s", doc.Value.Kind())
		}
		if got := doc.Value.Len(); got != 4 {
			t.Fatalf("expected 4 values, got %d", got)
		}

		first, _ := doc.Value.Elems()[0].Lookup("check")
		second, _ := doc.Value.Elems()[1].Lookup("check")
		if first.Text() != "one" || second.Text() != "two" {
			t.Errorf("unexpected line order: %q, %q", first.Text(), second.Text())
		}
		if doc.Value.Elems()[3].Text() != "three" {
			t.Errorf("expected last value %q, got %q", "three", doc.Value.Elems()[3].Text())
		}
	})

	t.Run("empty file yields empty list", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "empty.json", "")
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Value.Kind() != KindArray || doc.Value.Len() != 0 {
			t.Errorf("expected empty array, got %s with %d items", doc.Value.Kind(), doc.Value.Len())
		}
	})

	t.Run("malformed line is a fatal parse error", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "broken.json", "{\"check\": \"ok\"}\n{\"check\": \n{\"check\": \"later\"}\n")
		_, err := Load(path)
		if err == nil {
			t.Fatal("expected error for malformed line")
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("expected ErrSyntax, got %v", err)
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %T", err)
		}
		if parseErr.Line != 2 {
			t.Errorf("expected line 2, got %d", parseErr.Line)
		}
		if parseErr.Path != path {
			t.Errorf("expected path %q, got %q", path, parseErr.Path)
		}
	})

	t.Run("missing file is an I/O error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
		if errors.Is(err, ErrSyntax) {
			t.Error("I/O error must not be reported as a syntax error")
		}
	})

	t.Run("digest depends on content", func(t *testing.T) {
		t.Parallel()

		a, err := Load(writeFile(t, "a.json", `{"check": "a"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Load(writeFile(t, "b.json", `{"check": "b"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(a.Digest) != 64 {
			t.Errorf("expected 64 hex characters, got %d", len(a.Digest))
		}
		if a.Digest == b.Digest {
			t.Error("expected different digests for different content")
		}
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"object", `{"a": 1}`, false},
		{"array", `[1, "two", null, true]`, false},
		{"scalar", `"text"`, false},
		{"surrounding whitespace", "\n  {\"a\": 1}\n\n", false},
		{"empty input", ``, true},
		{"two documents", "{\"a\": 1}\n{\"a\": 2}", true},
		{"truncated", `{"a": [1, 2`, true},
		{"bad literal", `{"a": nope}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("expected ErrSyntax, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("duplicate keys keep first position and last value", func(t *testing.T) {
		t.Parallel()

		v, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		members := v.Members()
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
		if members[0].Key != "a" || members[0].Value.Text() != "3" {
			t.Errorf("unexpected first member %q=%q", members[0].Key, members[0].Value.Text())
		}
	})

	t.Run("text forms", func(t *testing.T) {
		t.Parallel()

		v, err := Parse([]byte(`{"s": "plain", "n": 1.50, "b": false, "z": null, "o": {"k": [1, "x"]}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]string{
			"s": "plain",
			"n": "1.50",
			"b": "false",
			"z": "null",
			"o": `{"k":[1,"x"]}`,
		}
		for key, text := range want {
			got, ok := v.Lookup(key)
			if !ok {
				t.Errorf("missing key %q", key)
				continue
			}
			if got.Text() != text {
				t.Errorf("Text() of %q = %q, want %q", key, got.Text(), text)
			}
		}
	})

	t.Run("lookup on non-object", func(t *testing.T) {
		t.Parallel()

		if _, ok := String("x").Lookup("check"); ok {
			t.Error("expected lookup on a string to fail")
		}
	})
}
