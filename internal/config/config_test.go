package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default manifest has 30 files in order", func(t *testing.T) {
		t.Parallel()
		if len(cfg.Manifest) != 30 {
			t.Fatalf("expected 30 manifest entries, got %d", len(cfg.Manifest))
		}
		if cfg.Manifest[0] != "apparmor_audit_report.json" || cfg.Manifest[29] != "user_accounts_audit.json" {
			t.Errorf("unexpected manifest bounds: %s .. %s", cfg.Manifest[0], cfg.Manifest[29])
		}
	})

	t.Run("manifest is a copy", func(t *testing.T) {
		t.Parallel()
		c := NewConfig()
		c.Manifest[0] = "changed.json"
		if DefaultManifest[0] == "changed.json" {
			t.Error("NewConfig shares the DefaultManifest backing array")
		}
	})

	t.Run("default title", func(t *testing.T) {
		t.Parallel()
		if cfg.Title != model.DefaultTitle {
			t.Errorf("expected Title %q, got %q", model.DefaultTitle, cfg.Title)
		}
	})

	t.Run("default format and output", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != FormatXLSX {
			t.Errorf("expected format xlsx, got %q", cfg.Format)
		}
		if cfg.Output() != "final_audit_report.xlsx" {
			t.Errorf("expected final_audit_report.xlsx, got %q", cfg.Output())
		}
	})

	t.Run("history disabled", func(t *testing.T) {
		t.Parallel()
		if cfg.HistoryEnabled {
			t.Error("expected history to be disabled")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("category defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.Category.File != "service_clients_audit.json" || cfg.Category.OutputPath != "audit_report.pdf" {
			t.Errorf("unexpected category defaults: %+v", cfg.Category)
		}
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "xlsx", want: FormatXLSX},
		{in: "Excel", want: FormatXLSX},
		{in: "PDF", want: FormatPDF},
		{in: "md", want: FormatMarkdown},
		{in: " json ", want: FormatJSON},
		{in: "docx", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("expected ErrInvalidFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	t.Parallel()

	want := map[Format]string{
		FormatXLSX:     "final_audit_report.xlsx",
		FormatPDF:      "final_audit_report.pdf",
		FormatMarkdown: "final_audit_report.md",
		FormatJSON:     "final_audit_report.json",
	}
	for f, path := range want {
		if got := DefaultOutput(f); got != path {
			t.Errorf("DefaultOutput(%s) = %q, want %q", f, got, path)
		}
	}
}

// TestConfigValidate tests the Validate function.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "empty manifest", modify: func(c *Config) { c.Manifest = nil }, want: ErrEmptyManifest},
		{name: "blank entry", modify: func(c *Config) { c.Manifest = []string{"a.json", " "} }, want: ErrEmptyManifestEntry},
		{name: "duplicate entry", modify: func(c *Config) { c.Manifest = []string{"a.json", "a.json"} }, want: ErrDuplicateManifestEntry},
		{name: "unknown format", modify: func(c *Config) { c.Format = "docx" }, want: ErrInvalidFormat},
		{name: "blank title", modify: func(c *Config) { c.Title = "  " }, want: ErrEmptyTitle},
		{name: "directory output", modify: func(c *Config) { c.OutputPath = "out" + string(filepath.Separator) }, want: ErrEmptyOutput},
		{name: "history without dir", modify: func(c *Config) { c.HistoryEnabled = true; c.DBDir = "" }, want: ErrEmptyDBDir},
		{name: "history with dir", modify: func(c *Config) { c.HistoryEnabled = true; c.DBDir = "/tmp/x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if err := cfg.ValidateCategory(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	cfg.Category.File = ""
	if err := cfg.ValidateCategory(); !errors.Is(err, ErrEmptyCategoryFile) {
		t.Errorf("expected ErrEmptyCategoryFile, got %v", err)
	}
}

func TestManifestPaths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.InputDir = "results"
	abs := filepath.Join(string(filepath.Separator), "abs", "b.json")
	cfg.Manifest = []string{"a.json", abs}

	want := []string{filepath.Join("results", "a.json"), abs}
	if diff := cmp.Diff(want, cfg.ManifestPaths()); diff != "" {
		t.Errorf("ManifestPaths() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.CategoryPath(); got != filepath.Join("results", DefaultCategoryFile) {
		t.Errorf("CategoryPath() = %q", got)
	}
}

func TestManifestPreset(t *testing.T) {
	t.Parallel()

	m, ok := ManifestPreset(PresetExtended)
	if !ok {
		t.Fatal("expected extended preset")
	}
	if len(m) != 33 {
		t.Fatalf("expected 33 entries, got %d", len(m))
	}
	wantHead := []string{
		"additional_software_audit.json",
		"aide_integrity_check.json",
		"apparmor_audit_report.json",
		"auditd_rules.json",
		"chrony_audit.json",
	}
	if diff := cmp.Diff(wantHead, m[:5]); diff != "" {
		t.Errorf("extended manifest head mismatch (-want +got):\n%s", diff)
	}

	d, ok := ManifestPreset("")
	if !ok || !cmp.Equal(d, DefaultManifest) {
		t.Error("empty preset should return the default manifest")
	}
	if _, ok := ManifestPreset("nope"); ok {
		t.Error("unknown preset should not be found")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestLoadConfigFile tests reading the YAML file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.auditreport")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", `inputDir: /var/log/audit-results
manifest:
  - ssh_server_audit.json
  - fips_audit.json
title: Host Audit
format: pdf
output: out/report.pdf
showGroups: true
history: false
category:
  file: chrony_audit.json
  output: chrony.pdf
  title: Chrony
`)
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		cfg.HistoryEnabled = true
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		want := &Config{
			InputDir:       "/var/log/audit-results",
			Manifest:       []string{"ssh_server_audit.json", "fips_audit.json"},
			Title:          "Host Audit",
			Format:         FormatPDF,
			OutputPath:     "out/report.pdf",
			ShowGroups:     true,
			HistoryEnabled: false,
			DBDir:          XDGDataDir(),
			Category:       CategoryConfig{File: "chrony_audit.json", OutputPath: "chrony.pdf", Title: "Chrony"},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file changes nothing", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", "")
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", `invalid: yaml: content: [}`)
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", "titel: typo\n")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("bad format in file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", "format: docx\n")
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.Apply(NewConfig()); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("preset", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".auditreport", "preset: extended\n")
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg := NewConfig()
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if len(cfg.Manifest) != 33 {
			t.Errorf("expected 33 entries, got %d", len(cfg.Manifest))
		}

		f.Preset = "bogus"
		if err := f.Apply(NewConfig()); !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("expected ErrUnknownPreset, got %v", err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "custom.yaml", "title: x\n")
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/path/config.yaml"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("prefers the working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, DefaultConfigFile, "title: x\n")
		t.Chdir(dir)

		want, _ := filepath.EvalSymlinks(filepath.Join(dir, DefaultConfigFile))
		got, _ := filepath.EvalSymlinks(FindConfigFile(""))
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

// TestLoad tests the combined default and file loading.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "cfg.yaml", "format: json\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Format != FormatJSON || cfg.ConfigFilePath != path {
			t.Errorf("unexpected config: format %q, path %q", cfg.Format, cfg.ConfigFilePath)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("XDGDataDir() = %q, want suffix %q", XDGDataDir(), AppName)
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("XDGConfigDir() = %q, want suffix %q", XDGConfigDir(), AppName)
	}
}
