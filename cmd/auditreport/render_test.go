package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/linux-audit-script/auditreport/internal/config"
)

// writeFixture creates an input directory with two audit files and a
// configuration file pointing at it. It returns the config path and the
// input directory.
func writeFixture(t *testing.T, extra string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"ssh_server_audit.json":      `{"sshd": [{"check": "PermitRootLogin", "status": "FAIL", "recommendation": "Set to no"}]}`,
		"chrony_audit.json":          `[{"check": "server", "status": "PASS"}, "stray"]`,
		"service_clients_audit.json": `[{"service": "telnet", "status": "Not Installed"}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "inputDir: " + dir + "\n" +
		"manifest:\n  - ssh_server_audit.json\n  - chrony_audit.json\n" +
		"dbDir: " + filepath.Join(dir, "db") + "\n" + extra
	if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dir
}

func TestRenderCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes workbook", func(t *testing.T) {
		t.Parallel()

		cfgPath, dir := writeFixture(t, "")
		output := filepath.Join(dir, "report.xlsx")

		out, _, err := runCLI(t, "render", "-c", cfgPath, "-o", output)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "Excel report generated: "+output+"\n" {
			t.Errorf("unexpected output: %q", out)
		}

		f, err := excelize.OpenFile(output)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()
		v, err := f.GetCellValue("Audit Report", "A3")
		if err != nil {
			t.Fatal(err)
		}
		if v != "Audit Results: Ssh Server Audit" {
			t.Errorf("A3 = %q", v)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		cfgPath, dir := writeFixture(t, "format: json\ntitle: From File\n")
		output := filepath.Join(dir, "report.md")

		out, _, err := runCLI(t, "render", "-c", cfgPath, "-f", "md", "-o", output,
			"--manifest", "chrony_audit.json", "--summary")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "Markdown report generated: "+output+"\n") {
			t.Errorf("unexpected confirmation: %q", out)
		}
		if !strings.Contains(out, "Total: 1 sections, 1 records, 1 skipped") {
			t.Errorf("missing summary: %q", out)
		}

		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		md := string(data)
		if !strings.Contains(md, "# From File") {
			t.Error("title from config file not used")
		}
		if strings.Contains(md, "Ssh Server Audit") {
			t.Error("--manifest did not replace the configured manifest")
		}
	})

	t.Run("missing input fails without output", func(t *testing.T) {
		t.Parallel()

		cfgPath, dir := writeFixture(t, "")
		output := filepath.Join(dir, "report.pdf")

		out, _, err := runCLI(t, "render", "-c", cfgPath, "-f", "pdf", "-o", output,
			"--manifest", "chrony_audit.json", "--manifest", "absent.json")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected fs.ErrNotExist, got %v", err)
		}
		if out != "" {
			t.Errorf("unexpected output: %q", out)
		}
		if _, err := os.Stat(output); !errors.Is(err, fs.ErrNotExist) {
			t.Error("partial report left behind")
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		cfgPath, _ := writeFixture(t, "")
		_, _, err := runCLI(t, "render", "-c", cfgPath, "-f", "docx")
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("duplicate manifest entry", func(t *testing.T) {
		t.Parallel()

		cfgPath, _ := writeFixture(t, "")
		_, _, err := runCLI(t, "render", "-c", cfgPath,
			"--manifest", "chrony_audit.json", "--manifest", "chrony_audit.json")
		if !errors.Is(err, config.ErrDuplicateManifestEntry) {
			t.Errorf("expected ErrDuplicateManifestEntry, got %v", err)
		}
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "render", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestCategoryCmd(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeFixture(t, "")
	output := filepath.Join(dir, "out", "category.pdf")

	out, _, err := runCLI(t, "category", "-c", cfgPath, "-o", output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "PDF report generated: "+output+"\n" {
		t.Errorf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("output is not a PDF")
	}
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeFixture(t, "")

	out, _, err := runCLI(t, "history", "-c", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No runs recorded yet") {
		t.Errorf("unexpected output before any run: %q", out)
	}

	output := filepath.Join(dir, "report.json")
	if _, _, err := runCLI(t, "render", "-c", cfgPath, "-f", "json", "-o", output, "--history"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out, _, err = runCLI(t, "history", "-c", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ID") || !strings.Contains(out, output) {
		t.Errorf("run not listed: %q", out)
	}

	out, _, err = runCLI(t, "history", "-c", cfgPath, "--id", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Ssh Server Audit", "chrony_audit.json", "Total: 2 sections, 2 records, 1 skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
