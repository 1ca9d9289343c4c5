package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// AppName is the application name used for XDG directory paths.
const AppName = "auditreport"

// Format is an output format for the rendered report.
type Format string

// Supported output formats.
const (
	FormatXLSX     Format = "xlsx"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatXLSX, FormatPDF, FormatMarkdown, FormatJSON}

// ParseFormat converts a user supplied name to a Format. Matching ignores
// case; "md" and "excel" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// DefaultOutputBase is the output file name without extension.
const DefaultOutputBase = "final_audit_report"

// DefaultOutput returns the default output path for format.
func DefaultOutput(f Format) string {
	return DefaultOutputBase + "." + f.Extension()
}

// Canvas report defaults.
const (
	DefaultCategoryFile   = "service_clients_audit.json"
	DefaultCategoryOutput = "audit_report.pdf"
)

// CategoryConfig configures the single-category canvas report.
type CategoryConfig struct {
	// File is the audit file rendered, relative to InputDir.
	File string

	// OutputPath is where the PDF is written.
	OutputPath string

	// Title overrides the "<Section Title> Report" page title.
	Title string
}

// Config holds all configuration options for auditreport.
// It is populated from defaults, the configuration file and CLI flags, in
// that order, and passed explicitly to the pipeline.
type Config struct {
	// InputDir is the directory the manifest entries are resolved against.
	InputDir string

	// Manifest is the ordered list of audit files rendered as sections.
	Manifest []string

	// Title is the report title.
	Title string

	// Format selects the report writer.
	Format Format

	// OutputPath is the artifact path. When empty, DefaultOutput(Format)
	// is used.
	OutputPath string

	// ShowGroups emits a caption per sub-category in PDF and Markdown output.
	ShowGroups bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the default locations.
	ConfigFilePath string

	// HistoryEnabled records each run in the SQLite history database.
	HistoryEnabled bool

	// DBDir is the directory holding the history database.
	DBDir string

	// Category configures the canvas report.
	Category CategoryConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		InputDir: ".",
		Manifest: slices.Clone(DefaultManifest),
		Title:    model.DefaultTitle,
		Format:   FormatXLSX,
		DBDir:    XDGDataDir(),
		Category: CategoryConfig{
			File:       DefaultCategoryFile,
			OutputPath: DefaultCategoryOutput,
		},
	}
}

// Output returns the configured output path, falling back to the default
// for the format.
func (c *Config) Output() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return DefaultOutput(c.Format)
}

// ManifestPaths returns the manifest entries resolved against InputDir.
// Absolute entries are kept as they are.
func (c *Config) ManifestPaths() []string {
	paths := make([]string, len(c.Manifest))
	for i, name := range c.Manifest {
		if filepath.IsAbs(name) {
			paths[i] = name
			continue
		}
		paths[i] = filepath.Join(c.InputDir, name)
	}
	return paths
}

// CategoryPath returns the canvas input resolved against InputDir.
func (c *Config) CategoryPath() string {
	if filepath.IsAbs(c.Category.File) {
		return c.Category.File
	}
	return filepath.Join(c.InputDir, c.Category.File)
}

// XDGDataDir returns the XDG data directory for auditreport.
// On Linux: ~/.local/share/auditreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for auditreport.
// On Linux: ~/.config/auditreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Manifest) == 0 {
		return ErrEmptyManifest
	}

	seen := make(map[string]struct{}, len(c.Manifest))
	for _, name := range c.Manifest {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyManifestEntry
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateManifestEntry, name)
		}
		seen[name] = struct{}{}
	}

	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}

	if c.Output() == "" || strings.HasSuffix(c.Output(), string(filepath.Separator)) {
		return ErrEmptyOutput
	}

	if c.HistoryEnabled && c.DBDir == "" {
		return ErrEmptyDBDir
	}

	return nil
}

// ValidateCategory checks the settings used by the canvas report.
func (c *Config) ValidateCategory() error {
	if strings.TrimSpace(c.Category.File) == "" {
		return ErrEmptyCategoryFile
	}
	if strings.TrimSpace(c.Category.OutputPath) == "" {
		return ErrEmptyOutput
	}
	return nil
}
