package config

import "fmt"

// CategoryFile is the category section of the configuration file.
type CategoryFile struct {
	// File is the audit file rendered by the category command.
	File string `yaml:"file,omitempty"`

	// Output is the PDF path written by the category command.
	Output string `yaml:"output,omitempty"`

	// Title overrides the generated page title.
	Title string `yaml:"title,omitempty"`
}

// File represents the structure of the .auditreport configuration file.
// Zero values leave the corresponding setting untouched.
type File struct {
	// InputDir is the directory holding the audit result files.
	InputDir string `yaml:"inputDir,omitempty"`

	// Preset selects a built-in manifest ("default" or "extended").
	// Ignored when Manifest is set.
	Preset string `yaml:"preset,omitempty"`

	// Manifest replaces the built-in list of audit files.
	Manifest []string `yaml:"manifest,omitempty"`

	// Title is the report title.
	Title string `yaml:"title,omitempty"`

	// Format is the output format name.
	Format string `yaml:"format,omitempty"`

	// Output is the artifact path.
	Output string `yaml:"output,omitempty"`

	// ShowGroups enables sub-category captions.
	ShowGroups *bool `yaml:"showGroups,omitempty"`

	// History enables the run history database.
	History *bool `yaml:"history,omitempty"`

	// DBDir is the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`

	// Category configures the single-category report.
	Category CategoryFile `yaml:"category,omitempty"`
}

// Apply overlays the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.InputDir != "" {
		cfg.InputDir = f.InputDir
	}

	switch {
	case len(f.Manifest) > 0:
		cfg.Manifest = append([]string(nil), f.Manifest...)
	case f.Preset != "":
		m, ok := ManifestPreset(f.Preset)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPreset, f.Preset)
		}
		cfg.Manifest = m
	}

	if f.Title != "" {
		cfg.Title = f.Title
	}
	if f.Format != "" {
		format, err := ParseFormat(f.Format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}
	if f.Output != "" {
		cfg.OutputPath = f.Output
	}
	if f.ShowGroups != nil {
		cfg.ShowGroups = *f.ShowGroups
	}
	if f.History != nil {
		cfg.HistoryEnabled = *f.History
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}

	if f.Category.File != "" {
		cfg.Category.File = f.Category.File
	}
	if f.Category.Output != "" {
		cfg.Category.OutputPath = f.Category.Output
	}
	if f.Category.Title != "" {
		cfg.Category.Title = f.Category.Title
	}
	return nil
}
