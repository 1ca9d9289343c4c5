package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate and Config.ValidateCategory.
var (
	// ErrEmptyManifest is returned when there are no audit files to render.
	ErrEmptyManifest = errors.New("empty manifest: at least one audit file is required")

	// ErrEmptyManifestEntry is returned when a manifest entry is blank.
	ErrEmptyManifestEntry = errors.New("invalid manifest: entries must not be empty")

	// ErrDuplicateManifestEntry is returned when a file is listed twice.
	ErrDuplicateManifestEntry = errors.New("invalid manifest: duplicate entry")

	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid format: must be one of xlsx, pdf, markdown, json")

	// ErrEmptyTitle is returned when the report title is blank.
	ErrEmptyTitle = errors.New("invalid title: must not be empty")

	// ErrEmptyOutput is returned when the output path is missing or names a directory.
	ErrEmptyOutput = errors.New("invalid output: a file path is required")

	// ErrEmptyDBDir is returned when history is enabled without a database directory.
	ErrEmptyDBDir = errors.New("invalid history settings: database directory is required")

	// ErrEmptyCategoryFile is returned when the canvas report has no input file.
	ErrEmptyCategoryFile = errors.New("invalid category: an audit file is required")
)

// ErrUnknownPreset is returned for a manifest preset that does not exist.
var ErrUnknownPreset = errors.New("unknown manifest preset: must be default or extended")
