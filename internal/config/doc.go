// Package config provides configuration structures and utilities for
// auditreport. It defines the manifest of audit files to render, the output
// format and path, the single-category canvas settings and the optional
// run history, and loads overrides from a YAML configuration file.
package config
