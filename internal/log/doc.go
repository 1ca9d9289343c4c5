// Package log provides logging helpers built on top of the standard slog
// package.
//
// Audit results quote host configuration, so a recommendation or a check
// name can carry a password hash, a pre-shared key or a private key block.
// RedactingHandler masks such values before they reach the output and clips
// long strings so a single record cannot flood the log.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("section loaded", "file", path, "records", n)
package log
