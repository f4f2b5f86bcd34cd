package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can match them
// with errors.Is.
var (
	// ErrNoPasswords is returned when no password was supplied as an
	// argument, in a list file or on standard input.
	ErrNoPasswords = errors.New("no passwords to analyze: pass them as arguments, use --list, or pipe them on stdin")

	// ErrNoCenters is returned when no reference centers file is configured.
	ErrNoCenters = errors.New("no reference centers file configured: use --centers or set centers in the config file")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidReportFormat is returned for an unknown report format in the
	// config file.
	ErrInvalidReportFormat = errors.New("invalid report format: must be text, json or markdown")
)
