package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/nao1215/pwaffinity/internal/centers"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pwaffinity"

	// DefaultLogFormat is the log line encoding used when none is configured.
	DefaultLogFormat = "text"

	// DefaultHistoryLimit is how many history rows are listed by default.
	DefaultHistoryLimit = 20
)

// DefaultConcurrency is the number of passwords analyzed in parallel.
// Scoring is CPU bound, so one worker per CPU is enough.
var DefaultConcurrency = runtime.NumCPU()

// Config holds all configuration options for a pwaffinity run.
// It is populated from defaults, the config file and CLI flags, in that
// order, and passed down explicitly.
type Config struct {
	// CentersPath is the reference centers file.
	CentersPath string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pwaffinity in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is "text" or "json".
	LogFormat string

	// Concurrency is the number of passwords analyzed in parallel.
	Concurrency int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// Reveal prints passwords in reports instead of masking them.
	Reveal bool

	// Quiet suppresses progress output and the terminal copy of a report
	// written to ReportFile.
	Quiet bool

	// DBDir is the directory holding the history database.
	DBDir string

	// SaveToDB records analyses in the history database.
	SaveToDB bool

	// ListFile is a file with one password per line.
	ListFile string

	// Passwords are the passwords to analyze.
	Passwords []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		CentersPath: DefaultCentersPath(),
		LogFormat:   DefaultLogFormat,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for pwaffinity.
// On Linux: ~/.local/share/pwaffinity
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pwaffinity.
// On Linux: ~/.config/pwaffinity
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultCentersPath is where the reference centers live when neither a flag
// nor the config file names a file.
func DefaultCentersPath() string {
	return filepath.Join(XDGConfigDir(), centers.DefaultFileName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Passwords) == 0 {
		return ErrNoPasswords
	}

	if c.CentersPath == "" {
		return ErrNoCenters
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ApplyFile copies the values set in f onto c. Zero values in f leave c
// unchanged. CLI flags are applied afterwards and win.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}

	if p := f.ResolvedCentersPath(); p != "" {
		c.CentersPath = p
	}
	if d := f.ResolvedDataDir(); d != "" {
		c.DBDir = d
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.History != nil {
		c.SaveToDB = *f.History
	}
	if f.Reveal {
		c.Reveal = true
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}

	switch f.Report {
	case "", ReportText:
	case ReportJSON:
		c.JSONReport = true
		c.MarkdownReport = false
	case ReportMarkdown:
		c.MarkdownReport = true
		c.JSONReport = false
	default:
		return ErrInvalidReportFormat
	}

	return nil
}
