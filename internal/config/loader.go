package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pwaffinity"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Report format names accepted in the config file.
const (
	ReportText     = "text"
	ReportJSON     = "json"
	ReportMarkdown = "markdown"
)

// File represents the structure of the .pwaffinity configuration file.
type File struct {
	// Centers is the reference centers file. A relative path is resolved
	// against the directory containing the configuration file.
	Centers string `yaml:"centers,omitempty"`

	// Concurrency is the number of passwords analyzed in parallel.
	Concurrency int `yaml:"concurrency,omitempty"`

	// History enables or disables the history database. Unset means enabled.
	History *bool `yaml:"history,omitempty"`

	// Reveal prints passwords in reports instead of masking them.
	Reveal bool `yaml:"reveal,omitempty"`

	// Report is the default report format: text, json or markdown.
	Report string `yaml:"report,omitempty"`

	// LogFormat is text or json.
	LogFormat string `yaml:"logFormat,omitempty"`

	// DataDir holds the history database. Relative paths are resolved like
	// Centers.
	DataDir string `yaml:"dataDir,omitempty"`

	// dir is the directory the file was loaded from.
	dir string
}

// ResolvedCentersPath returns Centers resolved against the config file's
// directory, or "" when no centers file is set.
func (f *File) ResolvedCentersPath() string {
	return f.resolve(f.Centers)
}

// ResolvedDataDir returns DataDir resolved against the config file's
// directory, or "" when it is not set.
func (f *File) ResolvedDataDir() string {
	return f.resolve(f.DataDir)
}

func (f *File) resolve(p string) string {
	if p == "" {
		return ""
	}
	// Named sources such as "builtin:common-passwords" are not paths.
	if strings.HasPrefix(p, "builtin:") {
		return p
	}
	if filepath.IsAbs(p) || f.dir == "" {
		return p
	}
	return filepath.Join(f.dir, p)
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	cf.dir = filepath.Dir(path)

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pwaffinity in the current directory
// 3. Look for .pwaffinity in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
