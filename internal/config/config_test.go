package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pwaffinity/internal/centers"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional, so each one is pinned here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default CentersPath is in the XDG config dir", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(cfg.CentersPath) != centers.DefaultFileName {
			t.Errorf("expected CentersPath to end with %q, got %q", centers.DefaultFileName, cfg.CentersPath)
		}
		if !strings.HasPrefix(cfg.CentersPath, XDGConfigDir()) {
			t.Errorf("expected CentersPath under %q, got %q", XDGConfigDir(), cfg.CentersPath)
		}
	})

	t.Run("default Concurrency is positive", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency <= 0 {
			t.Errorf("expected positive Concurrency, got %d", cfg.Concurrency)
		}
	})

	t.Run("default LogFormat is text", func(t *testing.T) {
		t.Parallel()
		if cfg.LogFormat != "text" {
			t.Errorf("expected LogFormat to be 'text', got %q", cfg.LogFormat)
		}
	})

	t.Run("default SaveToDB is true", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
	})

	t.Run("default DBDir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default Reveal is false", func(t *testing.T) {
		t.Parallel()
		if cfg.Reveal {
			t.Error("expected Reveal to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			CentersPath: "centers.csv",
			Concurrency: 2,
			Passwords:   []string{"hunter2"},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "valid config returns nil", modify: func(*Config) {}, want: nil},
		{name: "no passwords", modify: func(c *Config) { c.Passwords = nil }, want: ErrNoPasswords},
		{name: "empty centers path", modify: func(c *Config) { c.CentersPath = "" }, want: ErrNoCenters},
		{name: "zero concurrency", modify: func(c *Config) { c.Concurrency = 0 }, want: ErrInvalidConcurrency},
		{name: "negative concurrency", modify: func(c *Config) { c.Concurrency = -1 }, want: ErrInvalidConcurrency},
		{
			name: "json and markdown together",
			modify: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			want: ErrConflictingReportFormats,
		},
		{name: "json alone is fine", modify: func(c *Config) { c.JSONReport = true }, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestApplyFile tests that config file values override defaults.
func TestApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := cfg.ApplyFile(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CentersPath != DefaultCentersPath() {
			t.Errorf("CentersPath changed to %q", cfg.CentersPath)
		}
	})

	t.Run("copies set values", func(t *testing.T) {
		t.Parallel()
		history := false
		cfg := NewConfig()
		err := cfg.ApplyFile(&File{
			Centers:     "/etc/pwaffinity/centers.csv",
			Concurrency: 7,
			History:     &history,
			Reveal:      true,
			Report:      ReportMarkdown,
			LogFormat:   "json",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CentersPath != "/etc/pwaffinity/centers.csv" {
			t.Errorf("CentersPath = %q", cfg.CentersPath)
		}
		if cfg.Concurrency != 7 {
			t.Errorf("Concurrency = %d, want 7", cfg.Concurrency)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false")
		}
		if !cfg.Reveal {
			t.Error("expected Reveal to be true")
		}
		if !cfg.MarkdownReport || cfg.JSONReport {
			t.Errorf("expected markdown report, got json=%v markdown=%v", cfg.JSONReport, cfg.MarkdownReport)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("LogFormat = %q", cfg.LogFormat)
		}
	})

	t.Run("zero values leave defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		want := *cfg
		if err := cfg.ApplyFile(&File{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CentersPath != want.CentersPath || cfg.Concurrency != want.Concurrency || cfg.SaveToDB != want.SaveToDB {
			t.Errorf("defaults changed: got %+v", cfg)
		}
	})

	t.Run("unknown report format", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Report: "html"})
		if !errors.Is(err, ErrInvalidReportFormat) {
			t.Errorf("expected ErrInvalidReportFormat, got %v", err)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.pwaffinity")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, DefaultConfigFile)

		content := `centers: refs/cluster_centers.csv
concurrency: 3
history: false
reveal: true
report: json
logFormat: json
dataDir: history
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", cf.Concurrency)
		}
		if cf.History == nil || *cf.History {
			t.Errorf("expected history false, got %v", cf.History)
		}
		if !cf.Reveal {
			t.Error("expected reveal true")
		}
		if cf.Report != ReportJSON {
			t.Errorf("expected report json, got %q", cf.Report)
		}
		want := filepath.Join(tmpDir, "refs", "cluster_centers.csv")
		if got := cf.ResolvedCentersPath(); got != want {
			t.Errorf("ResolvedCentersPath() = %q, want %q", got, want)
		}
		if got := cf.ResolvedDataDir(); got != filepath.Join(tmpDir, "history") {
			t.Errorf("ResolvedDataDir() = %q", got)
		}
	})

	t.Run("absolute centers path is kept", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, DefaultConfigFile)
		abs := filepath.Join(tmpDir, "elsewhere.csv")
		if err := os.WriteFile(configPath, []byte("centers: "+abs+"\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cf.ResolvedCentersPath(); got != abs {
			t.Errorf("ResolvedCentersPath() = %q, want %q", got, abs)
		}
	})

	t.Run("builtin centers are not resolved", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("centers: builtin:common-passwords\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cf.ResolvedCentersPath(); got != "builtin:common-passwords" {
			t.Errorf("ResolvedCentersPath() = %q", got)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, DefaultConfigFile)

		content := `invalid: yaml: content: [}`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "custom.yaml")

		if err := os.WriteFile(configPath, []byte("concurrency: 1\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds config in current directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Chdir(tmpDir)
		configPath := filepath.Join(tmpDir, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("reveal: true\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile("")
		if filepath.Base(result) != DefaultConfigFile {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGDataDir()) != AppName {
			t.Errorf("unexpected XDG data dir %q", XDGDataDir())
		}
	})

	t.Run("XDGConfigDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGConfigDir()) != AppName {
			t.Errorf("unexpected XDG config dir %q", XDGConfigDir())
		}
	})
}
