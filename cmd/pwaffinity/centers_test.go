package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pwaffinity/internal/centers"
	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/md5sum"
)

func TestCentersBuildCmd(t *testing.T) {
	t.Parallel()

	t.Run("builds from stdin list", func(t *testing.T) {
		t.Parallel()

		out, _, err := executeCommand(t, strings.NewReader("password\ndassword\nP@ssw0rd!\n"), "centers", "build", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 centers, got %d:\n%s", len(lines), out)
		}
		if got := strings.Count(lines[0], ";"); got != fingerprint.Length-1 {
			t.Errorf("expected %d separators, got %d", fingerprint.Length-1, got)
		}
		if !strings.HasPrefix(lines[0], "2;1;1;1;2;1;1;2;0") {
			t.Errorf("unexpected first center %q", lines[0])
		}
	})

	t.Run("comma separator", func(t *testing.T) {
		t.Parallel()

		out, _, err := executeCommand(t, strings.NewReader("abc\n"), "centers", "build", "--separator", ",", "-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, ";") || strings.Count(out, ",") != fingerprint.Length-1 {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("rejects bad separator", func(t *testing.T) {
		t.Parallel()

		for _, sep := range []string{"|", ";;", ""} {
			if _, _, err := executeCommand(t, strings.NewReader("abc\n"), "centers", "build", "--separator", sep, "-"); err == nil {
				t.Errorf("expected error for separator %q", sep)
			}
		}
	})

	t.Run("embedded list to file matches builtin set", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "centers.csv")
		_, stderr, err := executeCommand(t, nil, "centers", "build", "-o", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Wrote") {
			t.Errorf("expected summary on stderr, got %q", stderr)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("centers not written: %v", err)
		}
		builtin, err := centers.Builtin()
		if err != nil {
			t.Fatal(err)
		}
		if md5sum.SumHex(data) != builtin.Digest {
			t.Error("built file differs from the builtin reference set")
		}
	})

	t.Run("install writes to configured centers path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "pwaffinity.yaml")
		if err := os.WriteFile(cfgPath, []byte("centers: refs/cluster_centers.csv\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := executeCommand(t, nil, "-c", cfgPath, "centers", "build", "--install"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "refs", "cluster_centers.csv")); err != nil {
			t.Errorf("centers not installed: %v", err)
		}
	})

	t.Run("install and output conflict", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCommand(t, nil, "centers", "build", "--install", "-o", "x.csv"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestCentersInfoCmd(t *testing.T) {
	t.Parallel()

	t.Run("describes a file", func(t *testing.T) {
		t.Parallel()

		cfgPath, _ := writeTestConfig(t, "")
		path := filepath.Join(t.TempDir(), "c.csv")
		content := []byte(strings.Repeat("0;", 27) + "0\n")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatal(err)
		}

		out, _, err := executeCommand(t, nil, "-c", cfgPath, "centers", "info", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{path, md5sum.SumHex(content), "valid"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("reports invalid width", func(t *testing.T) {
		t.Parallel()

		cfgPath, _ := writeTestConfig(t, "")
		path := filepath.Join(t.TempDir(), "short.csv")
		if err := os.WriteFile(path, []byte("1;2;3\n"), 0600); err != nil {
			t.Fatal(err)
		}

		out, _, err := executeCommand(t, nil, "-c", cfgPath, "centers", "info", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "invalid reference centers") {
			t.Errorf("expected configuration error in output:\n%s", out)
		}
	})

	t.Run("defaults to configured centers", func(t *testing.T) {
		t.Parallel()

		cfgPath, _ := writeTestConfig(t, "")
		out, _, err := executeCommand(t, nil, "-c", cfgPath, "centers", "info")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, centers.CommonPasswordsSource) {
			t.Errorf("expected builtin source in output:\n%s", out)
		}
	})
}
