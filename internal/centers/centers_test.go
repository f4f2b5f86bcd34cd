package centers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pwaffinity/internal/centroid"
	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/md5sum"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("semicolons and commas", func(t *testing.T) {
		t.Parallel()
		input := "1;2;3\n4,5.5,6\n7;8,9e-1\n"
		got, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := [][]float64{{1, 2, 3}, {4, 5.5, 6}, {7, 8, 0.9}}
		assertCenters(t, got, want)
	})

	t.Run("trims whitespace and trailing separators", func(t *testing.T) {
		t.Parallel()
		input := "  1 ; 2 \r\n\t3;4;\n5,6,,\n"
		got, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertCenters(t, got, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	})

	t.Run("rejects empty values", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			input string
			line  int
			field int
		}{
			{name: "between separators", input: "1,,2\n", line: 1, field: 2},
			{name: "whitespace only value", input: "1;2\n3; ;4\n", line: 2, field: 2},
			{name: "leading separator", input: ";1\n", line: 1, field: 1},
			{name: "blank line", input: "1;2\n\n3;4\n", line: 2, field: 1},
			{name: "whitespace line", input: "1;2\n  \t\n", line: 2, field: 1},
		}
		for _, tt := range tests {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrEmptyValue) {
				t.Errorf("%s: expected ErrEmptyValue, got %v", tt.name, err)
				continue
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("%s: expected ParseError, got %T", tt.name, err)
			}
			if pe.Line != tt.line || pe.Field != tt.field {
				t.Errorf("%s: error at line %d value %d, want line %d value %d",
					tt.name, pe.Line, pe.Field, tt.line, tt.field)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		got, err := Parse(strings.NewReader(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no centers, got %d", len(got))
		}
	})

	t.Run("utf-8 byte order mark", func(t *testing.T) {
		t.Parallel()
		got, err := Parse(strings.NewReader("\uFEFF1;2\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertCenters(t, got, [][]float64{{1, 2}})
	})

	t.Run("utf-16 little endian", func(t *testing.T) {
		t.Parallel()
		text := "1;2\n3;4\n"
		buf := []byte{0xFF, 0xFE}
		for _, r := range text {
			buf = append(buf, byte(r), 0)
		}
		got, err := Parse(bytes.NewReader(buf))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertCenters(t, got, [][]float64{{1, 2}, {3, 4}})
	})

	t.Run("reports malformed value position", func(t *testing.T) {
		t.Parallel()
		_, err := Parse(strings.NewReader("1;2\n3;abc\n"))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ParseError, got %v", err)
		}
		if pe.Line != 2 || pe.Field != 2 {
			t.Errorf("ParseError at line %d value %d, want line 2 value 2", pe.Line, pe.Field)
		}
		if !strings.Contains(pe.Error(), "line 2") {
			t.Errorf("unexpected message %q", pe.Error())
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads file and records digest", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultFileName)
		content := []byte(fingerprintLine("password") + "\n" + fingerprintLine("P@ssw0rd!") + "\n")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatal(err)
		}

		set, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if set.Source != path {
			t.Errorf("Source = %q, want %q", set.Source, path)
		}
		if set.Digest != md5sum.SumHex(content) {
			t.Errorf("Digest = %q", set.Digest)
		}
		if len(set.Centers) != 2 {
			t.Fatalf("expected 2 centers, got %d", len(set.Centers))
		}

		scorer, err := set.Scorer()
		if err != nil {
			t.Fatalf("Scorer() error: %v", err)
		}
		d, err := scorer.MinDistance(fingerprint.Of("password"))
		if err != nil || d != 0 {
			t.Errorf("MinDistance(password) = %v, %v; want 0", d, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.csv")
		if err := os.WriteFile(path, []byte("x;y\n"), 0600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})
}

func TestSet_Scorer_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()
		set, err := FromBytes("empty.csv", []byte(""))
		if err != nil {
			t.Fatalf("FromBytes() error: %v", err)
		}
		if _, err := set.Scorer(); !errors.Is(err, centroid.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
	})

	t.Run("wrong width", func(t *testing.T) {
		t.Parallel()
		set, err := FromBytes("short.csv", []byte("1;2;3\n"))
		if err != nil {
			t.Fatalf("FromBytes() error: %v", err)
		}
		_, err = set.Scorer()
		if !errors.Is(err, centroid.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
		if !strings.Contains(err.Error(), "short.csv") {
			t.Errorf("expected source in message, got %q", err.Error())
		}
	})
}

func TestWrite(t *testing.T) {
	t.Parallel()

	centers := [][]float64{{1, 2.5, 0}, {0.125, 7, 3}}

	for _, sep := range []rune{';', ','} {
		var buf bytes.Buffer
		if err := Write(&buf, centers, sep); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
		parsed, err := Parse(&buf)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		assertCenters(t, parsed, centers)
	}

	var buf bytes.Buffer
	if err := Write(&buf, centers, ';'); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1;2.5;0\n0.125;7;3\n" {
		t.Errorf("unexpected output %q", got)
	}

	if err := Write(&buf, centers, '|'); err == nil {
		t.Error("expected error for unsupported separator")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	got := Build([]string{"password", "dassword", "P@ssw0rd!", "password"})
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct centers, got %d", len(got))
	}
	assertCenters(t, got, [][]float64{
		fingerprint.Of("password").Vector(),
		fingerprint.Of("P@ssw0rd!").Vector(),
	})
}

func TestReadPasswords(t *testing.T) {
	t.Parallel()

	got, err := ReadPasswords(strings.NewReader("password\r\n\n with space \nlast"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"password", " with space ", "last"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommonPasswords(t *testing.T) {
	t.Parallel()

	list := CommonPasswords()
	if len(list) < 50 {
		t.Fatalf("expected a sizeable embedded list, got %d entries", len(list))
	}

	scorer, err := centroid.NewScorer(Build(list))
	if err != nil {
		t.Fatalf("NewScorer() error: %v", err)
	}
	for _, p := range []string{"password", "123456", "P@ssw0rd!"} {
		d, err := scorer.MinDistance(fingerprint.Of(p))
		if err != nil {
			t.Fatal(err)
		}
		if d != 0 {
			t.Errorf("listed password %q has distance %v, want 0", p, d)
		}
	}
}

func fingerprintLine(password string) string {
	var buf bytes.Buffer
	_ = Write(&buf, [][]float64{fingerprint.Of(password).Vector()}, ';')
	return strings.TrimSuffix(buf.String(), "\n")
}

func assertCenters(t *testing.T, got, want [][]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d centers, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("center %d has %d values, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("center %d value %d = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("builtin set", func(t *testing.T) {
		t.Parallel()
		set, err := Resolve(CommonPasswordsSource)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if set.Source != CommonPasswordsSource {
			t.Errorf("Source = %q", set.Source)
		}
		if len(set.Centers) != len(Build(CommonPasswords())) {
			t.Errorf("unexpected center count %d", len(set.Centers))
		}
		if len(set.Digest) != 2*md5sum.Size {
			t.Errorf("unexpected digest %q", set.Digest)
		}
		again, err := Builtin()
		if err != nil {
			t.Fatal(err)
		}
		if again.Digest != set.Digest {
			t.Error("builtin digest is not stable")
		}
	})

	t.Run("file path", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(filepath.Join(t.TempDir(), "none.csv"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
