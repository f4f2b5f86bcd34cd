// Package centers reads and writes reference center files.
//
// A center file is plain text with one center per line. Values are decimal
// numbers separated by ',' or ';':
//
//	2;1;1;1;2;1;1;2;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0;0
//	4.5,6,1,1,2,5,1,2,6,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0
//
// Blank lines are skipped. A byte order mark selects UTF-8 or UTF-16
// decoding, so files exported by spreadsheet tools load unchanged.
package centers

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/pwaffinity/internal/centroid"
	"github.com/nao1215/pwaffinity/internal/md5sum"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultFileName is the file name used for the reference set inside the
// configuration directory.
const DefaultFileName = "cluster_centers.csv"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("centers file not found")

// ParseError reports a malformed value in a center file.
type ParseError struct {
	// Line is the 1-based line number.
	Line int
	// Field is the 1-based position of the value within the line.
	Field int
	// Err is the underlying conversion error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, value %d: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrEmptyValue is wrapped by a ParseError for a blank line or an empty
// value between two separators.
var ErrEmptyValue = errors.New("empty value")

// isSeparator reports whether r separates values on a line.
func isSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// splitValues splits line on separators. Trailing empty values are
// dropped, so "1;2;" holds two values, but an empty line is a single empty
// value.
func splitValues(line string) []string {
	var fields []string
	start := 0
	for i, r := range line {
		if isSeparator(r) {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	fields = append(fields, line[start:])
	if line == "" {
		return fields
	}
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// Parse reads centers from r. It does not check vector lengths; that is
// centroid.NewScorer's job.
func Parse(r io.Reader) ([][]float64, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)

	var out [][]float64
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := splitValues(strings.TrimSpace(scanner.Text()))
		center := make([]float64, len(fields))
		for i, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				return nil, &ParseError{Line: lineNo, Field: i + 1, Err: ErrEmptyValue}
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Field: i + 1, Err: err}
			}
			center[i] = v
		}
		out = append(out, center)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read centers: %w", err)
	}
	return out, nil
}

// Set is a loaded reference set together with where it came from.
type Set struct {
	// Source is the path or name the centers were read from.
	Source string
	// Digest is the MD5 hex digest of the raw file contents.
	Digest string
	// Centers are the parsed vectors.
	Centers [][]float64
}

// Load reads and parses the center file at path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read centers file: %w", err)
	}
	return FromBytes(path, data)
}

// FromBytes parses data as a center file named source.
func FromBytes(source string, data []byte) (*Set, error) {
	centers, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	return &Set{
		Source:  source,
		Digest:  md5sum.SumHex(data),
		Centers: centers,
	}, nil
}

// Scorer builds a frozen scorer from the set. It fails with an error
// wrapping centroid.ErrConfiguration when the set is empty or a line has the
// wrong number of values.
func (s *Set) Scorer() (*centroid.Scorer, error) {
	scorer, err := centroid.NewScorer(s.Centers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Source, err)
	}
	return scorer, nil
}

// Write writes centers in the format Parse reads, separating values with sep.
func Write(w io.Writer, centers [][]float64, sep rune) error {
	if !isSeparator(sep) {
		return fmt.Errorf("unsupported separator %q (want ',' or ';')", sep)
	}

	bw := bufio.NewWriter(w)
	for _, c := range centers {
		for i, v := range c {
			if i > 0 {
				if _, err := bw.WriteRune(sep); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
