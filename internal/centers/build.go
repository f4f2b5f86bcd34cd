package centers

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/pwaffinity/internal/fingerprint"
)

//go:embed data/common_passwords.txt
var commonPasswordsRaw string

// CommonPasswordsSource names the embedded list in reports.
const CommonPasswordsSource = "builtin:common-passwords"

// CommonPasswords returns the embedded list of frequently used passwords.
func CommonPasswords() []string {
	passwords, err := ReadPasswords(strings.NewReader(commonPasswordsRaw))
	if err != nil {
		// strings.Reader never fails and the list has no overlong lines.
		panic(fmt.Sprintf("embedded password list: %v", err))
	}
	return passwords
}

// maxLineSize bounds a single password line.
const maxLineSize = 1024 * 1024

// ReadPasswords reads one password per line. Only the line terminator is
// removed; leading and trailing spaces are part of the password. Empty lines
// are skipped.
func ReadPasswords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read password list: %w", err)
	}
	return out, nil
}

// Build turns passwords into reference centers: each distinct fingerprint
// becomes one center, in order of first appearance.
func Build(passwords []string) [][]float64 {
	seen := make(map[fingerprint.Fingerprint]struct{}, len(passwords))
	out := make([][]float64, 0, len(passwords))
	for _, p := range passwords {
		fp := fingerprint.Of(p)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, fp.Vector())
	}
	return out
}

// Builtin returns the reference set built from the embedded list. Its digest
// is computed over the serialized centers, so it changes whenever the list
// does.
func Builtin() (*Set, error) {
	var buf bytes.Buffer
	if err := Write(&buf, Build(CommonPasswords()), ';'); err != nil {
		return nil, err
	}
	return FromBytes(CommonPasswordsSource, buf.Bytes())
}

// Resolve loads the reference set named by source: the embedded set for
// CommonPasswordsSource, a file otherwise.
func Resolve(source string) (*Set, error) {
	if source == CommonPasswordsSource {
		return Builtin()
	}
	return Load(source)
}
