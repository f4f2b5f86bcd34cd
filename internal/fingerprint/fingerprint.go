package fingerprint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Length is the number of character positions a fingerprint covers.
const Length = 28

// Code is the character-class code stored in each fingerprint position.
type Code uint8

// Character-class codes.
const (
	// CodeAbsent marks a position past the end of the password.
	CodeAbsent Code = iota
	// CodeFrequentLower is one of e, s, a, i, t, n, r, u, o, l.
	CodeFrequentLower
	// CodeLower is any other lowercase letter.
	CodeLower
	// CodeFrequentUpper is one of E, S, A, I, T, N, R, U, O, L.
	CodeFrequentUpper
	// CodeUpper is any other uppercase letter.
	CodeUpper
	// CodeDigit is a decimal digit.
	CodeDigit
	// CodeCommonSymbol is one of > < - ? . / ! % @ &.
	CodeCommonSymbol
	// CodeOther covers whitespace, other punctuation and everything else.
	CodeOther
)

// MaxCode is the largest code a fingerprint position can hold.
const MaxCode = CodeOther

// String returns a short human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeAbsent:
		return "absent"
	case CodeFrequentLower:
		return "frequent lowercase"
	case CodeLower:
		return "lowercase"
	case CodeFrequentUpper:
		return "frequent uppercase"
	case CodeUpper:
		return "uppercase"
	case CodeDigit:
		return "digit"
	case CodeCommonSymbol:
		return "common symbol"
	case CodeOther:
		return "other"
	default:
		return fmt.Sprintf("code(%d)", uint8(c))
	}
}

// rule assigns code to every rune that match accepts.
type rule struct {
	match func(r rune) bool
	code  Code
}

// oneOf returns a predicate matching exactly the runes in set.
func oneOf(set string) func(rune) bool {
	return func(r rune) bool {
		return strings.ContainsRune(set, r)
	}
}

// isLower matches category Ll plus the Other_Lowercase property, such as
// the ordinal indicators and circled small letters.
func isLower(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

// isUpper matches category Lu plus the Other_Uppercase property, such as
// the circled capital letters.
func isUpper(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{match: oneOf("esaitnruol"), code: CodeFrequentLower},
	{match: oneOf("ESAITNRUOL"), code: CodeFrequentUpper},
	{match: oneOf("><-?./!%@&"), code: CodeCommonSymbol},
	{match: isLower, code: CodeLower},
	{match: isUpper, code: CodeUpper},
	{match: unicode.IsDigit, code: CodeDigit},
}

// Classify returns the character-class code of a single character.
// It never returns CodeAbsent.
func Classify(r rune) Code {
	for _, rl := range rules {
		if rl.match(r) {
			return rl.code
		}
	}
	return CodeOther
}

// Fingerprint is the character-class encoding of a password.
// It is an array, so copies never share state.
type Fingerprint [Length]Code

// Of computes the fingerprint of password. Positions are UTF-16 code
// units, so a character outside the Basic Multilingual Plane takes two
// positions, each a surrogate that classifies as CodeOther. Invalid UTF-8
// bytes decode to U+FFFD and classify as CodeOther.
func Of(password string) Fingerprint {
	var fp Fingerprint
	units := utf16.Encode([]rune(password))
	for i := 0; i < len(units) && i < Length; i++ {
		fp[i] = Classify(rune(units[i]))
	}
	return fp
}

// Units returns the length of password in UTF-16 code units, the unit
// fingerprint positions are counted in.
func Units(password string) int {
	n := 0
	for _, r := range password {
		n += utf16.RuneLen(r)
	}
	return n
}

// Vector returns the fingerprint as real-valued coordinates.
func (fp Fingerprint) Vector() []float64 {
	v := make([]float64, Length)
	for i, c := range fp {
		v[i] = float64(c)
	}
	return v
}

// Histogram counts how many positions hold each code.
func (fp Fingerprint) Histogram() [MaxCode + 1]int {
	var h [MaxCode + 1]int
	for _, c := range fp {
		h[c]++
	}
	return h
}

// Populated returns the number of non-absent positions.
func (fp Fingerprint) Populated() int {
	n := 0
	for _, c := range fp {
		if c != CodeAbsent {
			n++
		}
	}
	return n
}

// String renders the fingerprint as Length decimal digits.
func (fp Fingerprint) String() string {
	var sb strings.Builder
	sb.Grow(Length)
	for _, c := range fp {
		sb.WriteByte('0' + byte(c))
	}
	return sb.String()
}

// ErrInvalidFingerprint is returned by Parse for malformed input.
var ErrInvalidFingerprint = errors.New("invalid fingerprint")

// Parse is the inverse of Fingerprint.String.
func Parse(s string) (Fingerprint, error) {
	var fp Fingerprint
	if len(s) != Length {
		return fp, fmt.Errorf("%w: got %d digits, want %d", ErrInvalidFingerprint, len(s), Length)
	}
	for i := 0; i < Length; i++ {
		d := s[i]
		if d < '0' || d > '0'+byte(MaxCode) {
			return fp, fmt.Errorf("%w: position %d holds %q", ErrInvalidFingerprint, i, d)
		}
		fp[i] = Code(d - '0')
	}
	return fp, nil
}
