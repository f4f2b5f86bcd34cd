package model

import (
	"github.com/nao1215/pwaffinity/internal/fingerprint"
)

// Analysis is the result of scoring a single password against the
// reference centers.
type Analysis struct {
	// Label identifies the password in reports. It is masked unless the
	// caller explicitly asked for passwords to be revealed.
	Label string `json:"label"`

	// Length is the password length in UTF-16 code units, the unit the
	// fingerprint counts positions in.
	Length int `json:"length"`

	// Fingerprinted is the number of positions the fingerprint covers.
	// It is smaller than Length when the password was truncated.
	Fingerprinted int `json:"fingerprinted"`

	// Fingerprint is the character-class encoding as a digit string.
	Fingerprint string `json:"fingerprint"`

	// Distance is the minimal Euclidean distance to any reference center.
	// Smaller means the structure is closer to a known pattern.
	Distance float64 `json:"distance"`
}

// NewAnalysis builds an Analysis for password.
func NewAnalysis(password string, fp fingerprint.Fingerprint, distance float64, reveal bool) Analysis {
	label := password
	if !reveal {
		label = Mask(password)
	}
	return Analysis{
		Label:         label,
		Length:        fingerprint.Units(password),
		Fingerprinted: fp.Populated(),
		Fingerprint:   fp.String(),
		Distance:      distance,
	}
}

// Truncated reports whether part of the password was not fingerprinted.
func (a Analysis) Truncated() bool {
	return a.Length > a.Fingerprinted
}

// emptyLabel is shown for an empty password.
const emptyLabel = "(empty)"

// MaskedLabel replaces every non-empty password in masked reports.
// Its width is fixed and says nothing about the password.
const MaskedLabel = "********"

// Mask hides password entirely.
func Mask(password string) string {
	if password == "" {
		return emptyLabel
	}
	return MaskedLabel
}
