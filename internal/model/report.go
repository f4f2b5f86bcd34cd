package model

import (
	"math"
	"time"

	"github.com/nao1215/pwaffinity/internal/fingerprint"
)

// Report groups the analyses of one run with the reference set that
// produced them.
type Report struct {
	// GeneratedAt is when the analyses were computed.
	GeneratedAt time.Time `json:"generated_at"`

	// CentersSource is the file the reference centers were loaded from.
	CentersSource string `json:"centers_source"`

	// CentersDigest is the MD5 hex digest of the reference file contents.
	// Two reports with the same digest were scored against the same centers.
	CentersDigest string `json:"centers_digest"`

	// CenterCount is the number of reference centers.
	CenterCount int `json:"center_count"`

	// Analyses holds one entry per password, in input order.
	Analyses []Analysis `json:"analyses"`
}

// NewReport creates an empty report for the given reference set.
func NewReport(source, digest string, centerCount int) *Report {
	return &Report{
		GeneratedAt:   time.Now(),
		CentersSource: source,
		CentersDigest: digest,
		CenterCount:   centerCount,
		Analyses:      make([]Analysis, 0),
	}
}

// Summary holds distance statistics over a report.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summary computes statistics over the report's distances.
// All fields are zero for an empty report.
func (r *Report) Summary() Summary {
	if len(r.Analyses) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(r.Analyses),
		Min:   math.MaxFloat64,
		Max:   -math.MaxFloat64,
	}
	var total float64
	for _, a := range r.Analyses {
		s.Min = math.Min(s.Min, a.Distance)
		s.Max = math.Max(s.Max, a.Distance)
		total += a.Distance
	}
	s.Mean = total / float64(s.Count)
	return s
}

// CodeHistogram counts character-class codes over every populated position
// of every analysis. Absent positions are not counted. Malformed fingerprints
// are skipped.
func (r *Report) CodeHistogram() [fingerprint.MaxCode + 1]int {
	var total [fingerprint.MaxCode + 1]int
	for _, a := range r.Analyses {
		fp, err := fingerprint.Parse(a.Fingerprint)
		if err != nil {
			continue
		}
		h := fp.Histogram()
		for code := fingerprint.CodeFrequentLower; code <= fingerprint.MaxCode; code++ {
			total[code] += h[code]
		}
	}
	return total
}
