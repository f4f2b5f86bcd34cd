package centroid

import (
	"context"
	"fmt"
	"math"

	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"golang.org/x/sync/errgroup"
)

// Center is one reference vector.
type Center [fingerprint.Length]float64

// Scorer holds an immutable set of reference centers.
// The zero value has no centers and every query on it fails with
// ErrConfiguration.
type Scorer struct {
	centers []Center
}

// NewScorer validates and copies centers. Every center must have exactly
// fingerprint.Length values and at least one center is required.
func NewScorer(centers [][]float64) (*Scorer, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("%w: no centers loaded", ErrConfiguration)
	}

	frozen := make([]Center, len(centers))
	for i, c := range centers {
		if len(c) != fingerprint.Length {
			return nil, fmt.Errorf("%w: center %d has %d values, want %d",
				ErrConfiguration, i, len(c), fingerprint.Length)
		}
		copy(frozen[i][:], c)
	}

	return &Scorer{centers: frozen}, nil
}

// Len returns the number of centers.
func (s *Scorer) Len() int {
	if s == nil {
		return 0
	}
	return len(s.centers)
}

// Euclidean returns the Euclidean distance between a fingerprint and a center.
func Euclidean(fp fingerprint.Fingerprint, c Center) float64 {
	var sum float64
	for i := range fp {
		diff := float64(fp[i]) - c[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// MinDistance returns the smallest Euclidean distance between fp and any
// center.
func (s *Scorer) MinDistance(fp fingerprint.Fingerprint) (float64, error) {
	if s.Len() == 0 {
		return 0, fmt.Errorf("%w: no centers loaded", ErrConfiguration)
	}
	return minDistance(fp, s.centers), nil
}

func minDistance(fp fingerprint.Fingerprint, centers []Center) float64 {
	best := math.MaxFloat64
	for i := range centers {
		best = math.Min(best, Euclidean(fp, centers[i]))
	}
	return best
}

// MinDistanceParallel computes the same value as MinDistance, splitting the
// center set into at most workers chunks evaluated concurrently. It only pays
// off for center sets in the thousands.
func (s *Scorer) MinDistanceParallel(ctx context.Context, fp fingerprint.Fingerprint, workers int) (float64, error) {
	n := s.Len()
	if n == 0 {
		return 0, fmt.Errorf("%w: no centers loaded", ErrConfiguration)
	}
	if workers <= 1 || n < workers {
		return minDistance(fp, s.centers), nil
	}

	chunk := (n + workers - 1) / workers
	partial := make([]float64, 0, workers)
	for start := 0; start < n; start += chunk {
		partial = append(partial, math.MaxFloat64)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range partial {
		start := i * chunk
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns its slot.
			partial[i] = minDistance(fp, s.centers[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best := math.MaxFloat64
	for _, d := range partial {
		best = math.Min(best, d)
	}
	return best, nil
}
