// Package checker ties fingerprinting and nearest-centroid scoring together.
//
// A Checker is the facade the CLI and batch processor talk to: it turns a
// password into a fingerprint, scores it against the frozen reference set
// and packages the result as a model.Analysis.
package checker

import (
	"context"
	"log/slog"

	"github.com/nao1215/pwaffinity/internal/centroid"
	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/model"
)

// Checker scores passwords against a reference center set.
// It holds no mutable state and is safe for concurrent use.
type Checker struct {
	scorer  *centroid.Scorer
	logger  *slog.Logger
	workers int
}

// ParallelThreshold is the center count from which Analyze splits the
// search across workers.
const ParallelThreshold = 4096

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithWorkers sets how many goroutines Analyze may use to scan a large
// center set. Values below 2 keep the scan sequential.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		c.workers = n
	}
}

// New creates a Checker backed by scorer.
func New(scorer *centroid.Scorer, opts ...Option) *Checker {
	c := &Checker{scorer: scorer}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// CenterCount returns the number of reference centers.
func (c *Checker) CenterCount() int {
	return c.scorer.Len()
}

// Distance returns the minimal distance between the password's fingerprint
// and any reference center. Center sets of ParallelThreshold or more are
// scanned by the configured workers.
func (c *Checker) Distance(ctx context.Context, password string) (float64, error) {
	fp := fingerprint.Of(password)
	if c.workers > 1 && c.scorer.Len() >= ParallelThreshold {
		return c.scorer.MinDistanceParallel(ctx, fp, c.workers)
	}
	return c.scorer.MinDistance(fp)
}

// Analyze scores password and returns the full result. When reveal is false
// the analysis label is masked.
func (c *Checker) Analyze(ctx context.Context, password string, reveal bool) (model.Analysis, error) {
	distance, err := c.Distance(ctx, password)
	if err != nil {
		return model.Analysis{}, err
	}
	fp := fingerprint.Of(password)

	// The password attribute is redacted by the secure log handler.
	c.logger.Debug("password analyzed",
		"password", password,
		"fingerprint", fp.String(),
		"distance", distance,
	)

	return model.NewAnalysis(password, fp, distance, reveal), nil
}
