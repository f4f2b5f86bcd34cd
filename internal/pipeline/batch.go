package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/pwaffinity/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when WithConcurrency is not given.
const DefaultConcurrency = 4

// Analyzer scores a single password.
// *checker.Checker implements this interface.
type Analyzer interface {
	Analyze(ctx context.Context, password string, reveal bool) (model.Analysis, error)
}

// BatchProcessor handles concurrent analysis of multiple passwords.
// It uses errgroup to manage goroutines and respect concurrency limits.
type BatchProcessor struct {
	analyzer Analyzer

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// progress is called after every completed analysis.
	progress ProgressFunc
}

// ProgressFunc receives the number of completed analyses and the batch
// size. Calls are serialized and done increases by one on each call.
type ProgressFunc func(done, total int)

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithProgress sets a function notified as analyses complete.
func WithProgress(fn ProgressFunc) BatchOption {
	return func(b *BatchProcessor) {
		b.progress = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor backed by analyzer.
func NewBatchProcessor(analyzer Analyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes passwords concurrently and returns the results in
// input order. The first analysis error or a cancelled context stops the
// batch; the returned slice then holds zero values for unfinished entries.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, passwords []string, reveal bool) ([]model.Analysis, error) {
	// Each goroutine writes only its own index.
	results := make([]model.Analysis, len(passwords))

	err := bp.ProcessBatchWithCallback(ctx, passwords, reveal, func(a model.Analysis, i int) {
		results[i] = a
	})
	return results, err
}

// ProcessBatchWithCallback analyzes passwords and calls callback for each
// completed analysis with its index in passwords.
//
// The callback is called from the goroutine that completed the analysis,
// so it must be safe for concurrent use if it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	passwords []string,
	reveal bool,
	callback func(analysis model.Analysis, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total", len(passwords),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	err := bp.run(ctx, passwords, reveal, callback)

	bp.logger.Info("batch processing complete",
		"total", len(passwords),
		"elapsed", time.Since(startTime),
	)
	return err
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	passwords []string,
	reveal bool,
	done func(model.Analysis, int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	var (
		mu        sync.Mutex
		completed int
	)

	for i, password := range passwords {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			analysis, err := bp.analyzer.Analyze(ctx, password, reveal)
			if err != nil {
				bp.logger.Warn("analysis failed",
					"index", i+1,
					"error", err,
				)
				return err
			}

			done(analysis, i)

			if bp.progress != nil {
				mu.Lock()
				completed++
				bp.progress(completed, len(passwords))
				mu.Unlock()
			}
			return nil
		})
	}

	return g.Wait()
}
