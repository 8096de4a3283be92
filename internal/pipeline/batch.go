package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/corpusscope/internal/model"
)

// Job is one page render of a batch.
type Job struct {
	// Key names the job's output, e.g. "word-History".
	Key string

	// Page is the page name.
	Page string

	// Selection is the widget state the page is rendered with.
	Selection model.Selection
}

// Factory builds a fresh pipeline and empty page for a job.
type Factory func(job Job) (*Pipeline, *model.Page, error)

// Result is the outcome of one job. Page is set even when Err is not nil,
// holding the blocks rendered before the failure.
type Result struct {
	Job     Job
	Page    *model.Page
	Err     error
	Elapsed time.Duration
}

// BatchProcessor renders many pages concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
type BatchProcessor struct {
	// factory creates a new pipeline for each job.
	factory Factory

	// concurrency is the maximum number of concurrent renders.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent renders.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The factory is called once per job so no page state is shared.
func NewBatchProcessor(factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		factory:     factory,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch renders all jobs and returns their results in job order.
// A failed render is recorded in its Result and does not stop the batch;
// the returned error is only set when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	err := bp.ProcessBatchWithCallback(ctx, jobs, func(r Result, i int) error {
		results[i] = r
		return nil
	})
	return results, err
}

// ProcessBatchWithCallback renders jobs and calls callback for each
// completed one, from the goroutine that rendered it. A callback error
// cancels the remaining jobs and is returned.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(result Result, index int) error,
) error {
	bp.logger.Info("starting batch render",
		"total_pages", len(jobs),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := bp.run(ctx, job)
			if result.Err != nil {
				bp.logger.Warn("page render failed",
					"job", job.Key,
					"error", result.Err,
				)
			} else {
				bp.logger.Debug("page rendered",
					"job", job.Key,
					"index", i+1,
					"total", len(jobs),
				)
			}
			return callback(result, i)
		})
	}

	err := g.Wait()
	bp.logger.Info("batch render complete",
		"total_pages", len(jobs),
		"elapsed", time.Since(start),
	)
	return err
}

func (bp *BatchProcessor) run(ctx context.Context, job Job) Result {
	start := time.Now()
	p, page, err := bp.factory(job)
	if err != nil {
		return Result{Job: job, Err: err, Elapsed: time.Since(start)}
	}
	err = p.Execute(ctx, page)
	return Result{Job: job, Page: page, Err: err, Elapsed: time.Since(start)}
}
