package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/corpusscope/internal/model"
)

// Step defines the interface that all page sections must implement.
// Steps are executed in sequence, each appending to the same page.
type Step interface {
	// Do executes the step. Empty results and invalid input are reported
	// as notices on the page and return nil; an error means the artifacts
	// the step needs could not be read.
	Do(ctx context.Context, page *model.Page) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError keeps executing steps after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// when a step fails. The failure is added to the page as an error notice.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step.
//
// Returns the first step error unless continueOnError is set.
func (p *Pipeline) Execute(ctx context.Context, page *model.Page) error {
	start := time.Now()

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("page render cancelled",
				"page", page.Name,
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"page", page.Name,
			"step", step.Name(),
		)

		if err := step.Do(ctx, page); err != nil {
			p.logger.Error("step failed",
				"page", page.Name,
				"step", step.Name(),
				"error", err,
			)

			if !p.continueOnError {
				return fmt.Errorf("%s: %w", step.Name(), err)
			}
			page.AddNotice(model.NoticeError, fmt.Sprintf("%s: %v", step.Name(), err))
		}
	}

	p.logger.Debug("page rendered",
		"page", page.Name,
		"blocks", len(page.Blocks),
		"elapsed", time.Since(start),
	)
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
