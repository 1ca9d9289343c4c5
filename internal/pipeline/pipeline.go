package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/linux-audit-script/auditreport/internal/model"
)

// Step is one stage of report generation. Each step sees the report as
// left by the steps before it.
type Step interface {
	// Do runs the stage against report. A non-nil error ends the run.
	Do(ctx context.Context, report *model.Report) error

	// Name identifies the stage in logs and errors.
	Name() string
}

// Pipeline runs steps one after another over a single report.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for step progress. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends step to the end of the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.AddSteps(step)
}

// AddSteps appends steps in the order given.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in order and stops at the first failure.
// Cancellation of ctx is honored between steps. Errors are returned as
// the step produced them; the failing step is named in the log.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		name := step.Name()
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run cancelled", "before", name, "reason", err)
			return err
		}

		start := time.Now()
		p.logger.Debug("step started", "step", name)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed", "step", name, "error", err)
			return err
		}

		p.logger.Debug("step finished",
			"step", name,
			"elapsed", time.Since(start),
			"sections", len(report.Sections),
			"records", report.RecordCount(),
		)
	}
	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}
