// Package runner executes a resolved pipeline one step at a time.
package runner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/cssmin"
	"github.com/AndreyAkinshin/cssbuild/internal/metrics"
	"github.com/AndreyAkinshin/cssbuild/internal/output"
	"github.com/AndreyAkinshin/cssbuild/internal/task"
	"github.com/AndreyAkinshin/cssbuild/internal/telemetry"
)

// Runner orchestrates step execution for a task.Registry.
// Steps run strictly in order: a step starts only after the previous one
// has returned, and the first failure stops the run.
type Runner struct {
	registry *task.Registry
	out      *output.Writer
	metrics  *metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the writer for user-facing progress lines.
func WithOutput(w *output.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithMetrics sets the metrics recorder. Without it nothing is recorded.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithClock replaces time.Now for step timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a new Runner.
func New(registry *task.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		out:      output.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOptions configures execution behavior.
type RunOptions struct {
	DryRun bool // Print the plan without executing it
}

// StepResult records one executed step.
type StepResult struct {
	Name  string
	Start time.Time
	End   time.Time
	Err   error
}

// Duration returns End - Start.
func (s StepResult) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Result is the outcome of a run. Steps holds every step that started, in
// order; a failed run ends with the failing step.
type Result struct {
	RunID string
	Steps []StepResult
}

// Failed returns the failing step, if any.
func (r *Result) Failed() (StepResult, bool) {
	if n := len(r.Steps); n > 0 && r.Steps[n-1].Err != nil {
		return r.Steps[n-1], true
	}
	return StepResult{}, false
}

// Run resolves names (tasks, task:target references or aliases) and runs the
// resulting steps. No names means the default alias. Resolution errors are
// returned before anything runs.
func (r *Runner) Run(ctx context.Context, names []string, opts RunOptions) (*Result, error) {
	if len(names) == 0 {
		names = []string{config.DefaultAlias}
	}
	plan, err := r.registry.Resolve(names...)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: r.newID()}
	logger := telemetry.WithRunID(telemetry.FromContext(ctx), result.RunID)
	ctx = telemetry.WithLogger(ctx, logger)

	if len(plan) == 0 {
		r.out.Warning("nothing to run for %s", strings.Join(names, " "))
		return result, nil
	}
	if opts.DryRun {
		r.printPlan(plan)
		return result, nil
	}

	logger.Info("run started", "steps", len(plan))
	err = r.runSequential(ctx, plan, result)
	r.metrics.ObserveRun(err)
	r.printSummary(result, err)
	if err != nil {
		logger.Error("run failed", "error", err)
	} else {
		logger.Info("run finished")
	}
	return result, err
}

// runSequential executes steps one at a time in order.
func (r *Runner) runSequential(ctx context.Context, plan []task.Step, result *Result) error {
	logger := telemetry.FromContext(ctx)

	pool := task.NewCompilerPool(logger)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing compilers", "error", err)
		}
	}()

	exec := task.ExecOptions{
		Compilers: pool,
		OnWrite: func(path string, size int) {
			r.out.Wrote(path, size)
			r.metrics.SetOutputBytes(path, size)
		},
		OnReport: func(rep cssmin.Report) {
			r.out.Minified(rep)
		},
	}

	for _, s := range plan {
		// Early exit if context is canceled before starting the next step
		if err := ctx.Err(); err != nil {
			return err
		}

		stepLogger := telemetry.WithStep(logger, s.Task(), s.Target())
		r.out.Step(s.Name())

		sr := StepResult{Name: s.Name(), Start: r.now()}
		err := s.Run(telemetry.WithLogger(ctx, stepLogger), exec)
		sr.End = r.now()
		sr.Err = err
		result.Steps = append(result.Steps, sr)
		r.metrics.ObserveStep(s.Task(), s.Target(), sr.Duration(), err)

		if err != nil {
			r.out.StepFailed(s.Name(), err)
			stepLogger.Debug("step failed", "duration", sr.Duration(), "error", err)
			return err
		}
		stepLogger.Debug("step finished", "duration", sr.Duration())
	}
	return nil
}

func (r *Runner) printPlan(plan []task.Step) {
	steps := make([]output.PlannedStep, 0, len(plan))
	for _, s := range plan {
		steps = append(steps, output.PlannedStep{Name: s.Name(), Actions: s.Describe()})
	}
	r.out.Plan(steps)
}

func (r *Runner) printSummary(result *Result, err error) {
	steps := make([]output.FinishedStep, 0, len(result.Steps))
	for _, s := range result.Steps {
		steps = append(steps, output.FinishedStep{Name: s.Name, Duration: s.Duration(), Failed: s.Err != nil})
	}
	r.out.Summary(steps, err)
}
