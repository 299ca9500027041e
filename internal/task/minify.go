package task

import (
	"context"
	"fmt"
	"os"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/cssmin"
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
	"github.com/AndreyAkinshin/cssbuild/internal/fsutil"
	"github.com/AndreyAkinshin/cssbuild/internal/telemetry"
)

// MinifyStep minifies the single src -> dest mapping of one minify target.
type MinifyStep struct {
	target  string
	root    string
	file    MinifyTask
	options config.MinifyOptions
}

func (s *MinifyStep) Task() string      { return config.TaskMinify }
func (s *MinifyStep) Target() string    { return s.target }
func (s *MinifyStep) Name() string      { return StepName(config.TaskMinify, s.target) }
func (s *MinifyStep) Inputs() []string  { return []string{s.file.Input} }
func (s *MinifyStep) Outputs() []string { return []string{s.file.Output} }

// File returns the minify record of this target.
func (s *MinifyStep) File() MinifyTask {
	return s.file
}

func (s *MinifyStep) Describe() []string {
	return []string{fmt.Sprintf("%s -> %s", s.file.Input, s.file.Output)}
}

// Run minifies the input. A missing input fails the step without touching
// the output; a previous output stays in place.
func (s *MinifyStep) Run(ctx context.Context, opts ExecOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := telemetry.FromContext(ctx)

	src, err := os.ReadFile(fsutil.Resolve(s.root, s.file.Input))
	if err != nil {
		return errors.Minify(config.TaskMinify, s.target, s.file.Input, err)
	}

	logger.Debug("minifying", "input", s.file.Input, "output", s.file.Output)
	minified, err := cssmin.New(cssmin.Options{Precision: s.options.Precision}).Minify(src)
	if err != nil {
		return errors.Minify(config.TaskMinify, s.target, s.file.Input, err)
	}

	if err := fsutil.WriteFileAtomic(fsutil.Resolve(s.root, s.file.Output), minified, 0o644); err != nil {
		return errors.Minify(config.TaskMinify, s.target, s.file.Output, err)
	}
	opts.wrote(s.file.Output, len(minified))

	if s.options.Report == nil || *s.options.Report {
		opts.report(cssmin.Report{Path: s.file.Output, Before: len(src), After: len(minified)})
	}
	return nil
}
