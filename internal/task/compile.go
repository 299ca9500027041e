package task

import (
	"context"
	"fmt"
	"os"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
	"github.com/AndreyAkinshin/cssbuild/internal/fsutil"
	"github.com/AndreyAkinshin/cssbuild/internal/sass"
	"github.com/AndreyAkinshin/cssbuild/internal/telemetry"
)

// CompileStep compiles every file mapping of one compile target.
type CompileStep struct {
	target  string
	root    string
	files   []CompileTask // sorted by Output
	options config.CompileOptions
}

func (s *CompileStep) Task() string   { return config.TaskCompile }
func (s *CompileStep) Target() string { return s.target }
func (s *CompileStep) Name() string   { return StepName(config.TaskCompile, s.target) }

// Files returns the compile records of this target.
func (s *CompileStep) Files() []CompileTask {
	return append([]CompileTask(nil), s.files...)
}

func (s *CompileStep) Inputs() []string {
	inputs := make([]string, len(s.files))
	for i, f := range s.files {
		inputs[i] = f.Input
	}
	return inputs
}

func (s *CompileStep) Outputs() []string {
	outputs := make([]string, len(s.files))
	for i, f := range s.files {
		outputs[i] = f.Output
	}
	return outputs
}

func (s *CompileStep) Describe() []string {
	lines := make([]string, len(s.files))
	for i, f := range s.files {
		lines[i] = fmt.Sprintf("%s -> %s (%s, %s)", f.Input, f.Output, f.Compiler, s.options.OutputStyle)
	}
	return lines
}

// Run compiles each mapping in order. A source is compiled fully in memory
// before its output is written, so a missing or invalid source never
// produces an output file.
func (s *CompileStep) Run(ctx context.Context, opts ExecOptions) error {
	logger := telemetry.FromContext(ctx)

	includePaths := make([]string, len(s.options.IncludePaths))
	for i, p := range s.options.IncludePaths {
		includePaths[i] = fsutil.Resolve(s.root, p)
	}

	var compiler sass.Compiler
	for _, f := range s.files {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcPath := fsutil.Resolve(s.root, f.Input)
		source, err := os.ReadFile(srcPath)
		if err != nil {
			return errors.Compile(config.TaskCompile, s.target, f.Input, err)
		}

		if compiler == nil {
			if compiler, err = opts.Compilers.Get(s.options.Implementation, s.options.Binary); err != nil {
				return err
			}
		}

		logger.Debug("compiling", "input", f.Input, "output", f.Output, "implementation", f.Compiler)
		res, err := compiler.Compile(ctx, sass.Request{
			Source:       string(source),
			Path:         srcPath,
			IncludePaths: includePaths,
			OutputStyle:  s.options.OutputStyle,
			Precision:    s.options.Precision,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.IsKind(err, errors.KindEnvironment) {
				return err
			}
			return errors.Compile(config.TaskCompile, s.target, f.Input, err)
		}

		if err := fsutil.WriteFileAtomic(fsutil.Resolve(s.root, f.Output), []byte(res.CSS), 0o644); err != nil {
			return errors.Compile(config.TaskCompile, s.target, f.Output, err)
		}
		opts.wrote(f.Output, len(res.CSS))
	}
	return nil
}
