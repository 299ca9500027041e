// Package task defines the compile and minify steps and the registry that
// turns configuration into named, ordered pipelines.
package task

import (
	"context"

	"github.com/AndreyAkinshin/cssbuild/internal/cssmin"
)

// CompileTask is one Sass entry file compiled to one CSS file.
// Paths are relative to the project root.
type CompileTask struct {
	Input    string
	Output   string
	Compiler string // implementation identifier, e.g. "dart-sass"
}

// MinifyTask is one CSS file minified to another.
// Input usually equals a CompileTask's Output.
type MinifyTask struct {
	Input  string
	Output string
}

// Step is a runnable unit: one target of one task, e.g. "compile:dist".
type Step interface {
	Task() string   // "compile" or "minify"
	Target() string // target name within the task
	Name() string   // "task:target"
	Inputs() []string
	Outputs() []string
	Describe() []string // one line per file mapping, for listings and dry runs

	Run(ctx context.Context, opts ExecOptions) error
}

// ExecOptions carries run-scoped collaborators into a step.
type ExecOptions struct {
	Compilers *CompilerPool

	// OnWrite is called after each output file is written.
	OnWrite func(path string, size int)

	// OnReport receives minification size reports for targets with reporting enabled.
	OnReport func(cssmin.Report)
}

func (o ExecOptions) wrote(path string, size int) {
	if o.OnWrite != nil {
		o.OnWrite(path, size)
	}
}

func (o ExecOptions) report(r cssmin.Report) {
	if o.OnReport != nil {
		o.OnReport(r)
	}
}

// StepName joins a task and target name.
func StepName(task, target string) string {
	return task + ":" + target
}
