// Package errors provides structured error types and exit codes for cssbuild.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/AndreyAkinshin/cssbuild/pkg/cssbuild"
)

// Exit codes returned by the cssbuild binary. The values are public in
// pkg/cssbuild.
const (
	ExitSuccess          = cssbuild.ExitSuccess     // Success
	ExitRuntimeError     = cssbuild.ExitFailure     // A pipeline step failed
	ExitConfigError      = cssbuild.ExitConfigError // Invalid configuration or unknown task
	ExitEnvironmentError = cssbuild.ExitEnvError    // Compiler implementation unavailable
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
	KindCompile
	KindMinify
)

// String returns a short lowercase label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	case KindCompile:
		return "compile"
	case KindMinify:
		return "minify"
	default:
		return "runtime"
	}
}

// BuildError is the base error type for cssbuild.
type BuildError struct {
	Kind    ErrorKind
	Message string
	Task    string // Task name if applicable ("compile", "minify")
	Target  string // Target name within the task if applicable
	Path    string // File the error refers to
	Cause   error  // Underlying error
}

func (e *BuildError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	switch {
	case e.Task != "" && e.Target != "":
		return fmt.Sprintf("[%s:%s] %s", e.Task, e.Target, msg)
	case e.Task != "":
		return fmt.Sprintf("[%s] %s", e.Task, msg)
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BuildError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation, KindNotFound:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *BuildError {
	return &BuildError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *BuildError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *BuildError {
	return &BuildError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *BuildError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *BuildError {
	return &BuildError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *BuildError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *BuildError {
	return &BuildError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, message string) *BuildError {
	return &BuildError{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// Compile creates a compile step failure for the given source file.
// The cause carries the compiler diagnostic.
func Compile(task, target, path string, cause error) *BuildError {
	return &BuildError{
		Kind:    KindCompile,
		Task:    task,
		Target:  target,
		Path:    path,
		Message: "compile failed",
		Cause:   cause,
	}
}

// Minify creates a minify step failure for the given input file.
func Minify(task, target, path string, cause error) *BuildError {
	return &BuildError{
		Kind:    KindMinify,
		Task:    task,
		Target:  target,
		Path:    path,
		Message: "minify failed",
		Cause:   cause,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *BuildError {
	return &BuildError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsKind reports whether any BuildError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BuildError
	for err != nil {
		if !stderrors.As(err, &be) {
			return false
		}
		if be.Kind == kind {
			return true
		}
		err = be.Cause
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var be *BuildError
	if stderrors.As(err, &be) {
		return be.ExitCode()
	}
	return ExitRuntimeError
}
