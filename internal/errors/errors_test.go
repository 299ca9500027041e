package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestBuildError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BuildError
		expected string
	}{
		{
			name:     "message only",
			err:      &BuildError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with task",
			err:      &BuildError{Task: "compile", Message: "no targets"},
			expected: "[compile] no targets",
		},
		{
			name:     "with task and target",
			err:      &BuildError{Task: "minify", Target: "build", Message: "minify failed"},
			expected: "[minify:build] minify failed",
		},
		{
			name:     "target without task not included",
			err:      &BuildError{Target: "dist", Message: "something failed"},
			expected: "something failed",
		},
		{
			name: "with path and cause",
			err: &BuildError{
				Task:    "compile",
				Target:  "dist",
				Path:    "scss/all.scss",
				Message: "compile failed",
				Cause:   errors.New("expected \"}\""),
			},
			expected: `[compile:dist] scss/all.scss: compile failed: expected "}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &BuildError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() = false, want true")
	}

	errNoCause := &BuildError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestBuildError_ExitCode(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindRuntime, ExitRuntimeError},
		{KindCompile, ExitRuntimeError},
		{KindMinify, ExitRuntimeError},
		{KindConfig, ExitConfigError},
		{KindValidation, ExitConfigError},
		{KindNotFound, ExitConfigError},
		{KindEnvironment, ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := &BuildError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	if e := Newf("x=%d", 1); e.Kind != KindRuntime || e.Message != "x=1" {
		t.Errorf("Newf() = %+v", e)
	}
	if e := Configf("bad %s", "field"); e.Kind != KindConfig || e.Message != "bad field" {
		t.Errorf("Configf() = %+v", e)
	}
	if e := Environmentf("missing %s", "sass"); e.Kind != KindEnvironment || e.Message != "missing sass" {
		t.Errorf("Environmentf() = %+v", e)
	}
	if e := Wrap(cause, "ctx"); e.Cause != cause || e.Kind != KindRuntime {
		t.Errorf("Wrap() = %+v", e)
	}
	if e := WrapConfig(cause, "load"); e.Kind != KindConfig || e.ExitCode() != ExitConfigError || !errors.Is(e, cause) {
		t.Errorf("WrapConfig() = %+v", e)
	}
	if e := NotFound("task", "deploy"); e.Message != "task not found: deploy" {
		t.Errorf("NotFound().Message = %q", e.Message)
	}

	ce := Compile("compile", "dist", "scss/all.scss", cause)
	if ce.Kind != KindCompile || ce.Path != "scss/all.scss" || !errors.Is(ce, cause) {
		t.Errorf("Compile() = %+v", ce)
	}
	me := Minify("minify", "build", "css/all.css", cause)
	if me.Kind != KindMinify || me.Target != "build" || !errors.Is(me, cause) {
		t.Errorf("Minify() = %+v", me)
	}
}

func TestIsKind(t *testing.T) {
	compileErr := Compile("compile", "dist", "a.scss", errors.New("syntax"))
	wrapped := fmt.Errorf("run: %w", compileErr)

	if !IsKind(wrapped, KindCompile) {
		t.Error("IsKind(wrapped, KindCompile) = false, want true")
	}
	if IsKind(wrapped, KindMinify) {
		t.Error("IsKind(wrapped, KindMinify) = true, want false")
	}
	if IsKind(errors.New("plain"), KindRuntime) {
		t.Error("IsKind(plain, KindRuntime) = true, want false")
	}

	nested := Wrap(Environment("no sass"), "start compiler")
	if !IsKind(nested, KindEnvironment) {
		t.Error("IsKind(nested, KindEnvironment) = false, want true")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("x"), ExitRuntimeError},
		{"config", Config("bad"), ExitConfigError},
		{"environment", Environment("missing"), ExitEnvironmentError},
		{"wrapped config", fmt.Errorf("load: %w", Config("bad")), ExitConfigError},
		{"minify", Minify("minify", "build", "a.css", nil), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
