// Package mocks provides shared test doubles for cssbuild packages.
package mocks

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AndreyAkinshin/cssbuild/internal/sass"
)

// Compiler implements sass.Compiler for testing.
// By default it echoes the source as CSS and reports unbalanced braces
// as a *sass.Error, which is enough to drive success and syntax-error paths.
type Compiler struct {
	// CompileFunc replaces the default behaviour when set.
	CompileFunc func(ctx context.Context, req sass.Request) (sass.Result, error)

	// Execution tracking (thread-safe)
	compileCount int32
	closeCount   int32
	mu           sync.Mutex
	requests     []sass.Request
}

// NewCompiler creates a new mock compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// WithCompileFunc sets the function called by Compile.
func (m *Compiler) WithCompileFunc(fn func(ctx context.Context, req sass.Request) (sass.Result, error)) *Compiler {
	m.CompileFunc = fn
	return m
}

// Register installs the mock as a sass implementation named name supporting
// the given styles ("expanded" and "compressed" when none are given).
// Implementation names are process-global, so every test needs its own name.
func (m *Compiler) Register(t testing.TB, name string, styles ...string) *Compiler {
	t.Helper()
	if len(styles) == 0 {
		styles = []string{"expanded", "compressed"}
	}
	sass.Register(sass.Implementation{
		Name:   name,
		Styles: styles,
		New: func(sass.Options) (sass.Compiler, error) {
			return m, nil
		},
	})
	return m
}

// sass.Compiler interface implementation

func (m *Compiler) Compile(ctx context.Context, req sass.Request) (sass.Result, error) {
	atomic.AddInt32(&m.compileCount, 1)
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompileFunc != nil {
		return m.CompileFunc(ctx, req)
	}
	if strings.Count(req.Source, "{") != strings.Count(req.Source, "}") {
		return sass.Result{}, &sass.Error{Path: req.Path, Diagnostic: `expected "}".`}
	}
	return sass.Result{CSS: req.Source}, nil
}

func (m *Compiler) Close() error {
	atomic.AddInt32(&m.closeCount, 1)
	return nil
}

// Test inspection methods

// CompileCount returns the number of times Compile was called.
func (m *Compiler) CompileCount() int32 {
	return atomic.LoadInt32(&m.compileCount)
}

// CloseCount returns the number of times Close was called.
func (m *Compiler) CloseCount() int32 {
	return atomic.LoadInt32(&m.closeCount)
}

// Requests returns the compile requests in call order.
func (m *Compiler) Requests() []sass.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]sass.Request, len(m.requests))
	copy(result, m.requests)
	return result
}

// Reset clears execution tracking state.
func (m *Compiler) Reset() {
	atomic.StoreInt32(&m.compileCount, 0)
	atomic.StoreInt32(&m.closeCount, 0)
	m.mu.Lock()
	m.requests = nil
	m.mu.Unlock()
}
