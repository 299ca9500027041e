// Package sass is the boundary to Sass compiler implementations.
//
// Implementations register themselves by identifier ("dart-sass", "libsass")
// and are selected at run time from configuration, much like database/sql
// drivers. The package never parses Sass itself.
package sass

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

// Identifiers of the built-in implementations.
const (
	DartSass = "dart-sass"
	LibSass  = "libsass"
)

// Request is a single compilation of one entry file.
type Request struct {
	Source       string   // Sass source text
	Path         string   // absolute path of the entry file; drives relative imports and syntax detection
	IncludePaths []string // extra load paths for @use/@import
	OutputStyle  string   // "expanded", "compressed", "nested", "compact"
	Precision    int      // decimal precision, 0 keeps the implementation default
}

// Result is the compiled CSS.
type Result struct {
	CSS string
}

// Compiler compiles Sass sources to CSS.
type Compiler interface {
	Compile(ctx context.Context, req Request) (Result, error)
	Close() error
}

// Options configure an implementation instance.
type Options struct {
	Binary string       // executable for process-backed implementations
	Logger *slog.Logger // receives compiler warnings; nil means slog.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Implementation describes a registered compiler.
type Implementation struct {
	Name   string
	Styles []string // supported output styles
	New    func(opts Options) (Compiler, error)
}

// SupportsStyle reports whether the implementation accepts the output style.
func (i Implementation) SupportsStyle(style string) bool {
	for _, s := range i.Styles {
		if s == style {
			return true
		}
	}
	return false
}

var (
	registryMu      sync.RWMutex
	implementations = make(map[string]Implementation)
)

// Register makes an implementation available by name.
// It panics if Register is called twice with the same name or with a nil constructor.
func Register(impl Implementation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if impl.New == nil {
		panic("sass: Register constructor is nil")
	}
	if _, dup := implementations[impl.Name]; dup {
		panic("sass: Register called twice for implementation " + impl.Name)
	}
	implementations[impl.Name] = impl
}

// Lookup returns the named implementation.
func Lookup(name string) (Implementation, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	impl, ok := implementations[name]
	return impl, ok
}

// Implementations returns the sorted names of registered implementations.
func Implementations() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(implementations))
	for name := range implementations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New instantiates the named implementation.
func New(name string, opts Options) (Compiler, error) {
	impl, ok := Lookup(name)
	if !ok {
		return nil, errors.Configf("unknown compiler implementation %q (available: %s)",
			name, strings.Join(Implementations(), ", "))
	}
	return impl.New(opts)
}

// Error is a compilation failure reported by the compiler, such as a
// syntax error or an unresolvable import.
type Error struct {
	Path       string
	Diagnostic string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Diagnostic
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Diagnostic)
}

// fileURL converts an absolute file path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// loadPaths returns the entry file's directory followed by the configured include paths.
func loadPaths(req Request) []string {
	paths := make([]string, 0, len(req.IncludePaths)+1)
	if req.Path != "" {
		paths = append(paths, filepath.Dir(req.Path))
	}
	return append(paths, req.IncludePaths...)
}

func isIndentedSyntax(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sass")
}
