//go:build cgo

package sass

import (
	"context"

	"github.com/bep/golibsass/libsass"
)

func init() {
	Register(Implementation{
		Name:   LibSass,
		Styles: []string{"expanded", "compressed", "nested", "compact"},
		New:    newLibSass,
	})
}

// libSass compiles in-process through LibSass. A transpiler is built per
// request because include paths and style are per-request options.
type libSass struct{}

func newLibSass(Options) (Compiler, error) {
	return libSass{}, nil
}

func (libSass) Compile(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	t, err := libsass.New(libsass.Options{
		IncludePaths: loadPaths(req),
		OutputStyle:  libsass.ParseOutputStyle(req.OutputStyle),
		Precision:    req.Precision,
		SassSyntax:   isIndentedSyntax(req.Path),
	})
	if err != nil {
		return Result{}, err
	}
	res, err := t.Execute(req.Source)
	if err != nil {
		return Result{}, &Error{Path: req.Path, Diagnostic: err.Error()}
	}
	return Result{CSS: res.CSS}, nil
}

func (libSass) Close() error { return nil }
