package sass

import (
	"context"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

type stubCompiler struct{}

func (stubCompiler) Compile(_ context.Context, req Request) (Result, error) {
	return Result{CSS: req.Source}, nil
}

func (stubCompiler) Close() error { return nil }

func TestBuiltinImplementationsRegistered(t *testing.T) {
	names := Implementations()
	for _, want := range []string{DartSass, LibSass} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Implementations() = %v, missing %q", names, want)
		}
	}
}

func TestRegisterAndNew(t *testing.T) {
	Register(Implementation{
		Name:   "stub-register-and-new",
		Styles: []string{"expanded"},
		New:    func(Options) (Compiler, error) { return stubCompiler{}, nil },
	})

	c, err := New("stub-register-and-new", Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := c.Compile(context.Background(), Request{Source: "a{b:c}"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if res.CSS != "a{b:c}" {
		t.Errorf("Compile().CSS = %q", res.CSS)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	impl := Implementation{
		Name: "stub-duplicate",
		New:  func(Options) (Compiler, error) { return stubCompiler{}, nil },
	}
	Register(impl)

	defer func() {
		if recover() == nil {
			t.Error("Register() twice did not panic")
		}
	}()
	Register(impl)
}

func TestRegister_NilConstructorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with nil constructor did not panic")
		}
	}()
	Register(Implementation{Name: "stub-nil"})
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("node-sass", Options{})
	if err == nil {
		t.Fatal("New() error = nil, want error")
	}
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("New() error kind: %v, want config error", err)
	}
	if !strings.Contains(err.Error(), "dart-sass") {
		t.Errorf("error = %q, want list of available implementations", err)
	}
}

func TestImplementation_SupportsStyle(t *testing.T) {
	impl, ok := Lookup(DartSass)
	if !ok {
		t.Fatal("Lookup(dart-sass) not found")
	}
	if !impl.SupportsStyle("compressed") {
		t.Error("dart-sass should support compressed")
	}
	if impl.SupportsStyle("nested") {
		t.Error("dart-sass should not support nested")
	}

	lib, _ := Lookup(LibSass)
	if !lib.SupportsStyle("nested") {
		t.Error("libsass should support nested")
	}
}

func TestError(t *testing.T) {
	e := &Error{Path: "/p/scss/all.scss", Diagnostic: `expected "}".`}
	if got, want := e.Error(), `/p/scss/all.scss: expected "}".`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (&Error{Diagnostic: "x"}).Error(); got != "x" {
		t.Errorf("Error() = %q, want %q", got, "x")
	}
}

func TestFileURL(t *testing.T) {
	if got, want := fileURL("/srv/site/scss/all.scss"), "file:///srv/site/scss/all.scss"; got != want {
		t.Errorf("fileURL() = %q, want %q", got, want)
	}
	if got := fileURL("/srv/my site/a.scss"); !strings.Contains(got, "my%20site") {
		t.Errorf("fileURL() = %q, want escaped space", got)
	}
}

func TestLoadPaths(t *testing.T) {
	got := loadPaths(Request{Path: "/srv/scss/all.scss", IncludePaths: []string{"/srv/vendor"}})
	if len(got) != 2 || got[0] != "/srv/scss" || got[1] != "/srv/vendor" {
		t.Errorf("loadPaths() = %v", got)
	}
	if got := loadPaths(Request{}); len(got) != 0 {
		t.Errorf("loadPaths(empty) = %v, want none", got)
	}
}

func TestResolveDartSassBinary(t *testing.T) {
	t.Setenv(DartSassEnvVar, "")
	if got := ResolveDartSassBinary(""); got != "sass" {
		t.Errorf("ResolveDartSassBinary() = %q, want sass", got)
	}

	t.Setenv(DartSassEnvVar, "/opt/dart-sass/sass")
	if got := ResolveDartSassBinary(""); got != "/opt/dart-sass/sass" {
		t.Errorf("ResolveDartSassBinary() = %q, want env value", got)
	}
	if got := ResolveDartSassBinary("./bin/sass"); got != "./bin/sass" {
		t.Errorf("ResolveDartSassBinary() = %q, want configured value", got)
	}
}

func TestNewDartSass_MissingBinary(t *testing.T) {
	_, err := New(DartSass, Options{Binary: "/nonexistent/dart-sass/bin/sass"})
	if err == nil {
		t.Fatal("New() error = nil, want environment error")
	}
	if !errors.IsKind(err, errors.KindEnvironment) {
		t.Errorf("New() error = %v, want environment error", err)
	}
}
