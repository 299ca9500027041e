package sass

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bep/godartsass/v2"

	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

// DartSassEnvVar overrides the Dart Sass executable.
const DartSassEnvVar = "CSSBUILD_DART_SASS"

const defaultDartSassBinary = "sass"

func init() {
	Register(Implementation{
		Name:   DartSass,
		Styles: []string{"expanded", "compressed"},
		New:    newDartSass,
	})
}

// dartSass drives a Dart Sass process over the embedded protocol.
// The process starts on the first Compile and lives until Close.
type dartSass struct {
	binary string
	logger *slog.Logger

	mu         sync.Mutex
	transpiler *godartsass.Transpiler
}

func newDartSass(opts Options) (Compiler, error) {
	binary := ResolveDartSassBinary(opts.Binary)
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, errors.Environmentf("dart-sass: executable %q not found; install Dart Sass or set %s", binary, DartSassEnvVar)
	}
	return &dartSass{binary: path, logger: opts.logger()}, nil
}

// ResolveDartSassBinary picks the executable: explicit option, then
// environment, then "sass" on PATH.
func ResolveDartSassBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv(DartSassEnvVar); env != "" {
		return env
	}
	return defaultDartSassBinary
}

func (d *dartSass) start() (*godartsass.Transpiler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transpiler != nil {
		return d.transpiler, nil
	}
	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: d.binary,
		LogEventHandler:          d.logEvent,
	})
	if err != nil {
		return nil, errors.Environmentf("dart-sass: failed to start %s: %v", d.binary, err)
	}
	d.transpiler = t
	return t, nil
}

func (d *dartSass) logEvent(e godartsass.LogEvent) {
	msg := strings.TrimSpace(e.Message)
	switch e.Type {
	case godartsass.LogEventTypeDebug:
		d.logger.Debug("sass @debug", "message", msg)
	case godartsass.LogEventTypeDeprecated:
		d.logger.Warn("sass deprecation", "message", msg)
	default:
		d.logger.Warn("sass warning", "message", msg)
	}
}

func (d *dartSass) Compile(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	t, err := d.start()
	if err != nil {
		return Result{}, err
	}

	args := godartsass.Args{
		Source:       req.Source,
		OutputStyle:  godartsass.OutputStyleExpanded,
		SourceSyntax: dartSyntax(req.Path),
		IncludePaths: loadPaths(req),
	}
	if req.Path != "" {
		args.URL = fileURL(req.Path)
	}
	if req.OutputStyle == "compressed" {
		args.OutputStyle = godartsass.OutputStyleCompressed
	}

	res, err := t.Execute(args)
	if err != nil {
		return Result{}, &Error{Path: req.Path, Diagnostic: err.Error()}
	}
	return Result{CSS: res.CSS}, nil
}

func (d *dartSass) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transpiler == nil {
		return nil
	}
	err := d.transpiler.Close()
	d.transpiler = nil
	return err
}

func dartSyntax(path string) godartsass.SourceSyntax {
	switch {
	case isIndentedSyntax(path):
		return godartsass.SourceSyntaxSASS
	case strings.EqualFold(filepath.Ext(path), ".css"):
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}
