package output

import (
	"context"
	"errors"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AndreyAkinshin/cssbuild/internal/cssmin"
)

var printer = message.NewPrinter(language.English)

// PlannedStep is one line of a dry-run plan.
type PlannedStep struct {
	Name    string
	Actions []string // e.g. "scss/all.scss -> css/all.css (dart-sass, expanded)"
}

// FinishedStep is one row of the build summary.
type FinishedStep struct {
	Name     string
	Duration time.Duration
	Failed   bool
}

// Step announces a step that is about to run.
func (w *Writer) Step(name string) {
	w.Info("%s %s", w.paint(bold+cyan, "==>"), w.paint(bold, name))
}

// Wrote reports a file written by the current step.
func (w *Writer) Wrote(path string, size int) {
	w.Info("    wrote %s %s", path, w.paint(dim, printer.Sprintf("(%d B)", size)))
}

// Minified reports the size change of a minified file.
func (w *Writer) Minified(rep cssmin.Report) {
	w.Info("    %s", w.paint(green, rep.String()))
}

// StepFailed reports a failed step on stderr, even in quiet mode.
func (w *Writer) StepFailed(name string, err error) {
	w.errorLine(red, "error: ", name+": "+err.Error())
}

// Plan prints a dry-run plan. It is printed in quiet mode too, since it is the
// only output a dry run produces.
func (w *Writer) Plan(steps []PlannedStep) {
	w.Println("%s", w.paint(bold+yellow, printer.Sprintf("Dry run: %d steps, nothing will be written", len(steps))))
	for i, s := range steps {
		w.Println("  %d. %s", i+1, s.Name)
		for _, a := range s.Actions {
			w.Println("     %s", w.paint(dim, a))
		}
	}
}

// Summary prints per-step timings followed by the build outcome. A nil err
// means success. A canceled context is an abort even when the step it
// interrupted is marked Failed; otherwise the last failed step is named.
func (w *Writer) Summary(steps []FinishedStep, err error) {
	if w.quiet {
		return
	}
	w.Println("")
	var total time.Duration
	for _, s := range steps {
		total += s.Duration
		mark := w.paint(green, "ok  ")
		if s.Failed {
			mark = w.paint(red, "FAIL")
		}
		w.Println("  %s %-16s %s", mark, s.Name, w.paint(dim, formatDuration(s.Duration)))
	}

	switch {
	case err == nil:
		w.Println("%s", w.paint(green, "Build succeeded in "+formatDuration(total)+"."))
	case !errors.Is(err, context.Canceled) && len(steps) > 0 && steps[len(steps)-1].Failed:
		w.Println("%s", w.paint(red, "Build failed at "+steps[len(steps)-1].Name+"."))
	default:
		w.Println("%s", w.paint(red, "Build aborted: "+err.Error()))
	}
}

// formatDuration formats a step duration, e.g. "12ms" or "1.4s".
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
