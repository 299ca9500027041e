// Package output writes user-facing cssbuild messages to stdout and stderr.
//
// Build progress goes to stdout and is suppressed in quiet mode. Errors,
// warnings and step failures go to stderr and are always printed.
package output

import (
	"fmt"
	"io"
	"os"
)

// Writer prints cssbuild messages, with ANSI colors when stdout is a terminal.
type Writer struct {
	stdout io.Writer
	stderr io.Writer
	color  bool
	quiet  bool
}

// New returns a Writer on os.Stdout and os.Stderr.
func New() *Writer {
	return &Writer{
		stdout: os.Stdout,
		stderr: os.Stderr,
		color:  isTerminal(),
	}
}

// NewWithWriters returns a Writer on the given streams.
func NewWithWriters(stdout, stderr io.Writer, color bool) *Writer {
	return &Writer{stdout: stdout, stderr: stderr, color: color}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Quiet reports whether quiet mode is enabled.
func (w *Writer) Quiet() bool {
	return w.quiet
}

// Print writes verbatim to stdout, regardless of quiet mode.
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.stdout, format, args...)
}

// Println writes a line to stdout, regardless of quiet mode.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.stdout, format+"\n", args...)
}

// Info writes a line to stdout unless quiet.
func (w *Writer) Info(format string, args ...any) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning writes "warning: ..." to stderr.
func (w *Writer) Warning(format string, args ...any) {
	w.errorLine(yellow, "warning: ", fmt.Sprintf(format, args...))
}

// Error writes "cssbuild: ..." to stderr.
func (w *Writer) Error(format string, args ...any) {
	w.errorLine(red, "cssbuild: ", fmt.Sprintf(format, args...))
}

// Hint writes a dimmed follow-up line to stdout, e.g. after an error.
func (w *Writer) Hint(format string, args ...any) {
	w.Println("%s", w.paint(dim, fmt.Sprintf(format, args...)))
}

// Heading writes "name: title", used by task and alias listings.
func (w *Writer) Heading(name, title string) {
	w.Println("%s: %s", w.paint(bold+cyan, name), title)
}

// Detail writes an indented "label: value" line under a Heading.
func (w *Writer) Detail(label, value string) {
	w.Println("  %s %s", w.paint(dim, label+":"), value)
}

// Valid writes a validation success line.
func (w *Writer) Valid(msg string) {
	if w.color {
		w.Println("%s✓%s %s", green, reset, msg)
		return
	}
	w.Println("%s", msg)
}

// errorLine writes prefix+msg to stderr; in color mode the prefix is painted.
func (w *Writer) errorLine(color, prefix, msg string) {
	fmt.Fprintf(w.stderr, "%s%s\n", w.paint(color, prefix), msg)
}

// paint wraps s in the given ANSI sequence when color is enabled.
func (w *Writer) paint(code, s string) string {
	if !w.color || s == "" {
		return s
	}
	return code + s + reset
}

func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
