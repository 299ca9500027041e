package output

import "strings"

// HelpTitle prints the first line of a help page.
func (w *Writer) HelpTitle(title string) {
	w.Println("%s", w.paint(bold+cyan, title))
}

// HelpSection prints a blank line and a section header such as "Usage:".
func (w *Writer) HelpSection(title string) {
	w.Println("")
	w.Println("%s", w.paint(bold+yellow, title))
}

// HelpLine prints an indented free-form line, e.g. a usage synopsis.
func (w *Writer) HelpLine(text string) {
	w.Println("  %s", text)
}

// HelpEntry prints a name padded to width followed by its description. It
// serves commands, flags and environment variables alike.
func (w *Writer) HelpEntry(name, description string, width int) {
	// Pad on the plain name; ANSI codes take no columns.
	pad := strings.Repeat(" ", max(width-len(name), 0))
	w.Println("  %s%s  %s", w.paint(cyan, name), pad, w.paint(dim, description))
}

// HelpExample prints an example command with an optional description below.
func (w *Writer) HelpExample(command, description string) {
	w.Println("  %s", w.paint(cyan, command))
	if description != "" {
		w.Println("      %s", w.paint(dim, description))
	}
}
