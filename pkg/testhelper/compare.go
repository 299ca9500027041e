package testhelper

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CompareOptions configures CSS comparison.
type CompareOptions struct {
	// IgnoreWhitespace collapses runs of whitespace to one space and trims
	// both ends before comparing. Use it for expanded output.
	IgnoreWhitespace bool

	// IgnoreTrailingNewline drops a single trailing newline from both sides.
	IgnoreTrailingNewline bool
}

// DefaultOptions compares byte for byte except for a trailing newline.
func DefaultOptions() CompareOptions {
	return CompareOptions{IgnoreTrailingNewline: true}
}

// CompareCSS compares expected and actual CSS. When they differ, the
// second result points at the first differing position.
func CompareCSS(expected, actual string, opts CompareOptions) (bool, string) {
	exp, act := normalize(expected, opts), normalize(actual, opts)
	if exp == act {
		return true, ""
	}

	offset := 0
	for offset < len(exp) && offset < len(act) && exp[offset] == act[offset] {
		offset++
	}
	// Report whole characters: back up when the mismatch is inside a rune.
	for offset > 0 && offset < len(exp) && !utf8.RuneStart(exp[offset]) {
		offset--
	}
	line, col := position(exp, offset)
	return false, fmt.Sprintf("CSS differs at line %d, column %d: expected %q, got %q",
		line, col, snippet(exp, offset), snippet(act, offset))
}

func normalize(css string, opts CompareOptions) string {
	if opts.IgnoreTrailingNewline {
		css = strings.TrimSuffix(css, "\n")
	}
	if opts.IgnoreWhitespace {
		css = strings.Join(strings.Fields(css), " ")
	}
	return css
}

// position converts a byte offset into a 1-based line and column.
func position(s string, offset int) (line, col int) {
	line, col = 1, 1
	for _, r := range s[:offset] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

const snippetLen = 20

func snippet(s string, offset int) string {
	if offset >= len(s) {
		return ""
	}
	end := min(offset+snippetLen, len(s))
	for end > offset && end < len(s) && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[offset:end]
}
