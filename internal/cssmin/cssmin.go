// Package cssmin minifies CSS through tdewolff/minify and reports size savings.
package cssmin

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MediaType is the media type the minifier is registered under.
const MediaType = "text/css"

// Options configure the minifier.
type Options struct {
	// Precision limits significant digits in numbers; 0 keeps them all.
	Precision int
}

// Minifier minifies CSS text. Normalization rules (whitespace, colour
// shortening, zero units) are the library defaults.
type Minifier struct {
	m *minify.M
}

// New creates a Minifier.
func New(opts Options) *Minifier {
	m := minify.New()
	m.Add(MediaType, &css.Minifier{Precision: opts.Precision})
	return &Minifier{m: m}
}

// Minify returns the minified form of src.
func (mm *Minifier) Minify(src []byte) ([]byte, error) {
	return mm.m.Bytes(MediaType, src)
}

// Report describes one minified file.
type Report struct {
	Path   string
	Before int
	After  int
}

// Saved returns the number of bytes removed.
func (r Report) Saved() int {
	return r.Before - r.After
}

var printer = message.NewPrinter(language.English)

// String formats the report as "path: 1,234 B → 987 B (-20.0%)".
func (r Report) String() string {
	if r.Before == 0 {
		return printer.Sprintf("%s: %d B → %d B", r.Path, r.Before, r.After)
	}
	pct := float64(r.Saved()) * 100 / float64(r.Before)
	return printer.Sprintf("%s: %d B → %d B (-%.1f%%)", r.Path, r.Before, r.After, pct)
}
