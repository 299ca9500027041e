//go:build !cgo

package sass

import (
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

func init() {
	Register(Implementation{
		Name:   LibSass,
		Styles: []string{"expanded", "compressed", "nested", "compact"},
		New: func(Options) (Compiler, error) {
			return nil, errors.Environment("libsass: this cssbuild binary was built without cgo; use dart-sass or rebuild with CGO_ENABLED=1")
		},
	})
}
