// Package config provides loading and validation of the cssbuild configuration file.
package config

// Config represents the complete cssbuild configuration.
//
// The layout mirrors a task-runner configuration: each task name owns a set of
// named targets, and aliases compose task references into ordered pipelines.
type Config struct {
	Compile *CompileConfig      `json:"compile,omitempty"`
	Minify  *MinifyConfig       `json:"minify,omitempty"`
	Aliases map[string][]string `json:"aliases,omitempty"`
}

// CompileConfig configures the Sass compile task.
type CompileConfig struct {
	Options CompileOptions           `json:"options,omitempty"`
	Targets map[string]CompileTarget `json:"targets,omitempty"`
}

// CompileOptions selects the compiler implementation and its settings.
// Target-level options override task-level options field by field.
type CompileOptions struct {
	Implementation string   `json:"implementation,omitempty"` // "dart-sass" or "libsass"
	OutputStyle    string   `json:"output_style,omitempty"`   // "expanded", "compressed", "nested", "compact"
	IncludePaths   []string `json:"include_paths,omitempty"`
	Precision      int      `json:"precision,omitempty"` // libsass only
	Binary         string   `json:"binary,omitempty"`    // dart-sass executable
}

// CompileTarget maps destination CSS files to their Sass sources.
type CompileTarget struct {
	Options *CompileOptions   `json:"options,omitempty"`
	Files   map[string]string `json:"files"` // dest -> src
}

// MinifyConfig configures the CSS minify task.
type MinifyConfig struct {
	Options MinifyOptions           `json:"options,omitempty"`
	Targets map[string]MinifyTarget `json:"targets,omitempty"`
}

// MinifyOptions configures the minifier.
type MinifyOptions struct {
	Precision int   `json:"precision,omitempty"` // 0 keeps all decimals
	Report    *bool `json:"report,omitempty"`    // print size report (default: true)
}

// MinifyTarget is a single src -> dest minification.
type MinifyTarget struct {
	Options *MinifyOptions `json:"options,omitempty"`
	Src     string         `json:"src"`
	Dest    string         `json:"dest"`
}

// OutputStyle represents a compiled CSS formatting style.
type OutputStyle string

const (
	OutputStyleExpanded   OutputStyle = "expanded"
	OutputStyleCompressed OutputStyle = "compressed"
	OutputStyleNested     OutputStyle = "nested"
	OutputStyleCompact    OutputStyle = "compact"
)

// ValidOutputStyles lists accepted output_style values.
func ValidOutputStyles() []string {
	return []string{
		string(OutputStyleExpanded),
		string(OutputStyleCompressed),
		string(OutputStyleNested),
		string(OutputStyleCompact),
	}
}
