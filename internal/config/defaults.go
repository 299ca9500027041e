package config

// Default configuration values. Together they reproduce the stock pipeline:
// scss/all.scss -> css/all.css -> css/all.min.css.
const (
	DefaultImplementation = "dart-sass"
	DefaultOutputStyle    = string(OutputStyleExpanded)
	DefaultCompileTarget  = "dist"
	DefaultMinifyTarget   = "build"
	DefaultSource         = "scss/all.scss"
	DefaultCompiled       = "css/all.css"
	DefaultMinified       = "css/all.min.css"
	DefaultAlias          = "default"
)

// Task names.
const (
	TaskCompile = "compile"
	TaskMinify  = "minify"
)

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Compile: &CompileConfig{
			Targets: map[string]CompileTarget{
				DefaultCompileTarget: {
					Files: map[string]string{DefaultCompiled: DefaultSource},
				},
			},
		},
		Minify: &MinifyConfig{
			Targets: map[string]MinifyTarget{
				DefaultMinifyTarget: {Src: DefaultCompiled, Dest: DefaultMinified},
			},
		},
	}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyCompileDefaults(cfg)
	applyMinifyDefaults(cfg)
	applyAliasDefaults(cfg)
}

func applyCompileDefaults(cfg *Config) {
	if cfg.Compile == nil {
		return
	}
	if cfg.Compile.Options.Implementation == "" {
		cfg.Compile.Options.Implementation = DefaultImplementation
	}
	if cfg.Compile.Options.OutputStyle == "" {
		cfg.Compile.Options.OutputStyle = DefaultOutputStyle
	}
}

func applyMinifyDefaults(cfg *Config) {
	if cfg.Minify == nil {
		return
	}
	if cfg.Minify.Options.Report == nil {
		report := true
		cfg.Minify.Options.Report = &report
	}
}

// applyAliasDefaults registers "default" as every configured task in
// compile, minify order unless the file defines it.
func applyAliasDefaults(cfg *Config) {
	if _, ok := cfg.Aliases[DefaultAlias]; ok {
		return
	}
	var steps []string
	if cfg.Compile != nil {
		steps = append(steps, TaskCompile)
	}
	if cfg.Minify != nil {
		steps = append(steps, TaskMinify)
	}
	if len(steps) == 0 {
		return
	}
	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string][]string)
	}
	cfg.Aliases[DefaultAlias] = steps
}

// ResolveCompileOptions merges target overrides onto task-level options.
func ResolveCompileOptions(base CompileOptions, override *CompileOptions) CompileOptions {
	if override == nil {
		return base
	}
	merged := base
	if override.Implementation != "" {
		merged.Implementation = override.Implementation
	}
	if override.OutputStyle != "" {
		merged.OutputStyle = override.OutputStyle
	}
	if len(override.IncludePaths) > 0 {
		merged.IncludePaths = override.IncludePaths
	}
	if override.Precision != 0 {
		merged.Precision = override.Precision
	}
	if override.Binary != "" {
		merged.Binary = override.Binary
	}
	return merged
}

// ResolveMinifyOptions merges target overrides onto task-level options.
func ResolveMinifyOptions(base MinifyOptions, override *MinifyOptions) MinifyOptions {
	if override == nil {
		return base
	}
	merged := base
	if override.Precision != 0 {
		merged.Precision = override.Precision
	}
	if override.Report != nil {
		merged.Report = override.Report
	}
	return merged
}
