package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Target and alias names: lowercase letters, digits, hyphens, underscores.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// CommandNames are the built-in CLI commands. They take precedence over
// aliases, so an alias with one of these names can never run.
var CommandNames = []string{"tasks", "config", "completion", "version", "help"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// Cross-task checks (alias references, compile/minify ordering) happen when
// tasks are registered, since they need the resolved task graph.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.Compile == nil && cfg.Minify == nil {
		return nil, &ValidationError{Field: "config", Message: "at least one of compile or minify must be configured"}
	}

	if err := validateCompile(cfg.Compile); err != nil {
		return nil, err
	}

	if err := validateMinify(cfg.Minify); err != nil {
		return nil, err
	}

	if err := validateAliases(cfg.Aliases); err != nil {
		return nil, err
	}

	if cfg.Compile != nil && len(cfg.Compile.Targets) == 0 {
		warnings = append(warnings, "compile: no targets configured")
	}
	if cfg.Minify != nil && len(cfg.Minify.Targets) == 0 {
		warnings = append(warnings, "minify: no targets configured")
	}
	for _, name := range sortedKeys(cfg.Aliases) {
		if slices.Contains(CommandNames, name) {
			warnings = append(warnings, fmt.Sprintf("aliases.%s: shadowed by the %q command and cannot be run", name, name))
		}
	}

	return warnings, nil
}

func validateCompile(c *CompileConfig) error {
	if c == nil {
		return nil
	}
	if err := validateCompileOptions("compile.options", c.Options); err != nil {
		return err
	}
	for _, name := range sortedKeys(c.Targets) {
		target := c.Targets[name]
		field := fmt.Sprintf("compile.targets.%s", name)
		if err := ValidateTargetName(name); err != nil {
			return &ValidationError{Field: field, Message: err.(*ValidationError).Message}
		}
		if len(target.Files) == 0 {
			return &ValidationError{Field: field + ".files", Message: "is required"}
		}
		for dest, src := range target.Files {
			if strings.TrimSpace(dest) == "" || strings.TrimSpace(src) == "" {
				return &ValidationError{Field: field + ".files", Message: "source and destination paths must not be empty"}
			}
			if filepath.Clean(dest) == filepath.Clean(src) {
				return &ValidationError{Field: field + ".files", Message: fmt.Sprintf("destination %q overwrites its own source", dest)}
			}
		}
		if target.Options != nil {
			if err := validateCompileOptions(field+".options", *target.Options); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCompileOptions(field string, opts CompileOptions) error {
	if opts.OutputStyle == "" {
		return nil
	}
	for _, s := range ValidOutputStyles() {
		if opts.OutputStyle == s {
			return nil
		}
	}
	return &ValidationError{
		Field:   field + ".output_style",
		Message: fmt.Sprintf("must be one of %s", strings.Join(ValidOutputStyles(), ", ")),
	}
}

func validateMinify(m *MinifyConfig) error {
	if m == nil {
		return nil
	}
	for _, name := range sortedKeys(m.Targets) {
		target := m.Targets[name]
		field := fmt.Sprintf("minify.targets.%s", name)
		if err := ValidateTargetName(name); err != nil {
			return &ValidationError{Field: field, Message: err.(*ValidationError).Message}
		}
		if strings.TrimSpace(target.Src) == "" {
			return &ValidationError{Field: field + ".src", Message: "is required"}
		}
		if strings.TrimSpace(target.Dest) == "" {
			return &ValidationError{Field: field + ".dest", Message: "is required"}
		}
		if filepath.Clean(target.Src) == filepath.Clean(target.Dest) {
			return &ValidationError{Field: field + ".dest", Message: "must differ from src"}
		}
	}
	return nil
}

func validateAliases(aliases map[string][]string) error {
	for _, name := range sortedKeys(aliases) {
		field := fmt.Sprintf("aliases.%s", name)
		if err := ValidateTargetName(name); err != nil {
			return &ValidationError{Field: field, Message: err.(*ValidationError).Message}
		}
		if name == TaskCompile || name == TaskMinify {
			return &ValidationError{Field: field, Message: "alias must not shadow a task name"}
		}
		if len(aliases[name]) == 0 {
			return &ValidationError{Field: field, Message: "must list at least one task"}
		}
	}
	return nil
}

// ValidateTargetName checks if a target or alias name is valid.
func ValidateTargetName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{
			Field:   "name",
			Message: "must match pattern ^[a-z][a-z0-9_-]*$ (lowercase letters, digits, hyphens, underscores)",
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
