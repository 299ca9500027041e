package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses JSON config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
// Warnings are sorted so output is stable across runs.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	warnings = append(warnings, unknownKeys(raw, reflect.TypeOf(Config{}), "at root level", "$schema")...)

	if compileRaw, ok := raw[TaskCompile]; ok {
		warnings = append(warnings, checkTaskUnknownFields(TaskCompile, compileRaw,
			reflect.TypeOf(CompileConfig{}), reflect.TypeOf(CompileOptions{}), reflect.TypeOf(CompileTarget{}))...)
	}
	if minifyRaw, ok := raw[TaskMinify]; ok {
		warnings = append(warnings, checkTaskUnknownFields(TaskMinify, minifyRaw,
			reflect.TypeOf(MinifyConfig{}), reflect.TypeOf(MinifyOptions{}), reflect.TypeOf(MinifyTarget{}))...)
	}

	sort.Strings(warnings)
	return warnings
}

func checkTaskUnknownFields(task string, data json.RawMessage, taskType, optionsType, targetType reflect.Type) []string {
	var section map[string]json.RawMessage
	if err := json.Unmarshal(data, &section); err != nil {
		return nil
	}

	warnings := unknownKeys(section, taskType, fmt.Sprintf("in task %q", task))
	warnings = append(warnings, checkOptionsUnknownFields(section["options"], optionsType, fmt.Sprintf("in %s options", task))...)

	var targets map[string]json.RawMessage
	if err := json.Unmarshal(section["targets"], &targets); err != nil {
		return warnings
	}
	for name, targetRaw := range targets {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(targetRaw, &fields); err != nil {
			continue
		}
		where := fmt.Sprintf("in target \"%s:%s\"", task, name)
		warnings = append(warnings, unknownKeys(fields, targetType, where)...)
		warnings = append(warnings, checkOptionsUnknownFields(fields["options"], optionsType, where+" options")...)
	}
	return warnings
}

func checkOptionsUnknownFields(data json.RawMessage, optionsType reflect.Type, where string) []string {
	if len(data) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return unknownKeys(fields, optionsType, where)
}

func unknownKeys(fields map[string]json.RawMessage, t reflect.Type, where string, allowed ...string) []string {
	known := getJSONFields(t)
	for _, a := range allowed {
		known[a] = true
	}
	var warnings []string
	for key := range fields {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, where))
		}
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
