package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/cssbuild/internal/schema"
)

// FileNames lists the config file names recognised in a project root,
// in lookup order.
var FileNames = []string{"cssbuild.json", "cssbuild.yaml", "cssbuild.yml"}

// Load reads and parses a configuration file (JSON or YAML by extension).
func Load(path string) (*Config, error) {
	data, err := readAsJSON(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults reads a config file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a config file, checks it against the embedded schema,
// applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := readAsJSON(path)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	cfg, unknownWarnings, err := LoadWithWarnings(path, data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}

// IsYAML reports whether path names a YAML config file.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// readAsJSON returns the file contents as JSON, converting YAML documents.
func readAsJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if !IsYAML(path) {
		return data, nil
	}
	converted, err := yamlToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return converted, nil
}

// yamlToJSON converts a YAML document into equivalent JSON so that both
// formats share one schema, one decoder and one unknown-field check.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	normalized, err := normalizeYAML(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalizeYAML rewrites map[interface{}]interface{} nodes (non-string keys)
// into map[string]interface{} so encoding/json can marshal them.
func normalizeYAML(v interface{}) (interface{}, error) {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			node[k] = n
		}
		return node, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []interface{}:
		for i, child := range node {
			n, err := normalizeYAML(child)
			if err != nil {
				return nil, err
			}
			node[i] = n
		}
		return node, nil
	default:
		return v, nil
	}
}
