package config

import (
	"reflect"
	"testing"
)

func TestDetectUnknownFields(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"$schema": "./config.schema.json",
		"watch": true,
		"compile": {
			"options": {"implementation": "libsass", "sourcemap": true},
			"targets": {"dist": {"files": {"a.css": "a.scss"}, "banner": "x"}},
			"verbose": 1
		},
		"minify": {
			"targets": {"build": {"src": "a.css", "dest": "a.min.css", "options": {"level": 2}}}
		}
	}`)

	got := detectUnknownFields(data)
	want := []string{
		`unknown field "banner" in target "compile:dist" (ignored)`,
		`unknown field "level" in target "minify:build" options (ignored)`,
		`unknown field "sourcemap" in compile options (ignored)`,
		`unknown field "verbose" in task "compile" (ignored)`,
		`unknown field "watch" at root level (ignored)`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("detectUnknownFields() =\n%v\nwant\n%v", got, want)
	}
}

func TestDetectUnknownFields_None(t *testing.T) {
	t.Parallel()
	data := []byte(`{"compile": {"targets": {"dist": {"files": {"a.css": "a.scss"}}}}}`)
	if got := detectUnknownFields(data); len(got) != 0 {
		t.Errorf("detectUnknownFields() = %v, want none", got)
	}
}

func TestDetectUnknownFields_InvalidJSON(t *testing.T) {
	t.Parallel()
	got := detectUnknownFields([]byte(`[`))
	if len(got) != 1 {
		t.Errorf("detectUnknownFields() = %v, want one internal warning", got)
	}
}
