package topsort

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func indexIn(result []string) func(string) int {
	return func(s string) int {
		for i, v := range result {
			if v == s {
				return i
			}
		}
		return -1
	}
}

func TestSort_Empty(t *testing.T) {
	result, err := Sort(Graph{}, nil)
	if err != nil {
		t.Errorf("Sort() error = %v, want nil", err)
	}
	if len(result) != 0 {
		t.Errorf("Sort() = %v, want empty", result)
	}
}

func TestSort_CompileBeforeMinify(t *testing.T) {
	// minify:build reads what compile:dist writes
	g := Graph{
		"compile:dist":  nil,
		"minify:build":  {"compile:dist"},
		"minify:vendor": nil,
	}
	result, err := Sort(g, nil)
	if err != nil {
		t.Fatalf("Sort() error = %v, want nil", err)
	}
	indexOf := indexIn(result)
	if indexOf("compile:dist") >= indexOf("minify:build") {
		t.Errorf("Sort() compile:dist should come before minify:build: %v", result)
	}
	if len(result) != 3 {
		t.Errorf("Sort() returned %d nodes, want 3", len(result))
	}
}

func TestSort_Diamond(t *testing.T) {
	g := Graph{
		"a": nil,
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	}
	result, err := Sort(g, nil)
	if err != nil {
		t.Fatalf("Sort() error = %v, want nil", err)
	}
	indexOf := indexIn(result)
	if indexOf("a") >= indexOf("b") || indexOf("a") >= indexOf("c") {
		t.Errorf("Sort() a should come before b and c: %v", result)
	}
	if indexOf("b") >= indexOf("d") || indexOf("c") >= indexOf("d") {
		t.Errorf("Sort() b and c should come before d: %v", result)
	}
}

func TestSort_CycleReportsPath(t *testing.T) {
	g := Graph{
		"a": {"b"},
		"b": {"c", "e"},
		"c": {"d"},
		"d": {"b"},
		"e": nil,
	}
	_, err := Sort(g, nil)
	if err == nil {
		t.Fatal("Sort() expected error for cycle, got nil")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Sort() error type = %T, want *CycleError", err)
	}
	if want := []string{"b", "c", "d", "b"}; !reflect.DeepEqual(cycle.Path, want) {
		t.Errorf("CycleError.Path = %v, want %v", cycle.Path, want)
	}
	if !strings.Contains(err.Error(), "circular dependency detected: b -> c -> d -> b") {
		t.Errorf("Sort() error = %v", err)
	}
}

func TestSort_SelfReference(t *testing.T) {
	_, err := Sort(Graph{"a": {"a"}}, nil)
	if err == nil {
		t.Fatal("Sort() expected error for self-reference, got nil")
	}
	if !strings.Contains(err.Error(), "a -> a") {
		t.Errorf("Sort() error = %v, want to contain 'a -> a'", err)
	}
}

func TestSort_UndefinedDependency(t *testing.T) {
	_, err := Sort(Graph{"a": {"undefined"}}, nil)
	if err == nil {
		t.Fatal("Sort() expected error for undefined dependency, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Sort() error = %v, want to contain 'not found'", err)
	}
}

func TestSort_SelectedNodes(t *testing.T) {
	g := Graph{
		"a": nil,
		"b": {"a"},
		"c": {"a"},
		"d": nil,
	}

	result, err := Sort(g, []string{"b"})
	if err != nil {
		t.Fatalf("Sort() error = %v, want nil", err)
	}
	sort.Strings(result)
	if !reflect.DeepEqual(result, []string{"a", "b"}) {
		t.Errorf("Sort() = %v, want [a, b]", result)
	}

	resultEmpty, err := Sort(g, []string{})
	if err != nil {
		t.Errorf("Sort([]) error = %v, want nil", err)
	}
	if len(resultEmpty) != 0 {
		t.Errorf("Sort([]) = %v, want empty slice", resultEmpty)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantErr string
	}{
		{"valid", Graph{"a": nil, "b": {"a"}, "c": {"a", "b"}}, ""},
		{"self reference", Graph{"a": {"a"}}, "itself"},
		{"undefined", Graph{"a": {"missing"}}, "undefined"},
		{"cycle", Graph{"a": {"b"}, "b": {"c"}, "c": {"a"}}, "circular"},
		{"disconnected cycle", Graph{"a": nil, "b": {"a"}, "c": {"d"}, "d": {"c"}}, "circular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.g)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	aliases := Graph{
		"default": {"css", "minify"},
		"css":     {"compile:dist", "compile:theme"},
		"twice":   {"compile", "compile"},
	}

	tests := []struct {
		name string
		want []string
	}{
		{"default", []string{"compile:dist", "compile:theme", "minify"}},
		{"css", []string{"compile:dist", "compile:theme"}},
		{"twice", []string{"compile", "compile"}},
		{"minify", []string{"minify"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(aliases, tt.name)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpand_RepeatedAliasIsNotACycle(t *testing.T) {
	aliases := Graph{
		"default": {"css", "css"},
		"css":     {"compile"},
	}
	got, err := Expand(aliases, "default")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"compile", "compile"}) {
		t.Errorf("Expand() = %v", got)
	}
}

func TestExpand_Cycle(t *testing.T) {
	aliases := Graph{
		"default": {"build"},
		"build":   {"compile", "release"},
		"release": {"default"},
	}
	_, err := Expand(aliases, "default")
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expand() error = %v, want *CycleError", err)
	}
	if want := []string{"default", "build", "release", "default"}; !reflect.DeepEqual(cycle.Path, want) {
		t.Errorf("CycleError.Path = %v, want %v", cycle.Path, want)
	}
}
