// Package testhelper loads golden stylesheet fixtures and compares CSS
// output against them.
//
// A suite is a directory of JSON files, one case per file:
//
//	{"input": "p { margin: 0px; }", "output": "p{margin:0}"}
//
// Example usage in a Go test:
//
//	func TestMinify(t *testing.T) {
//	    cases, err := testhelper.LoadSuite(fixtures, "minify")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    for _, tc := range cases {
//	        t.Run(tc.Name, func(t *testing.T) {
//	            actual := minify(tc.Input)
//	            if ok, diff := testhelper.CompareCSS(tc.Output, actual, testhelper.DefaultOptions()); !ok {
//	                t.Error(diff)
//	            }
//	        })
//	    }
//	}
package testhelper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Case is a single golden fixture.
type Case struct {
	// Name is derived from the file name.
	Name string `json:"-"`

	// Suite is the directory the case was loaded from.
	Suite string `json:"-"`

	// Input is the stylesheet fed to the code under test.
	Input string `json:"input"`

	// Output is the expected CSS.
	Output string `json:"output"`

	Description string   `json:"description,omitempty"`
	Skip        bool     `json:"skip,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LoadSuite loads all cases from <dir>/<suite>/*.json, sorted by name.
func LoadSuite(dir, suite string) ([]Case, error) {
	files, err := filepath.Glob(filepath.Join(dir, suite, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var cases []Case
	for _, f := range files {
		tc, err := LoadCase(f)
		if err != nil {
			return nil, err
		}
		tc.Suite = suite
		cases = append(cases, *tc)
	}
	return cases, nil
}

// LoadCase loads a single case from a JSON file. Unknown fields are
// rejected so that typos in fixture files do not silently drop data.
func LoadCase(path string) (*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var tc Case
	if err := dec.Decode(&tc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	tc.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	return &tc, nil
}

// ListSuites returns the names of suite directories under dir.
func ListSuites(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var suites []string
	for _, entry := range entries {
		if entry.IsDir() {
			suites = append(suites, entry.Name())
		}
	}
	return suites, nil
}

// HasTag reports whether the case carries tag.
func (c Case) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
