package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/cssbuild/internal/fsutil"
)

// sassExtensions are the file extensions treated as Sass sources.
var sassExtensions = map[string]bool{
	".scss": true,
	".sass": true,
}

// excludedDirs are never searched for Sass entry files.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"css":          true,
	"dist":         true,
	"build":        true,
}

// DiscoverEntries finds Sass entry files under root: .scss and .sass files
// that are not partials (partials start with "_"). Hidden and excluded
// directories are skipped. Paths are relative to root, slash-separated and
// sorted.
func DiscoverEntries(root string) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || excludedDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "_") || !sassExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}

// CheckSources reports configured compile sources that are missing, one
// message per file. Minify inputs are not checked: they may be produced
// by the run itself.
func (p *Project) CheckSources() []string {
	if p.Config.Compile == nil {
		return nil
	}
	var problems []string
	for _, target := range sortedKeys(p.Config.Compile.Targets) {
		files := p.Config.Compile.Targets[target].Files
		for _, dest := range sortedKeys(files) {
			src := files[dest]
			if err := validateSourceFile(p.Root, src); err != nil {
				problems = append(problems, fmt.Sprintf("compile:%s: %v", target, err))
			}
		}
	}
	return problems
}

// validateSourceFile checks that src, relative to root, exists and is a
// regular file. Messages name the path as configured.
func validateSourceFile(root, src string) error {
	info, err := os.Stat(fsutil.Resolve(root, src))
	if os.IsNotExist(err) {
		return fmt.Errorf("source %q does not exist", src)
	}
	if err != nil {
		return fmt.Errorf("cannot access source %q: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %q is a directory", src)
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
