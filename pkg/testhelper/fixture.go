package testhelper

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// CopyFixture copies the directory tree at src into a fresh temporary
// directory and returns its path, so tests can build into it freely.
func CopyFixture(tb testing.TB, src string) string {
	tb.Helper()
	dst := tb.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		tb.Fatalf("copy fixture %s: %v", src, err)
	}
	return dst
}
