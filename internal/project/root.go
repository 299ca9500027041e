// Package project provides project discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
)

// ErrNoProjectRoot is returned when no config file is found.
var ErrNoProjectRoot = errors.New("no cssbuild.json, cssbuild.yaml or cssbuild.yml found in this directory or any parent")

// FindRoot walks up from the current working directory until it finds a config file.
func FindRoot() (root, configPath string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds a config
// file. Within one directory the names in config.FileNames are tried in order.
func FindRootFrom(startDir string) (root, configPath string, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", err
	}

	for {
		if path, ok := configIn(dir); ok {
			return dir, path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", "", ErrNoProjectRoot
		}
		dir = parent
	}
}

func configIn(dir string) (string, bool) {
	for _, name := range config.FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
