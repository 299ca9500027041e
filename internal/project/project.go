package project

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
)

// Project represents a loaded cssbuild project.
type Project struct {
	Root       string
	ConfigPath string // empty when the built-in configuration is used
	Config     *config.Config
	Warnings   []string
}

// Builtin reports whether the project runs on the built-in configuration.
func (p *Project) Builtin() bool {
	return p.ConfigPath == ""
}

// Load loads the project for the current directory. An explicit config path
// wins over discovery; without one, the nearest config file up the tree is
// used, and with none at all the working directory runs the built-in
// configuration.
func Load(explicitPath string) (*Project, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}

	root, path, err := FindRoot()
	if stderrors.Is(err, ErrNoProjectRoot) {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, cwdErr
		}
		return Default(cwd), nil
	}
	if err != nil {
		return nil, err
	}
	return loadFrom(root, path)
}

// LoadFrom loads the project rooted at root, falling back to the built-in
// configuration when root holds no config file.
func LoadFrom(root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	path, ok := configIn(abs)
	if !ok {
		return Default(abs), nil
	}
	return loadFrom(abs, path)
}

// LoadFile loads the given config file. The project root is its directory.
func LoadFile(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.WrapConfig(err, "cannot read config file")
	}
	return loadFrom(filepath.Dir(abs), abs)
}

// Default returns a project at root using the built-in configuration.
func Default(root string) *Project {
	return &Project{
		Root:   root,
		Config: config.Default(),
	}
}

func loadFrom(root, path string) (*Project, error) {
	cfg, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		return nil, errors.WrapConfig(err, "failed to load configuration")
	}
	return &Project{
		Root:       root,
		ConfigPath: path,
		Config:     cfg,
		Warnings:   warnings,
	}, nil
}

// DisplayConfigPath returns the config path relative to the root, or a
// marker for the built-in configuration.
func (p *Project) DisplayConfigPath() string {
	if p.Builtin() {
		return "(built-in)"
	}
	if rel, err := filepath.Rel(p.Root, p.ConfigPath); err == nil {
		return rel
	}
	return p.ConfigPath
}
