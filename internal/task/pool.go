package task

import (
	stderrors "errors"
	"log/slog"
	"sync"

	"github.com/AndreyAkinshin/cssbuild/internal/sass"
)

// CompilerPool hands out one compiler instance per implementation and
// binary for the duration of a run, then closes them all.
type CompilerPool struct {
	logger *slog.Logger

	mu        sync.Mutex
	compilers map[poolKey]sass.Compiler
}

type poolKey struct {
	implementation string
	binary         string
}

// NewCompilerPool creates an empty pool. Compiler warnings go to logger.
func NewCompilerPool(logger *slog.Logger) *CompilerPool {
	return &CompilerPool{
		logger:    logger,
		compilers: make(map[poolKey]sass.Compiler),
	}
}

// Get returns the compiler for the implementation, starting it on first use.
func (p *CompilerPool) Get(implementation, binary string) (sass.Compiler, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey{implementation: implementation, binary: binary}
	if c, ok := p.compilers[key]; ok {
		return c, nil
	}
	c, err := sass.New(implementation, sass.Options{Binary: binary, Logger: p.logger})
	if err != nil {
		return nil, err
	}
	p.compilers[key] = c
	return c, nil
}

// Close shuts down every compiler handed out by the pool.
func (p *CompilerPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for key, c := range p.compilers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(p.compilers, key)
	}
	return stderrors.Join(errs...)
}
