package task

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
	"github.com/AndreyAkinshin/cssbuild/internal/sass"
	"github.com/AndreyAkinshin/cssbuild/internal/topsort"
)

// Registry holds the steps and aliases of a project.
type Registry struct {
	root      string
	steps     map[string]Step
	byTask    map[string][]string // task -> sorted step names
	aliases   topsort.Graph
	producers map[string]string // cleaned output path -> step name
}

// Register builds the registry from configuration: one step per compile and
// minify target, plus the aliases ("default" runs compile then minify).
// Returns a configuration error if:
//   - a compiler implementation is unknown or does not support the output style
//   - two mappings write the same file
//   - compile and minify targets read each other's outputs in a cycle
//   - an alias is cyclic, references an unknown task, or runs a step before
//     the step that produces its input
func Register(cfg *config.Config, root string) (*Registry, error) {
	r := &Registry{
		root:      root,
		steps:     make(map[string]Step),
		byTask:    make(map[string][]string),
		aliases:   make(topsort.Graph, len(cfg.Aliases)),
		producers: make(map[string]string),
	}

	if cfg.Compile != nil {
		if err := r.registerCompile(cfg.Compile); err != nil {
			return nil, err
		}
	}
	if cfg.Minify != nil {
		r.registerMinify(cfg.Minify)
	}

	if err := r.indexOutputs(); err != nil {
		return nil, err
	}
	if err := topsort.Validate(r.dataflowGraph()); err != nil {
		return nil, errors.WrapConfig(err, "compile and minify targets depend on each other's outputs")
	}

	for name, members := range cfg.Aliases {
		r.aliases[name] = append([]string(nil), members...)
	}
	for _, name := range r.AliasNames() {
		if _, err := r.Resolve(name); err != nil {
			return nil, errors.WrapConfig(err, fmt.Sprintf("alias %q", name))
		}
	}

	return r, nil
}

func (r *Registry) registerCompile(c *config.CompileConfig) error {
	for _, name := range sortedKeys(c.Targets) {
		target := c.Targets[name]
		opts := config.ResolveCompileOptions(c.Options, target.Options)

		impl, ok := sass.Lookup(opts.Implementation)
		if !ok {
			return errors.Configf("compile:%s: unknown compiler implementation %q (available: %s)",
				name, opts.Implementation, strings.Join(sass.Implementations(), ", "))
		}
		if !impl.SupportsStyle(opts.OutputStyle) {
			return errors.Configf("compile:%s: %s does not support output style %q (supported: %s)",
				name, impl.Name, opts.OutputStyle, strings.Join(impl.Styles, ", "))
		}

		step := &CompileStep{target: name, root: r.root, options: opts}
		for _, dest := range sortedKeys(target.Files) {
			step.files = append(step.files, CompileTask{
				Input:    target.Files[dest],
				Output:   dest,
				Compiler: opts.Implementation,
			})
		}
		r.add(step)
	}
	return nil
}

func (r *Registry) registerMinify(m *config.MinifyConfig) {
	for _, name := range sortedKeys(m.Targets) {
		target := m.Targets[name]
		r.add(&MinifyStep{
			target:  name,
			root:    r.root,
			file:    MinifyTask{Input: target.Src, Output: target.Dest},
			options: config.ResolveMinifyOptions(m.Options, target.Options),
		})
	}
}

func (r *Registry) add(s Step) {
	r.steps[s.Name()] = s
	r.byTask[s.Task()] = append(r.byTask[s.Task()], s.Name())
}

// indexOutputs records which step writes each file and rejects double writers.
func (r *Registry) indexOutputs() error {
	for _, name := range r.stepNames() {
		for _, out := range r.steps[name].Outputs() {
			key := filepath.Clean(out)
			if other, ok := r.producers[key]; ok {
				return errors.Configf("%s is written by both %s and %s", out, other, name)
			}
			r.producers[key] = name
		}
	}
	return nil
}

// dataflowGraph links each step to the steps producing its inputs.
func (r *Registry) dataflowGraph() topsort.Graph {
	g := make(topsort.Graph, len(r.steps))
	for name, s := range r.steps {
		deps := []string{}
		for _, in := range s.Inputs() {
			if p, ok := r.Producer(in); ok && p != name {
				deps = append(deps, p)
			}
		}
		g[name] = deps
	}
	return g
}

// Resolve expands task names, task:target references and aliases into an
// ordered list of steps. Each name is expanded in turn and the results are
// concatenated.
func (r *Registry) Resolve(names ...string) ([]Step, error) {
	var plan []Step
	for _, name := range names {
		leaves, err := topsort.Expand(r.aliases, name)
		if err != nil {
			return nil, err
		}
		for _, leaf := range leaves {
			steps, err := r.lookup(leaf)
			if err != nil {
				return nil, err
			}
			plan = append(plan, steps...)
		}
	}
	if err := r.checkOrder(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// lookup resolves a task name ("compile") to all its targets, or a
// "task:target" reference to one step.
func (r *Registry) lookup(ref string) ([]Step, error) {
	if ref == config.TaskCompile || ref == config.TaskMinify {
		names := r.byTask[ref]
		steps := make([]Step, len(names))
		for i, n := range names {
			steps[i] = r.steps[n]
		}
		return steps, nil
	}
	if s, ok := r.steps[ref]; ok {
		return []Step{s}, nil
	}
	if strings.Contains(ref, ":") {
		return nil, errors.NotFound("target", ref)
	}
	return nil, errors.NotFound("task", ref)
}

// checkOrder rejects plans in which a step reads a file that a later step
// in the same plan writes. Files produced outside the plan are read as-is.
func (r *Registry) checkOrder(plan []Step) error {
	done := make(map[string]bool, len(plan))
	pending := make(map[string]int, len(plan))
	for _, s := range plan {
		pending[s.Name()]++
	}

	for _, s := range plan {
		for _, in := range s.Inputs() {
			producer, ok := r.Producer(in)
			if !ok || producer == s.Name() || done[producer] {
				continue
			}
			if pending[producer] > 0 {
				return errors.Configf("%s reads %s before %s writes it; list %s first", s.Name(), in, producer, producer)
			}
		}
		done[s.Name()] = true
		pending[s.Name()]--
	}
	return nil
}

// Root returns the project root the step paths are relative to.
func (r *Registry) Root() string {
	return r.root
}

// Get retrieves a step by "task:target" name.
func (r *Registry) Get(name string) (Step, bool) {
	s, ok := r.steps[name]
	return s, ok
}

// Steps returns all steps sorted by name.
func (r *Registry) Steps() []Step {
	names := r.stepNames()
	steps := make([]Step, len(names))
	for i, n := range names {
		steps[i] = r.steps[n]
	}
	return steps
}

// Tasks returns the configured task names that have at least one target.
func (r *Registry) Tasks() []string {
	var tasks []string
	for _, t := range []string{config.TaskCompile, config.TaskMinify} {
		if len(r.byTask[t]) > 0 {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// AliasNames returns all alias names sorted.
func (r *Registry) AliasNames() []string {
	return sortedKeys(r.aliases)
}

// Alias returns the members of an alias.
func (r *Registry) Alias(name string) ([]string, bool) {
	members, ok := r.aliases[name]
	return append([]string(nil), members...), ok
}

// Producer returns the step that writes path, if any.
func (r *Registry) Producer(path string) (string, bool) {
	p, ok := r.producers[filepath.Clean(path)]
	return p, ok
}

func (r *Registry) stepNames() []string {
	return sortedKeys(r.steps)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
