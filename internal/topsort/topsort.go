// Package topsort provides dependency ordering with cycle detection for
// task graphs and alias expansion.
package topsort

import (
	"fmt"
	"sort"
	"strings"
)

// Graph represents a directed graph for topological sorting.
// The keys are node names, values are lists of dependencies (edges point to dependencies).
type Graph map[string][]string

// CycleError reports a dependency cycle. Path starts and ends with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// cyclePath extracts the cycle ending at name from the DFS stack.
func cyclePath(stack []string, name string) []string {
	for i, n := range stack {
		if n == name {
			path := append([]string{}, stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}

// Sort performs topological sort on the graph, returning nodes in dependency order.
// Dependencies appear before dependents in the result.
// Returns an error if a cycle is detected or a dependency is undefined.
//
// The nodes parameter specifies which nodes to sort. If nil, all nodes in the graph are sorted.
// When nodes is provided, only those nodes and their transitive dependencies are included.
func Sort(g Graph, nodes []string) ([]string, error) {
	if nodes == nil {
		nodes = make([]string, 0, len(g))
		for name := range g {
			nodes = append(nodes, name)
		}
		sort.Strings(nodes)
	}

	var result []string
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		if inStack[name] {
			return &CycleError{Path: cyclePath(stack, name)}
		}
		if visited[name] {
			return nil
		}

		deps, exists := g[name]
		if !exists {
			return fmt.Errorf("node %q not found in graph", name)
		}

		inStack[name] = true
		stack = append(stack, name)

		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		visited[name] = true
		inStack[name] = false
		result = append(result, name)

		return nil
	}

	for _, name := range nodes {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Validate checks the graph for self-references and undefined dependencies.
// Returns nil if the graph is valid.
func Validate(g Graph) error {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, dep := range g[name] {
			if dep == name {
				return fmt.Errorf("%q depends on itself", name)
			}
			if _, ok := g[dep]; !ok {
				return fmt.Errorf("%q depends on undefined node %q", name, dep)
			}
		}
	}

	_, err := Sort(g, names)
	return err
}

// Expand flattens name into an ordered list of leaves. Composite nodes are
// looked up in composites and expanded in list order, depth first; any name
// that is not a composite is a leaf and is emitted as-is. Unlike Sort, the
// result keeps duplicates: a leaf listed twice runs twice.
func Expand(composites Graph, name string) ([]string, error) {
	var result []string
	var stack []string
	inStack := make(map[string]bool)

	var walk func(n string) error
	walk = func(n string) error {
		members, ok := composites[n]
		if !ok {
			result = append(result, n)
			return nil
		}
		if inStack[n] {
			return &CycleError{Path: cyclePath(stack, n)}
		}
		inStack[n] = true
		stack = append(stack, n)
		for _, m := range members {
			if err := walk(m); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		inStack[n] = false
		return nil
	}

	if err := walk(name); err != nil {
		return nil, err
	}
	return result, nil
}
