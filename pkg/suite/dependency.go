package suite

import (
	"fmt"
	"sort"
	"strings"
)

// topologicalSort orders suites using Kahn's algorithm. It returns
// an error if a cycle is detected.
func topologicalSort(suites map[string]*Definition) ([]*Definition, error) {
	inDegree := make(map[string]int, len(suites))
	dependents := make(map[string][]string, len(suites))

	for name, def := range suites {
		if _, exists := inDegree[name]; !exists {
			inDegree[name] = 0
		}
		for _, dep := range def.Dependencies {
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	ordered := make([]*Definition, 0, len(suites))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if def, exists := suites[name]; exists {
			ordered = append(ordered, def)
		}

		next := dependents[name]
		sort.Strings(next)
		for _, dep := range next {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(ordered) != len(suites) {
		return nil, fmt.Errorf("circular dependency detected: %s", detectCycle(suites))
	}
	return ordered, nil
}

// detectCycle describes one dependency cycle, found with an
// iterative three-colour DFS.
func detectCycle(suites map[string]*Definition) string {
	const (
		white = iota
		gray
		black
	)
	colour := make(map[string]int, len(suites))

	type frame struct {
		name  string
		deps  []string
		index int
	}

	for _, start := range sortedKeys(suites) {
		if colour[start] != white {
			continue
		}
		stack := []frame{{name: start, deps: sortedDeps(suites, start)}}
		colour[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.index >= len(top.deps) {
				colour[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.index]
			top.index++

			switch colour[dep] {
			case gray:
				path := []string{dep}
				for i := len(stack) - 1; i >= 0; i-- {
					path = append(path, stack[i].name)
					if stack[i].name == dep {
						break
					}
				}
				return strings.Join(path, " -> ")
			case white:
				colour[dep] = gray
				stack = append(stack, frame{name: dep, deps: sortedDeps(suites, dep)})
			}
		}
	}
	return "unknown cycle"
}

func sortedDeps(suites map[string]*Definition, name string) []string {
	def, ok := suites[name]
	if !ok {
		return nil
	}
	deps := make([]string, len(def.Dependencies))
	copy(deps, def.Dependencies)
	sort.Strings(deps)
	return deps
}
