package suite

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores suite definitions by name. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	suites  map[string]*Definition
	sources []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		suites: make(map[string]*Definition),
	}
}

// Register adds a definition. Returns an error if the definition is
// invalid or a suite with the same name is already registered.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[def.Name]; exists {
		return fmt.Errorf("suite already registered: %s", def.Name)
	}
	r.suites[def.Name] = def
	return nil
}

// LoadFile registers every suite of a file.
func (r *Registry) LoadFile(path string) error {
	defs, err := LoadFile(path)
	if err != nil {
		return err
	}
	return r.registerAll(path, defs)
}

// LoadDir registers every suite file of a directory.
func (r *Registry) LoadDir(dir string) error {
	defs, err := LoadDir(dir)
	if err != nil {
		return err
	}
	return r.registerAll(dir, defs)
}

func (r *Registry) registerAll(from string, defs []*Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	r.mu.Lock()
	r.sources = append(r.sources, from)
	r.mu.Unlock()
	return nil
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.suites[name]
	if !exists {
		return nil, fmt.Errorf("suite not found: %s", name)
	}
	return def, nil
}

// List returns all definitions sorted by name.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, 0, len(r.suites))
	for _, def := range r.suites {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	defs := r.List()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// ByCategory returns the definitions of a category sorted by name.
func (r *Registry) ByCategory(category string) []*Definition {
	var result []*Definition
	for _, def := range r.List() {
		if def.Category == category {
			result = append(result, def)
		}
	}
	return result
}

// ValidateDependencies checks that every dependency is registered.
func (r *Registry) ValidateDependencies() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range sortedKeys(r.suites) {
		for _, dep := range r.suites[name].Dependencies {
			if _, ok := r.suites[dep]; !ok {
				return fmt.Errorf(
					"suite %s depends on unknown suite: %s", name, dep,
				)
			}
		}
	}
	return nil
}

// DependencyOrder returns the definitions so that every suite comes
// after its dependencies. Independent suites keep name order.
func (r *Registry) DependencyOrder() ([]*Definition, error) {
	if err := r.ValidateDependencies(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return topologicalSort(r.suites)
}

// Count returns the number of registered suites.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}

// Sources returns the files and directories loaded so far.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]string, len(r.sources))
	copy(result, r.sources)
	return result
}

// Clear removes every definition.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites = make(map[string]*Definition)
	r.sources = nil
}

func sortedKeys(m map[string]*Definition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
