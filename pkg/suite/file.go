package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions read by LoadDir.
var Extensions = []string{".yaml", ".yml", ".json"}

// File is the document form of a suite file. A file holds either a
// list of suites or a single suite at the top level.
type File struct {
	Version  string         `json:"version,omitempty" yaml:"version,omitempty"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Suites   []Definition   `json:"suites,omitempty" yaml:"suites,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// LoadFile reads the suites of a YAML or JSON file. JSON is read as
// YAML, so both share the descriptor syntax.
func LoadFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse suite file %s: %w", path, err)
	}
	suites := file.Suites
	if len(suites) == 0 {
		var single Definition
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse suite file %s: %w", path, err)
		}
		suites = []Definition{single}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve suite file %s: %w", path, err)
	}

	defs := make([]*Definition, 0, len(suites))
	for i := range suites {
		def := &suites[i]
		def.Path = abs
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("suite %d in %s: %w", i, path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadDir reads every suite file of a directory, in file name
// order. Subdirectories are not visited.
func LoadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !hasSuiteExtension(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var defs []*Definition
	for _, name := range names {
		loaded, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

func hasSuiteExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
