// Package suite provides declarative assertion suites: a source of
// type declarations plus the checks to run against its exported
// types, read from YAML or JSON files and kept in a registry.
package suite

import (
	"errors"
	"fmt"
	"path/filepath"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/source"
)

// ErrInvalidSuite is returned for definitions that cannot be run.
var ErrInvalidSuite = errors.New("invalid suite")

// Definition is one suite: where its types come from and what is
// asserted about them.
type Definition struct {
	// Name identifies the suite in a registry.
	Name string `json:"name" yaml:"name"`

	// Description is a human-readable summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Category groups related suites.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Dependencies lists suites that must run first.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Source selects the code under test.
	Source Source `json:"source" yaml:"source"`

	// Assertions are evaluated in order.
	Assertions []assertion.Definition `json:"assertions" yaml:"assertions"`

	// Path is the file the definition was read from, if any.
	Path string `json:"-" yaml:"-"`
}

// Source selects the code of a suite. Exactly one of File, Raw and
// Record must be set.
type Source struct {
	File    string               `json:"file,omitempty" yaml:"file,omitempty"`
	Raw     string               `json:"raw,omitempty" yaml:"raw,omitempty"`
	Record  []source.Declaration `json:"record,omitempty" yaml:"record,omitempty"`
	Options source.Options       `json:"options,omitempty" yaml:"options,omitempty"`
}

// Kind returns the source kind selected by the set field.
func (s Source) Kind() source.Kind {
	switch {
	case s.File != "":
		return source.KindFile
	case s.Record != nil:
		return source.KindRecord
	default:
		return source.KindRaw
	}
}

// Build creates the source to compile. A relative file path is
// resolved against the directory of the suite file.
func (d *Definition) Build() (*source.Source, error) {
	s := d.Source
	switch s.Kind() {
	case source.KindFile:
		path := s.File
		if !filepath.IsAbs(path) && d.Path != "" {
			path = filepath.Join(filepath.Dir(d.Path), path)
		}
		return source.FromFile(path, s.Options)
	case source.KindRecord:
		return source.FromRecord(s.Record, s.Options), nil
	default:
		return source.FromRaw(s.Raw, s.Options), nil
	}
}

// ValidationError is one problem found in a definition.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("assertions[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Check returns every problem of the definition.
func (d *Definition) Check() []ValidationError {
	var errs []ValidationError

	if d.Name == "" {
		errs = append(errs, ValidationError{
			Field: "name", Message: "suite name is required", Index: -1,
		})
	}

	set := 0
	if d.Source.File != "" {
		set++
	}
	if d.Source.Raw != "" {
		set++
	}
	if d.Source.Record != nil {
		set++
	}
	if set != 1 {
		errs = append(errs, ValidationError{
			Field: "source", Message: "exactly one of file, raw and record is required", Index: -1,
		})
	}

	for i, a := range d.Assertions {
		if a.Type == "" {
			errs = append(errs, ValidationError{
				Field: "type", Message: "type name is required", Index: i,
			})
		}
		if a.Check == "" {
			errs = append(errs, ValidationError{
				Field: "check", Message: "check name is required", Index: i,
			})
		}
	}

	return errs
}

// Validate wraps the first problem of the definition in
// ErrInvalidSuite.
func (d *Definition) Validate() error {
	errs := d.Check()
	if len(errs) == 0 {
		return nil
	}
	name := d.Name
	if name == "" {
		name = d.Path
	}
	return fmt.Errorf("%w %s: %s", ErrInvalidSuite, name, errs[0])
}
