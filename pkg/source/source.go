// Package source provides the inputs of a compilation: code read
// from a file, synthesized from a record of declarations, or given
// raw, together with the options that control how it is compiled.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies where the code of a Source comes from.
type Kind int

const (
	// KindRecord is code synthesized from named declarations.
	KindRecord Kind = iota
	// KindFile is code read from a .ts or .d.ts file.
	KindFile
	// KindRaw is code supplied as a string.
	KindRaw
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindFile:
		return "file"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrUnsupportedExtension is returned for files that are not
	// .ts or .d.ts.
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrNotAFile is returned when a file source path is not a
	// regular file.
	ErrNotAFile = errors.New("not a regular file")
)

// AllowedExtensions lists the file extensions accepted by FromFile.
var AllowedExtensions = []string{".ts", ".d.ts"}

// Options control how a source is compiled.
type Options struct {
	// CompilerOptions override the project configuration, using
	// tsconfig.json keys (strict, strictNullChecks, ...).
	CompilerOptions map[string]any `json:"compilerOptions,omitempty" yaml:"compilerOptions,omitempty"`

	// IgnoreProjectOptions skips the tsconfig.json lookup.
	IgnoreProjectOptions bool `json:"ignoreProjectOptions,omitempty" yaml:"ignoreProjectOptions,omitempty"`

	// BaseURL is the directory relative imports resolve from.
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// Raw is code prepended to the source.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Declaration is one entry of a record source:
// `type Name<Params...> = Definition;`.
type Declaration struct {
	Name       string   `json:"name" yaml:"name"`
	Params     []string `json:"params,omitempty" yaml:"params,omitempty"`
	Definition string   `json:"definition" yaml:"definition"`
}

// Source is code ready to be compiled.
type Source struct {
	Kind    Kind
	Path    string
	Options Options

	code string
}

// Code returns the source code, without Options.Raw.
func (s *Source) Code() string {
	return s.code
}

// String returns the source code.
func (s *Source) String() string {
	return s.code
}

// FromFile reads a .ts or .d.ts file. Unless set, the base URL
// defaults to the file's directory.
func FromFile(path string, opts Options) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("source %s: %w", path, ErrNotAFile)
	}

	if !hasAllowedExtension(path) {
		return nil, fmt.Errorf(
			"source %s: %w: found %q but expected one of %s",
			path, ErrUnsupportedExtension, filepath.Ext(path),
			strings.Join(AllowedExtensions, ", "),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve source %s: %w", path, err)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = filepath.Dir(abs)
	}

	return &Source{
		Kind:    KindFile,
		Path:    abs,
		Options: opts,
		code:    string(data),
	}, nil
}

func hasAllowedExtension(path string) bool {
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// FromRecord synthesizes one type alias per declaration, in order,
// and exports all of them.
func FromRecord(decls []Declaration, opts Options) *Source {
	lines := make([]string, 0, len(decls)+1)
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		if len(d.Params) > 0 {
			lines = append(lines, fmt.Sprintf(
				"type %s<%s> = %s;", d.Name, strings.Join(d.Params, ", "), d.Definition,
			))
		} else {
			lines = append(lines, fmt.Sprintf("type %s = %s;", d.Name, d.Definition))
		}
		names = append(names, d.Name)
	}
	if len(names) > 0 {
		lines = append(lines, "export { "+strings.Join(names, ", ")+" };")
	}

	return &Source{
		Kind:    KindRecord,
		Options: opts,
		code:    strings.Join(lines, "\n"),
	}
}

// FromRaw wraps code as-is.
func FromRaw(code string, opts Options) *Source {
	return &Source{
		Kind:    KindRaw,
		Options: opts,
		code:    code,
	}
}

// FullCode returns Options.Raw followed by the source code.
func (s *Source) FullCode() string {
	if s.Options.Raw == "" {
		return s.code
	}
	return s.Options.Raw + "\n" + s.code
}

// Name returns a file name for diagnostics.
func (s *Source) Name() string {
	if s.Path != "" {
		return filepath.Base(s.Path)
	}
	return "inline.ts"
}
