// Package assertion is the entry point for asserting the shape of
// declared types. A Selector wraps a loaded program; each named type
// it selects becomes an Assertion exposing one method per check.
//
// Negation is a property of a single call: Not returns a negated copy
// and never changes the assertion it was called on.
package assertion

import (
	"errors"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/load"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/source"
)

// ErrUnknownCheck is returned by Invoke for a check name the engine
// does not know.
var ErrUnknownCheck = errors.New("unknown check")

// TestingT is the subset of *testing.T used to report failures.
// Implementations that also provide Helper() have it called before
// every report.
type TestingT interface {
	Errorf(format string, args ...any)
}

type helper interface {
	Helper()
}

// Selector resolves the exported types of a program into
// assertions.
type Selector struct {
	program *load.Program
	engine  *matcher.Engine
	printer *matcher.Printer
	logger  logging.Logger
	suite   string
	t       TestingT
}

// NewSelector creates a Selector that reports through return values
// only.
func NewSelector(program *load.Program, opts ...Option) *Selector {
	s := &Selector{
		program: program,
		engine:  matcher.NewEngine(),
		printer: matcher.AutoPrinter(),
		logger:  logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a Selector bound to t: failing checks call t.Errorf
// with the diagnostic message.
func New(t TestingT, program *load.Program, opts ...Option) *Selector {
	s := NewSelector(program, opts...)
	s.t = t
	return s
}

// FromFile loads a .ts or .d.ts file and selects from it.
func FromFile(path string, srcOpts source.Options, opts ...Option) (*Selector, error) {
	s := NewSelector(nil, opts...)
	program, err := load.FromFile(path, srcOpts, load.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.program = program
	return s, nil
}

// FromRecord loads one exported alias per declaration and selects
// from it.
func FromRecord(decls []source.Declaration, srcOpts source.Options, opts ...Option) (*Selector, error) {
	s := NewSelector(nil, opts...)
	program, err := load.FromRecord(decls, srcOpts, load.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.program = program
	return s, nil
}

// FromRaw loads code given as a string and selects from it.
func FromRaw(code string, srcOpts source.Options, opts ...Option) (*Selector, error) {
	s := NewSelector(nil, opts...)
	program, err := load.FromRaw(code, srcOpts, load.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.program = program
	return s, nil
}

// Bind returns a copy of the selector that reports failures to t.
func (s *Selector) Bind(t TestingT) *Selector {
	c := *s
	c.t = t
	return &c
}

// Program returns the loaded program.
func (s *Selector) Program() *load.Program {
	return s.program
}

// Engine returns the check table, for registering custom checks.
func (s *Selector) Engine() *matcher.Engine {
	return s.engine
}

// Diagnostics returns the diagnostics of the loaded program.
func (s *Selector) Diagnostics() load.Diagnostics {
	return s.program.Diagnostics
}

// Type selects the exported type called name. An unknown name still
// yields an assertion; only isNotDefined passes on it.
func (s *Selector) Type(name string) *Assertion {
	var (
		sym *introspect.Symbol
		typ *introspect.Type
	)
	checker := s.program.Checker()
	if found, ok := s.program.Lookup(name); ok {
		sym = found
		typ = checker.DeclaredTypeOf(sym)
	}

	root := &matcher.Context{
		Root:    name,
		Path:    name,
		Type:    typ,
		Checker: checker,
		Printer: s.printer,
	}
	root = root.Derive(matcher.WithSymbol(sym))
	return &Assertion{sel: s, ctx: root}
}

func (s *Selector) helper() {
	if h, ok := s.t.(helper); ok {
		h.Helper()
	}
}

func (s *Selector) report(msg string) {
	if s.t == nil {
		return
	}
	s.helper()
	s.t.Errorf("%s", msg)
}
