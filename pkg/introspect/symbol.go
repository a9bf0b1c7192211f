package introspect

import "fmt"

// SymbolFlags classify a symbol.
type SymbolFlags uint8

const (
	SymbolTypeAlias SymbolFlags = 1 << iota
	SymbolInterface
	SymbolProperty
	SymbolTypeParameter
)

// Position locates a declaration in its source.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders the position as file:line:column.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Declaration anchors a symbol in source, for diagnostic excerpts.
type Declaration struct {
	Name string
	Pos  Position
	Text string
}

// Symbol is a named entity: a declared type, a property or a type
// parameter. Its type is resolved on first use.
type Symbol struct {
	Name        string
	Flags       SymbolFlags
	Optional    bool
	Readonly    bool
	Declaration *Declaration

	state   resolveState
	typ     *Type
	resolve func() *Type
	onCycle func() *Type
}

// NewSymbol creates a symbol whose type is computed by resolve the
// first time it is requested. onCycle provides the type seen by a
// resolution that re-enters itself; it may be nil.
func NewSymbol(
	name string,
	flags SymbolFlags,
	decl *Declaration,
	resolve func() *Type,
	onCycle func() *Type,
) *Symbol {
	return &Symbol{
		Name:        name,
		Flags:       flags,
		Declaration: decl,
		resolve:     resolve,
		onCycle:     onCycle,
	}
}

// NewResolvedSymbol creates a symbol with a known type.
func NewResolvedSymbol(
	name string,
	flags SymbolFlags,
	decl *Declaration,
	t *Type,
) *Symbol {
	return &Symbol{
		Name:        name,
		Flags:       flags,
		Declaration: decl,
		state:       resolved,
		typ:         t,
	}
}

func (s *Symbol) resolvedType() *Type {
	switch s.state {
	case resolved:
		return s.typ
	case resolving:
		if s.onCycle != nil {
			return s.onCycle()
		}
		return nil
	}
	s.state = resolving
	t := s.resolve()
	// a cycle handler may already have settled the symbol
	if s.state == resolving {
		s.typ = t
		s.state = resolved
	}
	s.resolve = nil
	return s.typ
}

// Settle fixes the type of a symbol that is still resolving. It is
// used by cycle handlers to pin the error type.
func (s *Symbol) Settle(t *Type) {
	s.typ = t
	s.state = resolved
}
