// Package matcher implements the structural comparison of type
// descriptors against observed types. Checks are pure functions
// over a Context; they return a Result instead of panicking, so
// that aborts and authoring errors are explicit branches.
package matcher

import (
	"digital.vasic.typeassert/pkg/introspect"
)

// Context is the state of one comparison: where in the declaration
// it happens, whether the outcome will be negated, and what is
// being observed.
type Context struct {
	// Root is the type name the assertion was created for.
	Root string

	// Path locates the inspected position, e.g. `Foo.bar<_,T>`.
	Path string

	// Negated is set for the current invocation only. Checks use
	// it to render hints; the facade applies it to the outcome.
	Negated bool

	Type        *introspect.Type
	Symbol      *introspect.Symbol
	Declaration *introspect.Declaration

	Checker introspect.Checker
	Printer *Printer
}

// ContextOption overrides a field of a derived context.
type ContextOption func(*Context)

// WithPath sets the diagnostic path.
func WithPath(path string) ContextOption {
	return func(c *Context) {
		c.Path = path
	}
}

// WithType sets the observed type.
func WithType(t *introspect.Type) ContextOption {
	return func(c *Context) {
		c.Type = t
	}
}

// WithSymbol sets the originating symbol and its declaration
// anchor.
func WithSymbol(sym *introspect.Symbol) ContextOption {
	return func(c *Context) {
		c.Symbol = sym
		c.Declaration = nil
		if sym != nil {
			c.Declaration = sym.Declaration
		}
	}
}

// WithNegated sets the negation flag.
func WithNegated(negated bool) ContextOption {
	return func(c *Context) {
		c.Negated = negated
	}
}

// Derive copies the context and applies opts to the copy. The
// receiver is never modified.
func (c *Context) Derive(opts ...ContextOption) *Context {
	child := *c
	for _, opt := range opts {
		opt(&child)
	}
	return &child
}

// Describe renders the observed type, or "undefined" when the
// type name did not resolve.
func (c *Context) Describe(t *introspect.Type) string {
	if t == nil {
		return "undefined"
	}
	return c.Checker.TypeToString(t)
}

func (c *Context) printer() *Printer {
	if c.Printer == nil {
		return plainPrinter
	}
	return c.Printer
}
