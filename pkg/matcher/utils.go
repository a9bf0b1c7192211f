package matcher

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/types"
)

// isOfType reports whether t carries exactly flags.
func isOfType(ctx *Context, t *introspect.Type, flags introspect.TypeFlags) bool {
	return ctx.Checker.Flags(t) == flags
}

func isArrayShaped(ctx *Context, t *introspect.Type) bool {
	return ctx.Checker.IsArrayType(t)
}

func isTupleShaped(ctx *Context, t *introspect.Type) bool {
	return ctx.Checker.IsTupleType(t)
}

func isReferenceShaped(ctx *Context, t *introspect.Type) bool {
	return isOfType(ctx, t, introspect.FlagObject) &&
		ctx.Checker.ObjectFlags(t).Has(introspect.ObjectReference)
}

func isTemplateShaped(ctx *Context, t *introspect.Type) bool {
	return isOfType(ctx, t, introspect.FlagTemplateLiteral)
}

func isAnonymousShaped(ctx *Context, t *introspect.Type) bool {
	if !isOfType(ctx, t, introspect.FlagObject) {
		return false
	}
	flags := ctx.Checker.ObjectFlags(t)
	return !flags.Has(introspect.ObjectReference) && flags.Has(introspect.ObjectAnonymous)
}

func isMappedShaped(ctx *Context, t *introspect.Type) bool {
	return isOfType(ctx, t, introspect.FlagObject) &&
		ctx.Checker.ObjectFlags(t).Has(introspect.ObjectMapped)
}

// describeFlags renders the flags of t, with object flags when
// present: `Object (Reference)`.
func describeFlags(ctx *Context, t *introspect.Type) string {
	s := ctx.Checker.Flags(t).String()
	if of := ctx.Checker.ObjectFlags(t); of != 0 {
		s += " (" + of.String() + ")"
	}
	return s
}

func ensureDefined(ctx *Context, check string) (Result, bool) {
	if ctx.Type != nil {
		return Result{}, true
	}
	return Misuse(func() string {
		p := ctx.printer()
		return p.Error(
			p.Hint(check, ctx, ""),
			"this matcher expects a valid type name",
			"Expected: "+p.Expected("undefined"),
		)
	}), false
}

func ensureObject(ctx *Context, check string) (Result, bool) {
	if isOfType(ctx, ctx.Type, introspect.FlagObject) {
		return Result{}, true
	}
	return Misuse(func() string {
		p := ctx.printer()
		return p.Error(
			p.Hint(check, ctx, ""),
			"this matcher expects a valid object type",
			"Received: "+p.Received(ctx.Describe(ctx.Type)),
		)
	}), false
}

func ensureReference(ctx *Context, check string) (Result, bool) {
	if isReferenceShaped(ctx, ctx.Type) {
		return Result{}, true
	}
	return Misuse(func() string {
		p := ctx.printer()
		return p.Error(
			p.Hint(check, ctx, ""),
			"this matcher expects a type reference",
			"Received: "+p.Received(ctx.Describe(ctx.Type)),
		)
	}), false
}

func ensureTemplate(ctx *Context, check string) (Result, bool) {
	if isTemplateShaped(ctx, ctx.Type) {
		return Result{}, true
	}
	return Misuse(func() string {
		p := ctx.printer()
		return p.Error(
			p.Hint(check, ctx, ""),
			"this matcher expects a template literal",
			"Received: "+p.Received(ctx.Describe(ctx.Type)),
		)
	}), false
}

// ensureDescriptor accepts a nil descriptor (nothing pinned) or one
// of the given kind.
func ensureDescriptor(ctx *Context, check string, d *types.Descriptor, kind types.Kind) (Result, bool) {
	if d == nil || d.Kind == kind {
		return Result{}, true
	}
	return Misuse(func() string {
		p := ctx.printer()
		return p.Error(
			p.Hint(check, ctx, d.String()),
			fmt.Sprintf("this matcher expects a %s descriptor", kind),
			"Received: "+p.Received(d.Kind.String()),
		)
	}), false
}

// expectType checks the exact category flags of the observed type.
func expectType(ctx *Context, check string, flags introspect.TypeFlags) Result {
	pass := isOfType(ctx, ctx.Type, flags)
	message := func() string {
		received := flags.String()
		if !pass {
			received = ctx.Describe(ctx.Type)
		}
		return unexpectedType(ctx, check, flags.String(), received)
	}
	if pass {
		return PassWith(message)
	}
	return Fail(message)
}

// expectLiteral checks the literal category, then the value when
// the descriptor pins one.
func expectLiteral(ctx *Context, check string, flags introspect.TypeFlags, d *types.Descriptor) Result {
	if r := expectType(ctx, check, flags); !r.Passed() || !d.Pinned() {
		return r
	}

	received, _ := ctx.Checker.LiteralValue(ctx.Type)
	pass := literalEquals(d.Value, received)
	message := func() string {
		p := ctx.printer()
		expected := formatLiteral(d.Value)
		return p.Hint(check, ctx, expected) + "\n\n" + p.Compare(expected, formatLiteral(received))
	}
	if pass {
		return PassWith(message)
	}
	return Fail(message)
}

func literalEquals(expected, received any) bool {
	switch e := expected.(type) {
	case string:
		r, ok := received.(string)
		return ok && r == e
	case float64:
		r, ok := received.(float64)
		return ok && r == e
	case bool:
		r, ok := received.(bool)
		return ok && r == e
	case *big.Int:
		r, ok := received.(*big.Int)
		return ok && e != nil && r != nil && r.Cmp(e) == 0
	}
	return false
}

func formatLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case string:
		return strconv.Quote(x)
	case float64:
		return types.FormatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case *big.Int:
		return x.String() + "n"
	}
	return fmt.Sprint(v)
}

func unexpectedType(ctx *Context, check, expected, received string) string {
	p := ctx.printer()
	return p.Hint(check, ctx, "") + "\n\n" + p.Compare(expected, received)
}

// propertyPath appends a property access to path, using bracket
// notation for names that are not identifiers.
func propertyPath(path, name string) string {
	if isIdentifier(name) {
		return path + "." + name
	}
	return path + "[" + strconv.Quote(name) + "]"
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// positionalPath renders the N-th generic slot as `<_,_,T>`.
func positionalPath(path string, i int) string {
	return path + "<" + strings.Repeat("_,", i) + "T>"
}

func renderArgs(args types.Args) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name + ": " + a.Type.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func renderDescriptors(ds []*types.Descriptor) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
