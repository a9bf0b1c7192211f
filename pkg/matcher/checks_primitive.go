package matcher

import (
	"strconv"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/types"
)

func primitive(ctx *Context, check string, flags introspect.TypeFlags) Result {
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	return expectType(ctx, check, flags)
}

func IsAny(ctx *Context, _ Params) Result {
	return primitive(ctx, "isAny", introspect.FlagAny)
}

func IsUnknown(ctx *Context, _ Params) Result {
	return primitive(ctx, "isUnknown", introspect.FlagUnknown)
}

func IsVoid(ctx *Context, _ Params) Result {
	return primitive(ctx, "isVoid", introspect.FlagVoid)
}

func IsUndefined(ctx *Context, _ Params) Result {
	return primitive(ctx, "isUndefined", introspect.FlagUndefined)
}

func IsNull(ctx *Context, _ Params) Result {
	return primitive(ctx, "isNull", introspect.FlagNull)
}

func IsNever(ctx *Context, _ Params) Result {
	return primitive(ctx, "isNever", introspect.FlagNever)
}

func IsString(ctx *Context, _ Params) Result {
	return primitive(ctx, "isString", introspect.FlagString)
}

func IsNumber(ctx *Context, _ Params) Result {
	return primitive(ctx, "isNumber", introspect.FlagNumber)
}

func IsBigInt(ctx *Context, _ Params) Result {
	return primitive(ctx, "isBigInt", introspect.FlagBigInt)
}

// IsBoolean checks for `boolean`, which is the union of both boolean
// literals.
func IsBoolean(ctx *Context, _ Params) Result {
	return primitive(ctx, "isBoolean", introspect.FlagUnion|introspect.FlagBoolean)
}

// IsSymbol checks for `symbol`, or `unique symbol` when the
// descriptor asks for it.
func IsSymbol(ctx *Context, p Params) Result {
	const check = "isSymbol"
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindSymbol); !ok {
		return r
	}
	flags := introspect.FlagESSymbol
	if p.Expected != nil && p.Expected.Unique {
		flags = introspect.FlagUniqueESSymbol
	}
	return primitive(ctx, check, flags)
}

func literal(ctx *Context, check string, kind types.Kind, flags introspect.TypeFlags, d *types.Descriptor) Result {
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, d, kind); !ok {
		return r
	}
	return expectLiteral(ctx, check, flags, d)
}

// IsStringLiteral checks for a string literal, pinned to the
// descriptor's value when one is given.
func IsStringLiteral(ctx *Context, p Params) Result {
	return literal(ctx, "isStringLiteral", types.KindStringLiteral, introspect.FlagStringLiteral, p.Expected)
}

// IsNumberLiteral checks for a number literal.
func IsNumberLiteral(ctx *Context, p Params) Result {
	return literal(ctx, "isNumberLiteral", types.KindNumberLiteral, introspect.FlagNumberLiteral, p.Expected)
}

// IsBooleanLiteral checks for `true` or `false`.
func IsBooleanLiteral(ctx *Context, p Params) Result {
	return literal(ctx, "isBooleanLiteral", types.KindBooleanLiteral, introspect.FlagBooleanLiteral, p.Expected)
}

// IsBigIntLiteral checks for a bigint literal.
func IsBigIntLiteral(ctx *Context, p Params) Result {
	return literal(ctx, "isBigIntLiteral", types.KindBigIntLiteral, introspect.FlagBigIntLiteral, p.Expected)
}

// Equals compares the rendering of the observed type with p.Text.
func Equals(ctx *Context, p Params) Result {
	const check = "equals"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}

	received := ctx.Describe(ctx.Type)
	message := func() string {
		pr := ctx.printer()
		return pr.Hint(check, ctx, strconv.Quote(p.Text)) + "\n\n" + pr.Compare(p.Text, received)
	}
	if received == p.Text {
		return PassWith(message)
	}
	return Fail(message)
}

// IsDefined checks that the type name resolved to a declaration.
func IsDefined(ctx *Context, _ Params) Result {
	return definedness(ctx, "isDefined", ctx.Type != nil)
}

// IsNotDefined checks that the type name did not resolve.
func IsNotDefined(ctx *Context, _ Params) Result {
	return definedness(ctx, "isNotDefined", ctx.Type == nil)
}

func definedness(ctx *Context, check string, pass bool) Result {
	message := func() string {
		pr := ctx.printer()
		root := ctx.Derive(WithPath(ctx.Root))
		return pr.Hint(check, root, "") + "\n\n" +
			"Received: " + pr.Received(ctx.Describe(ctx.Type))
	}
	if pass {
		return PassWith(message)
	}
	return Fail(message)
}
