package matcher

import (
	"fmt"
	"strconv"
)

// HasArguments compares the type arguments of a reference. Without
// a substitution record the arguments are compared by position, in
// the order of p.Args; with one, by parameter name.
func HasArguments(ctx *Context, p Params) Result {
	const check = "hasArguments"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureReference(ctx, check); !ok {
		return r
	}

	args := ctx.Checker.TypeArguments(ctx.Type)
	if len(args) != len(p.Args) {
		return Fail(func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, renderArgs(p.Args)) + "\n\n" +
				pr.Compare(strconv.Itoa(len(p.Args)), strconv.Itoa(len(args)))
		})
	}

	mapper := ctx.Checker.Mapper(ctx.Type)
	if mapper == nil {
		for i, arg := range args {
			child := ctx.Derive(
				WithType(arg),
				WithSymbol(nil),
				WithPath(positionalPath(ctx.Path, i)),
			)
			if r := Safe(Is(child, p.Args[i].Type)); !r.Passed() {
				return r
			}
		}
		return Pass()
	}

	for _, want := range p.Args {
		arg, ok := mapper.Lookup(want.Name)
		if !ok {
			name := want.Name
			return Abort(func() string {
				pr := ctx.printer()
				return pr.Hint(check, ctx, renderArgs(p.Args)) + "\n\n" +
					fmt.Sprintf("%s doesn't exist in the received type", name) + "\n\n" +
					"Received: " + pr.Received(fmt.Sprint(mapper.Names()))
			})
		}

		child := ctx.Derive(
			WithType(arg),
			WithSymbol(nil),
			WithPath(ctx.Path+"<"+want.Name+">"),
		)
		if r := Is(child, want.Type); !r.Passed() {
			return r
		}
	}
	return Pass()
}

// HasNbArguments checks the number of type arguments of a
// reference.
func HasNbArguments(ctx *Context, p Params) Result {
	const check = "hasNbArguments"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureReference(ctx, check); !ok {
		return r
	}

	received := len(ctx.Checker.TypeArguments(ctx.Type))
	message := func() string {
		pr := ctx.printer()
		return pr.Hint(check, ctx, strconv.Itoa(p.Count)) + "\n\n" +
			pr.Compare(strconv.Itoa(p.Count), strconv.Itoa(received))
	}
	if received == p.Count {
		return PassWith(message)
	}
	return Fail(message)
}

// IsTypeReference checks for a reference type, then optionally its
// target name and its arguments.
func IsTypeReference(ctx *Context, p Params) Result {
	const check = "isTypeReference"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureReference(ctx, check); !ok {
		return r
	}

	if p.Name != "" {
		received := ctx.Checker.AliasName(ctx.Type)
		if received != p.Name {
			return Abort(func() string {
				pr := ctx.printer()
				return pr.Hint(check, ctx, p.Name) + "\n\n" + pr.Compare(p.Name, received)
			})
		}
	}

	if p.Args == nil {
		return PassWith(func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, p.Name) + "\n\n" + "Received: " + pr.Received(ctx.Describe(ctx.Type))
		})
	}
	return HasArguments(ctx, p)
}
