package matcher

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/types"
)

// IsObject checks for an object type. A mapped descriptor delegates
// to IsMappedType, an anonymous descriptor with members to
// IsAnonymousObject.
func IsObject(ctx *Context, p Params) Result {
	const check = "isObject"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindObject); !ok {
		return r
	}

	r := expectType(ctx, check, introspect.FlagObject)
	if !r.Passed() || p.Expected == nil {
		return r
	}
	if p.Expected.ObjectKind == types.ObjectMapped {
		return IsMappedType(ctx, p)
	}
	if p.Expected.Properties == nil && p.Expected.Indexes == nil {
		return r
	}
	return IsAnonymousObject(ctx, p)
}

// IsAnonymousObject checks for an object literal type. Indexes and
// properties, when given, are compared as closed sets.
func IsAnonymousObject(ctx *Context, p Params) Result {
	const check = "isAnonymousObject"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindObject); !ok {
		return r
	}
	if p.Expected != nil && p.Expected.ObjectKind != types.ObjectAnonymous {
		return Misuse(func() string {
			pr := ctx.printer()
			return pr.Error(pr.Hint(check, ctx, p.Expected.String()),
				"this matcher expects an anonymous object descriptor", "")
		})
	}

	if !isAnonymousShaped(ctx, ctx.Type) {
		return Fail(func() string {
			return unexpectedType(ctx, check, "Object (Anonymous)", describeFlags(ctx, ctx.Type))
		})
	}
	if p.Expected == nil {
		return Pass()
	}

	return FirstFailure(
		func() Result { return checkIndexes(ctx, check, p.Expected) },
		func() Result { return checkProperties(ctx, check, p.Expected) },
	)
}

func checkIndexes(ctx *Context, check string, d *types.Descriptor) Result {
	if d.Indexes == nil {
		return Pass()
	}

	infos := ctx.Checker.IndexInfos(ctx.Type)
	if len(infos) != len(d.Indexes) {
		return Abort(func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, d.String()) + "\n\n" + "index signature count mismatch\n\n" +
				pr.Compare(strconv.Itoa(len(d.Indexes)), strconv.Itoa(len(infos)))
		})
	}

	for i, info := range infos {
		i, info, want := i, info, d.Indexes[i]
		path := fmt.Sprintf("%s[%s: %s]", ctx.Path, info.KeyName, ctx.Describe(info.KeyType))
		key := ctx.Derive(WithType(info.KeyType), WithSymbol(nil), WithPath(path))
		value := ctx.Derive(WithType(info.ValueType), WithSymbol(nil), WithPath(path))

		r := FirstFailure(
			func() Result { return Safe(Is(key, want.Key)) },
			func() Result { return Safe(Is(value, want.Value)) },
		)
		if !r.Passed() {
			return r.Prefixed(fmt.Sprintf("Invalid index signature #%d: ", i))
		}
	}
	return Pass()
}

func checkProperties(ctx *Context, check string, d *types.Descriptor) Result {
	if d.Properties == nil {
		return Pass()
	}

	props := ctx.Checker.Properties(ctx.Type)
	expectedNames := make([]string, len(d.Properties))
	for i, prop := range d.Properties {
		expectedNames[i] = prop.Name
	}
	receivedNames := make([]string, len(props))
	byName := make(map[string]*introspect.Symbol, len(props))
	for i, prop := range props {
		receivedNames[i] = prop.Name
		byName[prop.Name] = prop
	}

	keysMessage := func(reason string) func() string {
		return func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, d.String()) + "\n\n" + reason + "\n\n" +
				pr.Compare(strings.Join(expectedNames, ", "), strings.Join(receivedNames, ", "))
		}
	}

	if len(props) != len(d.Properties) {
		return Abort(keysMessage(fmt.Sprintf(
			"expected %d properties, received %d", len(d.Properties), len(props),
		)))
	}
	for _, want := range d.Properties {
		if _, ok := byName[want.Name]; !ok {
			return Abort(keysMessage(fmt.Sprintf("property %q is missing", want.Name)))
		}
	}

	for _, want := range d.Properties {
		sym := byName[want.Name]
		child := ctx.Derive(
			WithType(ctx.Checker.TypeOfSymbol(sym)),
			WithSymbol(sym),
			WithPath(propertyPath(ctx.Path, want.Name)),
		)
		if r := Safe(Is(child, want.Type)); !r.Passed() {
			return r.Prefixed(fmt.Sprintf("Invalid type for %q: ", want.Name))
		}
	}
	return Pass()
}

// IsMappedType checks for a mapped object type. The key set and
// template of the descriptor are not compared.
func IsMappedType(ctx *Context, p Params) Result {
	const check = "isMappedType"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindObject); !ok {
		return r
	}
	if r, ok := ensureObject(ctx, check); !ok {
		r.Outcome = Aborted
		return r
	}

	if !isMappedShaped(ctx, ctx.Type) {
		return Abort(func() string {
			pr := ctx.printer()
			return pr.Error(
				pr.Hint(check, ctx, ""),
				"this matcher expects a mapped type",
				"Received: "+pr.Received(describeFlags(ctx, ctx.Type)),
			)
		})
	}

	return PassWith(func() string {
		pr := ctx.printer()
		return pr.Hint(check, ctx, "") + "\n\n" + "Received: " + pr.Received(ctx.Describe(ctx.Type))
	})
}
