package matcher

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/types"
)

func newContext(u *introspect.Universe, t *introspect.Type) *Context {
	return &Context{
		Root:    "Subject",
		Path:    "Subject",
		Type:    t,
		Checker: u,
		Printer: NewPrinter(false),
	}
}

func object(u *introspect.Universe, props []*introspect.Symbol, indexes []introspect.IndexInfo) *introspect.Type {
	return u.NewObject(func() ([]*introspect.Symbol, []introspect.IndexInfo) {
		return props, indexes
	})
}

func member(name string, t *introspect.Type) *introspect.Symbol {
	return introspect.NewResolvedSymbol(name, introspect.SymbolProperty, nil, t)
}

func TestIs_Primitives(t *testing.T) {
	u := introspect.NewUniverse()

	observed := map[string]*introspect.Type{
		"any":       u.Any,
		"unknown":   u.Unknown,
		"void":      u.Void,
		"undefined": u.Undefined,
		"null":      u.Null,
		"never":     u.Never,
		"string":    u.String,
		"number":    u.Number,
		"boolean":   u.Boolean,
		"bigint":    u.BigInt,
		"symbol":    u.ESSymbol,
	}
	descriptors := map[string]*types.Descriptor{
		"any":       types.Any(),
		"unknown":   types.Unknown(),
		"void":      types.Void(),
		"undefined": types.Undefined(),
		"null":      types.Null(),
		"never":     types.Never(),
		"string":    types.String(),
		"number":    types.Number(),
		"boolean":   types.Boolean(),
		"bigint":    types.BigInt(),
		"symbol":    types.Symbol(),
	}

	for dname, d := range descriptors {
		for tname, typ := range observed {
			t.Run(dname+"/"+tname, func(t *testing.T) {
				r := Is(newContext(u, typ), d)
				if dname == tname {
					assert.Equal(t, Passed, r.Outcome)
				} else {
					assert.Equal(t, Failed, r.Outcome, r.Message())
				}
			})
		}
	}
}

func TestIs_UniqueSymbol(t *testing.T) {
	u := introspect.NewUniverse()
	unique := u.UniqueSymbol("tag")

	assert.True(t, Is(newContext(u, unique), types.UniqueSymbol()).Passed())
	assert.False(t, Is(newContext(u, unique), types.Symbol()).Passed())
	assert.False(t, Is(newContext(u, u.ESSymbol), types.UniqueSymbol()).Passed())
}

func TestIs_Literals(t *testing.T) {
	u := introspect.NewUniverse()

	tests := []struct {
		name string
		typ  *introspect.Type
		desc *types.Descriptor
		pass bool
	}{
		{"unpinned string", u.StringLiteral("a"), types.StringLiteral(), true},
		{"pinned string", u.StringLiteral("a"), types.StringLiteral("a"), true},
		{"wrong string", u.StringLiteral("a"), types.StringLiteral("b"), false},
		{"string is not literal", u.String, types.StringLiteral(), false},
		{"number", u.NumberLiteral(42), types.NumberLiteral(42), true},
		{"wrong number", u.NumberLiteral(42), types.NumberLiteral(4), false},
		{"boolean true", u.True, types.BooleanLiteral(true), true},
		{"boolean false", u.False, types.BooleanLiteral(true), false},
		{"unpinned boolean", u.False, types.BooleanLiteral(), true},
		{"bigint", u.BigIntLiteral(big.NewInt(10)), types.BigIntLiteral(big.NewInt(10)), true},
		{"wrong bigint", u.BigIntLiteral(big.NewInt(10)), types.BigIntLiteral(big.NewInt(11)), false},
		{"number literal is not string literal", u.NumberLiteral(1), types.StringLiteral(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Is(newContext(u, tt.typ), tt.desc)
			assert.Equal(t, tt.pass, r.Passed(), r.Message())
		})
	}
}

func TestIsStringLiteral_WrongValueMessage(t *testing.T) {
	u := introspect.NewUniverse()

	r := IsStringLiteral(newContext(u, u.StringLiteral("Hello World!")), Params{
		Expected: types.StringLiteral("foo bar"),
	})

	require.Equal(t, Failed, r.Outcome)
	msg := r.Message()
	assert.Contains(t, msg, `expect(Subject).isStringLiteral("foo bar")`)
	assert.Contains(t, msg, `Expected: "foo bar"`)
	assert.Contains(t, msg, `Received: "Hello World!"`)
}

func TestEnsureDefined_UndefinedTypeIsMisuse(t *testing.T) {
	u := introspect.NewUniverse()

	r := IsString(newContext(u, nil), Params{})

	assert.Equal(t, Misused, r.Outcome)
	assert.Contains(t, r.Message(), "this matcher expects a valid type name")
}

func TestEnsureDescriptor_WrongKindIsMisuse(t *testing.T) {
	u := introspect.NewUniverse()

	r := IsStringLiteral(newContext(u, u.StringLiteral("a")), Params{Expected: types.Number()})

	assert.Equal(t, Misused, r.Outcome)
	assert.Contains(t, r.Message(), "this matcher expects a StringLiteral descriptor")
}

func TestIs_UnhandledKinds(t *testing.T) {
	u := introspect.NewUniverse()

	for _, d := range []*types.Descriptor{
		types.Enum(),
		types.EnumLiteral(1),
		types.Intersection(types.String()),
	} {
		t.Run(d.Kind.String(), func(t *testing.T) {
			r := Is(newContext(u, u.String), d)
			assert.Equal(t, Misused, r.Outcome)
			assert.Contains(t, r.Message(), "no matcher found for the expected type "+d.Kind.String())
		})
	}

	assert.Equal(t, Misused, Is(newContext(u, u.String), nil).Outcome)
}

func TestIsDefined(t *testing.T) {
	u := introspect.NewUniverse()

	assert.True(t, IsDefined(newContext(u, u.String), Params{}).Passed())
	assert.False(t, IsDefined(newContext(u, nil), Params{}).Passed())
	assert.True(t, IsNotDefined(newContext(u, nil), Params{}).Passed())
	assert.False(t, IsNotDefined(newContext(u, u.String), Params{}).Passed())
}

func TestEquals(t *testing.T) {
	u := introspect.NewUniverse()
	union := u.NewUnion([]*introspect.Type{u.String, u.Number})

	assert.True(t, Equals(newContext(u, union), Params{Text: "string | number"}).Passed())

	r := Equals(newContext(u, union), Params{Text: "number | string"})
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Received: string | number")
}

func TestIsArray(t *testing.T) {
	u := introspect.NewUniverse()
	arr := u.NewArray(u.String, false)

	assert.True(t, IsArray(newContext(u, arr), Params{}).Passed())
	assert.True(t, Is(newContext(u, arr), types.Array(types.String())).Passed())
	assert.True(t, Is(newContext(u, arr), types.Array(nil)).Passed())

	r := Is(newContext(u, arr), types.Array(types.Number()))
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Subject<T>")

	assert.Equal(t, Failed, IsArray(newContext(u, u.String), Params{}).Outcome)
	assert.Equal(t, Failed, IsArray(newContext(u, u.NewTuple([]*introspect.Type{u.String}, nil, false)), Params{}).Outcome)
}

func TestIsTuple(t *testing.T) {
	u := introspect.NewUniverse()
	tuple := u.NewTuple([]*introspect.Type{u.String, u.Number}, nil, false)

	t.Run("matching elements", func(t *testing.T) {
		r := Is(newContext(u, tuple), types.Tuple(types.String(), types.Number()))
		assert.True(t, r.Passed(), r.Message())
	})

	t.Run("shape only", func(t *testing.T) {
		assert.True(t, IsTuple(newContext(u, tuple), Params{}).Passed())
		assert.Equal(t, Failed, IsTuple(newContext(u, u.NewArray(u.String, false)), Params{}).Outcome)
	})

	t.Run("arity mismatch aborts", func(t *testing.T) {
		r := Is(newContext(u, tuple), types.Tuple(types.String()))
		assert.Equal(t, Aborted, r.Outcome)
		assert.Contains(t, r.Message(), "tuple length mismatch")
	})

	t.Run("first mismatch short-circuits", func(t *testing.T) {
		// the second element would be misuse if it were evaluated
		r := Is(newContext(u, tuple), types.Tuple(types.Number(), types.Enum()))
		assert.Equal(t, Failed, r.Outcome)
		assert.Contains(t, r.Message(), "Subject[0]")
	})

	t.Run("explicit empty", func(t *testing.T) {
		empty := u.NewTuple(nil, nil, false)
		assert.True(t, Is(newContext(u, empty), types.Tuple([]*types.Descriptor{}...)).Passed())
	})
}

func TestIsUnion(t *testing.T) {
	u := introspect.NewUniverse()
	a, b, c := u.StringLiteral("a"), u.StringLiteral("b"), u.StringLiteral("c")
	ab := u.NewUnion([]*introspect.Type{a, b})
	abc := u.NewUnion([]*introspect.Type{a, b, c})

	t.Run("reordered members", func(t *testing.T) {
		r := Is(newContext(u, ab), types.Union(types.StringLiteral("b"), types.StringLiteral("a")))
		assert.True(t, r.Passed(), r.Message())
	})

	t.Run("uncovered observed member aborts", func(t *testing.T) {
		r := Is(newContext(u, abc), types.Union(types.StringLiteral("a"), types.StringLiteral("b")))
		assert.Equal(t, Aborted, r.Outcome)
		assert.Contains(t, r.Message(), `Got unexpected type "c" in union type`)
	})

	t.Run("unmatched expected member aborts", func(t *testing.T) {
		r := Is(newContext(u, ab), types.Union(
			types.StringLiteral("a"), types.StringLiteral("b"), types.StringLiteral("z"),
		))
		assert.Equal(t, Aborted, r.Outcome)
		assert.Contains(t, r.Message(), `not found in the union: "z"`)
	})

	t.Run("duplicate matches allowed", func(t *testing.T) {
		r := Is(newContext(u, abc), types.Union(types.StringLiteral(), types.StringLiteral("a")))
		assert.True(t, r.Passed(), r.Message())
	})

	t.Run("not a union", func(t *testing.T) {
		assert.Equal(t, Failed, IsUnion(newContext(u, a), Params{}).Outcome)
		assert.Equal(t, Failed, IsUnion(newContext(u, u.Boolean), Params{}).Outcome)
	})

	t.Run("nested misuse is a non-match", func(t *testing.T) {
		r := Is(newContext(u, ab), types.Union(types.Enum()))
		assert.Equal(t, Aborted, r.Outcome)
	})
}

func TestIsIntersection(t *testing.T) {
	u := introspect.NewUniverse()
	left := object(u, []*introspect.Symbol{member("a", u.String)}, nil)
	right := object(u, []*introspect.Symbol{member("b", u.Number)}, nil)
	both := u.NewIntersection([]*introspect.Type{left, right})

	assert.True(t, IsIntersection(newContext(u, both), Params{}).Passed())
	assert.Equal(t, Failed, IsIntersection(newContext(u, left), Params{}).Outcome)

	r := IsIntersection(newContext(u, both), Params{Expected: types.Intersection(types.Object())})
	assert.Equal(t, Misused, r.Outcome)
	assert.Contains(t, r.Message(), "intersection member comparison is not implemented")
}

func TestIsTemplateLiteral(t *testing.T) {
	u := introspect.NewUniverse()
	tmpl := u.NewTemplate([]string{"Hello ", "!"}, []*introspect.Type{u.String})

	tests := []struct {
		name    string
		desc    *types.Descriptor
		outcome Outcome
		message string
	}{
		{
			name:    "matching sequence",
			desc:    types.TemplateLiteral(types.Text("Hello "), types.Hole(types.String()), types.Text("!")),
			outcome: Passed,
		},
		{
			name:    "wrong text",
			desc:    types.TemplateLiteral(types.Text("Hi "), types.Hole(types.String()), types.Text("!")),
			outcome: Aborted,
			message: "text mismatch at segment 0",
		},
		{
			name:    "wrong hole",
			desc:    types.TemplateLiteral(types.Text("Hello "), types.Hole(types.Number()), types.Text("!")),
			outcome: Aborted,
			message: "Subject[1]",
		},
		{
			name:    "length mismatch",
			desc:    types.TemplateLiteral(types.Text("Hello "), types.Hole(types.String())),
			outcome: Aborted,
			message: "template length mismatch",
		},
		{
			name:    "kind mismatch",
			desc:    types.TemplateLiteral(types.Hole(types.String()), types.Text("Hello "), types.Text("!")),
			outcome: Aborted,
			message: "segment kind mismatch at segment 0",
		},
		{
			name:    "explicit empty",
			desc:    types.TemplateLiteral([]types.Segment{}...),
			outcome: Aborted,
		},
		{
			name:    "shape only",
			desc:    types.TemplateLiteral(),
			outcome: Passed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Is(newContext(u, tmpl), tt.desc)
			assert.Equal(t, tt.outcome, r.Outcome, r.Message())
			if tt.message != "" {
				assert.Contains(t, r.Message(), tt.message)
			}
		})
	}

	assert.Equal(t, Failed, IsTemplateLiteral(newContext(u, u.String), Params{}).Outcome)
}

func TestIsTemplateLiteral_DropsEmptyTexts(t *testing.T) {
	u := introspect.NewUniverse()
	tmpl := u.NewTemplate([]string{"", "-", ""}, []*introspect.Type{u.String, u.Number})

	r := Is(newContext(u, tmpl), types.TemplateLiteral(
		types.Hole(types.String()), types.Text("-"), types.Hole(types.Number()),
	))

	assert.True(t, r.Passed(), r.Message())
}

func TestIsAnonymousObject(t *testing.T) {
	u := introspect.NewUniverse()
	tuple := u.NewTuple([]*introspect.Type{u.String, u.Number}, nil, false)
	obj := object(u, []*introspect.Symbol{
		member("foo", u.StringLiteral("bar")),
		member("bar", u.Boolean),
		member("baz", tuple),
	}, nil)

	exact := types.AnonymousObject(types.Shape{Properties: []types.Property{
		types.Prop("baz", types.Tuple(types.String(), types.Number())),
		types.Prop("foo", types.StringLiteral("bar")),
		types.Prop("bar", types.Boolean()),
	}})

	t.Run("exact key set", func(t *testing.T) {
		r := Is(newContext(u, obj), exact)
		assert.True(t, r.Passed(), r.Message())
	})

	t.Run("missing expected property", func(t *testing.T) {
		d := types.AnonymousObject(types.Shape{Properties: []types.Property{
			types.Prop("foo", types.StringLiteral("bar")),
			types.Prop("bar", types.Boolean()),
		}})
		r := Is(newContext(u, obj), d)
		assert.Equal(t, Aborted, r.Outcome)
		assert.Contains(t, r.Message(), "expected 2 properties, received 3")
	})

	t.Run("unknown expected property", func(t *testing.T) {
		d := types.AnonymousObject(types.Shape{Properties: []types.Property{
			types.Prop("foo", types.StringLiteral("bar")),
			types.Prop("bar", types.Boolean()),
			types.Prop("qux", types.String()),
		}})
		r := Is(newContext(u, obj), d)
		assert.Equal(t, Aborted, r.Outcome)
		assert.Contains(t, r.Message(), `property "qux" is missing`)
	})

	t.Run("wrong property type", func(t *testing.T) {
		d := types.AnonymousObject(types.Shape{Properties: []types.Property{
			types.Prop("foo", types.StringLiteral("baz")),
			types.Prop("bar", types.Boolean()),
			types.Prop("baz", types.Tuple(types.String(), types.Number())),
		}})
		r := Is(newContext(u, obj), d)
		assert.Equal(t, Failed, r.Outcome)
		assert.Contains(t, r.Message(), `Invalid type for "foo": `)
		assert.Contains(t, r.Message(), "Subject.foo")
	})

	t.Run("nested abort becomes a failure", func(t *testing.T) {
		d := types.AnonymousObject(types.Shape{Properties: []types.Property{
			types.Prop("foo", types.StringLiteral("bar")),
			types.Prop("bar", types.Boolean()),
			types.Prop("baz", types.Tuple(types.String())),
		}})
		r := Is(newContext(u, obj), d)
		assert.Equal(t, Failed, r.Outcome)
	})

	t.Run("reference is not anonymous", func(t *testing.T) {
		assert.Equal(t, Failed, IsAnonymousObject(newContext(u, tuple), Params{}).Outcome)
	})
}

func TestIsAnonymousObject_Indexes(t *testing.T) {
	u := introspect.NewUniverse()
	obj := object(u, nil, []introspect.IndexInfo{
		{KeyName: "x", KeyType: u.String, ValueType: u.Number},
		{KeyName: "y", KeyType: u.ESSymbol, ValueType: u.String},
	})

	r := Is(newContext(u, obj), types.AnonymousObject(types.Shape{
		Indexes: []types.Index{
			types.IndexOf(types.String(), types.Number()),
			types.IndexOf(types.Symbol(), types.String()),
		},
		Properties: []types.Property{},
	}))
	assert.True(t, r.Passed(), r.Message())

	r = Is(newContext(u, obj), types.AnonymousObject(types.Shape{
		Indexes: []types.Index{types.IndexOf(types.String(), types.Number())},
	}))
	assert.Equal(t, Aborted, r.Outcome)

	r = Is(newContext(u, obj), types.AnonymousObject(types.Shape{
		Indexes: []types.Index{
			types.IndexOf(types.String(), types.String()),
			types.IndexOf(types.Symbol(), types.String()),
		},
	}))
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Invalid index signature #0")
}

func TestIsObject(t *testing.T) {
	u := introspect.NewUniverse()
	obj := object(u, []*introspect.Symbol{member("a", u.String)}, nil)

	assert.True(t, IsObject(newContext(u, obj), Params{}).Passed())
	assert.True(t, Is(newContext(u, obj), types.Object()).Passed())
	assert.True(t, Is(newContext(u, u.NewArray(u.String, false)), types.Object()).Passed())
	assert.Equal(t, Failed, Is(newContext(u, u.String), types.Object()).Outcome)

	r := Is(newContext(u, obj), types.AnonymousObject(types.Shape{
		Properties: []types.Property{types.Prop("a", types.Number())},
	}))
	assert.Equal(t, Failed, r.Outcome)
}

func TestIsMappedType(t *testing.T) {
	u := introspect.NewUniverse()
	keys := u.NewUnion([]*introspect.Type{u.StringLiteral("foo"), u.StringLiteral("bar")})
	mapped := u.NewMapped(&introspect.MappedInfo{KeyName: "key", Constraint: keys, Template: u.Number}, nil)

	d := types.MappedObject(types.MappedShape{Keys: []string{"foo", "barr"}, Template: types.Boolean()})

	assert.True(t, IsMappedType(newContext(u, mapped), Params{}).Passed())
	assert.True(t, Is(newContext(u, mapped), d).Passed())

	anon := object(u, nil, nil)
	assert.Equal(t, Aborted, IsMappedType(newContext(u, anon), Params{}).Outcome)
	assert.Equal(t, Aborted, IsMappedType(newContext(u, u.String), Params{}).Outcome)
	assert.Equal(t, Failed, IsAnonymousObject(newContext(u, mapped), Params{}).Outcome)
}

func genericBox(u *introspect.Universe, args ...*introspect.Type) *introspect.Type {
	params := []*introspect.Symbol{
		introspect.NewResolvedSymbol("K", introspect.SymbolTypeParameter, nil, nil),
		introspect.NewResolvedSymbol("V", introspect.SymbolTypeParameter, nil, nil),
	}
	iface := u.NewInterface(
		introspect.NewResolvedSymbol("Box", introspect.SymbolInterface, nil, nil),
		params,
		nil,
	)
	return u.NewReference(iface, args, nil)
}

func TestHasArguments_Positional(t *testing.T) {
	u := introspect.NewUniverse()
	tuple := u.NewTuple([]*introspect.Type{u.String, u.Number}, nil, false)

	r := HasArguments(newContext(u, tuple), Params{Args: types.Args{
		types.Arg("A", types.String()),
		types.Arg("B", types.Number()),
	}})
	assert.True(t, r.Passed(), r.Message())

	r = HasArguments(newContext(u, tuple), Params{Args: types.Args{
		types.Arg("B", types.Number()),
		types.Arg("A", types.String()),
	}})
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Subject<T>")

	r = HasArguments(newContext(u, tuple), Params{Args: types.Args{
		types.Arg("A", types.String()),
		types.Arg("B", types.String()),
	}})
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Subject<_,T>")
}

func TestHasArguments_Named(t *testing.T) {
	u := introspect.NewUniverse()
	box := genericBox(u, u.String, u.Number)

	forward := HasArguments(newContext(u, box), Params{Args: types.Args{
		types.Arg("K", types.String()),
		types.Arg("V", types.Number()),
	}})
	swapped := HasArguments(newContext(u, box), Params{Args: types.Args{
		types.Arg("V", types.Number()),
		types.Arg("K", types.String()),
	}})
	assert.True(t, forward.Passed(), forward.Message())
	assert.Equal(t, forward.Outcome, swapped.Outcome)

	r := HasArguments(newContext(u, box), Params{Args: types.Args{
		types.Arg("K", types.String()),
		types.Arg("X", types.Number()),
	}})
	assert.Equal(t, Aborted, r.Outcome)
	assert.Contains(t, r.Message(), "X doesn't exist in the received type")

	r = HasArguments(newContext(u, box), Params{Args: types.Args{
		types.Arg("K", types.String()),
		types.Arg("V", types.String()),
	}})
	assert.Equal(t, Failed, r.Outcome)
	assert.Contains(t, r.Message(), "Subject<V>")
}

func TestHasArguments_CountAndMisuse(t *testing.T) {
	u := introspect.NewUniverse()
	box := genericBox(u, u.String, u.Number)

	r := HasArguments(newContext(u, box), Params{Args: types.Args{types.Arg("K", types.String())}})
	assert.Equal(t, Failed, r.Outcome)

	r = HasArguments(newContext(u, u.String), Params{})
	assert.Equal(t, Misused, r.Outcome)
	assert.Contains(t, r.Message(), "this matcher expects a type reference")

	assert.True(t, HasNbArguments(newContext(u, box), Params{Count: 2}).Passed())
	assert.Equal(t, Failed, HasNbArguments(newContext(u, box), Params{Count: 1}).Outcome)
	assert.Equal(t, Misused, HasNbArguments(newContext(u, u.Number), Params{Count: 1}).Outcome)
}

func TestIsTypeReference(t *testing.T) {
	u := introspect.NewUniverse()
	box := genericBox(u, u.String, u.Number)

	assert.True(t, IsTypeReference(newContext(u, box), Params{}).Passed())
	assert.True(t, IsTypeReference(newContext(u, box), Params{Name: "Box"}).Passed())

	r := IsTypeReference(newContext(u, box), Params{Name: "Crate"})
	assert.Equal(t, Aborted, r.Outcome)
	assert.Contains(t, r.Message(), "Expected: Crate")

	r = IsTypeReference(newContext(u, box), Params{Name: "Box", Args: types.Args{
		types.Arg("V", types.Number()),
		types.Arg("K", types.String()),
	}})
	assert.True(t, r.Passed(), r.Message())

	arr := u.NewArray(u.String, false)
	assert.True(t, IsTypeReference(newContext(u, arr), Params{Name: "Array"}).Passed())
	assert.Equal(t, Misused, IsTypeReference(newContext(u, u.String), Params{}).Outcome)
}

func TestContext_Derive(t *testing.T) {
	u := introspect.NewUniverse()
	sym := introspect.NewResolvedSymbol("p", introspect.SymbolProperty,
		&introspect.Declaration{Name: "p"}, u.String)
	root := newContext(u, u.Number)
	root.Negated = true

	child := root.Derive(WithType(u.String), WithSymbol(sym), WithPath("Subject.p"))

	assert.Same(t, u.Number, root.Type)
	assert.Equal(t, "Subject", root.Path)
	assert.Same(t, u.String, child.Type)
	assert.Equal(t, "Subject.p", child.Path)
	assert.Same(t, sym.Declaration, child.Declaration)
	assert.True(t, child.Negated)
	assert.Equal(t, "Subject", child.Root)
}

func TestResult_Safe(t *testing.T) {
	msg := func() string { return "boom" }

	assert.Equal(t, Failed, Safe(Abort(msg)).Outcome)
	assert.Equal(t, Failed, Safe(Misuse(msg)).Outcome)
	assert.Equal(t, Passed, Safe(Pass()).Outcome)
	assert.Equal(t, "boom", Safe(Abort(msg)).Message())
	assert.Equal(t, "x: boom", Fail(msg).Prefixed("x: ").Message())
	assert.Equal(t, "", Pass().Message())
}

func TestFirstFailure_StopsEarly(t *testing.T) {
	calls := 0
	step := func(r Result) func() Result {
		return func() Result {
			calls++
			return r
		}
	}

	r := FirstFailure(step(Pass()), step(Fail(nil)), step(Pass()))

	assert.Equal(t, Failed, r.Outcome)
	assert.Equal(t, 2, calls)
}
