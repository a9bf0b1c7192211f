package assertion_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/source"
	"digital.vasic.typeassert/pkg/types"
)

var isolated = source.Options{IgnoreProjectOptions: true}

// recorder is a TestingT that keeps the reported messages.
type recorder struct {
	helpers int
	errors  []string
}

func (r *recorder) Helper() { r.helpers++ }

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// checkLog captures check records.
type checkLog struct {
	logging.NullLogger
	records []logging.CheckRecord
	debug   []string
}

func (l *checkLog) Debug(msg string, _ ...logging.Field) { l.debug = append(l.debug, msg) }

func (l *checkLog) LogCheck(record logging.CheckRecord) { l.records = append(l.records, record) }

func (l *checkLog) WithFields(_ ...logging.Field) logging.Logger { return l }

func selectRaw(t *testing.T, code string, opts ...assertion.Option) *assertion.Selector {
	t.Helper()
	opts = append([]assertion.Option{assertion.WithColors(false)}, opts...)
	sel, err := assertion.FromRaw(code, isolated, opts...)
	require.NoError(t, err)
	require.Empty(t, sel.Diagnostics(), "unexpected diagnostics")
	return sel
}

func TestScenarios(t *testing.T) {
	sel := selectRaw(t, "export type A = { [k: string]: number };\n"+
		"export type B = 'a' | 'b' | 1;\n"+
		"export type C = [string, number];\n"+
		"export type D = `Hello ${string}!`;\n")

	t.Run("index signature", func(t *testing.T) {
		assert.True(t, sel.Type("A").IsAnonymousObject(types.Shape{
			Indexes: []types.Index{types.IndexOf(types.String(), types.Number())},
		}))
	})

	t.Run("union of literals", func(t *testing.T) {
		assert.True(t, sel.Type("B").IsUnion(types.StringLiteral(), types.NumberLiteral(1)))
	})

	t.Run("tuple element mismatch", func(t *testing.T) {
		assert.False(t, sel.Type("C").IsTuple(types.Number(), types.Number()))
		assert.True(t, sel.Type("C").IsTuple(types.String(), types.Number()))
	})

	t.Run("template literal", func(t *testing.T) {
		d := sel.Type("D")
		assert.True(t, d.IsTemplateLiteral(types.Text("Hello "), types.Hole(types.String()), types.Text("!")))
		assert.False(t, d.IsTemplateLiteral(types.Text("Hi "), types.Hole(types.String()), types.Text("!")))
	})
}

func TestNew_ReportsFailures(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)
	rec := &recorder{}
	bound := sel.Bind(rec)

	assert.True(t, bound.Type("S").IsString())
	assert.Empty(t, rec.errors)

	assert.False(t, bound.Type("S").IsNumber())
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "expect(S).isNumber()")
	assert.Positive(t, rec.helpers)
}

func TestNew_BindsTestingT(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)
	rec := &recorder{}
	bound := assertion.New(rec, sel.Program(), assertion.WithColors(false))

	assert.False(t, bound.Type("S").Not().IsString())
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "expect(S).not.isString()")
}

func TestNot_DoesNotLatch(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)
	a := sel.Type("S")

	negated := a.Not()
	assert.True(t, negated.Negated())
	assert.False(t, a.Negated())

	assert.False(t, negated.IsString())
	assert.True(t, a.IsString())
	assert.True(t, negated.IsNumber())
	assert.True(t, negated.Not().IsString())
}

func TestInvoke_AbortFailsEvenWhenNegated(t *testing.T) {
	sel := selectRaw(t, `
export type C = [string, number];
export type U = "a" | "b";
`)

	cases := []struct {
		name    string
		typ     string
		check   string
		params  matcher.Params
		message string
	}{
		{"tuple arity", "C", "isTuple", matcher.Params{Expected: types.Tuple(types.String())}, "tuple length mismatch"},
		{"union coverage", "U", "isUnion", matcher.Params{Expected: types.Union(types.StringLiteral("a"))}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, a := range []*assertion.Assertion{sel.Type(tc.typ), sel.Type(tc.typ).Not()} {
				res, err := a.Invoke(tc.check, tc.params)
				require.NoError(t, err)
				assert.Equal(t, matcher.Aborted, res.Outcome)
				assert.False(t, res.Passed)
				assert.Contains(t, res.Message, tc.message)
			}
		})
	}

	assert.False(t, sel.Type("U").Not().IsUnion(types.StringLiteral("a")))
	assert.False(t, sel.Type("C").Not().IsTuple(types.String()))
}

func TestInvoke_MisuseIsNotFlipped(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)

	for _, a := range []*assertion.Assertion{sel.Type("Missing"), sel.Type("Missing").Not()} {
		res, err := a.Invoke("isString", matcher.Params{})
		require.NoError(t, err)
		assert.Equal(t, matcher.Misused, res.Outcome)
		assert.False(t, res.Passed)
		assert.NotEmpty(t, res.Message)
	}

	res, err := sel.Type("S").Not().Invoke("is", matcher.Params{})
	require.NoError(t, err)
	assert.Contains(t, res.Message, "no expected type supplied")
	assert.Equal(t, matcher.Misused, res.Outcome)
	assert.False(t, res.Passed)
}

func TestInvoke_UnknownCheck(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)

	_, err := sel.Type("S").Invoke("isStrng", matcher.Params{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, assertion.ErrUnknownCheck))
	assert.Contains(t, err.Error(), "did you mean isString?")

	_, err = sel.Type("S").Invoke("zz", matcher.Params{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestInvoke_CustomCheck(t *testing.T) {
	sel := selectRaw(t, `export type S = string;`)
	require.NoError(t, sel.Engine().Register("isAnything", func(_ *matcher.Context, _ matcher.Params) matcher.Result {
		return matcher.Pass()
	}))

	res, err := sel.Type("S").Invoke("isAnything", matcher.Params{})
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestDefinedness(t *testing.T) {
	sel := selectRaw(t, `export type S = string; type Hidden = number;`)

	assert.True(t, sel.Type("S").Defined())
	assert.True(t, sel.Type("S").IsDefined())
	assert.True(t, sel.Type("Hidden").IsNotDefined())
	assert.False(t, sel.Type("Hidden").Defined())
	assert.True(t, sel.Type("Nope").Not().IsDefined())
}

func TestChecks(t *testing.T) {
	sel := selectRaw(t, `
export type Any = any;
export type Unk = unknown;
export type V = void;
export type U = undefined;
export type N = null;
export type Nev = never;
export type Num = number;
export type Bool = boolean;
export type Big = bigint;
export type Sym = symbol;
export type Lit = "x";
export type One = 1;
export type T = true;
export type BigLit = 10n;
export type List = string[];
export type Both = { a: string } & { b: number };
export type Obj = { a: string; b?: number };
export interface Box<T> { value: T }
export type Boxed = Box<string>;
export type M<K extends string> = { [P in K]: number };
`)

	tests := []struct {
		name string
		run  func() bool
	}{
		{"any", sel.Type("Any").IsAny},
		{"unknown", sel.Type("Unk").IsUnknown},
		{"void", sel.Type("V").IsVoid},
		{"undefined", sel.Type("U").IsUndefined},
		{"null", sel.Type("N").IsNull},
		{"never", sel.Type("Nev").IsNever},
		{"number", sel.Type("Num").IsNumber},
		{"boolean", sel.Type("Bool").IsBoolean},
		{"bigint", sel.Type("Big").IsBigInt},
		{"symbol", sel.Type("Sym").IsSymbol},
		{"not unique symbol", sel.Type("Sym").Not().IsUniqueSymbol},
		{"string literal", func() bool { return sel.Type("Lit").IsStringLiteral("x") }},
		{"number literal", func() bool { return sel.Type("One").IsNumberLiteral(1) }},
		{"boolean literal", func() bool { return sel.Type("T").IsBooleanLiteral(true) }},
		{"bigint literal", func() bool { return sel.Type("BigLit").IsBigIntLiteral() }},
		{"array", func() bool { return sel.Type("List").IsArray(types.String()) }},
		{"intersection", func() bool { return sel.Type("Both").IsIntersection() }},
		{"object", sel.Type("Obj").IsObject},
		{"anonymous object", func() bool {
			return sel.Type("Obj").IsAnonymousObject(types.Shape{Properties: []types.Property{
				types.Prop("a", types.String()),
				types.Prop("b", types.Union(types.Number(), types.Undefined())),
			}})
		}},
		{"reference", func() bool { return sel.Type("Boxed").IsTypeReference("Box", types.Arg("T", types.String())) }},
		{"reference name", func() bool { return sel.Type("Boxed").IsTypeReference("Box") }},
		{"argument count", func() bool { return sel.Type("Boxed").HasNbArguments(1) }},
		{"arguments", func() bool { return sel.Type("Boxed").HasArguments(types.Arg("T", types.String())) }},
		{"generic mapped", func() bool { return sel.Type("M").IsMappedType() }},
		{"equals", func() bool { return sel.Type("Num").Equals("number") }},
		{"is", func() bool { return sel.Type("Lit").Is(types.StringLiteral("x")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.run())
		})
	}
}

func TestFromRecord(t *testing.T) {
	sel, err := assertion.FromRecord([]source.Declaration{
		{Name: "Pair", Params: []string{"A", "B"}, Definition: "[A, B]"},
		{Name: "Names", Definition: "Pair<string, string>"},
	}, isolated, assertion.WithColors(false))
	require.NoError(t, err)
	require.Empty(t, sel.Diagnostics())

	assert.True(t, sel.Type("Names").IsTuple(types.String(), types.String()))
}

func TestIsTypeReference_GenericAlias(t *testing.T) {
	sel := selectRaw(t, `
export type Pair<A, B> = [A, B];
export type Names = Pair<string, number>;
export type Box<T> = Array<T>;
export type BS = Box<string>;
export type Plain = string[];
`)

	assert.True(t, sel.Type("Names").IsTypeReference("Pair"))
	assert.True(t, sel.Type("Names").IsTuple(types.String(), types.Number()))
	assert.True(t, sel.Type("BS").IsTypeReference("Box"))
	assert.True(t, sel.Type("BS").IsArray(types.String()))
	assert.True(t, sel.Type("Plain").IsTypeReference("Array"))

	res, err := sel.Type("BS").Invoke("isTypeReference", matcher.Params{Name: "Array"})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, "Box")
}

func TestFromFile_Error(t *testing.T) {
	_, err := assertion.FromFile("missing.ts", isolated)
	assert.Error(t, err)
}

func TestDiagnostics(t *testing.T) {
	sel, err := assertion.FromRaw(`export type A = Missing;`, isolated)
	require.NoError(t, err)
	assert.Equal(t, []int{2304}, sel.Diagnostics().Codes())
}

func TestLogging(t *testing.T) {
	log := &checkLog{}
	sel := selectRaw(t, `export type S = string;`, assertion.WithLogger(log), assertion.WithSuite("basics"))

	sel.Type("S").IsString()
	sel.Type("S").Not().IsString()

	require.Len(t, log.records, 2)
	first, second := log.records[0], log.records[1]
	assert.Equal(t, "basics", first.Suite)
	assert.Equal(t, "S", first.Type)
	assert.Equal(t, "isString", first.Check)
	assert.Equal(t, "passed", first.Outcome)
	assert.True(t, first.Passed)
	assert.Empty(t, first.Message)

	assert.True(t, second.Negated)
	assert.Equal(t, "passed", second.Outcome)
	assert.False(t, second.Passed)
	assert.NotEmpty(t, second.Message)
	assert.Contains(t, log.debug, "check evaluated")
}
