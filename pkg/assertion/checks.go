package assertion

import (
	"math/big"

	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/types"
)

// Is dispatches on the descriptor's kind to the matching check.
func (a *Assertion) Is(d *types.Descriptor) bool {
	a.sel.helper()
	return a.run("is", matcher.Params{Expected: d})
}

// IsDefined passes when the selected name resolved.
func (a *Assertion) IsDefined() bool {
	a.sel.helper()
	return a.run("isDefined", matcher.Params{})
}

// IsNotDefined passes when the selected name did not resolve.
func (a *Assertion) IsNotDefined() bool {
	a.sel.helper()
	return a.run("isNotDefined", matcher.Params{})
}

func (a *Assertion) IsAny() bool {
	a.sel.helper()
	return a.run("isAny", matcher.Params{})
}

func (a *Assertion) IsUnknown() bool {
	a.sel.helper()
	return a.run("isUnknown", matcher.Params{})
}

func (a *Assertion) IsVoid() bool {
	a.sel.helper()
	return a.run("isVoid", matcher.Params{})
}

func (a *Assertion) IsUndefined() bool {
	a.sel.helper()
	return a.run("isUndefined", matcher.Params{})
}

func (a *Assertion) IsNull() bool {
	a.sel.helper()
	return a.run("isNull", matcher.Params{})
}

func (a *Assertion) IsNever() bool {
	a.sel.helper()
	return a.run("isNever", matcher.Params{})
}

func (a *Assertion) IsString() bool {
	a.sel.helper()
	return a.run("isString", matcher.Params{})
}

func (a *Assertion) IsNumber() bool {
	a.sel.helper()
	return a.run("isNumber", matcher.Params{})
}

func (a *Assertion) IsBoolean() bool {
	a.sel.helper()
	return a.run("isBoolean", matcher.Params{})
}

func (a *Assertion) IsBigInt() bool {
	a.sel.helper()
	return a.run("isBigInt", matcher.Params{})
}

// IsSymbol passes for any ES symbol, unique or not.
func (a *Assertion) IsSymbol() bool {
	a.sel.helper()
	return a.run("isSymbol", matcher.Params{Expected: types.Symbol()})
}

// IsUniqueSymbol passes for `unique symbol` only.
func (a *Assertion) IsUniqueSymbol() bool {
	a.sel.helper()
	return a.run("isSymbol", matcher.Params{Expected: types.UniqueSymbol()})
}

// IsStringLiteral checks for a string literal, pinned to value when
// one is given.
func (a *Assertion) IsStringLiteral(value ...string) bool {
	a.sel.helper()
	return a.run("isStringLiteral", matcher.Params{Expected: types.StringLiteral(value...)})
}

// IsNumberLiteral checks for a number literal, pinned to value when
// one is given.
func (a *Assertion) IsNumberLiteral(value ...float64) bool {
	a.sel.helper()
	return a.run("isNumberLiteral", matcher.Params{Expected: types.NumberLiteral(value...)})
}

// IsBooleanLiteral checks for `true` or `false`.
func (a *Assertion) IsBooleanLiteral(value ...bool) bool {
	a.sel.helper()
	return a.run("isBooleanLiteral", matcher.Params{Expected: types.BooleanLiteral(value...)})
}

// IsBigIntLiteral checks for a bigint literal.
func (a *Assertion) IsBigIntLiteral(value ...*big.Int) bool {
	a.sel.helper()
	return a.run("isBigIntLiteral", matcher.Params{Expected: types.BigIntLiteral(value...)})
}

// IsTemplateLiteral checks for a template literal type. Without
// segments only the category is checked.
func (a *Assertion) IsTemplateLiteral(segments ...types.Segment) bool {
	a.sel.helper()
	return a.run("isTemplateLiteral", matcher.Params{Expected: types.TemplateLiteral(segments...)})
}

// IsArray checks for an array, with the element type when given.
func (a *Assertion) IsArray(element ...*types.Descriptor) bool {
	a.sel.helper()
	var el *types.Descriptor
	if len(element) > 0 {
		el = element[0]
	}
	return a.run("isArray", matcher.Params{Expected: types.Array(el)})
}

// IsTuple checks for a tuple. Elements are compared by position.
func (a *Assertion) IsTuple(elements ...*types.Descriptor) bool {
	a.sel.helper()
	return a.run("isTuple", matcher.Params{Expected: types.Tuple(elements...)})
}

// IsUnion checks for a union. Members are matched regardless of
// order.
func (a *Assertion) IsUnion(members ...*types.Descriptor) bool {
	a.sel.helper()
	return a.run("isUnion", matcher.Params{Expected: types.Union(members...)})
}

// IsIntersection checks for an intersection.
func (a *Assertion) IsIntersection(members ...*types.Descriptor) bool {
	a.sel.helper()
	return a.run("isIntersection", matcher.Params{Expected: types.Intersection(members...)})
}

// IsObject checks for any object type.
func (a *Assertion) IsObject() bool {
	a.sel.helper()
	return a.run("isObject", matcher.Params{})
}

// IsAnonymousObject checks for an object literal type, with its
// members when a shape is given.
func (a *Assertion) IsAnonymousObject(shape ...types.Shape) bool {
	a.sel.helper()
	d := types.Object()
	if len(shape) > 0 {
		d = types.AnonymousObject(shape[0])
	}
	return a.run("isAnonymousObject", matcher.Params{Expected: d})
}

// IsMappedType checks for a mapped type, with its keys and template
// when a shape is given.
func (a *Assertion) IsMappedType(shape ...types.MappedShape) bool {
	a.sel.helper()
	var s types.MappedShape
	if len(shape) > 0 {
		s = shape[0]
	}
	return a.run("isMappedType", matcher.Params{Expected: types.MappedObject(s)})
}

// IsTypeReference checks for an instantiation of the named generic.
// Without args the arguments are not inspected.
func (a *Assertion) IsTypeReference(name string, args ...types.NamedArg) bool {
	a.sel.helper()
	p := matcher.Params{Name: name}
	if len(args) > 0 {
		p.Args = types.Args(args)
	}
	return a.run("isTypeReference", p)
}

// HasArguments compares the type arguments. When the observed type
// records which parameter each argument substitutes, arguments are
// found by name; otherwise they are compared by position.
func (a *Assertion) HasArguments(args ...types.NamedArg) bool {
	a.sel.helper()
	return a.run("hasArguments", matcher.Params{Args: types.Args(args)})
}

// HasNbArguments checks the number of type arguments.
func (a *Assertion) HasNbArguments(n int) bool {
	a.sel.helper()
	return a.run("hasNbArguments", matcher.Params{Count: n})
}

// Equals compares the rendering of the type with text.
func (a *Assertion) Equals(text string) bool {
	a.sel.helper()
	return a.run("equals", matcher.Params{Text: text})
}
