package types

import "math/big"

func Any() *Descriptor       { return &Descriptor{Kind: KindAny} }
func Unknown() *Descriptor   { return &Descriptor{Kind: KindUnknown} }
func Void() *Descriptor      { return &Descriptor{Kind: KindVoid} }
func Undefined() *Descriptor { return &Descriptor{Kind: KindUndefined} }
func Null() *Descriptor      { return &Descriptor{Kind: KindNull} }
func Never() *Descriptor     { return &Descriptor{Kind: KindNever} }
func String() *Descriptor    { return &Descriptor{Kind: KindString} }
func Number() *Descriptor    { return &Descriptor{Kind: KindNumber} }
func Boolean() *Descriptor   { return &Descriptor{Kind: KindBoolean} }
func BigInt() *Descriptor    { return &Descriptor{Kind: KindBigInt} }

// StringLiteral describes a string literal type. The value is
// optional: without it any string literal matches.
func StringLiteral(value ...string) *Descriptor {
	d := &Descriptor{Kind: KindStringLiteral}
	if len(value) > 0 {
		d.Value = value[0]
	}
	return d
}

// NumberLiteral describes a number literal type, optionally
// pinned to a value.
func NumberLiteral(value ...float64) *Descriptor {
	d := &Descriptor{Kind: KindNumberLiteral}
	if len(value) > 0 {
		d.Value = value[0]
	}
	return d
}

// BooleanLiteral describes `true` or `false`, optionally pinned.
func BooleanLiteral(value ...bool) *Descriptor {
	d := &Descriptor{Kind: KindBooleanLiteral}
	if len(value) > 0 {
		d.Value = value[0]
	}
	return d
}

// BigIntLiteral describes a bigint literal type, optionally
// pinned. A nil value leaves it unpinned.
func BigIntLiteral(value ...*big.Int) *Descriptor {
	d := &Descriptor{Kind: KindBigIntLiteral}
	if len(value) > 0 && value[0] != nil {
		d.Value = new(big.Int).Set(value[0])
	}
	return d
}

// Symbol describes a non-unique ES symbol.
func Symbol() *Descriptor {
	return &Descriptor{Kind: KindSymbol}
}

// UniqueSymbol describes a `unique symbol`.
func UniqueSymbol() *Descriptor {
	return &Descriptor{Kind: KindSymbol, Unique: true}
}

// Array describes an array. A nil element means an array of
// anything.
func Array(element *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindArray, Element: element}
}

// Tuple describes a tuple. Calling it without elements leaves
// the elements unchecked; pass an empty slice with
// Tuple([]*Descriptor{}...) to expect the empty tuple.
func Tuple(elements ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindTuple, Elements: elements}
}

// Union describes a union. Without members only the union
// category is checked.
func Union(members ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindUnion, Elements: members}
}

// Intersection describes an intersection.
func Intersection(members ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: KindIntersection, Elements: members}
}

// Enum and EnumLiteral are part of the vocabulary but no check
// accepts them yet.
func Enum() *Descriptor { return &Descriptor{Kind: KindEnum} }

func EnumLiteral(value any) *Descriptor {
	return &Descriptor{Kind: KindEnumLiteral, Value: value}
}

// TemplateLiteral describes a template literal type as an
// ordered sequence of texts and interpolated types.
func TemplateLiteral(segments ...Segment) *Descriptor {
	return &Descriptor{Kind: KindTemplateLiteral, Segments: segments}
}

// Text is a literal text segment of a template.
func Text(s string) Segment {
	return Segment{Text: s}
}

// Hole is an interpolated type segment of a template.
func Hole(d *Descriptor) Segment {
	return Segment{Type: d}
}

// Shape groups the members of an anonymous object. Nil fields
// are left unchecked.
type Shape struct {
	Properties []Property
	Indexes    []Index
}

// MappedShape groups the members of a mapped object.
type MappedShape struct {
	Keys     []string
	Template *Descriptor
}

// Object returns the default object descriptor: an anonymous
// shape with nothing pinned.
func Object() *Descriptor {
	return &Descriptor{Kind: KindObject, ObjectKind: ObjectAnonymous}
}

// AnonymousObject describes an object literal type.
func AnonymousObject(shape Shape) *Descriptor {
	return &Descriptor{
		Kind:       KindObject,
		ObjectKind: ObjectAnonymous,
		Properties: shape.Properties,
		Indexes:    shape.Indexes,
	}
}

// MappedObject describes a mapped type.
func MappedObject(shape MappedShape) *Descriptor {
	return &Descriptor{
		Kind:       KindObject,
		ObjectKind: ObjectMapped,
		Keys:       shape.Keys,
		Template:   shape.Template,
	}
}

// Prop builds a Property.
func Prop(name string, d *Descriptor) Property {
	return Property{Name: name, Type: d}
}

// IndexOf builds an Index.
func IndexOf(key, value *Descriptor) Index {
	return Index{Key: key, Value: value}
}

// Arg builds a NamedArg.
func Arg(name string, d *Descriptor) NamedArg {
	return NamedArg{Name: name, Type: d}
}
