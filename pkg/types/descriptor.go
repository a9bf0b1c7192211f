// Package types provides the vocabulary used by test authors to
// describe the expected shape of a type declaration. Descriptors
// are plain values: they are built with the factory functions in
// this package, compared by structure only, and rendered to a
// canonical string for diagnostics.
package types

import "math/big"

// Kind discriminates the variants of a Descriptor.
type Kind int

const (
	KindAny Kind = iota
	KindArray
	KindBigInt
	KindBigIntLiteral
	KindBoolean
	KindBooleanLiteral
	KindEnum
	KindEnumLiteral
	KindIntersection
	KindNever
	KindNull
	KindNumber
	KindNumberLiteral
	KindObject
	KindString
	KindStringLiteral
	KindSymbol
	KindTemplateLiteral
	KindTuple
	KindUndefined
	KindUnion
	KindUnknown
	KindVoid
)

var kindNames = map[Kind]string{
	KindAny:             "Any",
	KindArray:           "Array",
	KindBigInt:          "BigInt",
	KindBigIntLiteral:   "BigIntLiteral",
	KindBoolean:         "Boolean",
	KindBooleanLiteral:  "BooleanLiteral",
	KindEnum:            "Enum",
	KindEnumLiteral:     "EnumLiteral",
	KindIntersection:    "Intersection",
	KindNever:           "Never",
	KindNull:            "Null",
	KindNumber:          "Number",
	KindNumberLiteral:   "NumberLiteral",
	KindObject:          "Object",
	KindString:          "String",
	KindStringLiteral:   "StringLiteral",
	KindSymbol:          "Symbol",
	KindTemplateLiteral: "TemplateLiteral",
	KindTuple:           "Tuple",
	KindUndefined:       "Undefined",
	KindUnion:           "Union",
	KindUnknown:         "Unknown",
	KindVoid:            "Void",
}

// String returns the variant name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown(" + itoa(int(k)) + ")"
}

// ObjectKind discriminates the two object shapes.
type ObjectKind int

const (
	// ObjectAnonymous is an object described by its properties
	// and index signatures.
	ObjectAnonymous ObjectKind = iota
	// ObjectMapped is an object generated by iterating a key
	// set through a template type.
	ObjectMapped
)

// String returns the name of the object kind.
func (k ObjectKind) String() string {
	if k == ObjectMapped {
		return "Mapped"
	}
	return "Anonymous"
}

// Descriptor describes an expected type shape. Only the payload
// fields relevant to Kind are meaningful. A nil slice payload
// means "not supplied" and restricts the check to the shape
// category; a non-nil empty slice is an explicit, empty
// expectation.
type Descriptor struct {
	Kind       Kind
	ObjectKind ObjectKind

	// Value pins a literal. It holds a string, float64, bool
	// or *big.Int depending on Kind, or nil when unpinned.
	Value any

	// Unique selects unique symbols for KindSymbol.
	Unique bool

	// Element is the array element type; nil means any.
	Element *Descriptor

	// Elements holds tuple elements or union/intersection
	// members.
	Elements []*Descriptor

	// Segments holds the template literal sequence.
	Segments []Segment

	// Properties and Indexes describe an anonymous object.
	Properties []Property
	Indexes    []Index

	// Keys and Template describe a mapped object.
	Keys     []string
	Template *Descriptor
}

// Segment is one entry of a template literal sequence: either a
// literal text or an interpolated type.
type Segment struct {
	Text string
	Type *Descriptor
}

// IsText reports whether the segment is literal text.
func (s Segment) IsText() bool {
	return s.Type == nil
}

// Property is a named object member expectation.
type Property struct {
	Name string
	Type *Descriptor
}

// Index is an index signature expectation.
type Index struct {
	Key   *Descriptor
	Value *Descriptor
}

// NamedArg is a single named type argument expectation.
type NamedArg struct {
	Name string
	Type *Descriptor
}

// Args is an ordered list of named type argument expectations.
// The order matters when arguments are compared by position.
type Args []NamedArg

// Names returns the argument names in order.
func (a Args) Names() []string {
	names := make([]string, len(a))
	for i, arg := range a {
		names[i] = arg.Name
	}
	return names
}

// Lookup returns the descriptor registered under name.
func (a Args) Lookup(name string) (*Descriptor, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Type, true
		}
	}
	return nil, false
}

// StringValue returns the pinned string literal value.
func (d *Descriptor) StringValue() (string, bool) {
	v, ok := d.Value.(string)
	return v, ok
}

// NumberValue returns the pinned number literal value.
func (d *Descriptor) NumberValue() (float64, bool) {
	v, ok := d.Value.(float64)
	return v, ok
}

// BoolValue returns the pinned boolean literal value.
func (d *Descriptor) BoolValue() (bool, bool) {
	v, ok := d.Value.(bool)
	return v, ok
}

// BigIntValue returns the pinned bigint literal value.
func (d *Descriptor) BigIntValue() (*big.Int, bool) {
	v, ok := d.Value.(*big.Int)
	return v, ok && v != nil
}

// Pinned reports whether a literal value was supplied.
func (d *Descriptor) Pinned() bool {
	return d != nil && d.Value != nil
}
