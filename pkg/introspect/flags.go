// Package introspect models observed types: the types a compiled
// declaration actually resolves to. Types are opaque, immutable
// handles; every derived observation goes through the Checker
// interface. Universe is the in-memory implementation used by the
// loader.
package introspect

import (
	"math/bits"
	"strings"
)

// TypeFlags is the category of an observed type. Most types carry
// exactly one flag; `boolean` carries Union|Boolean.
type TypeFlags uint32

const (
	FlagAny TypeFlags = 1 << iota
	FlagUnknown
	FlagString
	FlagNumber
	FlagBoolean
	FlagBigInt
	FlagStringLiteral
	FlagNumberLiteral
	FlagBooleanLiteral
	FlagBigIntLiteral
	FlagESSymbol
	FlagUniqueESSymbol
	FlagVoid
	FlagUndefined
	FlagNull
	FlagNever
	FlagTypeParameter
	FlagObject
	FlagUnion
	FlagIntersection
	FlagIndex
	FlagIndexedAccess
	FlagConditional
	FlagTemplateLiteral
)

var typeFlagNames = map[TypeFlags]string{
	FlagAny:             "Any",
	FlagUnknown:         "Unknown",
	FlagString:          "String",
	FlagNumber:          "Number",
	FlagBoolean:         "Boolean",
	FlagBigInt:          "BigInt",
	FlagStringLiteral:   "StringLiteral",
	FlagNumberLiteral:   "NumberLiteral",
	FlagBooleanLiteral:  "BooleanLiteral",
	FlagBigIntLiteral:   "BigIntLiteral",
	FlagESSymbol:        "ESSymbol",
	FlagUniqueESSymbol:  "UniqueESSymbol",
	FlagVoid:            "Void",
	FlagUndefined:       "Undefined",
	FlagNull:            "Null",
	FlagNever:           "Never",
	FlagTypeParameter:   "TypeParameter",
	FlagObject:          "Object",
	FlagUnion:           "Union",
	FlagIntersection:    "Intersection",
	FlagIndex:           "Index",
	FlagIndexedAccess:   "IndexedAccess",
	FlagConditional:     "Conditional",
	FlagTemplateLiteral: "TemplateLiteral",
}

// ObjectFlags refine FlagObject types.
type ObjectFlags uint32

const (
	ObjectInterface ObjectFlags = 1 << iota
	ObjectReference
	ObjectTuple
	ObjectAnonymous
	ObjectMapped
	ObjectInstantiated
)

var objectFlagNames = map[ObjectFlags]string{
	ObjectInterface:    "Interface",
	ObjectReference:    "Reference",
	ObjectTuple:        "Tuple",
	ObjectAnonymous:    "Anonymous",
	ObjectMapped:       "Mapped",
	ObjectInstantiated: "Instantiated",
}

// Has reports whether every flag of f is set.
func (t TypeFlags) Has(f TypeFlags) bool {
	return t&f == f
}

// Has reports whether every flag of f is set.
func (o ObjectFlags) Has(f ObjectFlags) bool {
	return o&f == f
}

// Split decomposes the flag set into single flags, highest first.
func (t TypeFlags) Split() []TypeFlags {
	return splitBits(uint32(t), func(b uint32) TypeFlags { return TypeFlags(b) })
}

// Split decomposes the flag set into single flags, highest first.
func (o ObjectFlags) Split() []ObjectFlags {
	return splitBits(uint32(o), func(b uint32) ObjectFlags { return ObjectFlags(b) })
}

func splitBits[T any](v uint32, conv func(uint32) T) []T {
	var out []T
	for v != 0 {
		high := uint32(1) << (31 - bits.LeadingZeros32(v))
		out = append(out, conv(high))
		v &^= high
	}
	return out
}

// String renders the flags as `Base<Param,...>`: the highest flag
// first, the remaining ones as parameters. Boolean's flags render
// as "Union<Boolean>".
func (t TypeFlags) String() string {
	parts := t.Split()
	if len(parts) == 0 {
		return "None"
	}
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = typeFlagNames[p]
	}
	if len(names) == 1 {
		return names[0]
	}
	return names[0] + "<" + strings.Join(names[1:], ",") + ">"
}

// String renders the object flags as a comma separated list.
func (o ObjectFlags) String() string {
	parts := o.Split()
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = objectFlagNames[p]
	}
	return strings.Join(names, ", ")
}
