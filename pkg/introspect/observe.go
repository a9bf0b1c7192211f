package introspect

import "math/big"

var _ Checker = (*Universe)(nil)

// DeclaredTypeOf resolves the type declared by sym.
func (u *Universe) DeclaredTypeOf(sym *Symbol) *Type {
	if sym == nil {
		return nil
	}
	return sym.resolvedType()
}

// TypeOfSymbol resolves the type of a property symbol.
func (u *Universe) TypeOfSymbol(sym *Symbol) *Type {
	if sym == nil {
		return nil
	}
	return sym.resolvedType()
}

func (u *Universe) Flags(t *Type) TypeFlags {
	if t == nil {
		return 0
	}
	return t.flags
}

func (u *Universe) ObjectFlags(t *Type) ObjectFlags {
	if t == nil {
		return 0
	}
	return t.objectFlags
}

// Properties returns the properties of object and intersection
// types.
func (u *Universe) Properties(t *Type) []*Symbol {
	props, _ := u.membersOf(t)
	return props
}

// IndexInfos returns the index signatures of object and
// intersection types.
func (u *Universe) IndexInfos(t *Type) []IndexInfo {
	_, indexes := u.membersOf(t)
	return indexes
}

func (u *Universe) TypeArguments(t *Type) []*Type {
	if t == nil || t.objectFlags&ObjectReference == 0 {
		return nil
	}
	return t.args
}

func (u *Universe) UnionMembers(t *Type) []*Type {
	if t == nil || t.flags&FlagUnion == 0 {
		return nil
	}
	return t.types
}

func (u *Universe) IntersectionMembers(t *Type) []*Type {
	if t == nil || t.flags&FlagIntersection == 0 {
		return nil
	}
	return t.types
}

func (u *Universe) TemplateParts(t *Type) ([]string, []*Type) {
	if t == nil || t.flags&FlagTemplateLiteral == 0 {
		return nil, nil
	}
	return t.texts, t.holes
}

// LiteralValue returns a copy for bigint literals so callers cannot
// mutate the interned value.
func (u *Universe) LiteralValue(t *Type) (any, bool) {
	if t == nil {
		return nil, false
	}
	switch {
	case t.flags&FlagBigIntLiteral != 0:
		return new(big.Int).Set(t.value.(*big.Int)), true
	case t.flags&(FlagStringLiteral|FlagNumberLiteral|FlagBooleanLiteral) != 0:
		return t.value, true
	}
	return nil, false
}

// AliasName returns the name a type was referenced by: the generic
// alias of an alias instantiation, else the target name for
// references ("Array" for arrays, the interface name for generic
// instantiations, "" for tuples), else the alias name.
func (u *Universe) AliasName(t *Type) string {
	if t == nil {
		return ""
	}
	if t.instanceOf != "" {
		return t.instanceOf
	}
	if t.objectFlags&ObjectReference != 0 && t.target != nil {
		return t.target.name
	}
	if t.objectFlags&ObjectInterface != 0 {
		return t.name
	}
	return t.aliasName
}

func (u *Universe) IsArrayType(t *Type) bool {
	return t != nil &&
		t.objectFlags&ObjectReference != 0 &&
		(t.target == u.arrayTarget || t.target == u.readonlyArrayTarget)
}

func (u *Universe) IsTupleType(t *Type) bool {
	return t != nil &&
		t.objectFlags&ObjectReference != 0 &&
		t.target != nil &&
		t.target.objectFlags&ObjectTuple != 0
}

func (u *Universe) Mapper(t *Type) *Mapper {
	if t == nil {
		return nil
	}
	return t.mapper
}

// TupleLabels returns the element labels of a labeled tuple.
func (u *Universe) TupleLabels(t *Type) []string {
	if !u.IsTupleType(t) {
		return nil
	}
	return t.tupleLabels
}

// MappedInfo returns the declared form of a mapped type.
func (u *Universe) MappedInfo(t *Type) *MappedInfo {
	if t == nil {
		return nil
	}
	return t.mapped
}

// IsReadonlyArray reports whether t is a `readonly T[]` or a
// readonly tuple.
func (u *Universe) IsReadonlyArray(t *Type) bool {
	return t != nil && t.readonlyView
}

// ArrayElement returns the element type of an array type.
func (u *Universe) ArrayElement(t *Type) *Type {
	if !u.IsArrayType(t) || len(t.args) == 0 {
		return nil
	}
	return t.args[0]
}

// Symbol returns the declaring symbol of interfaces and type
// parameters.
func (u *Universe) Symbol(t *Type) *Symbol {
	if t == nil {
		return nil
	}
	return t.symbol
}

// Conditional returns the operands of a deferred conditional type.
func (u *Universe) Conditional(t *Type) *ConditionalInfo {
	if t == nil {
		return nil
	}
	return t.conditional
}

// Operand returns the operand of `keyof T` and the object of
// `T[K]`, with the index of the latter.
func (u *Universe) Operand(t *Type) (operand, index *Type) {
	if t == nil {
		return nil, nil
	}
	return t.operand, t.index
}

// AliasArguments returns the type arguments of an instantiated
// generic alias.
func (u *Universe) AliasArguments(t *Type) []*Type {
	if t == nil {
		return nil
	}
	return t.aliasArgs
}
