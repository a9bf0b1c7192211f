package introspect

// Checker is the read-only introspection oracle consumed by the
// matching engine.
type Checker interface {
	// DeclaredTypeOf resolves the type declared by a type alias
	// or interface symbol.
	DeclaredTypeOf(sym *Symbol) *Type

	// TypeOfSymbol resolves the type of a property symbol.
	TypeOfSymbol(sym *Symbol) *Type

	Flags(t *Type) TypeFlags
	ObjectFlags(t *Type) ObjectFlags

	// Properties enumerates the declared properties of an object
	// type in declaration order.
	Properties(t *Type) []*Symbol

	// IndexInfos enumerates the index signatures of an object
	// type in declaration order.
	IndexInfos(t *Type) []IndexInfo

	// TypeArguments returns the arguments of a reference type.
	TypeArguments(t *Type) []*Type

	UnionMembers(t *Type) []*Type
	IntersectionMembers(t *Type) []*Type

	// TemplateParts decomposes a template literal type into its
	// texts and holes; there is always one more text than holes.
	TemplateParts(t *Type) (texts []string, holes []*Type)

	// LiteralValue extracts the value of a literal type: string,
	// float64, bool or *big.Int.
	LiteralValue(t *Type) (any, bool)

	// AliasName returns the name of the declaration a type was
	// defined through, or "" when it has none.
	AliasName(t *Type) string

	// TypeToString renders a type for diagnostics.
	TypeToString(t *Type) string

	IsArrayType(t *Type) bool
	IsTupleType(t *Type) bool

	// Mapper returns the deferred substitution record of a
	// reference type, or nil.
	Mapper(t *Type) *Mapper
}
