package load

import "math/big"

// node is any syntax node. pos is the byte offset of its first
// token.
type node interface {
	Pos() int
}

type span struct {
	pos int
}

func (s span) Pos() int { return s.pos }

// Type expressions.

type keywordType struct {
	span
	name string
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBigInt
	litTrue
	litFalse
)

type literalType struct {
	span
	kind   literalKind
	str    string
	number float64
	bigint *big.Int
}

type uniqueSymbolType struct {
	span
}

type typeRef struct {
	span
	name string
	args []node
}

type arrayType struct {
	span
	elem node
}

type tupleElement struct {
	label string
	typ   node
}

type tupleType struct {
	span
	elems []tupleElement
}

// readonlyType is the `readonly` operator on arrays and tuples.
type readonlyType struct {
	span
	operand node
}

type unionType struct {
	span
	types []node
}

type intersectionType struct {
	span
	types []node
}

type keyOfType struct {
	span
	operand node
}

type indexedAccessType struct {
	span
	object node
	index  node
}

type conditionalType struct {
	span
	check     node
	extends   node
	whenTrue  node
	whenFalse node
}

type parenType struct {
	span
	inner node
}

type templateType struct {
	span
	texts []string
	holes []node
}

type propertySignature struct {
	span
	name     string
	optional bool
	readonly bool
	typ      node
}

type indexSignature struct {
	span
	keyName  string
	keyType  node
	value    node
	readonly bool
}

type objectType struct {
	span
	properties []*propertySignature
	indexes    []*indexSignature
}

// modifier is a mapped type modifier: +readonly, -?, ...
type modifier int

const (
	modNone modifier = iota
	modAdd
	modRemove
)

type mappedType struct {
	span
	readonly   modifier
	keyName    string
	constraint node
	nameType   node
	optional   modifier
	template   node
}

// errorType stands for a type expression that failed to parse.
type errorType struct {
	span
}

// Statements.

type typeParam struct {
	span
	name       string
	constraint node
	def        node
}

type aliasDecl struct {
	span
	end      int
	name     string
	params   []*typeParam
	typ      node
	exported bool
}

type interfaceDecl struct {
	span
	end      int
	name     string
	params   []*typeParam
	extends  []*typeRef
	body     *objectType
	exported bool
}

type specifier struct {
	span
	name  string // name in the source module
	alias string // local or exported name, "" when the same
}

func (s *specifier) local() string {
	if s.alias != "" {
		return s.alias
	}
	return s.name
}

type exportDecl struct {
	span
	specs []*specifier
	from  string
}

type importDecl struct {
	span
	specs []*specifier
	from  string
}

type sourceFile struct {
	statements []node
}
