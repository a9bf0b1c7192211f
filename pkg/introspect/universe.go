package introspect

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Universe owns every type of one compilation and implements
// Checker over them. Intrinsic and literal types are interned, so
// identical types are the same pointer. A Universe is not safe for
// concurrent use.
type Universe struct {
	nextID int

	// Intrinsic types. They must be treated as read-only.
	Any       *Type
	Error     *Type
	Unknown   *Type
	String    *Type
	Number    *Type
	BigInt    *Type
	ESSymbol  *Type
	Void      *Type
	Undefined *Type
	Null      *Type
	Never     *Type
	False     *Type
	True      *Type
	Boolean   *Type

	arrayTarget         *Type
	readonlyArrayTarget *Type
	tupleTarget         *Type

	stringLiterals map[string]*Type
	numberLiterals map[float64]*Type
	bigIntLiterals map[string]*Type
	unions         map[string]*Type
	intersections  map[string]*Type
	templates      map[string]*Type
	arrays         map[int]*Type
	readonlyArrays map[int]*Type
}

// NewUniverse creates a universe holding the intrinsic types.
func NewUniverse() *Universe {
	u := &Universe{
		stringLiterals: make(map[string]*Type),
		numberLiterals: make(map[float64]*Type),
		bigIntLiterals: make(map[string]*Type),
		unions:         make(map[string]*Type),
		intersections:  make(map[string]*Type),
		templates:      make(map[string]*Type),
		arrays:         make(map[int]*Type),
		readonlyArrays: make(map[int]*Type),
	}

	u.Any = u.intrinsic(FlagAny, "any")
	u.Error = u.intrinsic(FlagAny, "any")
	u.Unknown = u.intrinsic(FlagUnknown, "unknown")
	u.String = u.intrinsic(FlagString, "string")
	u.Number = u.intrinsic(FlagNumber, "number")
	u.BigInt = u.intrinsic(FlagBigInt, "bigint")
	u.ESSymbol = u.intrinsic(FlagESSymbol, "symbol")
	u.Void = u.intrinsic(FlagVoid, "void")
	u.Undefined = u.intrinsic(FlagUndefined, "undefined")
	u.Null = u.intrinsic(FlagNull, "null")
	u.Never = u.intrinsic(FlagNever, "never")
	u.False = u.intrinsic(FlagBooleanLiteral, "false")
	u.False.value = false
	u.True = u.intrinsic(FlagBooleanLiteral, "true")
	u.True.value = true
	u.Boolean = u.NewUnion([]*Type{u.False, u.True})

	u.arrayTarget = u.genericTarget("Array")
	u.readonlyArrayTarget = u.genericTarget("ReadonlyArray")
	u.tupleTarget = u.newType(FlagObject)
	u.tupleTarget.objectFlags = ObjectTuple

	return u
}

func (u *Universe) newType(flags TypeFlags) *Type {
	u.nextID++
	return &Type{id: u.nextID, flags: flags}
}

func (u *Universe) intrinsic(flags TypeFlags, name string) *Type {
	t := u.newType(flags)
	t.name = name
	return t
}

func (u *Universe) genericTarget(name string) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectInterface
	t.name = name
	param, _ := u.DeclareTypeParameter("T", nil)
	t.typeParams = []*Symbol{param}
	return t
}

// StringLiteral returns the interned string literal type.
func (u *Universe) StringLiteral(v string) *Type {
	if t, ok := u.stringLiterals[v]; ok {
		return t
	}
	t := u.newType(FlagStringLiteral)
	t.value = v
	u.stringLiterals[v] = t
	return t
}

// NumberLiteral returns the interned number literal type.
func (u *Universe) NumberLiteral(v float64) *Type {
	if t, ok := u.numberLiterals[v]; ok {
		return t
	}
	t := u.newType(FlagNumberLiteral)
	t.value = v
	u.numberLiterals[v] = t
	return t
}

// BigIntLiteral returns the interned bigint literal type.
func (u *Universe) BigIntLiteral(v *big.Int) *Type {
	key := v.String()
	if t, ok := u.bigIntLiterals[key]; ok {
		return t
	}
	t := u.newType(FlagBigIntLiteral)
	t.value = new(big.Int).Set(v)
	u.bigIntLiterals[key] = t
	return t
}

// BooleanLiteral returns `true` or `false`.
func (u *Universe) BooleanLiteral(v bool) *Type {
	if v {
		return u.True
	}
	return u.False
}

// UniqueSymbol creates a fresh `unique symbol` type.
func (u *Universe) UniqueSymbol(name string) *Type {
	t := u.newType(FlagUniqueESSymbol)
	t.name = name
	return t
}

// NewTypeParameter creates the type of a declared type parameter.
func (u *Universe) NewTypeParameter(sym *Symbol) *Type {
	t := u.newType(FlagTypeParameter)
	t.name = sym.Name
	t.symbol = sym
	return t
}

// DeclareTypeParameter creates a type parameter symbol together
// with its type.
func (u *Universe) DeclareTypeParameter(name string, decl *Declaration) (*Symbol, *Type) {
	sym := NewResolvedSymbol(name, SymbolTypeParameter, decl, nil)
	t := u.NewTypeParameter(sym)
	sym.typ = t
	return sym, t
}

// NewObject creates an anonymous object type whose members are
// computed on first use.
func (u *Universe) NewObject(resolve MemberResolver) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectAnonymous
	t.members = &lazyMembers{resolve: resolve}
	return t
}

// NewInterface creates a named interface type. Generic interfaces
// list their type parameters and are instantiated with
// NewReference.
func (u *Universe) NewInterface(
	sym *Symbol,
	typeParams []*Symbol,
	resolve MemberResolver,
) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectInterface
	t.name = sym.Name
	t.symbol = sym
	t.typeParams = typeParams
	t.members = &lazyMembers{resolve: resolve}
	return t
}

// TypeParameters returns the declared type parameters of a generic
// interface.
func (u *Universe) TypeParameters(t *Type) []*Symbol {
	return t.typeParams
}

// NewReference instantiates a generic interface. The reference
// records the substitution of the interface's parameters.
func (u *Universe) NewReference(
	target *Type,
	args []*Type,
	resolve MemberResolver,
) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectReference
	t.target = target
	t.args = args
	t.mapper = &Mapper{Sources: target.typeParams, Targets: args}
	t.members = &lazyMembers{resolve: resolve}
	return t
}

// NewArray returns the interned array type of elem.
func (u *Universe) NewArray(elem *Type, readonly bool) *Type {
	cache, target := u.arrays, u.arrayTarget
	if readonly {
		cache, target = u.readonlyArrays, u.readonlyArrayTarget
	}
	if t, ok := cache[elem.id]; ok {
		return t
	}
	t := u.newType(FlagObject)
	t.objectFlags = ObjectReference
	t.target = target
	t.args = []*Type{elem}
	t.readonlyView = readonly
	cache[elem.id] = t
	return t
}

// NewTuple creates a tuple type. labels may be nil.
func (u *Universe) NewTuple(elems []*Type, labels []string, readonly bool) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectReference
	t.target = u.tupleTarget
	t.args = elems
	t.tupleLabels = labels
	t.readonlyView = readonly
	return t
}

// NewMapped creates a mapped object type. Concrete mapped types
// resolve their properties through resolve.
func (u *Universe) NewMapped(info *MappedInfo, resolve MemberResolver) *Type {
	t := u.newType(FlagObject)
	t.objectFlags = ObjectMapped
	t.mapped = info
	t.members = &lazyMembers{resolve: resolve}
	return t
}

// NewKeyOf creates a deferred `keyof T`.
func (u *Universe) NewKeyOf(operand *Type) *Type {
	t := u.newType(FlagIndex)
	t.operand = operand
	return t
}

// NewIndexedAccess creates a deferred `T[K]`.
func (u *Universe) NewIndexedAccess(object, index *Type) *Type {
	t := u.newType(FlagIndexedAccess)
	t.operand = object
	t.index = index
	return t
}

// NewConditional creates a deferred conditional type.
func (u *Universe) NewConditional(info *ConditionalInfo) *Type {
	t := u.newType(FlagConditional)
	t.conditional = info
	return t
}

// WithAlias attaches the alias a type was declared through.
// Freshly created objects are annotated in place; interned
// composite types are copied so that other users of the interned
// type are unaffected. Primitives and literals never carry
// aliases; a reference only records the generic alias it was
// instantiated through, on a copy that stays identical to the
// interned reference.
func (u *Universe) WithAlias(t *Type, name string, args []*Type) *Type {
	if t == nil || t.aliasName != "" || t.instanceOf != "" {
		return t
	}
	switch {
	case t.objectFlags&ObjectReference != 0 && len(args) > 0:
		clone := *t
		clone.instanceOf = name
		clone.origin = t
		return &clone
	case t.flags&FlagObject != 0 && t.objectFlags&(ObjectAnonymous|ObjectMapped) != 0:
		t.aliasName = name
		t.aliasArgs = args
		if len(args) > 0 {
			t.objectFlags |= ObjectInstantiated
		}
		return t
	case t.flags&(FlagUnion|FlagIntersection|FlagTemplateLiteral) != 0 && t.flags&FlagBoolean == 0:
		clone := *t
		u.nextID++
		clone.id = u.nextID
		clone.aliasName = name
		clone.aliasArgs = args
		return &clone
	}
	return t
}

// NewUnion builds a union type: members are flattened,
// deduplicated and ordered by creation; `any` and `unknown`
// absorb everything; `never` disappears; literals are dropped
// when their base primitive is present.
func (u *Universe) NewUnion(types []*Type) *Type {
	var flat []*Type
	var includes TypeFlags
	seen := make(map[*Type]bool)

	var add func(t *Type)
	add = func(t *Type) {
		t = t.canonical()
		if t.flags&FlagUnion != 0 {
			for _, m := range t.types {
				add(m)
			}
			return
		}
		includes |= t.flags
		if t.flags&FlagNever != 0 || seen[t] {
			return
		}
		seen[t] = true
		flat = append(flat, t)
	}
	for _, t := range types {
		if t != nil {
			add(t)
		}
	}

	if includes&FlagAny != 0 {
		for _, t := range flat {
			if t.flags&FlagAny != 0 {
				return t
			}
		}
	}
	if includes&FlagUnknown != 0 {
		return u.Unknown
	}

	reduced := make([]*Type, 0, len(flat))
	for _, t := range flat {
		switch {
		case t.flags&(FlagStringLiteral|FlagTemplateLiteral) != 0 && includes&FlagString != 0,
			t.flags&FlagNumberLiteral != 0 && includes&FlagNumber != 0,
			t.flags&FlagBigIntLiteral != 0 && includes&FlagBigInt != 0,
			t.flags&FlagUniqueESSymbol != 0 && includes&FlagESSymbol != 0,
			t.flags&FlagUndefined != 0 && includes&FlagVoid != 0:
			continue
		}
		reduced = append(reduced, t)
	}

	switch len(reduced) {
	case 0:
		return u.Never
	case 1:
		return reduced[0]
	}

	sortByID(reduced)
	key := idKey(reduced)
	if t, ok := u.unions[key]; ok {
		return t
	}

	t := u.newType(FlagUnion)
	t.types = reduced
	if len(reduced) == 2 && reduced[0] == u.False && reduced[1] == u.True {
		t.flags |= FlagBoolean
	}
	u.unions[key] = t
	return t
}

// NewIntersection builds an intersection type. Unions are
// distributed, conflicting primitives reduce to never, a literal
// absorbs its base primitive and object members stay as an
// intersection whose properties are intersected by name.
func (u *Universe) NewIntersection(types []*Type) *Type {
	var flat []*Type
	seen := make(map[*Type]bool)

	var add func(t *Type)
	add = func(t *Type) {
		t = t.canonical()
		if t.flags&FlagIntersection != 0 {
			for _, m := range t.types {
				add(m)
			}
			return
		}
		if !seen[t] {
			seen[t] = true
			flat = append(flat, t)
		}
	}
	for _, t := range types {
		if t != nil {
			add(t)
		}
	}

	for i, t := range flat {
		if t.flags&FlagUnion == 0 {
			continue
		}
		distributed := make([]*Type, 0, len(t.types))
		for _, m := range t.types {
			parts := make([]*Type, len(flat))
			copy(parts, flat)
			parts[i] = m
			distributed = append(distributed, u.NewIntersection(parts))
		}
		return u.NewUnion(distributed)
	}

	var members []*Type
	categories := make(map[string][]*Type)
	var order []string
	for _, t := range flat {
		switch {
		case t.flags&FlagNever != 0:
			return u.Never
		case t.flags&FlagAny != 0:
			return t
		case t.flags&FlagUnknown != 0:
			continue
		}
		if cat := primitiveCategory(t); cat != "" {
			if _, ok := categories[cat]; !ok {
				order = append(order, cat)
			}
			categories[cat] = append(categories[cat], t)
			continue
		}
		members = append(members, t)
	}

	if len(order) > 1 {
		return u.Never
	}
	if len(order) == 1 {
		prim, ok := reducePrimitives(categories[order[0]])
		if !ok {
			return u.Never
		}
		members = append(members, prim)
	}

	switch len(members) {
	case 0:
		return u.Unknown
	case 1:
		return members[0]
	}

	sortByID(members)
	key := idKey(members)
	if t, ok := u.intersections[key]; ok {
		return t
	}

	t := u.newType(FlagIntersection)
	t.types = members
	t.members = &lazyMembers{resolve: func() ([]*Symbol, []IndexInfo) {
		return u.intersectMembers(members)
	}}
	u.intersections[key] = t
	return t
}

func primitiveCategory(t *Type) string {
	switch {
	case t.flags&(FlagString|FlagStringLiteral|FlagTemplateLiteral) != 0:
		return "string"
	case t.flags&(FlagNumber|FlagNumberLiteral) != 0:
		return "number"
	case t.flags&(FlagBigInt|FlagBigIntLiteral) != 0:
		return "bigint"
	case t.flags&FlagBooleanLiteral != 0:
		return "boolean"
	case t.flags&(FlagESSymbol|FlagUniqueESSymbol) != 0:
		return "symbol"
	case t.flags&FlagVoid != 0:
		return "void"
	case t.flags&FlagUndefined != 0:
		return "undefined"
	case t.flags&FlagNull != 0:
		return "null"
	}
	return ""
}

// reducePrimitives intersects primitives of one category: the base
// primitive is absorbed by any unit type, two different unit types
// are disjoint.
func reducePrimitives(types []*Type) (*Type, bool) {
	var base, unit *Type
	for _, t := range types {
		if t.flags&(FlagString|FlagNumber|FlagBigInt|FlagESSymbol|FlagVoid|FlagUndefined|FlagNull) != 0 {
			base = t
			continue
		}
		if unit != nil && unit != t {
			return nil, false
		}
		unit = t
	}
	if unit != nil {
		return unit, true
	}
	return base, true
}

func (u *Universe) intersectMembers(members []*Type) ([]*Symbol, []IndexInfo) {
	var names []string
	byName := make(map[string][]*Symbol)
	var indexes []IndexInfo
	for _, m := range members {
		props, idx := u.membersOf(m)
		for _, p := range props {
			if _, ok := byName[p.Name]; !ok {
				names = append(names, p.Name)
			}
			byName[p.Name] = append(byName[p.Name], p)
		}
		indexes = append(indexes, idx...)
	}

	props := make([]*Symbol, 0, len(names))
	for _, name := range names {
		parts := byName[name]
		if len(parts) == 1 {
			props = append(props, parts[0])
			continue
		}
		merged := NewSymbol(name, SymbolProperty, parts[0].Declaration, func() *Type {
			types := make([]*Type, len(parts))
			for i, p := range parts {
				types[i] = p.resolvedType()
			}
			return u.NewIntersection(types)
		}, nil)
		optional := true
		for _, p := range parts {
			optional = optional && p.Optional
		}
		merged.Optional = optional
		props = append(props, merged)
	}
	return props, indexes
}

func (u *Universe) membersOf(t *Type) ([]*Symbol, []IndexInfo) {
	if t == nil || t.members == nil {
		return nil, nil
	}
	return t.members.get()
}

// NewTemplate builds a template literal type from texts and holes
// (len(texts) == len(holes)+1). Literal holes are folded into the
// text, union holes distribute, and a template without holes is a
// string literal.
func (u *Universe) NewTemplate(texts []string, holes []*Type) *Type {
	for i, h := range holes {
		if h.flags&FlagNever != 0 {
			return u.Never
		}
		if h.flags&FlagUnion == 0 {
			continue
		}
		out := make([]*Type, 0, len(h.types))
		for _, m := range h.types {
			hs := make([]*Type, len(holes))
			copy(hs, holes)
			hs[i] = m
			out = append(out, u.NewTemplate(texts, hs))
		}
		return u.NewUnion(out)
	}

	newTexts := []string{texts[0]}
	var newHoles []*Type
	for i, h := range holes {
		if s, ok := literalText(h); ok {
			newTexts[len(newTexts)-1] += s + texts[i+1]
			continue
		}
		newHoles = append(newHoles, h)
		newTexts = append(newTexts, texts[i+1])
	}

	if len(newHoles) == 0 {
		return u.StringLiteral(newTexts[0])
	}

	var sb strings.Builder
	for i, text := range newTexts {
		sb.WriteString(strconv.Quote(text))
		if i < len(newHoles) {
			sb.WriteString("#" + strconv.Itoa(newHoles[i].id))
		}
	}
	key := sb.String()
	if t, ok := u.templates[key]; ok {
		return t
	}

	t := u.newType(FlagTemplateLiteral)
	t.texts = newTexts
	t.holes = newHoles
	u.templates[key] = t
	return t
}

func literalText(t *Type) (string, bool) {
	switch {
	case t.flags&FlagStringLiteral != 0:
		return t.value.(string), true
	case t.flags&FlagNumberLiteral != 0:
		return formatNumber(t.value.(float64)), true
	case t.flags&FlagBooleanLiteral != 0:
		return strconv.FormatBool(t.value.(bool)), true
	case t.flags&FlagBigIntLiteral != 0:
		return t.value.(*big.Int).String(), true
	case t.flags&FlagNull != 0:
		return "null", true
	case t.flags&FlagUndefined != 0:
		return "undefined", true
	}
	return "", false
}

// canonical returns the interned type t was copied from, or t.
func (t *Type) canonical() *Type {
	if t.origin != nil {
		return t.origin
	}
	return t
}

// Identical reports whether a and b are the same type, looking
// through copies made by WithAlias.
func (u *Universe) Identical(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.canonical() == b.canonical()
}

func sortByID(types []*Type) {
	sort.Slice(types, func(i, j int) bool { return types[i].id < types[j].id })
}

func idKey(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = strconv.Itoa(t.id)
	}
	return strings.Join(parts, ",")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
