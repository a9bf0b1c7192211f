package load

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/suggest"
)

const (
	maxEvalDepth     = 200
	maxDeferredDepth = 3
)

// compiler evaluates declarations of a set of modules into types of
// one universe.
type compiler struct {
	u       *introspect.Universe
	opts    CompilerOptions
	log     logging.Logger
	modules map[string]*module
	prelude *module

	depth         int
	deferred      int
	reportedDepth bool
	relating      map[[2]int]bool
}

func newCompiler(opts CompilerOptions, log logging.Logger) *compiler {
	c := &compiler{
		u:        introspect.NewUniverse(),
		opts:     opts,
		log:      log,
		modules:  make(map[string]*module),
		relating: make(map[[2]int]bool),
	}
	c.prelude = newModule("", "", "lib.d.ts", preludeSource)
	c.prelude.declare()
	return c
}

// scope is the evaluation environment of a type expression: its
// module, the type parameters in scope and the declaration being
// evaluated.
type scope struct {
	mod    *module
	params map[string]*introspect.Type
	decl   string
}

func (s scope) with(name string, t *introspect.Type) scope {
	params := make(map[string]*introspect.Type, len(s.params)+1)
	for k, v := range s.params {
		params[k] = v
	}
	params[name] = t
	s.params = params
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *compiler) declaration(m *module, name string, pos, end int) *introspect.Declaration {
	decl := &introspect.Declaration{Name: name, Pos: m.r.position(pos)}
	if end > pos && end <= len(m.src) {
		decl.Text = m.src[pos:end]
	}
	return decl
}

// symbol returns the symbol of an entity, creating it on first
// use.
func (c *compiler) symbol(e *entity) *introspect.Symbol {
	if e.sym != nil {
		return e.sym
	}

	for _, tp := range e.typeParams() {
		sym, t := c.u.DeclareTypeParameter(tp.name, c.declaration(e.mod, tp.name, tp.pos, tp.pos+len(tp.name)))
		e.params = append(e.params, sym)
		e.paramTypes = append(e.paramTypes, t)
	}

	if e.kind == entityAlias {
		decl := c.declaration(e.mod, e.name, e.alias.pos, e.alias.end)
		e.sym = introspect.NewSymbol(e.name, introspect.SymbolTypeAlias, decl,
			func() *introspect.Type { return c.declaredAlias(e) },
			func() *introspect.Type { return c.aliasCycle(e) },
		)
		return e.sym
	}

	first := e.ifaces[0]
	decl := c.declaration(e.mod, e.name, first.pos, first.end)
	e.sym = introspect.NewSymbol(e.name, introspect.SymbolInterface, decl, func() *introspect.Type {
		sc := c.entityScope(e, e.paramTypes)
		return c.u.NewInterface(e.sym, e.params, func() ([]*introspect.Symbol, []introspect.IndexInfo) {
			return c.interfaceMembers(e, sc)
		})
	}, nil)
	return e.sym
}

func (c *compiler) entityScope(e *entity, args []*introspect.Type) scope {
	sc := scope{mod: e.mod, params: make(map[string]*introspect.Type), decl: e.name}
	for i, tp := range e.typeParams() {
		if i < len(args) {
			sc.params[tp.name] = args[i]
		}
	}
	return sc
}

func (c *compiler) declaredAlias(e *entity) *introspect.Type {
	t := c.eval(c.entityScope(e, e.paramTypes), e.alias.typ)
	return c.u.WithAlias(t, e.name, e.paramTypes)
}

func (c *compiler) aliasCycle(e *entity) *introspect.Type {
	c.reportCycle(e)
	e.sym.Settle(c.u.Error)
	return c.u.Error
}

func (c *compiler) reportCycle(e *entity) {
	if e.reported {
		return
	}
	e.reported = true
	e.mod.report(e.alias.pos, CodeCircularAlias, "Type alias '%s' circularly references itself.", e.name)
}

func typeKey(types []*introspect.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = strconv.Itoa(t.ID())
	}
	return strings.Join(parts, ",")
}

func (c *compiler) instantiateAlias(e *entity, args []*introspect.Type) *introspect.Type {
	if e.instances == nil {
		e.instances = make(map[string]*instance)
	}
	key := typeKey(args)
	if inst, ok := e.instances[key]; ok {
		if inst.resolving {
			c.reportCycle(e)
			return c.u.Error
		}
		return inst.typ
	}
	inst := &instance{resolving: true}
	e.instances[key] = inst
	t := c.eval(c.entityScope(e, args), e.alias.typ)
	inst.typ = c.u.WithAlias(t, e.name, args)
	inst.resolving = false
	return inst.typ
}

func (c *compiler) instantiateInterface(e *entity, args []*introspect.Type) *introspect.Type {
	if e.instances == nil {
		e.instances = make(map[string]*instance)
	}
	key := typeKey(args)
	if inst, ok := e.instances[key]; ok {
		return inst.typ
	}
	target := c.u.DeclaredTypeOf(c.symbol(e))
	sc := c.entityScope(e, args)
	t := c.u.NewReference(target, args, func() ([]*introspect.Symbol, []introspect.IndexInfo) {
		return c.interfaceMembers(e, sc)
	})
	e.instances[key] = &instance{typ: t}
	return t
}

func (c *compiler) interfaceMembers(e *entity, sc scope) ([]*introspect.Symbol, []introspect.IndexInfo) {
	var props []*introspect.Symbol
	var indexes []introspect.IndexInfo
	own := make(map[string]bool)
	for _, decl := range e.ifaces {
		p, idx := c.objectMembers(sc, decl.body)
		for _, sym := range p {
			if !own[sym.Name] {
				own[sym.Name] = true
				props = append(props, sym)
			}
		}
		indexes = append(indexes, idx...)
	}

	for _, decl := range e.ifaces {
		for _, ref := range decl.extends {
			base := c.eval(sc, ref)
			if c.u.Flags(base)&introspect.FlagObject == 0 && c.u.Flags(base)&introspect.FlagIntersection == 0 {
				continue
			}
			for _, sym := range c.u.Properties(base) {
				if !own[sym.Name] {
					own[sym.Name] = true
					props = append(props, sym)
				}
			}
			if len(indexes) == 0 {
				indexes = append(indexes, c.u.IndexInfos(base)...)
			}
		}
	}
	return props, indexes
}

func (c *compiler) objectMembers(sc scope, obj *objectType) ([]*introspect.Symbol, []introspect.IndexInfo) {
	props := make([]*introspect.Symbol, 0, len(obj.properties))
	for _, p := range obj.properties {
		p := p
		sym := introspect.NewSymbol(p.name, introspect.SymbolProperty,
			c.declaration(sc.mod, p.name, p.pos, p.pos+len(p.name)),
			func() *introspect.Type {
				t := c.eval(sc, p.typ)
				if p.optional {
					t = c.optionalType(t)
				}
				return t
			},
			func() *introspect.Type { return c.u.Error },
		)
		sym.Optional = p.optional
		sym.Readonly = p.readonly
		props = append(props, sym)
	}

	indexes := make([]introspect.IndexInfo, 0, len(obj.indexes))
	for _, idx := range obj.indexes {
		indexes = append(indexes, introspect.IndexInfo{
			KeyName:   idx.keyName,
			KeyType:   c.eval(sc, idx.keyType),
			ValueType: c.eval(sc, idx.value),
			Readonly:  idx.readonly,
		})
	}
	return props, indexes
}

// optionalType adds undefined to the type of an optional property
// under strict null checks.
func (c *compiler) optionalType(t *introspect.Type) *introspect.Type {
	if !c.opts.StrictNullChecks || c.opts.ExactOptionalPropertyTypes {
		return t
	}
	return c.u.NewUnion([]*introspect.Type{t, c.u.Undefined})
}

func (c *compiler) removeUndefined(t *introspect.Type) *introspect.Type {
	members := c.u.UnionMembers(t)
	if members == nil {
		return t
	}
	kept := make([]*introspect.Type, 0, len(members))
	for _, m := range members {
		if m != c.u.Undefined {
			kept = append(kept, m)
		}
	}
	return c.u.NewUnion(kept)
}

// eval computes the type of a type expression.
func (c *compiler) eval(sc scope, n node) *introspect.Type {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > maxEvalDepth {
		if c.reportedDepth {
			return c.u.Error
		}
		c.reportedDepth = true
		sc.mod.report(n.Pos(), CodeExcessivelyDeep, "Type instantiation is excessively deep and possibly infinite.")
		return c.u.Error
	}

	switch n := n.(type) {
	case *keywordType:
		return c.keyword(n.name)
	case *literalType:
		return c.literal(n)
	case *uniqueSymbolType:
		return c.u.UniqueSymbol(sc.decl)
	case *typeRef:
		return c.evalRef(sc, n)
	case *arrayType:
		return c.u.NewArray(c.eval(sc, n.elem), false)
	case *readonlyType:
		switch operand := n.operand.(type) {
		case *arrayType:
			return c.u.NewArray(c.eval(sc, operand.elem), true)
		case *tupleType:
			return c.tuple(sc, operand, true)
		}
		sc.mod.report(n.pos, CodeReadonlyModifier, "'readonly' type modifier is only permitted on array and tuple literal types.")
		return c.eval(sc, n.operand)
	case *tupleType:
		return c.tuple(sc, n, false)
	case *unionType:
		return c.u.NewUnion(c.evalAll(sc, n.types))
	case *intersectionType:
		return c.u.NewIntersection(c.evalAll(sc, n.types))
	case *keyOfType:
		return c.keyOf(c.eval(sc, n.operand))
	case *indexedAccessType:
		return c.indexedAccess(sc, n.index.Pos(), c.eval(sc, n.object), c.eval(sc, n.index))
	case *conditionalType:
		return c.conditional(sc, n)
	case *parenType:
		return c.eval(sc, n.inner)
	case *templateType:
		return c.u.NewTemplate(n.texts, c.evalAll(sc, n.holes))
	case *objectType:
		return c.u.NewObject(func() ([]*introspect.Symbol, []introspect.IndexInfo) {
			return c.objectMembers(sc, n)
		})
	case *mappedType:
		return c.mapped(sc, n)
	}
	return c.u.Error
}

func (c *compiler) evalAll(sc scope, nodes []node) []*introspect.Type {
	types := make([]*introspect.Type, len(nodes))
	for i, n := range nodes {
		types[i] = c.eval(sc, n)
	}
	return types
}

func (c *compiler) keyword(name string) *introspect.Type {
	switch name {
	case "any":
		return c.u.Any
	case "unknown":
		return c.u.Unknown
	case "string":
		return c.u.String
	case "number":
		return c.u.Number
	case "bigint":
		return c.u.BigInt
	case "boolean":
		return c.u.Boolean
	case "symbol":
		return c.u.ESSymbol
	case "void":
		return c.u.Void
	case "undefined":
		return c.u.Undefined
	case "null":
		return c.u.Null
	case "never":
		return c.u.Never
	case "object":
		return c.u.NewObject(nil)
	}
	return c.u.Error
}

func (c *compiler) literal(n *literalType) *introspect.Type {
	switch n.kind {
	case litString:
		return c.u.StringLiteral(n.str)
	case litNumber:
		return c.u.NumberLiteral(n.number)
	case litBigInt:
		return c.u.BigIntLiteral(n.bigint)
	case litTrue:
		return c.u.True
	default:
		return c.u.False
	}
}

func (c *compiler) tuple(sc scope, n *tupleType, readonly bool) *introspect.Type {
	elems := make([]*introspect.Type, len(n.elems))
	var labels []string
	for i, el := range n.elems {
		elems[i] = c.eval(sc, el.typ)
		if el.label != "" {
			if labels == nil {
				labels = make([]string, len(n.elems))
			}
			labels[i] = el.label
		}
	}
	return c.u.NewTuple(elems, labels, readonly)
}

var builtinGenerics = map[string]bool{"Array": true, "ReadonlyArray": true}

func isBuiltinName(name string) bool {
	return builtinGenerics[name] || keywordTypes[name]
}

func (c *compiler) evalRef(sc scope, ref *typeRef) *introspect.Type {
	if t, ok := sc.params[ref.name]; ok {
		if len(ref.args) > 0 {
			sc.mod.report(ref.pos, CodeNotGeneric, "Type '%s' is not generic.", ref.name)
		}
		return t
	}
	if strings.Contains(ref.name, ".") {
		ns := ref.name[:strings.IndexByte(ref.name, '.')]
		sc.mod.report(ref.pos, CodeCannotFindNamespace, "Cannot find namespace '%s'.", ns)
		return c.u.Error
	}

	e := c.lookup(sc.mod, ref.name)
	if e == nil && builtinGenerics[ref.name] {
		if len(ref.args) != 1 {
			sc.mod.report(ref.pos, CodeRequiresTypeArguments,
				"Generic type '%s<T>' requires 1 type argument(s).", ref.name)
			return c.u.Error
		}
		return c.u.NewArray(c.eval(sc, ref.args[0]), ref.name == "ReadonlyArray")
	}
	if e == nil {
		if _, imported := sc.mod.imports[ref.name]; !imported {
			c.reportUnknownName(sc.mod, ref.pos, ref.name, sc.params)
		}
		return c.u.Error
	}

	sym := c.symbol(e)
	params := e.typeParams()
	if len(params) == 0 {
		if len(ref.args) > 0 {
			sc.mod.report(ref.pos, CodeNotGeneric, "Type '%s' is not generic.", ref.name)
		}
		return c.u.DeclaredTypeOf(sym)
	}

	args, ok := c.typeArguments(sc, ref, e)
	if !ok {
		return c.u.Error
	}
	if e.kind == entityAlias {
		return c.instantiateAlias(e, args)
	}
	return c.instantiateInterface(e, args)
}

// typeArguments evaluates the arguments of a generic reference,
// filling defaults and checking arity and constraints.
func (c *compiler) typeArguments(sc scope, ref *typeRef, e *entity) ([]*introspect.Type, bool) {
	params := e.typeParams()
	required := 0
	for _, tp := range params {
		if tp.def == nil {
			required++
		}
	}
	if len(ref.args) < required || len(ref.args) > len(params) {
		names := make([]string, len(params))
		for i, tp := range params {
			names[i] = tp.name
		}
		display := e.name + "<" + strings.Join(names, ", ") + ">"
		if required == len(params) {
			sc.mod.report(ref.pos, CodeRequiresTypeArguments,
				"Generic type '%s' requires %d type argument(s).", display, required)
		} else {
			sc.mod.report(ref.pos, CodeRequiresBetweenArguments,
				"Generic type '%s' requires between %d and %d type arguments.", display, required, len(params))
		}
		return nil, false
	}

	args := c.evalAll(sc, ref.args)
	declScope := scope{mod: e.mod, params: make(map[string]*introspect.Type), decl: e.name}
	for i, tp := range params {
		if i >= len(args) {
			args = append(args, c.eval(declScope, tp.def))
		}
		declScope = declScope.with(tp.name, args[i])
	}

	for i, tp := range params {
		if tp.constraint == nil || i >= len(ref.args) {
			continue
		}
		constraint := c.eval(declScope, tp.constraint)
		if c.isGeneric(args[i]) || c.isGeneric(constraint) {
			continue
		}
		if !c.assignable(args[i], constraint) {
			sc.mod.report(ref.args[i].Pos(), CodeConstraintNotSatisfied,
				"Type '%s' does not satisfy the constraint '%s'.",
				c.u.TypeToString(args[i]), c.u.TypeToString(constraint))
		}
	}
	return args, true
}

func (c *compiler) reportUnknownName(m *module, pos int, name string, params map[string]*introspect.Type) {
	candidates := m.localNames()
	for p := range params {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, c.prelude.order...)
	for b := range builtinGenerics {
		candidates = append(candidates, b)
	}
	for k := range keywordTypes {
		candidates = append(candidates, k)
	}

	if closest, ok := suggest.Closest(name, candidates); ok {
		m.report(pos, CodeCannotFindNameDidYouMean, "Cannot find name '%s'. Did you mean '%s'?", name, closest)
		return
	}
	m.report(pos, CodeCannotFindName, "Cannot find name '%s'.", name)
}

// isGeneric reports whether a type still depends on type
// parameters, so that operations on it must be deferred.
func (c *compiler) isGeneric(t *introspect.Type) bool {
	flags := c.u.Flags(t)
	switch {
	case flags&(introspect.FlagTypeParameter|introspect.FlagIndex|introspect.FlagIndexedAccess|introspect.FlagConditional) != 0:
		return true
	case flags&introspect.FlagUnion != 0:
		return c.anyGeneric(c.u.UnionMembers(t))
	case flags&introspect.FlagIntersection != 0:
		return c.anyGeneric(c.u.IntersectionMembers(t))
	case flags&introspect.FlagTemplateLiteral != 0:
		_, holes := c.u.TemplateParts(t)
		return c.anyGeneric(holes)
	case flags&introspect.FlagObject != 0:
		if info := c.u.MappedInfo(t); info != nil && c.isGeneric(info.Constraint) {
			return true
		}
		return c.anyGeneric(c.u.TypeArguments(t))
	}
	return false
}

func (c *compiler) anyGeneric(types []*introspect.Type) bool {
	for _, t := range types {
		if c.isGeneric(t) {
			return true
		}
	}
	return false
}

func (c *compiler) keyOf(t *introspect.Type) *introspect.Type {
	u := c.u
	flags := u.Flags(t)
	switch {
	case flags&(introspect.FlagAny|introspect.FlagNever) != 0:
		return u.NewUnion([]*introspect.Type{u.String, u.Number, u.ESSymbol})
	case c.isGeneric(t):
		return u.NewKeyOf(t)
	case flags&introspect.FlagUnion != 0:
		keys := make([]*introspect.Type, 0)
		for _, m := range u.UnionMembers(t) {
			keys = append(keys, c.keyOf(m))
		}
		return u.NewIntersection(keys)
	case flags&introspect.FlagIntersection != 0:
		keys := make([]*introspect.Type, 0)
		for _, m := range u.IntersectionMembers(t) {
			keys = append(keys, c.keyOf(m))
		}
		return u.NewUnion(keys)
	case flags&introspect.FlagObject == 0:
		return u.Never
	case u.IsArrayType(t):
		return u.Number
	case u.IsTupleType(t):
		keys := []*introspect.Type{u.Number}
		for i := range u.TypeArguments(t) {
			keys = append(keys, u.StringLiteral(strconv.Itoa(i)))
		}
		return u.NewUnion(keys)
	}

	var keys []*introspect.Type
	for _, idx := range u.IndexInfos(t) {
		if u.Flags(idx.KeyType)&introspect.FlagString != 0 {
			keys = append(keys, u.String, u.Number)
			continue
		}
		keys = append(keys, idx.KeyType)
	}
	for _, p := range u.Properties(t) {
		keys = append(keys, u.StringLiteral(p.Name))
	}
	return u.NewUnion(keys)
}

func (c *compiler) indexedAccess(sc scope, pos int, object, index *introspect.Type) *introspect.Type {
	u := c.u
	if c.isGeneric(object) || c.isGeneric(index) {
		return u.NewIndexedAccess(object, index)
	}
	if u.Flags(object)&introspect.FlagAny != 0 || u.Flags(index)&introspect.FlagAny != 0 {
		return u.Error
	}
	if members := u.UnionMembers(index); members != nil && u.Flags(index)&introspect.FlagBoolean == 0 {
		parts := make([]*introspect.Type, len(members))
		for i, m := range members {
			parts[i] = c.indexedAccess(sc, pos, object, m)
		}
		return u.NewUnion(parts)
	}
	if members := u.UnionMembers(object); members != nil {
		parts := make([]*introspect.Type, len(members))
		for i, m := range members {
			parts[i] = c.indexedAccess(sc, pos, m, index)
		}
		return u.NewUnion(parts)
	}

	indexFlags := u.Flags(index)
	if u.IsTupleType(object) || u.IsArrayType(object) {
		return c.elementAccess(sc, pos, object, index)
	}

	if indexFlags&(introspect.FlagStringLiteral|introspect.FlagNumberLiteral) != 0 {
		v, _ := u.LiteralValue(index)
		name := fmt.Sprint(v)
		if f, ok := v.(float64); ok {
			name = formatNumber(f)
		}
		for _, p := range u.Properties(object) {
			if p.Name == name {
				return u.TypeOfSymbol(p)
			}
		}
		if value := c.indexValue(object, index); value != nil {
			return value
		}
		sc.mod.report(pos, CodePropertyDoesNotExist, "Property '%s' does not exist on type '%s'.",
			name, u.TypeToString(object))
		return u.Error
	}

	if value := c.indexValue(object, index); value != nil {
		return value
	}
	sc.mod.report(pos, CodeCannotIndex, "Type '%s' cannot be used to index type '%s'.",
		u.TypeToString(index), u.TypeToString(object))
	return u.Error
}

// indexValue finds the index signature applying to a key.
func (c *compiler) indexValue(object, key *introspect.Type) *introspect.Type {
	u := c.u
	numeric := u.Flags(key)&(introspect.FlagNumber|introspect.FlagNumberLiteral) != 0
	if lit, ok := u.LiteralValue(key); ok {
		if s, isString := lit.(string); isString {
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				numeric = true
			}
		}
	}
	var fallback *introspect.Type
	for _, idx := range u.IndexInfos(object) {
		keyFlags := u.Flags(idx.KeyType)
		switch {
		case keyFlags&introspect.FlagNumber != 0 && numeric:
			return idx.ValueType
		case keyFlags&introspect.FlagString != 0 && u.Flags(key)&(introspect.FlagString|introspect.FlagStringLiteral|introspect.FlagNumber|introspect.FlagNumberLiteral|introspect.FlagTemplateLiteral) != 0:
			fallback = idx.ValueType
		case keyFlags&introspect.FlagESSymbol != 0 && u.Flags(key)&(introspect.FlagESSymbol|introspect.FlagUniqueESSymbol) != 0:
			return idx.ValueType
		case keyFlags&introspect.FlagTemplateLiteral != 0 && c.assignable(key, idx.KeyType):
			return idx.ValueType
		}
	}
	return fallback
}

func (c *compiler) elementAccess(sc scope, pos int, object, index *introspect.Type) *introspect.Type {
	u := c.u
	elems := u.TypeArguments(object)
	isTuple := u.IsTupleType(object)
	indexFlags := u.Flags(index)

	switch {
	case indexFlags&introspect.FlagNumber != 0:
		if isTuple {
			return u.NewUnion(elems)
		}
		return elems[0]
	case indexFlags&introspect.FlagNumberLiteral != 0:
		if !isTuple {
			return elems[0]
		}
		v, _ := u.LiteralValue(index)
		i := int(v.(float64))
		if float64(i) != v.(float64) || i < 0 || i >= len(elems) {
			sc.mod.report(pos, CodeTupleIndexOutOfRange,
				"Tuple type '%s' of length '%d' has no element at index '%s'.",
				u.TypeToString(object), len(elems), formatNumber(v.(float64)))
			return u.Error
		}
		return elems[i]
	case indexFlags&introspect.FlagStringLiteral != 0:
		v, _ := u.LiteralValue(index)
		name := v.(string)
		if name == "length" {
			if isTuple {
				return u.NumberLiteral(float64(len(elems)))
			}
			return u.Number
		}
		if n, err := strconv.Atoi(name); err == nil {
			return c.elementAccess(sc, pos, object, u.NumberLiteral(float64(n)))
		}
		sc.mod.report(pos, CodePropertyDoesNotExist, "Property '%s' does not exist on type '%s'.",
			name, u.TypeToString(object))
		return u.Error
	}
	sc.mod.report(pos, CodeCannotIndex, "Type '%s' cannot be used to index type '%s'.",
		u.TypeToString(index), u.TypeToString(object))
	return u.Error
}

func (c *compiler) conditional(sc scope, n *conditionalType) *introspect.Type {
	check := c.eval(sc, n.check)

	if ref, ok := n.check.(*typeRef); ok && len(ref.args) == 0 {
		if _, isParam := sc.params[ref.name]; isParam {
			switch {
			case c.u.Flags(check)&introspect.FlagNever != 0:
				return c.u.Never
			case c.u.Flags(check)&introspect.FlagUnion != 0:
				members := c.u.UnionMembers(check)
				results := make([]*introspect.Type, len(members))
				for i, m := range members {
					results[i] = c.resolveConditional(sc.with(ref.name, m), n, m)
				}
				return c.u.NewUnion(results)
			}
		}
	}
	return c.resolveConditional(sc, n, check)
}

func (c *compiler) resolveConditional(sc scope, n *conditionalType, check *introspect.Type) *introspect.Type {
	u := c.u
	extends := c.eval(sc, n.extends)

	if c.isGeneric(check) || c.isGeneric(extends) {
		info := &introspect.ConditionalInfo{Check: check, Extends: extends, True: u.Unknown, False: u.Unknown}
		if c.deferred < maxDeferredDepth {
			c.deferred++
			info.True = c.eval(sc, n.whenTrue)
			info.False = c.eval(sc, n.whenFalse)
			c.deferred--
		}
		return u.NewConditional(info)
	}

	if u.Flags(check)&introspect.FlagAny != 0 {
		if u.Flags(extends)&(introspect.FlagAny|introspect.FlagUnknown) != 0 {
			return c.eval(sc, n.whenTrue)
		}
		return u.NewUnion([]*introspect.Type{c.eval(sc, n.whenTrue), c.eval(sc, n.whenFalse)})
	}

	if c.assignable(check, extends) {
		return c.eval(sc, n.whenTrue)
	}
	return c.eval(sc, n.whenFalse)
}

func (c *compiler) mapped(sc scope, n *mappedType) *introspect.Type {
	u := c.u
	constraint := c.eval(sc, n.constraint)
	info := &introspect.MappedInfo{
		KeyName:    n.keyName,
		Constraint: constraint,
		Optional:   n.optional == modAdd,
		Readonly:   n.readonly == modAdd,
	}

	if c.isGeneric(constraint) {
		_, key := u.DeclareTypeParameter(n.keyName, nil)
		inner := sc.with(n.keyName, key)
		if n.nameType != nil {
			info.NameType = c.eval(inner, n.nameType)
		}
		info.Template = c.eval(inner, n.template)
		return u.NewMapped(info, nil)
	}

	// modifiers are copied from the mapped object for `keyof X`
	// constraints and for `X[P]` templates
	var source *introspect.Type
	if k, ok := n.constraint.(*keyOfType); ok {
		source = c.eval(sc, k.operand)
	} else if access, ok := n.template.(*indexedAccessType); ok {
		if key, ok := access.index.(*typeRef); ok && key.name == n.keyName && len(key.args) == 0 {
			source = c.eval(sc, access.object)
		}
	}

	return u.NewMapped(info, func() ([]*introspect.Symbol, []introspect.IndexInfo) {
		return c.mappedMembers(sc, n, constraint, source)
	})
}

func (c *compiler) mappedMembers(
	sc scope,
	n *mappedType,
	constraint, source *introspect.Type,
) ([]*introspect.Symbol, []introspect.IndexInfo) {
	u := c.u
	keys := u.UnionMembers(constraint)
	if keys == nil || u.Flags(constraint)&introspect.FlagBoolean != 0 {
		keys = []*introspect.Type{constraint}
	}

	var props []*introspect.Symbol
	var indexes []introspect.IndexInfo
	seen := make(map[string]bool)

	for _, key := range keys {
		inner := sc.with(n.keyName, key)
		names := []*introspect.Type{key}
		if n.nameType != nil {
			nameType := c.eval(inner, n.nameType)
			names = u.UnionMembers(nameType)
			if names == nil {
				names = []*introspect.Type{nameType}
			}
		}

		for _, name := range names {
			flags := u.Flags(name)
			switch {
			case flags&(introspect.FlagStringLiteral|introspect.FlagNumberLiteral) != 0:
				v, _ := u.LiteralValue(name)
				propName := fmt.Sprint(v)
				if f, ok := v.(float64); ok {
					propName = formatNumber(f)
				}
				if seen[propName] {
					continue
				}
				seen[propName] = true
				props = append(props, c.mappedProperty(inner, n, propName, source))
			case flags&(introspect.FlagString|introspect.FlagNumber|introspect.FlagESSymbol|introspect.FlagTemplateLiteral) != 0:
				indexes = append(indexes, introspect.IndexInfo{
					KeyName:   n.keyName,
					KeyType:   name,
					ValueType: c.eval(inner, n.template),
					Readonly:  n.readonly == modAdd,
				})
			}
		}
	}
	return props, indexes
}

func (c *compiler) mappedProperty(sc scope, n *mappedType, name string, source *introspect.Type) *introspect.Symbol {
	var sourceProp *introspect.Symbol
	if source != nil {
		for _, p := range c.u.Properties(source) {
			if p.Name == name {
				sourceProp = p
				break
			}
		}
	}

	optional := n.optional == modAdd || (n.optional == modNone && sourceProp != nil && sourceProp.Optional)
	readonly := n.readonly == modAdd || (n.readonly == modNone && sourceProp != nil && sourceProp.Readonly)

	sym := introspect.NewSymbol(name, introspect.SymbolProperty,
		c.declaration(sc.mod, name, n.pos, n.pos),
		func() *introspect.Type {
			t := c.eval(sc, n.template)
			switch {
			case n.optional == modRemove:
				return c.removeUndefined(t)
			case optional:
				return c.optionalType(t)
			}
			return t
		},
		func() *introspect.Type { return c.u.Error },
	)
	sym.Optional = optional
	sym.Readonly = readonly
	return sym
}
