package load

import (
	"math/big"
	"strings"
)

// parser builds the syntax tree of one file. It recovers from
// errors statement by statement; every problem is reported as a
// syntactic diagnostic.
type parser struct {
	lx  *lexer
	tok token
	r   *reporter
}

func parse(src string, r *reporter) *sourceFile {
	p := &parser{r: r}
	p.lx = newLexer(src, func(offset, code int, format string, args ...any) {
		r.report(PhaseSyntactic, offset, code, format, args...)
	})
	p.next()
	return p.parseFile()
}

func (p *parser) next() {
	p.tok = p.lx.next()
}

func (p *parser) errorf(offset, code int, format string, args ...any) {
	p.r.report(PhaseSyntactic, offset, code, format, args...)
}

func (p *parser) isPunct(text string) bool {
	return p.tok.is(tokPunct, text)
}

func (p *parser) isKeyword(text string) bool {
	return p.tok.is(tokIdent, text)
}

func (p *parser) optional(text string) bool {
	if p.isPunct(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) bool {
	if p.optional(text) {
		return true
	}
	p.errorf(p.tok.start, CodeTokenExpected, "'%s' expected.", text)
	return false
}

func (p *parser) expectIdent() (string, int) {
	if p.tok.kind != tokIdent {
		p.errorf(p.tok.start, CodeIdentifierExpected, "Identifier expected.")
		return "", p.tok.start
	}
	name, pos := p.tok.text, p.tok.start
	p.next()
	return name, pos
}

// lookahead runs f and rewinds the parser afterwards.
func (p *parser) lookahead(f func() bool) bool {
	saved, pos := p.tok, p.lx.pos
	silent := p.lx.report
	p.lx.report = func(int, int, string, ...any) {}
	ok := f()
	p.lx.report = silent
	p.tok, p.lx.pos = saved, pos
	return ok
}

func (p *parser) parseFile() *sourceFile {
	f := &sourceFile{}
	for p.tok.kind != tokEOF {
		if p.optional(";") {
			continue
		}
		start := p.tok.start
		stmt := p.parseStatement()
		if stmt != nil {
			f.statements = append(f.statements, stmt)
		}
		if p.tok.start == start && p.tok.kind != tokEOF {
			// nothing was consumed
			p.next()
		}
	}
	return f
}

func (p *parser) parseStatement() node {
	start := p.tok.start
	exported := false
	if p.isKeyword("export") {
		p.next()
		exported = true
		switch {
		case p.isPunct("{"):
			return p.parseExportClause(start)
		case p.isKeyword("type") && p.lookahead(func() bool { p.next(); return p.isPunct("{") }):
			p.next()
			return p.parseExportClause(start)
		}
	}
	if p.isKeyword("declare") {
		p.next()
	}

	switch {
	case p.isKeyword("type"):
		return p.parseAlias(start, exported)
	case p.isKeyword("interface"):
		return p.parseInterface(start, exported)
	case p.isKeyword("import") && !exported:
		return p.parseImport(start)
	}

	p.errorf(p.tok.start, CodeDeclarationExpected, "Declaration or statement expected.")
	p.recover()
	return nil
}

// recover skips to the next statement boundary.
func (p *parser) recover() {
	for p.tok.kind != tokEOF {
		if p.optional(";") {
			return
		}
		p.next()
		if p.tok.newline && p.tok.kind == tokIdent {
			switch p.tok.text {
			case "type", "interface", "export", "import", "declare":
				return
			}
		}
	}
}

func (p *parser) endStatement() {
	if p.optional(";") || p.tok.newline || p.tok.kind == tokEOF || p.isPunct("}") {
		return
	}
	p.errorf(p.tok.start, CodeTokenExpected, "';' expected.")
	p.recover()
}

func (p *parser) parseAlias(start int, exported bool) node {
	p.next() // type
	name, _ := p.expectIdent()
	decl := &aliasDecl{span: span{start}, name: name, exported: exported}
	if p.isPunct("<") {
		decl.params = p.parseTypeParams()
	}
	p.expect("=")
	decl.typ = p.parseType()
	decl.end = p.lastEnd()
	p.endStatement()
	return decl
}

func (p *parser) lastEnd() int {
	// end of the previous token: the current token start minus the
	// trivia between them
	end := p.tok.start
	for end > 0 && strings.ContainsRune(" \t\r\n", rune(p.lx.src[end-1])) {
		end--
	}
	return end
}

func (p *parser) parseInterface(start int, exported bool) node {
	p.next() // interface
	name, _ := p.expectIdent()
	decl := &interfaceDecl{span: span{start}, name: name, exported: exported}
	if p.isPunct("<") {
		decl.params = p.parseTypeParams()
	}
	if p.isKeyword("extends") {
		p.next()
		for {
			pos := p.tok.start
			ref, ok := p.parsePrimary().(*typeRef)
			if !ok {
				p.errorf(pos, CodeIdentifierExpected, "Identifier expected.")
			} else {
				decl.extends = append(decl.extends, ref)
			}
			if !p.optional(",") {
				break
			}
		}
	}
	bodyStart := p.tok.start
	if p.expect("{") {
		decl.body = p.parseMembers(bodyStart)
	} else {
		decl.body = &objectType{span: span{bodyStart}}
		p.recover()
	}
	decl.end = p.lastEnd()
	return decl
}

func (p *parser) parseTypeParams() []*typeParam {
	p.next() // <
	var params []*typeParam
	for !p.isPunct(">") && p.tok.kind != tokEOF {
		name, pos := p.expectIdent()
		if name == "" {
			break
		}
		tp := &typeParam{span: span{pos}, name: name}
		if p.isKeyword("extends") {
			p.next()
			tp.constraint = p.parseType()
		}
		if p.optional("=") {
			tp.def = p.parseType()
		}
		params = append(params, tp)
		if !p.optional(",") {
			break
		}
	}
	p.expect(">")
	return params
}

func (p *parser) parseSpecifiers() []*specifier {
	p.expect("{")
	var specs []*specifier
	for !p.isPunct("}") && p.tok.kind != tokEOF {
		if p.isKeyword("type") && p.lookahead(func() bool { p.next(); return p.tok.kind == tokIdent }) {
			p.next()
		}
		name, pos := p.expectIdent()
		if name == "" {
			break
		}
		spec := &specifier{span: span{pos}, name: name}
		if p.isKeyword("as") {
			p.next()
			spec.alias, _ = p.expectIdent()
		}
		specs = append(specs, spec)
		if !p.optional(",") {
			break
		}
	}
	p.expect("}")
	return specs
}

func (p *parser) parseModuleName() string {
	if !p.isKeyword("from") {
		return ""
	}
	p.next()
	if p.tok.kind != tokString {
		p.errorf(p.tok.start, CodeTokenExpected, "String literal expected.")
		return ""
	}
	from := p.tok.value
	p.next()
	return from
}

func (p *parser) parseExportClause(start int) node {
	decl := &exportDecl{span: span{start}, specs: p.parseSpecifiers()}
	decl.from = p.parseModuleName()
	p.endStatement()
	return decl
}

func (p *parser) parseImport(start int) node {
	p.next() // import
	if p.isKeyword("type") && p.lookahead(func() bool { p.next(); return p.isPunct("{") }) {
		p.next()
	}
	decl := &importDecl{span: span{start}}
	if !p.isPunct("{") {
		p.errorf(p.tok.start, CodeTokenExpected, "'{' expected.")
		p.recover()
		return nil
	}
	decl.specs = p.parseSpecifiers()
	if !p.isKeyword("from") {
		p.errorf(p.tok.start, CodeTokenExpected, "'from' expected.")
	}
	decl.from = p.parseModuleName()
	p.endStatement()
	return decl
}

// Type expressions.

func (p *parser) parseType() node {
	return p.parseConditional(true)
}

func (p *parser) parseConditional(allowed bool) node {
	check := p.parseUnion()
	if !allowed || !p.isKeyword("extends") {
		return check
	}
	p.next()
	cond := &conditionalType{span: span{check.Pos()}, check: check}
	cond.extends = p.parseConditional(false)
	p.expect("?")
	cond.whenTrue = p.parseType()
	p.expect(":")
	cond.whenFalse = p.parseType()
	return cond
}

func (p *parser) parseUnion() node {
	start := p.tok.start
	leading := p.optional("|")
	first := p.parseIntersection()
	if !p.isPunct("|") {
		if leading {
			return &unionType{span: span{start}, types: []node{first}}
		}
		return first
	}
	u := &unionType{span: span{start}, types: []node{first}}
	for p.optional("|") {
		u.types = append(u.types, p.parseIntersection())
	}
	return u
}

func (p *parser) parseIntersection() node {
	start := p.tok.start
	leading := p.optional("&")
	first := p.parseOperator()
	if !p.isPunct("&") {
		if leading {
			return &intersectionType{span: span{start}, types: []node{first}}
		}
		return first
	}
	in := &intersectionType{span: span{start}, types: []node{first}}
	for p.optional("&") {
		in.types = append(in.types, p.parseOperator())
	}
	return in
}

func (p *parser) parseOperator() node {
	start := p.tok.start
	switch {
	case p.isKeyword("keyof"):
		p.next()
		return &keyOfType{span: span{start}, operand: p.parseOperator()}
	case p.isKeyword("readonly"):
		p.next()
		return &readonlyType{span: span{start}, operand: p.parseOperator()}
	case p.isKeyword("unique") && p.lookahead(func() bool { p.next(); return p.isKeyword("symbol") }):
		p.next()
		p.next()
		return &uniqueSymbolType{span: span{start}}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() node {
	t := p.parsePrimary()
	for p.isPunct("[") && !p.tok.newline {
		p.next()
		if p.optional("]") {
			t = &arrayType{span: span{t.Pos()}, elem: t}
			continue
		}
		index := p.parseType()
		p.expect("]")
		t = &indexedAccessType{span: span{t.Pos()}, object: t, index: index}
	}
	return t
}

var keywordTypes = map[string]bool{
	"any": true, "unknown": true, "string": true, "number": true,
	"bigint": true, "boolean": true, "symbol": true, "void": true,
	"undefined": true, "null": true, "never": true, "object": true,
}

func (p *parser) parsePrimary() node {
	start := p.tok.start
	switch p.tok.kind {
	case tokString:
		v := p.tok.value
		p.next()
		return &literalType{span: span{start}, kind: litString, str: v}
	case tokNumber, tokBigInt:
		return p.parseNumericLiteral(start, false)
	case tokTemplate:
		v := p.tok.value
		p.next()
		return &literalType{span: span{start}, kind: litString, str: v}
	case tokTemplateHead:
		return p.parseTemplate()
	case tokIdent:
		return p.parseIdentType()
	}

	switch {
	case p.isPunct("-"):
		p.next()
		if p.tok.kind == tokNumber || p.tok.kind == tokBigInt {
			return p.parseNumericLiteral(start, true)
		}
		p.errorf(p.tok.start, CodeTypeExpected, "Type expected.")
		return &errorType{span: span{start}}
	case p.isPunct("("):
		p.next()
		inner := p.parseType()
		p.expect(")")
		return &parenType{span: span{start}, inner: inner}
	case p.isPunct("["):
		return p.parseTuple()
	case p.isPunct("{"):
		if p.isMappedStart() {
			return p.parseMapped()
		}
		p.next()
		return p.parseMembers(start)
	}

	p.errorf(p.tok.start, CodeTypeExpected, "Type expected.")
	return &errorType{span: span{start}}
}

func (p *parser) parseNumericLiteral(start int, negative bool) node {
	text := p.tok.text
	kind := p.tok.kind
	p.next()
	if kind == tokBigInt {
		v, ok := new(big.Int).SetString(text, 0)
		if !ok {
			p.errorf(start, CodeTypeExpected, "Type expected.")
			return &errorType{span: span{start}}
		}
		if negative {
			v.Neg(v)
		}
		return &literalType{span: span{start}, kind: litBigInt, bigint: v}
	}
	v, ok := parseNumber(text)
	if !ok {
		p.errorf(start, CodeTypeExpected, "Type expected.")
		return &errorType{span: span{start}}
	}
	if negative {
		v = -v
	}
	return &literalType{span: span{start}, kind: litNumber, number: v}
}

func (p *parser) parseIdentType() node {
	start := p.tok.start
	name := p.tok.text
	switch {
	case keywordTypes[name]:
		p.next()
		return &keywordType{span: span{start}, name: name}
	case name == "true":
		p.next()
		return &literalType{span: span{start}, kind: litTrue}
	case name == "false":
		p.next()
		return &literalType{span: span{start}, kind: litFalse}
	}

	p.next()
	for p.isPunct(".") {
		p.next()
		part, _ := p.expectIdent()
		name += "." + part
	}
	ref := &typeRef{span: span{start}, name: name}
	if p.isPunct("<") && !p.tok.newline {
		p.next()
		for !p.isPunct(">") && p.tok.kind != tokEOF {
			ref.args = append(ref.args, p.parseType())
			if !p.optional(",") {
				break
			}
		}
		p.expect(">")
	}
	return ref
}

func (p *parser) parseTemplate() node {
	t := &templateType{span: span{p.tok.start}, texts: []string{p.tok.value}}
	p.next()
	for {
		t.holes = append(t.holes, p.parseType())
		if !p.isPunct("}") {
			p.errorf(p.tok.start, CodeTokenExpected, "'}' expected.")
			t.texts = append(t.texts, "")
			return t
		}
		part := p.lx.rescanTemplate(p.tok)
		t.texts = append(t.texts, part.value)
		p.next()
		if part.kind == tokTemplateTail {
			return t
		}
	}
}

func (p *parser) parseTuple() node {
	t := &tupleType{span: span{p.tok.start}}
	p.next() // [
	for !p.isPunct("]") && p.tok.kind != tokEOF {
		var el tupleElement
		if p.tok.kind == tokIdent && p.lookahead(func() bool { p.next(); return p.isPunct(":") }) {
			el.label = p.tok.text
			p.next()
			p.next()
		}
		el.typ = p.parseType()
		t.elems = append(t.elems, el)
		if !p.optional(",") {
			break
		}
	}
	p.expect("]")
	return t
}

func (p *parser) isMappedStart() bool {
	return p.lookahead(func() bool {
		p.next() // {
		if p.isPunct("+") || p.isPunct("-") {
			p.next()
			if !p.isKeyword("readonly") {
				return false
			}
		}
		if p.isKeyword("readonly") {
			p.next()
		}
		if !p.isPunct("[") {
			return false
		}
		p.next()
		if p.tok.kind != tokIdent {
			return false
		}
		p.next()
		return p.isKeyword("in")
	})
}

func (p *parser) parseModifier(keyword string) modifier {
	switch {
	case p.isPunct("+"):
		p.next()
		p.expectModifier(keyword)
		return modAdd
	case p.isPunct("-"):
		p.next()
		p.expectModifier(keyword)
		return modRemove
	case keyword == "?" && p.isPunct("?"), keyword != "?" && p.isKeyword(keyword):
		p.next()
		return modAdd
	}
	return modNone
}

func (p *parser) expectModifier(keyword string) {
	if keyword == "?" {
		p.expect("?")
		return
	}
	if !p.isKeyword(keyword) {
		p.errorf(p.tok.start, CodeTokenExpected, "'%s' expected.", keyword)
		return
	}
	p.next()
}

func (p *parser) parseMapped() node {
	m := &mappedType{span: span{p.tok.start}}
	p.next() // {
	m.readonly = p.parseModifier("readonly")
	p.expect("[")
	m.keyName, _ = p.expectIdent()
	p.next() // in
	m.constraint = p.parseType()
	if p.isKeyword("as") {
		p.next()
		m.nameType = p.parseType()
	}
	p.expect("]")
	m.optional = p.parseModifier("?")
	p.expect(":")
	m.template = p.parseType()
	if !p.optional(";") {
		p.optional(",")
	}
	p.expect("}")
	return m
}

// parseMembers parses object members up to the closing brace. The
// opening brace has been consumed.
func (p *parser) parseMembers(start int) *objectType {
	obj := &objectType{span: span{start}}
	for !p.isPunct("}") && p.tok.kind != tokEOF {
		if p.optional(";") || p.optional(",") {
			continue
		}
		p.parseMember(obj)
	}
	p.expect("}")
	return obj
}

func (p *parser) parseMember(obj *objectType) {
	start := p.tok.start
	readonly := false
	if p.isKeyword("readonly") && p.lookahead(func() bool {
		p.next()
		return !p.isPunct(":") && !p.isPunct("?") && !p.isPunct(";") && !p.isPunct("}") && !p.isPunct("(")
	}) {
		p.next()
		readonly = true
	}

	if p.isPunct("[") {
		p.next()
		keyName, _ := p.expectIdent()
		if !p.expect(":") {
			p.skipMember()
			return
		}
		keyType := p.parseType()
		p.expect("]")
		p.expect(":")
		obj.indexes = append(obj.indexes, &indexSignature{
			span: span{start}, keyName: keyName, keyType: keyType,
			value: p.parseType(), readonly: readonly,
		})
		p.endMember()
		return
	}

	var name string
	switch p.tok.kind {
	case tokIdent, tokString:
		name = p.tok.value
	case tokNumber:
		v, ok := parseNumber(p.tok.text)
		if !ok {
			v = 0
		}
		name = formatNumber(v)
	default:
		p.errorf(p.tok.start, CodePropertyExpected, "Property or signature expected.")
		p.skipMember()
		return
	}
	p.next()

	prop := &propertySignature{span: span{start}, name: name, readonly: readonly}
	prop.optional = p.optional("?")
	if p.isPunct("(") || p.isPunct("<") {
		// call and method signatures carry no type information
		// this loader can observe
		p.errorf(p.tok.start, CodePropertyExpected, "Property or signature expected.")
		p.skipMember()
		return
	}
	if p.expect(":") {
		prop.typ = p.parseType()
	} else {
		prop.typ = &keywordType{span: span{start}, name: "any"}
	}
	obj.properties = append(obj.properties, prop)
	p.endMember()
}

func (p *parser) endMember() {
	if p.optional(";") || p.optional(",") || p.isPunct("}") || p.tok.newline {
		return
	}
	p.errorf(p.tok.start, CodeTokenExpected, "';' expected.")
	p.skipMember()
}

// skipMember skips to the end of the current member, keeping
// nested brackets balanced.
func (p *parser) skipMember() {
	depth := 0
	for p.tok.kind != tokEOF {
		switch {
		case p.isPunct("{") || p.isPunct("(") || p.isPunct("["):
			depth++
		case p.isPunct("}") || p.isPunct(")") || p.isPunct("]"):
			if depth == 0 {
				return
			}
			depth--
		case depth == 0 && (p.isPunct(";") || p.isPunct(",")):
			p.next()
			return
		}
		p.next()
	}
}
