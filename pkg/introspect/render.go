package introspect

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

const maxRenderDepth = 8

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TypeToString renders t in TypeScript notation. The outermost type
// is expanded; nested types declared through an alias render by
// name.
func (u *Universe) TypeToString(t *Type) string {
	return u.render(t, 0)
}

func (u *Universe) render(t *Type, depth int) string {
	if t == nil {
		return "undefined"
	}
	if depth > maxRenderDepth {
		return "..."
	}
	if depth > 0 && t.aliasName != "" {
		return t.aliasName + u.renderArgs(t.aliasArgs, depth)
	}

	switch {
	case t.flags&FlagUnion != 0:
		return u.renderUnion(t, depth)
	case t.flags&FlagIntersection != 0:
		parts := make([]string, len(t.types))
		for i, m := range t.types {
			parts[i] = u.renderOperand(m, depth, FlagUnion|FlagConditional)
		}
		return strings.Join(parts, " & ")
	case t.flags&FlagStringLiteral != 0:
		return strconv.Quote(t.value.(string))
	case t.flags&FlagNumberLiteral != 0:
		return formatNumber(t.value.(float64))
	case t.flags&FlagBigIntLiteral != 0:
		return t.value.(*big.Int).String() + "n"
	case t.flags&FlagUniqueESSymbol != 0:
		return "unique symbol"
	case t.flags&FlagTemplateLiteral != 0:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, text := range t.texts {
			sb.WriteString(text)
			if i < len(t.holes) {
				sb.WriteString("${" + u.render(t.holes[i], depth+1) + "}")
			}
		}
		sb.WriteByte('`')
		return sb.String()
	case t.flags&FlagIndex != 0:
		return "keyof " + u.renderOperand(t.operand, depth, FlagUnion|FlagIntersection|FlagConditional)
	case t.flags&FlagIndexedAccess != 0:
		return u.renderOperand(t.operand, depth, FlagUnion|FlagIntersection|FlagConditional|FlagIndex) +
			"[" + u.render(t.index, depth+1) + "]"
	case t.flags&FlagConditional != 0:
		c := t.conditional
		return u.render(c.Check, depth+1) + " extends " + u.render(c.Extends, depth+1) +
			" ? " + u.render(c.True, depth+1) + " : " + u.render(c.False, depth+1)
	case t.flags&FlagObject != 0:
		return u.renderObject(t, depth)
	}
	return t.name
}

func (u *Universe) renderUnion(t *Type, depth int) string {
	parts := make([]string, 0, len(t.types))
	hasFalse, hasTrue := false, false
	for _, m := range t.types {
		hasFalse = hasFalse || m == u.False
		hasTrue = hasTrue || m == u.True
	}
	collapse := hasFalse && hasTrue
	emitted := false
	for _, m := range t.types {
		if collapse && (m == u.False || m == u.True) {
			if !emitted {
				parts = append(parts, "boolean")
				emitted = true
			}
			continue
		}
		parts = append(parts, u.renderOperand(m, depth, FlagIntersection|FlagConditional))
	}
	return strings.Join(parts, " | ")
}

// renderOperand parenthesizes nested types whose flags intersect
// wrap, unless they render by alias name.
func (u *Universe) renderOperand(t *Type, depth int, wrap TypeFlags) string {
	s := u.render(t, depth+1)
	if t != nil && t.aliasName == "" && t.flags&wrap != 0 && t.flags&FlagBoolean == 0 {
		return "(" + s + ")"
	}
	return s
}

func (u *Universe) renderArgs(args []*Type, depth int) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = u.render(a, depth+1)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (u *Universe) renderObject(t *Type, depth int) string {
	switch {
	case u.IsArrayType(t):
		elem := u.renderOperand(t.args[0], depth, FlagUnion|FlagIntersection|FlagConditional|FlagIndex)
		if t.readonlyView {
			return "readonly " + elem + "[]"
		}
		return elem + "[]"
	case u.IsTupleType(t):
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = u.render(a, depth+1)
			if i < len(t.tupleLabels) && t.tupleLabels[i] != "" {
				parts[i] = t.tupleLabels[i] + ": " + parts[i]
			}
		}
		s := "[" + strings.Join(parts, ", ") + "]"
		if t.readonlyView {
			return "readonly " + s
		}
		return s
	case t.objectFlags&ObjectReference != 0:
		return t.target.name + u.renderArgs(t.args, depth)
	case t.objectFlags&ObjectInterface != 0:
		return t.name
	case t.objectFlags&ObjectMapped != 0 && t.mapped != nil && isGenericConstraint(t.mapped.Constraint):
		return u.renderMapped(t.mapped, depth)
	}
	return u.renderMembers(t, depth)
}

func isGenericConstraint(t *Type) bool {
	return t != nil && t.flags&(FlagTypeParameter|FlagIndex|FlagIndexedAccess|FlagConditional) != 0
}

func (u *Universe) renderMapped(m *MappedInfo, depth int) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	if m.Readonly {
		sb.WriteString("readonly ")
	}
	sb.WriteString("[" + m.KeyName + " in " + u.render(m.Constraint, depth+1))
	if m.NameType != nil {
		sb.WriteString(" as " + u.render(m.NameType, depth+1))
	}
	sb.WriteString("]")
	if m.Optional {
		sb.WriteString("?")
	}
	sb.WriteString(": " + u.render(m.Template, depth+1) + "; }")
	return sb.String()
}

func (u *Universe) renderMembers(t *Type, depth int) string {
	props, indexes := u.membersOf(t)
	if len(props) == 0 && len(indexes) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{ ")
	for _, idx := range indexes {
		if idx.Readonly {
			sb.WriteString("readonly ")
		}
		sb.WriteString("[" + idx.KeyName + ": " + u.render(idx.KeyType, depth+1) + "]: ")
		sb.WriteString(u.render(idx.ValueType, depth+1) + "; ")
	}
	for _, p := range props {
		if p.Readonly {
			sb.WriteString("readonly ")
		}
		sb.WriteString(propertyName(p.Name))
		if p.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": " + u.render(p.resolvedType(), depth+1) + "; ")
	}
	sb.WriteString("}")
	return sb.String()
}

func propertyName(name string) string {
	if identifierPattern.MatchString(name) {
		return name
	}
	if _, err := strconv.ParseFloat(name, 64); err == nil {
		return name
	}
	return strconv.Quote(name)
}
