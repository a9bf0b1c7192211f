package types

import (
	"math/big"
	"strconv"
	"strings"
)

// String renders the descriptor for diagnostics. The rendering
// is never used to compare types.
func (d *Descriptor) String() string {
	if d == nil {
		return "undefined"
	}

	switch d.Kind {
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindNever:
		return "never"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindStringLiteral:
		if v, ok := d.StringValue(); ok {
			return strconv.Quote(v)
		}
		return "StringLiteral"
	case KindNumberLiteral:
		if v, ok := d.NumberValue(); ok {
			return FormatNumber(v)
		}
		return "NumberLiteral"
	case KindBooleanLiteral:
		if v, ok := d.BoolValue(); ok {
			return strconv.FormatBool(v)
		}
		return "BooleanLiteral"
	case KindBigIntLiteral:
		if v, ok := d.BigIntValue(); ok {
			return v.String() + "n"
		}
		return "BigIntLiteral"
	case KindSymbol:
		if d.Unique {
			return "UniqueESSymbol"
		}
		return "ESSymbol"
	case KindArray:
		if d.Element != nil {
			return "Array<" + d.Element.String() + ">"
		}
		return "Array"
	case KindTuple:
		return "[" + join(d.Elements, ", ") + "]"
	case KindUnion:
		if d.Elements == nil {
			return "union"
		}
		return join(d.Elements, " | ")
	case KindIntersection:
		if d.Elements == nil {
			return "intersection"
		}
		return join(d.Elements, " & ")
	case KindTemplateLiteral:
		return d.templateString()
	case KindObject:
		if d.ObjectKind == ObjectMapped {
			return d.mappedString()
		}
		return d.anonymousString()
	case KindEnum:
		return "enum"
	case KindEnumLiteral:
		if d.Value != nil {
			return "EnumLiteral(" + formatAny(d.Value) + ")"
		}
		return "EnumLiteral"
	}
	return d.Kind.String()
}

func (d *Descriptor) templateString() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		if s.IsText() {
			sb.WriteString(s.Text)
			continue
		}
		sb.WriteString("${")
		sb.WriteString(s.Type.String())
		sb.WriteString("}")
	}
	if sb.Len() == 0 {
		return "TemplateLiteral"
	}
	return `"` + sb.String() + `"`
}

func (d *Descriptor) anonymousString() string {
	members := make([]string, 0, len(d.Properties)+len(d.Indexes))
	for _, p := range d.Properties {
		members = append(members, strconv.Quote(p.Name)+": "+p.Type.String()+";")
	}
	for _, idx := range d.Indexes {
		members = append(members, "[key: "+idx.Key.String()+"]: "+idx.Value.String()+";")
	}
	if len(members) == 0 {
		return "object"
	}
	return "{ " + strings.Join(members, " ") + " }"
}

func (d *Descriptor) mappedString() string {
	if d.Keys == nil || d.Template == nil {
		return "MappedType"
	}
	return "{ [x in " + strings.Join(d.Keys, " | ") + "]: " + d.Template.String() + "; }"
}

func join(ds []*Descriptor, sep string) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, sep)
}

// FormatNumber renders a number the way literal types print it:
// integers without a fractional part.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatAny(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return FormatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case *big.Int:
		return x.String() + "n"
	}
	return "?"
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
