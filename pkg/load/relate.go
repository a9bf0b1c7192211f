package load

import (
	"strconv"

	"digital.vasic.typeassert/pkg/introspect"
)

// assignable reports whether source is assignable to target. It is
// the relation conditional types and constraints are decided by.
func (c *compiler) assignable(source, target *introspect.Type) bool {
	u := c.u
	if u.Identical(source, target) {
		return true
	}
	sf, tf := u.Flags(source), u.Flags(target)

	switch {
	case tf&(introspect.FlagAny|introspect.FlagUnknown) != 0:
		return true
	case sf&(introspect.FlagNever|introspect.FlagAny) != 0:
		return true
	case tf&introspect.FlagNever != 0:
		return false
	}

	if sf&introspect.FlagUnion != 0 {
		for _, m := range u.UnionMembers(source) {
			if !c.assignable(m, target) {
				return false
			}
		}
		return true
	}
	if tf&introspect.FlagIntersection != 0 {
		for _, m := range u.IntersectionMembers(target) {
			if !c.assignable(source, m) {
				return false
			}
		}
		return true
	}
	if tf&introspect.FlagUnion != 0 {
		for _, m := range u.UnionMembers(target) {
			if c.assignable(source, m) {
				return true
			}
		}
		return false
	}
	if sf&introspect.FlagIntersection != 0 {
		for _, m := range u.IntersectionMembers(source) {
			if c.assignable(m, target) {
				return true
			}
		}
		if tf&introspect.FlagObject != 0 {
			return c.structural(source, target)
		}
		return false
	}

	if sf&(introspect.FlagNull|introspect.FlagUndefined) != 0 {
		if !c.opts.StrictNullChecks {
			return true
		}
		return sf&introspect.FlagUndefined != 0 && tf&introspect.FlagVoid != 0
	}

	switch {
	case sf&(introspect.FlagStringLiteral|introspect.FlagTemplateLiteral) != 0 && tf&introspect.FlagString != 0:
		return true
	case sf&introspect.FlagNumberLiteral != 0 && tf&introspect.FlagNumber != 0:
		return true
	case sf&introspect.FlagBigIntLiteral != 0 && tf&introspect.FlagBigInt != 0:
		return true
	case sf&introspect.FlagUniqueESSymbol != 0 && tf&introspect.FlagESSymbol != 0:
		return true
	case sf&introspect.FlagStringLiteral != 0 && tf&introspect.FlagTemplateLiteral != 0:
		v, _ := u.LiteralValue(source)
		texts, holes := u.TemplateParts(target)
		return c.templateMatches(v.(string), texts, holes)
	case tf&introspect.FlagObject != 0 && sf&introspect.FlagObject != 0:
		return c.structural(source, target)
	case tf&introspect.FlagObject != 0 && c.isEmptyObject(target):
		// primitives are assignable to `{}`
		return sf&(introspect.FlagVoid|introspect.FlagTypeParameter|introspect.FlagIndex|
			introspect.FlagIndexedAccess|introspect.FlagConditional) == 0
	}
	return false
}

func (c *compiler) isEmptyObject(t *introspect.Type) bool {
	if c.u.IsArrayType(t) || c.u.IsTupleType(t) {
		return false
	}
	return len(c.u.Properties(t)) == 0 && len(c.u.IndexInfos(t)) == 0
}

// structural relates two object types member by member. Pairs
// already being related are assumed to hold.
func (c *compiler) structural(source, target *introspect.Type) bool {
	key := [2]int{source.ID(), target.ID()}
	if c.relating[key] {
		return true
	}
	c.relating[key] = true
	defer delete(c.relating, key)

	u := c.u
	switch {
	case u.IsArrayType(target):
		elem := u.ArrayElement(target)
		if u.IsArrayType(source) {
			if u.IsReadonlyArray(source) && !u.IsReadonlyArray(target) {
				return false
			}
			return c.assignable(u.ArrayElement(source), elem)
		}
		if u.IsTupleType(source) {
			if u.IsReadonlyArray(source) && !u.IsReadonlyArray(target) {
				return false
			}
			for _, el := range u.TypeArguments(source) {
				if !c.assignable(el, elem) {
					return false
				}
			}
			return true
		}
		return false
	case u.IsTupleType(target):
		if !u.IsTupleType(source) {
			return false
		}
		if u.IsReadonlyArray(source) && !u.IsReadonlyArray(target) {
			return false
		}
		se, te := u.TypeArguments(source), u.TypeArguments(target)
		if len(se) != len(te) {
			return false
		}
		for i := range se {
			if !c.assignable(se[i], te[i]) {
				return false
			}
		}
		return true
	}

	sourceProps := make(map[string]*introspect.Symbol)
	for _, p := range u.Properties(source) {
		sourceProps[p.Name] = p
	}
	if u.IsTupleType(source) || u.IsArrayType(source) {
		if len(u.Properties(target)) > 0 {
			return c.arrayAgainstObject(source, target)
		}
	}

	for _, tp := range u.Properties(target) {
		sp, ok := sourceProps[tp.Name]
		if !ok {
			if tp.Optional {
				continue
			}
			return false
		}
		if sp.Optional && !tp.Optional {
			return false
		}
		if !c.assignable(u.TypeOfSymbol(sp), u.TypeOfSymbol(tp)) {
			return false
		}
	}

	for _, idx := range u.IndexInfos(target) {
		if u.Flags(idx.KeyType)&introspect.FlagString == 0 {
			continue
		}
		for _, sp := range u.Properties(source) {
			if !c.assignable(u.TypeOfSymbol(sp), idx.ValueType) {
				return false
			}
		}
		for _, sidx := range u.IndexInfos(source) {
			if !c.assignable(sidx.ValueType, idx.ValueType) {
				return false
			}
		}
	}
	return true
}

// arrayAgainstObject relates an array or tuple to an object
// target through its element and length members.
func (c *compiler) arrayAgainstObject(source, target *introspect.Type) bool {
	u := c.u
	elems := u.TypeArguments(source)
	for _, tp := range u.Properties(target) {
		var st *introspect.Type
		if tp.Name == "length" {
			st = u.Number
			if u.IsTupleType(source) {
				st = u.NumberLiteral(float64(len(elems)))
			}
		} else if i, err := strconv.Atoi(tp.Name); err == nil && u.IsTupleType(source) && i >= 0 && i < len(elems) {
			st = elems[i]
		}
		if st == nil {
			if tp.Optional {
				continue
			}
			return false
		}
		if !c.assignable(st, u.TypeOfSymbol(tp)) {
			return false
		}
	}
	return true
}

// templateMatches reports whether s matches a template literal
// pattern. String holes match any text, number holes match text
// that parses as a number.
func (c *compiler) templateMatches(s string, texts []string, holes []*introspect.Type) bool {
	if len(texts) == 0 {
		return false
	}
	if len(s) < len(texts[0]) || s[:len(texts[0])] != texts[0] {
		return false
	}
	return c.matchHoles(s[len(texts[0]):], texts[1:], holes)
}

func (c *compiler) matchHoles(s string, texts []string, holes []*introspect.Type) bool {
	if len(holes) == 0 {
		return s == ""
	}
	next := texts[0]
	for end := 0; end <= len(s); end++ {
		if len(s)-end < len(next) || s[end:end+len(next)] != next {
			continue
		}
		if !c.holeAccepts(s[:end], holes[0]) {
			continue
		}
		if c.matchHoles(s[end+len(next):], texts[1:], holes[1:]) {
			return true
		}
	}
	return false
}

func (c *compiler) holeAccepts(text string, hole *introspect.Type) bool {
	flags := c.u.Flags(hole)
	switch {
	case flags&(introspect.FlagString|introspect.FlagAny) != 0:
		return true
	case flags&introspect.FlagNumber != 0:
		_, ok := parseNumber(text)
		return ok && text != ""
	case flags&introspect.FlagBigInt != 0:
		_, err := strconv.ParseInt(text, 10, 64)
		return err == nil
	case flags&introspect.FlagUnion != 0:
		for _, m := range c.u.UnionMembers(hole) {
			if c.holeAccepts(text, m) {
				return true
			}
		}
		return false
	}
	return c.assignable(c.u.StringLiteral(text), hole)
}
