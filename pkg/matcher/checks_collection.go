package matcher

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
	"digital.vasic.typeassert/pkg/types"
)

// IsArray checks for an array type. The element descriptor, when
// given, is compared against the single type argument.
func IsArray(ctx *Context, p Params) Result {
	const check = "isArray"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindArray); !ok {
		return r
	}

	if !isArrayShaped(ctx, ctx.Type) {
		return Fail(func() string {
			return unexpectedType(ctx, check, "Array", ctx.Describe(ctx.Type))
		})
	}

	if p.Expected != nil && p.Expected.Element != nil {
		return Safe(HasArguments(ctx, Params{
			Args: types.Args{types.Arg("T", p.Expected.Element)},
		}))
	}
	return Safe(HasNbArguments(ctx, Params{Count: 1}))
}

// IsTuple checks for a tuple type. When elements are given the
// arity must match exactly and elements are compared left to
// right, stopping at the first mismatch.
func IsTuple(ctx *Context, p Params) Result {
	const check = "isTuple"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindTuple); !ok {
		return r
	}

	if !isTupleShaped(ctx, ctx.Type) {
		return Fail(func() string {
			return unexpectedType(ctx, check, "Tuple", ctx.Describe(ctx.Type))
		})
	}
	if p.Expected == nil || p.Expected.Elements == nil {
		return Pass()
	}

	elements := ctx.Checker.TypeArguments(ctx.Type)
	expected := p.Expected.Elements
	if len(elements) != len(expected) {
		return Abort(func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, p.Expected.String()) + "\n\n" +
				"tuple length mismatch\n\n" +
				pr.Compare(strconv.Itoa(len(expected)), strconv.Itoa(len(elements)))
		})
	}

	steps := make([]func() Result, len(elements))
	for i := range elements {
		i := i
		steps[i] = func() Result {
			child := ctx.Derive(
				WithType(elements[i]),
				WithSymbol(nil),
				WithPath(fmt.Sprintf("%s[%d]", ctx.Path, i)),
			)
			return Is(child, expected[i])
		}
	}
	return FirstFailure(steps...)
}

// IsUnion checks for a union type. When members are given, every
// observed member must match at least one of them and every one of
// them must match at least one observed member.
func IsUnion(ctx *Context, p Params) Result {
	const check = "isUnion"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindUnion); !ok {
		return r
	}

	r := expectType(ctx, check, introspect.FlagUnion)
	if !r.Passed() || p.Expected == nil || p.Expected.Elements == nil {
		return r
	}

	expected := p.Expected.Elements
	matched := make([]bool, len(expected))
	for _, member := range ctx.Checker.UnionMembers(ctx.Type) {
		child := ctx.Derive(WithType(member), WithSymbol(nil))
		found := false
		for j, d := range expected {
			if Safe(Is(child, d)).Passed() {
				matched[j] = true
				found = true
			}
		}
		if !found {
			member := member
			return Abort(func() string {
				pr := ctx.printer()
				return pr.Hint(check, ctx, renderDescriptors(expected)) + "\n\n" +
					"Got unexpected type " + pr.Received(ctx.Describe(member)) + " in union type"
			})
		}
	}

	var missing []string
	for j, ok := range matched {
		if !ok {
			missing = append(missing, expected[j].String())
		}
	}
	if len(missing) > 0 {
		return Abort(func() string {
			pr := ctx.printer()
			return pr.Hint(check, ctx, renderDescriptors(expected)) + "\n\n" +
				"The following types were not found in the union: " +
				pr.Expected(strings.Join(missing, ", "))
		})
	}

	return PassWith(func() string {
		pr := ctx.printer()
		return pr.Hint(check, ctx, renderDescriptors(expected)) + "\n\n" +
			"Received: " + pr.Received(ctx.Describe(ctx.Type))
	})
}

// IsIntersection checks for an intersection type. Comparing the
// members is not supported: supplying them is reported as misuse.
func IsIntersection(ctx *Context, p Params) Result {
	const check = "isIntersection"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindIntersection); !ok {
		return r
	}

	r := expectType(ctx, check, introspect.FlagIntersection)
	if !r.Passed() || p.Expected == nil || p.Expected.Elements == nil {
		return r
	}
	return Misuse(func() string {
		pr := ctx.printer()
		return pr.Error(
			pr.Hint(check, ctx, renderDescriptors(p.Expected.Elements)),
			"intersection member comparison is not implemented",
			"",
		)
	})
}

// templateEntry is one position of an observed template: a text or
// a hole.
type templateEntry struct {
	text string
	hole *introspect.Type
}

// templateSequence interleaves the texts and holes of a template
// literal, dropping empty texts.
func templateSequence(ctx *Context, check string) ([]templateEntry, Result, bool) {
	if r, ok := ensureTemplate(ctx, check); !ok {
		return nil, r, false
	}
	texts, holes := ctx.Checker.TemplateParts(ctx.Type)
	var seq []templateEntry
	for i, text := range texts {
		if text != "" {
			seq = append(seq, templateEntry{text: text})
		}
		if i < len(holes) {
			seq = append(seq, templateEntry{hole: holes[i]})
		}
	}
	return seq, Result{}, true
}

// IsTemplateLiteral checks for a template literal type. When
// segments are given the sequence must match position by position;
// any mismatch aborts the whole check.
func IsTemplateLiteral(ctx *Context, p Params) Result {
	const check = "isTemplateLiteral"
	if r, ok := ensureDefined(ctx, check); !ok {
		return r
	}
	if r, ok := ensureDescriptor(ctx, check, p.Expected, types.KindTemplateLiteral); !ok {
		return r
	}

	r := expectType(ctx, check, introspect.FlagTemplateLiteral)
	if !r.Passed() || p.Expected == nil || p.Expected.Segments == nil {
		return r
	}

	seq, misuse, ok := templateSequence(ctx, check)
	if !ok {
		return misuse
	}

	expected := p.Expected.Segments
	hint := func() string {
		return ctx.printer().Hint(check, ctx, p.Expected.String())
	}
	if len(seq) != len(expected) {
		return Abort(func() string {
			pr := ctx.printer()
			return hint() + "\n\n" + "template length mismatch\n\n" +
				pr.Compare(strconv.Itoa(len(expected)), strconv.Itoa(len(seq)))
		})
	}

	for i, entry := range seq {
		i, entry, want := i, entry, expected[i]
		switch {
		case entry.hole == nil && want.IsText():
			if entry.text != want.Text {
				return Abort(func() string {
					pr := ctx.printer()
					return hint() + "\n\n" + fmt.Sprintf("text mismatch at segment %d\n\n", i) +
						pr.Compare(strconv.Quote(want.Text), strconv.Quote(entry.text))
				})
			}
		case entry.hole != nil && !want.IsText():
			child := ctx.Derive(
				WithType(entry.hole),
				WithSymbol(nil),
				WithPath(fmt.Sprintf("%s[%d]", ctx.Path, i)),
			)
			if r := Safe(Is(child, want.Type)); !r.Passed() {
				r.Outcome = Aborted
				return r
			}
		default:
			return Abort(func() string {
				pr := ctx.printer()
				return hint() + "\n\n" + fmt.Sprintf("segment kind mismatch at segment %d\n\n", i) +
					pr.Compare(segmentKind(want.IsText()), segmentKind(entry.hole == nil))
			})
		}
	}
	return Pass()
}

func segmentKind(text bool) string {
	if text {
		return "text"
	}
	return "type"
}
