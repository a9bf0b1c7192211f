package load

import (
	"fmt"
	"sort"
	"strings"

	"digital.vasic.typeassert/pkg/introspect"
)

// Category is the severity of a diagnostic.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategorySuggestion
	CategoryMessage
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategorySuggestion:
		return "suggestion"
	default:
		return "message"
	}
}

// Phase is the compilation phase that produced a diagnostic.
type Phase int

const (
	PhaseSyntactic Phase = iota
	PhaseSemantic
	PhaseDeclaration
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSyntactic:
		return "syntactic"
	case PhaseSemantic:
		return "semantic"
	default:
		return "declaration"
	}
}

// Diagnostic codes reported by the loader.
const (
	CodeUnterminatedString       = 1002
	CodeIdentifierExpected       = 1003
	CodeTokenExpected            = 1005
	CodeCommentNotClosed         = 1010
	CodeTypeExpected             = 1110
	CodeInvalidCharacter         = 1127
	CodeDeclarationExpected      = 1128
	CodePropertyExpected         = 1131
	CodeUnterminatedTemplate     = 1160
	CodeReadonlyModifier         = 1354
	CodeDuplicateIdentifier      = 2300
	CodeCannotFindName           = 2304
	CodeNoExportedMember         = 2305
	CodeCannotFindModule         = 2307
	CodeRequiresTypeArguments    = 2314
	CodeNotGeneric               = 2315
	CodePropertyDoesNotExist     = 2339
	CodeConstraintNotSatisfied   = 2344
	CodeCircularAlias            = 2456
	CodeTupleIndexOutOfRange     = 2493
	CodeCannotFindNamespace      = 2503
	CodeCannotIndex              = 2536
	CodeCannotFindNameDidYouMean = 2552
	CodeExcessivelyDeep          = 2589
	CodeCannotExport             = 2661
	CodeRequiresBetweenArguments = 2707
)

// Diagnostic is one problem found while compiling a source.
type Diagnostic struct {
	Code     int
	Category Category
	Phase    Phase
	Pos      introspect.Position
	Message  string
}

// String renders the diagnostic the way tsc prints it.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s - %s TS%d: %s", d.Pos, d.Category, d.Code, d.Message)
}

// Diagnostics is the ordered list of diagnostics of a program.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Category == CategoryError {
			return true
		}
	}
	return false
}

// ByPhase returns the diagnostics produced by phase p.
func (ds Diagnostics) ByPhase(p Phase) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Phase == p {
			out = append(out, d)
		}
	}
	return out
}

// Codes returns the codes of the diagnostics, in order.
func (ds Diagnostics) Codes() []int {
	codes := make([]int, len(ds))
	for i, d := range ds {
		codes[i] = d.Code
	}
	return codes
}

// String renders one diagnostic per line.
func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// sorted orders diagnostics by phase, then by position.
func (ds Diagnostics) sorted() Diagnostics {
	out := make(Diagnostics, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Phase != b.Phase {
			return a.Phase < b.Phase
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		return a.Pos.Column < b.Pos.Column
	})
	return out
}

// reporter collects the diagnostics of one file, dropping exact
// duplicates.
type reporter struct {
	file  string
	lines []int
	diags Diagnostics
	seen  map[string]bool
}

func newReporter(file, code string) *reporter {
	lines := []int{0}
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &reporter{file: file, lines: lines, seen: make(map[string]bool)}
}

// position converts a byte offset into a 1-based line and column.
func (r *reporter) position(offset int) introspect.Position {
	line := sort.Search(len(r.lines), func(i int) bool {
		return r.lines[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return introspect.Position{
		File:   r.file,
		Line:   line + 1,
		Column: offset - r.lines[line] + 1,
	}
}

func (r *reporter) report(phase Phase, offset, code int, format string, args ...any) {
	d := Diagnostic{
		Code:     code,
		Category: CategoryError,
		Phase:    phase,
		Pos:      r.position(offset),
		Message:  fmt.Sprintf(format, args...),
	}
	key := fmt.Sprintf("%d:%d:%s", offset, code, d.Message)
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.diags = append(r.diags, d)
}
