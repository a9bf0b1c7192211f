package matcher

import (
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
)

// Printer formats diagnostic messages. Expected values are
// rendered green and received values red when colors are enabled.
type Printer struct {
	au *aurora.Aurora
}

var plainPrinter = NewPrinter(false)

// NewPrinter creates a printer with colors forced on or off.
func NewPrinter(colors bool) *Printer {
	return &Printer{au: aurora.New(aurora.WithColors(colors))}
}

// AutoPrinter creates a printer that colors its output only when
// stdout is a terminal.
func AutoPrinter() *Printer {
	fd := os.Stdout.Fd()
	return NewPrinter(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// Hint renders `expect(Path).[not.]check(expected)`.
func (p *Printer) Hint(check string, ctx *Context, expected string) string {
	var sb strings.Builder
	sb.WriteString(p.au.Faint("expect(").String())
	sb.WriteString(p.au.Red(ctx.Path).String())
	sb.WriteString(p.au.Faint(")").String())
	if ctx.Negated {
		sb.WriteString(".not")
	}
	sb.WriteString("." + check)
	sb.WriteString(p.au.Faint("(").String())
	if expected != "" {
		sb.WriteString(p.au.Green(expected).String())
	}
	sb.WriteString(p.au.Faint(")").String())
	return sb.String()
}

// Expected colors an expected value.
func (p *Printer) Expected(v string) string {
	return p.au.Green(v).String()
}

// Received colors a received value.
func (p *Printer) Received(v string) string {
	return p.au.Red(v).String()
}

// Compare renders expected and received values on two labelled
// lines, or as a unified diff when either spans several lines.
func (p *Printer) Compare(expected, received string) string {
	if strings.Contains(expected, "\n") || strings.Contains(received, "\n") {
		if diff, ok := p.Diff(expected, received); ok {
			return diff
		}
	}
	return "Expected: " + p.Expected(expected) + "\n" +
		"Received: " + p.Received(received)
}

// Diff renders a unified diff from expected to received.
func (p *Printer) Diff(expected, received string) (string, bool) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(received),
		FromFile: "Expected",
		ToFile:   "Received",
		Context:  3,
	})
	if err != nil || text == "" {
		return "", false
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			lines[i] = p.Expected(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = p.Received(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = p.au.Faint(line).String()
		}
	}
	return strings.Join(lines, "\n"), true
}

// Error renders an authoring error: the hint, a bold reason and a
// detail block.
func (p *Printer) Error(hint, reason, detail string) string {
	msg := hint + "\n\n" + p.au.Bold("Matcher error").String() + ": " + reason
	if detail != "" {
		msg += "\n\n" + detail
	}
	return msg
}

// Value prints an arbitrary Go value.
func (p *Printer) Value(v any) string {
	return pretty.Sprint(v)
}
