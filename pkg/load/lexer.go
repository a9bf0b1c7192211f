package load

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokBigInt
	tokTemplate     // `text`
	tokTemplateHead // `text${
	tokTemplateMid  // }text${
	tokTemplateTail // }text`
	tokPunct
	tokInvalid
)

type token struct {
	kind  tokenKind
	text  string // raw text for identifiers and punctuation
	value string // decoded value of strings and template parts
	start int
	end   int

	// newline is set when a line break precedes the token.
	newline bool
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// lexer scans TypeScript declaration syntax on demand.
type lexer struct {
	src    string
	pos    int
	report func(offset, code int, format string, args ...any)
}

func newLexer(src string, report func(offset, code int, format string, args ...any)) *lexer {
	return &lexer{src: src, report: report}
}

var punctuators = []string{
	"...", "=>",
	"{", "}", "(", ")", "[", "]", "<", ">", ",", ";", ":", "?",
	".", "=", "|", "&", "-", "+", "*", "@", "!",
}

func (l *lexer) next() token {
	newline := l.skipTrivia()
	tok := l.scan()
	tok.newline = newline
	return tok
}

// skipTrivia skips whitespace and comments and reports whether a
// line break was crossed.
func (l *lexer) skipTrivia() bool {
	newline := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			newline = true
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "//"):
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += end
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.report(len(l.src), CodeCommentNotClosed, "'*/' expected.")
				l.pos = len(l.src)
				return newline
			}
			if strings.Contains(l.src[l.pos:l.pos+2+end], "\n") {
				newline = true
			}
			l.pos += end + 4
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if r == '\u00a0' || r == '\ufeff' || unicode.Is(unicode.Zs, r) {
				l.pos += size
				continue
			}
			if r == '\u2028' || r == '\u2029' {
				newline = true
				l.pos += size
				continue
			}
			return newline
		}
	}
	return newline
}

func (l *lexer) scan() token {
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, start: start, end: start}
	}

	c := l.src[l.pos]
	switch {
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '`':
		l.pos++
		return l.scanTemplate(start, true)
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.scanNumber()
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if isIdentStart(r) {
		l.pos += size
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		text := l.src[start:l.pos]
		return token{kind: tokIdent, text: text, value: text, start: start, end: l.pos}
	}

	for _, p := range punctuators {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += len(p)
			return token{kind: tokPunct, text: p, start: start, end: l.pos}
		}
	}

	l.pos += size
	l.report(start, CodeInvalidCharacter, "Invalid character.")
	return token{kind: tokInvalid, text: string(r), start: start, end: l.pos}
}

func (l *lexer) scanString(quote byte) token {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			l.report(start, CodeUnterminatedString, "Unterminated string literal.")
			break
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			break
		}
		if c == '\\' {
			l.scanEscape(&sb)
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		sb.WriteRune(r)
		l.pos += size
	}
	return token{kind: tokString, text: l.src[start:l.pos], value: sb.String(), start: start, end: l.pos}
}

// scanTemplate scans template text up to the next substitution or
// the closing backtick. l.pos is just past the opening backtick or
// the closing brace of a substitution.
func (l *lexer) scanTemplate(start int, head bool) token {
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			l.report(start, CodeUnterminatedTemplate, "Unterminated template literal.")
			kind := tokTemplateTail
			if head {
				kind = tokTemplate
			}
			return token{kind: kind, text: l.src[start:l.pos], value: sb.String(), start: start, end: l.pos}
		}
		c := l.src[l.pos]
		switch {
		case c == '`':
			l.pos++
			kind := tokTemplateTail
			if head {
				kind = tokTemplate
			}
			return token{kind: kind, text: l.src[start:l.pos], value: sb.String(), start: start, end: l.pos}
		case c == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
			l.pos += 2
			kind := tokTemplateMid
			if head {
				kind = tokTemplateHead
			}
			return token{kind: kind, text: l.src[start:l.pos], value: sb.String(), start: start, end: l.pos}
		case c == '\\':
			l.scanEscape(&sb)
		case c == '\r':
			// template text normalizes line endings
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == '\n' {
				l.pos++
			}
			sb.WriteByte('\n')
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			sb.WriteRune(r)
			l.pos += size
		}
	}
}

// rescanTemplate continues a template after a substitution. tok
// must be the closing brace of the substitution.
func (l *lexer) rescanTemplate(tok token) token {
	l.pos = tok.start + 1
	return l.scanTemplate(tok.start, false)
}

// scanEscape decodes the escape sequence at l.pos.
func (l *lexer) scanEscape(sb *strings.Builder) {
	l.pos++ // backslash
	if l.pos >= len(l.src) {
		return
	}
	c := l.src[l.pos]
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\r':
		// line continuation
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
			l.pos++
		}
	case '\n':
	case 'x':
		if l.pos+2 < len(l.src) {
			if v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+3], 16, 8); err == nil {
				sb.WriteRune(rune(v))
				l.pos += 3
				return
			}
		}
		sb.WriteByte('x')
	case 'u':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			end := strings.IndexByte(l.src[l.pos:], '}')
			if end > 0 {
				if v, err := strconv.ParseUint(l.src[l.pos+2:l.pos+end], 16, 32); err == nil {
					sb.WriteRune(rune(v))
					l.pos += end + 1
					return
				}
			}
		} else if l.pos+4 < len(l.src) {
			if v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+5], 16, 16); err == nil {
				sb.WriteRune(rune(v))
				l.pos += 5
				return
			}
		}
		sb.WriteByte('u')
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		sb.WriteRune(r)
		l.pos += size
		return
	}
	l.pos++
}

func (l *lexer) scanNumber() token {
	start := l.pos
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && strings.ContainsRune("xXbBoO", rune(l.src[l.pos+1])) {
		l.pos += 2
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	} else {
		l.scanDigits()
		if l.pos < len(l.src) && l.src[l.pos] == '.' {
			l.pos++
			l.scanDigits()
		}
		if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			l.scanDigits()
		}
	}

	kind := tokNumber
	text := l.src[start:l.pos]
	if l.pos < len(l.src) && l.src[l.pos] == 'n' {
		kind = tokBigInt
		l.pos++
	}
	return token{kind: kind, text: text, value: text, start: start, end: l.pos}
}

func (l *lexer) scanDigits() {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200c' || r == '\u200d'
}

// parseNumber converts numeric literal text, including radix
// prefixes and separators, to its value.
func parseNumber(text string) (float64, bool) {
	clean := strings.ReplaceAll(text, "_", "")
	if len(clean) > 2 && clean[0] == '0' {
		base := 0
		switch clean[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			v, err := strconv.ParseUint(clean[2:], base, 64)
			return float64(v), err == nil
		}
	}
	v, err := strconv.ParseFloat(clean, 64)
	return v, err == nil
}
