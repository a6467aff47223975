package crml

import (
	"strings"
)

// NoAutoClose is the frame indentation of elements declared with `%~`.
// Such elements are never closed by a dedent and must be closed explicitly.
const NoAutoClose = -1

type TokenKind int

const (
	RawToken TokenKind = iota
	CommentToken
	HostStatementToken
	HostExpressionToken
	ElementToken
	RawPassthroughToken
)

func (k TokenKind) String() string {
	str := ""
	switch k {
	case CommentToken:
		str = "comment"
	case HostStatementToken:
		str = "statement"
	case HostExpressionToken:
		str = "expression"
	case ElementToken:
		str = "element"
	case RawPassthroughToken:
		str = "passthrough"
	default:
		str = "raw"
	}

	return str
}

// newline is the raw text carried by blank lines
const newline = "\n"

// Token is one tokenized source line.
type Token struct {
	Kind TokenKind
	Raw  string
	HTML string
	// Indent is the measured indentation of the line, raw text included, so
	// text at an element's level closes it. Blank lines have 0.
	Indent int
	Line   int
	// NoAutoClose marks a `%~` element, its frame is left for an explicit
	// close
	NoAutoClose bool
	Element     *Element
	// Source is the trimmed source line, emitted as-is inside raw blocks
	Source string
}

// IsNewline reports whether the token stands for a blank source line.
func (t Token) IsNewline() bool {
	return t.Kind == RawToken && t.Raw == newline
}

// TokenStream yields one Token per source line. It can't be rewound.
type TokenStream struct {
	lines  []string
	cursor int
}

// NewTokenStream splits src into lines and returns a stream over them
func NewTokenStream(src string) *TokenStream {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return &TokenStream{lines: strings.Split(src, "\n")}
}

// Next returns the next token, false once every line has been consumed.
func (s *TokenStream) Next() (Token, bool) {
	if s.cursor >= len(s.lines) {
		return Token{}, false
	}

	line := s.cursor
	s.cursor++

	return Tokenize(s.lines[line], line), true
}

// Tokens drains the stream.
func (s *TokenStream) Tokens() []Token {
	retv := make([]Token, 0, len(s.lines)-s.cursor)
	for {
		tok, ok := s.Next()
		if !ok {
			return retv
		}
		retv = append(retv, tok)
	}
}

// Tokenize turns a single source line into a Token.
func Tokenize(line string, number int) Token {
	indent := indentOf(line)
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return Token{Kind: RawToken, Raw: newline, HTML: newline, Line: number, Source: trimmed}
	}

	tok := Token{Indent: indent, Line: number, Source: trimmed}
	rest := trimmed[1:]

	switch trimmed[0] {
	case '/':
		if strings.HasPrefix(rest, ">") {
			// "/>" closes a hand-written tag, it is content not a comment
			tok.Kind = RawToken
			tok.Raw = trimmed
			tok.HTML = trimmed
			break
		}
		tok.Kind = CommentToken
		tok.Raw = strings.TrimSpace(rest)

	case '-':
		tok.Kind = HostStatementToken
		tok.Raw = strings.TrimSpace(rest)

	case '=':
		tok.Kind = HostExpressionToken
		tok.Raw = strings.TrimSpace(rest)

	case '%':
		tok.Kind = ElementToken
		if strings.HasPrefix(rest, "~") {
			tok.NoAutoClose = true
			rest = rest[1:]
		}

		selector, content, inline := splitInline(rest)
		el := ParseSelector(selector)
		tok.Element = &el
		tok.Raw = rest
		tok.HTML = el.Render()
		if inline {
			tok.HTML += content + "</" + el.Tag + ">"
		}

	case '@':
		tok.Kind = RawPassthroughToken
		tok.Raw = strings.TrimSpace(rest)
		tok.HTML = tok.Raw

	default:
		tok.Kind = RawToken
		tok.Raw = trimmed
		tok.HTML = trimmed
	}

	return tok
}

// indentOf counts leading spaces and tabs, one unit each.
func indentOf(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}

	return n
}

// splitInline separates a selector from its inline content. Content starts
// after the first "=" that is neither escaped ("\=") nor inside brackets.
func splitInline(src string) (selector, content string, inline bool) {
	sb := strings.Builder{}
	depth := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src) && src[i+1] == '=':
			sb.WriteByte('=')
			i++
			continue
		case c == '[':
			depth++
		case c == ']' && depth > 0:
			depth--
		case c == '=' && depth == 0:
			return strings.TrimSpace(sb.String()), strings.TrimLeft(src[i+1:], " \t"), true
		}
		sb.WriteByte(c)
	}

	return strings.TrimSpace(sb.String()), "", false
}
