package crml

import (
	"fmt"
	"slices"
	"strings"
)

// reserved selector forms
const (
	closePrefix     = "/"
	rawPrefix       = "!"
	slotBlockPrefix = "+"
	slotTag         = "slot"
)

// whitespace sensitive elements are never closed by a dedent and their
// content is emitted without holes
var whitespaceSensitive = []string{"script", "style", "pre", "html", "body", "head"}

type generator struct {
	c     *Compiler
	name  string
	chain []string

	// indents and tags always have the same length, one entry per open
	// element
	indents []int
	tags    []string

	out   Body
	tails []Body
}

func newGenerator(c *Compiler, name string, chain []string) *generator {
	return &generator{c: c, name: name, chain: chain}
}

func (g *generator) run(ts *TokenStream) (Body, error) {
	for {
		tok, ok := ts.Next()
		if !ok {
			break
		}

		if err := g.step(tok); err != nil {
			return nil, err
		}
	}

	g.closeOpen()
	for _, tail := range g.tails {
		g.out = append(g.out, tail...)
	}

	return g.out, nil
}

func (g *generator) step(tok Token) error {
	if isRawBlock(g.top()) {
		g.raw(tok)
		return nil
	}

	if tok.Kind == CommentToken {
		return nil
	}

	if !tok.IsNewline() {
		g.autoClose(tok)
	}

	switch tok.Kind {
	case HostStatementToken:
		text := tok.Raw
		if !strings.HasSuffix(text, "{") && text != "}" {
			text += ";"
		}
		g.emit(Statement{Kind: HostStatement, Text: text, Line: tok.Line})

	case HostExpressionToken:
		g.emit(Statement{Kind: HostExpression, Text: tok.Raw, Line: tok.Line})

	default:
		return g.markup(tok)
	}

	return nil
}

// autoClose closes every open element the token dedents to or past.
// It stops at the first element that has to be closed explicitly and at the
// element an explicit close token names.
func (g *generator) autoClose(tok Token) {
	target := ""
	if tok.Element != nil && tok.Element.isClose() {
		target = tok.Element.closedTag()
	}

	for len(g.tags) > 0 {
		top := len(g.tags) - 1
		tag, indent := g.tags[top], g.indents[top]
		if indent == NoAutoClose || tok.Indent > indent || !closable(tag) || tag == target {
			return
		}

		g.emitClose(tag)
		g.pop()
	}
}

// closeOpen closes what is still open once the stream is exhausted
func (g *generator) closeOpen() {
	for len(g.tags) > 0 {
		top := len(g.tags) - 1
		if g.indents[top] == NoAutoClose || !closable(g.tags[top]) {
			return
		}

		g.emitClose(g.tags[top])
		g.pop()
	}
}

func (g *generator) markup(tok Token) error {
	if tok.IsNewline() {
		g.emit(Statement{Kind: Write, Text: newline, Literal: true, Line: tok.Line})
		return nil
	}

	html := tok.HTML
	if el := tok.Element; el != nil {
		if el.isClose() {
			tag := el.closedTag()
			if tag == "" {
				return nil
			}
			g.closeExplicit(tag)
			if isRawBlock(tag) || isSlotBlock(tag) {
				return nil
			}
			html = "</" + tag + ">"
		} else {
			switch {
			case el.Tag == slotTag:
				g.emit(Statement{Kind: SlotMarker, Text: slotName(el), Line: tok.Line})
				return nil

			case isRawBlock(el.Tag):
				g.push(frameIndent(tok), el.Tag)
				return nil

			case isSlotBlock(el.Tag):
				g.push(frameIndent(tok), el.Tag)
				return g.include(el, tok)
			}

			g.push(frameIndent(tok), el.Tag)
			if strings.Contains(html, "</") {
				// inline content closed the element already
				g.pop()
			}
		}
	}

	literal := tok.Kind == RawPassthroughToken
	if top := g.top(); !literal && (isWhitespaceSensitive(top) || isRawBlock(top)) {
		html = escapeBraces(html)
	}

	g.emit(Statement{Kind: Write, Text: html, Literal: literal, Line: tok.Line})

	return nil
}

// raw emits the authored line untouched while a raw block is open
func (g *generator) raw(tok Token) {
	if el := tok.Element; el != nil && el.isClose() && el.closedTag() == g.top() {
		g.pop()
		return
	}

	if tok.IsNewline() {
		g.emit(Statement{Kind: Write, Text: newline, Literal: true, Line: tok.Line})
		return
	}

	g.emit(Statement{Kind: Write, Text: tok.Source + newline, Literal: true, Line: tok.Line})
}

// include compiles the template named by a slot-block and wraps the output
// generated so far with the part of it that precedes the target slot. The
// part after the slot is appended once the stream ends.
func (g *generator) include(el *Element, tok Token) error {
	name := strings.TrimPrefix(el.Tag, slotBlockPrefix)
	slot := ""
	if len(el.Classes) > 0 {
		slot = el.Classes[0]
	}

	body, err := g.c.load(name, g.chain)
	if err != nil {
		return fmt.Errorf("line %d: %w", tok.Line, err)
	}

	head, tail, err := body.Split(slot)
	if err != nil {
		return fmt.Errorf("line %d: include %s: %w", tok.Line, name, err)
	}

	g.out = append(head, g.out...)
	g.tails = append(g.tails, tail)

	return nil
}

// closeExplicit pops the nearest open element named tag
func (g *generator) closeExplicit(tag string) {
	for j := len(g.tags) - 1; j >= 0; j-- {
		if g.tags[j] == tag {
			g.indents = g.indents[:j]
			g.tags = g.tags[:j]
			return
		}
	}
}

func (g *generator) emit(s Statement) {
	s.Template = g.name
	g.out = append(g.out, s)
}

func (g *generator) emitClose(tag string) {
	g.emit(Statement{Kind: Write, Text: "</" + tag + ">", Literal: true, Line: -1})
}

// frameIndent is the indentation recorded for an element the token opens
func frameIndent(tok Token) int {
	if tok.NoAutoClose {
		return NoAutoClose
	}
	return tok.Indent
}

func (g *generator) push(indent int, tag string) {
	g.indents = append(g.indents, indent)
	g.tags = append(g.tags, tag)
}

func (g *generator) pop() {
	if len(g.tags) == 0 {
		return
	}
	g.indents = g.indents[:len(g.indents)-1]
	g.tags = g.tags[:len(g.tags)-1]
}

func (g *generator) top() string {
	if len(g.tags) == 0 {
		return ""
	}
	return g.tags[len(g.tags)-1]
}

func closable(tag string) bool {
	return tag != "" && !isWhitespaceSensitive(tag) && !isRawBlock(tag) && !isSlotBlock(tag)
}

func isWhitespaceSensitive(tag string) bool {
	return slices.Contains(whitespaceSensitive, tag)
}

func isRawBlock(tag string) bool {
	return strings.HasPrefix(tag, rawPrefix)
}

func isSlotBlock(tag string) bool {
	return strings.HasPrefix(tag, slotBlockPrefix)
}

// slotName is the first attribute of a slot marker, or its id
func slotName(el *Element) string {
	if len(el.Attributes) > 0 {
		return el.Attributes[0]
	}
	return el.ID
}
