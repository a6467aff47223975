package crml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {

	tests := []struct {
		name        string
		line        string
		kind        TokenKind
		raw         string
		html        string
		indent      int
		noAutoClose bool
	}{
		{name: "element", line: "%div.a", kind: ElementToken, raw: "div.a", html: `<div class="a ">`},
		{name: "inline element", line: "  %h1.a = hello {a}", kind: ElementToken, raw: "h1.a = hello {a}", html: `<h1 class="a ">hello {a}</h1>`, indent: 2},
		{name: "attribute keeps =", line: "%a[href=/x?a=1] = go", kind: ElementToken, raw: "a[href=/x?a=1] = go", html: `<a href=/x?a=1>go</a>`},
		{name: "escaped =", line: `%p\=x`, kind: ElementToken, raw: `p\=x`, html: `<p=x>`},
		{name: "no auto close", line: "    %~section", kind: ElementToken, raw: "section", html: "<section>", indent: 4, noAutoClose: true},
		{name: "explicit close", line: "%/div", kind: ElementToken, raw: "/div", html: "</div>"},
		{name: "statement", line: "\t- if a {  ", kind: HostStatementToken, raw: "if a {", indent: 1},
		{name: "expression", line: "= page.Name", kind: HostExpressionToken, raw: "page.Name"},
		{name: "passthrough", line: "@<b>{x}</b>", kind: RawPassthroughToken, raw: "<b>{x}</b>", html: "<b>{x}</b>"},
		{name: "comment", line: "/ a note", kind: CommentToken, raw: "a note"},
		{name: "self closing fragment", line: "  />", kind: RawToken, raw: "/>", html: "/>", indent: 2},
		{name: "text", line: "  hello {name}", kind: RawToken, raw: "hello {name}", html: "hello {name}", indent: 2},
		{name: "blank", line: "   ", kind: RawToken, raw: "\n", html: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Tokenize(tt.line, 7)

			assert.Equal(t, tt.kind, tok.Kind, tok.Kind.String())
			assert.Equal(t, tt.raw, tok.Raw)
			assert.Equal(t, tt.html, tok.HTML)
			assert.Equal(t, tt.indent, tok.Indent)
			assert.Equal(t, tt.noAutoClose, tok.NoAutoClose)
			assert.Equal(t, 7, tok.Line)
		})
	}
}

func TestTokenize_Element(t *testing.T) {
	tok := Tokenize("%ul.nav#main[role=list] = items", 0)
	require.NotNil(t, tok.Element)

	assert.Equal(t, "ul", tok.Element.Tag)
	assert.Equal(t, []string{"nav"}, tok.Element.Classes)
	assert.Equal(t, "main", tok.Element.ID)
	assert.Equal(t, []string{"role=list"}, tok.Element.Attributes)
	assert.Equal(t, "%ul.nav#main[role=list] = items", tok.Source)
}

func TestTokenStream(t *testing.T) {
	ts := NewTokenStream("%p\r\n\n  text")

	toks := ts.Tokens()
	require.Len(t, toks, 3)

	assert.Equal(t, 0, toks[0].Line)
	assert.True(t, toks[1].IsNewline())
	assert.Equal(t, 0, toks[1].Indent)
	assert.Equal(t, 2, toks[2].Line)
	assert.Equal(t, 2, toks[2].Indent)

	// the stream is exhausted and stays that way
	_, ok := ts.Next()
	assert.False(t, ok)
	assert.Empty(t, ts.Tokens())
}
