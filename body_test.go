package crml

import (
	"errors"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody_GoSource(t *testing.T) {
	body := compileString(t, `%div.class#id[attr=value]
  - a := page.A
  = a
  - if a > 1 {
    %h1 = a is {a}, 100%
  - }
  @{raw}

%p`)

	expected := `crmlRendered.WriteString("<div class=\"class \" id=\"id\" attr=value>") // line 0
a := page.A; // line 1
fmt.Fprint(&crmlRendered, a) // line 2
if a > 1 { // line 3
fmt.Fprintf(&crmlRendered, "<h1>a is %v, 100%%</h1>", a) // line 4
} // line 5
crmlRendered.WriteString("{raw}") // line 6
crmlRendered.WriteString("\n") // line 7
crmlRendered.WriteString("</div>")
crmlRendered.WriteString("<p>") // line 8
crmlRendered.WriteString("</p>")
`

	got := body.GoSource()
	if got != expected {
		t.Errorf("wrong output:\n%s", diff.LineDiff(expected, got))
	}
}

func TestBody_Annotation(t *testing.T) {
	body := Body{
		{Kind: Write, Text: "<p>", Literal: true, Line: 3, Template: "pages/home"},
		{Kind: SlotMarker, Text: "main", Line: 4, Template: "pages/home"},
	}

	assert.Equal(t, "crmlRendered.WriteString(\"<p>\") // pages/home:3\n// crml:slot main\n", body.GoSource())
}

func TestBody_Split(t *testing.T) {
	body := compileString(t, "%header\n%slot[main]\n%footer\n%slot[main]")

	head, tail, err := body.Split("main")
	require.NoError(t, err)
	assert.Equal(t, "<header></header>", head.Preview())
	assert.Equal(t, "<footer></footer>"+SlotPlaceholder("main"), tail.Preview())

	// split copies, the source body is untouched
	head[0].Text = "changed"
	assert.Equal(t, "<header>", body[0].Text)

	_, _, err = body.Split("aside")
	assert.True(t, errors.Is(err, ErrSlotNotFound))
	assert.True(t, strings.Contains(err.Error(), `"aside"`))
}
