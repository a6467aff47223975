package crml

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// void elements never take a closing tag
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// Problem is a markup issue found by Check.
type Problem struct {
	Tag     string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("<%s>: %s", p.Tag, p.Message)
}

// Check looks for unbalanced elements in the static markup of a body. It
// does not judge host code, and problems never stop a build.
func Check(b Body) []Problem {
	var (
		retv []Problem
		open []string
	)

	z := html.NewTokenizer(strings.NewReader(b.Preview()))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				retv = append(retv, Problem{Message: z.Err().Error()})
			}
			break
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[atom.Lookup(name)] {
				continue
			}
			open = append(open, tag)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[atom.Lookup(name)] {
				retv = append(retv, Problem{Tag: tag, Message: "void element has a closing tag"})
				continue
			}
			i := len(open) - 1
			for i >= 0 && open[i] != tag {
				i--
			}
			if i < 0 {
				retv = append(retv, Problem{Tag: tag, Message: "closed but never opened"})
				continue
			}
			for _, unclosed := range open[i+1:] {
				retv = append(retv, Problem{Tag: unclosed, Message: "not closed before </" + tag + ">"})
			}
			open = open[:i]
		}
	}

	for _, tag := range open {
		retv = append(retv, Problem{Tag: tag, Message: "never closed"})
	}

	return retv
}
