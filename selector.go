package crml

import (
	"strings"
)

// defaultTag is used when a selector names no tag, e.g. "%.card"
const defaultTag = "div"

type captureMode int

const (
	tagMode captureMode = iota
	classMode
	idMode
	attributeMode
)

// Element is the parsed form of a `tag.class#id[attr]` selector.
type Element struct {
	Tag        string
	Classes    []string
	ID         string
	Attributes []string
	hasID      bool
}

// HasID reports whether the selector carried an id
func (e Element) HasID() bool {
	return e.hasID
}

// save stores buffer into the field matching mode. Tag and id only take
// their first value, later values are dropped.
func (e *Element) save(mode captureMode, buffer string) {
	switch mode {
	case tagMode:
		if e.Tag == "" {
			e.Tag = buffer
		}
	case classMode:
		if buffer != "" {
			e.Classes = append(e.Classes, buffer)
		}
	case idMode:
		if !e.hasID {
			e.ID = buffer
			e.hasID = true
		}
	case attributeMode:
		if buffer != "" {
			e.Attributes = append(e.Attributes, buffer)
		}
	}
}

// ParseSelector parses a descriptor such as `div.a.b#id[x][y=1]`.
// An attribute bracket that is never closed swallows the rest of the input.
func ParseSelector(src string) Element {
	el := Element{}
	mode := tagMode
	buffer := strings.Builder{}

	flush := func(next captureMode) {
		el.save(mode, buffer.String())
		buffer.Reset()
		mode = next
	}

	for _, c := range src {
		if mode == attributeMode && c != ']' {
			buffer.WriteRune(c)
			continue
		}

		switch c {
		case '.':
			flush(classMode)
		case '#':
			flush(idMode)
		case '[':
			flush(attributeMode)
		case ']':
			flush(tagMode)
		default:
			buffer.WriteRune(c)
		}
	}
	el.save(mode, buffer.String())

	if el.Tag == "" {
		el.Tag = defaultTag
	}

	return el
}

// Render returns the opening tag.
func (e Element) Render() string {
	retv := strings.Builder{}
	retv.WriteString("<" + e.Tag)

	if len(e.Classes) > 0 {
		retv.WriteString(` class="`)
		for _, class := range e.Classes {
			retv.WriteString(class + " ")
		}
		retv.WriteString(`"`)
	}

	if e.hasID {
		retv.WriteString(` id="` + e.ID + `"`)
	}

	for _, attr := range e.Attributes {
		retv.WriteString(" " + attr)
	}
	retv.WriteString(">")

	return retv.String()
}

func (e Element) isClose() bool {
	return strings.HasPrefix(e.Tag, closePrefix)
}

// closedTag is the name an explicit close refers to
func (e Element) closedTag() string {
	return strings.TrimPrefix(e.Tag, closePrefix)
}
