package crml

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// BufferName is the strings.Builder every generated statement writes to.
const BufferName = "crmlRendered"

type StatementKind int

const (
	// HostStatement is a verbatim line of Go
	HostStatement StatementKind = iota
	// HostExpression appends the value of a Go expression
	HostExpression
	// Write appends a markup fragment
	Write
	// SlotMarker is the placeholder a slot-block fills
	SlotMarker
)

func (k StatementKind) String() string {
	switch k {
	case HostStatement:
		return "statement"
	case HostExpression:
		return "expression"
	case SlotMarker:
		return "slot"
	default:
		return "write"
	}
}

// Statement is one emitted operation of a compiled template.
type Statement struct {
	Kind StatementKind
	// Text is the Go code, the expression, the fragment or the slot name
	Text string
	// Literal fragments have no {expr} holes
	Literal bool
	// Line is the 0-indexed source line, -1 for synthesized statements
	Line     int
	Template string
}

// Body is the compiled form of a template.
type Body []Statement

// SlotPlaceholder is the text a slot marker stands for in previews.
func SlotPlaceholder(name string) string {
	return "<!-- slot:" + name + " -->"
}

// Split cuts the body around the first marker of the named slot.
func (b Body) Split(slot string) (Body, Body, error) {
	for i, s := range b {
		if s.Kind == SlotMarker && s.Text == slot {
			return slices.Clone(b[:i]), slices.Clone(b[i+1:]), nil
		}
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
}

// Slots lists the names of unfilled slots in order.
func (b Body) Slots() []string {
	var retv []string
	for _, s := range b {
		if s.Kind == SlotMarker {
			retv = append(retv, s.Text)
		}
	}

	return retv
}

// GoSource renders the body as Go statements writing to BufferName.
func (b Body) GoSource() string {
	retv := strings.Builder{}
	for _, s := range b {
		retv.WriteString(s.goStatement())
		if note := s.annotation(); note != "" {
			retv.WriteString(" " + note)
		}
		retv.WriteString("\n")
	}

	return retv.String()
}

func (s Statement) goStatement() string {
	switch s.Kind {
	case HostStatement:
		return s.Text
	case HostExpression:
		return fmt.Sprintf("fmt.Fprint(&%s, %s)", BufferName, s.Text)
	case SlotMarker:
		return "// crml:slot " + s.Text
	}

	if s.Literal {
		return fmt.Sprintf("%s.WriteString(%s)", BufferName, strconv.Quote(s.Text))
	}

	format, args := interpolate(s.Text)
	if len(args) == 0 {
		return fmt.Sprintf("%s.WriteString(%s)", BufferName, strconv.Quote(unescapeFormat(format)))
	}

	return fmt.Sprintf("fmt.Fprintf(&%s, %s, %s)", BufferName, strconv.Quote(format), strings.Join(args, ", "))
}

// annotation is the trailing comment pointing back at the source line
func (s Statement) annotation() string {
	if s.Line < 0 || s.Kind == SlotMarker {
		return ""
	}
	if s.Template == "" {
		return fmt.Sprintf("// line %d", s.Line)
	}

	return fmt.Sprintf("// %s:%d", s.Template, s.Line)
}

// Preview renders the static markup of the body. Host statements are
// dropped, expressions and holes are shown as {expr}.
func (b Body) Preview() string {
	retv := strings.Builder{}
	for _, s := range b {
		switch s.Kind {
		case HostExpression:
			retv.WriteString("{" + s.Text + "}")
		case SlotMarker:
			retv.WriteString(SlotPlaceholder(s.Text))
		case Write:
			if s.Literal {
				retv.WriteString(s.Text)
				continue
			}
			retv.WriteString(previewFragment(s.Text))
		}
	}

	return retv.String()
}
