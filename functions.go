package crml

import (
	"strings"
	"unicode"
)

// fragment piece; expr pieces hold the text between braces
type piece struct {
	text string
	expr bool
}

// scanFragment splits markup into literal text and {expr} holes.
// "{{" and "}}" are literal braces. A "{" with no matching "}" is kept as
// text.
func scanFragment(src string) []piece {
	var (
		retv []piece
		text strings.Builder
	)

	for i := 0; i < len(src); i++ {
		c := src[i]

		if c == '}' {
			if i+1 < len(src) && src[i+1] == '}' {
				i++
			}
			text.WriteByte('}')
			continue
		}

		if c != '{' {
			text.WriteByte(c)
			continue
		}

		if i+1 < len(src) && src[i+1] == '{' {
			text.WriteByte('{')
			i++
			continue
		}

		end := matchBrace(src, i)
		if end == -1 {
			text.WriteByte(c)
			continue
		}

		if text.Len() > 0 {
			retv = append(retv, piece{text: text.String()})
			text.Reset()
		}
		retv = append(retv, piece{text: strings.TrimSpace(src[i+1 : end]), expr: true})
		i = end
	}

	if text.Len() > 0 {
		retv = append(retv, piece{text: text.String()})
	}

	return retv
}

// matchBrace returns the index of the "}" closing the "{" at open
func matchBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// interpolate turns a fragment into a fmt format string and its arguments.
func interpolate(src string) (format string, args []string) {
	sb := strings.Builder{}
	for _, p := range scanFragment(src) {
		if p.expr {
			sb.WriteString("%v")
			args = append(args, p.text)
			continue
		}
		sb.WriteString(strings.ReplaceAll(p.text, "%", "%%"))
	}

	return sb.String(), args
}

func unescapeFormat(format string) string {
	return strings.ReplaceAll(format, "%%", "%")
}

func previewFragment(src string) string {
	sb := strings.Builder{}
	for _, p := range scanFragment(src) {
		if p.expr {
			sb.WriteString("{" + p.text + "}")
			continue
		}
		sb.WriteString(p.text)
	}

	return sb.String()
}

// escapeBraces doubles braces so a fragment carries no holes
func escapeBraces(val string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(val)
}

func capitalize(val string) string {
	if val == "" {
		return val
	}
	r := []rune(val)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// goName converts a template name such as "pages/user_list" into an
// exported Go identifier ("PagesUserList").
func goName(val string) string {
	parts := strings.FieldsFunc(val, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	retv := strings.Builder{}
	for _, p := range parts {
		retv.WriteString(capitalize(p))
	}

	name := retv.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "T" + name
	}

	return name
}
