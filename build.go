package crml

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/valyala/fasttemplate"
	"golang.org/x/tools/imports"
)

// Entry pairs a template with the Go type its render function receives.
type Entry struct {
	Template string
	DataType string
}

var funcTpl = fasttemplate.New(`// {{func}} renders the {{template}} template with the given {{type}}.
func {{func}}(page {{type}}) string {
	var {{buffer}} strings.Builder
{{body}}
	return {{buffer}}.String()
}
`, "{{", "}}")

var fileTpl = fasttemplate.New(`// Code generated by crml. DO NOT EDIT.

package {{package}}

import (
{{imports}})

{{functions}}`, "{{", "}}")

// defaultImports are needed by every generated body
var defaultImports = []string{"fmt", "strings"}

// Function compiles the entry's template and wraps it into an exported Go
// function taking `page` of the entry's data type.
func (c *Compiler) Function(e Entry) (string, error) {
	body, err := c.Compile(e.Template)
	if err != nil {
		return "", err
	}

	src := body.GoSource()
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = "\t" + lines[i]
		}
	}

	_, name := getFilename("", e.Template, "")
	retv := funcTpl.ExecuteString(map[string]interface{}{
		"func":     goName(name),
		"template": name,
		"type":     e.DataType,
		"buffer":   BufferName,
		"body":     strings.Join(lines, "\n"),
	})

	return retv, nil
}

// Build compiles every entry into one Go file of package pkg. The file is
// passed through goimports, which also drops unused imports.
func (c *Compiler) Build(pkg string, entries []Entry, extraImports ...string) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("crml: package name is required")
	}

	funcs := bytes.NewBufferString("")
	for i, e := range entries {
		fn, err := c.Function(e)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			funcs.WriteString("\n")
		}
		funcs.WriteString(fn)
	}

	imps := strings.Builder{}
	for _, imp := range append(append([]string{}, defaultImports...), extraImports...) {
		// import lines such as `. "example.com/app/data"` are taken as written
		if !strings.Contains(imp, `"`) {
			imp = strconv.Quote(imp)
		}
		imps.WriteString("\t" + imp + "\n")
	}

	src := fileTpl.ExecuteString(map[string]interface{}{
		"package":   pkg,
		"imports":   imps.String(),
		"functions": funcs.String(),
	})

	retv, err := imports.Process(pkg+".go", []byte(src), nil)
	if err != nil {
		return nil, fmt.Errorf("crml: format generated source: %w\n%s", err, src)
	}

	return retv, nil
}

// WriteFile atomically replaces path with src, creating parent folders.
func WriteFile(path string, src []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return atomic.WriteFile(path, bytes.NewReader(src))
}
