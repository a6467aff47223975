package crml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {

	tests := []struct {
		src    string
		format string
		args   []string
	}{
		{"<p>{a} is 100%</p>", "<p>%v is 100%%</p>", []string{"a"}},
		{"{{x}}", "{x}", nil},
		{"{ page.Name }!", "%v!", []string{"page.Name"}},
		{"{f(map[string]int{})}", "%v", []string{"f(map[string]int{})"}},
		{"a {b", "a {b", nil},
		{"a } b", "a } b", nil},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			format, args := interpolate(tt.src)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestEscapeBraces(t *testing.T) {
	src := "function f() { return {a: 1}; }"

	format, args := interpolate(escapeBraces(src))
	assert.Empty(t, args)
	assert.Equal(t, src, format)
	assert.Equal(t, src, previewFragment(escapeBraces(src)))
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "Index", goName("index"))
	assert.Equal(t, "PagesUserList", goName("pages/user_list"))
	assert.Equal(t, "T404", goName("404"))
	assert.Equal(t, "T", goName("--"))
}
