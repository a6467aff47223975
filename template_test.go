package crml

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, src := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
	}

	return dir
}

func TestCompile_Folder(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"base.crml":       "%main\n  %slot[main]",
		"pages/home.crml": "%+base.main\n%h1 = home",
	})

	c := New(dir, "crml")
	body, err := c.Compile("pages/home")
	require.NoError(t, err)
	assert.Equal(t, "<main><h1>home</h1></main>", body.Preview())

	body, err = c.Compile("pages/home.crml")
	require.NoError(t, err)
	assert.Equal(t, "<main><h1>home</h1></main>", body.Preview())
}

func TestCompile_Cache(t *testing.T) {
	c := NewWithResolver(MapResolver{"plain": "%p = {name} is {age}"})
	assert.Nil(t, c.Lookup("plain"))

	_, err := c.Compile("plain")
	require.NoError(t, err)
	assert.NotNil(t, c.Lookup("plain"))
	assert.NotNil(t, c.Lookup("plain.crml"))

	c.Reset()
	assert.Nil(t, c.Lookup("plain"))
}

func TestCompile_MissingFile(t *testing.T) {
	c := New(t.TempDir(), "")

	_, err := c.Compile("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), err)
}

func TestCompile_Logger(t *testing.T) {
	buff := bytes.NewBufferString("")
	logger := slog.New(slog.NewTextHandler(buff, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := NewWithResolver(layouts).Logger(logger)
	_, err := c.Compile("page")
	require.NoError(t, err)

	assert.Contains(t, buff.String(), "template=page")
	assert.Contains(t, buff.String(), "template=base")
}

func TestResolverFunc(t *testing.T) {
	calls := 0
	r := ResolverFunc(func(name string) (string, error) {
		calls++
		return "%b = " + name, nil
	})

	c := NewWithResolver(r)
	for i := 0; i < 2; i++ {
		body, err := c.Compile("x")
		require.NoError(t, err)
		assert.Equal(t, "<b>x</b>", body.Preview())
	}
	assert.Equal(t, 1, calls)
}
