package crml

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolver supplies the source text of a named template.
type Resolver interface {
	Resolve(name string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (string, error)

func (f ResolverFunc) Resolve(name string) (string, error) {
	return f(name)
}

// DirResolver reads templates from Folder, appending Ext to names that
// carry no extension.
type DirResolver struct {
	Folder string
	Ext    string
}

func (d DirResolver) Resolve(name string) (string, error) {
	fle, _ := getFilename(d.Folder, name, d.Ext)

	content, err := os.ReadFile(fle)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

// MapResolver serves templates from memory, keyed by name.
type MapResolver map[string]string

func (m MapResolver) Resolve(name string) (string, error) {
	src, found := m[name]
	if !found {
		return "", fmt.Errorf("template %q: %w", name, fs.ErrNotExist)
	}

	return src, nil
}

func getFilename(folder, name, ext string) (fileName string, tplName string) {
	fle := filepath.Join(folder, name)
	// add a file extension if one isn't provided
	if filepath.Ext(fle) == "" && ext != "" {
		fle += "." + strings.TrimPrefix(ext, ".")
	}

	// remove file extension if one is provided
	if e := filepath.Ext(name); e != "" {
		name = strings.TrimSuffix(name, e)
	}

	return fle, name
}
