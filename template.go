package crml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

var (
	// ErrSlotNotFound is returned when an included template has no slot
	// with the requested name.
	ErrSlotNotFound = errors.New("crml: slot not found")
	// ErrIncludeCycle is returned when a template includes itself,
	// directly or through other templates.
	ErrIncludeCycle = errors.New("crml: include cycle")
	// ErrIncludeDepth is returned when includes nest deeper than the limit.
	ErrIncludeDepth = errors.New("crml: include depth exceeded")
)

// DefaultMaxDepth bounds nested includes
const DefaultMaxDepth = 16

// Compiler turns named templates into compiled bodies. It isn't safe for
// concurrent use.
type Compiler struct {
	resolver Resolver
	logger   *slog.Logger
	maxDepth int
	cache    map[string]Body
}

// New create new instance of Compiler reading templates from folder
func New(folder, ext string) *Compiler {
	if ext == "" {
		ext = "crml"
	}

	return NewWithResolver(DirResolver{Folder: folder, Ext: ext})
}

// NewWithResolver creates a Compiler that loads template source through r
func NewWithResolver(r Resolver) *Compiler {
	c := new(Compiler)
	c.resolver = r
	c.cache = make(map[string]Body)
	c.maxDepth = DefaultMaxDepth
	c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	return c
}

// Logger sets the logger used to report template resolution
func (c *Compiler) Logger(logger *slog.Logger) *Compiler {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// MaxDepth sets how deep includes may nest
func (c *Compiler) MaxDepth(depth int) *Compiler {
	if depth > 0 {
		c.maxDepth = depth
	}
	return c
}

// Lookup returns the compiled body with the given name in the cache
func (c *Compiler) Lookup(name string) Body {
	_, name = getFilename("", name, "")
	body, found := c.cache[name]
	if !found {
		return nil
	}

	return slices.Clone(body)
}

// Reset drops every cached body
func (c *Compiler) Reset() {
	c.cache = make(map[string]Body)
}

// Compile resolves and compiles the named template. Bodies are cached by
// name, includes reuse the cache too.
func (c *Compiler) Compile(name string) (Body, error) {
	body, err := c.load(name, nil)
	if err != nil {
		return nil, err
	}

	return slices.Clone(body), nil
}

// CompileString compiles template source that has no name. Includes are
// still resolved through the compiler's resolver.
func (c *Compiler) CompileString(src string) (Body, error) {
	return c.compile("", src, nil)
}

// load compiles a named template, chain holds the names of the templates
// currently being compiled above it.
func (c *Compiler) load(name string, chain []string) (Body, error) {
	_, name = getFilename("", name, "")

	if slices.Contains(chain, name) {
		return nil, fmt.Errorf("%w: %v -> %s", ErrIncludeCycle, chain, name)
	}
	if len(chain) >= c.maxDepth {
		return nil, fmt.Errorf("%w: %d levels at %s", ErrIncludeDepth, len(chain), name)
	}

	if body, found := c.cache[name]; found {
		c.logger.Debug("template cache hit", "template", name)
		return body, nil
	}

	src, err := c.resolver.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("crml: resolve %s: %w", name, err)
	}
	c.logger.Debug("template resolved", "template", name, "depth", len(chain))

	body, err := c.compile(name, src, append(slices.Clone(chain), name))
	if err != nil {
		return nil, err
	}
	c.cache[name] = body

	return body, nil
}

func (c *Compiler) compile(name, src string, chain []string) (Body, error) {
	g := newGenerator(c, name, chain)

	body, err := g.run(NewTokenStream(src))
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, err
	}

	return body, nil
}
