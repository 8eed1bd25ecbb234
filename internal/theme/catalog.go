package theme

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered set of themes. Iteration order is the
// declaration order.
type Catalog struct {
	themes []Theme
	index  map[string]int
}

// NewCatalog validates themes and builds a catalog from them.
func NewCatalog(themes []Theme) (*Catalog, error) {
	if len(themes) == 0 {
		return nil, errors.New("theme catalog is empty")
	}

	c := &Catalog{
		themes: make([]Theme, 0, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	for _, t := range themes {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.Slug]; dup {
			return nil, fmt.Errorf("duplicate theme slug %q", t.Slug)
		}
		c.index[t.Slug] = len(c.themes)
		c.themes = append(c.themes, t.clone())
	}
	return c, nil
}

// Default returns a catalog of the built-in themes.
func Default() *Catalog {
	c, err := NewCatalog(Builtin())
	if err != nil {
		panic(fmt.Sprintf("built-in theme catalog is invalid: %v", err))
	}
	return c
}

// List returns a copy of the themes in declaration order.
func (c *Catalog) List() []Theme {
	out := make([]Theme, len(c.themes))
	for i, t := range c.themes {
		out[i] = t.clone()
	}
	return out
}

// Slugs returns the theme slugs in declaration order.
func (c *Catalog) Slugs() []string {
	out := make([]string, len(c.themes))
	for i, t := range c.themes {
		out[i] = t.Slug
	}
	return out
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.themes)
}

// Lookup returns the theme with the given slug.
func (c *Catalog) Lookup(slug string) (Theme, bool) {
	i, ok := c.index[slug]
	if !ok {
		return Theme{}, false
	}
	return c.themes[i].clone(), true
}

type catalogFile struct {
	Themes []Theme `yaml:"themes"`
}

// LoadFile reads a YAML theme catalog of the form
//
//	themes:
//	  - slug: midnight-phantom
//	    name: Midnight Phantom
//	    colors: {shield: "#24245a", ghost: "#ffffff"}
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("reading theme catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing theme catalog %s: %w", path, err)
	}
	c, err := NewCatalog(f.Themes)
	if err != nil {
		return nil, fmt.Errorf("theme catalog %s: %w", path, err)
	}
	return c, nil
}
