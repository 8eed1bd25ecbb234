package theme

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// Class names a semantic element class in the master SVG stylesheets.
type Class string

// Known element classes, in the order they are applied.
const (
	ClassShield Class = "shield"
	ClassGhost  Class = "ghost"
	ClassEyes   Class = "eyes"
	ClassText   Class = "text"
	ClassSlogan Class = "slogan"
)

// Classes lists every known class.
var Classes = []Class{ClassShield, ClassGhost, ClassEyes, ClassText, ClassSlogan}

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	for _, k := range Classes {
		if c == k {
			return true
		}
	}
	return false
}

// Colors maps element classes to CSS hex colors. A missing or empty entry
// leaves the master's authored color in place.
type Colors map[Class]string

// Theme is a named palette applied to every master asset.
type Theme struct {
	Slug        string `yaml:"slug" json:"slug"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Colors      Colors `yaml:"colors" json:"colors"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks the slug shape, the class names and the color values.
func (t Theme) Validate() error {
	if !slugPattern.MatchString(t.Slug) {
		return fmt.Errorf("invalid theme slug %q", t.Slug)
	}
	for class, value := range t.Colors {
		if !class.Valid() {
			return fmt.Errorf("theme %s: unknown class %q", t.Slug, class)
		}
		if value == "" {
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("theme %s: class %s: invalid color %q", t.Slug, class, value)
		}
	}
	return nil
}

// clone returns a deep copy so callers can never mutate catalog state.
func (t Theme) clone() Theme {
	cp := t
	if t.Colors != nil {
		cp.Colors = make(Colors, len(t.Colors))
		for k, v := range t.Colors {
			cp.Colors[k] = v
		}
	}
	return cp
}
