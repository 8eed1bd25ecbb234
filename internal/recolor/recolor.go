// Package recolor rewrites the class-based fill colors in master SVG
// stylesheets.
package recolor

import (
	"regexp"
	"strings"

	"github.com/phantom-wg/phantom-www/internal/theme"
)

// fillRule matches a rule for one class whose declaration block sets fill to a
// six-digit hex color. Group 1 is everything up to the color, group 2 the
// character that terminates it.
func fillRule(class string) *regexp.Regexp {
	return regexp.MustCompile(`(\.` + regexp.QuoteMeta(class) +
		`\s*\{(?:[^{}]*?[;\s])?fill\s*:\s*)#[0-9a-fA-F]{6}([^0-9a-fA-F]|$)`)
}

// Recolor substitutes the fill color of every `.class { fill: #rrggbb }` rule
// for each class in colors that has a non-empty value. Everything else in the
// document, including whitespace inside the rewritten rules, is preserved.
func Recolor(svg string, colors theme.Colors) string {
	out := svg
	for _, class := range theme.Classes {
		color := colors[class]
		if color == "" {
			continue
		}
		repl := "${1}" + strings.ReplaceAll(color, "$", "$$") + "${2}"
		out = fillRule(string(class)).ReplaceAllString(out, repl)
	}
	return out
}
