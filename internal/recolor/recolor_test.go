package recolor

import (
	"strings"
	"testing"

	"github.com/phantom-wg/phantom-www/internal/theme"
)

const master = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <defs>
    <style>
      .shield { fill: #24245a; }
      .ghost{fill:#ffffff;}
      .eyes   {   fill:   #24245A;   stroke: none; }
      .eyes-glow { fill: #aaaaaa; }
      .text { opacity: 0.9; fill: #24245a; }
    </style>
  </defs>
  <path class="shield" d="M0 0h100v100H0z"/>
  <path class="ghost" d="M10 10h80v80H10z"/>
  <circle class="eyes" cx="40" cy="40" r="5"/>
</svg>`

func TestRecolor_RewritesOnlyMatchingRule(t *testing.T) {
	got := Recolor(master, theme.Colors{theme.ClassShield: "#0A1628"})

	want := strings.Replace(master, ".shield { fill: #24245a; }", ".shield { fill: #0A1628; }", 1)
	if got != want {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestRecolor_PreservesWhitespaceAndOtherProperties(t *testing.T) {
	got := Recolor(master, theme.Colors{theme.ClassEyes: "#DC2626", theme.ClassGhost: "#1F2937"})

	for _, frag := range []string{
		".eyes   {   fill:   #DC2626;   stroke: none; }",
		".ghost{fill:#1F2937;}",
		".eyes-glow { fill: #aaaaaa; }",
		".shield { fill: #24245a; }",
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("output missing %q", frag)
		}
	}
}

func TestRecolor_FillNotFirstDeclaration(t *testing.T) {
	got := Recolor(master, theme.Colors{theme.ClassText: "#E5E7EB"})
	if !strings.Contains(got, ".text { opacity: 0.9; fill: #E5E7EB; }") {
		t.Errorf("text rule not rewritten:\n%s", got)
	}
}

func TestRecolor_NoPrefixMatch(t *testing.T) {
	got := Recolor(master, theme.Colors{theme.ClassEyes: "#000000"})
	if !strings.Contains(got, ".eyes-glow { fill: #aaaaaa; }") {
		t.Error("eyes-glow must not be rewritten by the eyes class")
	}
}

func TestRecolor_AbsentAndEmptyClassesPreserved(t *testing.T) {
	got := Recolor(master, theme.Colors{theme.ClassShield: "", theme.ClassSlogan: "#ff0000"})
	if got != master {
		t.Errorf("expected unchanged output, got:\n%s", got)
	}
}

func TestRecolor_IdentityWithoutRules(t *testing.T) {
	plain := `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#123456"/></svg>`
	for _, th := range theme.Builtin() {
		if got := Recolor(plain, th.Colors); got != plain {
			t.Errorf("theme %s changed content without matching rules", th.Slug)
		}
	}
}

func TestRecolor_EveryBuiltinTheme(t *testing.T) {
	for _, th := range theme.Builtin() {
		t.Run(th.Slug, func(t *testing.T) {
			got := Recolor(master, th.Colors)
			if !strings.Contains(got, ".shield { fill: "+th.Colors[theme.ClassShield]+";") {
				t.Errorf("shield not recolored for %s", th.Slug)
			}
			if !strings.Contains(got, "fill:"+th.Colors[theme.ClassGhost]+";") {
				t.Errorf("ghost not recolored for %s", th.Slug)
			}
		})
	}
}

func TestRecolor_EightDigitHexLeftAlone(t *testing.T) {
	in := `.shield { fill: #24245a80; }`
	if got := Recolor(in, theme.Colors{theme.ClassShield: "#000000"}); got != in {
		t.Errorf("8-digit color should not match, got %q", got)
	}
}

func TestInlineClassFills(t *testing.T) {
	got := InlineClassFills(master)

	for _, frag := range []string{
		`<path fill="#24245a" class="shield"`,
		`<path fill="#ffffff" class="ghost"`,
		`<circle fill="#24245A" class="eyes"`,
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("output missing %q:\n%s", frag, got)
		}
	}
}

func TestInlineClassFills_KeepsExplicitFill(t *testing.T) {
	in := `<style>.shield { fill: #111111; }</style><path class="shield" fill="#222222" d="M0 0"/>`
	if got := InlineClassFills(in); got != in {
		t.Errorf("explicit fill was overridden: %s", got)
	}
}

func TestInlineClassFills_NoStyles(t *testing.T) {
	in := `<svg><path class="shield" d="M0 0"/></svg>`
	if got := InlineClassFills(in); got != in {
		t.Errorf("expected identity, got %s", got)
	}
}

func TestStripStyleBlocks(t *testing.T) {
	in := "<svg><defs><style type=\"text/css\">\n.shield{fill:#24245a}\n.unused{}\n</style><style/></defs><path class=\"shield\" d=\"M0 0\"/></svg>"
	want := `<svg><defs></defs><path class="shield" d="M0 0"/></svg>`
	if got := StripStyleBlocks(in); got != want {
		t.Errorf("StripStyleBlocks = %q, want %q", got, want)
	}
}
