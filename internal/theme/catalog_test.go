package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_DeclarationOrder(t *testing.T) {
	c := Default()
	want := []string{
		"midnight-phantom", "quantum-blue", "forest-stealth", "dark-matter",
		"void-black", "crimson-phantom", "mystic-purple", "stellar-silver",
	}
	if diff := cmp.Diff(want, c.Slugs()); diff != "" {
		t.Errorf("Slugs() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(want))
	}

	// Order must be stable across calls.
	if diff := cmp.Diff(c.Slugs(), Default().Slugs()); diff != "" {
		t.Errorf("order changed between catalogs:\n%s", diff)
	}
}

func TestCatalog_ListReturnsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Colors[ClassShield] = "#123456"
	list[0].Slug = "mutated"

	again, ok := c.Lookup("midnight-phantom")
	if !ok {
		t.Fatal("midnight-phantom missing after mutating List() result")
	}
	if again.Colors[ClassShield] != "#24245a" {
		t.Errorf("shield = %q, catalog state was mutated", again.Colors[ClassShield])
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := Default()
	th, ok := c.Lookup("stellar-silver")
	if !ok {
		t.Fatal("expected stellar-silver")
	}
	if th.Colors[ClassGhost] != "#1F2937" {
		t.Errorf("ghost = %q, want #1F2937", th.Colors[ClassGhost])
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Error("unexpected theme for unknown slug")
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		themes  []Theme
		wantErr string
	}{
		{"empty", nil, "empty"},
		{"bad slug", []Theme{{Slug: "Bad Slug"}}, "invalid theme slug"},
		{"duplicate", []Theme{{Slug: "a"}, {Slug: "a"}}, "duplicate"},
		{"unknown class", []Theme{{Slug: "a", Colors: Colors{"halo": "#ffffff"}}}, "unknown class"},
		{"bad color", []Theme{{Slug: "a", Colors: Colors{ClassEyes: "purple"}}}, "invalid color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.themes)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewCatalog_EmptyColorAllowed(t *testing.T) {
	c, err := NewCatalog([]Theme{{Slug: "partial", Colors: Colors{ClassShield: "", ClassGhost: "#fff"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	content := `themes:
  - slug: solar-flare
    name: Solar Flare
    description: Warm orange
    colors:
      shield: "#7C2D12"
      slogan: "#FDBA74"
  - slug: ice
    name: Ice
    colors:
      ghost: "#E0F2FE"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff([]string{"solar-flare", "ice"}, c.Slugs()); diff != "" {
		t.Errorf("slugs mismatch (-want +got):\n%s", diff)
	}
	th, _ := c.Lookup("solar-flare")
	want := Colors{ClassShield: "#7C2D12", ClassSlogan: "#FDBA74"}
	if diff := cmp.Diff(want, th.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
