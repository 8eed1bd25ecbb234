package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phantom-wg/phantom-www/internal/asset"
	img "github.com/phantom-wg/phantom-www/internal/image"
	"github.com/phantom-wg/phantom-www/internal/theme"
)

// pngCatalog keeps real encoding cheap.
func pngCatalog() asset.Catalog {
	c := asset.DefaultCatalog()
	c.IconFormats = []img.Format{img.FormatPNG}
	c.LogoFormats = []img.Format{img.FormatPNG}
	return c
}

func generate(t *testing.T, skip ...string) (string, []string) {
	t.Helper()
	out := t.TempDir()
	themes, err := theme.NewCatalog(theme.Builtin()[:1])
	if err != nil {
		t.Fatal(err)
	}
	o, err := New(Options{
		InputDir:  writeMasters(t, skip...),
		OutputDir: out,
		Themes:    themes,
		Assets:    pngCatalog(),
		Raster:    img.NewRasterizer(1, testLogger()),
		Logger:    testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out, themes.Slugs()
}

func TestVerify_CleanTree(t *testing.T) {
	out, slugs := generate(t)
	rep := Verify(out, slugs, pngCatalog())
	if !rep.OK() {
		t.Fatalf("problems: %v", rep.Problems)
	}
	// 16 icons, the container, 8 logos.
	if rep.Checked != 25 {
		t.Errorf("Checked = %d, want 25", rep.Checked)
	}
}

func TestVerify_SkipsAbsentOrientation(t *testing.T) {
	out, slugs := generate(t, asset.VerticalMaster)
	rep := Verify(out, slugs, pngCatalog())
	if !rep.OK() || rep.Checked != 21 {
		t.Errorf("checked %d, problems %v; want 21 and none", rep.Checked, rep.Problems)
	}
}

func TestVerify_ReportsDamage(t *testing.T) {
	out, slugs := generate(t)
	themeDir := filepath.Join(out, slugs[0])

	if err := os.Remove(filepath.Join(themeDir, "icons", "ios", "apple-touch-icon-60.png")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themeDir, "logos", asset.Horizontal, "logo-h-small.png"), []byte("GIF89a......"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A correct-format file with the wrong size.
	small, err := os.ReadFile(filepath.Join(themeDir, "icons", "favicons", "favicon-16.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themeDir, "icons", "android", "android-chrome-48.png"), small, 0o644); err != nil {
		t.Fatal(err)
	}

	rep := Verify(out, slugs, pngCatalog())
	if len(rep.Problems) != 3 {
		t.Fatalf("problems = %v, want 3", rep.Problems)
	}
	joined := ""
	for _, p := range rep.Problems {
		joined += p.String() + "\n"
	}
	for _, want := range []string{"apple-touch-icon-60.png: missing", "logo-h-small.png: unrecognized", "android-chrome-48.png: size 16x16"} {
		if !strings.Contains(joined, want) {
			t.Errorf("report missing %q:\n%s", want, joined)
		}
	}
}
