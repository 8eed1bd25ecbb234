package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	img "github.com/phantom-wg/phantom-www/internal/image"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
<defs><style>.shield{fill:#112233}</style></defs>
<rect class="shield" x="10" y="10" width="80" height="80"/>
</svg>`

const wideSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 100" width="300" height="100">
<rect fill="#445566" x="0" y="0" width="300" height="100"/>
</svg>`

var errEncode = errors.New("encoder blew up")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pngOnly writes every format as a PNG so tests avoid the heavy encoders.
func pngOnly(w io.Writer, m image.Image, _ img.Format) error {
	return png.Encode(w, m)
}

// failAt returns an encoder that fails for format f at square size px.
func failAt(f img.Format, px int) img.EncodeFunc {
	return func(w io.Writer, m image.Image, got img.Format) error {
		b := m.Bounds()
		if got == f && b.Dx() == px && b.Dy() == px {
			return errEncode
		}
		return pngOnly(w, m, got)
	}
}

func newRasterizer(enc img.EncodeFunc) *img.Rasterizer {
	r := img.NewRasterizer(1, testLogger())
	r.SetEncoder(enc)
	return r
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("walking %s: %v", root, err)
	}
	return n
}

func TestIconBuilder_FullMatrix(t *testing.T) {
	dir := t.TempDir()
	b := NewIconBuilder(newRasterizer(pngOnly), DefaultCatalog(), testLogger())

	res := b.Build(context.Background(), "midnight-phantom", []byte(squareSVG), dir)
	if res.Generated != 49 || res.Failed != 0 {
		t.Fatalf("result = %+v, want 49 generated, 0 failed", res)
	}
	if got := countFiles(t, filepath.Join(dir, "icons")); got != 49 {
		t.Errorf("files on disk = %d, want 49", got)
	}

	for _, rel := range []string{
		"icons/favicons/favicon-16.png",
		"icons/ios/apple-touch-icon-180.webp",
		"icons/android/android-chrome-512.avif",
		"icons/favicons/favicon.ico",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "icons", "favicons", "favicon.ico"))
	if err != nil {
		t.Fatalf("reading favicon.ico: %v", err)
	}
	f, _, err := img.DetectFormat(bytes.NewReader(data))
	if err != nil || f != img.FormatICO {
		t.Errorf("favicon.ico detected as %v (err %v), want ico", f, err)
	}
}

func TestIconBuilder_SingleFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	b := NewIconBuilder(newRasterizer(failAt(img.FormatWebP, 32)), DefaultCatalog(), testLogger())

	res := b.Build(context.Background(), "quantum-blue", []byte(squareSVG), dir)
	if res.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", res.Failed)
	}
	if res.Generated != 48 {
		t.Errorf("Generated = %d, want 48", res.Generated)
	}

	ae := res.Errors[0]
	if ae.Theme != "quantum-blue" || ae.Category != "favicons" || ae.Name != "favicon-32" || ae.Format != img.FormatWebP {
		t.Errorf("artifact error = %+v", ae)
	}
	if !errors.Is(ae, errEncode) {
		t.Errorf("artifact error does not wrap the encoder error: %v", ae)
	}
	if !strings.Contains(ae.Error(), "favicon-32.webp") {
		t.Errorf("Error() = %q, want artifact identity", ae.Error())
	}

	favicons := filepath.Join(dir, "icons", "favicons")
	for _, name := range []string{"favicon-32.png", "favicon-32.avif", "favicon-48.webp", "favicon.ico"} {
		if _, err := os.Stat(filepath.Join(favicons, name)); err != nil {
			t.Errorf("sibling %s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(favicons, "favicon-32.webp")); !os.IsNotExist(err) {
		t.Errorf("failed artifact should not exist, stat err = %v", err)
	}
}

func TestIconBuilder_CorruptSource(t *testing.T) {
	dir := t.TempDir()
	b := NewIconBuilder(newRasterizer(pngOnly), DefaultCatalog(), testLogger())

	res := b.Build(context.Background(), "void-black", []byte("<svg"), dir)
	if res.Generated != 0 || res.Failed != 49 {
		t.Errorf("result = %d generated, %d failed, want 0 and 49", res.Generated, res.Failed)
	}
}

func TestLogoBuilder_BothOrientations(t *testing.T) {
	dir := t.TempDir()
	b := NewLogoBuilder(newRasterizer(pngOnly), DefaultCatalog(), testLogger())

	masters := map[string][]byte{Horizontal: []byte(wideSVG), Vertical: []byte(squareSVG)}
	res := b.Build(context.Background(), "forest-stealth", masters, dir)
	if res.Generated != 24 || res.Failed != 0 {
		t.Fatalf("result = %+v, want 24 generated", res)
	}
	if got := countFiles(t, filepath.Join(dir, "logos", Horizontal)); got != 12 {
		t.Errorf("horizontal files = %d, want 12", got)
	}
	if got := countFiles(t, filepath.Join(dir, "logos", Vertical)); got != 12 {
		t.Errorf("vertical files = %d, want 12", got)
	}

	cfg, err := decodeConfig(filepath.Join(dir, "logos", Horizontal, "logo-h-medium.png"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 300 || cfg.Height != 100 {
		t.Errorf("logo-h-medium = %dx%d, want 300x100", cfg.Width, cfg.Height)
	}
	cfg, err = decodeConfig(filepath.Join(dir, "logos", Vertical, "logo-v-small.png"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 150 || cfg.Height != 150 {
		t.Errorf("logo-v-small = %dx%d, want 150x150", cfg.Width, cfg.Height)
	}
}

func TestLogoBuilder_AbsentOrientation(t *testing.T) {
	dir := t.TempDir()
	b := NewLogoBuilder(newRasterizer(pngOnly), DefaultCatalog(), testLogger())

	res := b.Build(context.Background(), "dark-matter", map[string][]byte{Horizontal: []byte(wideSVG)}, dir)
	if res.Generated != 12 || res.Failed != 0 {
		t.Errorf("result = %+v, want 12 generated", res)
	}
	if _, err := os.Stat(filepath.Join(dir, "logos", Vertical)); !os.IsNotExist(err) {
		t.Errorf("vertical directory should not exist, stat err = %v", err)
	}
}

func TestResultAdd(t *testing.T) {
	var total Result
	total.Add(Result{Generated: 3})
	total.Add(Result{Generated: 1, Failed: 1, Errors: []*ArtifactError{{Name: "x", Err: errEncode}}})
	if total.Generated != 4 || total.Failed != 1 || len(total.Errors) != 1 {
		t.Errorf("total = %+v", total)
	}
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	return png.DecodeConfig(f)
}

func TestIconBuilder_PrunesDroppedFormats(t *testing.T) {
	dir := t.TempDir()
	full := NewIconBuilder(newRasterizer(pngOnly), DefaultCatalog(), testLogger())
	full.Build(context.Background(), "stellar-silver", []byte(squareSVG), dir)

	narrow := DefaultCatalog()
	narrow.IconFormats = []img.Format{img.FormatPNG}
	res := NewIconBuilder(newRasterizer(pngOnly), narrow, testLogger()).
		Build(context.Background(), "stellar-silver", []byte(squareSVG), dir)
	if res.Generated != 17 {
		t.Fatalf("Generated = %d, want 17", res.Generated)
	}
	if got := countFiles(t, filepath.Join(dir, "icons")); got != 17 {
		t.Errorf("files after narrowing = %d, want 17", got)
	}
}
