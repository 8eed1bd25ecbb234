package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phantom-wg/phantom-www/internal/asset"
	img "github.com/phantom-wg/phantom-www/internal/image"
)

// Problem is one artifact that is missing or does not match its catalog entry.
type Problem struct {
	Path   string
	Reason string
}

func (p Problem) String() string { return p.Path + ": " + p.Reason }

// VerifyReport is the outcome of Verify.
type VerifyReport struct {
	Checked  int
	Problems []Problem
}

// OK reports whether every expected artifact was found intact.
func (r VerifyReport) OK() bool { return len(r.Problems) == 0 }

// Verify checks an existing output tree against the catalog: every expected
// file exists, carries the magic bytes of its format and, where decodable,
// has the catalog's fixed dimension.
func Verify(outputDir string, themes []string, cat asset.Catalog) VerifyReport {
	var rep VerifyReport
	for _, slug := range themes {
		themeDir := filepath.Join(outputDir, slug)

		for _, category := range cat.IconCategories {
			for _, s := range category.Sizes {
				for _, f := range cat.IconFormats {
					rep.check(filepath.Join(themeDir, "icons", category.Name, s.Name+f.Ext()), f, img.Square(s.Size))
				}
			}
		}
		rep.check(filepath.Join(themeDir, "icons", cat.ContainerCategory, cat.ContainerName), img.FormatICO, img.Box{})

		for _, o := range cat.LogoOrientations {
			if !fileExists(filepath.Join(themeDir, o.Master)) {
				continue
			}
			for _, s := range o.Sizes {
				for _, f := range cat.LogoFormats {
					rep.check(filepath.Join(themeDir, "logos", o.Name, s.Name+f.Ext()), f, s.Box)
				}
			}
		}
	}
	return rep
}

func (r *VerifyReport) check(path string, want img.Format, box img.Box) {
	r.Checked++
	data, err := os.ReadFile(path) //nolint:gosec // G304: path built from the catalog
	if err != nil {
		r.Problems = append(r.Problems, Problem{Path: path, Reason: "missing"})
		return
	}

	got, _, err := img.DetectFormat(bytes.NewReader(data))
	if err != nil {
		r.Problems = append(r.Problems, Problem{Path: path, Reason: err.Error()})
		return
	}
	if got != want {
		r.Problems = append(r.Problems, Problem{Path: path, Reason: fmt.Sprintf("format %s, want %s", got, want)})
		return
	}
	if want == img.FormatICO {
		return
	}

	w, h, err := img.GetDimensions(bytes.NewReader(data))
	if err != nil {
		r.Problems = append(r.Problems, Problem{Path: path, Reason: err.Error()})
		return
	}
	if (box.Width != 0 && w != box.Width) || (box.Height != 0 && h != box.Height) {
		r.Problems = append(r.Problems, Problem{Path: path, Reason: fmt.Sprintf("size %dx%d, want %s", w, h, box)})
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
