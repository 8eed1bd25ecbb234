package asset

import (
	"context"
	"fmt"

	img "github.com/phantom-wg/phantom-www/internal/image"
)

// Rasterizer writes raster artifacts. *image.Rasterizer satisfies it.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, box img.Box, f img.Format, dest string) error
	RasterizeContainer(ctx context.Context, svg []byte, sizes []int, dest string) error
}

// ArtifactError describes one output file that could not be produced.
type ArtifactError struct {
	Theme    string     `json:"theme"`
	Category string     `json:"category"`
	Name     string     `json:"name"`
	Format   img.Format `json:"format"`
	Path     string     `json:"path"`
	Err      error      `json:"-"`
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("%s/%s/%s%s: %v", e.Theme, e.Category, e.Name, e.Format.Ext(), e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// Result is the outcome of one pack build.
type Result struct {
	Generated int
	Failed    int
	Errors    []*ArtifactError
}

// Add folds other into r.
func (r *Result) Add(other Result) {
	r.Generated += other.Generated
	r.Failed += other.Failed
	r.Errors = append(r.Errors, other.Errors...)
}

func (r *Result) record(err *ArtifactError) {
	if err == nil {
		r.Generated++
		return
	}
	r.Failed++
	r.Errors = append(r.Errors, err)
}
