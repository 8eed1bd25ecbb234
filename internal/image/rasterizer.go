package image

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/phantom-wg/phantom-www/internal/filesystem"
)

// Rasterizer renders SVG content into encoded raster files.
type Rasterizer struct {
	supersample int
	encode      EncodeFunc
	logger      *slog.Logger
}

// NewRasterizer creates a Rasterizer. supersample is clamped to 1..4.
func NewRasterizer(supersample int, logger *slog.Logger) *Rasterizer {
	return &Rasterizer{
		supersample: min(max(supersample, 1), 4),
		encode:      Encode,
		logger:      logger.With("component", "rasterizer"),
	}
}

// SetEncoder overrides the per-size encoder (for testing).
func (r *Rasterizer) SetEncoder(fn EncodeFunc) {
	r.encode = fn
}

// Rasterize renders svg into box, encodes it as f and writes it to dest.
// dest is replaced if it exists.
func (r *Rasterizer) Rasterize(ctx context.Context, svg []byte, box Box, f Format, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.IsRaster() {
		return fmt.Errorf("%w: %s is not a per-size format", ErrUnsupportedFormat, f)
	}

	img, err := Render(svg, box, r.supersample)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	var buf bytes.Buffer
	if err := r.encode(&buf, img, f); err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	r.logger.Debug("rasterized",
		slog.String("path", dest),
		slog.String("format", f.String()),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))
	return nil
}

// RasterizeContainer renders svg at each square size and writes the frames as
// one ICO file. It succeeds or fails as a unit.
func (r *Rasterizer) RasterizeContainer(ctx context.Context, svg []byte, sizes []int, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frames := make([][]byte, 0, len(sizes))
	for _, size := range sizes {
		img, err := Render(svg, Square(size), r.supersample)
		if err != nil {
			return fmt.Errorf("rendering %dpx frame: %w", size, err)
		}
		frame, err := encodeFrame(img)
		if err != nil {
			return err
		}
		frames = append(frames, frame)
	}

	var buf bytes.Buffer
	if err := EncodeICO(&buf, frames); err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	r.logger.Debug("packed icon container",
		slog.String("path", dest),
		slog.Any("sizes", sizes))
	return nil
}
