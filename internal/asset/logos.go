package asset

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/phantom-wg/phantom-www/internal/filesystem"
	img "github.com/phantom-wg/phantom-www/internal/image"
)

// LogoBuilder produces the horizontal and vertical logo trees for one theme.
type LogoBuilder struct {
	raster  Rasterizer
	catalog Catalog
	logger  *slog.Logger
}

// NewLogoBuilder creates a LogoBuilder.
func NewLogoBuilder(raster Rasterizer, catalog Catalog, logger *slog.Logger) *LogoBuilder {
	return &LogoBuilder{
		raster:  raster,
		catalog: catalog,
		logger:  logger.With("component", "logos"),
	}
}

// Build writes logos for each orientation present in masters, keyed by
// orientation name. Absent orientations produce nothing.
func (b *LogoBuilder) Build(ctx context.Context, theme string, masters map[string][]byte, themeDir string) Result {
	var res Result
	logosDir := filepath.Join(themeDir, "logos")

	for _, o := range b.catalog.LogoOrientations {
		svg, ok := masters[o.Name]
		if !ok || svg == nil {
			continue
		}

		dir := filepath.Join(logosDir, o.Name)
		if err := filesystem.EnsureDir(dir); err != nil {
			b.logger.Error("creating logo directory", slog.String("dir", dir), slog.String("error", err.Error()))
		}

		for _, s := range o.Sizes {
			for _, f := range b.catalog.LogoFormats {
				dest := filepath.Join(dir, s.Name+f.Ext())
				err := b.raster.Rasterize(ctx, svg, s.Box, f, dest)
				if err == nil {
					res.record(nil)
					continue
				}
				b.logger.Error("logo generation failed",
					slog.String("theme", theme),
					slog.String("orientation", o.Name),
					slog.String("name", s.Name),
					slog.String("size", s.Box.String()),
					slog.String("format", f.String()),
					slog.String("error", err.Error()))
				res.record(&ArtifactError{Theme: theme, Category: o.Name, Name: s.Name, Format: f, Path: dest, Err: err})
			}
			if _, err := img.PruneStaleFormats(dir, s.Name, b.catalog.LogoFormats, b.logger); err != nil {
				b.logger.Warn("pruning stale logo formats", slog.String("name", s.Name), slog.String("error", err.Error()))
			}
		}
	}
	return res
}
