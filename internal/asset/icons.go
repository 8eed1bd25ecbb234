package asset

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/phantom-wg/phantom-www/internal/filesystem"
	img "github.com/phantom-wg/phantom-www/internal/image"
)

// IconBuilder produces the platform icon tree for one theme.
type IconBuilder struct {
	raster  Rasterizer
	catalog Catalog
	logger  *slog.Logger
}

// NewIconBuilder creates an IconBuilder.
func NewIconBuilder(raster Rasterizer, catalog Catalog, logger *slog.Logger) *IconBuilder {
	return &IconBuilder{
		raster:  raster,
		catalog: catalog,
		logger:  logger.With("component", "icons"),
	}
}

// Build writes every category x size x format icon under themeDir/icons and
// then the favicon container. Individual failures are counted, never returned.
func (b *IconBuilder) Build(ctx context.Context, theme string, svg []byte, themeDir string) Result {
	var res Result
	iconsDir := filepath.Join(themeDir, "icons")

	for _, cat := range b.catalog.IconCategories {
		catDir := filepath.Join(iconsDir, cat.Name)
		if err := filesystem.EnsureDir(catDir); err != nil {
			b.logger.Error("creating icon directory", slog.String("dir", catDir), slog.String("error", err.Error()))
		}

		for _, s := range cat.Sizes {
			for _, f := range b.catalog.IconFormats {
				dest := filepath.Join(catDir, s.Name+f.Ext())
				err := b.raster.Rasterize(ctx, svg, img.Square(s.Size), f, dest)
				res.record(b.artifactError(err, theme, cat.Name, s.Name, f, dest))
			}
			if _, err := img.PruneStaleFormats(catDir, s.Name, b.catalog.IconFormats, b.logger); err != nil {
				b.logger.Warn("pruning stale icon formats", slog.String("name", s.Name), slog.String("error", err.Error()))
			}
		}
	}

	dest := filepath.Join(iconsDir, b.catalog.ContainerCategory, b.catalog.ContainerName)
	err := b.raster.RasterizeContainer(ctx, svg, b.catalog.ContainerSizes, dest)
	name := b.catalog.ContainerName[:len(b.catalog.ContainerName)-len(filepath.Ext(b.catalog.ContainerName))]
	res.record(b.artifactError(err, theme, b.catalog.ContainerCategory, name, img.FormatICO, dest))

	return res
}

func (b *IconBuilder) artifactError(err error, theme, category, name string, f img.Format, dest string) *ArtifactError {
	if err == nil {
		return nil
	}
	b.logger.Error("icon generation failed",
		slog.String("theme", theme),
		slog.String("category", category),
		slog.String("name", name),
		slog.String("format", f.String()),
		slog.String("error", err.Error()))
	return &ArtifactError{Theme: theme, Category: category, Name: name, Format: f, Path: dest, Err: err}
}
