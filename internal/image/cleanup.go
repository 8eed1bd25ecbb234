package image

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// PruneStaleFormats removes name.{ext} in dir for every per-size format not
// in keep. It clears leftovers from runs with a wider format list so the
// output tree matches the current configuration. It returns the number of
// files removed.
func PruneStaleFormats(dir, name string, keep []Format, logger *slog.Logger) (int, error) {
	removed := 0
	var errs []error
	for _, f := range RasterFormats {
		if slices.Contains(keep, f) {
			continue
		}
		path := filepath.Join(dir, name+f.Ext())
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
			logger.Info("removed stale format",
				slog.String("path", path),
				slog.String("format", f.String()))
		case errors.Is(err, os.ErrNotExist):
		default:
			errs = append(errs, err)
		}
	}
	return removed, errors.Join(errs...)
}
