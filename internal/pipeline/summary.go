package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/phantom-wg/phantom-www/internal/asset"
	"github.com/phantom-wg/phantom-www/internal/filesystem"
	img "github.com/phantom-wg/phantom-www/internal/image"
)

// ManifestName is the file written at the root of the output directory.
const ManifestName = "asset-summary.json"

// SVGCounts tallies recolored vector outputs.
type SVGCounts struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed,omitempty"`
}

// IconSummary tallies the icon packs of every theme.
type IconSummary struct {
	Generated  int          `json:"generated"`
	Failed     int          `json:"failed"`
	Formats    []img.Format `json:"formats"`
	Categories []string     `json:"categories"`
}

// LogoSummary tallies the logo packs of every theme.
type LogoSummary struct {
	Generated int          `json:"generated"`
	Failed    int          `json:"failed"`
	Formats   []img.Format `json:"formats"`
	Types     []string     `json:"types"`
}

// Failure names one artifact that was not produced.
type Failure struct {
	Theme  string `json:"theme"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary is the outcome of one run. It is also the manifest document.
type Summary struct {
	RunID     string      `json:"runId"`
	Generated time.Time   `json:"generated"`
	SVGFiles  SVGCounts   `json:"svgFiles"`
	Icons     IconSummary `json:"icons"`
	Logos     LogoSummary `json:"logos"`
	Themes    []string    `json:"themes"`
	OutputDir string      `json:"outputDirectory"`
	Failures  []Failure   `json:"failures,omitempty"`

	// ManifestPath is set once the manifest has been written.
	ManifestPath string `json:"-"`
}

func newSummary(runID string, now time.Time, outputDir string, themes []string, cat asset.Catalog) *Summary {
	return &Summary{
		RunID:     runID,
		Generated: now.UTC(),
		Icons: IconSummary{
			Formats:    cat.IconFormats,
			Categories: cat.CategoryNames(),
		},
		Logos: LogoSummary{
			Formats: cat.LogoFormats,
			Types:   cat.OrientationNames(),
		},
		Themes:    themes,
		OutputDir: outputDir,
	}
}

func (s *Summary) addFailures(errs []*asset.ArtifactError) {
	for _, e := range errs {
		s.Failures = append(s.Failures, Failure{Theme: e.Theme, Path: e.Path, Reason: e.Err.Error()})
	}
}

// Failed is the number of artifacts of any kind that were not produced.
func (s *Summary) Failed() int {
	return s.SVGFiles.Failed + s.Icons.Failed + s.Logos.Failed
}

// writeManifest stores s as indented JSON under dir.
func writeManifest(dir string, s *Summary) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestName)
	if err := filesystem.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}
