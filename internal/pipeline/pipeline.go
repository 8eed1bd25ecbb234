// Package pipeline runs the themed asset generation: recolor each master per
// theme, build the icon and logo packs, then write the manifest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/phantom-wg/phantom-www/internal/asset"
	"github.com/phantom-wg/phantom-www/internal/filesystem"
	"github.com/phantom-wg/phantom-www/internal/recolor"
	"github.com/phantom-wg/phantom-www/internal/theme"
)

// ErrInputMissing is returned when the masters directory does not exist.
var ErrInputMissing = errors.New("input directory not found")

// State is a stage of a run.
type State int

// Run stages. Abort is only reachable from Init.
const (
	StateInit State = iota
	StatePerTheme
	StateSummarize
	StateDone
	StateAbort
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePerTheme:
		return "per-theme"
	case StateSummarize:
		return "summarize"
	case StateDone:
		return "done"
	case StateAbort:
		return "abort"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options configures an Orchestrator.
type Options struct {
	InputDir  string
	OutputDir string
	Themes    *theme.Catalog
	Assets    asset.Catalog
	Raster    asset.Rasterizer
	Reporter  *Reporter
	Logger    *slog.Logger

	// Now overrides the manifest timestamp source.
	Now func() time.Time
}

// Orchestrator drives one full generation run per call to Run.
type Orchestrator struct {
	opts  Options
	icons *asset.IconBuilder
	logos *asset.LogoBuilder
	state State
}

// New validates opts and creates an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Themes == nil || opts.Themes.Len() == 0 {
		return nil, errors.New("no themes configured")
	}
	if opts.Raster == nil {
		return nil, errors.New("no rasterizer configured")
	}
	if err := opts.Assets.Validate(); err != nil {
		return nil, fmt.Errorf("asset catalog: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Reporter == nil {
		opts.Reporter = NewReporter(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Logger = opts.Logger.With("component", "pipeline")

	return &Orchestrator{
		opts:  opts,
		icons: asset.NewIconBuilder(opts.Raster, opts.Assets, opts.Logger),
		logos: asset.NewLogoBuilder(opts.Raster, opts.Assets, opts.Logger),
	}, nil
}

// State returns the stage the most recent run reached.
func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) enter(s State) {
	o.opts.Logger.Debug("pipeline state", slog.String("from", o.state.String()), slog.String("to", s.String()))
	o.state = s
}

// Run generates every theme. Per-artifact failures are counted in the
// returned Summary; only a missing input directory, context cancellation or
// an unusable output directory produce an error.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	o.state = StateInit

	if !filesystem.DirExists(o.opts.InputDir) {
		o.enter(StateAbort)
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, o.opts.InputDir)
	}

	outDir, err := filepath.Abs(o.opts.OutputDir)
	if err != nil {
		outDir = o.opts.OutputDir
	}
	if err := filesystem.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	themes := o.opts.Themes.List()
	sum := newSummary(uuid.NewString(), o.opts.Now(), outDir, o.opts.Themes.Slugs(), o.opts.Assets)
	o.opts.Reporter.start(len(themes), outDir)
	o.opts.Logger.Info("pipeline started",
		slog.String("run_id", sum.RunID),
		slog.String("input", o.opts.InputDir),
		slog.String("output", outDir),
		slog.Int("themes", len(themes)))

	o.enter(StatePerTheme)
	for i, t := range themes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o.opts.Reporter.theme(i+1, len(themes), t.Slug, t.Name)
		o.runTheme(ctx, t, filepath.Join(outDir, t.Slug), sum)
	}

	o.enter(StateSummarize)
	path, err := writeManifest(outDir, sum)
	if err != nil {
		o.opts.Logger.Warn("manifest not written", slog.String("error", err.Error()))
		o.opts.Reporter.warn(err.Error())
	} else {
		sum.ManifestPath = path
	}
	o.opts.Reporter.summary(sum)
	o.opts.Logger.Info("pipeline finished",
		slog.String("run_id", sum.RunID),
		slog.Int("svg_generated", sum.SVGFiles.Generated),
		slog.Int("svg_skipped", sum.SVGFiles.Skipped),
		slog.Int("icons_generated", sum.Icons.Generated),
		slog.Int("logos_generated", sum.Logos.Generated),
		slog.Int("failed", sum.Failed()))

	o.enter(StateDone)
	return sum, nil
}

// runTheme recolors each master for t, writes the vectors and feeds the
// surviving ones to the pack builders.
func (o *Orchestrator) runTheme(ctx context.Context, t theme.Theme, themeDir string, sum *Summary) {
	logger := o.opts.Logger.With(slog.String("theme", t.Slug))
	if err := filesystem.EnsureDir(themeDir); err != nil {
		logger.Error("creating theme directory", slog.String("error", err.Error()))
	}

	recolored := make(map[string][]byte)
	for _, master := range o.opts.Assets.MasterFiles() {
		src, err := os.ReadFile(filepath.Join(o.opts.InputDir, master))
		if err != nil {
			reason := "not found"
			if !errors.Is(err, os.ErrNotExist) {
				logger.Error("reading master", slog.String("master", master), slog.String("error", err.Error()))
				reason = err.Error()
			}
			sum.SVGFiles.Skipped++
			o.opts.Reporter.svgSkipped(master, reason)
			continue
		}

		out := []byte(recolor.Recolor(string(src), t.Colors))
		recolored[master] = out

		dest := filepath.Join(themeDir, master)
		if err := filesystem.WriteFileAtomic(dest, out, 0o644); err != nil {
			logger.Error("writing recolored master", slog.String("path", dest), slog.String("error", err.Error()))
			sum.SVGFiles.Failed++
			sum.Failures = append(sum.Failures, Failure{Theme: t.Slug, Path: dest, Reason: err.Error()})
			o.opts.Reporter.svgFailed(master, err)
			continue
		}
		sum.SVGFiles.Generated++
		o.opts.Reporter.svgWritten(master)
	}

	if svg, ok := recolored[asset.IconMaster]; ok {
		res := o.icons.Build(ctx, t.Slug, svg, themeDir)
		sum.Icons.Generated += res.Generated
		sum.Icons.Failed += res.Failed
		sum.addFailures(res.Errors)
		o.opts.Reporter.pack("icons", res)
	}

	logoMasters := make(map[string][]byte)
	for _, orient := range o.opts.Assets.LogoOrientations {
		if svg, ok := recolored[orient.Master]; ok {
			logoMasters[orient.Name] = svg
		}
	}
	if len(logoMasters) > 0 {
		res := o.logos.Build(ctx, t.Slug, logoMasters, themeDir)
		sum.Logos.Generated += res.Generated
		sum.Logos.Failed += res.Failed
		sum.addFailures(res.Errors)
		o.opts.Reporter.pack("logos", res)
	}
}
