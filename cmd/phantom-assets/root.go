package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phantom-wg/phantom-www/internal/asset"
	"github.com/phantom-wg/phantom-www/internal/config"
	img "github.com/phantom-wg/phantom-www/internal/image"
	"github.com/phantom-wg/phantom-www/internal/logging"
	"github.com/phantom-wg/phantom-www/internal/pipeline"
	"github.com/phantom-wg/phantom-www/internal/theme"
	"github.com/phantom-wg/phantom-www/internal/watcher"
)

// app carries the state shared by every subcommand.
type app struct {
	stdout, stderr io.Writer
	configPath     string

	cfg    *config.Config
	logs   *logging.Manager
	logger *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// execute runs the command line args. The log sink is closed on every exit
// path; cobra skips post-run hooks when a command fails.
func (a *app) execute(ctx context.Context, args []string) error {
	defer a.close()
	root := a.command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) command() *cobra.Command {
	stdout, stderr := a.stdout, a.stderr
	root := &cobra.Command{
		Use:   "phantom-assets [outputDir]",
		Short: "Generate themed Phantom-WG icons and logos",
		Long: `phantom-assets recolors the master SVGs in ./masters for every theme and
rasterizes the icon and logo sets into the output directory.

Output layout per theme:
  {theme}/phantom-*-master.svg
  {theme}/icons/{favicons,ios,android}/{name}.{png,webp,avif}
  {theme}/icons/favicons/favicon.ico
  {theme}/logos/{horizontal,vertical}/{name}.{png,webp,avif}
and asset-summary.json at the root.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runOnce,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $PHANTOM_CONFIG_PATH)")

	root.AddCommand(&cobra.Command{
		Use:   "run [outputDir]",
		Short: "Run the asset pipeline once",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runOnce,
	})
	root.AddCommand(&cobra.Command{
		Use:   "watch [outputDir]",
		Short: "Run the pipeline, then re-run whenever a master SVG changes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.watch,
	})
	root.AddCommand(&cobra.Command{
		Use:   "verify [outputDir]",
		Short: "Check an output tree for missing or malformed artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.verify,
	})
	return root
}

// setup loads configuration and builds the logger before any subcommand.
func (a *app) setup(_ *cobra.Command, args []string) error {
	a.logs = logging.NewManagerWriter(logging.DefaultConfig(), a.stderr)
	a.logger = a.logs.Logger()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.OutputDir = args[0]
	}
	a.cfg = cfg
	a.logs.Reconfigure(cfg.Logging)
	a.logger.Debug("configuration loaded", slog.String("logging", cfg.Logging.String()))
	return nil
}

func (a *app) close() {
	if a.logs != nil {
		a.logs.Close() //nolint:errcheck
		a.logs = nil
	}
}

// catalogs builds the theme and asset catalogs from the current
// configuration. The theme file is reread each call so watch mode picks up
// catalog edits.
func (a *app) catalogs() (*theme.Catalog, asset.Catalog, error) {
	themes := theme.Default()
	if a.cfg.ThemesFile != "" {
		c, err := theme.LoadFile(a.cfg.ThemesFile)
		if err != nil {
			return nil, asset.Catalog{}, err
		}
		themes = c
	}

	assets := asset.DefaultCatalog()
	assets.IconFormats = a.cfg.Icons.Formats
	assets.LogoFormats = a.cfg.Logos.Formats
	return themes, assets, nil
}

func (a *app) orchestrator() (*pipeline.Orchestrator, error) {
	themes, assets, err := a.catalogs()
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Options{
		InputDir:  a.cfg.InputDir,
		OutputDir: a.cfg.OutputDir,
		Themes:    themes,
		Assets:    assets,
		Raster:    img.NewRasterizer(a.cfg.Raster.Supersample, a.logger),
		Reporter:  pipeline.NewReporter(a.stdout),
		Logger:    a.logger,
	})
}

func (a *app) runOnce(cmd *cobra.Command, _ []string) error {
	o, err := a.orchestrator()
	if err != nil {
		return err
	}
	if _, err := o.Run(cmd.Context()); err != nil {
		if errors.Is(err, pipeline.ErrInputMissing) {
			return fmt.Errorf("%w (expected the master SVGs in %s)", err, a.cfg.InputDir)
		}
		return err
	}
	return nil
}

func (a *app) watch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := a.runOnce(cmd, args); err != nil {
		return err
	}

	svc := watcher.NewService(a.cfg.InputDir, func(ctx context.Context) error {
		o, err := a.orchestrator()
		if err != nil {
			return err
		}
		_, err = o.Run(ctx)
		return err
	}, a.logger)
	svc.SetDebounce(a.cfg.Watch.Debounce)
	svc.WatchFile(a.cfg.ThemesFile)

	fmt.Fprintf(a.stdout, "\nWatching %s for changes (Ctrl+C to stop)\n", a.cfg.InputDir)
	return svc.Start(ctx)
}

func (a *app) verify(_ *cobra.Command, _ []string) error {
	themes, assets, err := a.catalogs()
	if err != nil {
		return err
	}
	rep := pipeline.Verify(a.cfg.OutputDir, themes.Slugs(), assets)
	for _, p := range rep.Problems {
		fmt.Fprintln(a.stdout, p)
	}
	fmt.Fprintf(a.stdout, "%d artifacts checked, %d problems\n", rep.Checked, len(rep.Problems))
	if !rep.OK() {
		return fmt.Errorf("%d artifacts failed verification", len(rep.Problems))
	}
	return nil
}
