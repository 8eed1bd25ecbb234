// Command phantom-install serves the bootstrap install script:
//
//	curl -sSL https://install.phantom.tc | bash
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phantom-wg/phantom-www/internal/config"
	"github.com/phantom-wg/phantom-www/internal/install"
	"github.com/phantom-wg/phantom-www/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:           "phantom-install",
		Short:         "Serve the Phantom-WG bootstrap install script",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Install.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $PHANTOM_CONFIG_PATH)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides install.addr)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logs := logging.NewManager(cfg.Logging)
	defer logs.Close() //nolint:errcheck
	logger := logs.Logger()
	logger.Debug("logging configured", slog.String("logging", cfg.Logging.String()))

	srv, err := install.NewServer(install.Config{
		Addr:              cfg.Install.Addr,
		ScriptPath:        cfg.Install.ScriptPath,
		IPHeader:          cfg.Install.IPHeader,
		MaxConns:          cfg.Install.MaxConns,
		RequestsPerMinute: cfg.Install.RequestsPerMinute,
	}, logger)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
