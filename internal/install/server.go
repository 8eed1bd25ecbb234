package install

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

// Config holds the responder settings.
type Config struct {
	Addr              string
	ScriptPath        string
	IPHeader          string
	MaxConns          int
	RequestsPerMinute int
}

// Server wraps the handler chain in an http.Server with a capped listener.
type Server struct {
	cfg    Config
	logger *slog.Logger
	script []byte
}

// NewServer loads the script and prepares a Server.
func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	script, err := Script(cfg.ScriptPath)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns < 1 {
		return nil, fmt.Errorf("max conns must be positive, got %d", cfg.MaxConns)
	}
	return &Server{cfg: cfg, logger: logger.With("component", "install"), script: script}, nil
}

// Handler builds the middleware chain. A zero rate disables limiting.
func (s *Server) Handler(ctx context.Context) http.Handler {
	var h http.Handler = NewHandler(s.script, s.cfg.IPHeader)
	if s.cfg.RequestsPerMinute > 0 {
		h = NewRateLimiter(ctx, s.cfg.RequestsPerMinute, s.cfg.IPHeader).Middleware(h)
	}
	return Logging(s.logger)(h)
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts at most MaxConns concurrent connections from ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.Int("max_conns", s.cfg.MaxConns),
			slog.Int("script_bytes", len(s.script)))
		errCh <- srv.Serve(netutil.LimitListener(ln, s.cfg.MaxConns))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
