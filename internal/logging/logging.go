// Package logging builds the process-wide slog logger and keeps it
// reconfigurable once the configuration file has been read.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxFiles   int    `yaml:"file_max_files"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig returns the bootstrap configuration used before any file is read.
// The format is chosen from the terminal state of stderr.
func DefaultConfig() Config {
	return Config{
		Level:          "info",
		Format:         AutoFormat(os.Stderr),
		FileMaxSizeMB:  10,
		FileMaxFiles:   3,
		FileMaxAgeDays: 14,
	}
}

// AutoFormat returns "text" when f is a terminal and "json" otherwise.
func AutoFormat(f *os.File) string {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return "text"
	}
	return "json"
}

// String returns a human-readable summary of the config.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "level=%s format=%s", c.Level, c.Format)
	if c.FilePath != "" {
		fmt.Fprintf(&b, " file=%s rotate=%dMB/%d/%dd",
			c.FilePath, c.FileMaxSizeMB, c.FileMaxFiles, c.FileMaxAgeDays)
	}
	return b.String()
}

// ValidLevel reports whether s is a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat reports whether s is a recognized log format.
func ValidFormat(s string) bool {
	return s == "text" || s == "json"
}

// swapHandler delegates to an inner handler that can be replaced atomically.
type swapHandler struct {
	inner atomic.Pointer[slog.Handler]
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{}
	s.inner.Store(&h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) { s.inner.Store(&h) }

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.inner.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return (*s.inner.Load()).Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{root: s, attrs: attrs}
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	return &derivedHandler{root: s, groups: []string{name}}
}

// derivedHandler replays attrs and groups onto whatever handler the root
// currently holds, so loggers built with With keep following Reconfigure.
type derivedHandler struct {
	root   *swapHandler
	attrs  []slog.Attr
	groups []string
	parent *derivedHandler
}

func (d *derivedHandler) resolve() slog.Handler {
	var h slog.Handler
	if d.parent != nil {
		h = d.parent.resolve()
	} else {
		h = *d.root.inner.Load()
	}
	if len(d.attrs) > 0 {
		h = h.WithAttrs(d.attrs)
	}
	for _, g := range d.groups {
		h = h.WithGroup(g)
	}
	return h
}

func (d *derivedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.resolve().Enabled(ctx, level)
}

func (d *derivedHandler) Handle(ctx context.Context, r slog.Record) error {
	return d.resolve().Handle(ctx, r)
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{root: d.root, attrs: attrs, parent: d}
}

func (d *derivedHandler) WithGroup(name string) slog.Handler {
	return &derivedHandler{root: d.root, groups: []string{name}, parent: d}
}

// Manager owns the logger and the optional rotating log file.
type Manager struct {
	out      io.Writer
	levelVar *slog.LevelVar
	handler  *swapHandler
	logger   *slog.Logger

	mu     sync.Mutex
	config Config
	closer io.Closer
}

// NewManager creates a Manager writing to stderr.
func NewManager(cfg Config) *Manager {
	return NewManagerWriter(cfg, os.Stderr)
}

// NewManagerWriter creates a Manager writing console output to out.
func NewManagerWriter(cfg Config, out io.Writer) *Manager {
	lvl := &slog.LevelVar{}
	lvl.Set(parseLevel(cfg.Level))

	w, closer := buildWriter(cfg, out)
	h := newSwapHandler(buildHandler(w, lvl, cfg.Format))

	return &Manager{
		out:      out,
		levelVar: lvl,
		handler:  h,
		logger:   slog.New(h),
		config:   cfg,
		closer:   closer,
	}
}

// Logger returns the managed logger. It stays valid across Reconfigure.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Reconfigure applies cfg. Level changes are instant; format or file changes
// rebuild the handler and reopen the log file.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.levelVar.Set(parseLevel(cfg.Level))

	if cfg.Format != m.config.Format ||
		cfg.FilePath != m.config.FilePath ||
		cfg.FileMaxSizeMB != m.config.FileMaxSizeMB ||
		cfg.FileMaxFiles != m.config.FileMaxFiles ||
		cfg.FileMaxAgeDays != m.config.FileMaxAgeDays {
		if m.closer != nil {
			m.closer.Close() //nolint:errcheck
			m.closer = nil
		}
		w, closer := buildWriter(cfg, m.out)
		m.handler.swap(buildHandler(w, m.levelVar, cfg.Format))
		m.closer = closer
	}

	m.config = cfg
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Close releases the log file, if any. It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildWriter tees console output into a lumberjack file when a path is set.
func buildWriter(cfg Config, out io.Writer) (io.Writer, io.Closer) {
	if cfg.FilePath == "" {
		return out, nil
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    positiveOr(cfg.FileMaxSizeMB, 10),
		MaxBackups: positiveOr(cfg.FileMaxFiles, 3),
		MaxAge:     positiveOr(cfg.FileMaxAgeDays, 14),
	}
	return io.MultiWriter(out, lj), lj
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func buildHandler(w io.Writer, leveler slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: leveler}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
