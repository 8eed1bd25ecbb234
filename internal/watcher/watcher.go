// Package watcher re-runs the asset pipeline when master SVGs change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc performs one complete pipeline run.
type RunFunc func(ctx context.Context) error

// Service watches a masters directory and triggers a debounced full run on
// any change to an .svg file or to one of the extra watched files.
type Service struct {
	dir          string
	run          RunFunc
	logger       *slog.Logger
	debounce     time.Duration
	pollInterval time.Duration
	checkTimeout time.Duration
	extra        map[string]bool
	forcePoll    bool
}

// NewService creates a watcher for dir.
func NewService(dir string, run RunFunc, logger *slog.Logger) *Service {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Service{
		dir:          filepath.Clean(dir),
		run:          run,
		logger:       logger.With("component", "watcher"),
		debounce:     500 * time.Millisecond,
		pollInterval: 2 * time.Second,
		checkTimeout: 2 * time.Second,
		extra:        make(map[string]bool),
	}
}

// SetDebounce overrides the quiet period before a run.
func (s *Service) SetDebounce(d time.Duration) { s.debounce = d }

// SetPollInterval overrides the poll period used when fsnotify is unavailable.
func (s *Service) SetPollInterval(d time.Duration) { s.pollInterval = d }

// WatchFile adds a single file (such as a theme catalog) whose changes also
// trigger a run. It must be called before Start.
func (s *Service) WatchFile(path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.extra[filepath.Clean(path)] = true
}

// Start blocks until ctx is canceled. It falls back to polling when the
// directory does not deliver fsnotify events.
func (s *Service) Start(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("watching %s: not a directory", s.dir)
	}

	var events <-chan fsnotify.Event
	var errs <-chan error
	var pollC <-chan time.Time

	if !s.forcePoll && NotifySupported(s.dir, s.checkTimeout) {
		w, err := s.newFSWatcher()
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck
		events, errs = w.Events, w.Errors
		s.logger.Info("watching masters", slog.String("dir", s.dir), slog.String("mode", "fsnotify"))
	} else {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		pollC = ticker.C
		s.logger.Info("watching masters", slog.String("dir", s.dir), slog.String("mode", "poll"),
			slog.Duration("interval", s.pollInterval))
	}
	snapshot := s.snapshot()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false
	schedule := func(reason string) {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(s.debounce)
		if !pending {
			s.logger.Debug("change detected", slog.String("path", reason))
		}
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watcher stopping")
			return nil

		case ev, ok := <-events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if s.relevant(ev) {
				schedule(ev.Name)
			}

		case err, ok := <-errs:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			s.logger.Error("fsnotify error", slog.String("error", err.Error()))

		case <-pollC:
			next := s.snapshot()
			if changed := diffSnapshot(snapshot, next); changed != "" {
				schedule(changed)
			}
			snapshot = next

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			s.logger.Info("masters changed, regenerating")
			if err := s.run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("regeneration failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *Service) newFSWatcher() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dirs := map[string]bool{s.dir: true}
	for p := range s.extra {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close() //nolint:errcheck
			return nil, fmt.Errorf("watching %s: %w", d, err)
		}
	}
	return w, nil
}

// relevant filters fsnotify events down to master SVGs and extra files.
func (s *Service) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if s.extra[name] {
		return true
	}
	return filepath.Dir(name) == s.dir && isSVG(name)
}

func isSVG(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), ".svg")
}

type fileState struct {
	size    int64
	modTime time.Time
}

// snapshot records size and mtime of every watched file for poll mode.
func (s *Service) snapshot() map[string]fileState {
	snap := make(map[string]fileState)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("reading masters directory", slog.String("error", err.Error()))
	}
	for _, e := range entries {
		if e.IsDir() || !isSVG(e.Name()) {
			continue
		}
		if info, err := e.Info(); err == nil {
			snap[filepath.Join(s.dir, e.Name())] = fileState{size: info.Size(), modTime: info.ModTime()}
		}
	}
	for p := range s.extra {
		if info, err := os.Stat(p); err == nil {
			snap[p] = fileState{size: info.Size(), modTime: info.ModTime()}
		}
	}
	return snap
}

// diffSnapshot returns one path that differs between a and b, or "".
func diffSnapshot(a, b map[string]fileState) string {
	for p, st := range b {
		if prev, ok := a[p]; !ok || prev.size != st.size || !prev.modTime.Equal(st.modTime) {
			return p
		}
	}
	for p := range a {
		if _, ok := b[p]; !ok {
			return p
		}
	}
	return ""
}
