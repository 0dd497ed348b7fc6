// Package preview serves the generated site locally and regenerates the
// changelog pages when fragments change.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/changelogbuilder/internal/logfields"
)

// debounceWindow coalesces bursts of filesystem events (editors often emit
// several per save) into one regeneration.
const debounceWindow = 300 * time.Millisecond

// Server serves siteDir over HTTP and watches watchDir for changes.
type Server struct {
	addr     string
	siteDir  string
	watchDir string
	rebuild  func() error
}

// NewServer creates a preview server. rebuild is invoked after changes in
// watchDir settle.
func NewServer(addr, siteDir, watchDir string, rebuild func() error) *Server {
	return &Server{addr: addr, siteDir: siteDir, watchDir: watchDir, rebuild: rebuild}
}

// Run blocks until ctx is cancelled or the HTTP server fails.
func (s *Server) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := watcher.Add(s.watchDir); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           http.FileServer(http.Dir(s.siteDir)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", s.addr), logfields.Path(s.siteDir))
		errChan <- httpServer.ListenAndServe()
	}()

	go s.watchLoop(ctx, watcher)

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name))
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-timerC:
			timer = nil
			timerC = nil
			if err := s.rebuild(); err != nil {
				slog.Error("Regeneration failed", logfields.Error(err))
			} else {
				slog.Info("Changelog pages regenerated")
			}
		}
	}
}
