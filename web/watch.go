package web

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
)

// debounceDelay absorbs editors that save a file in several writes.
const debounceDelay = 100 * time.Millisecond

// startWatcher watches the local feed files and refreshes the dashboard when
// one of them changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, file := range s.WatchFiles {
		if err := watcher.Add(file); err != nil {
			s.log.WithError(err).WithField("file", file).Warn("failed to watch feed")
		}
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.WithError(err).Warn("file watcher error")
		}
	}
}

// handleFileChange refreshes the dashboard and re-adds the watches, since an
// atomic save replaces the watched inode.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if _, err := s.refresh(ctx); err != nil {
		s.log.WithError(err).Warn("refresh after file change failed")
	}

	for _, file := range s.WatchFiles {
		if err := watcher.Add(file); err != nil {
			s.log.WithError(err).WithField("file", file).Warn("failed to watch feed")
		}
	}
}

// startScheduler refreshes the dashboard on the configured cron schedule
// until ctx is cancelled.
func (s *Server) startScheduler(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.Schedule, func() {
		if _, err := s.refresh(ctx); err != nil {
			s.log.WithError(err).Warn("scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.Schedule, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()

	s.log.WithField("schedule", s.Schedule).Info("scheduled refresh enabled")
	return nil
}
