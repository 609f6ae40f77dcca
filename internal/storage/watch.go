// ABOUTME: Filesystem watcher that reloads the seed directory on change.
// ABOUTME: Uses fsnotify and keeps the previous posts when a reload fails.
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/2389-research/postboard/internal/models"
)

// reloadDelay coalesces the burst of events editors emit for one save.
const reloadDelay = 100 * time.Millisecond

// Watch monitors the source directory and calls onChange with the freshly
// loaded posts after post files are written, created, removed, or renamed.
// It runs until ctx is cancelled. A missing directory is an error wrapping
// fs.ErrNotExist; the directory is never created.
//
// If a reload fails the error is logged and onChange is not called, so the
// caller keeps its previous collection.
func (s *PostsMDSource) Watch(ctx context.Context, onChange func([]models.Post)) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("cannot watch seed directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirs(watcher, s.dir); err != nil {
		return err
	}

	s.logger.Debug("storage: watching for changes", "dir", s.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addDirs(watcher, event.Name)
					continue
				}
			}
			if !IsPostFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			posts, err := s.ListPosts()
			if err != nil {
				s.logger.Error("storage: reload failed, keeping previous posts",
					"dir", s.dir, "err", err)
				continue
			}
			s.logger.Debug("storage: reloaded", "dir", s.dir, "count", len(posts))
			onChange(posts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("storage: watcher error", "err", err)
		}
	}
}

// addDirs adds root and every non-hidden directory below it to the watcher.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
