// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Reloads texelpage.json when it changes on disk.
// Usage: Run in its own goroutine; onChange is called from that goroutine
// after a successful reload and must hand work to the loop via Post.
// Notes: The directory is watched, not the file, so editors that save by
// rename are still seen.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of write events from one save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes the config directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher watches the directory holding texelpage.json.
func NewWatcher(log *zap.Logger) (*Watcher, error) {
	path, err := SystemPath()
	if err != nil {
		return nil, err
	}
	return newWatcher(path, DefaultDebounce, log)
}

func newWatcher(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{watcher: w, path: path, debounce: debounce, log: log}, nil
}

// Run blocks until ctx ends, reloading the store after each settled change.
func (w *Watcher) Run(ctx context.Context, onChange func(Config)) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := Reload(); err != nil {
				w.log.Warn("Config: Reload failed", zap.Error(err))
				continue
			}
			w.log.Info("Config: Reloaded", zap.String("path", w.path))
			if onChange != nil {
				onChange(System())
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Config: Watcher error", zap.Error(err))
		}
	}
}
