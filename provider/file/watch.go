// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build !appengine && (darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package file

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever the file is written, created or removed, until ctx is done.
//
// It watches the parent directory, so replacing the file or a symlink to it is detected too.
//
//nolint:cyclop,funlen
func Watch(ctx context.Context, path string, onChange func(), opts ...Option) error {
	f := New(path, opts...)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher for %s: %w", f.path, err)
	}
	defer func() {
		if e := watcher.Close(); e != nil {
			f.logger.LogAttrs(
				ctx, slog.LevelWarn,
				"Error when closing file watcher.",
				slog.String("file", f.path),
				slog.Any("error", e),
			)
		}
	}()

	// Although only a single file is being watched, fsnotify has to watch
	// the whole parent directory to pick up all events such as symlink changes.
	dir, _ := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}
	if e := watcher.Add(dir); e != nil {
		return fmt.Errorf("watch dir %s: %w", dir, e)
	}

	// Resolve symlinks and save the original path so that changes to symlinks
	// can be detected.
	realPath, err := filepath.EvalSymlinks(f.path)
	if err != nil {
		return fmt.Errorf("eval symlink: %w", err)
	}
	realPath = filepath.Clean(realPath)
	cleanPath := filepath.Clean(f.path)

	var (
		lastEvent     string
		lastEventTime time.Time
	)
	for {
		select {
		case event := <-watcher.Events:
			// Use a simple timer to buffer events as certain events fire
			// multiple times on some platforms.
			if event.String() == lastEvent && time.Since(lastEventTime) < 5*time.Millisecond {
				continue
			}
			lastEvent = event.String()
			lastEventTime = time.Now()

			// Since the event is triggered on a directory, is this
			// one on the file being watched?
			evFile := filepath.Clean(event.Name)
			if evFile != realPath && evFile != cleanPath {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove):
				f.logger.LogAttrs(
					ctx, slog.LevelWarn,
					"Config file has been removed.",
					slog.String("file", f.path),
				)
				onChange()
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				f.logger.LogAttrs(
					ctx, slog.LevelDebug,
					"Config file has been changed.",
					slog.String("file", f.path),
				)
				onChange()
			}

		case err := <-watcher.Errors:
			f.logger.LogAttrs(
				ctx, slog.LevelWarn,
				"Error when watching file",
				slog.String("file", f.path),
				slog.Any("error", err),
			)

		case <-ctx.Done():
			return nil
		}
	}
}
