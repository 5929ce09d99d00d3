// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build appengine || !(darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package file

import (
	"context"
	"log/slog"
	"runtime"
)

func Watch(ctx context.Context, path string, _ func(), opts ...Option) error {
	New(path, opts...).logger.LogAttrs(ctx, slog.LevelWarn,
		"File watching is not supported.", slog.String("os", runtime.GOOS))

	return nil
}
