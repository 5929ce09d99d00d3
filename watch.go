// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/nil-go/appconf/provider/file"
)

// Watch gathers the configuration of type T and calls onChange with it,
// then gathers again and calls onChange with the new configuration
// whenever one of the files opened while gathering changes.
// Errors of gathering again are logged, and the previous configuration stays in effect.
//
// Only the files opened by the first gathering are watched,
// so files included by a later change are not watched.
//
// It blocks until ctx is done, or watching a file fails.
// It returns immediately after the first call of onChange if no file is opened.
// It panics if ctx is nil.
func Watch[T any](ctx context.Context, onChange func(T), opts ...Option) error {
	if ctx == nil {
		panic("cannot watch change with nil context")
	}

	gatherer := New(opts...)
	typ := reflect.TypeFor[T]()
	result, err := gatherer.Collect(typ)
	if err != nil {
		return err
	}
	onChange(result.Value.(T)) //nolint:forcetypeassert

	if len(result.Files) == 0 {
		return nil
	}

	logger := gatherer.logger.WithGroup("appconf")
	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	for _, path := range slices.Compact(slices.Sorted(slices.Values(result.Files))) {
		group.Go(func() error {
			logger.LogAttrs(ctx, slog.LevelDebug, "Watching configuration change.", slog.String("file", path))
			if err := file.Watch(ctx, path, notify, file.WithLogger(gatherer.logger)); err != nil {
				return fmt.Errorf("watch configuration change: %w", err)
			}

			return nil
		})
	}
	group.Go(func() error {
		for {
			select {
			case <-changed:
				result, err := gatherer.Collect(typ)
				if err != nil {
					logger.LogAttrs(ctx, slog.LevelWarn,
						"Error when gathering changed configuration.",
						slog.Any("error", err),
					)

					continue
				}
				logger.LogAttrs(ctx, slog.LevelInfo, "Configuration has been changed.")
				onChange(result.Value.(T)) //nolint:forcetypeassert
			case <-ctx.Done():
				return nil
			}
		}
	})

	return group.Wait()
}
