// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import "log/slog"

// WithOpened provides the function called with the absolute path of every file
// opened while reading, including the included ones.
func WithOpened(opened func(path string)) Option {
	return func(options *options) {
		options.opened = opened
	}
}

// WithLogger provides the slog.Logger for File.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a File with specific options.
	Option  func(options *options)
	options File
)
