// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env

import "log/slog"

// WithDelimiter provides the delimiter joining names of nested elements in variable names.
//
// For example, with delimiter "__", element `db.host` is read from `<prefix>db__host`.
// By default, it is ".".
func WithDelimiter(delimiter string) Option {
	return func(options *options) {
		options.delimiter = delimiter
	}
}

// WithEnviron provides the environment variables to read from.
//
// By default, it reads the process environment on every Read.
func WithEnviron(environ map[string]string) Option {
	return func(options *options) {
		options.environ = environ
	}
}

// WithLogger provides the slog.Logger for Env.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures an Env with specific options.
	Option  func(*options)
	options Env
)
