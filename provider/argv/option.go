// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package argv

import "log/slog"

// WithAliases provides single letter aliases of elements, e.g. {"p": "server.port"}.
// Aliases which are not single characters are logged and ignored.
func WithAliases(aliases map[string]string) Option {
	return func(options *options) {
		options.aliases = aliases
	}
}

// WithLogger provides the slog.Logger for Argv.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures an Argv with specific options.
	Option  func(*options)
	options Argv
)
