// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"io"
	"log/slog"

	"github.com/nil-go/appconf/internal/maps"
	"github.com/nil-go/appconf/schema"
)

// WithRegistry provides the schema Registry resolving configuration types.
//
// By default, it uses [DefaultRegistry].
func WithRegistry(registry *schema.Registry) Option {
	return func(options *options) {
		options.registry = registry
	}
}

// WithDefaults provides values which override the built-in defaults.
// They have the lowest precedence of all sources.
//
// If it is given multiple times, the mappings are merged and later ones win.
func WithDefaults(defaults schema.Mapping) Option {
	return func(options *options) {
		if options.defaults == nil {
			options.defaults = make(schema.Mapping, len(defaults))
		}
		maps.Merge(options.defaults, defaults)
	}
}

// WithFiles provides the configuration files which are read in order.
// Relative paths are resolved against the directory provided by [WithFilesDir].
//
// Files given with the control option `-c` are read after them.
func WithFiles(files ...string) Option {
	return func(options *options) {
		options.files = append(options.files, files...)
	}
}

// WithFilesDir provides the directory to resolve relative paths of [WithFiles].
//
// By default, it is the current working directory.
func WithFilesDir(dir string) Option {
	return func(options *options) {
		options.filesDir = dir
	}
}

// WithEnvPrefix provides the prefix of environment variables,
// which the control option `-e` overrides. The prefix `-` disables environment variables.
//
// By default, it is the upper-cased program name followed by `_`, see [DefaultEnvPrefix].
func WithEnvPrefix(prefix string) Option {
	return func(options *options) {
		options.envPrefix = &prefix
	}
}

// WithoutEnv disables environment variables unless the control option `-e` enables them.
func WithoutEnv() Option {
	return WithEnvPrefix(envDisabled)
}

// WithArgs provides the command line arguments, excluding the program name.
//
// By default, it uses os.Args[1:].
func WithArgs(args ...string) Option {
	return func(options *options) {
		if args == nil {
			args = []string{}
		}
		options.args = args
	}
}

// WithAliases provides single letter options for elements, e.g. {"p": "server.port"}.
// An alias also disables the control option with the same letter.
func WithAliases(aliases map[string]string) Option {
	return func(options *options) {
		options.aliases = aliases
	}
}

// WithLogger provides the slog.Logger for Gatherer.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithLogLevel provides the level which the control option `-l` sets.
//
// By default, `-l` sets the level of the default logger with slog.SetLogLoggerLevel.
func WithLogLevel(level *slog.LevelVar) Option {
	return func(options *options) {
		options.logLevel = level
	}
}

// WithOutput provides the writer of help messages.
//
// By default, it uses os.Stdout.
func WithOutput(output io.Writer) Option {
	return func(options *options) {
		options.output = output
	}
}

// WithGlobal makes [MustGather] publish the configuration with [SetGlobal].
func WithGlobal() Option {
	return func(options *options) {
		options.global = true
	}
}

type (
	// Option configures a Gatherer with specific options.
	Option  func(*options)
	options Gatherer
)
