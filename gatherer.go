// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/nil-go/appconf/inspector/describe"
	"github.com/nil-go/appconf/inspector/tags"
	"github.com/nil-go/appconf/provider/argv"
	"github.com/nil-go/appconf/provider/env"
	"github.com/nil-go/appconf/provider/file"
	"github.com/nil-go/appconf/provider/mapping"
	"github.com/nil-go/appconf/schema"
)

// ErrHelp is returned by [Gatherer.Collect] after printing help for `-h` or `--help`.
var ErrHelp = errors.New("help requested")

// Gatherer collects configuration values from all sources and builds the configuration instance.
//
// To create a new Gatherer, call [New].
type Gatherer struct {
	registry  *schema.Registry
	defaults  schema.Mapping
	files     []string
	filesDir  string
	envPrefix *string
	args      []string
	aliases   map[string]string
	logger    *slog.Logger
	logLevel  *slog.LevelVar
	output    io.Writer
	global    bool
}

// New creates a Gatherer with the given Option(s).
func New(opts ...Option) *Gatherer {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.registry == nil {
		option.registry = DefaultRegistry()
	}
	if option.args == nil && len(os.Args) > 0 {
		option.args = os.Args[1:]
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	if option.output == nil {
		option.output = os.Stdout
	}

	return (*Gatherer)(option)
}

type source interface {
	Read(s *schema.Schema) ([]schema.Value, error)
}

// Collect gathers the configuration of type typ.
//
// The sources are read in the following order, and later values override earlier ones:
//  1. the defaults provided with [WithDefaults];
//  2. the files provided with [WithFiles], then the files given with `-c`;
//  3. the environment variables, unless disabled;
//  4. the command line arguments.
//
// Elements which have neither a default nor a discovered value are reported
// together in a [*schema.MissingFieldsError].
// It returns [ErrHelp] after printing help if the arguments ask for it.
//
//nolint:cyclop,funlen
func (g *Gatherer) Collect(typ reflect.Type) (*Result, error) {
	s, err := g.registry.Schema(typ)
	if err != nil {
		return nil, err
	}

	flags := g.controlFlags(s)
	ctrl, args, err := scan(g.args, flags)
	if err != nil {
		return nil, err
	}
	if ctrl.help {
		g.help(s, flags, ctrl.topic)

		return nil, ErrHelp
	}
	if ctrl.logLevel != nil {
		if g.logLevel != nil {
			g.logLevel.Set(*ctrl.logLevel)
		} else {
			slog.SetLogLoggerLevel(*ctrl.logLevel)
		}
	}

	logger := g.logger.WithGroup("appconf")
	result := &Result{}
	read := func(src source) error {
		values, err := src.Read(s)
		if err != nil {
			return err
		}
		result.discovered = append(result.discovered, values...)

		return nil
	}

	if len(g.defaults) > 0 {
		if err := read(mapping.New(g.defaults, "overridden defaults")); err != nil {
			return nil, err
		}
	}

	opened := func(path string) {
		result.Files = append(result.Files, path)
	}
	files := make([]string, 0, len(g.files)+len(ctrl.files))
	for _, path := range g.files {
		if g.filesDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(g.filesDir, path)
		}
		files = append(files, path)
	}
	files = append(files, ctrl.files...)
	for _, path := range files {
		if err := read(file.New(path, file.WithOpened(opened), file.WithLogger(g.logger))); err != nil {
			return nil, err
		}
	}

	prefix := DefaultEnvPrefix()
	if g.envPrefix != nil {
		prefix = *g.envPrefix
	}
	if ctrl.envPrefix != nil {
		prefix = *ctrl.envPrefix
	}
	if prefix != envDisabled {
		if err := read(env.New(prefix, env.WithLogger(g.logger))); err != nil {
			return nil, err
		}
	}

	values, unknown, err := argv.New(args, argv.WithAliases(g.aliases), argv.WithLogger(g.logger)).Parse(s)
	if err != nil {
		return nil, err
	}
	result.discovered = append(result.discovered, values...)
	result.Unknown = unknown

	for _, value := range result.discovered {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "Discovered value.",
			slog.String("name", value.Name.String()),
			slog.String("value", value.Redacted()),
			slog.String("source", value.Source()),
		)
	}

	var missing []string
	for _, item := range s.DeepItems() {
		if item.Element.HasDefault {
			result.defaults = append(result.defaults,
				schema.NewValue(item.Key, item.Element, item.Element.Default, "default"))
		}
		if candidates := result.candidates(item.Key); len(candidates) > 0 {
			result.Values = append(result.Values, candidates[0])

			continue
		}
		missing = append(missing, item.Key.String())
	}
	if len(missing) > 0 {
		return nil, &schema.MissingFieldsError{Paths: missing}
	}

	for _, value := range result.Values {
		logger.LogAttrs(context.Background(), slog.LevelInfo, "Final value.",
			slog.String("name", value.Name.String()),
			slog.String("value", value.Redacted()),
			slog.String("source", value.Source()),
		)
	}

	if result.Value, err = s.FromMapping(schema.AsMapping(result.discovered)); err != nil {
		return nil, fmt.Errorf("build %v: %w", s, err)
	}

	return result, nil
}

// DefaultRegistry returns the Registry used unless [WithRegistry] provides another one.
// It recognizes types implementing [describe.Describer] first, then any struct with [tags].
func DefaultRegistry() *schema.Registry {
	return defaultRegistry()
}

//nolint:gochecknoglobals
var defaultRegistry = sync.OnceValue(func() *schema.Registry {
	return schema.NewRegistry(schema.WithInspector(describe.New(), tags.New()))
})

// DefaultEnvPrefix returns the program name in upper case followed by `_`,
// with characters other than letters and digits replaced by `_`.
func DefaultEnvPrefix() string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}

		return '_'
	}, programName())

	return name + "_"
}

func programName() string {
	if len(os.Args) == 0 {
		return "app"
	}
	name := filepath.Base(os.Args[0])

	return strings.TrimSuffix(name, filepath.Ext(name))
}

const envDisabled = "-"
