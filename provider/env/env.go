// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env reads configuration values from environment variables.
//
// The value of element `db.host` is read from the variable `<prefix>db.host`,
// e.g. `APP_db.host`. Tuples are space delimited lists, where an item may be
// double-quoted and use the escape sequences `\"` and `\\`.
//
// The default behavior can be changed with following options:
//   - WithDelimiter provides the delimiter joining the names of nested elements.
//   - WithEnviron provides the variables instead of the process environment.
package env

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goenv "github.com/caarlos0/env/v11"

	"github.com/nil-go/appconf/schema"
)

// Env is a value source of environment variables.
//
// To create a new Env, call [New].
type Env struct {
	_         [0]func() // Ensure it's incomparable.
	prefix    string
	delimiter string
	environ   map[string]string
	logger    *slog.Logger
}

// New creates an Env which reads variables with the given prefix.
func New(prefix string, opts ...Option) Env {
	option := &options{
		prefix:    prefix,
		delimiter: ".",
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("appconf.env")

	return Env(*option)
}

// Read returns the values of all elements which have a variable, in schema order.
func (e Env) Read(s *schema.Schema) ([]schema.Value, error) {
	environ := e.environ
	if environ == nil {
		environ = goenv.ToMap(os.Environ())
	}
	e.logger.LogAttrs(context.Background(), slog.LevelDebug,
		"Examining environment variables.", slog.String("prefix", e.prefix))

	var values []schema.Value
	for _, item := range s.DeepItems() {
		name := e.prefix + strings.Join(item.Key, e.delimiter)
		raw, ok := environ[name]
		if !ok {
			continue
		}

		value, err := item.Element.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", name, err)
		}
		values = append(values, schema.NewValue(item.Key, item.Element, value, "env", name))
	}

	return values, nil
}

func (e Env) String() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}
