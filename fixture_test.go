// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf_test

import (
	"log/slog"

	"github.com/nil-go/appconf"
	"github.com/nil-go/appconf/schema"
)

type mode string

func (mode) EnumMembers() []schema.EnumMember {
	return []schema.EnumMember{{Name: "dev", Value: mode("dev")}, {Name: "prod", Value: mode("prod")}}
}

type database struct {
	Host     string `default:"localhost"`
	Port     int    `help:"database port"`
	Password string `conf:"password,secret" default:""`
}

type config struct {
	Name  string   `help:"service name\nused in logs"`
	Count int      `default:"1"`
	Debug bool     `default:"false"`
	Mode  mode     `default:"dev"`
	Tags  []string `default:""`
	DB    database `conf:"db"`
}

// quiet returns the options every test starts with: no environment and no logs.
func quiet(opts ...appconf.Option) []appconf.Option {
	return append([]appconf.Option{
		appconf.WithoutEnv(),
		appconf.WithArgs(),
		appconf.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
}
