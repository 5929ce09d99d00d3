// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package appconf builds a strongly-typed configuration struct from several sources.

The configuration type is described by a [schema.Schema], which the [DefaultRegistry]
builds from struct tags (see package inspector/tags) or from types implementing
describe.Describer. Values are gathered in the following order,
and later sources override earlier ones on the same element:

  - the defaults of the configuration type;
  - the defaults provided with [WithDefaults];
  - configuration files in JSON, YAML or INI format, see package provider/file;
  - environment variables, see package provider/env;
  - command line arguments, see package provider/argv.

All elements without defaults must be found in one of the sources,
otherwise gathering fails with a [*schema.MissingFieldsError] listing all of them.

Besides the configuration options, the command line accepts the control options
`-h/--help [OPTION]`, `-c/--config FILE...`, `-e/--env-prefix PREFIX` and `-l/--log-level LEVEL`,
unless an alias or configuration option takes the name.

[MustGather] is the entry point for programs:

	type Config struct {
		Host string `default:"localhost"`
		Port int    `help:"port to listen on"`
	}

	func main() {
		cfg := appconf.MustGather[Config](appconf.WithFiles("app.yaml"), appconf.WithAliases(map[string]string{"p": "port"}))
		...
	}
*/
package appconf
