// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nil-go/appconf/provider/argv"
	"github.com/nil-go/appconf/schema"
)

type controlKind uint8

const (
	controlHelp controlKind = iota
	controlConfig
	controlEnv
	controlLog
)

// controlFlag is an option of the gatherer itself rather than of the configuration.
// An empty short or long name means that form is taken by a configuration option.
type controlFlag struct {
	kind  controlKind
	short string
	long  string
	usage string
}

type control struct {
	help      bool
	topic     string
	files     []string
	envPrefix *string
	logLevel  *slog.Level
}

// controlFlags returns the control options which do not collide with options of the schema.
func (g *Gatherer) controlFlags(s *schema.Schema) []controlFlag {
	taken := make(map[string]bool)
	for _, item := range s.DeepItems() {
		for _, name := range argv.Names(item.Key, g.aliases) {
			taken[name] = true
		}
	}

	all := []controlFlag{
		{kind: controlHelp, short: "h", long: "help", usage: "show this help message, or the help of `OPTION`"},
		{kind: controlConfig, short: "c", long: "config", usage: "read additional configuration `FILE`s"},
		{kind: controlEnv, short: "e", long: "env-prefix", usage: "read environment variables with `PREFIX`, or none if it is -"},
		{kind: controlLog, short: "l", long: "log-level", usage: "set the `LEVEL` of logs (debug, info, warn, error)"},
	}
	flags := make([]controlFlag, 0, len(all))
	for _, flag := range all {
		if taken["-"+flag.short] {
			flag.short = ""
		}
		if taken["--"+flag.long] {
			flag.long = ""
		}
		if flag.short != "" || flag.long != "" {
			flags = append(flags, flag)
		}
	}

	return flags
}

// scan takes the control options out of args and returns the remaining arguments.
//
//nolint:cyclop,funlen
func scan(args []string, flags []controlFlag) (control, []string, error) {
	lookup := make(map[string]controlFlag, 2*len(flags))
	for _, flag := range flags {
		if flag.short != "" {
			lookup["-"+flag.short] = flag
		}
		if flag.long != "" {
			lookup["--"+flag.long] = flag
		}
	}

	var (
		ctrl control
		rest []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)

			break
		}
		if !argv.IsOption(arg) {
			rest = append(rest, arg)

			continue
		}

		name, inline, hasInline := splitControl(arg)
		flag, ok := lookup[name]
		if !ok {
			rest = append(rest, arg)

			continue
		}

		var values []string
		if hasInline {
			values = append(values, inline)
		}
		next := func() bool {
			if i+1 < len(args) && !argv.IsOption(args[i+1]) {
				i++
				values = append(values, args[i])

				return true
			}

			return false
		}

		switch flag.kind {
		case controlHelp:
			if !hasInline {
				next()
			}
			ctrl.help = true
			if len(values) > 0 {
				ctrl.topic = values[0]
			}
		case controlConfig:
			for !hasInline && i+1 < len(args) && !argv.IsOption(args[i+1]) {
				i++
				values = append(values, args[i])
			}
			if len(values) == 0 {
				return control{}, nil, fmt.Errorf("argument %s: expected at least one argument", name)
			}
			ctrl.files = append(ctrl.files, values...)
		case controlEnv:
			if !hasInline && !next() {
				return control{}, nil, fmt.Errorf("argument %s: expected one argument", name)
			}
			ctrl.envPrefix = &values[0]
		case controlLog:
			if !hasInline && !next() {
				return control{}, nil, fmt.Errorf("argument %s: expected one argument", name)
			}
			level, err := parseLevel(values[0])
			if err != nil {
				return control{}, nil, fmt.Errorf("argument %s: %w", name, err)
			}
			ctrl.logLevel = &level
		}
	}

	return ctrl, rest, nil
}

func splitControl(arg string) (string, string, bool) {
	if strings.HasPrefix(arg, "--") {
		return strings.Cut(arg, "=")
	}
	if len(arg) <= 2 { //nolint:mnd
		return arg, "", false
	}

	return arg[:2], strings.TrimPrefix(arg[2:], "="), true
}

func parseLevel(text string) (slog.Level, error) {
	switch strings.ToLower(text) {
	case "warning":
		text = "warn"
	case "critical", "fatal":
		text = "error"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(text)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", text, err)
	}

	return level, nil
}
