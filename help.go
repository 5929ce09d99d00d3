// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nil-go/appconf/provider/argv"
	"github.com/nil-go/appconf/schema"
)

// help prints the usage of the control options and the configuration options,
// or the help of a single configuration option if topic is not empty.
func (g *Gatherer) help(s *schema.Schema, flags []controlFlag, topic string) {
	out := g.output

	if topic != "" {
		key := strings.ReplaceAll(strings.TrimLeft(topic, "-"), "-", "_")
		for _, item := range s.DeepItems() {
			if item.Key.String() != key {
				continue
			}
			_, _ = fmt.Fprintf(out, "%s\n", signature(item, g.aliases))
			if item.Element.Help == "" {
				_, _ = fmt.Fprint(out, "    (No more help for the option)\n")
			} else {
				for _, line := range strings.Split(item.Element.Help, "\n") {
					_, _ = fmt.Fprintf(out, "    %s\n", line)
				}
			}

			return
		}
		_, _ = fmt.Fprintf(out, "No such option: %s\n\n", topic)
	}

	_, _ = fmt.Fprintf(out, "Usage of %s:\n", programName())
	_, _ = fmt.Fprint(out, controlUsages(flags))

	helpName := ""
	for _, flag := range flags {
		if flag.kind != controlHelp {
			continue
		}
		helpName = "--" + flag.long
		if flag.long == "" {
			helpName = "-" + flag.short
		}
	}
	if helpName != "" {
		_, _ = fmt.Fprintf(out, "\nConfiguration options (use '%s OPTION' for more help on options marked (*)):\n", helpName)
	} else {
		_, _ = fmt.Fprint(out, "\nConfiguration options:\n")
	}
	for _, item := range s.DeepItems() {
		line := signature(item, g.aliases)
		if item.Element.Help != "" {
			line += "  (*)"
		}
		_, _ = fmt.Fprintf(out, "  %s\n", line)
	}
}

// controlUsages renders the control options with pflag.
// pflag cannot render an option without long name, so those are appended in the same layout.
func controlUsages(flags []controlFlag) string {
	set := pflag.NewFlagSet(programName(), pflag.ContinueOnError)
	set.SortFlags = false

	var shortOnly strings.Builder
	for _, flag := range flags {
		if flag.long == "" {
			name, usage := pflag.UnquoteUsage(&pflag.Flag{Usage: flag.usage, Value: new(stringValue)})
			_, _ = fmt.Fprintf(&shortOnly, "  -%s %s\t%s\n", flag.short, name, usage)

			continue
		}

		switch flag.kind {
		case controlHelp:
			set.BoolP(flag.long, flag.short, false, flag.usage)
		case controlConfig:
			set.StringArrayP(flag.long, flag.short, nil, flag.usage)
		default:
			set.StringP(flag.long, flag.short, "", flag.usage)
		}
	}

	return set.FlagUsages() + shortOnly.String()
}

// signature renders all option names of the element with its type, e.g. `-p INTEGER, --port INTEGER`.
func signature(item schema.DeepItem, aliases map[string]string) string {
	names := argv.Names(item.Key, aliases)
	typ := item.Element.TypeString()
	for i, name := range names {
		names[i] = name + " " + typ
	}

	return strings.Join(names, ", ")
}

type stringValue string

func (s *stringValue) String() string {
	return string(*s)
}

func (s *stringValue) Set(value string) error {
	*s = stringValue(value)

	return nil
}

func (*stringValue) Type() string {
	return "string"
}
