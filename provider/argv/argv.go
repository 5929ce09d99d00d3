// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package argv reads configuration values from command line arguments.
//
// Element `db.host` is set with option `--db.host VALUE` or `--db.host=VALUE`.
// If the dotted path contains `_`, the option is also available with `-` instead,
// e.g. `--max-conns` for `max_conns`. Aliases map single letters to dotted paths,
// so `-p 80` or `-p80` may stand for `--port 80`.
//
// The number of values an option takes depends on the element type:
//   - booleans take zero or one value, and the option alone means true;
//   - tuples of length N take exactly N values;
//   - unbounded tuples take all following values, possibly none;
//   - other elements take exactly one value.
//
// Values end at the next token which looks like an option (starts with `-` and is not a negative number).
// If an option is given multiple times, the last one wins. Argument `--` ends option parsing.
package argv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/nil-go/appconf/schema"
)

// ErrUnknownArguments is returned by [Argv.Read] if some arguments are not options of the schema.
var ErrUnknownArguments = errors.New("unknown arguments")

// Argv is a value source of command line arguments.
//
// To create a new Argv, call [New].
type Argv struct {
	args    []string
	aliases map[string]string
	logger  *slog.Logger
}

// New creates an Argv of the given arguments, which exclude the program name.
func New(args []string, opts ...Option) Argv {
	option := &options{args: args}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("appconf.argv")

	aliases := make(map[string]string, len(option.aliases))
	for short, long := range option.aliases {
		if len([]rune(short)) != 1 || short == "-" {
			option.logger.LogAttrs(context.Background(), slog.LevelWarn,
				"Alias ignored. Short option is not a single char.",
				slog.String("short", short), slog.String("long", long))

			continue
		}
		aliases[short] = long
	}
	option.aliases = aliases

	return Argv(*option)
}

// Read returns the values of all elements set with options, in schema order.
// It fails with [ErrUnknownArguments] if any argument is not recognized.
func (a Argv) Read(s *schema.Schema) ([]schema.Value, error) {
	values, unknown, err := a.Parse(s)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArguments, strings.Join(unknown, " "))
	}

	return values, nil
}

// Parse returns the values of all elements set with options, in schema order,
// and the arguments it does not recognize.
func (a Argv) Parse(s *schema.Schema) ([]schema.Value, []string, error) {
	items := s.DeepItems()
	lookup := make(map[string]int)
	for i, item := range items {
		for _, name := range Names(item.Key, a.aliases) {
			lookup[name] = i
		}
	}

	var unknown []string
	found := make(map[int]any)
	for i := 0; i < len(a.args); i++ {
		arg := a.args[i]
		if arg == "--" {
			unknown = append(unknown, a.args[i+1:]...)

			break
		}
		if !IsOption(arg) {
			unknown = append(unknown, arg)

			continue
		}

		name, inline, hasInline := splitOption(arg)
		index, ok := lookup[name]
		if !ok {
			unknown = append(unknown, arg)

			continue
		}

		item := items[index]
		raw, consumed, err := values(item.Element, inline, hasInline, a.args[i+1:])
		if err != nil {
			return nil, nil, fmt.Errorf("argument %s: %w", name, err)
		}
		i += consumed
		found[index] = raw
	}

	indexes := make([]int, 0, len(found))
	for index := range found {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	parsed := make([]schema.Value, 0, len(indexes))
	for _, index := range indexes {
		item := items[index]
		value, err := item.Element.Parse(found[index])
		if err != nil {
			return nil, nil, fmt.Errorf("argument --%s: %w", item.Key, err)
		}
		parsed = append(parsed, schema.NewValue(item.Key, item.Element, value, "argv"))
	}

	return parsed, unknown, nil
}

// values collects the raw value of an option from the inline value or the following arguments,
// and returns how many following arguments it consumed.
func values(element *schema.Element, inline string, hasInline bool, rest []string) (any, int, error) {
	tuple, isTuple := element.Type.(schema.TupleType)
	switch {
	case element.Type == schema.Boolean:
		switch {
		case hasInline:
			return inline, 0, nil
		case len(rest) > 0 && !IsOption(rest[0]):
			return rest[0], 1, nil
		default:
			return true, 0, nil
		}
	case isTuple && tuple.Length == 0:
		if hasInline {
			return []string{inline}, 0, nil
		}
		count := 0
		for count < len(rest) && !IsOption(rest[count]) {
			count++
		}

		return rest[:count], count, nil
	default:
		length := 1
		if isTuple {
			length = tuple.Length
		}
		if hasInline {
			if length != 1 {
				return nil, 0, fmt.Errorf("%w: expected %d arguments, but given an inline value", schema.ErrParse, length)
			}
			if isTuple {
				return []string{inline}, 0, nil
			}

			return inline, 0, nil
		}
		if len(rest) < length || slicesContainOption(rest[:length]) {
			return nil, 0, fmt.Errorf("%w: expected %d argument(s)", schema.ErrParse, length)
		}
		if isTuple {
			return rest[:length], length, nil
		}

		return rest[0], 1, nil
	}
}

func slicesContainOption(args []string) bool {
	for _, arg := range args {
		if IsOption(arg) {
			return true
		}
	}

	return false
}

// splitOption separates the option name from its inline value,
// i.e. `--name=value`, `-x=value` or `-xvalue`.
func splitOption(arg string) (string, string, bool) {
	if strings.HasPrefix(arg, "--") {
		return strings.Cut(arg, "=")
	}

	runes := []rune(arg)
	if len(runes) <= 2 { //nolint:mnd
		return arg, "", false
	}

	return string(runes[:2]), strings.TrimPrefix(string(runes[2:]), "="), true
}

// IsOption reports whether arg looks like an option rather than a value.
func IsOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && !negativeNumber.MatchString(arg)
}

// Names returns the options of the element with the given key,
// i.e. the single letter aliases, `--<dotted.path>` and the variant with `-` instead of `_`.
func Names(key schema.Key, aliases map[string]string) []string {
	path := key.String()

	var names []string
	for short, long := range aliases {
		if long == path && len([]rune(short)) == 1 {
			names = append(names, "-"+short)
		}
	}
	sort.Strings(names)

	names = append(names, "--"+path)
	if strings.Contains(path, "_") {
		names = append(names, "--"+strings.ReplaceAll(path, "_", "-"))
	}

	return names
}

func (a Argv) String() string {
	return "argv"
}

var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`) //nolint:gochecknoglobals
