// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package tags recognizes configuration structs declared with struct tags.
//
// Every exported field of a struct is a configuration element. The element name
// is taken from the `conf` tag, or derived from the field name in snake case
// (e.g. MaxConns becomes max_conns). The tag may carry the option `secret`,
// and `conf:"-"` skips the field. Fields whose name starts with `_` are skipped as well.
//
// The `help` tag provides the description and the `default` tag provides the
// default value, which is parsed like a value from environment variables:
//
//	type Config struct {
//		Host  string   `conf:"host" default:"localhost" help:"server host"`
//		Port  int      `default:"8080"`
//		Tags  []string `default:"\"a b\" c"`
//		Token string   `conf:"token,secret"`
//		DB    Database `conf:"db"`
//	}
package tags

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/nil-go/appconf/schema"
)

// Tags is an Inspector for structs declared with struct tags.
//
// To create a new Tags, call [New].
type Tags struct {
	nameTag    string
	helpTag    string
	defaultTag string
}

// New creates a Tags with the given Option(s).
func New(opts ...Option) Tags {
	option := &options{
		nameTag:    "conf",
		helpTag:    "help",
		defaultTag: "default",
	}
	for _, opt := range opts {
		opt(option)
	}

	return Tags(*option)
}

// Inspect recognizes every struct type.
func (t Tags) Inspect(registry *schema.Registry, typ reflect.Type) (schema.Source, bool, error) {
	if typ.Kind() != reflect.Struct {
		return nil, false, nil
	}

	source := make(schema.Source, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tagName, tagOpts, _ := strings.Cut(field.Tag.Get(t.nameTag), ",")
		if tagName == "-" {
			continue
		}
		name := tagName
		if name == "" {
			name = SnakeCase(field.Name)
		}
		if strings.HasPrefix(name, "_") {
			continue
		}

		element, err := t.element(registry, field, strings.Split(tagOpts, ","))
		if err != nil {
			return nil, true, fmt.Errorf("field %s: %w", field.Name, err)
		}
		source = append(source, schema.Field{Name: name, Index: field.Index, Element: element})
	}

	return source, true, nil
}

func (t Tags) element(registry *schema.Registry, field reflect.StructField, tagOpts []string) (*schema.Element, error) {
	elementType, err := registry.Interpret(field.Type)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var opts []schema.ElementOption
	if help, ok := field.Tag.Lookup(t.helpTag); ok {
		opts = append(opts, schema.WithHelp(help))
	}
	for _, opt := range tagOpts {
		if opt == "secret" {
			opts = append(opts, schema.AsSecret())
		}
	}
	if def, ok := field.Tag.Lookup(t.defaultTag); ok {
		if _, nested := elementType.(*schema.Schema); nested {
			return nil, fmt.Errorf("%w: nested struct cannot have default tag", schema.ErrInvalidDefault)
		}

		// Parse with a default-less element first, so the default has the field type.
		parser, err := schema.NewElement(elementType, field.Type)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		value, err := parser.Parse(def)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", schema.ErrInvalidDefault, err)
		}
		opts = append(opts, schema.WithDefault(value))
	}

	return schema.NewElement(elementType, field.Type, opts...) //nolint:wrapcheck
}

func (t Tags) String() string {
	return "tags"
}

// SnakeCase converts a Go identifier to snake case, keeping acronyms together:
// "MaxConns" becomes "max_conns" and "HTTPPort" becomes "http_port".
func SnakeCase(name string) string {
	runes := []rune(name)
	builder := &strings.Builder{}
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])) {
				builder.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		builder.WriteRune(r)
	}

	return builder.String()
}
