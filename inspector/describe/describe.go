// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package describe recognizes configuration structs which describe their own elements.
//
// A struct opts in by implementing [Describer] on its value receiver.
// Every exported field is an element named after the field in snake case,
// unless a [Field] returned by ConfigFields overrides it.
// Unlike struct tags, defaults are Go values, so nested structs may have defaults too:
//
//	func (Config) ConfigFields() []describe.Field {
//		return []describe.Field{
//			{Name: "Port", Default: 8080, Help: "listen port"},
//			{Name: "DB", Key: "db", Default: Database{Host: "localhost"}},
//		}
//	}
package describe

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/nil-go/appconf/inspector/tags"
	"github.com/nil-go/appconf/schema"
)

// Describer provides element metadata of the struct fields.
type Describer interface {
	ConfigFields() []Field
}

// Field describes the element of the struct field Name.
type Field struct {
	// Name is the Go field name.
	Name string
	// Key overrides the element name.
	Key    string
	Help   string
	Secret bool
	// Default is the default value, or nil for a required element.
	// It is converted to the field type if necessary.
	Default any
}

// Describe is an Inspector for structs implementing [Describer].
type Describe struct{}

// New creates a Describe.
func New() Describe {
	return Describe{}
}

// Inspect recognizes struct types implementing [Describer].
func (Describe) Inspect(registry *schema.Registry, typ reflect.Type) (schema.Source, bool, error) {
	if typ.Kind() != reflect.Struct || !typ.Implements(describerType) {
		return nil, false, nil
	}

	describer, _ := reflect.Zero(typ).Interface().(Describer)
	described := make(map[string]Field)
	for _, field := range describer.ConfigFields() {
		structField, ok := typ.FieldByName(field.Name)
		if !ok || !structField.IsExported() || len(structField.Index) != 1 {
			return nil, true, fmt.Errorf("%w: %v has no field %s", schema.ErrStructuralMismatch, typ, field.Name)
		}
		if _, ok := described[field.Name]; ok {
			return nil, true, fmt.Errorf("%w: field %s of %v is described twice", schema.ErrStructuralMismatch, field.Name, typ)
		}
		described[field.Name] = field
	}

	source := make(schema.Source, 0, typ.NumField())
	for i := range typ.NumField() {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}

		field := described[structField.Name]
		name := field.Key
		if name == "" {
			name = tags.SnakeCase(structField.Name)
		}
		if strings.HasPrefix(name, "_") {
			continue
		}

		element, err := newElement(registry, structField.Type, field)
		if err != nil {
			return nil, true, fmt.Errorf("field %s: %w", structField.Name, err)
		}
		source = append(source, schema.Field{Name: name, Index: structField.Index, Element: element})
	}

	return source, true, nil
}

func newElement(registry *schema.Registry, goType reflect.Type, field Field) (*schema.Element, error) {
	elementType, err := registry.Interpret(goType)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	opts := []schema.ElementOption{schema.WithHelp(field.Help)}
	if field.Secret {
		opts = append(opts, schema.AsSecret())
	}
	if field.Default != nil {
		def := field.Default
		if val := reflect.ValueOf(def); convertible(val, goType) {
			def = val.Convert(goType).Interface()
		}
		opts = append(opts, schema.WithDefault(def))
	}

	return schema.NewElement(elementType, goType, opts...) //nolint:wrapcheck
}

// convertible reports whether a default can be converted to the field type without changing its meaning.
// Other defaults are left for the type check of the element.
func convertible(val reflect.Value, goType reflect.Type) bool {
	switch {
	case val.Type() == goType || !val.Type().ConvertibleTo(goType):
		return false
	case val.Kind() == reflect.String || goType.Kind() == reflect.String:
		return false
	case val.Kind() == reflect.Slice && goType.Kind() == reflect.Array:
		return val.Len() == goType.Len()
	default:
		return true
	}
}

func (Describe) String() string {
	return "describe"
}

var describerType = reflect.TypeFor[Describer]() //nolint:gochecknoglobals
