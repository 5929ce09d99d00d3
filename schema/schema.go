// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"

	"dario.cat/mergo"
)

// Schema is the ordered set of elements of a configuration struct type.
//
// Schemas are created by a [Registry] and are immutable.
type Schema struct {
	typ    reflect.Type
	fields []Field
	index  map[string]int
}

// Field is a named element of a Schema together with
// the index of the struct field it is stored in (see [reflect.Value.FieldByIndex]).
type Field struct {
	Name    string
	Index   []int
	Element *Element
}

// Source is what an [Inspector] returns for a recognized type.
type Source []Field

// DeepItem is an element reachable through nested schemas.
type DeepItem struct {
	Key     Key
	Element *Element
}

// New creates a Schema for the struct type typ from the given fields.
func New(typ reflect.Type, source Source) (*Schema, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct type", ErrUnrecognizedSchema, typ)
	}

	schema := &Schema{
		typ:    typ,
		fields: make([]Field, 0, len(source)),
		index:  make(map[string]int, len(source)),
	}
	for _, field := range source {
		if field.Element == nil {
			return nil, fmt.Errorf("%w: field %s of %v has no element", ErrUnsupportedFieldType, field.Name, typ)
		}
		if _, ok := schema.index[field.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %s in %v", ErrStructuralMismatch, field.Name, typ)
		}
		structField, err := fieldByIndex(typ, field.Index)
		if err != nil {
			return nil, fmt.Errorf("field %s of %v: %w", field.Name, typ, err)
		}
		if structField.Type != field.Element.GoType() {
			return nil, fmt.Errorf("%w: field %s of %v has type %v, but element is for %v",
				ErrUnsupportedFieldType, field.Name, typ, structField.Type, field.Element.GoType())
		}
		schema.index[field.Name] = len(schema.fields)
		schema.fields = append(schema.fields, field)
	}

	return schema, nil
}

// fieldByIndex is reflect.Type.FieldByIndex returning an error instead of panicking.
// Embedded pointers are not followed, as Schema fields are set on a struct value.
func fieldByIndex(typ reflect.Type, index []int) (reflect.StructField, error) {
	if len(index) == 0 {
		return reflect.StructField{}, fmt.Errorf("%w: empty field index", ErrStructuralMismatch)
	}

	var field reflect.StructField
	for depth, i := range index {
		if typ.Kind() != reflect.Struct {
			return reflect.StructField{}, fmt.Errorf("%w: index %v goes through %v", ErrStructuralMismatch, index[:depth], typ)
		}
		if i < 0 || i >= typ.NumField() {
			return reflect.StructField{}, fmt.Errorf("%w: index %v is out of range of %v", ErrStructuralMismatch, index[:depth+1], typ)
		}
		field = typ.Field(i)
		typ = field.Type
	}

	return field, nil
}

func (*Schema) elementType() {}

func (s *Schema) String() string {
	return "Schema[" + s.typ.String() + "]"
}

// Type returns the struct type of the schema.
func (s *Schema) Type() reflect.Type {
	return s.typ
}

// Len returns the number of elements.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Names returns element names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		names = append(names, field.Name)
	}

	return names
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Element returns the element with the given name.
func (s *Schema) Element(name string) (*Element, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}

	return s.fields[i].Element, true
}

// Lookup returns the element at the given deep key.
func (s *Schema) Lookup(key Key) (*Element, bool) {
	if len(key) == 0 {
		return nil, false
	}

	element, ok := s.Element(key[0])
	if !ok || len(key) == 1 {
		return element, ok
	}
	if nested, ok := element.Type.(*Schema); ok {
		return nested.Lookup(key[1:])
	}

	return nil, false
}

// DeepItems returns all non-schema elements depth first, in declaration order.
// Elements of nested schemas have compound keys.
func (s *Schema) DeepItems() []DeepItem {
	var items []DeepItem
	for _, field := range s.fields {
		if nested, ok := field.Element.Type.(*Schema); ok {
			for _, item := range nested.DeepItems() {
				items = append(items, DeepItem{Key: append(Key{field.Name}, item.Key...), Element: item.Element})
			}

			continue
		}
		items = append(items, DeepItem{Key: Key{field.Name}, Element: field.Element})
	}

	return items
}

// TypeCheck reports whether instance has the schema type
// and all its fields satisfy their element types.
func (s *Schema) TypeCheck(instance any) bool {
	val := reflect.ValueOf(instance)
	if !val.IsValid() || val.Type() != s.typ {
		return false
	}

	for _, field := range s.fields {
		if !field.Element.TypeCheck(val.FieldByIndex(field.Index).Interface()) {
			return false
		}
	}

	return true
}

// FromMapping creates an instance of the schema type from the given data.
//
// Every key of data must be an element name, and nested elements must have mappings as values.
// Elements absent from data take their default values, and the dotted paths of
// absent elements without default are reported together in a [*MissingFieldsError].
// The returned value has the schema type.
func (s *Schema) FromMapping(data Mapping) (any, error) {
	val, missing, errs := s.fromMapping(nil, data)
	if len(missing) > 0 {
		errs = append(errs, &MissingFieldsError{Paths: missing})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return val.Interface(), nil
}

// fromMapping returns the paths of missing elements separately from other errors,
// so missing elements of all nesting levels are reported together.
func (s *Schema) fromMapping(path Key, data Mapping) (reflect.Value, []string, []error) {
	unknown := make([]string, 0)
	for name := range data {
		if _, ok := s.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)

		return reflect.Value{}, nil, []error{
			fmt.Errorf("%w: invalid name %s", ErrStructuralMismatch, path.Child(unknown[0])),
		}
	}

	var (
		missing []string
		errs    []error
	)
	instance := reflect.New(s.typ).Elem()
	for _, field := range s.fields {
		element := field.Element
		key := path.Child(field.Name)
		raw, ok := data[field.Name]

		nested, isNested := element.Type.(*Schema)
		switch {
		case !ok && element.HasDefault:
			value, err := element.copyDefault()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))

				continue
			}
			instance.FieldByIndex(field.Index).Set(reflect.ValueOf(value))
		case !ok && !isNested:
			missing = append(missing, key.String())
		case isNested:
			if !ok {
				// Nested elements may still be complete with the defaults of their own elements.
				raw = map[string]any{}
			}
			mapping, isMapping := raw.(map[string]any)
			if !isMapping {
				errs = append(errs, fmt.Errorf("%w: invalid value %#v for %s", ErrStructuralMismatch, raw, key))

				continue
			}
			layered := mapping
			if element.HasDefault {
				base, err := nested.ToMapping(element.Default, true)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", key, err))

					continue
				}
				layered = base
				if err := mergo.Merge(&layered, mapping, mergo.WithOverride); err != nil {
					errs = append(errs, fmt.Errorf("%s: merge default: %w", key, err))

					continue
				}
			}
			value, nestedMissing, nestedErrs := nested.fromMapping(key, layered)
			missing = append(missing, nestedMissing...)
			errs = append(errs, nestedErrs...)
			if len(nestedMissing) == 0 && len(nestedErrs) == 0 {
				instance.FieldByIndex(field.Index).Set(value)
			}
		default:
			value, err := element.Parse(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))

				continue
			}
			instance.FieldByIndex(field.Index).Set(reflect.ValueOf(value))
		}
	}

	return instance, missing, errs
}

// ToMapping extracts element values from instance, which must have the schema type or point to it.
//
// Unless includeDefaults is true, values equal to the element default are omitted.
func (s *Schema) ToMapping(instance any, includeDefaults bool) (Mapping, error) {
	val := reflect.Indirect(reflect.ValueOf(instance))
	if !val.IsValid() || val.Type() != s.typ {
		return nil, fmt.Errorf("%w: need an instance of %v, got %T", ErrStructuralMismatch, s.typ, instance)
	}

	mapping := make(Mapping, len(s.fields))
	for _, field := range s.fields {
		element := field.Element
		value := val.FieldByIndex(field.Index).Interface()
		if !includeDefaults && element.HasDefault && reflect.DeepEqual(element.Default, value) {
			continue
		}

		if nested, ok := element.Type.(*Schema); ok {
			nestedMapping, err := nested.ToMapping(value, includeDefaults)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			mapping[field.Name] = map[string]any(nestedMapping)

			continue
		}
		mapping[field.Name] = value
	}

	return mapping, nil
}

// Decode is the typed version of [Schema.FromMapping].
func Decode[T any](s *Schema, data Mapping) (T, error) {
	var zero T
	if reflect.TypeFor[T]() != s.typ {
		return zero, fmt.Errorf("%w: schema is for %v, not %v", ErrStructuralMismatch, s.typ, reflect.TypeFor[T]())
	}

	value, err := s.FromMapping(data)
	if err != nil {
		return zero, err
	}

	return value.(T), nil //nolint:forcetypeassert
}

func (s *Schema) withDefaults(value reflect.Value) (*Schema, error) {
	defaulted := &Schema{
		typ:    s.typ,
		fields: make([]Field, 0, len(s.fields)),
		index:  s.index,
	}
	for _, field := range s.fields {
		element := field.Element
		opts := []ElementOption{
			WithHelp(element.Help),
			WithDefault(value.FieldByIndex(field.Index).Interface()),
		}
		if element.Secret {
			opts = append(opts, AsSecret())
		}
		replaced, err := NewElement(element.Type, element.goType, opts...)
		if err != nil {
			return nil, fmt.Errorf("default of %s: %w", field.Name, err)
		}
		defaulted.fields = append(defaulted.fields, Field{Name: field.Name, Index: field.Index, Element: replaced})
	}

	return defaulted, nil
}

func (e *Element) copyDefault() (any, error) {
	if _, ok := e.Type.(*Schema); ok {
		return e.Default, nil
	}

	return e.Parse(e.Default)
}
