// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Element describes one configuration field.
//
// To create a new Element, call [NewElement].
type Element struct {
	Type       ElementType
	Help       string
	Secret     bool
	HasDefault bool
	// Default has the Go type of the field if HasDefault is true.
	// For a nested element, the fields of Default fill the ones missing from the source,
	// also if it is assigned after NewElement.
	Default any

	goType reflect.Type
}

// NewElement creates an Element of the given element type for a field of goType.
//
// The default value provided with [WithDefault] must type check against typ.
// If typ is a [*Schema], the fields of the default become defaults of a new nested Schema.
func NewElement(typ ElementType, goType reflect.Type, opts ...ElementOption) (*Element, error) {
	if typ == nil || goType == nil {
		return nil, fmt.Errorf("%w: element requires both element type and Go type", ErrUnsupportedFieldType)
	}
	if err := checkGoType(typ, goType); err != nil {
		return nil, err
	}

	element := &Element{Type: typ, goType: goType}
	for _, opt := range opts {
		opt(element)
	}
	if !element.HasDefault {
		element.Default = nil

		return element, nil
	}

	if !element.TypeCheck(element.Default) {
		return nil, fmt.Errorf("%w: %#v must have type %v", ErrInvalidDefault, element.Default, typ)
	}

	if nested, ok := typ.(*Schema); ok {
		value := reflect.Indirect(reflect.ValueOf(element.Default))
		defaulted, err := nested.withDefaults(value)
		if err != nil {
			return nil, err
		}
		element.Type = defaulted
		element.Default = value.Interface()

		return element, nil
	}

	value, err := element.Parse(element.Default)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
	}
	element.Default = value

	return element, nil
}

// ElementOption configures an Element created by [NewElement].
type ElementOption func(*Element)

// WithHelp provides the description of the element.
func WithHelp(help string) ElementOption {
	return func(element *Element) {
		element.Help = help
	}
}

// WithDefault provides the built-in default value of the element.
func WithDefault(value any) ElementOption {
	return func(element *Element) {
		element.HasDefault = true
		element.Default = value
	}
}

// AsSecret excludes the element value from logs and explanations.
func AsSecret() ElementOption {
	return func(element *Element) {
		element.Secret = true
	}
}

// GoType returns the Go type of the field the element describes.
func (e *Element) GoType() reflect.Type {
	return e.goType
}

// TypeCheck reports whether value satisfies the element type.
//
// Booleans satisfy integer and float elements, integers satisfy float elements,
// and a tuple must have exactly Length items if Length is positive.
func (e *Element) TypeCheck(value any) bool {
	switch typ := e.Type.(type) {
	case *Schema:
		return typ.TypeCheck(value)
	case TupleType:
		val := reflect.ValueOf(value)
		switch val.Kind() {
		case reflect.Array:
		case reflect.Slice:
			if !typ.List || typ.Length > 0 {
				return false
			}
		default:
			return false
		}
		if typ.Length > 0 && val.Len() != typ.Length {
			return false
		}
		for i := range val.Len() {
			if !typeCheckBase(typ.Base, val.Index(i).Interface()) {
				return false
			}
		}

		return true
	default:
		return typeCheckBase(typ, value)
	}
}

func typeCheckBase(typ ElementType, value any) bool {
	if value == nil {
		return false
	}

	switch typ := typ.(type) {
	case *EnumType:
		return reflect.TypeOf(value) == typ.Type
	case AtomicType:
		val := reflect.ValueOf(value)
		switch typ {
		case String:
			return val.Kind() == reflect.String
		case Boolean:
			return val.Kind() == reflect.Bool
		case Integer:
			return val.Kind() == reflect.Bool || val.CanInt() || val.CanUint()
		case Float:
			return val.Kind() == reflect.Bool || val.CanInt() || val.CanUint() || val.CanFloat()
		}
	}

	return false
}

// TypeString renders the element type as an option signature, e.g. "INTEGER INTEGER" or "[STRING ...]".
func (e *Element) TypeString() string {
	if e.Type == Boolean {
		return "[BOOL]"
	}

	count := 1
	base := e.Type
	if tuple, ok := base.(TupleType); ok {
		count = tuple.Length
		base = tuple.Base
	}

	var name string
	switch typ := base.(type) {
	case *Schema:
		name = typ.Type().Name()
	default:
		name = typ.String()
	}
	if count == 0 {
		return "[" + name + " ...]"
	}

	return strings.TrimSuffix(strings.Repeat(name+" ", count), " ")
}

func checkGoType(typ ElementType, goType reflect.Type) error {
	var ok bool
	switch typ := typ.(type) {
	case *Schema:
		ok = goType == typ.Type()
	case *EnumType:
		ok = goType == typ.Type
	case TupleType:
		switch {
		case typ.List:
			ok = goType.Kind() == reflect.Slice && typ.Length == 0
		default:
			ok = goType.Kind() == reflect.Array && goType.Len() == typ.Length
		}
		if ok {
			ok = checkGoType(typ.Base, goType.Elem()) == nil
		}
	case AtomicType:
		switch typ {
		case String:
			ok = goType.Kind() == reflect.String
		case Boolean:
			ok = goType.Kind() == reflect.Bool
		case Integer:
			ok = isIntKind(goType.Kind()) || isUintKind(goType.Kind())
		case Float:
			ok = goType.Kind() == reflect.Float32 || goType.Kind() == reflect.Float64
		}
	}
	if !ok {
		return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedFieldType, goType, typ)
	}

	return nil
}

func isIntKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUintKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
