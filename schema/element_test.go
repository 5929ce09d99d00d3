// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/appconf/schema"
)

func TestNewElement(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		typ         schema.ElementType
		goType      reflect.Type
		opts        []schema.ElementOption
		expected    any
		err         error
	}{
		{
			description: "without default",
			typ:         schema.String,
			goType:      reflect.TypeFor[string](),
			opts:        []schema.ElementOption{schema.WithHelp("help"), schema.AsSecret()},
		},
		{
			description: "integer default for float",
			typ:         schema.Float,
			goType:      reflect.TypeFor[float64](),
			opts:        []schema.ElementOption{schema.WithDefault(2)},
			expected:    2.0,
		},
		{
			description: "bool default for integer",
			typ:         schema.Integer,
			goType:      reflect.TypeFor[int](),
			opts:        []schema.ElementOption{schema.WithDefault(true)},
			expected:    1,
		},
		{
			description: "array default for list",
			typ:         schema.TupleType{Base: schema.Integer, List: true},
			goType:      reflect.TypeFor[[]int](),
			opts:        []schema.ElementOption{schema.WithDefault([2]int{1, 2})},
			expected:    []int{1, 2},
		},
		{
			description: "string default for integer",
			typ:         schema.Integer,
			goType:      reflect.TypeFor[int](),
			opts:        []schema.ElementOption{schema.WithDefault("1")},
			err:         schema.ErrInvalidDefault,
		},
		{
			description: "slice default for fixed tuple",
			typ:         schema.TupleType{Base: schema.Integer, Length: 2},
			goType:      reflect.TypeFor[[2]int](),
			opts:        []schema.ElementOption{schema.WithDefault([]int{1, 2})},
			err:         schema.ErrInvalidDefault,
		},
		{
			description: "default with wrong length",
			typ:         schema.TupleType{Base: schema.Integer, Length: 2},
			goType:      reflect.TypeFor[[2]int](),
			opts:        []schema.ElementOption{schema.WithDefault([3]int{1, 2, 3})},
			err:         schema.ErrInvalidDefault,
		},
		{
			description: "go type mismatch",
			typ:         schema.String,
			goType:      reflect.TypeFor[int](),
			err:         schema.ErrUnsupportedFieldType,
		},
		{
			description: "array for list",
			typ:         schema.TupleType{Base: schema.Integer, List: true},
			goType:      reflect.TypeFor[[2]int](),
			err:         schema.ErrUnsupportedFieldType,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			element, err := schema.NewElement(testcase.typ, testcase.goType, testcase.opts...)
			if testcase.err != nil {
				require.ErrorIs(t, err, testcase.err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, testcase.goType, element.GoType())
			require.Equal(t, testcase.expected, element.Default)
			require.Equal(t, testcase.expected != nil, element.HasDefault)
		})
	}
}

func TestNewElement_nestedDefault(t *testing.T) {
	t.Parallel()

	nested := schemaFor[inner](t)
	element, err := schema.NewElement(nested, reflect.TypeFor[inner](),
		schema.WithDefault(inner{Host: "db", Port: 5432}))
	require.NoError(t, err)

	defaulted, ok := element.Type.(*schema.Schema)
	require.True(t, ok)
	require.NotSame(t, nested, defaulted)

	port, _ := defaulted.Element("port")
	require.True(t, port.HasDefault)
	require.Equal(t, 5432, port.Default)

	// The cached schema keeps its own defaults.
	port, _ = nested.Element("port")
	require.False(t, port.HasDefault)
	host, _ := nested.Element("host")
	require.Equal(t, "localhost", host.Default)
}

func TestElement_TypeCheck(t *testing.T) {
	t.Parallel()

	nested := schemaFor[inner](t)

	testcases := []struct {
		description string
		typ         schema.ElementType
		goType      reflect.Type
		value       any
		expected    bool
	}{
		{description: "string", typ: schema.String, goType: reflect.TypeFor[string](), value: "a", expected: true},
		{description: "int as string", typ: schema.String, goType: reflect.TypeFor[string](), value: 1},
		{description: "nil", typ: schema.String, goType: reflect.TypeFor[string](), value: nil},
		{description: "bool as integer", typ: schema.Integer, goType: reflect.TypeFor[int](), value: false, expected: true},
		{description: "uint as integer", typ: schema.Integer, goType: reflect.TypeFor[int](), value: uint(1), expected: true},
		{description: "float as integer", typ: schema.Integer, goType: reflect.TypeFor[int](), value: 1.0},
		{description: "int as float", typ: schema.Float, goType: reflect.TypeFor[float64](), value: 1, expected: true},
		{description: "int as bool", typ: schema.Boolean, goType: reflect.TypeFor[bool](), value: 1},
		{
			description: "enum member",
			typ:         &schema.EnumType{Type: reflect.TypeFor[color](), Members: color("").EnumMembers()},
			goType:      reflect.TypeFor[color](),
			value:       color("red"),
			expected:    true,
		},
		{
			description: "enum name",
			typ:         &schema.EnumType{Type: reflect.TypeFor[color](), Members: color("").EnumMembers()},
			goType:      reflect.TypeFor[color](),
			value:       "red",
		},
		{
			description: "slice as list",
			typ:         schema.TupleType{Base: schema.Integer, List: true},
			goType:      reflect.TypeFor[[]int](),
			value:       []int{1},
			expected:    true,
		},
		{
			description: "array with exact length",
			typ:         schema.TupleType{Base: schema.Integer, Length: 2},
			goType:      reflect.TypeFor[[2]int](),
			value:       [2]int{1, 2},
			expected:    true,
		},
		{
			description: "slice as fixed tuple",
			typ:         schema.TupleType{Base: schema.Integer, Length: 2},
			goType:      reflect.TypeFor[[2]int](),
			value:       []int{1, 2},
		},
		{
			description: "tuple with bad item",
			typ:         schema.TupleType{Base: schema.Integer, List: true},
			goType:      reflect.TypeFor[[]int](),
			value:       []string{"1"},
		},
		{
			description: "nested instance",
			typ:         nested,
			goType:      reflect.TypeFor[inner](),
			value:       inner{},
			expected:    true,
		},
		{
			description: "nested pointer",
			typ:         nested,
			goType:      reflect.TypeFor[inner](),
			value:       &inner{},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			element, err := schema.NewElement(testcase.typ, testcase.goType)
			require.NoError(t, err)
			require.Equal(t, testcase.expected, element.TypeCheck(testcase.value))
		})
	}
}

func TestElement_TypeString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		typ         schema.ElementType
		goType      reflect.Type
		expected    string
	}{
		{description: "bool", typ: schema.Boolean, goType: reflect.TypeFor[bool](), expected: "[BOOL]"},
		{description: "integer", typ: schema.Integer, goType: reflect.TypeFor[int](), expected: "INTEGER"},
		{
			description: "fixed tuple",
			typ:         schema.TupleType{Base: schema.String, Length: 2},
			goType:      reflect.TypeFor[[2]string](),
			expected:    "STRING STRING",
		},
		{
			description: "list",
			typ:         schema.TupleType{Base: schema.Float, List: true},
			goType:      reflect.TypeFor[[]float64](),
			expected:    "[FLOAT ...]",
		},
		{
			description: "enum",
			typ:         &schema.EnumType{Type: reflect.TypeFor[color](), Members: color("").EnumMembers()},
			goType:      reflect.TypeFor[color](),
			expected:    "color",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			element, err := schema.NewElement(testcase.typ, testcase.goType)
			require.NoError(t, err)
			require.Equal(t, testcase.expected, element.TypeString())
		})
	}
}
