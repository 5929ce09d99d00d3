// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nil-go/appconf/inspector/tags"
	"github.com/nil-go/appconf/schema"
	"github.com/nil-go/appconf/schema/mocks"
)

func TestRegistry_Schema(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	element, err := schema.NewElement(schema.String, reflect.TypeFor[string]())
	require.NoError(t, err)

	skipped := mocks.NewMockInspector(ctrl)
	recognizer := mocks.NewMockInspector(ctrl)
	unused := mocks.NewMockInspector(ctrl)
	typ := reflect.TypeFor[inner]()
	registry := schema.NewRegistry(schema.WithInspector(skipped, recognizer, unused))

	gomock.InOrder(
		skipped.EXPECT().Inspect(registry, typ).Return(nil, false, nil),
		recognizer.EXPECT().Inspect(registry, typ).
			Return(schema.Source{{Name: "address", Index: []int{0}, Element: element}}, true, nil),
	)
	unused.EXPECT().Inspect(gomock.Any(), gomock.Any()).Times(0)

	s, err := registry.Schema(typ)
	require.NoError(t, err)
	require.Equal(t, []string{"address"}, s.Names())

	// Served from the cache without inspecting again.
	cached, err := registry.Schema(typ)
	require.NoError(t, err)
	require.Same(t, s, cached)
}

func TestRegistry_Schema_inspectorError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	failing := mocks.NewMockInspector(ctrl)
	unused := mocks.NewMockInspector(ctrl)
	registry := schema.NewRegistry(schema.WithInspector(failing, unused))

	failure := errors.New("bad declaration")
	failing.EXPECT().Inspect(registry, reflect.TypeFor[inner]()).Return(nil, true, failure)
	unused.EXPECT().Inspect(gomock.Any(), gomock.Any()).Times(0)

	_, err := registry.Schema(reflect.TypeFor[inner]())
	require.ErrorIs(t, err, failure)
}

func TestRegistry_Schema_unrecognized(t *testing.T) {
	t.Parallel()

	registry := schema.NewRegistry(schema.WithInspector(tags.New()))

	_, err := registry.Schema(reflect.TypeFor[int]())
	require.EqualError(t, err, "unrecognized schema: int hasn't been recognized by any of the installed inspectors: [tags]")

	_, err = registry.Schema(nil)
	require.ErrorIs(t, err, schema.ErrUnrecognizedSchema)
}

func TestRegistry_sharedCache(t *testing.T) {
	t.Parallel()

	cache := schema.NewCache()
	first := schema.NewRegistry(schema.WithInspector(tags.New()), schema.WithCache(cache))
	second := schema.NewRegistry(schema.WithCache(cache))

	s, err := schema.For[outer](first)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	// The second registry has no inspector but finds the cached schema.
	cached, err := schema.For[outer](second)
	require.NoError(t, err)
	require.Same(t, s, cached)
}

func TestRegistry_Interpret(t *testing.T) {
	t.Parallel()

	registry := schema.NewRegistry(schema.WithInspector(tags.New()))

	testcases := []struct {
		description string
		typ         reflect.Type
		expected    string
		err         error
	}{
		{description: "string", typ: reflect.TypeFor[string](), expected: "STRING"},
		{description: "named string", typ: reflect.TypeFor[color](), expected: "color"},
		{description: "func", typ: reflect.TypeFor[tags.Option](), err: schema.ErrUnsupportedFieldType},
		{description: "uint", typ: reflect.TypeFor[uint32](), expected: "INTEGER"},
		{description: "float", typ: reflect.TypeFor[float32](), expected: "FLOAT"},
		{description: "bool", typ: reflect.TypeFor[bool](), expected: "BOOL"},
		{description: "enum", typ: reflect.TypeFor[priority](), expected: "priority"},
		{description: "array", typ: reflect.TypeFor[[3]bool](), expected: "Tuple[BOOL, BOOL, BOOL]"},
		{description: "slice", typ: reflect.TypeFor[[]color](), expected: "List[color]"},
		{description: "struct", typ: reflect.TypeFor[inner](), expected: "Schema[schema_test.inner]"},
		{description: "zero length array", typ: reflect.TypeFor[[0]int](), err: schema.ErrUnsupportedFieldType},
		{description: "map", typ: reflect.TypeFor[map[string]int](), err: schema.ErrUnsupportedFieldType},
		{description: "pointer", typ: reflect.TypeFor[*int](), err: schema.ErrUnsupportedFieldType},
		{description: "interface", typ: reflect.TypeFor[any](), err: schema.ErrUnsupportedFieldType},
		{description: "array of structs", typ: reflect.TypeFor[[2]inner](), err: schema.ErrUnsupportedFieldType},
		{description: "nested slice", typ: reflect.TypeFor[[][]int](), err: schema.ErrUnsupportedFieldType},
		{description: "empty enum", typ: reflect.TypeFor[emptyEnum](), err: schema.ErrUnsupportedFieldType},
		{description: "enum with foreign member", typ: reflect.TypeFor[foreignEnum](), err: schema.ErrUnsupportedFieldType},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			typ, err := registry.Interpret(testcase.typ)
			if testcase.err != nil {
				require.ErrorIs(t, err, testcase.err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, testcase.expected, typ.String())
		})
	}
}

type emptyEnum string

func (emptyEnum) EnumMembers() []schema.EnumMember {
	return nil
}

type foreignEnum string

func (foreignEnum) EnumMembers() []schema.EnumMember {
	return []schema.EnumMember{{Name: "A", Value: "a"}}
}
