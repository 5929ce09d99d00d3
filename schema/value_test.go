// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/appconf/schema"
)

func TestKey(t *testing.T) {
	t.Parallel()

	key := schema.ParseKey("db.primary.host")
	require.Equal(t, schema.Key{"db", "primary", "host"}, key)
	require.Equal(t, "db.primary.host", key.String())
	require.Nil(t, schema.ParseKey(""))

	parent := key[:1]
	child := parent.Child("replica")
	require.Equal(t, "db.replica", child.String())
	require.Equal(t, "db.primary.host", key.String())
	require.True(t, child.Equal(schema.Key{"db", "replica"}))
	require.False(t, child.Equal(schema.Key{"db"}))
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	secret := &schema.Element{Secret: true}

	testcases := []struct {
		description string
		value       schema.Value
		expected    string
	}{
		{
			description: "plain",
			value:       schema.NewValue(schema.Key{"db", "port"}, nil, 5432, "file", "/etc/app.yaml"),
			expected:    "db.port = 5432 from file > /etc/app.yaml",
		},
		{
			description: "secret element",
			value:       schema.NewValue(schema.Key{"api"}, secret, "abc", "env", "APP_api"),
			expected:    "api = ****** from env > APP_api",
		},
		{
			description: "credential name",
			value:       schema.NewValue(schema.Key{"db", "password"}, nil, "abc", "argv"),
			expected:    "db.password = ****** from argv",
		},
		{
			description: "list",
			value:       schema.NewValue(schema.Key{"tags"}, nil, []string{"a", "b"}, "overridden defaults"),
			expected:    "tags = [a b] from overridden defaults",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testcase.expected, testcase.value.String())
		})
	}
}

func TestAsMapping(t *testing.T) {
	t.Parallel()

	mapping := schema.AsMapping([]schema.Value{
		{Name: schema.Key{"name"}, Value: "a"},
		{Name: schema.Key{"db", "host"}, Value: "h1"},
		{Name: schema.Key{"db", "port"}, Value: 1},
		{Name: schema.Key{"db", "host"}, Value: "h2"},
	})
	require.Equal(t, schema.Mapping{
		"name": "a",
		"db":   map[string]any{"host": "h2", "port": 1},
	}, mapping)
}

func TestMissingFieldsError(t *testing.T) {
	t.Parallel()

	err := &schema.MissingFieldsError{Paths: []string{"a", "b.c"}}
	require.EqualError(t, err, "no values discovered for the following elements: a, b.c")
	require.ErrorIs(t, err, schema.ErrMissingRequired)
}
