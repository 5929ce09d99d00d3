// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/appconf/inspector/tags"
	"github.com/nil-go/appconf/schema"
)

type color string

func (color) EnumMembers() []schema.EnumMember {
	return []schema.EnumMember{
		{Name: "RED", Value: color("red")},
		{Name: "GREEN", Value: color("green")},
	}
}

type priority int

func (priority) EnumMembers() []schema.EnumMember {
	return []schema.EnumMember{
		{Name: "low", Value: priority(1)},
		{Name: "high", Value: priority(9)},
	}
}

type inner struct {
	Host string `default:"localhost"`
	Port int
}

type outer struct {
	Name    string   `conf:"name"`
	Count   int      `default:"3"`
	Ratio   float32  `default:"0.25"`
	Enabled bool     `default:"false"`
	Color   color    `default:"RED"`
	Tags    []string `default:"x"`
	Pair    [2]int   `default:"1 2"`
	Inner   inner
}

func schemaFor[T any](t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.For[T](schema.NewRegistry(schema.WithInspector(tags.New())))
	require.NoError(t, err)

	return s
}
