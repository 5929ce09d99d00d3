// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/appconf/schema"
)

func TestSplitTuple(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		value       string
		expected    []string
	}{
		{description: "empty", value: "", expected: []string{}},
		{description: "blank", value: "   ", expected: []string{}},
		{description: "words", value: "a b  c", expected: []string{"a", "b", "c"}},
		{description: "quoted", value: `"a b" c`, expected: []string{"a b", "c"}},
		{description: "escaped quote", value: `"say \"hi\"" x`, expected: []string{`say "hi"`, "x"}},
		{description: "escaped backslash", value: `"a\\b"`, expected: []string{`a\b`}},
		{description: "empty quoted", value: `"" a`, expected: []string{"", "a"}},
		{description: "leading spaces", value: "  1 2", expected: []string{"1", "2"}},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testcase.expected, schema.SplitTuple(testcase.value))
		})
	}
}

func TestJoinTuple(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"a b" c "" "q\"" "b\\s"`, schema.JoinTuple([]string{"a b", "c", "", `q"`, `b\s`}))
}

func TestJoinTuple_roundTrip(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	token := gen.OneGenOf(
		gen.AlphaString(),
		gen.AnyString(),
		gen.OneConstOf("", " ", `"`, `\`, `\"`, "a b", "\t", `"quoted"`),
	)
	properties.Property("SplitTuple inverts JoinTuple", prop.ForAll(
		func(tokens []string) bool {
			split := schema.SplitTuple(schema.JoinTuple(tokens))

			return len(split) == len(tokens) && (len(tokens) == 0 || reflect.DeepEqual(split, tokens))
		},
		gen.SliceOf(token),
	))

	properties.TestingRun(t)
}
