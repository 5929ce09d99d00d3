// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"strings"

	"github.com/nil-go/appconf/schema"
)

// Result is the outcome of [Gatherer.Collect].
type Result struct {
	// Value is the configuration instance, with the type passed to Collect.
	Value any
	// Values are the final values of all elements, in schema order.
	// Elements which were not discovered in any source have their defaults with provenance "default".
	Values []schema.Value
	// Unknown are the arguments which are neither control nor configuration options.
	Unknown []string
	// Files are all files opened while gathering, including the included ones.
	Files []string

	discovered []schema.Value
	defaults   []schema.Value
}

// Explain provides information about how each value under the given path
// is resolved from the sources. It blurs sensitive information.
func (r *Result) Explain(path string) string {
	explanation := &strings.Builder{}
	if r == nil {
		explanation.WriteString(path)
		explanation.WriteString(" has no configuration.\n\n")

		return explanation.String()
	}

	prefix := schema.ParseKey(path)
	matched := false
	for _, value := range r.Values {
		if len(value.Name) < len(prefix) || !value.Name[:len(prefix)].Equal(prefix) {
			continue
		}
		matched = true

		candidates := r.candidates(value.Name)
		explanation.WriteString(value.Name.String())
		explanation.WriteString(" has value[")
		explanation.WriteString(candidates[0].Redacted())
		explanation.WriteString("] that is loaded by source[")
		explanation.WriteString(candidates[0].Source())
		explanation.WriteString("].\n")
		if len(candidates) > 1 {
			explanation.WriteString("Here are other value(source)s:\n")
			for _, candidate := range candidates[1:] {
				explanation.WriteString("  - ")
				explanation.WriteString(candidate.Redacted())
				explanation.WriteString("(")
				explanation.WriteString(candidate.Source())
				explanation.WriteString(")\n")
			}
		}
		explanation.WriteString("\n")
	}
	if !matched {
		explanation.WriteString(path)
		explanation.WriteString(" has no configuration.\n\n")
	}

	return explanation.String()
}

// candidates returns all values of the element with the given key, from highest to lowest precedence.
func (r *Result) candidates(key schema.Key) []schema.Value {
	var candidates []schema.Value
	for i := len(r.discovered) - 1; i >= 0; i-- {
		if r.discovered[i].Name.Equal(key) {
			candidates = append(candidates, r.discovered[i])
		}
	}
	for _, value := range r.defaults {
		if value.Name.Equal(key) {
			candidates = append(candidates, value)
		}
	}

	return candidates
}
