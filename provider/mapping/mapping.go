// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package mapping reads configuration values from a nested map[string]any.
//
// Only entries whose dotted path names an element of the schema are read,
// so the same mapping may carry keys for other consumers.
package mapping

import (
	"fmt"

	"github.com/nil-go/appconf/internal/maps"
	"github.com/nil-go/appconf/schema"
)

// Mapping is a value source backed by an in-memory mapping.
//
// To create a new Mapping, call [New].
type Mapping struct {
	data       map[string]any
	provenance []string
}

// New creates a Mapping of the given data.
// The provenance describes where the data comes from, e.g. "file", "/etc/app.yaml".
func New(data map[string]any, provenance ...string) Mapping {
	return Mapping{data: data, provenance: provenance}
}

// Read returns the values of all elements found in the mapping, in schema order.
func (m Mapping) Read(s *schema.Schema) ([]schema.Value, error) {
	var values []schema.Value
	for _, item := range s.DeepItems() {
		raw, ok, err := lookup(m.data, item.Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		value, err := item.Element.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item.Key, err)
		}
		values = append(values, schema.NewValue(item.Key, item.Element, value, m.provenance...))
	}

	return values, nil
}

func lookup(data map[string]any, key schema.Key) (any, bool, error) {
	for i := 1; i < len(key); i++ {
		parent, ok := maps.Sub(data, key[:i])
		if !ok {
			return nil, false, nil
		}
		if _, isMapping := parent.(map[string]any); !isMapping {
			return nil, false, fmt.Errorf("%w: %s must be a mapping, got %#v",
				schema.ErrStructuralMismatch, key[:i], parent)
		}
	}

	value, ok := maps.Sub(data, key)

	return value, ok, nil
}

func (m Mapping) String() string {
	return "mapping"
}
