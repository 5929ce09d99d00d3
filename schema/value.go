// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"strings"

	"github.com/nil-go/appconf/internal/credential"
	"github.com/nil-go/appconf/internal/maps"
)

// Mapping is a nested string-keyed mapping mirroring the nesting of a Schema.
type Mapping = map[string]any

// Key is a path of element names through nested schemas.
type Key []string

// ParseKey splits a dotted path into a Key.
func ParseKey(path string) Key {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

// Child returns a new key with name appended.
func (k Key) Child(name string) Key {
	child := make(Key, 0, len(k)+1)
	child = append(child, k...)

	return append(child, name)
}

// Equal reports whether k and other have the same names.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}

	return true
}

func (k Key) String() string {
	return strings.Join(k, ".")
}

// Value is a configuration value discovered in one of the sources.
// Provenance is the chain of sources it came from, e.g. ("file", "/etc/app.yaml").
type Value struct {
	Name       Key
	Value      any
	Provenance []string
	Secret     bool
}

// NewValue creates a Value for the given element.
func NewValue(name Key, element *Element, value any, provenance ...string) Value {
	return Value{
		Name:       name,
		Value:      value,
		Provenance: provenance,
		Secret:     element != nil && element.Secret,
	}
}

// Redacted returns the value formatted for logs, with secrets hidden.
func (v Value) Redacted() string {
	if v.Secret {
		return "******"
	}

	return credential.Blur(v.Name.String(), v.Value)
}

// Source returns the provenance chain joined by " > ".
func (v Value) Source() string {
	return strings.Join(v.Provenance, " > ")
}

func (v Value) String() string {
	return v.Name.String() + " = " + v.Redacted() + " from " + v.Source()
}

// AsMapping builds a nested Mapping from the values.
// Later values override earlier ones with the same name.
func AsMapping(values []Value) Mapping {
	mapping := make(Mapping)
	for _, value := range values {
		maps.Insert(mapping, value.Name, value.Value)
	}

	return mapping
}
