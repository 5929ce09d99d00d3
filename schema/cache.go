// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes schemas by Go type for the lifetime of the process.
//
// It is safe for concurrent use. Concurrent first builds of the same type
// race and the last one wins, which is harmless as they are equivalent.
type Cache struct {
	schemas *lru.LRU[reflect.Type, *Schema]
}

// NewCache creates an unbounded Cache without expiration.
func NewCache() *Cache {
	return &Cache{
		schemas: lru.NewLRU[reflect.Type, *Schema](0, nil, 0),
	}
}

// Get returns the cached schema of typ.
func (c *Cache) Get(typ reflect.Type) (*Schema, bool) {
	return c.schemas.Get(typ)
}

// Add caches the schema under its type.
func (c *Cache) Add(schema *Schema) {
	c.schemas.Add(schema.Type(), schema)
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	return c.schemas.Len()
}
