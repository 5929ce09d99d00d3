// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/nil-go/appconf/schema"
)

var (
	// ErrDuplicatePublish is returned when a value is published to a [Shared] which already has one.
	ErrDuplicatePublish = errors.New("configuration has already been published")
	// ErrNotPublished is returned by [Global] if no configuration of the requested type is published.
	ErrNotPublished = errors.New("configuration has not been published")
)

// Shared holds a value which is published once and read many times.
// The zero Shared is empty and ready for use.
type Shared[T any] struct {
	mu        sync.RWMutex
	value     T
	published bool
}

// Set publishes value. It fails with [ErrDuplicatePublish] if a value has been published.
func (s *Shared[T]) Set(value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.published {
		return ErrDuplicatePublish
	}
	s.value = value
	s.published = true

	return nil
}

// Get returns the published value, and false if nothing is published yet.
func (s *Shared[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value, s.published
}

// SetGlobal publishes the process-wide configuration.
// The type of value must have a schema in [DefaultRegistry].
//
// Only the first call succeeds, later ones fail with [ErrDuplicatePublish].
func SetGlobal(value any) error {
	return setGlobal(DefaultRegistry(), value)
}

// setGlobal publishes value if its type has a schema in registry.
func setGlobal(registry *schema.Registry, value any) error {
	if _, err := registry.Schema(reflect.TypeOf(value)); err != nil {
		return fmt.Errorf("publish configuration: %w", err)
	}

	return global.Set(value)
}

// Global returns the process-wide configuration published with [SetGlobal].
func Global[T any]() (T, error) {
	var zero T
	value, ok := global.Get()
	if !ok {
		return zero, ErrNotPublished
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: published configuration is %T, not %v", ErrNotPublished, value, reflect.TypeFor[T]())
	}

	return typed, nil
}

// GlobalOr returns the process-wide configuration published with [SetGlobal],
// or def if no configuration of type T is published.
func GlobalOr[T any](def T) T {
	value, err := Global[T]()
	if err != nil {
		return def
	}

	return value
}

var global Shared[any] //nolint:gochecknoglobals
