// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

//go:generate mockgen -source=registry.go -destination=mocks/mock_inspector.go -package=mocks

// Inspector translates one style of declaring configuration types into a schema [Source].
//
// Inspect returns false if it does not recognize the type. If it recognizes the type
// but cannot represent it, it must return an error rather than false,
// so no other inspector reinterprets the type.
type Inspector interface {
	Inspect(r *Registry, typ reflect.Type) (Source, bool, error)
}

// Registry resolves Go types into schemas using the registered inspectors.
//
// To create a new Registry, call [NewRegistry].
type Registry struct {
	inspectors []Inspector
	cache      *Cache
	logger     *slog.Logger
}

// NewRegistry creates a Registry with the given Option(s).
func NewRegistry(opts ...Option) *Registry {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.cache == nil {
		option.cache = NewCache()
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("appconf.schema")

	return (*Registry)(option)
}

// For returns the schema of T.
func For[T any](r *Registry) (*Schema, error) {
	return r.Schema(reflect.TypeFor[T]())
}

// Schema returns the schema of typ, building it with the first inspector
// which recognizes the type if it is not cached yet.
func (r *Registry) Schema(typ reflect.Type) (*Schema, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnrecognizedSchema)
	}
	if schema, ok := r.cache.Get(typ); ok {
		return schema, nil
	}

	for _, inspector := range r.inspectors {
		source, ok, err := inspector.Inspect(r, typ)
		if err != nil {
			return nil, fmt.Errorf("inspect %v with %v: %w", typ, inspector, err)
		}
		if !ok {
			continue
		}

		schema, err := New(typ, source)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("Schema has been recognized.", "type", typ.String(), "inspector", fmt.Sprint(inspector))
		r.cache.Add(schema)

		return schema, nil
	}

	return nil, fmt.Errorf(
		"%w: %v hasn't been recognized by any of the installed inspectors: [%s]",
		ErrUnrecognizedSchema, typ, r.inspectorNames(),
	)
}

func (r *Registry) inspectorNames() string {
	names := make([]string, 0, len(r.inspectors))
	for _, inspector := range r.inspectors {
		names = append(names, fmt.Sprint(inspector))
	}

	return strings.Join(names, ", ")
}

// Interpret maps a Go field type to an element type.
//
// Scalar kinds map to [AtomicType], [Enum] implementations to [*EnumType],
// arrays [N]T to fixed length [TupleType], slices []T to unbounded list tuples,
// and structs to nested schemas resolved through the registry.
// Other types are rejected with [ErrUnsupportedFieldType].
func (r *Registry) Interpret(typ reflect.Type) (ElementType, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: missing type", ErrUnsupportedFieldType)
	}

	switch typ.Kind() {
	case reflect.Array, reflect.Slice:
		base, err := interpretBase(typ.Elem())
		if err != nil {
			return nil, fmt.Errorf("%w: %v has non-scalar items", ErrUnsupportedFieldType, typ)
		}
		if typ.Kind() == reflect.Slice {
			return newTupleType(base, 0, true)
		}
		if typ.Len() == 0 {
			return nil, fmt.Errorf("%w: zero length array %v", ErrUnsupportedFieldType, typ)
		}

		return newTupleType(base, typ.Len(), false)
	case reflect.Struct:
		if _, err := interpretBase(typ); err == nil {
			break
		}

		return r.Schema(typ)
	default:
	}

	return interpretBase(typ)
}

func interpretBase(typ reflect.Type) (ElementType, error) {
	if enum, ok, err := enumType(typ); ok || err != nil {
		return enum, err
	}

	switch kind := typ.Kind(); {
	case kind == reflect.String:
		return String, nil
	case kind == reflect.Bool:
		return Boolean, nil
	case isIntKind(kind), isUintKind(kind):
		return Integer, nil
	case kind == reflect.Float32, kind == reflect.Float64:
		return Float, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFieldType, typ)
	}
}

func enumType(typ reflect.Type) (*EnumType, bool, error) {
	if typ.Kind() == reflect.Interface || !typ.Implements(enumInterface) {
		return nil, false, nil
	}

	enum, ok := reflect.Zero(typ).Interface().(Enum)
	if !ok {
		return nil, false, nil
	}
	members := enum.EnumMembers()
	if len(members) == 0 {
		return nil, false, fmt.Errorf("%w: enum %v has no members", ErrUnsupportedFieldType, typ)
	}
	for _, member := range members {
		if reflect.TypeOf(member.Value) != typ {
			return nil, false, fmt.Errorf("%w: member %s of enum %v has type %T",
				ErrUnsupportedFieldType, member.Name, typ, member.Value)
		}
	}

	return &EnumType{Type: typ, Members: members}, true, nil
}

var enumInterface = reflect.TypeFor[Enum]() //nolint:gochecknoglobals

// Option configures a Registry with specific options.
type Option func(*options)

// WithInspector registers inspectors. They are tried in registration order.
func WithInspector(inspectors ...Inspector) Option {
	return func(options *options) {
		options.inspectors = append(options.inspectors, inspectors...)
	}
}

// WithCache provides the Cache of built schemas.
//
// By default, each Registry has its own Cache.
func WithCache(cache *Cache) Option {
	return func(options *options) {
		options.cache = cache
	}
}

// WithLogger provides the slog.Logger for Registry.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type options Registry
