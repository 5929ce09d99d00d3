// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/nil-go/appconf/provider/argv"
	"github.com/nil-go/appconf/provider/env"
	"github.com/nil-go/appconf/provider/file"
	"github.com/nil-go/appconf/schema"
)

// Gather collects the configuration of type T with the given Option(s).
// It returns the configuration and the arguments which are not recognized.
func Gather[T any](opts ...Option) (T, []string, error) {
	var zero T
	result, err := New(opts...).Collect(reflect.TypeFor[T]())
	if err != nil {
		return zero, nil, err
	}

	return result.Value.(T), result.Unknown, nil //nolint:forcetypeassert
}

// MustGather collects the configuration of type T with the given Option(s),
// and publishes it like [SetGlobal] if [WithGlobal] is given.
// The published type is checked against the registry of [WithRegistry] instead of [DefaultRegistry].
//
// It exits the process with status 0 after printing help,
// or with status 1 after printing the error if gathering fails or some arguments are unknown.
func MustGather[T any](opts ...Option) T {
	var zero T

	gatherer := New(opts...)
	result, err := gatherer.Collect(reflect.TypeFor[T]())
	switch {
	case errors.Is(err, ErrHelp):
		exit(0)

		return zero
	case err != nil:
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)

		return zero
	case len(result.Unknown) > 0:
		_, _ = fmt.Fprintf(stderr, "Unknown arguments: %s\n", strings.Join(result.Unknown, " "))
		exit(1)

		return zero
	}

	value := result.Value.(T) //nolint:forcetypeassert
	if gatherer.global {
		if err := setGlobal(gatherer.registry, value); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			exit(1)

			return zero
		}
	}

	return value
}

// FromFiles reads the files in order into a Mapping for type T.
// Later files override earlier ones.
func FromFiles[T any](files ...string) (schema.Mapping, error) {
	s, err := schema.For[T](DefaultRegistry())
	if err != nil {
		return nil, err
	}

	var values []schema.Value
	for _, path := range files {
		discovered, err := file.New(path).Read(s)
		if err != nil {
			return nil, err
		}
		values = append(values, discovered...)
	}

	return schema.AsMapping(values), nil
}

// FromEnv reads the environment variables with the given prefix into a Mapping for type T.
func FromEnv[T any](prefix string) (schema.Mapping, error) {
	s, err := schema.For[T](DefaultRegistry())
	if err != nil {
		return nil, err
	}

	values, err := env.New(prefix).Read(s)
	if err != nil {
		return nil, err
	}

	return schema.AsMapping(values), nil
}

// FromArgs reads the command line arguments into a Mapping for type T.
// It also returns the arguments which are not recognized.
func FromArgs[T any](args []string, aliases map[string]string) (schema.Mapping, []string, error) {
	s, err := schema.For[T](DefaultRegistry())
	if err != nil {
		return nil, nil, err
	}

	values, unknown, err := argv.New(args, argv.WithAliases(aliases)).Parse(s)
	if err != nil {
		return nil, nil, err
	}

	return schema.AsMapping(values), unknown, nil
}

// FromMapping builds the configuration of type T from data.
func FromMapping[T any](data schema.Mapping) (T, error) {
	var zero T
	s, err := schema.For[T](DefaultRegistry())
	if err != nil {
		return zero, err
	}

	return schema.Decode[T](s, data)
}

// ToMapping extracts the values of the configuration instance.
// Unless includeDefaults is true, values equal to their defaults are omitted.
func ToMapping(instance any, includeDefaults bool) (schema.Mapping, error) {
	s, err := schemaOf(instance)
	if err != nil {
		return nil, err
	}

	return s.ToMapping(instance, includeDefaults)
}

// ToArgs renders the configuration instance as command line arguments,
// which reproduce it if they are gathered.
func ToArgs(instance any) ([]string, error) {
	s, err := schemaOf(instance)
	if err != nil {
		return nil, err
	}

	return argv.Format(s, instance)
}

func schemaOf(instance any) (*schema.Schema, error) {
	val := reflect.Indirect(reflect.ValueOf(instance))
	if !val.IsValid() {
		return nil, fmt.Errorf("%w: no configuration instance", schema.ErrStructuralMismatch)
	}

	return DefaultRegistry().Schema(val.Type())
}

//nolint:gochecknoglobals
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)
