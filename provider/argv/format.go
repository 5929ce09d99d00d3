// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package argv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/nil-go/appconf/internal/maps"
	"github.com/nil-go/appconf/schema"
)

// ErrUnrepresentable is returned by [Format] if a value cannot be passed as separate arguments.
var ErrUnrepresentable = errors.New("value cannot be represented as arguments")

// Format returns the arguments which reproduce the instance of the schema type
// when parsed with the same schema. Values equal to their defaults are omitted.
func Format(s *schema.Schema, instance any) ([]string, error) {
	mapping, err := s.ToMapping(instance, false)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var args []string
	for _, item := range s.DeepItems() {
		value, ok := maps.Sub(mapping, item.Key)
		if !ok {
			continue
		}

		option := "--" + item.Key.String()
		val := reflect.ValueOf(value)
		if _, isTuple := item.Element.Type.(schema.TupleType); !isTuple {
			token := formatScalar(item.Element.Type, value)
			if IsOption(token) {
				args = append(args, option+"="+token)
			} else {
				args = append(args, option, token)
			}

			continue
		}

		base := item.Element.Type.(schema.TupleType).Base //nolint:forcetypeassert
		args = append(args, option)
		for i := range val.Len() {
			token := formatScalar(base, val.Index(i).Interface())
			if IsOption(token) {
				return nil, fmt.Errorf("%w: item %q of %s looks like an option", ErrUnrepresentable, token, item.Key)
			}
			args = append(args, token)
		}
	}

	return args, nil
}

func formatScalar(typ schema.ElementType, value any) string {
	if enum, ok := typ.(*schema.EnumType); ok {
		if name, ok := enum.NameOf(value); ok {
			return name
		}
	}

	val := reflect.ValueOf(value)
	switch {
	case val.Kind() == reflect.String:
		return val.String()
	case val.Kind() == reflect.Bool:
		return strconv.FormatBool(val.Bool())
	case val.CanFloat():
		return strconv.FormatFloat(val.Float(), 'g', -1, val.Type().Bits())
	default:
		return fmt.Sprint(value)
	}
}
