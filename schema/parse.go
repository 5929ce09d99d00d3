// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Parse converts raw into a value of the element's Go type.
//
// Strings are parsed according to the element type, and tuples accept either
// a space delimited string (see [SplitTuple]) or a slice/array of items.
// Nested schemas cannot be parsed from a raw value; use [Schema.FromMapping] instead.
func (e *Element) Parse(raw any) (any, error) {
	switch typ := e.Type.(type) {
	case *Schema:
		return nil, fmt.Errorf("%w: cannot parse %v from a raw value", ErrParse, typ)
	case TupleType:
		return parseTuple(typ, e.goType, raw)
	default:
		return parseBase(typ, e.goType, raw)
	}
}

func parseBase(typ ElementType, goType reflect.Type, raw any) (any, error) {
	switch typ := typ.(type) {
	case *EnumType:
		return typ.parse(raw)
	case AtomicType:
		var (
			value any
			err   error
		)
		if typ == Integer && goType != nil && isUintKind(goType.Kind()) {
			value, err = parseUnsigned(raw)
		} else {
			value, err = parseAtomic(typ, raw)
		}
		if err != nil {
			return nil, err
		}

		return convert(reflect.ValueOf(value), goType)
	default:
		return nil, fmt.Errorf("%w: %v is not a scalar type", ErrParse, typ)
	}
}

func parseTuple(typ TupleType, goType reflect.Type, raw any) (any, error) {
	var items []any
	switch raw := raw.(type) {
	case nil:
	case string:
		for _, token := range SplitTuple(raw) {
			items = append(items, token)
		}
	default:
		val := reflect.ValueOf(raw)
		switch val.Kind() {
		case reflect.Slice, reflect.Array:
			items = make([]any, 0, val.Len())
			for i := range val.Len() {
				items = append(items, val.Index(i).Interface())
			}
		default:
			items = []any{raw}
		}
	}
	if typ.Length > 0 && len(items) != typ.Length {
		return nil, fmt.Errorf("%w: expect a tuple of %d values, but given %d", ErrParse, typ.Length, len(items))
	}

	var result reflect.Value
	switch {
	case goType.Kind() == reflect.Array:
		result = reflect.New(goType).Elem()
	case len(items) == 0:
		return reflect.Zero(goType).Interface(), nil
	default:
		result = reflect.MakeSlice(goType, len(items), len(items))
	}
	for i, item := range items {
		value, err := parseBase(typ.Base, goType.Elem(), item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		result.Index(i).Set(reflect.ValueOf(value))
	}

	return result.Interface(), nil
}

func parseAtomic(typ AtomicType, raw any) (any, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: no value for %v", ErrParse, typ)
	}

	switch typ {
	case String:
		if str, ok := stringOf(raw); ok {
			return str, nil
		}

		return fmt.Sprint(raw), nil
	case Integer:
		if str, ok := stringOf(raw); ok {
			i, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: cannot parse %q as an integer", ErrParse, str)
			}

			return i, nil
		}

		var i int64
		if err := weakDecode(raw, &i); err != nil {
			return nil, fmt.Errorf("%w: cannot convert %v to an integer: %w", ErrParse, raw, err)
		}

		return i, nil
	case Float:
		if str, ok := stringOf(raw); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: cannot parse %q as a float", ErrParse, str)
			}

			return f, nil
		}

		var f float64
		if err := weakDecode(raw, &f); err != nil {
			return nil, fmt.Errorf("%w: cannot convert %v to a float: %w", ErrParse, raw, err)
		}

		return f, nil
	case Boolean:
		if number, ok := raw.(json.Number); ok {
			f, err := number.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: cannot convert %v to a bool value: %w", ErrParse, raw, err)
			}

			return f != 0, nil
		}
		if str, ok := stringOf(raw); ok {
			switch lower := strings.ToLower(str); {
			case strings.HasPrefix(lower, "t"), strings.HasPrefix(lower, "y"):
				return true, nil
			case strings.HasPrefix(lower, "f"), strings.HasPrefix(lower, "n"):
				return false, nil
			default:
				return nil, fmt.Errorf("%w: cannot parse the string as a bool value: %s", ErrParse, str)
			}
		}

		return truthy(reflect.ValueOf(raw)), nil
	default:
		return nil, fmt.Errorf("%w: unknown atomic type %v", ErrParse, typ)
	}
}

// parseUnsigned is the Integer parsing for unsigned Go types, which may exceed the range of int64.
func parseUnsigned(raw any) (uint64, error) {
	if str, ok := stringOf(raw); ok {
		u, err := strconv.ParseUint(strings.TrimSpace(str), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot parse %q as an unsigned integer", ErrParse, str)
		}

		return u, nil
	}

	val := reflect.ValueOf(raw)
	switch {
	case val.CanUint():
		return val.Uint(), nil
	case val.CanInt() && val.Int() >= 0:
		return uint64(val.Int()), nil
	case val.CanFloat() && val.Float() >= 0, val.Kind() == reflect.Bool:
		var u uint64
		if err := weakDecode(raw, &u); err != nil {
			return 0, fmt.Errorf("%w: cannot convert %v to an unsigned integer: %w", ErrParse, raw, err)
		}

		return u, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %v to an unsigned integer", ErrParse, raw)
	}
}

func stringOf(raw any) (string, bool) {
	val := reflect.ValueOf(raw)
	if val.Kind() != reflect.String {
		return "", false
	}

	return val.String(), true
}

func weakDecode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	return decoder.Decode(input) //nolint:wrapcheck
}

func truthy(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String, reflect.Chan:
		return val.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !val.IsNil()
	default:
		return !val.IsZero()
	}
}

func convert(val reflect.Value, goType reflect.Type) (any, error) {
	if goType == nil {
		return val.Interface(), nil
	}

	switch {
	case isIntKind(goType.Kind()):
		if reflect.Zero(goType).OverflowInt(val.Int()) {
			return nil, fmt.Errorf("%w: %d overflows %v", ErrParse, val.Int(), goType)
		}
	case isUintKind(goType.Kind()) && val.CanUint():
		if reflect.Zero(goType).OverflowUint(val.Uint()) {
			return nil, fmt.Errorf("%w: %d overflows %v", ErrParse, val.Uint(), goType)
		}
	case isUintKind(goType.Kind()):
		if val.Int() < 0 || reflect.Zero(goType).OverflowUint(uint64(val.Int())) {
			return nil, fmt.Errorf("%w: %d overflows %v", ErrParse, val.Int(), goType)
		}
	case goType.Kind() == reflect.Float32:
		if reflect.Zero(goType).OverflowFloat(val.Float()) {
			return nil, fmt.Errorf("%w: %v overflows %v", ErrParse, val.Float(), goType)
		}
	}

	return val.Convert(goType).Interface(), nil
}
