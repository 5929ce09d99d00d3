// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ElementType is the type of a configuration element.
// It is implemented by [AtomicType], [*EnumType], [TupleType] and [*Schema] only.
type ElementType interface {
	fmt.Stringer

	elementType()
}

// AtomicType is a scalar element type.
type AtomicType uint8

const (
	String AtomicType = iota + 1
	Integer
	Float
	Boolean
)

func (AtomicType) elementType() {}

func (a AtomicType) String() string {
	switch a {
	case String:
		return "STRING"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Boolean:
		return "BOOL"
	default:
		return "AtomicType(" + strconv.Itoa(int(a)) + ")"
	}
}

// Enum is implemented by named types whose values form a closed set.
// EnumMembers must return the same members in the same order on every call,
// and it is called on the zero value of the type.
type Enum interface {
	EnumMembers() []EnumMember
}

// EnumMember is a named value of an [Enum] type.
// Value must have the enum type.
type EnumMember struct {
	Name  string
	Value any
}

// EnumType references an [Enum] implementation.
type EnumType struct {
	Type    reflect.Type
	Members []EnumMember
}

func (*EnumType) elementType() {}

func (e *EnumType) String() string {
	return e.Type.Name()
}

// NameOf returns the member name of the given value.
func (e *EnumType) NameOf(value any) (string, bool) {
	for _, member := range e.Members {
		if reflect.DeepEqual(member.Value, value) {
			return member.Name, true
		}
	}

	return "", false
}

func (e *EnumType) parse(raw any) (any, error) {
	if raw != nil && reflect.TypeOf(raw) == e.Type {
		if _, ok := e.NameOf(raw); ok {
			return raw, nil
		}
	}

	str := scalarString(raw)
	for _, member := range e.Members {
		if member.Name == str {
			return member.Value, nil
		}
	}
	for _, member := range e.Members {
		if scalarString(member.Value) == str {
			return member.Value, nil
		}
	}

	return nil, fmt.Errorf("%w: cannot parse %q as a value of %s", ErrParse, str, e.Type.Name())
}

// TupleType is a homogeneous sequence of atomic or enum values.
// Length 0 means the sequence is unbounded.
// List selects a Go slice as the value representation, otherwise it is a Go array.
type TupleType struct {
	Base   ElementType
	Length int
	List   bool
}

func (TupleType) elementType() {}

func (t TupleType) String() string {
	base := t.Base.String()
	switch {
	case t.List:
		return "List[" + base + "]"
	case t.Length == 0:
		return "Tuple[" + base + ", ...]"
	default:
		return "Tuple[" + strings.TrimSuffix(strings.Repeat(base+", ", t.Length), ", ") + "]"
	}
}

func newTupleType(base ElementType, length int, list bool) (TupleType, error) {
	switch base.(type) {
	case AtomicType, *EnumType:
	default:
		return TupleType{}, fmt.Errorf("%w: tuple of %v", ErrUnsupportedFieldType, base)
	}
	if length < 0 {
		return TupleType{}, fmt.Errorf("%w: tuple length must be 0 (unbounded) or positive", ErrUnsupportedFieldType)
	}

	return TupleType{Base: base, Length: length, List: list}, nil
}

// scalarString formats the underlying value so enum types with a String method
// still compare by their declared values.
func scalarString(value any) string {
	if value == nil {
		return "<nil>"
	}

	val := reflect.ValueOf(value)
	switch {
	case val.Kind() == reflect.String:
		return val.String()
	case val.Kind() == reflect.Bool:
		return strconv.FormatBool(val.Bool())
	case val.CanInt():
		return strconv.FormatInt(val.Int(), 10)
	case val.CanUint():
		return strconv.FormatUint(val.Uint(), 10)
	case val.CanFloat():
		return strconv.FormatFloat(val.Float(), 'g', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
