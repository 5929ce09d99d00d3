// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"errors"
	"strings"
)

var (
	// ErrUnrecognizedSchema is returned when no inspector recognizes a type.
	ErrUnrecognizedSchema = errors.New("unrecognized schema")
	// ErrUnsupportedFieldType is returned when a field type has no element type.
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	// ErrInvalidDefault is returned when a default value does not match its element type.
	ErrInvalidDefault = errors.New("invalid default")
	// ErrParse is returned when a raw value cannot be coerced to its element type.
	ErrParse = errors.New("parse failure")
	// ErrStructuralMismatch is returned when raw data does not follow the schema nesting.
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrMissingRequired is returned when elements without default have no value.
	ErrMissingRequired = errors.New("missing required fields")
)

// MissingFieldsError lists the dotted paths of all elements
// that have neither a default nor a discovered value.
type MissingFieldsError struct {
	Paths []string
}

func (e *MissingFieldsError) Error() string {
	return "no values discovered for the following elements: " + strings.Join(e.Paths, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequired
}
