package db2

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFieldType means DB2 has no column type for an abstract field
	// type. It is a configuration error and is never recovered from.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrMissingParam means a field lacks a value its type template needs.
	ErrMissingParam = errors.New("missing type parameter")
)

// UnknownTypeError reports the field whose type is not in the type table.
type UnknownTypeError struct {
	Field string
	Type  string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("db2: field %s: %v %q", e.Field, ErrUnknownFieldType, e.Type)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownFieldType }

// MissingParamError reports the field and template parameter that could not
// be substituted.
type MissingParamError struct {
	Field string
	Type  string
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("db2: field %s (%s): %v %s", e.Field, e.Type, ErrMissingParam, e.Param)
}

func (e *MissingParamError) Unwrap() error { return ErrMissingParam }
