// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"errors"
	"fmt"

	"github.com/UNO-SOFT/validsheet/formats"
)

var (
	ErrInvalidColumn         = errors.New("invalid column")
	ErrInvalidStyleAttribute = errors.New("invalid style attribute")
	ErrInvalidIndex          = errors.New("invalid index")
	ErrInvalidRowHeight      = errors.New("invalid row height")
	ErrDuplicateColumn       = errors.New("duplicate column")
	ErrDuplicateWorksheet    = errors.New("duplicate worksheet")
	ErrUnknownWorksheet      = errors.New("unknown worksheet")
	ErrRowFormatMismatch     = errors.New("row does not match column formats")
	ErrColumnCountMismatch   = errors.New("more values than columns")
	ErrInvalidMetadata       = errors.New("invalid metadata")
	ErrInvalidWorksheet      = errors.New("invalid worksheet")
	// ErrClosed is returned by every write after the workbook has been exported.
	ErrClosed = errors.New("workbook already exported")

	ErrInvalidFormat = formats.ErrInvalidFormat
	ErrConfig        = formats.ErrConfig
)

// FieldError is a validation error of a named field or attribute.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s=%q: %v", e.Field, s, e.Err)
	}
	return fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(err error, field string, value any) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}
