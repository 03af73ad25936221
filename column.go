// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"strings"

	"github.com/UNO-SOFT/validsheet/formats"
)

const (
	// DefaultFormat is the format of columns created with NewTextColumn.
	DefaultFormat = formats.String
	// DefaultWidth is the width of columns created with NewTextColumn.
	DefaultWidth = 10

	MinColumnWidth, MaxColumnWidth = 1, 255
)

// Column is an immutable column descriptor.
type Column struct {
	reg    *formats.Registry
	name   string
	format string
	width  int
}

// NewColumn returns a column with the given name, format and width.
//
// The name must not be blank, the format must be known to reg and
// the width must be in [1,255].
func NewColumn(reg *formats.Registry, name, format string, width int) (Column, error) {
	if strings.TrimSpace(name) == "" {
		return Column{}, fieldError(ErrInvalidColumn, "name", name)
	}
	if !reg.IsValid(format) {
		return Column{}, fieldError(ErrInvalidColumn, "format", format)
	}
	if width < MinColumnWidth || width > MaxColumnWidth {
		return Column{}, fieldError(ErrInvalidColumn, "width", width)
	}
	return Column{reg: reg, name: name, format: format, width: width}, nil
}

// NewTextColumn returns a STRING column of the default width.
func NewTextColumn(reg *formats.Registry, name string) (Column, error) {
	return NewColumn(reg, name, DefaultFormat, DefaultWidth)
}

func (c Column) Name() string   { return c.name }
func (c Column) Format() string { return c.format }
func (c Column) Width() int     { return c.width }

// Token returns the number format token of the column's format.
func (c Column) Token() string {
	tok, _ := c.reg.Token(c.format)
	return tok
}

// Matches reports whether v complies with the column's format.
// Null values always match.
func (c Column) Matches(v Value) bool {
	if v.IsNull() {
		return true
	}
	ok, _ := c.reg.Match(v.String(), c.format)
	return ok
}
