// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package validsheet is a validating front for a streaming spreadsheet writer.
//
// Worksheets are described up front (columns with data formats, styles,
// freeze panes, autofilter), registered with a Workbook, and then rows are
// streamed into them. Every row is checked against the column formats before
// it reaches the Sink.
package validsheet

import (
	"errors"
	"io"
)

// Sink writes the spreadsheet: the header of every sheet is declared
// once, before any of its rows; the result is written by Flush or FlushFile.
//
// A Sink is owned by exactly one Workbook.
type Sink interface {
	DeclareHeader(sheet string, header Header) error
	AppendRow(sheet string, values []Value, styles RowStyle) error
	Flush(w io.Writer, props Properties) error
	FlushFile(path string, props Properties) error
}

// HeaderColumn is a column name with its number format token.
type HeaderColumn struct {
	Name, Token string
}

// Header contains the sheet-level settings that must be known before
// the first row.
type Header struct {
	Columns []HeaderColumn
	// Widths has one entry per column, 0 means unset.
	Widths []int
	// AutoFilter turns on the filter buttons on the header row.
	AutoFilter bool
	// FreezeRow and FreezeColumn are the number of frozen rows and columns,
	// 0 if not frozen.
	FreezeRow, FreezeColumn int
}

// RowStyle is the resolved styling of one row.
type RowStyle struct {
	// Cells has one sparse attribute map per value (see Style.Map),
	// empty if the cell has no style.
	Cells []map[string]any
	// Options holds the row-wide "height" (int) and "hidden" (bool) options,
	// only when set.
	Options map[string]any
}

// Height returns the row height option, 0 if unset.
func (rs RowStyle) Height() int {
	h, _ := rs.Options["height"].(int)
	return h
}

// Hidden reports the hidden row option.
func (rs RowStyle) Hidden() bool {
	h, _ := rs.Options["hidden"].(bool)
	return h
}

// Properties are the document properties of the workbook.
type Properties struct {
	Title, Subject, Author, Company, Description string
}

// ErrTooManyRows is returned when a sheet would exceed MaxRows.
var ErrTooManyRows = errors.New("too many rows")
