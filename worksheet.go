// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/validsheet/formats"
)

const (
	// AllRows as a row index applies to every row.
	AllRows = -999
	// AllColumns as a column index applies to every column.
	AllColumns = -999

	// MaxRows is the number of maximum rows.
	MaxRows = 1_048_576
	// MaxColumns is the number of maximum columns.
	MaxColumns = 16_384

	MaxRowHeight = 409
)

type cellKey struct{ row, col int }

// layout is the shared state of Worksheet and Sheet.
type layout struct {
	reg     *formats.Registry
	styles  map[cellKey]Style
	heights map[int]int
	name    string
	columns []Column
	// hidden may contain duplicates, only membership matters.
	hidden       []int
	freezeRow    int
	freezeColumn int
	autoFilter   bool
}

// Worksheet is the mutable description of a sheet.
// Register it with Workbook.AddWorksheet.
type Worksheet struct {
	layout
}

// Sheet is the frozen snapshot of a Worksheet, as registered in a Workbook.
type Sheet struct {
	layout
}

// NewWorksheet returns an empty worksheet. Column formats are looked up in reg.
func NewWorksheet(reg *formats.Registry, name string) (*Worksheet, error) {
	if reg == nil {
		return nil, fieldError(ErrInvalidWorksheet, "registry", nil)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fieldError(ErrInvalidWorksheet, "name", name)
	}
	return &Worksheet{layout: layout{
		reg: reg, name: name,
		styles:  make(map[cellKey]Style),
		heights: make(map[int]int),
	}}, nil
}

// Freeze returns an independent snapshot of the worksheet.
func (w *Worksheet) Freeze() *Sheet { return &Sheet{layout: w.layout.clone()} }

// AddColumn appends the column. Column names must be unique within the sheet.
func (w *Worksheet) AddColumn(c Column) error {
	if c.reg == nil {
		return fieldError(ErrInvalidColumn, "column", c.name)
	}
	if slices.ContainsFunc(w.columns, func(x Column) bool { return x.name == c.name }) {
		return fieldError(ErrDuplicateColumn, "name", c.name)
	}
	w.columns = append(w.columns, c)
	return nil
}

// AddColumns calls AddColumn for each column.
func (w *Worksheet) AddColumns(cs ...Column) error {
	for _, c := range cs {
		if err := w.AddColumn(c); err != nil {
			return err
		}
	}
	return nil
}

// SetStyle sets the style of a cell, a row (col=AllColumns), a column
// (row=AllRows) or the whole sheet. A previous style at the same
// position is replaced.
func (w *Worksheet) SetStyle(row, col int, style Style) error {
	if err := checkRowIndex(row, true); err != nil {
		return err
	}
	if err := checkColumnIndex(col, true); err != nil {
		return err
	}
	if w.styles == nil {
		w.styles = make(map[cellKey]Style)
	}
	w.styles[cellKey{row: row, col: col}] = style
	return nil
}

// SetRowHeight sets the height of the row (or AllRows), in [0,409].
func (w *Worksheet) SetRowHeight(row, height int) error {
	if err := checkRowIndex(row, true); err != nil {
		return err
	}
	if height < 0 || height > MaxRowHeight {
		return fieldError(ErrInvalidRowHeight, "height", height)
	}
	if w.heights == nil {
		w.heights = make(map[int]int)
	}
	w.heights[row] = height
	return nil
}

// HideRow hides the row (or all rows).
func (w *Worksheet) HideRow(row int) error {
	if err := checkRowIndex(row, true); err != nil {
		return err
	}
	w.hidden = append(w.hidden, row)
	return nil
}

// FreezeRow freezes the rows above and including index.
func (w *Worksheet) FreezeRow(index int) error {
	if err := checkRowIndex(index, false); err != nil {
		return err
	}
	w.freezeRow = index
	return nil
}

// FreezeColumn freezes the columns left to and including index.
func (w *Worksheet) FreezeColumn(index int) error {
	if err := checkColumnIndex(index, false); err != nil {
		return err
	}
	w.freezeColumn = index
	return nil
}

func (w *Worksheet) SetAutoFilter(on bool) { w.autoFilter = on }

func (l *layout) clone() layout {
	c := *l
	c.columns = slices.Clone(l.columns)
	c.hidden = slices.Clone(l.hidden)
	c.styles = maps.Clone(l.styles)
	c.heights = maps.Clone(l.heights)
	return c
}

func (l *layout) valid() bool {
	return l != nil && l.reg != nil && strings.TrimSpace(l.name) != ""
}

func (l *layout) Name() string { return l.name }

// Columns returns a copy of the columns, in display order.
func (l *layout) Columns() []Column { return slices.Clone(l.columns) }

func (l *layout) ColumnCount() int { return len(l.columns) }

// FrozenRow returns the frozen row index, 0 if none.
func (l *layout) FrozenRow() int { return l.freezeRow }

// FrozenColumn returns the frozen column index, 0 if none.
func (l *layout) FrozenColumn() int { return l.freezeColumn }

func (l *layout) AutoFilter() bool { return l.autoFilter }

// StyleAt returns the style of the cell: the cell's own style,
// or else its row's, or else its column's, or else the sheet-wide one.
// Attributes of different levels are never merged.
func (l *layout) StyleAt(row, col int) (Style, bool, error) {
	if err := checkRowIndex(row, true); err != nil {
		return Style{}, false, err
	}
	if err := checkColumnIndex(col, true); err != nil {
		return Style{}, false, err
	}
	for _, k := range [...]cellKey{
		{row: row, col: col},
		{row: row, col: AllColumns},
		{row: AllRows, col: col},
		{row: AllRows, col: AllColumns},
	} {
		if s, ok := l.styles[k]; ok {
			return s, true, nil
		}
	}
	return Style{}, false, nil
}

// RowHeight returns the height of the row, or the height set for AllRows,
// or 0 when neither is set.
func (l *layout) RowHeight(row int) (int, error) {
	if err := checkRowIndex(row, true); err != nil {
		return 0, err
	}
	if h, ok := l.heights[row]; ok {
		return h, nil
	}
	return l.heights[AllRows], nil
}

// IsHiddenRow reports whether the row, or AllRows, has been hidden.
func (l *layout) IsHiddenRow(row int) (bool, error) {
	if err := checkRowIndex(row, true); err != nil {
		return false, err
	}
	return slices.Contains(l.hidden, row) || slices.Contains(l.hidden, AllRows), nil
}

// CheckRow validates the row against the column formats.
//
// Null values always pass, NaN and infinite numbers never do. Without declared columns every value must be
// a valid STRING, and any number of values is accepted; with declared
// columns, a row longer than the column list is rejected
// with ErrColumnCountMismatch.
func (l *layout) CheckRow(row []Value) error {
	if len(row) == 0 {
		return fieldError(ErrRowFormatMismatch, "row", "empty")
	}
	if len(l.columns) != 0 && len(row) > len(l.columns) {
		return fmt.Errorf("%d values, %d columns: %w", len(row), len(l.columns), ErrColumnCountMismatch)
	}
	for i, v := range row {
		if v.IsNull() {
			continue
		}
		if v.Kind() == KindNumber && (math.IsNaN(v.Float()) || math.IsInf(v.Float(), 0)) {
			return fieldError(ErrRowFormatMismatch, strconv.Itoa(i+1), v.String())
		}
		if len(l.columns) == 0 {
			ok, err := l.reg.Match(v.String(), formats.String)
			if err != nil {
				return err
			}
			if !ok {
				return fieldError(ErrRowFormatMismatch, fmt.Sprintf("%d (%s)", i+1, formats.String), v.String())
			}
			continue
		}
		if c := l.columns[i]; !c.Matches(v) {
			return fieldError(ErrRowFormatMismatch, fmt.Sprintf("%s (%s)", c.name, c.format), v.String())
		}
	}
	return nil
}

// IsValidRowData reports whether CheckRow accepts the row.
func (l *layout) IsValidRowData(row []Value) bool { return l.CheckRow(row) == nil }

// IsValidRowIndex reports whether i is a valid 1-based row index.
func IsValidRowIndex(i int) bool { return 0 < i && i <= MaxRows }

// IsValidColumnIndex reports whether i is a valid 1-based column index.
func IsValidColumnIndex(i int) bool { return 0 < i && i <= MaxColumns }

func checkRowIndex(i int, allowAll bool) error {
	if IsValidRowIndex(i) || allowAll && i == AllRows {
		return nil
	}
	return fieldError(ErrInvalidIndex, "row", i)
}

func checkColumnIndex(i int, allowAll bool) error {
	if IsValidColumnIndex(i) || allowAll && i == AllColumns {
		return nil
	}
	return fieldError(ErrInvalidIndex, "column", i)
}
