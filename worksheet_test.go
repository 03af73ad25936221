// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet_test

import (
	"errors"
	"math"
	"testing"

	"github.com/UNO-SOFT/validsheet"
	"github.com/UNO-SOFT/validsheet/formats"
)

func newSheet(t *testing.T, cols ...[2]string) *validsheet.Worksheet {
	t.Helper()
	reg := formats.Default()
	ws, err := validsheet.NewWorksheet(reg, "Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	for _, nf := range cols {
		c, err := validsheet.NewColumn(reg, nf[0], nf[1], validsheet.DefaultWidth)
		if err != nil {
			t.Fatal(err)
		}
		if err = ws.AddColumn(c); err != nil {
			t.Fatal(err)
		}
	}
	return ws
}

func styleOf(t *testing.T, font string) validsheet.Style {
	t.Helper()
	var s validsheet.Style
	if err := s.SetFont(font); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewWorksheet(t *testing.T) {
	if _, err := validsheet.NewWorksheet(formats.Default(), " "); !errors.Is(err, validsheet.ErrInvalidWorksheet) {
		t.Errorf("blank name: %v", err)
	}
	if _, err := validsheet.NewWorksheet(nil, "x"); !errors.Is(err, validsheet.ErrInvalidWorksheet) {
		t.Errorf("nil registry: %v", err)
	}
}

func TestAddColumn(t *testing.T) {
	ws := newSheet(t, [2]string{"name", "STRING"}, [2]string{"amount", "NUMERIC"})
	c, err := validsheet.NewColumn(formats.Default(), "name", "INTEGER", 5)
	if err != nil {
		t.Fatal(err)
	}
	if err = ws.AddColumn(c); !errors.Is(err, validsheet.ErrDuplicateColumn) {
		t.Errorf("got %v, wanted ErrDuplicateColumn", err)
	}
	if err = ws.AddColumn(validsheet.Column{}); !errors.Is(err, validsheet.ErrInvalidColumn) {
		t.Errorf("zero column: %v", err)
	}
	cols := ws.Columns()
	if len(cols) != 2 || cols[0].Name() != "name" || cols[1].Name() != "amount" {
		t.Errorf("columns: %v", cols)
	}
}

func TestStylePrecedence(t *testing.T) {
	ws := newSheet(t)
	cell, row, col, all := styleOf(t, "Arial"), styleOf(t, "Calibri"), styleOf(t, "Verdana"), styleOf(t, "Courier New")
	for _, x := range []struct {
		Row, Col int
		Style    validsheet.Style
	}{
		{validsheet.AllRows, validsheet.AllColumns, all},
		{validsheet.AllRows, 2, col},
		{3, validsheet.AllColumns, row},
		{3, 2, cell},
	} {
		if err := ws.SetStyle(x.Row, x.Col, x.Style); err != nil {
			t.Fatal(err)
		}
	}
	check := func(r, c int, want validsheet.Style) {
		t.Helper()
		got, ok, err := ws.StyleAt(r, c)
		if err != nil || !ok {
			t.Fatalf("StyleAt(%d,%d): %t %v", r, c, ok, err)
		}
		if got != want {
			t.Errorf("StyleAt(%d,%d)=%v, wanted %v", r, c, got.Map(), want.Map())
		}
	}
	check(3, 2, cell)
	check(3, 5, row)
	check(4, 2, col)
	check(4, 5, all)

	// falling back level by level on the same coordinate
	ws2 := newSheet(t)
	if err := ws2.SetStyle(validsheet.AllRows, validsheet.AllColumns, all); err != nil {
		t.Fatal(err)
	}
	if err := ws2.SetStyle(validsheet.AllRows, 2, col); err != nil {
		t.Fatal(err)
	}
	if err := ws2.SetStyle(3, validsheet.AllColumns, row); err != nil {
		t.Fatal(err)
	}
	if got, _, _ := ws2.StyleAt(3, 2); got != row {
		t.Errorf("without cell: got %v", got.Map())
	}

	// overwrite, no merge
	var bold validsheet.Style
	if err := bold.SetFontStyle(validsheet.Bold); err != nil {
		t.Fatal(err)
	}
	if err := ws.SetStyle(3, 2, bold); err != nil {
		t.Fatal(err)
	}
	if got, _, _ := ws.StyleAt(3, 2); got != bold || got.Map()["font"] != nil {
		t.Errorf("overwrite: got %v", got.Map())
	}

	if _, ok, err := newSheet(t).StyleAt(1, 1); ok || err != nil {
		t.Errorf("empty: %t %v", ok, err)
	}
}

func TestIndexValidation(t *testing.T) {
	ws := newSheet(t)
	var s validsheet.Style
	for _, rc := range [][2]int{
		{0, 1}, {1, 0}, {-1, 1}, {validsheet.MaxRows + 1, 1}, {1, validsheet.MaxColumns + 1},
	} {
		if err := ws.SetStyle(rc[0], rc[1], s); !errors.Is(err, validsheet.ErrInvalidIndex) {
			t.Errorf("SetStyle(%d,%d): %v", rc[0], rc[1], err)
		}
		if _, _, err := ws.StyleAt(rc[0], rc[1]); !errors.Is(err, validsheet.ErrInvalidIndex) {
			t.Errorf("StyleAt(%d,%d): %v", rc[0], rc[1], err)
		}
	}
	for _, rc := range [][2]int{
		{1, 1}, {validsheet.MaxRows, validsheet.MaxColumns}, {validsheet.AllRows, validsheet.AllColumns},
	} {
		if err := ws.SetStyle(rc[0], rc[1], s); err != nil {
			t.Errorf("SetStyle(%d,%d): %v", rc[0], rc[1], err)
		}
	}
	if err := ws.FreezeRow(validsheet.AllRows); !errors.Is(err, validsheet.ErrInvalidIndex) {
		t.Errorf("FreezeRow(AllRows): %v", err)
	}
	if err := ws.FreezeColumn(0); !errors.Is(err, validsheet.ErrInvalidIndex) {
		t.Errorf("FreezeColumn(0): %v", err)
	}
	if err := ws.HideRow(0); !errors.Is(err, validsheet.ErrInvalidIndex) {
		t.Errorf("HideRow(0): %v", err)
	}
}

func TestRowOptions(t *testing.T) {
	ws := newSheet(t)
	if err := ws.SetRowHeight(validsheet.AllRows, 20); err != nil {
		t.Fatal(err)
	}
	if err := ws.SetRowHeight(5, 40); err != nil {
		t.Fatal(err)
	}
	for r, want := range map[int]int{5: 40, 6: 20, 1: 20} {
		if got, err := ws.RowHeight(r); err != nil || got != want {
			t.Errorf("RowHeight(%d)=%d %v, wanted %d", r, got, err, want)
		}
	}
	for _, h := range []int{-1, 410} {
		if err := ws.SetRowHeight(1, h); !errors.Is(err, validsheet.ErrInvalidRowHeight) {
			t.Errorf("height %d: %v", h, err)
		}
	}
	if err := ws.SetRowHeight(1, 0); err != nil {
		t.Errorf("height 0: %v", err)
	}
	if got, _ := ws.RowHeight(1); got != 0 {
		t.Errorf("explicit 0 should win, got %d", got)
	}

	for range 2 {
		if err := ws.HideRow(3); err != nil {
			t.Fatal(err)
		}
	}
	if hidden, _ := ws.IsHiddenRow(3); !hidden {
		t.Error("row 3 should be hidden")
	}
	if hidden, _ := ws.IsHiddenRow(4); hidden {
		t.Error("row 4 should not be hidden")
	}
}

func TestFreeze(t *testing.T) {
	ws := newSheet(t)
	if err := ws.FreezeRow(1); err != nil {
		t.Fatal(err)
	}
	if err := ws.FreezeRow(2); err != nil {
		t.Fatal(err)
	}
	if err := ws.FreezeColumn(3); err != nil {
		t.Fatal(err)
	}
	ws.SetAutoFilter(true)
	if ws.FrozenRow() != 2 || ws.FrozenColumn() != 3 || !ws.AutoFilter() {
		t.Errorf("got %d/%d/%t", ws.FrozenRow(), ws.FrozenColumn(), ws.AutoFilter())
	}
}

func TestCheckRow(t *testing.T) {
	ws := newSheet(t, [2]string{"name", "STRING"}, [2]string{"amount", "NUMERIC"})
	S, N, Null := validsheet.String, validsheet.Number, validsheet.Null()
	for _, tc := range []struct {
		Name string
		Row  []validsheet.Value
		Err  error
	}{
		{"ok", []validsheet.Value{S("x101"), N(3.14)}, nil},
		{"short", []validsheet.Value{S("x101")}, nil},
		{"nulls", []validsheet.Value{Null, Null}, nil},
		{"numericString", []validsheet.Value{S("a"), S("12.5")}, nil},
		{"mismatch", []validsheet.Value{S("x201"), S("not-a-number")}, validsheet.ErrRowFormatMismatch},
		{"empty", nil, validsheet.ErrRowFormatMismatch},
		{"long", []validsheet.Value{S("a"), N(1), S("extra")}, validsheet.ErrColumnCountMismatch},
		{"nan", []validsheet.Value{S("a"), N(math.NaN())}, validsheet.ErrRowFormatMismatch},
		{"inf", []validsheet.Value{S("a"), N(math.Inf(-1))}, validsheet.ErrRowFormatMismatch},
	} {
		err := ws.CheckRow(tc.Row)
		if tc.Err == nil {
			if err != nil {
				t.Errorf("%s: %+v", tc.Name, err)
			}
		} else if !errors.Is(err, tc.Err) {
			t.Errorf("%s: got %v, wanted %v", tc.Name, err, tc.Err)
		}
		if ws.IsValidRowData(tc.Row) != (tc.Err == nil) {
			t.Errorf("%s: IsValidRowData disagrees", tc.Name)
		}
	}

	free := newSheet(t)
	if err := free.CheckRow([]validsheet.Value{S("a"), N(1), validsheet.Bool(true), Null}); err != nil {
		t.Errorf("no columns: %+v", err)
	}
	if err := free.CheckRow([]validsheet.Value{N(math.Inf(1))}); !errors.Is(err, validsheet.ErrRowFormatMismatch) {
		t.Errorf("no columns, +Inf: got %v", err)
	}
}

func TestFreezeSnapshot(t *testing.T) {
	ws := newSheet(t, [2]string{"name", "STRING"})
	if err := ws.SetRowHeight(1, 30); err != nil {
		t.Fatal(err)
	}
	sheet := ws.Freeze()

	c, err := validsheet.NewColumn(formats.Default(), "later", "STRING", 10)
	if err != nil {
		t.Fatal(err)
	}
	if err = ws.AddColumn(c); err != nil {
		t.Fatal(err)
	}
	if err = ws.SetRowHeight(1, 50); err != nil {
		t.Fatal(err)
	}
	if err = ws.SetStyle(1, 1, styleOf(t, "Arial")); err != nil {
		t.Fatal(err)
	}
	if err = ws.HideRow(1); err != nil {
		t.Fatal(err)
	}

	if n := sheet.ColumnCount(); n != 1 {
		t.Errorf("snapshot has %d columns", n)
	}
	if h, _ := sheet.RowHeight(1); h != 30 {
		t.Errorf("snapshot height: %d", h)
	}
	if _, ok, _ := sheet.StyleAt(1, 1); ok {
		t.Error("snapshot got a style")
	}
	if hidden, _ := sheet.IsHiddenRow(1); hidden {
		t.Error("snapshot row hidden")
	}
}
