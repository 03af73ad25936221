// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultOrganization is the author and company until set otherwise.
const DefaultOrganization = "UNO-SOFT"

// Workbook validates rows against the registered sheets and streams them
// to its Sink. Rows are not kept in memory.
//
// A Workbook is not safe for concurrent use; use one Workbook (and one Sink)
// per export.
type Workbook struct {
	sink   Sink
	logger *slog.Logger
	sheets map[string]*Sheet
	rows   map[string]int
	order  []string
	props  Properties
	closed bool
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger of the workbook.
func WithLogger(logger *slog.Logger) Option {
	return func(wb *Workbook) {
		if logger != nil {
			wb.logger = logger
		}
	}
}

// New returns a workbook writing to sink.
func New(sink Sink, opts ...Option) *Workbook {
	wb := &Workbook{
		sink:   sink,
		logger: slog.New(slog.DiscardHandler),
		sheets: make(map[string]*Sheet),
		rows:   make(map[string]int),
		props:  Properties{Author: DefaultOrganization, Company: DefaultOrganization},
	}
	for _, o := range opts {
		o(wb)
	}
	return wb
}

func (wb *Workbook) Title() string       { return wb.props.Title }
func (wb *Workbook) Subject() string     { return wb.props.Subject }
func (wb *Workbook) Author() string      { return wb.props.Author }
func (wb *Workbook) Company() string     { return wb.props.Company }
func (wb *Workbook) Description() string { return wb.props.Description }

// Properties returns the document properties.
func (wb *Workbook) Properties() Properties { return wb.props }

func (wb *Workbook) SetTitle(s string) error       { return setMeta(&wb.props.Title, "title", s) }
func (wb *Workbook) SetSubject(s string) error     { return setMeta(&wb.props.Subject, "subject", s) }
func (wb *Workbook) SetAuthor(s string) error      { return setMeta(&wb.props.Author, "author", s) }
func (wb *Workbook) SetCompany(s string) error     { return setMeta(&wb.props.Company, "company", s) }
func (wb *Workbook) SetDescription(s string) error { return setMeta(&wb.props.Description, "description", s) }

func setMeta(dst *string, field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fieldError(ErrInvalidMetadata, field, s)
	}
	*dst = s
	return nil
}

// AddWorksheet registers a snapshot of ws and declares its header to the sink.
// Later changes of ws do not affect the registered sheet.
// Sheet names must be unique case-insensitively.
func (wb *Workbook) AddWorksheet(ws *Worksheet) error {
	if wb.closed {
		return ErrClosed
	}
	if ws == nil || !ws.valid() {
		return ErrInvalidWorksheet
	}
	// sheet names are case-insensitive in xlsx
	for _, name := range wb.order {
		if strings.EqualFold(name, ws.name) {
			return fieldError(ErrDuplicateWorksheet, "name", ws.name)
		}
	}
	sheet := ws.Freeze()
	hdr := sheet.Header()
	if err := wb.sink.DeclareHeader(sheet.name, hdr); err != nil {
		return fmt.Errorf("%s: declare header: %w", sheet.name, err)
	}
	wb.sheets[sheet.name] = sheet
	wb.order = append(wb.order, sheet.name)
	wb.logger.Debug("worksheet added", "name", sheet.name, "columns", len(hdr.Columns),
		"autoFilter", hdr.AutoFilter, "freezeRow", hdr.FreezeRow, "freezeColumn", hdr.FreezeColumn)
	return nil
}

// Header returns the header declared to the sink for this sheet.
func (l *layout) Header() Header {
	hdr := Header{
		Columns:      make([]HeaderColumn, len(l.columns)),
		Widths:       make([]int, len(l.columns)),
		AutoFilter:   l.autoFilter,
		FreezeRow:    l.freezeRow,
		FreezeColumn: l.freezeColumn,
	}
	for i, c := range l.columns {
		hdr.Columns[i] = HeaderColumn{Name: c.name, Token: c.Token()}
		hdr.Widths[i] = c.width
	}
	return hdr
}

// HasWorksheet reports whether a sheet of this name is registered.
func (wb *Workbook) HasWorksheet(name string) bool {
	_, ok := wb.sheets[name]
	return ok
}

// Sheet returns the registered snapshot.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := wb.sheets[name]
	return s, ok
}

// SheetNames returns the names of the registered sheets, in registration order.
func (wb *Workbook) SheetNames() []string { return append([]string(nil), wb.order...) }

// RowCount returns the number of rows written to the sheet.
func (wb *Workbook) RowCount(sheet string) int { return wb.rows[sheet] }

// NextRowIndex returns the 1-based index the next row of the sheet gets.
func (wb *Workbook) NextRowIndex(sheet string) int { return wb.rows[sheet] + 1 }

// AddRow validates the row against the sheet's columns, resolves the
// cell styles and row options, and writes the row to the sink.
//
// A rejected row leaves no trace: nothing is written, the row counter
// does not change.
func (wb *Workbook) AddRow(sheetName string, row ...Value) error {
	if wb.closed {
		return ErrClosed
	}
	sheet, ok := wb.sheets[sheetName]
	if !ok {
		return fieldError(ErrUnknownWorksheet, "sheet", sheetName)
	}
	if err := sheet.CheckRow(row); err != nil {
		wb.logger.Debug("row rejected", "sheet", sheetName, "row", wb.NextRowIndex(sheetName), "error", err)
		return fmt.Errorf("%s: %w", sheetName, err)
	}
	rowIndex := wb.NextRowIndex(sheetName)
	if rowIndex > MaxRows {
		return fmt.Errorf("%s: %w", sheetName, ErrTooManyRows)
	}
	rs, err := sheet.rowStyle(rowIndex, len(row))
	if err != nil {
		return fmt.Errorf("%s[%d]: %w", sheetName, rowIndex, err)
	}
	if err := wb.sink.AppendRow(sheetName, row, rs); err != nil {
		return fmt.Errorf("%s[%d]: %w", sheetName, rowIndex, err)
	}
	wb.rows[sheetName] = rowIndex
	return nil
}

// AddRowOf converts the values with ValueOf and calls AddRow.
func (wb *Workbook) AddRowOf(sheetName string, values ...any) error {
	row, err := Values(values...)
	if err != nil {
		return fmt.Errorf("%s: %w", sheetName, err)
	}
	return wb.AddRow(sheetName, row...)
}

func (l *layout) rowStyle(rowIndex, n int) (RowStyle, error) {
	rs := RowStyle{Cells: make([]map[string]any, n)}
	for i := range n {
		st, _, err := l.StyleAt(rowIndex, i+1)
		if err != nil {
			return rs, err
		}
		rs.Cells[i] = st.Map()
	}
	height, err := l.RowHeight(rowIndex)
	if err != nil {
		return rs, err
	}
	hidden, err := l.IsHiddenRow(rowIndex)
	if err != nil {
		return rs, err
	}
	if height != 0 || hidden {
		rs.Options = make(map[string]any, 2)
		if height != 0 {
			rs.Options["height"] = height
		}
		if hidden {
			rs.Options["hidden"] = true
		}
	}
	return rs, nil
}

// Export writes the workbook to w. No rows can be added afterwards.
func (wb *Workbook) Export(w io.Writer) error {
	if wb.closed {
		return ErrClosed
	}
	wb.closed = true
	wb.logger.Info("export", "sheets", wb.order, "rows", wb.rows)
	return wb.sink.Flush(w, wb.props)
}

// ExportFile writes the workbook to the named file.
// No rows can be added afterwards.
func (wb *Workbook) ExportFile(path string) error {
	if wb.closed {
		return ErrClosed
	}
	wb.closed = true
	wb.logger.Info("export", "file", path, "sheets", wb.order, "rows", wb.rows)
	return wb.sink.FlushFile(path, wb.props)
}
