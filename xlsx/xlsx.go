// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx is a validsheet.Sink writing Office Open XML spreadsheets.
package xlsx

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/UNO-SOFT/validsheet"
	"github.com/xuri/excelize/v2"
)

var _ = (validsheet.Sink)((*XLSXWriter)(nil))

// XLSXWriter is a validsheet.Sink on excelize.
//
// The first row of each sheet with declared columns is the header row
// holding the column names; data rows follow it.
//
// This writer collects everything in memory, so big sheets may impose problems.
type XLSXWriter struct {
	xl     *excelize.File
	styles map[string]int
	sheets map[string]*xlsxSheet
	order  []string
	// HeaderStyle is applied to the header row; nil for none.
	HeaderStyle map[string]any
	mu          sync.Mutex
}

type xlsxSheet struct {
	header validsheet.Header
	row    int
}

// NewWriter returns a new XLSXWriter with bold header row.
func NewWriter() *XLSXWriter {
	return &XLSXWriter{
		xl:          excelize.NewFile(),
		sheets:      make(map[string]*xlsxSheet),
		HeaderStyle: map[string]any{"font-style": validsheet.Bold},
	}
}

func (xlw *XLSXWriter) DeclareHeader(name string, header validsheet.Header) error {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return validsheet.ErrClosed
	}
	if slices.ContainsFunc(xlw.order, func(s string) bool { return strings.EqualFold(s, name) }) {
		return fmt.Errorf("%q: %w", name, validsheet.ErrDuplicateWorksheet)
	}
	if len(xlw.order) == 0 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return err
	}
	xlw.order = append(xlw.order, name)
	xls := &xlsxSheet{header: header}
	xlw.sheets[name] = xls

	for i, c := range header.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if i < len(header.Widths) && header.Widths[i] > 0 {
			if err = xlw.xl.SetColWidth(name, col, col, float64(header.Widths[i])); err != nil {
				return err
			}
		}
		if s, err := xlw.getStyle(nil, c.Token); err != nil {
			return err
		} else if s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return err
			}
		}
		if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
			return err
		}
		if s, err := xlw.getStyle(xlw.HeaderStyle, ""); err != nil {
			return err
		} else if s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return err
			}
		}
	}
	if len(header.Columns) != 0 {
		xls.row++
	}
	if p := panes(header); p != nil {
		if err := xlw.xl.SetPanes(name, p); err != nil {
			return fmt.Errorf("%s: panes: %w", name, err)
		}
	}
	return nil
}

func panes(header validsheet.Header) *excelize.Panes {
	if header.FreezeRow == 0 && header.FreezeColumn == 0 {
		return nil
	}
	p := excelize.Panes{Freeze: true, XSplit: header.FreezeColumn, YSplit: header.FreezeRow}
	p.TopLeftCell, _ = excelize.CoordinatesToCellName(header.FreezeColumn+1, header.FreezeRow+1)
	switch {
	case header.FreezeRow != 0 && header.FreezeColumn != 0:
		p.ActivePane = "bottomRight"
	case header.FreezeRow != 0:
		p.ActivePane = "bottomLeft"
	default:
		p.ActivePane = "topRight"
	}
	p.Selection = []excelize.Selection{{SQRef: p.TopLeftCell, ActiveCell: p.TopLeftCell, Pane: p.ActivePane}}
	return &p
}

func (xlw *XLSXWriter) AppendRow(name string, values []validsheet.Value, styles validsheet.RowStyle) error {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return validsheet.ErrClosed
	}
	xls, ok := xlw.sheets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, validsheet.ErrUnknownWorksheet)
	}
	if xls.row >= validsheet.MaxRows {
		return validsheet.ErrTooManyRows
	}
	row := xls.row + 1
	for i, v := range values {
		axis, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, row, err)
		}
		var token string
		if i < len(xls.header.Columns) {
			token = xls.header.Columns[i].Token
		}
		switch v.Kind() {
		case validsheet.KindNull:
		case validsheet.KindNumber:
			err = xlw.xl.SetCellFloat(name, axis, v.Float(), -1, 64)
		case validsheet.KindBool:
			err = xlw.xl.SetCellBool(name, axis, v.Boolean())
		default:
			if t, ok := parseDate(token, v.Str()); ok {
				err = xlw.xl.SetCellValue(name, axis, t)
			} else {
				err = xlw.xl.SetCellStr(name, axis, v.Str())
			}
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", name, axis, err)
		}
		if i >= len(styles.Cells) || len(styles.Cells[i]) == 0 {
			continue
		}
		s, err := xlw.getStyle(styles.Cells[i], token)
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", name, axis, err)
		}
		if s != 0 {
			if err = xlw.xl.SetCellStyle(name, axis, axis, s); err != nil {
				return fmt.Errorf("%s[%s]: %w", name, axis, err)
			}
		}
	}
	if h := styles.Height(); h != 0 {
		if err := xlw.xl.SetRowHeight(name, row, float64(h)); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, row, err)
		}
	}
	if styles.Hidden() {
		if err := xlw.xl.SetRowVisible(name, row, false); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, row, err)
		}
	}
	xls.row = row
	return nil
}

func isDateToken(token string) bool {
	token = strings.ToLower(token)
	return strings.Contains(token, "yy") || strings.Contains(token, "dd")
}

func parseDate(token, s string) (time.Time, bool) {
	if !isDateToken(token) {
		return time.Time{}, false
	}
	for _, layout := range []string{time.DateOnly, time.DateTime, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Flush writes the spreadsheet to w. The writer cannot be used afterwards.
func (xlw *XLSXWriter) Flush(w io.Writer, props validsheet.Properties) error {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, err := xlw.finish(props)
	if err != nil {
		return err
	}
	defer xl.Close()
	_, err = xl.WriteTo(w)
	return err
}

// FlushFile writes the spreadsheet to the named file.
// The writer cannot be used afterwards.
func (xlw *XLSXWriter) FlushFile(path string, props validsheet.Properties) error {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, err := xlw.finish(props)
	if err != nil {
		return err
	}
	defer xl.Close()
	return xl.SaveAs(path)
}

func (xlw *XLSXWriter) finish(props validsheet.Properties) (*excelize.File, error) {
	xl := xlw.xl
	if xl == nil {
		return nil, validsheet.ErrClosed
	}
	xlw.xl = nil
	for _, name := range xlw.order {
		xls := xlw.sheets[name]
		if !xls.header.AutoFilter || len(xls.header.Columns) == 0 {
			continue
		}
		last, err := excelize.CoordinatesToCellName(len(xls.header.Columns), max(xls.row, 1))
		if err != nil {
			return nil, err
		}
		if err = xl.AutoFilter(name, "A1:"+last, nil); err != nil {
			return nil, fmt.Errorf("%s: autofilter: %w", name, err)
		}
	}
	if err := xl.SetDocProps(&excelize.DocProperties{
		Title:       props.Title,
		Subject:     props.Subject,
		Creator:     props.Author,
		Description: props.Description,
		Created:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}
	if err := xl.SetAppProps(&excelize.AppProperties{
		Application: "Microsoft Excel",
		Company:     props.Company,
	}); err != nil {
		return nil, err
	}
	return xl, nil
}

// getStyle returns the (cached) style ID for the attributes and the
// number format token, 0 if there is nothing to set.
func (xlw *XLSXWriter) getStyle(attrs map[string]any, token string) (int, error) {
	if token == "General" {
		token = ""
	}
	if len(attrs) == 0 && token == "" {
		return 0, nil
	}
	var buf strings.Builder
	buf.WriteString(token)
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fmt.Fprintf(&buf, "\t%s=%v", k, attrs[k])
	}
	k := buf.String()
	if s, ok := xlw.styles[k]; ok {
		return s, nil
	}
	s, err := xlw.xl.NewStyle(newStyle(attrs, token))
	if err != nil {
		return 0, err
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s, nil
}

var borderStyles = map[string]int{
	"thin": 1, "medium": 2, "dashed": 3, "dotted": 4, "thick": 5, "double": 6, "hair": 7,
	"mediumDashed": 8, "dashDot": 9, "mediumDashDot": 10, "dashDotDot": 11,
	"mediumDashDotDot": 12, "slantDashDot": 13,
}

// newStyle converts the sparse attribute map of validsheet.Style.Map.
func newStyle(attrs map[string]any, token string) *excelize.Style {
	var st excelize.Style
	if token != "" {
		st.CustomNumFmt = &token
	}
	str := func(k string) string { s, _ := attrs[k].(string); return s }
	color := func(k string) string { return strings.TrimPrefix(str(k), "#") }

	var font excelize.Font
	font.Family = str("font")
	if size, ok := attrs["font-size"].(int); ok {
		font.Size = float64(size)
	}
	font.Color = color("color")
	for _, f := range strings.Split(str("font-style"), ",") {
		switch f {
		case validsheet.Bold:
			font.Bold = true
		case validsheet.Italic:
			font.Italic = true
		case validsheet.Underline:
			font.Underline = "single"
		case validsheet.Strikethrough:
			font.Strike = true
		}
	}
	if font != (excelize.Font{}) {
		st.Font = &font
	}

	if fill := color("fill"); fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}

	if sides := str("border"); sides != "" {
		bs, ok := borderStyles[str("border-style")]
		if !ok {
			bs = borderStyles["thin"]
		}
		for _, side := range strings.Split(sides, ",") {
			st.Border = append(st.Border, excelize.Border{
				Type: side, Style: bs, Color: color("border-color"),
			})
		}
	}

	wrap, _ := attrs["wrap_text"].(bool)
	if h, v := str("halign"), str("valign"); h != "" || v != "" || wrap {
		st.Alignment = &excelize.Alignment{Horizontal: h, Vertical: v, WrapText: wrap}
	}
	return &st
}
