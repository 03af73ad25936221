// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the charset of the locale (LANG), utf-8 by default.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	} else {
		EncName = ""
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// GetEncoding returns the named encoding, nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// CSVReader reads CSV records as rows of Values.
type CSVReader struct {
	*csv.Reader
	io.Closer
	row []Value
}

// separators are the accepted field separators.
const separators = ",;\t|"

// OpenCSV opens the named file ("" or "-" is stdin) for reading,
// decoding it from encName.
// The field separator is the first of separators in the first line,
// comma if there is none.
func OpenCSV(fn, encName string) (*CSVReader, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return nil, err
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		if fh, err = os.Open(fn); err != nil {
			return nil, err
		}
	}
	return NewCSVReader(fh, enc)
}

// NewCSVReader returns a CSVReader reading r, decoded with enc (nil means UTF-8).
// The returned reader closes r if it is an io.Closer.
func NewCSVReader(r io.Reader, enc encoding.Encoding) (*CSVReader, error) {
	closer, _ := r.(io.Closer)
	if closer == nil {
		closer = io.NopCloser(nil)
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		closer.Close()
		return nil, err
	}
	sep := rune(',')
	var quoted bool
	for _, c := range b {
		if c == '"' {
			quoted = !quoted
		} else if quoted {
			continue
		} else if c == '\n' || c == '\r' {
			break
		} else if strings.IndexByte(separators, c) >= 0 {
			sep = rune(c)
			break
		}
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	return &CSVReader{Reader: cr, Closer: closer}, nil
}

// ReadValues reads the next record. Empty fields are Null.
// The returned slice is reused by the next call.
func (cr *CSVReader) ReadValues() ([]Value, error) {
	rec, err := cr.Read()
	if err != nil {
		return nil, err
	}
	cr.row = cr.row[:0]
	for _, s := range rec {
		if s == "" {
			cr.row = append(cr.row, Null())
		} else {
			cr.row = append(cr.row, String(s))
		}
	}
	return cr.row, nil
}
