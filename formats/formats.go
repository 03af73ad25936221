// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package formats holds the table of column data formats: each named format
// has a validation pattern and the number format token written to the sheet.
package formats

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

// String is the permissive format every registry must define.
const String = "STRING"

var (
	// ErrConfig is returned when the format table cannot be loaded.
	ErrConfig = errors.New("format table")
	// ErrInvalidFormat is returned for format names not in the table.
	ErrInvalidFormat = errors.New("invalid format")
)

// Format is a named data format.
type Format struct {
	Name    string
	Pattern *regexp.Regexp
	Token   string
}

// Match reports whether the whole value matches the format's pattern.
func (f Format) Match(value string) bool { return f.Pattern.MatchString(value) }

// Registry is an immutable set of formats, keyed by upper-cased name.
// It is safe for concurrent use.
type Registry struct {
	formats map[string]Format
}

type entry struct {
	Excel string `yaml:"excel"`
	Regex string `yaml:"regex"`
}

// Load reads a format table: a mapping of format name to {excel, regex}.
// JSON is accepted as well.
func Load(r io.Reader) (*Registry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrConfig, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrConfig)
	}
	var m map[string]entry
	if err = yaml.UnmarshalStrict(b, &m); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrConfig, err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: no formats defined", ErrConfig)
	}
	reg := &Registry{formats: make(map[string]Format, len(m))}
	for name, e := range m {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: blank format name", ErrConfig)
		}
		if _, ok := reg.formats[key]; ok {
			return nil, fmt.Errorf("%w: %q defined twice", ErrConfig, key)
		}
		if e.Regex == "" {
			return nil, fmt.Errorf("%w: %q has no regex", ErrConfig, key)
		}
		rx, err := regexp.Compile(`^(?:` + e.Regex + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrConfig, key, err)
		}
		reg.formats[key] = Format{Name: key, Pattern: rx, Token: e.Excel}
	}
	if _, ok := reg.formats[String]; !ok {
		return nil, fmt.Errorf("%w: %s format is missing", ErrConfig, String)
	}
	return reg, nil
}

// LoadFile loads the format table from the named file.
func LoadFile(path string) (*Registry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	defer fh.Close()
	reg, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

//go:embed formats.yaml
var defaultTable []byte

var loadDefault = sync.OnceValue(func() *Registry {
	reg, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(err)
	}
	return reg
})

// Default returns the registry of the built-in format table.
func Default() *Registry { return loadDefault() }

// Lookup returns the named format, case-insensitively.
func (reg *Registry) Lookup(name string) (Format, bool) {
	if reg == nil {
		return Format{}, false
	}
	f, ok := reg.formats[strings.ToUpper(name)]
	return f, ok
}

// IsValid reports whether name is a known format.
func (reg *Registry) IsValid(name string) bool {
	_, ok := reg.Lookup(name)
	return ok
}

// Match reports whether value matches the named format.
func (reg *Registry) Match(value, name string) (bool, error) {
	f, ok := reg.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%q: %w", name, ErrInvalidFormat)
	}
	return f.Match(value), nil
}

// Token returns the number format token of the named format.
func (reg *Registry) Token(name string) (string, error) {
	f, ok := reg.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidFormat)
	}
	return f.Token, nil
}

// Names returns the sorted format names.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.formats))
	for k := range reg.formats {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
