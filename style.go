// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"regexp"
	"slices"
	"strings"
)

// Font style flags.
const (
	Bold          = "bold"
	Italic        = "italic"
	Underline     = "underline"
	Strikethrough = "strikethrough"
)

// Border sides.
const (
	BorderLeft   = "left"
	BorderRight  = "right"
	BorderTop    = "top"
	BorderBottom = "bottom"
)

// Some colors.
const (
	ColorBlack = "#000000"
	ColorWhite = "#FFFFFF"
	ColorRed   = "#FF0000"
	ColorGreen = "#00FF00"
	ColorBlue  = "#0000FF"
	ColorGray  = "#E6E6E6"
)

const MinFontSize, MaxFontSize = 1, 409

var (
	Fonts        = []string{"Arial", "Calibri", "Comic Sans MS", "Courier New", "Times New Roman", "Verdana"}
	FontStyles   = []string{Bold, Italic, Underline, Strikethrough}
	BorderSides  = []string{BorderLeft, BorderRight, BorderTop, BorderBottom}
	BorderStyles = []string{
		"thin", "medium", "thick", "dashDot", "dashDotDot", "dashed", "dotted",
		"double", "hair", "mediumDashDot", "mediumDashDotDot", "mediumDashed", "slantDashDot",
	}
	HorizontalAligns = []string{"general", "left", "right", "center", "justify"}
	VerticalAligns   = []string{"top", "center", "bottom", "distributed"}

	rColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Style is a set of display attributes for a cell, row, column or sheet.
//
// The zero Style sets nothing. Style is a value type: a Style stored
// in a Worksheet is a copy, later changes of the caller's Style do not
// affect it.
type Style struct {
	font, fontStyle, border, borderStyle, borderColor string
	color, fill, hAlign, vAlign                        string
	fontSize                                           int
	wrapText                                           bool
}

func (s *Style) SetFont(font string) error {
	if !slices.Contains(Fonts, font) {
		return fieldError(ErrInvalidStyleAttribute, "font", font)
	}
	s.font = font
	return nil
}

func (s *Style) SetFontSize(size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return fieldError(ErrInvalidStyleAttribute, "font-size", size)
	}
	s.fontSize = size
	return nil
}

// SetFontStyle sets one or more of Bold, Italic, Underline, Strikethrough.
func (s *Style) SetFontStyle(flags ...string) error {
	v, err := joinFlags("font-style", FontStyles, flags)
	if err != nil {
		return err
	}
	s.fontStyle = v
	return nil
}

// SetBorder sets the bordered sides.
func (s *Style) SetBorder(sides ...string) error {
	v, err := joinFlags("border", BorderSides, sides)
	if err != nil {
		return err
	}
	s.border = v
	return nil
}

func (s *Style) SetBorderStyle(style string) error {
	if !slices.Contains(BorderStyles, style) {
		return fieldError(ErrInvalidStyleAttribute, "border-style", style)
	}
	s.borderStyle = style
	return nil
}

func (s *Style) SetBorderColor(color string) error {
	if !rColor.MatchString(color) {
		return fieldError(ErrInvalidStyleAttribute, "border-color", color)
	}
	s.borderColor = color
	return nil
}

// SetColor sets the font color, as #RRGGBB.
func (s *Style) SetColor(color string) error {
	if !rColor.MatchString(color) {
		return fieldError(ErrInvalidStyleAttribute, "color", color)
	}
	s.color = color
	return nil
}

// SetFill sets the background color, as #RRGGBB.
func (s *Style) SetFill(color string) error {
	if !rColor.MatchString(color) {
		return fieldError(ErrInvalidStyleAttribute, "fill", color)
	}
	s.fill = color
	return nil
}

func (s *Style) SetHorizontalAlign(align string) error {
	if !slices.Contains(HorizontalAligns, align) {
		return fieldError(ErrInvalidStyleAttribute, "halign", align)
	}
	s.hAlign = align
	return nil
}

func (s *Style) SetVerticalAlign(align string) error {
	if !slices.Contains(VerticalAligns, align) {
		return fieldError(ErrInvalidStyleAttribute, "valign", align)
	}
	s.vAlign = align
	return nil
}

func (s *Style) SetTextWrap(wrap bool) error {
	s.wrapText = wrap
	return nil
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool { return s == Style{} }

// Map returns the set attributes only, keyed by
// font, font-size, font-style, border, border-style, border-color,
// color, fill, halign, valign and wrap_text.
func (s Style) Map() map[string]any {
	m := make(map[string]any)
	for k, v := range map[string]string{
		"font": s.font, "font-style": s.fontStyle,
		"border": s.border, "border-style": s.borderStyle, "border-color": s.borderColor,
		"color": s.color, "fill": s.fill,
		"halign": s.hAlign, "valign": s.vAlign,
	} {
		if v != "" {
			m[k] = v
		}
	}
	if s.fontSize != 0 {
		m["font-size"] = s.fontSize
	}
	if s.wrapText {
		m["wrap_text"] = true
	}
	return m
}

func joinFlags(attr string, domain, flags []string) (string, error) {
	if len(flags) == 0 {
		return "", fieldError(ErrInvalidStyleAttribute, attr, "")
	}
	seen := make([]string, 0, len(flags))
	for _, f := range flags {
		if !slices.Contains(domain, f) {
			return "", fieldError(ErrInvalidStyleAttribute, attr, f)
		}
		if !slices.Contains(seen, f) {
			seen = append(seen, f)
		}
	}
	return strings.Join(seen, ","), nil
}
