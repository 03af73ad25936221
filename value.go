// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind is the kind of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a cell value: null, string, number or boolean.
// The zero Value is null.
type Value struct {
	s    string
	f    float64
	kind Kind
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }

// Int returns a numeric value.
func Int(i int64) Value { return Number(float64(i)) }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// Float returns the numeric payload.
func (v Value) Float() float64 { return v.f }

// Boolean returns the boolean payload.
func (v Value) Boolean() bool { return v.b }

// String returns the canonical rendering formats are matched against.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Any returns the payload as string, float64, bool or nil.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.f
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// ValueOf converts a Go value to a Value.
//
// Zero times and invalid sql.Null* values are null.
// Dates without clock part are rendered as 2006-01-02,
// others as 2006-01-02 15:04:05.
func ValueOf(x any) (Value, error) {
	if vr, ok := x.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			x = vv
		}
	}
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case []byte:
		return String(string(x)), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	case time.Time:
		return timeValue(x), nil
	case sql.NullTime:
		if !x.Valid {
			return Null(), nil
		}
		return timeValue(x.Time), nil
	case sql.NullString:
		if !x.Valid {
			return Null(), nil
		}
		return String(x.String), nil
	case sql.NullInt64:
		if !x.Valid {
			return Null(), nil
		}
		return Int(x.Int64), nil
	case sql.NullFloat64:
		if !x.Valid {
			return Null(), nil
		}
		return finite(x.Float64)
	case sql.NullBool:
		if !x.Valid {
			return Null(), nil
		}
		return Bool(x.Bool), nil
	case fmt.Stringer:
		return String(x.String()), nil
	}
	return Null(), fmt.Errorf("%T: unsupported value type", x)
}

func finite(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null(), fmt.Errorf("%v: not a finite number", f)
	}
	return Number(f), nil
}

// Values converts each element with ValueOf.
func Values(xs ...any) ([]Value, error) {
	vs := make([]Value, len(xs))
	for i, x := range xs {
		var err error
		if vs[i], err = ValueOf(x); err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
	}
	return vs, nil
}

func timeValue(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return String(t.Format(time.DateOnly))
	}
	return String(t.Format(time.DateTime))
}
