// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package validsheet_test

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/UNO-SOFT/validsheet"
)

func TestValueString(t *testing.T) {
	for _, tc := range []struct {
		Value validsheet.Value
		Kind  validsheet.Kind
		Want  string
	}{
		{validsheet.Null(), validsheet.KindNull, ""},
		{validsheet.Value{}, validsheet.KindNull, ""},
		{validsheet.String("x"), validsheet.KindString, "x"},
		{validsheet.Number(3.14), validsheet.KindNumber, "3.14"},
		{validsheet.Int(101), validsheet.KindNumber, "101"},
		{validsheet.Number(-0.5), validsheet.KindNumber, "-0.5"},
		{validsheet.Bool(true), validsheet.KindBool, "true"},
	} {
		if tc.Value.Kind() != tc.Kind {
			t.Errorf("%v: kind %s, wanted %s", tc.Value, tc.Value.Kind(), tc.Kind)
		}
		if got := tc.Value.String(); got != tc.Want {
			t.Errorf("got %q, wanted %q", got, tc.Want)
		}
	}
}

type stringer struct{}

func (stringer) String() string { return "str" }

func TestValueOf(t *testing.T) {
	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		In   any
		Want validsheet.Value
	}{
		{nil, validsheet.Null()},
		{"s", validsheet.String("s")},
		{[]byte("b"), validsheet.String("b")},
		{int8(-3), validsheet.Int(-3)},
		{uint64(7), validsheet.Number(7)},
		{float32(0.5), validsheet.Number(0.5)},
		{true, validsheet.Bool(true)},
		{day, validsheet.String("2024-02-29")},
		{day.Add(90 * time.Minute), validsheet.String("2024-02-29 01:30:00")},
		{time.Time{}, validsheet.Null()},
		{sql.NullString{}, validsheet.Null()},
		{sql.NullString{String: "v", Valid: true}, validsheet.String("v")},
		{sql.NullInt64{Int64: 9, Valid: true}, validsheet.Int(9)},
		{sql.NullFloat64{Float64: 1.5, Valid: true}, validsheet.Number(1.5)},
		{sql.NullTime{}, validsheet.Null()},
		{sql.NullTime{Time: day, Valid: true}, validsheet.String("2024-02-29")},
		{stringer{}, validsheet.String("str")},
		{validsheet.Bool(false), validsheet.Bool(false)},
	} {
		got, err := validsheet.ValueOf(tc.In)
		if err != nil {
			t.Errorf("%#v: %+v", tc.In, err)
			continue
		}
		if got != tc.Want {
			t.Errorf("%#v: got %#v, wanted %#v", tc.In, got, tc.Want)
		}
	}

	for _, bad := range []any{
		math.NaN(), math.Inf(1),
		float32(math.NaN()), float32(math.Inf(-1)),
		sql.NullFloat64{Float64: math.Inf(1), Valid: true},
		struct{}{},
	} {
		if _, err := validsheet.ValueOf(bad); err == nil {
			t.Errorf("%#v: wanted error", bad)
		}
	}
	if _, err := validsheet.Values("a", 1, struct{}{}); err == nil {
		t.Error("Values: wanted error")
	}
}
