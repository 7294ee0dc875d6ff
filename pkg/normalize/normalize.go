// Package normalize converts raw values extracted from Argo NetCDF
// files into clean scalar types. Source files encode the same logical
// field in many shapes: byte strings with trailing blanks, bare scalars
// or length-1 arrays, NaN or fill-value sentinels for missing numbers,
// and dates either as 14-digit strings or as day offsets from the Argo
// epoch.
//
// Every function here is total: it never panics and never returns an
// error. A value that cannot be normalized becomes an invalid
// sql.Null*, which downstream code writes as SQL NULL. Concentrating
// the tolerance here keeps the extractors declarative.
package normalize

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// juldEpoch is the Argo reference time: JULD fields count days from it.
var juldEpoch = time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)

// juldFill marks the threshold for the 999999 fill value used in JULD
// and date fields that were never set.
const juldFill = 999990.0

// argoDateLayout is the native 14-digit encoding of metadata dates.
const argoDateLayout = "20060102150405"

// dateLayouts are tried in order for date strings that are not in the
// native 14-digit form.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Text decodes byte strings as UTF-8, unwraps single-element arrays
// recursively, trims whitespace and NUL padding, and stringifies
// anything else. Empty-after-trim and nil yield absence.
func Text(v any) sql.NullString {
	switch val := v.(type) {
	case nil:
		return sql.NullString{}
	case string:
		return textFromString(val)
	case []byte:
		return textFromString(string(val))
	}

	if inner, ok := unwrap(v); ok {
		return Text(inner)
	}

	return textFromString(fmt.Sprint(v))
}

// Real coerces a value to float64. NaN, fill sentinels of missing
// values and nil yield absence; so does any coercion failure.
func Real(v any) sql.NullFloat64 {
	switch val := v.(type) {
	case nil:
		return sql.NullFloat64{}
	case string:
		return realFromString(val)
	case []byte:
		return realFromString(string(val))
	}

	if inner, ok := unwrap(v); ok {
		return Real(inner)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return sql.NullFloat64{}
		}
		return sql.NullFloat64{Float64: f, Valid: true}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return sql.NullFloat64{Float64: float64(rv.Int()), Valid: true}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return sql.NullFloat64{Float64: float64(rv.Uint()), Valid: true}
	}

	return sql.NullFloat64{}
}

// Integer coerces through a float-then-truncate path, so that
// numeric-looking strings like "123.0" still become 123. Failure
// yields absence.
func Integer(v any) sql.NullInt64 {
	f := Real(v)
	if !f.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f.Float64), Valid: true}
}

// Time parses timestamps in the shapes Argo files use. A textual value
// of exactly 14 digits is read as YYYYMMDDHHMMSS; other strings go
// through generic layouts. A numeric value is a day offset from the
// 1950-01-01 Argo epoch (the JULD encoding); NaN and the 999999 fill
// yield absence. A result equal to the zero time is treated as the
// undefined-time sentinel, never as a concrete date.
func Time(v any) sql.NullTime {
	switch val := v.(type) {
	case nil:
		return sql.NullTime{}
	case time.Time:
		return timeValue(val)
	case string:
		return timeFromString(val)
	case []byte:
		return timeFromString(string(val))
	}

	if inner, ok := unwrap(v); ok {
		return Time(inner)
	}

	f := Real(v)
	if !f.Valid || f.Float64 >= juldFill {
		return sql.NullTime{}
	}
	d := time.Duration(f.Float64 * float64(24*time.Hour))
	return timeValue(juldEpoch.Add(d))
}

func textFromString(s string) sql.NullString {
	s = strings.Trim(s, " \t\r\n\x00")
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func realFromString(s string) sql.NullFloat64 {
	s = strings.Trim(s, " \t\r\n\x00")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func timeFromString(s string) sql.NullTime {
	s = strings.Trim(s, " \t\r\n\x00")
	if s == "" {
		return sql.NullTime{}
	}

	if len(s) == 14 && isDigits(s) {
		t, err := time.Parse(argoDateLayout, s)
		if err != nil {
			return sql.NullTime{}
		}
		return timeValue(t)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timeValue(t)
		}
	}
	return sql.NullTime{}
}

func timeValue(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unwrap reduces a rank-1 value to its leading element. The source
// format stores many scalar fields as length-1 arrays; longer arrays
// also yield their first element, matching the per-float fields that
// repeat the same value once per profile. Byte slices are strings, not
// arrays, and are left alone.
func unwrap(v any) (any, bool) {
	if _, isBytes := v.([]byte); isBytes {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Len() == 0 {
		return nil, true
	}
	return rv.Index(0).Interface(), true
}
