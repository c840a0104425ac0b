// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Kind is the type of a cell Value.
type Kind uint8

const (
	// Null marks a cell that is absent, for example a trailing
	// cell missing from a data row.
	Null Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Value is a single typed table cell. The zero Value is Null.
//
// Values are comparable with ==.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntValue returns an Int Value.
func IntValue(v int64) Value { return Value{kind: Int, i: v} }

// FloatValue returns a Float Value.
func FloatValue(v float64) Value { return Value{kind: Float, f: v} }

// StringValue returns a String Value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the missing-cell marker.
func (v Value) IsNull() bool { return v.kind == Null }

// Int returns v's integer value and whether v is an Int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == Int }

// Float returns v's float value and whether v is a Float.
func (v Value) Float() (float64, bool) { return v.f, v.kind == Float }

// Str returns v's string value and whether v is a String.
func (v Value) Str() (string, bool) { return v.s, v.kind == String }

// Number returns v as a float64 if v is an Int or a Float.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Int:
		return float64(v.i), true
	case Float:
		return v.f, true
	}
	return 0, false
}

// String formats v for display. Null formats as "", integers
// without a decimal point, and floats always with one, so 10.0
// prints as "10.0" and 10 prints as "10".
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return formatFloat(v.f)
	case String:
		return v.s
	}
	return ""
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".en") {
		s += ".0"
	}
	return s
}

// Coerce converts a raw text cell into a typed Value.
//
// Thousands separators and percent signs are stripped before parsing.
// If what remains contains a '.', it is parsed as a Float, otherwise
// as an Int. Anything that is not purely numeric is returned as the
// trimmed original String. Integers that overflow int64 become Floats.
func Coerce(token string) Value {
	token = strings.TrimSpace(token)
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "%", "").Replace(token))
	if strings.Contains(cleaned, ".") {
		if isNumeric(cleaned, true) {
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return FloatValue(f)
			}
		}
		return StringValue(token)
	}
	if !isNumeric(cleaned, false) {
		return StringValue(token)
	}
	i, err := strconv.ParseInt(cleaned, 10, 64)
	if err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(token)
}

// isNumeric reports whether s is an optionally signed decimal number.
// With float set, s may also contain one '.' and an exponent.
func isNumeric(s string, float bool) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits, dot := 0, false
mantissa:
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			digits++
		case c == '.' && float && !dot:
			dot = true
		default:
			break mantissa
		}
	}
	if digits == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if !float || (s[i] != 'e' && s[i] != 'E') {
		return false
	}
	i++
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
