// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Value
	}{
		{"1,234", IntValue(1234)},
		{"12.50%", FloatValue(12.5)},
		{"100.0%", FloatValue(100)},
		{"n/a", StringValue("n/a")},
		{"-", StringValue("-")},
		{"", StringValue("")},
		{"   42  ", IntValue(42)},
		{"-17", IntValue(-17)},
		{"+3", IntValue(3)},
		{"0.5", FloatValue(0.5)},
		{".5", FloatValue(0.5)},
		{"5.", FloatValue(5)},
		{"1.5e3", FloatValue(1500)},
		{"1e3", StringValue("1e3")},
		{"1.2.3", StringValue("1.2.3")},
		{"12 ms", StringValue("12 ms")},
		{"`for loop`", StringValue("`for loop`")},
		{"0x10", StringValue("0x10")},
		{"100,000,000.00", FloatValue(1e8)},
		{"99999999999999999999", FloatValue(1e20)},
		{"%", StringValue("%")},
		{"inf", StringValue("inf")},
	} {
		got := Coerce(test.in)
		if got != test.want {
			t.Errorf("Coerce(%q) = %v (%v), want %v (%v)", test.in, got, got.Kind(), test.want, test.want.Kind())
		}
	}
}

func TestValueString(t *testing.T) {
	for _, test := range []struct {
		v    Value
		want string
	}{
		{Value{}, ""},
		{IntValue(10), "10"},
		{FloatValue(10), "10.0"},
		{FloatValue(12.5), "12.5"},
		{FloatValue(-0.25), "-0.25"},
		{FloatValue(1e20), "1e+20"},
		{FloatValue(1e-5), "1e-05"},
		{FloatValue(math.Inf(1)), "inf"},
		{FloatValue(math.NaN()), "nan"},
		{StringValue("x"), "x"},
	} {
		if got := test.v.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.v, got, test.want)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	if !(Value{}).IsNull() {
		t.Errorf("zero Value is not Null")
	}
	if n, ok := IntValue(3).Number(); !ok || n != 3 {
		t.Errorf("IntValue(3).Number() = %v, %v", n, ok)
	}
	if n, ok := FloatValue(2.5).Number(); !ok || n != 2.5 {
		t.Errorf("FloatValue(2.5).Number() = %v, %v", n, ok)
	}
	if _, ok := StringValue("3").Number(); ok {
		t.Errorf("StringValue is a Number")
	}
	if _, ok := (Value{}).Number(); ok {
		t.Errorf("Null is a Number")
	}
	if IntValue(0) == (Value{}) {
		t.Errorf("Int zero equals Null")
	}
	if StringValue("") == (Value{}) {
		t.Errorf("empty String equals Null")
	}
}
