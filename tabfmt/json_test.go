// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRowJSONKeyOrder(t *testing.T) {
	r := row("zeta", i(1), "alpha", f(2), "mid", s("x"), "none", n)
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"zeta":1,"alpha":2.0,"mid":"x","none":null}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var back Row
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r, back, cmpOpts...); diff != "" {
		t.Errorf("Unmarshal mismatch (-want +got):\n%s", diff)
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    Value
		wantErr bool
	}{
		{"null", n, false},
		{"10", i(10), false},
		{"-3", i(-3), false},
		{"10.0", f(10), false},
		{"1e3", f(1000), false},
		{"99999999999999999999", f(1e20), false},
		{`"12.5"`, s("12.5"), false},
		{`""`, s(""), false},
		{"true", n, true},
		{"[1]", n, true},
		{`{"a":1}`, n, true},
	} {
		var got Value
		err := json.Unmarshal([]byte(test.in), &got)
		if (err != nil) != test.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if err == nil && got != test.want {
			t.Errorf("Unmarshal(%s) = %v (%v), want %v (%v)", test.in, got, got.Kind(), test.want, test.want.Kind())
		}
	}
}

func TestReportJSON(t *testing.T) {
	rep := Parse(nanobenchSample)
	var buf bytes.Buffer
	if err := Encode(&buf, rep); err != nil {
		t.Fatal(err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rep, back, cmpOpts...); diff != "" {
		t.Errorf("decoded report differs (-want +got):\n%s", diff)
	}
}

func TestReportJSONEmptyCollections(t *testing.T) {
	got, err := json.Marshal(&Report{Tables: []*Table{{Title: "t"}}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"metadata":{},"tables":[{"title":"t","columns":[],"rows":[]}],"warnings":[]}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestDecodeForeignJSON(t *testing.T) {
	// Reports written by other tools may omit collections and use
	// any key order.
	const in = `{"tables": [{"rows": [{"name": "for loop", "ns/op": 10, "relative": 100.0}], "title": "Map"}]}`
	rep, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := &Report{
		Metadata: map[string]string{},
		Tables: []*Table{{
			Title: "Map",
			Rows:  []Row{row("name", s("for loop"), "ns/op", i(10), "relative", f(100))},
		}},
	}
	if diff := cmp.Diff(want, rep, cmpOpts...); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	if _, err := Decode(strings.NewReader(`{"tables": [{"rows": [{"x": true}]}]}`)); err == nil {
		t.Errorf("Decode accepted a boolean cell")
	}
}
