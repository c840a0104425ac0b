// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poetlib/tabstat/compare"
	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
)

var (
	gcc13   = runorder.Key{Compiler: "gcc-13", Variant: "default"}
	clang19 = runorder.Key{Compiler: "clang-19", Variant: "default"}
)

func testMatrix() *compare.Matrix {
	b := compare.NewBuilder(nil)
	b.Add("map_bench", gcc13, tabfmt.Parse("| ns/op | relative | Map |\n| 10 | 100.0% | for loop |\n| 40 | 25.0% | transform <T> |\n"))
	b.Add("map_bench", clang19, tabfmt.Parse("| ns/op | Map |\n| 12.5 | for loop |\n"))
	return b.Matrix()
}

func TestFormatCell(t *testing.T) {
	for _, test := range []struct {
		c    compare.Cell
		want string
	}{
		{compare.Cell{}, "-"},
		{compare.Cell{Found: true}, "-"},
		{compare.Cell{Found: true, Metric: tabfmt.IntValue(10)}, "10"},
		{compare.Cell{Found: true, Metric: tabfmt.FloatValue(10), Relative: tabfmt.FloatValue(100)}, "10.0 (100.0%)"},
		{compare.Cell{Found: true, Metric: tabfmt.StringValue(""), Relative: tabfmt.IntValue(1)}, "-"},
		{compare.Cell{Found: true, Metric: tabfmt.StringValue("n/a")}, "n/a"},
		{compare.Cell{Found: true, Relative: tabfmt.IntValue(5)}, "-"},
	} {
		if got := FormatCell(test.c); got != test.want {
			t.Errorf("FormatCell(%+v) = %q, want %q", test.c, got, test.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, testMatrix(), Options{Geomean: true}); err != nil {
		t.Fatal(err)
	}
	want := `# Benchmark Comparison

*Generated from 2 compiler/variant combinations*

## map_bench / Map

| Benchmark | gcc-13 default | clang-19 default |
|:----------|--------:|--------:|
| for loop | 10 (100.0%) | 12.5 |
| transform <T> | 40 (25.0%) | - |
| geomean | 20.00 | 12.50 |

`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, compare.NewBuilder(nil).Matrix(), Options{}); err != nil {
		t.Fatal(err)
	}
	want := "# Benchmark Comparison\n\n*Generated from 0 compiler/variant combinations*\n\n"
	if buf.String() != want {
		t.Errorf("Markdown = %q, want %q", buf.String(), want)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, testMatrix()); err != nil {
		t.Fatal(err)
	}
	want := `bench,table_title,name,gcc-13 default_nsop,gcc-13 default_rel,clang-19 default_nsop,clang-19 default_rel
map_bench,Map,for loop,10,100.0,12.5,
map_bench,Map,transform <T>,40,25.0,,
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testMatrix()); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Columns []string
		Rows    []map[string]any
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if want := []string{"gcc-13 default", "clang-19 default"}; !cmp.Equal(got.Columns, want) {
		t.Errorf("columns = %v, want %v", got.Columns, want)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(got.Rows))
	}
	// The second row has no data for clang-19.
	if v := got.Rows[1]["clang-19 default_nsop"]; v != "" {
		t.Errorf("no-data value = %#v, want \"\"", v)
	}
	// The first row has clang-19 data but no relative column.
	if v, ok := got.Rows[0]["clang-19 default_rel"]; !ok || v != "" {
		t.Errorf("missing relative = %#v, %v, want \"\"", v, ok)
	}
	// Keys keep their order.
	s := buf.String()
	if i, j := strings.Index(s, `"gcc-13 default_nsop"`), strings.Index(s, `"clang-19 default_nsop"`); i < 0 || j < i {
		t.Errorf("run keys out of order:\n%s", s)
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, testMatrix(), Options{Geomean: true}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"<h2>map_bench / Map</h2>",
		"<th>Benchmark<th>gcc-13 default<th>clang-19 default",
		"<tr><td>for loop<td>10 (100.0%)<td>12.5",
		"<td>transform &lt;T&gt;<td>",
		"<td>geomean<td>20.00<td>12.50",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<T>") {
		t.Errorf("HTML contains unescaped row name:\n%s", got)
	}
}
