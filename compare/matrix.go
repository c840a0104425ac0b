// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"bytes"
	"encoding/json"

	"github.com/aclements/go-moremath/stats"
	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
)

// A Matrix is the cross-run comparison of a set of benchmark reports.
type Matrix struct {
	// Runs lists every run that contributed a report, in policy
	// order. Every Row has one Cell per run, in the same order.
	Runs []runorder.Key

	// Rows are ordered by benchmark name, then by the order in which
	// table titles and row names were discovered.
	Rows []*Row
}

// A Row is one measurement across all runs.
type Row struct {
	Bench string
	Table string
	Name  string
	Cells []Cell
}

// A Cell is one run's value for a Row.
//
// If Found is false, the run has no data for the row. Otherwise Metric
// and Relative hold the row's metric and relative values, either of
// which may be Null if the row lacks that column.
type Cell struct {
	Found    bool
	Metric   tabfmt.Value
	Relative tabfmt.Value
}

// A Group is a maximal run of consecutive Rows sharing a benchmark
// and table title.
type Group struct {
	Bench string
	Table string
	Rows  []*Row
}

// Groups splits m.Rows into Groups.
func (m *Matrix) Groups() []Group {
	var out []Group
	for _, row := range m.Rows {
		if n := len(out); n > 0 && out[n-1].Bench == row.Bench && out[n-1].Table == row.Table {
			out[n-1].Rows = append(out[n-1].Rows, row)
			continue
		}
		out = append(out, Group{Bench: row.Bench, Table: row.Table, Rows: []*Row{row}})
	}
	return out
}

// Geomean returns, for each of the nruns runs, the geometric mean of
// the group's positive numeric metrics in that run. A run with no
// such metric gets a Null Value.
func (g Group) Geomean(nruns int) []tabfmt.Value {
	out := make([]tabfmt.Value, nruns)
	for i := range out {
		var xs []float64
		for _, row := range g.Rows {
			if i >= len(row.Cells) || !row.Cells[i].Found {
				continue
			}
			if x, ok := row.Cells[i].Metric.Number(); ok && x > 0 {
				xs = append(xs, x)
			}
		}
		if len(xs) > 0 {
			out[i] = tabfmt.FloatValue(stats.GeoMean(xs))
		}
	}
	return out
}

// Flat key suffixes for a run's metric and relative values.
const (
	MetricSuffix   = "_nsop"
	RelativeSuffix = "_rel"
)

// FlatKeys returns the keys of every FlatRow of m, in order: "bench",
// "table_title", "name", then "<run>_nsop" and "<run>_rel" for each
// run.
func (m *Matrix) FlatKeys() []string {
	keys := []string{"bench", "table_title", "name"}
	for _, run := range m.Runs {
		keys = append(keys, run.String()+MetricSuffix, run.String()+RelativeSuffix)
	}
	return keys
}

// A FlatField is one key of a FlatRow.
type FlatField struct {
	Key   string
	Value tabfmt.Value
}

// A FlatRow is a Row flattened into ordered key/value pairs. Every
// value is a number or a string. A run with no data, or whose row
// lacks the column, has the empty String.
type FlatRow []FlatField

// Get returns the value of key in r.
func (r FlatRow) Get(key string) (tabfmt.Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return tabfmt.Value{}, false
}

// MarshalJSON encodes r as an object with keys in order.
func (r FlatRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var noData = tabfmt.StringValue("")

// Flatten returns m's rows as FlatRows keyed by FlatKeys.
func (m *Matrix) Flatten() []FlatRow {
	keys := m.FlatKeys()
	out := make([]FlatRow, 0, len(m.Rows))
	for _, row := range m.Rows {
		fr := make(FlatRow, 0, len(keys))
		fr = append(fr,
			FlatField{keys[0], tabfmt.StringValue(row.Bench)},
			FlatField{keys[1], tabfmt.StringValue(row.Table)},
			FlatField{keys[2], tabfmt.StringValue(row.Name)},
		)
		for i, c := range row.Cells {
			metric, rel := noData, noData
			if c.Found && !c.Metric.IsNull() {
				metric = c.Metric
			}
			if c.Found && !c.Relative.IsNull() {
				rel = c.Relative
			}
			fr = append(fr,
				FlatField{keys[3+2*i], metric},
				FlatField{keys[4+2*i], rel},
			)
		}
		out = append(out, fr)
	}
	return out
}
