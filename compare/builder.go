// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare cross-joins benchmark Reports from many runs into a
// single comparison Matrix.
//
// Each row of a Matrix identifies one measurement by benchmark name,
// table title, and row name, and holds one Cell per run. A run that
// did not produce the measurement still has a Cell, marked as having
// no data, so every row is aligned with the Matrix's runs.
package compare

import (
	"slices"

	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
)

// Metric and relative column names, in order of preference.
var (
	MetricColumns   = []string{"ns/op", "ns"}
	RelativeColumns = []string{"relative", "relative_pct"}
)

// A Source is a collection of Reports indexed by benchmark and run,
// such as a *tabload.Set.
type Source interface {
	Benchmarks() []string
	Runs(bench string) []runorder.Key
	Report(bench string, key runorder.Key) *tabfmt.Report
}

// A Builder collects Reports into a Matrix.
type Builder struct {
	policy runorder.Policy

	// reports maps from benchmark name to run to report.
	reports map[string]map[runorder.Key]*tabfmt.Report
}

// NewBuilder returns a Builder that orders runs by policy. If policy
// is nil, it uses runorder.Default().
func NewBuilder(policy runorder.Policy) *Builder {
	if policy == nil {
		policy = runorder.Default()
	}
	return &Builder{
		policy:  policy,
		reports: make(map[string]map[runorder.Key]*tabfmt.Report),
	}
}

// Add adds the report of benchmark bench from run key. Adding a second
// report for the same benchmark and run replaces the first.
func (b *Builder) Add(bench string, key runorder.Key, r *tabfmt.Report) {
	runs := b.reports[bench]
	if runs == nil {
		runs = make(map[runorder.Key]*tabfmt.Report)
		b.reports[bench] = runs
	}
	runs[key] = r
}

// AddSet adds every report in src.
func (b *Builder) AddSet(src Source) {
	for _, bench := range src.Benchmarks() {
		for _, key := range src.Runs(bench) {
			if r := src.Report(bench, key); r != nil {
				b.Add(bench, key, r)
			}
		}
	}
}

// Matrix builds the comparison Matrix of everything added so far.
func (b *Builder) Matrix() *Matrix {
	m := new(Matrix)

	seen := make(map[runorder.Key]bool)
	var benches []string
	for bench, runs := range b.reports {
		benches = append(benches, bench)
		for key := range runs {
			if !seen[key] {
				seen[key] = true
				m.Runs = append(m.Runs, key)
			}
		}
	}
	runorder.Sort(m.Runs, b.policy)
	slices.Sort(benches)

	for _, bench := range benches {
		runs := b.reports[bench]
		// This benchmark's reports, in run order.
		var reps []*tabfmt.Report
		for _, key := range m.Runs {
			if r := runs[key]; r != nil {
				reps = append(reps, r)
			}
		}
		for _, title := range titles(reps) {
			for _, name := range rowNames(reps, title) {
				row := &Row{Bench: bench, Table: title, Name: name, Cells: make([]Cell, len(m.Runs))}
				for i, key := range m.Runs {
					row.Cells[i] = lookup(runs[key], title, name)
				}
				m.Rows = append(m.Rows, row)
			}
		}
	}
	return m
}

// titles returns the distinct table titles of reps in discovery order.
func titles(reps []*tabfmt.Report) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range reps {
		for _, t := range r.Tables {
			if !seen[t.Title] {
				seen[t.Title] = true
				out = append(out, t.Title)
			}
		}
	}
	return out
}

// rowNames returns the distinct names of rows in tables titled title.
// The first report's rows come first, followed by rows that only
// later reports have.
func rowNames(reps []*tabfmt.Report, title string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range reps {
		for _, t := range r.Tables {
			if t.Title != title {
				continue
			}
			for _, row := range t.Rows {
				name, ok := row.Name()
				if !ok || seen[name] {
					continue
				}
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func lookup(r *tabfmt.Report, title, name string) Cell {
	if r == nil {
		return Cell{}
	}
	row, ok := r.FindRow(title, name)
	if !ok {
		return Cell{}
	}
	c := Cell{Found: true}
	c.Metric, _ = row.Lookup(MetricColumns...)
	c.Relative, _ = row.Lookup(RelativeColumns...)
	return c
}
