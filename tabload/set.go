// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabload

import (
	"slices"
	"strings"

	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
)

// A Set holds the Reports of a results tree, indexed by benchmark name
// and run, along with the diagnostics of any files that could not be
// loaded.
type Set struct {
	// reports maps from benchmark name to run to report.
	reports map[string]map[runorder.Key]*tabfmt.Report
	n       int
	diags   []*Diagnostic
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{reports: make(map[string]map[runorder.Key]*tabfmt.Report)}
}

// Add records r as the report of benchmark bench from run key,
// replacing any earlier report for the same benchmark and run.
func (s *Set) Add(bench string, key runorder.Key, r *tabfmt.Report) {
	runs := s.reports[bench]
	if runs == nil {
		runs = make(map[runorder.Key]*tabfmt.Report)
		s.reports[bench] = runs
	}
	if _, ok := runs[key]; !ok {
		s.n++
	}
	runs[key] = r
}

// Len returns the number of reports in s.
func (s *Set) Len() int { return s.n }

// Benchmarks returns the benchmark names in s in ascending order.
func (s *Set) Benchmarks() []string {
	out := make([]string, 0, len(s.reports))
	for bench := range s.reports {
		out = append(out, bench)
	}
	slices.Sort(out)
	return out
}

// Runs returns the runs that reported benchmark bench, ordered by
// compiler, then variant.
func (s *Set) Runs(bench string) []runorder.Key {
	var out []runorder.Key
	for key := range s.reports[bench] {
		out = append(out, key)
	}
	slices.SortFunc(out, func(a, b runorder.Key) int {
		if c := strings.Compare(a.Compiler, b.Compiler); c != 0 {
			return c
		}
		return strings.Compare(a.Variant, b.Variant)
	})
	return out
}

// Report returns the report of benchmark bench from run key, or nil.
func (s *Set) Report(bench string, key runorder.Key) *tabfmt.Report {
	return s.reports[bench][key]
}

// Diagnostics returns the files that were skipped because they could
// not be read or decoded, in path order.
func (s *Set) Diagnostics() []*Diagnostic {
	return s.diags
}
