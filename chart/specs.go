// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"regexp"
)

// DefaultSpecs returns the standard charts of the POET benchmark
// suite.
func DefaultSpecs() []*Spec {
	specs := []*Spec{
		{
			Name:     "dynamic_for_speedup",
			Title:    "dynamic_for: multi-accumulator speedup",
			YLabel:   "Speedup vs for loop (1 acc)",
			Bench:    "dynamic_for_bench",
			Table:    regexp.MustCompile(`(?i)Multi-acc.*lane`),
			Baseline: regexp.MustCompile(`for loop \(1 acc\)`),
			Series: []Series{
				{Label: "for loop (1 acc)", Row: regexp.MustCompile(`for loop \(1 acc\)`)},
				{Label: "hand-unrolled", Row: regexp.MustCompile(`for loop \(optimal`)},
				{Label: "dynamic_for", Row: regexp.MustCompile(`dynamic_for`)},
			},
		},
	}
	for _, t := range []struct{ table, name string }{
		{"Map", "static_for_map"},
		{"Multi-acc", "static_for_multi_acc"},
	} {
		specs = append(specs, &Spec{
			Name:     t.name,
			Title:    "static_for: " + t.table,
			YLabel:   "Speedup vs for loop",
			Bench:    "static_for_bench",
			Table:    regexp.MustCompile(`(?i)` + t.table + `.*static_for`),
			Baseline: regexp.MustCompile(`^for loop$`),
			Series: []Series{
				{Label: "for loop", Row: regexp.MustCompile(`^for loop$`)},
				{Label: "static_for (tuned BS)", Row: regexp.MustCompile(`tuned BS`)},
				{Label: "static_for (default BS)", Row: regexp.MustCompile(`default BS`)},
			},
		})
	}

	dispatch := &Spec{
		Name:   "dispatch_optimization",
		Title:  "Compile-time specialization: dispatched N speedup over runtime N",
		YLabel: "Speedup vs runtime N",
		Bench:  "dispatch_optimization_bench",
	}
	for _, n := range []int{4, 8, 16, 32} {
		dispatch.Series = append(dispatch.Series, Series{
			Label:    fmt.Sprintf("N=%d", n),
			Baseline: both(fmt.Sprintf(`N=%d\b`, n), "runtime"),
			Row:      both(fmt.Sprintf(`N=%d\b`, n), "dispatched"),
		})
	}
	specs = append(specs, dispatch)

	specs = append(specs, &Spec{
		Name:   "cross_compiler_overview",
		Title:  "Cross-compiler: POET speedup over baseline",
		YLabel: "Speedup vs baseline",
		Series: []Series{
			{
				Label:    "dynamic_for",
				Bench:    "dynamic_for_bench",
				Table:    regexp.MustCompile(`(?i)Multi-acc.*lane`),
				Baseline: regexp.MustCompile(`for loop \(1 acc\)`),
				Row:      regexp.MustCompile(`dynamic_for`),
			},
			{
				Label:    "static_for",
				Bench:    "static_for_bench",
				Table:    regexp.MustCompile(`(?i)Multi-acc.*static_for`),
				Baseline: regexp.MustCompile(`^for loop$`),
				Row:      regexp.MustCompile(`tuned BS`),
			},
			{
				Label:    "dispatch (N=16)",
				Bench:    "dispatch_optimization_bench",
				Baseline: both(`N=16\b`, "runtime"),
				Row:      both(`N=16\b`, "dispatched"),
			},
		},
	})
	return specs
}

// both returns a regexp matching strings that contain matches of a
// and b in either order.
func both(a, b string) *regexp.Regexp {
	return regexp.MustCompile(`(` + a + `.*` + b + `)|(` + b + `.*` + a + `)`)
}
