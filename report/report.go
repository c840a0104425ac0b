// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders comparison matrices as Markdown, CSV, JSON,
// and HTML.
package report

import (
	"fmt"

	"github.com/poetlib/tabstat/compare"
	"github.com/poetlib/tabstat/tabfmt"
)

// Options controls the human-readable formats.
type Options struct {
	// Geomean adds a summary row to each group giving the
	// geometric mean of each run's metrics.
	Geomean bool
}

// FormatCell formats c for display: "<metric> (<relative>%)" if c has
// both values, "<metric>" if it only has a metric, and "-" otherwise.
func FormatCell(c compare.Cell) string {
	if !c.Found || blank(c.Metric) {
		return "-"
	}
	if blank(c.Relative) {
		return c.Metric.String()
	}
	return fmt.Sprintf("%s (%s%%)", c.Metric, c.Relative)
}

// blank reports whether v is Null or the empty String.
func blank(v tabfmt.Value) bool {
	return v.IsNull() || v == tabfmt.StringValue("")
}

// formatGeomean formats a geometric mean summary value.
func formatGeomean(v tabfmt.Value) string {
	x, ok := v.Number()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", x)
}

// runNames returns the display names of m's runs.
func runNames(m *compare.Matrix) []string {
	out := make([]string, len(m.Runs))
	for i, run := range m.Runs {
		out[i] = run.String()
	}
	return out
}
