// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/poetlib/tabstat/compare"
)

// Markdown writes m to w as a Markdown document with one table per
// benchmark and table title.
func Markdown(w io.Writer, m *compare.Matrix, opts Options) error {
	var buf bytes.Buffer
	runs := runNames(m)

	buf.WriteString("# Benchmark Comparison\n\n")
	fmt.Fprintf(&buf, "*Generated from %d compiler/variant combinations*\n\n", len(runs))

	for _, g := range m.Groups() {
		fmt.Fprintf(&buf, "## %s / %s\n\n", g.Bench, g.Table)

		buf.WriteString("| Benchmark |")
		for _, run := range runs {
			fmt.Fprintf(&buf, " %s |", run)
		}
		buf.WriteString("\n|:----------|")
		buf.WriteString(strings.Repeat("--------:|", len(runs)))
		buf.WriteString("\n")

		for _, row := range g.Rows {
			fmt.Fprintf(&buf, "| %s |", row.Name)
			for _, c := range row.Cells {
				fmt.Fprintf(&buf, " %s |", FormatCell(c))
			}
			buf.WriteString("\n")
		}
		if opts.Geomean {
			buf.WriteString("| geomean |")
			for _, v := range g.Geomean(len(runs)) {
				fmt.Fprintf(&buf, " %s |", formatGeomean(v))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}
