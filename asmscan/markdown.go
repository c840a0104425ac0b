// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asmscan

import (
	"bytes"
	"fmt"
	"io"
)

// WriteMarkdown writes a Markdown report of results to w: one section
// per file followed by a summary table.
func WriteMarkdown(w io.Writer, results []*Result) error {
	var buf bytes.Buffer
	if len(results) == 0 {
		buf.WriteString("# ASM Analysis\n\nNo assembly files found.\n")
		_, err := w.Write(buf.Bytes())
		return err
	}

	buf.WriteString("# Assembly Analysis\n\n")
	for _, r := range results {
		width := r.Width()
		if width != "scalar" {
			width += "-bit"
		}
		fmt.Fprintf(&buf, "## %s / %s\n\n", r.Key, r.Bench)
		fmt.Fprintf(&buf, "- Vector width: **%s**\n", width)
		fmt.Fprintf(&buf, "- Register usage: zmm=%d, ymm=%d, xmm=%d\n", r.ZMM, r.YMM, r.XMM)
		fmt.Fprintf(&buf, "- Call instructions: %d\n", r.Calls)
		if r.NeedsVectorWarning() {
			buf.WriteString("- **WARNING: saxpy probe may not be vectorized**\n")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Summary\n\n")
	buf.WriteString("| Compiler | Variant | Bench | Vec Width | Calls |\n")
	buf.WriteString("|:---------|:--------|:------|:----------|------:|\n")
	for _, r := range results {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %d |\n", r.Key.Compiler, r.Key.Variant, r.Bench, r.Width(), r.Calls)
	}
	buf.WriteString("\n")

	_, err := w.Write(buf.Bytes())
	return err
}
