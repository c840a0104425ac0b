// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/poetlib/tabstat/asmscan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) asmCmd() *cobra.Command {
	asmCmd := &cobra.Command{
		Use:   "asm",
		Short: "Summarize disassembly dumps",
		Long: `Asm counts vector registers and calls in every
<results-root>/<compiler>/<variant>/asm/<bench>.asm file and writes a
Markdown summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := asmscan.Scan(cmd.Context(), a.resultsRoot(), a.log)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.NeedsVectorWarning() {
					a.log.Warn("probe not vectorized",
						zap.String("run", r.Key.String()),
						zap.String("bench", r.Bench))
				}
			}

			out := a.summaryPath("asm.output", "asm_analysis.md")
			err = writeFile(out, func(w io.Writer) error {
				return asmscan.WriteMarkdown(w, results)
			})
			if err != nil {
				return err
			}
			a.success(cmd, "Wrote %s (%d files)", out, len(results))
			return nil
		},
	}
	asmCmd.Flags().String("output", "", "Markdown output `file` (default <results-root>/summary/asm_analysis.md)")
	a.bind(asmCmd.Flags(), "asm.output", "output")
	return asmCmd
}
