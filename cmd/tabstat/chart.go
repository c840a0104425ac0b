// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/poetlib/tabstat/chart"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) chartCmd() *cobra.Command {
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render SVG speedup charts",
		Long: `Chart loads the results tree and renders one SVG file per chart into
the output directory. Charts without data are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.matrix(cmd.Context(), cmd)
			if err != nil || m == nil {
				return err
			}

			dir := a.v.GetString("charts.output-dir")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			n := 0
			for _, s := range chart.DefaultSpecs() {
				// Render into memory so a chart without data leaves
				// no file behind.
				var buf bytes.Buffer
				if err := chart.Render(&buf, m, s); err != nil {
					if errors.Is(err, chart.ErrNoData) {
						a.log.Warn("skipping chart", zap.String("chart", s.Name), zap.Error(err))
						continue
					}
					return err
				}
				path := filepath.Join(dir, s.Name+".svg")
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return err
				}
				n++
			}
			if n == 0 {
				a.warn(cmd, "No charts had data")
				return nil
			}
			a.success(cmd, "Wrote %d chart(s) to %s", n, dir)
			return nil
		},
	}
	chartCmd.Flags().String("output-dir", filepath.Join("docs", "benchmarks"), "`directory` to write SVG charts to")
	a.bind(chartCmd.Flags(), "charts.output-dir", "output-dir")
	return chartCmd
}
