// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/poetlib/tabstat/tabfmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) parseCmd() *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Convert a text report to JSON",
		Long:  "Parse reads one text report, or standard input if file is omitted or -, and writes it as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name := cmd.InOrStdin(), "<stdin>"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in, name = f, args[0]
			}

			rep, err := tabfmt.NewReader(in, name).Read()
			if err != nil {
				return err
			}
			a.log.Debug("parsed report",
				zap.String("path", name),
				zap.Int("tables", len(rep.Tables)),
				zap.Int("warnings", len(rep.Warnings)))

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				return tabfmt.Encode(cmd.OutOrStdout(), rep)
			}
			err = writeFile(out, func(w io.Writer) error {
				return tabfmt.Encode(w, rep)
			})
			if err != nil {
				return err
			}
			a.success(cmd, "Wrote %s (%d tables)", out, len(rep.Tables))
			return nil
		},
	}
	parseCmd.Flags().StringP("output", "o", "", "write JSON to `file` instead of standard output")
	return parseCmd
}
