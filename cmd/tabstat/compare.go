// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/poetlib/tabstat/compare"
	"github.com/poetlib/tabstat/internal/sqlexport"
	"github.com/poetlib/tabstat/report"

	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/poetlib/tabstat/internal/sqlexport/sqlite3"
)

func (a *app) compareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare results across compiler and variant runs",
		Long: `Compare loads every report under the results root, aligns their rows
across runs, and writes the comparison as Markdown and CSV. JSON, HTML
and a SQL database are written only when requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			m, err := a.matrix(ctx, cmd)
			if err != nil || m == nil {
				return err
			}

			opts := report.Options{Geomean: a.v.GetBool("geomean")}
			outputs := []struct {
				path  string
				write func(io.Writer) error
			}{
				{a.summaryPath("output-md", "bench_comparison.md"), func(w io.Writer) error {
					return report.Markdown(w, m, opts)
				}},
				{a.summaryPath("output-csv", "bench_comparison.csv"), func(w io.Writer) error {
					return report.CSV(w, m)
				}},
				{a.v.GetString("output-json"), func(w io.Writer) error {
					return report.JSON(w, m)
				}},
				{a.v.GetString("output-html"), func(w io.Writer) error {
					return report.HTML(w, m, opts)
				}},
			}
			for _, out := range outputs {
				if out.path == "" {
					continue
				}
				if err := writeFile(out.path, out.write); err != nil {
					return err
				}
				a.success(cmd, "Wrote %s (%d rows)", out.path, len(m.Rows))
			}

			if driver := a.v.GetString("sql-driver"); driver != "" {
				if err := exportSQL(ctx, driver, a.v.GetString("sql-dsn"), m); err != nil {
					return err
				}
				a.success(cmd, "Exported %d rows to %s", len(m.Rows), driver)
			}
			return nil
		},
	}

	f := compareCmd.Flags()
	f.String("output-md", "", "Markdown output `file` (default <results-root>/summary/bench_comparison.md)")
	f.String("output-csv", "", "CSV output `file` (default <results-root>/summary/bench_comparison.csv)")
	f.String("output-json", "", "JSON output `file`")
	f.String("output-html", "", "HTML output `file`")
	f.String("sql-driver", "", "export to a database using `driver` (sqlite3 or mysql)")
	f.String("sql-dsn", "", "data source `name` of the export database")
	f.Bool("geomean", false, "add a geometric mean row to each table")

	for _, name := range []string{"output-md", "output-csv", "output-json", "output-html", "sql-driver", "sql-dsn", "geomean"} {
		a.bind(f, name, name)
	}

	return compareCmd
}

// exportSQL replaces the contents of the database at dsn with m.
func exportSQL(ctx context.Context, driver, dsn string, m *compare.Matrix) error {
	db, err := sqlexport.OpenSQL(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Export(ctx, m); err != nil {
		db.Close()
		return fmt.Errorf("exporting to %s: %w", driver, err)
	}
	return db.Close()
}
