// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sqlexport_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poetlib/tabstat/compare"
	. "github.com/poetlib/tabstat/internal/sqlexport"
	_ "github.com/poetlib/tabstat/internal/sqlexport/sqlite3"
	"github.com/poetlib/tabstat/runorder"
	"github.com/poetlib/tabstat/tabfmt"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMatrix() *compare.Matrix {
	b := compare.NewBuilder(nil)
	b.Add("map_bench", runorder.Key{Compiler: "gcc-13", Variant: "default"},
		tabfmt.Parse("Map\n| name | relative | ns/op |\n| for loop | 100.0% | 10 |\n| transform | 50% | n/a |\n"))
	b.Add("map_bench", runorder.Key{Compiler: "clang-19", Variant: "default"},
		tabfmt.Parse("Map\n| name | ns/op |\n| for loop | 12 |\n"))
	return b.Matrix()
}

type comparison struct {
	Name     string
	Compiler string
	Found    bool
	Metric   sql.NullFloat64
	Relative sql.NullFloat64
}

func comparisons(t *testing.T, db *DB) []comparison {
	t.Helper()
	rows, err := DBSQL(db).Query(`SELECT c.Name, c.Compiler, c.Found, c.Metric, c.Relative
		FROM Comparisons c JOIN Runs r ON c.Compiler = r.Compiler AND c.Variant = r.Variant
		ORDER BY c.Name, r.Position`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	var out []comparison
	for rows.Next() {
		var c comparison
		if err := rows.Scan(&c.Name, &c.Compiler, &c.Found, &c.Metric, &c.Relative); err != nil {
			t.Fatal(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func num(x float64) sql.NullFloat64 { return sql.NullFloat64{Float64: x, Valid: true} }

func TestExport(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	if err := db.Export(ctx, testMatrix()); err != nil {
		t.Fatal(err)
	}

	want := []comparison{
		{"for loop", "gcc-13", true, num(10), num(100)},
		{"for loop", "clang-19", true, num(12), sql.NullFloat64{}},
		{"transform", "gcc-13", true, sql.NullFloat64{}, num(50)},
		{"transform", "clang-19", false, sql.NullFloat64{}, sql.NullFloat64{}},
	}
	if diff := cmp.Diff(want, comparisons(t, db)); diff != "" {
		t.Errorf("Comparisons mismatch (-want +got):\n%s", diff)
	}

	// A second export replaces the first.
	if err := db.Export(ctx, testMatrix()); err != nil {
		t.Fatal(err)
	}
	var runs int
	if err := DBSQL(db).QueryRow("SELECT COUNT(*) FROM Runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 2 {
		t.Errorf("got %d runs after re-export, want 2", runs)
	}
	if got := comparisons(t, db); len(got) != len(want) {
		t.Errorf("got %d comparisons after re-export, want %d", len(got), len(want))
	}
}

func TestExportCanceled(t *testing.T) {
	db := newDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := db.Export(ctx, testMatrix()); err == nil {
		t.Errorf("Export with canceled context succeeded")
	}
}
