// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlexport writes comparison matrices into a SQL database.
//
// Each export replaces the previous contents of the Runs and
// Comparisons tables. The database is an output sink; nothing is read
// back from it.
package sqlexport

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/poetlib/tabstat/compare"
	"github.com/poetlib/tabstat/tabfmt"
)

// DB is a SQL database that receives comparison matrices. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun        *sql.Stmt
	insertComparison *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// configure its connections. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	Position INTEGER NOT NULL,
	Compiler VARCHAR(255) NOT NULL,
	Variant VARCHAR(255) NOT NULL,
	PRIMARY KEY (Compiler, Variant)
);
CREATE TABLE IF NOT EXISTS Comparisons (
	Bench VARCHAR(255) NOT NULL,
	TableTitle VARCHAR(1024) NOT NULL,
	Name VARCHAR(1024) NOT NULL,
	Compiler VARCHAR(255) NOT NULL,
	Variant VARCHAR(255) NOT NULL,
	Found BOOLEAN NOT NULL,
	Metric DOUBLE,
	Relative DOUBLE,
{{if not .sqlite3}}
	Index (Bench, Compiler, Variant),
{{end}}
	FOREIGN KEY (Compiler, Variant) REFERENCES Runs(Compiler, Variant) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ComparisonsBenchRun ON Comparisons(Bench, Compiler, Variant);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Position, Compiler, Variant) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertComparison, err = db.sql.Prepare("INSERT INTO Comparisons(Bench, TableTitle, Name, Compiler, Variant, Found, Metric, Relative) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// Export replaces the database contents with m in a single
// transaction. Metric and relative values that are missing or not
// numeric are stored as NULL.
func (db *DB) Export(ctx context.Context, m *compare.Matrix) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for _, q := range []string{"DELETE FROM Comparisons", "DELETE FROM Runs"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	insertRun := tx.StmtContext(ctx, db.insertRun)
	for i, run := range m.Runs {
		if _, err := insertRun.ExecContext(ctx, i, run.Compiler, run.Variant); err != nil {
			return fmt.Errorf("insert run %v: %w", run, err)
		}
	}
	insertComparison := tx.StmtContext(ctx, db.insertComparison)
	for _, row := range m.Rows {
		for i, c := range row.Cells {
			run := m.Runs[i]
			if _, err := insertComparison.ExecContext(ctx,
				row.Bench, row.Table, row.Name, run.Compiler, run.Variant,
				c.Found, number(c.Metric), number(c.Relative)); err != nil {
				return fmt.Errorf("insert %s/%s/%s: %w", row.Bench, row.Table, row.Name, err)
			}
		}
	}
	return nil
}

func number(v tabfmt.Value) sql.NullFloat64 {
	x, ok := v.Number()
	return sql.NullFloat64{Float64: x, Valid: ok}
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertComparison.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
