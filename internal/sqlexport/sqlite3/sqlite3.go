// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 registers the sqlite3 driver for use with
// sqlexport. Import it for its side effects.
package sqlite3

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/poetlib/tabstat/internal/sqlexport"
)

func init() {
	sqlexport.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
		db.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			_, err := c.Exec("PRAGMA foreign_keys = ON", nil)
			return err
		}
		return nil
	})
}
