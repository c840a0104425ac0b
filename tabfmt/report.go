// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabfmt reads benchmark reports written as ASCII tables,
// such as the Markdown-style output of nanobench, into structured
// Reports.
//
// A report consists of an optional metadata preamble of "key: value"
// lines and "=== Section ===" markers, followed by one or more tables.
// Each table has a title, either on its own line or embedded as the
// last header column, a header row naming its columns, and data rows
// whose cells are coerced into typed Values. Lines that look like
// benchmark warnings and recommendations are collected separately.
//
// The reader is deliberately permissive. Benchmark producers do not
// agree on a single grammar, and rejecting a line would silently drop
// a run's data from later comparison, so lines that cannot be
// classified are ignored rather than reported.
package tabfmt

// SectionKey is the metadata key under which the most recent
// "=== Section ===" preamble marker is recorded.
const SectionKey = "_section"

// A Report is one parsed benchmark output file.
type Report struct {
	// Metadata holds the preamble key/value pairs.
	Metadata map[string]string

	// Tables holds the tables in the order they appear in the text.
	Tables []*Table

	// Warnings holds raw warning and recommendation lines.
	Warnings []string
}

// A Table is one titled sub-table of a Report.
type Table struct {
	// Title is the table's title, or "" if none was recognized.
	Title string

	// Columns are the header column names, in order. Duplicate
	// names are kept.
	Columns []string

	Rows []Row
}

// A Field is a single named cell of a Row.
type Field struct {
	Column string
	Value  Value
}

// A Row maps column names to cell Values.
//
// Fields are ordered by the first occurrence of each column name.
// If a header repeats a column name, the later cell's value replaces
// the earlier one in place.
type Row struct {
	Fields []Field
}

// Set sets column to val, appending a new Field if column is not
// already present.
func (r *Row) Set(column string, val Value) {
	for i := range r.Fields {
		if r.Fields[i].Column == column {
			r.Fields[i].Value = val
			return
		}
	}
	r.Fields = append(r.Fields, Field{column, val})
}

// Get returns the value of column and whether the row has it.
func (r Row) Get(column string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Lookup returns the value of the first of columns the row has. If the
// row has none of them, it returns a Null Value and false.
func (r Row) Lookup(columns ...string) (Value, bool) {
	for _, c := range columns {
		if v, ok := r.Get(c); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Name returns the value of the row's first String-valued field. A row
// with no String field is unnamed, and Name returns "", false.
func (r Row) Name() (string, bool) {
	for _, f := range r.Fields {
		if s, ok := f.Value.Str(); ok {
			return s, true
		}
	}
	return "", false
}

// FindRow returns the first row named name in any of r's tables titled
// title, searching tables in text order.
func (r *Report) FindRow(title, name string) (Row, bool) {
	for _, t := range r.Tables {
		if t.Title != title {
			continue
		}
		if row, ok := t.Row(name); ok {
			return row, true
		}
	}
	return Row{}, false
}

// Row returns the first row in t named name.
func (t *Table) Row(name string) (Row, bool) {
	for _, row := range t.Rows {
		if n, ok := row.Name(); ok && n == name {
			return row, true
		}
	}
	return Row{}, false
}
