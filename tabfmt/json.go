// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// The JSON form of a Report is
//
//	{"metadata": {string: string},
//	 "tables": [{"title": string, "columns": [string], "rows": [{column: number|string|null}]}],
//	 "warnings": [string]}
//
// Row objects keep their fields in column order. Integers are written
// without a decimal point and floats always with one, so a decoded
// Report has the same Value kinds as the one that was encoded.

type jsonReport struct {
	Metadata map[string]string `json:"metadata"`
	Tables   []*jsonTable      `json:"tables"`
	Warnings []string          `json:"warnings"`
}

type jsonTable struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MarshalJSON encodes r. Absent collections encode as empty ones
// rather than null.
func (r *Report) MarshalJSON() ([]byte, error) {
	jr := jsonReport{
		Metadata: r.Metadata,
		Tables:   make([]*jsonTable, 0, len(r.Tables)),
		Warnings: r.Warnings,
	}
	if jr.Metadata == nil {
		jr.Metadata = map[string]string{}
	}
	if jr.Warnings == nil {
		jr.Warnings = []string{}
	}
	for _, t := range r.Tables {
		jt := &jsonTable{Title: t.Title, Columns: t.Columns, Rows: t.Rows}
		if jt.Columns == nil {
			jt.Columns = []string{}
		}
		if jt.Rows == nil {
			jt.Rows = []Row{}
		}
		jr.Tables = append(jr.Tables, jt)
	}
	return json.Marshal(jr)
}

// UnmarshalJSON decodes a Report.
func (r *Report) UnmarshalJSON(data []byte) error {
	var jr jsonReport
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	r.Metadata = jr.Metadata
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Warnings = jr.Warnings
	r.Tables = nil
	for _, jt := range jr.Tables {
		if jt == nil {
			continue
		}
		r.Tables = append(r.Tables, &Table{Title: jt.Title, Columns: jt.Columns, Rows: jt.Rows})
	}
	return nil
}

// MarshalJSON encodes r as a JSON object with fields in order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into r, preserving key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}
	r.Fields = r.Fields[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("row: column %q: %w", key, err)
		}
		r.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes v as null, a number, or a string. Non-finite
// floats have no JSON number form and are encoded as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Int:
		return strconv.AppendInt(nil, v.i, 10), nil
	case Float:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return json.Marshal(formatFloat(v.f))
		}
		return []byte(formatFloat(v.f)), nil
	case String:
		return json.Marshal(v.s)
	}
	return nil, fmt.Errorf("unknown value kind %v", v.kind)
}

var errBadValue = errors.New("cell must be a number, string, or null")

// UnmarshalJSON decodes null, a number, or a string into v. Numbers
// with a fraction or exponent become Floats, others Ints.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errBadValue
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return errBadValue
		}
		*v = Value{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case '{', '[', 't', 'f':
		return errBadValue
	}
	num := string(data)
	if !strings.ContainsAny(num, ".eE") {
		if i, err := strconv.ParseInt(num, 10, 64); err == nil {
			*v = IntValue(i)
			return nil
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return fmt.Errorf("bad number %q: %w", num, err)
	}
	*v = FloatValue(f)
	return nil
}

// Encode writes r to w as indented JSON.
func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Decode reads a single JSON-encoded Report from rd.
func Decode(rd io.Reader) (*Report, error) {
	r := new(Report)
	if err := json.NewDecoder(rd).Decode(r); err != nil {
		return nil, err
	}
	return r, nil
}
