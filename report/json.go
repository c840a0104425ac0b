// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"io"

	"github.com/poetlib/tabstat/compare"
)

// JSON writes m to w as an indented JSON object:
//
//	{"columns": [run...], "rows": [{"bench": ..., "<run>_nsop": ..., ...}]}
//
// Row keys are in the order of m.FlatKeys. A run with no data has ""
// for its values, as does a run whose row lacks the column.
func JSON(w io.Writer, m *compare.Matrix) error {
	out := struct {
		Columns []string          `json:"columns"`
		Rows    []compare.FlatRow `json:"rows"`
	}{runNames(m), m.Flatten()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
