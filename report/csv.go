// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"

	"github.com/poetlib/tabstat/compare"
)

// CSV writes m to w as CSV with one line per row of m.Flatten.
// Missing values are empty cells.
func CSV(w io.Writer, m *compare.Matrix) error {
	o := csv.NewWriter(w)
	keys := m.FlatKeys()
	if err := o.Write(keys); err != nil {
		return err
	}
	rec := make([]string, len(keys))
	for _, row := range m.Flatten() {
		for i, f := range row {
			rec[i] = f.Value.String()
		}
		if err := o.Write(rec); err != nil {
			return err
		}
	}
	o.Flush()
	return o.Error()
}
