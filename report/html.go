// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/poetlib/tabstat/compare"
)

var htmlTemplate = template.Must(template.New("").Parse(`
{{- $runs := .Runs -}}
<h1>Benchmark Comparison</h1>
<p>Generated from {{len $runs}} compiler/variant combinations</p>
{{range .Groups}}
<h2>{{.Bench}} / {{.Table}}</h2>
<table class='tabstat'>
<tr><th>Benchmark{{range $runs}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Name}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
{{if .Geomean -}}
<tr class='geomean'><td>geomean{{range .Geomean}}<td>{{.}}{{end}}
{{end -}}
</table>
{{end -}}
`))

type htmlData struct {
	Runs   []string
	Groups []htmlGroup
}

type htmlGroup struct {
	Bench, Table string
	Rows         []htmlRow
	Geomean      []string
}

type htmlRow struct {
	Name  string
	Cells []string
}

// HTML writes m to w as an HTML fragment with one table per benchmark
// and table title.
func HTML(w io.Writer, m *compare.Matrix, opts Options) error {
	data := htmlData{Runs: runNames(m)}
	for _, g := range m.Groups() {
		hg := htmlGroup{Bench: g.Bench, Table: g.Table}
		for _, row := range g.Rows {
			hr := htmlRow{Name: row.Name}
			for _, c := range row.Cells {
				hr.Cells = append(hr.Cells, FormatCell(c))
			}
			hg.Rows = append(hg.Rows, hr)
		}
		if opts.Geomean {
			for _, v := range g.Geomean(len(m.Runs)) {
				hg.Geomean = append(hg.Geomean, formatGeomean(v))
			}
		}
		data.Groups = append(data.Groups, hg)
	}
	return htmlTemplate.Execute(w, data)
}
