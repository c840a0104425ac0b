// Copyright 2026 The Tabstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws speedup bar charts from a comparison matrix.
//
// A chart has one group of bars per compiler and one bar per series
// in each group. A series selects a row by regular expression and
// plots the ratio of a baseline row's metric to that row's metric, so
// a bar above 1 is faster than the baseline.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"regexp"

	"github.com/poetlib/tabstat/compare"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when no run has data for any series of a
// chart.
var ErrNoData = errors.New("no data for chart")

// A Series is one bar per compiler. Empty fields default to the
// corresponding field of the enclosing Spec.
type Series struct {
	Label    string
	Bench    string
	Table    *regexp.Regexp
	Baseline *regexp.Regexp

	// Row selects the measured row by name.
	Row *regexp.Regexp
}

// A Spec describes one chart.
type Spec struct {
	// Name is the base name of the chart's output file.
	Name   string
	Title  string
	YLabel string

	// Variant selects the runs to chart. If empty, it is "default".
	Variant string

	Bench    string
	Table    *regexp.Regexp
	Baseline *regexp.Regexp

	Series []Series
}

// Bars is the data of a chart.
type Bars struct {
	// Groups are the compiler names along the X axis.
	Groups []string
	// Series are the legend labels.
	Series []string
	// Values[i][j] is the speedup of series i for group j, or 0 if
	// it could not be computed.
	Values [][]float64
}

// Data extracts the chart data of s from m. Runs appear in m's order.
func Data(m *compare.Matrix, s *Spec) (*Bars, error) {
	variant := s.Variant
	if variant == "" {
		variant = "default"
	}
	var runs []int
	for i, run := range m.Runs {
		if run.Variant == variant {
			runs = append(runs, i)
		}
	}

	bars := new(Bars)
	vals := make([][]float64, len(s.Series))
	for si, ser := range s.Series {
		ser = s.resolve(ser)
		bars.Series = append(bars.Series, ser.Label)
		vals[si] = make([]float64, len(runs))
		for ri, run := range runs {
			base := metric(m, ser.Bench, ser.Table, ser.Baseline, run)
			x := metric(m, ser.Bench, ser.Table, ser.Row, run)
			if base > 0 && x > 0 {
				vals[si][ri] = base / x
			}
		}
	}

	// Drop runs with no data in any series.
	for ri, run := range runs {
		keep := false
		for si := range vals {
			if vals[si][ri] != 0 {
				keep = true
			}
		}
		if !keep {
			continue
		}
		bars.Groups = append(bars.Groups, m.Runs[run].Compiler)
		if len(bars.Values) == 0 {
			bars.Values = make([][]float64, len(vals))
		}
		for si := range vals {
			bars.Values[si] = append(bars.Values[si], vals[si][ri])
		}
	}
	if len(bars.Groups) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Name, ErrNoData)
	}
	return bars, nil
}

func (s *Spec) resolve(ser Series) Series {
	if ser.Bench == "" {
		ser.Bench = s.Bench
	}
	if ser.Table == nil {
		ser.Table = s.Table
	}
	if ser.Baseline == nil {
		ser.Baseline = s.Baseline
	}
	return ser
}

// metric returns the numeric metric of the first row of bench whose
// table matches table and whose name matches row, for run, or 0.
func metric(m *compare.Matrix, bench string, table, row *regexp.Regexp, run int) float64 {
	if row == nil {
		return 0
	}
	for _, r := range m.Rows {
		if r.Bench != bench || (table != nil && !table.MatchString(r.Table)) || !row.MatchString(r.Name) {
			continue
		}
		c := r.Cells[run]
		if !c.Found {
			continue
		}
		if x, ok := c.Metric.Number(); ok {
			return x
		}
	}
	return 0
}

var palette = []color.Color{
	color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
	color.RGBA{0x4C, 0x72, 0xB0, 0xFF},
	color.RGBA{0x7F, 0xBB, 0xDA, 0xFF},
	color.RGBA{0xDD, 0x84, 0x52, 0xFF},
	color.RGBA{0x55, 0xA8, 0x68, 0xFF},
	color.RGBA{0xC4, 0x4E, 0x52, 0xFF},
}

// Plot builds the bar chart of s from bars.
func Plot(s *Spec, bars *Bars) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.Y.Label.Text = s.YLabel
	p.Y.Min = 0
	p.Legend.Top = true
	p.Legend.Left = true

	w := vg.Points(14)
	n := len(bars.Values)
	for i, vals := range bars.Values {
		bc, err := plotter.NewBarChart(plotter.Values(vals), w)
		if err != nil {
			return nil, fmt.Errorf("%s: series %q: %w", s.Name, bars.Series[i], err)
		}
		bc.Color = palette[i%len(palette)]
		bc.Offset = vg.Length(float64(i)-float64(n-1)/2) * w
		p.Add(bc)
		p.Legend.Add(bars.Series[i], bc)
	}

	one := plotter.NewFunction(func(float64) float64 { return 1 })
	one.Color = color.Gray{0xCC}
	one.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(one)

	p.NominalX(bars.Groups...)
	return p, nil
}

// Render writes the chart of s over m to w as SVG.
func Render(w io.Writer, m *compare.Matrix, s *Spec) error {
	bars, err := Data(m, s)
	if err != nil {
		return err
	}
	p, err := Plot(s, bars)
	if err != nil {
		return err
	}
	width := vg.Length(max(8, 2.5*float64(len(bars.Groups)))) * vg.Inch
	wt, err := p.WriterTo(width, 5*vg.Inch, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
