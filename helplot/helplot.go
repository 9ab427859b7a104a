/*
 * helplot.go, part of gohelix.
 *
 *
 * Copyright 2024 The gohelix authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package helplot draws the figures of the helical-parameter analyses with gonum/plot.
// Figures are returned as *plot.Plot, and Encode renders them in any format gonum/plot supports.
package helplot

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/backbone"
	"github.com/gohelix/helix/bimodal"
	"github.com/gohelix/helix/histo"
)

// Default figure size.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Encode renders p in the given format (jpg, png, svg, pdf...).
func Encode(p *plot.Plot, format string) ([]byte, error) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	w, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "helplot.Encode")
	}
	var b bytes.Buffer
	if _, err := w.WriteTo(&b); err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "helplot.Encode")
	}
	return b.Bytes(), nil
}

// FormatOf returns the image format implied by the extension of filename.
func FormatOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func nominalXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// finiteXYs drops the points with a NaN value, which gonum/plot can't draw.
func finiteXYs(pts plotter.XYs) plotter.XYs {
	ret := make(plotter.XYs, 0, len(pts))
	for _, v := range pts {
		if finite(v.Y) {
			ret = append(ret, v)
		}
	}
	return ret
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Averages plots the mean of a helical parameter at each position with standard deviation error bars.
// Positions with a non-finite mean are left empty, and a non-finite deviation draws no bar.
func Averages(title, ylabel string, labels []string, means, stds []float64) (*plot.Plot, error) {
	if len(labels) != len(means) || len(means) != len(stds) {
		return nil, helix.NewOutputError(fmt.Sprintf("%d labels, %d means and %d standard deviations", len(labels), len(means), len(stds)), "", "helplot.Averages")
	}
	p := basicPlot(title, "Sequence", ylabel)
	var data errorPoints
	for i, m := range means {
		if !finite(m) {
			continue
		}
		s := stds[i]
		if !finite(s) {
			s = 0
		}
		data.XYs = append(data.XYs, plotter.XY{X: float64(i), Y: m})
		data.YErrors = append(data.YErrors, struct{ Low, High float64 }{s, s})
	}
	if len(data.XYs) > 0 {
		line, points, err := plotter.NewLinePoints(data.XYs)
		if err != nil {
			return nil, helix.NewOutputError(err.Error(), "", "helplot.Averages")
		}
		eb, err := plotter.NewYErrorBars(data)
		if err != nil {
			return nil, helix.NewOutputError(err.Error(), "", "helplot.Averages")
		}
		line.Color = plotutil.Color(0)
		points.Color = plotutil.Color(0)
		p.Add(line, points, eb)
	}
	p.NominalX(labels...)
	return p, nil
}

// Profile plots one value per position, such as the stiffness of each base-pair step.
func Profile(title, xlabel, ylabel string, labels []string, values []float64) (*plot.Plot, error) {
	if len(labels) != len(values) {
		return nil, helix.NewOutputError(fmt.Sprintf("%d labels for %d values", len(labels), len(values)), "", "helplot.Profile")
	}
	p := basicPlot(title, xlabel, ylabel)
	if pts := finiteXYs(nominalXYs(values)); len(pts) > 0 {
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, helix.NewOutputError(err.Error(), "", "helplot.Profile")
		}
		line.Color = plotutil.Color(0)
		points.Color = plotutil.Color(0)
		p.Add(line, points)
	}
	p.NominalX(labels...)
	return p, nil
}

// TimeSeries plots values against index, taking one point every stride.
func TimeSeries(title, ylabel string, index, values []float64, stride int) (*plot.Plot, error) {
	if len(index) != len(values) {
		return nil, helix.NewOutputError(fmt.Sprintf("%d index values for %d values", len(index), len(values)), "", "helplot.TimeSeries")
	}
	if stride < 1 {
		stride = 1
	}
	pts := make(plotter.XYs, 0, len(values)/stride+1)
	for i := 0; i < len(values); i += stride {
		pts = append(pts, plotter.XY{X: index[i], Y: values[i]})
	}
	p := basicPlot(title, "Time", ylabel)
	pts = finiteXYs(pts)
	if len(pts) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "helplot.TimeSeries")
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	return p, nil
}

func histogramPlotter(h *histo.Data, density bool, c color.Color) *plotter.Histogram {
	div := h.CopyDividers()
	vals := h.Copy()
	if density {
		vals = h.Density()
	}
	bins := make([]plotter.HistogramBin, len(vals))
	for i, v := range vals {
		bins[i] = plotter.HistogramBin{Min: div[i], Max: div[i+1], Weight: v}
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     div[len(div)-1] - div[0],
		FillColor: c,
		LineStyle: plotter.DefaultLineStyle,
	}
}

// Histogram plots the counts of a histogram.
func Histogram(title, xlabel string, h *histo.Data) (*plot.Plot, error) {
	if h == nil {
		return nil, helix.NewOutputError(helix.EmptyTable, "", "helplot.Histogram")
	}
	p := basicPlot(title, xlabel, "Counts")
	p.Add(histogramPlotter(h, false, plotutil.Color(0)))
	return p, nil
}

func verticalLine(x, ymax float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: ymax}})
	if err != nil {
		return nil, err
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return l, nil
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 180}
}

// Bimodality plots the density histograms of the synthetic samples drawn from the components
// of a bimodality report, with dashed lines at the component means.
func Bimodality(title, xlabel string, r *bimodal.Report, low, high []float64, bins int) (*plot.Plot, error) {
	p := basicPlot(title, xlabel, "Density")
	names := []string{"Single State", "High State"}
	if r.Binormal {
		names[0] = "Low State"
	}
	for i, sample := range [][]float64{low, high} {
		if len(sample) == 0 {
			continue
		}
		div := histo.AutoDividers(sample)
		if bins > 0 {
			div = histo.Uniform(div[0], div[len(div)-1], bins)
		}
		h := histo.NewData(names[i], div, sample)
		hp := histogramPlotter(h, true, translucent(plotutil.Color(i)))
		p.Add(hp)
		p.Legend.Add(names[i], hp)
		ymax := 0.0
		for _, v := range h.Density() {
			ymax = math.Max(ymax, v)
		}
		mean := r.Mean1
		if i == 1 {
			mean = r.Mean2
		}
		vl, err := verticalLine(mean, ymax)
		if err != nil {
			return nil, helix.NewOutputError(err.Error(), "", "helplot.Bimodality")
		}
		p.Add(vl)
	}
	return p, nil
}

type symGrid struct {
	m mat.Symmetric
}

func (g symGrid) Dims() (c, r int)   { n := g.m.SymmetricDim(); return n, n }
func (g symGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g symGrid) X(c int) float64    { return float64(c) }
func (g symGrid) Y(r int) float64    { return float64(r) }

// Heatmap plots a labeled square matrix, such as a correlation or stiffness matrix,
// writing the value of each cell on it.
func Heatmap(title string, labels []string, m mat.Symmetric) (*plot.Plot, error) {
	n := m.SymmetricDim()
	if len(labels) != n {
		return nil, helix.NewOutputError(fmt.Sprintf("%d labels for a %dx%d matrix", len(labels), n, n), "", "helplot.Heatmap")
	}
	p := basicPlot(title, "", "")
	p.Add(plotter.NewHeatMap(symGrid{m}, palette.Heat(12, 1)))
	cells := plotter.XYLabels{}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			cells.Labels = append(cells.Labels, fmt.Sprintf("%.2f", m.At(r, c)))
		}
	}
	l, err := plotter.NewLabels(cells)
	if err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "helplot.Heatmap")
	}
	p.Add(l)
	p.NominalX(labels...)
	p.NominalY(labels...)
	return p, nil
}

// Populations draws the conformational populations of each nucleotide as stacked bars.
func Populations(title, ylabel string, pop *backbone.Populations) (*plot.Plot, error) {
	p := basicPlot(title, "Nucleotide Sequence", ylabel)
	var below *plotter.BarChart
	for i, class := range pop.Classes {
		vals := make(plotter.Values, len(pop.Percent[i]))
		for j, v := range pop.Percent[i] {
			if math.IsNaN(v) {
				v = 0 //the strand separator is left empty
			}
			vals[j] = v
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(8))
		if err != nil {
			return nil, helix.NewOutputError(err.Error(), "", "helplot.Populations")
		}
		bars.Color = Spread(i, len(pop.Classes))
		bars.LineStyle.Width = vg.Length(0)
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(class, bars)
	}
	p.Legend.Top = true
	p.Y.Min = 0
	p.Y.Max = 100
	p.NominalX(pop.Labels...)
	return p, nil
}
