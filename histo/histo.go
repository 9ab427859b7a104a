/*
 * histo.go, part of gohelix.
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

// Package histo builds histograms of helical-parameter columns.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. dividers has one element more than the histogram: bin i
// goes from dividers[i] (inclusive) to dividers[i+1] (exclusive), except the last bin, which
// includes its upper divider.
type Data struct {
	label      string
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// Bin is one row of the tabular form of a histogram: the lower edge of a bin and its value.
type Bin struct {
	Bins  float64 `csv:"bins"`
	Value float64 `csv:"value"`
}

// MarshalJSON renders the histogram with its label, total count, dividers and bin values.
func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Label      string    `json:"label"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Label:      D.label,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Label returns the label of the histogram, usually the name of the column it was built from.
func (D *Data) Label() string {
	return D.label
}

func (D *Data) String() string {
	ret := fmt.Sprintf("Label: %s, Normalized: %v, TotalData: %d\n", D.label, D.normalized, D.total)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// NewData returns a histogram with the given dividers, filled with rawdata, if not nil.
// The dividers are copied, rawdata is not modified.
func NewData(label string, dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("gohelix/histo.NewData: at least two dividers are needed")
	}
	d := new(Data)
	d.label = label
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

// New returns a histogram of the finite values of data with automatically chosen dividers.
// It returns nil if data has no finite values.
func New(label string, data []float64) *Data {
	div := AutoDividers(data)
	if div == nil {
		return nil
	}
	return NewData(label, div, data)
}

// Uniform returns n+1 evenly spaced dividers from min to max.
func Uniform(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if max <= min {
		min, max = min-0.5, min+0.5
	}
	return floats.Span(make([]float64, n+1), min, max)
}

func finiteSorted(data []float64) []float64 {
	ret := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			ret = append(ret, v)
		}
	}
	sort.Float64s(ret)
	return ret
}

// AutoBins returns the number of bins for data, as the larger of the Sturges and
// Freedman-Diaconis estimates. It returns 0 if data has no finite values.
func AutoBins(data []float64) int {
	s := finiteSorted(data)
	if len(s) == 0 {
		return 0
	}
	span := s[len(s)-1] - s[0]
	if span == 0 {
		return 1
	}
	n := float64(len(s))
	width := span / (math.Log2(n) + 1)
	iqr := stat.Quantile(0.75, stat.LinInterp, s, nil) - stat.Quantile(0.25, stat.LinInterp, s, nil)
	if fd := 2 * iqr * math.Pow(n, -1.0/3.0); fd > 0 && fd < width {
		width = fd
	}
	return int(math.Ceil(span / width))
}

// AutoDividers returns dividers spanning the finite values of data, with AutoBins bins.
// It returns nil if there are no finite values.
func AutoDividers(data []float64) []float64 {
	n := AutoBins(data)
	if n == 0 {
		return nil
	}
	s := finiteSorted(data)
	return Uniform(s[0], s[len(s)-1], n)
}

// AddData adds points to the histogram. Points outside the dividers are counted in the total
// but not in any bin.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v == D.dividers[last] {
			D.histo[last-1]++
			continue
		}
		for j, w := range D.dividers[:last] {
			if w <= v && v < D.dividers[j+1] {
				D.histo[j]++
				break
			}
		}
	}
	D.total += len(point)
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

// Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides each bin by the total number of points.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize returns the histogram to counts.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// Density returns the probability density of each bin, the fraction of points in it divided
// by its width.
func (D *Data) Density() []float64 {
	ret := D.Copy()
	if !D.normalized && D.total > 0 {
		floats.Scale(1/float64(D.total), ret)
	}
	for i := range ret {
		ret[i] /= D.dividers[i+1] - D.dividers[i]
	}
	return ret
}

// Total returns the number of points added to the histogram.
func (D *Data) Total() int {
	return D.total
}

// CopyDividers copies the dividers of the histogram into dest, if given and large enough,
// or in a new slice.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

// Copy copies the histogram values into dest, if given and large enough, or in a new slice.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

// View returns the histogram values, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Bins returns the histogram in tabular form.
func (D *Data) Bins() []Bin {
	ret := make([]Bin, len(D.histo))
	for i, v := range D.histo {
		ret[i] = Bin{Bins: D.dividers[i], Value: v}
	}
	return ret
}

// ReHisto rebuilds the histogram with new dividers and data. Non-finite values and values
// outside the dividers are left out of the total.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	raw := finiteSorted(rawdata)
	//stat.Histogram panics on values out of range,
	//so we remove them here before the call.
	lo := sort.SearchFloat64s(raw, dividers[0])
	raw = raw[lo:]
	upper := dividers[len(dividers)-1]
	hi := sort.SearchFloat64s(raw, upper)
	top := 0
	for hi+top < len(raw) && raw[hi+top] == upper {
		top++
	}
	inner := raw[:hi]
	D.dividers = append(D.dividers[:0], dividers...)
	D.histo = stat.Histogram(nil, D.dividers, inner, nil)
	//the last bin is closed.
	D.histo[len(D.histo)-1] += float64(top)
	D.total = len(inner) + top
	D.normalized = false
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d
}
