/*
 * moments.go, part of gohelix.
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

// Package helstat contains the statistics used on helical-parameter tables: moments,
// stiffness constants, correlation matrices and time autocorrelation functions.
package helstat

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	helix "github.com/gohelix/helix"
)

// Means returns the mean of each column of t. NaN values propagate.
func Means(t helix.Columner) []float64 {
	ret := make([]float64, t.Cols())
	for i := range ret {
		ret[i] = stat.Mean(t.Col(i), nil)
	}
	return ret
}

// StdDevs returns the unbiased standard deviation of each column of t.
func StdDevs(t helix.Columner) []float64 {
	ret := make([]float64, t.Cols())
	for i := range ret {
		ret[i] = stat.StdDev(t.Col(i), nil)
	}
	return ret
}

// Covariance returns the unbiased covariance matrix of the columns of t.
func Covariance(t *helix.Table) *mat.SymDense {
	if t.Cols() == 0 || t.Rows() == 0 {
		return &mat.SymDense{}
	}
	ret := mat.NewSymDense(t.Cols(), nil)
	stat.CovarianceMatrix(ret, t.Dense(), nil)
	return ret
}

// Summary contains the descriptive statistics of one column.
type Summary struct {
	Label  string  `csv:"label"`
	Mean   float64 `csv:"mean"`
	Std    float64 `csv:"std"`
	Min    float64 `csv:"min"`
	Q1     float64 `csv:"q1"`
	Median float64 `csv:"median"`
	Q3     float64 `csv:"q3"`
	Max    float64 `csv:"max"`
}

// Summarize returns a Summary for each column of t, labeled with the column names.
// The order statistics are NaN for columns that contain non-finite values.
func Summarize(t helix.Columner) []Summary {
	ret := make([]Summary, t.Cols())
	means := Means(t)
	stds := StdDevs(t)
	for i := range ret {
		s := Summary{Label: t.Name(i), Mean: means[i], Std: stds[i]}
		s.Min, s.Q1, s.Median, s.Q3, s.Max = orderStats(t.Col(i))
		ret[i] = s
	}
	return ret
}

func orderStats(col []float64) (min, q1, median, q3, max float64) {
	nan := math.NaN()
	if !helix.AllFinite(col) || len(col) == 0 {
		return nan, nan, nan, nan, nan
	}
	data := stats.Float64Data(col)
	var err error
	if min, err = stats.Min(data); err != nil {
		return nan, nan, nan, nan, nan
	}
	if max, err = stats.Max(data); err != nil {
		return nan, nan, nan, nan, nan
	}
	if median, err = stats.Median(data); err != nil {
		return nan, nan, nan, nan, nan
	}
	q, err := stats.Quartile(data)
	if err != nil {
		//too few points for quartiles
		return min, nan, median, nan, max
	}
	return min, q.Q1, median, q.Q3, max
}
