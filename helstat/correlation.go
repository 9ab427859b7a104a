/*
 * correlation.go, part of gohelix.
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

package helstat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	helix "github.com/gohelix/helix"
)

// Statistic is the correlation coefficient used for a pair of variables.
type Statistic int

const (
	Pearson Statistic = iota
	Circular
	CircularLinear
)

func (s Statistic) String() string {
	switch s {
	case Pearson:
		return "pearson"
	case Circular:
		return "circular"
	case CircularLinear:
		return "circular-linear"
	}
	return fmt.Sprintf("Statistic(%d)", int(s))
}

// CorrelationKind returns the statistic to correlate a variable of kind a with one of kind b.
func CorrelationKind(a, b helix.Kind) Statistic {
	switch {
	case a == helix.Circular && b == helix.Circular:
		return Circular
	case a == helix.Circular || b == helix.Circular:
		return CircularLinear
	default:
		return Pearson
	}
}

func clamp(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}

// PearsonCorrelation returns the Pearson correlation coefficient of x and y.
// It is NaN if either has zero variance.
func PearsonCorrelation(x, y []float64) float64 {
	return clamp(stat.Correlation(x, y, nil))
}

// CircularCorrelation returns the circular correlation coefficient of two angles given in degrees.
func CircularCorrelation(x, y []float64) float64 {
	x = helix.Deg2RadSlice(x)
	y = helix.Deg2RadSlice(y)
	mx := stat.Mean(x, nil)
	my := stat.Mean(y, nil)
	for i := range x {
		x[i] = math.Sin(x[i] - mx)
		y[i] = math.Sin(y[i] - my)
	}
	num := floats.Dot(x, y)
	den := math.Sqrt(floats.Dot(x, x) * floats.Dot(y, y))
	return clamp(num / den)
}

// CircularLinearCorrelation returns the association between a linear variable and an angle,
// given in degrees. The magnitude formula has no sign, so the sign of the Pearson correlation
// of the raw values is used.
func CircularLinearCorrelation(linear, angle []float64) float64 {
	rad := helix.Deg2RadSlice(angle)
	sin := make([]float64, len(rad))
	cos := make([]float64, len(rad))
	for i, v := range rad {
		sin[i] = math.Sin(v)
		cos[i] = math.Cos(v)
	}
	rc := stat.Correlation(linear, cos, nil)
	rs := stat.Correlation(linear, sin, nil)
	rcs := stat.Correlation(sin, cos, nil)
	num := rc*rc + rs*rs - 2*rc*rs*rcs
	den := 1 - rcs*rcs
	r := math.Sqrt(num / den)
	if stat.Correlation(linear, rad, nil) < 0 {
		r = -r
	}
	return clamp(r)
}

// Correlation correlates x, of kind kx, with y, of kind ky, using the statistic
// CorrelationKind chooses for them.
func Correlation(x []float64, kx helix.Kind, y []float64, ky helix.Kind) float64 {
	switch CorrelationKind(kx, ky) {
	case Circular:
		return CircularCorrelation(x, y)
	case CircularLinear:
		if kx == helix.Circular {
			return CircularLinearCorrelation(y, x)
		}
		return CircularLinearCorrelation(x, y)
	default:
		return PearsonCorrelation(x, y)
	}
}

// Correlate returns the correlation matrix of the columns of t. kindOf gives the kind of
// each column. If it is nil, all columns are taken as linear. Each pair is computed once, so
// the matrix is exactly symmetric, and the diagonal is exactly 1. Columns with zero variance
// give NaN correlations.
func Correlate(t *helix.Table, kindOf func(col int) helix.Kind) (*mat.SymDense, error) {
	n := t.Cols()
	if n == 0 {
		return nil, helix.NewConfigurationError("no columns to correlate", "Correlate")
	}
	if t.Rows() < 2 {
		return nil, helix.NewMalformedTableError(helix.EmptyTable, "", 0, "Correlate")
	}
	if kindOf == nil {
		kindOf = func(int) helix.Kind { return helix.Linear }
	}
	for i := 0; i < n; i++ {
		if !helix.AllFinite(t.Col(i)) {
			return nil, helix.NewMalformedTableError(fmt.Sprintf("%s in column %s", helix.NonFiniteData, t.Name(i)), "", 0, "Correlate")
		}
	}
	ret := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		ret.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			ret.SetSym(i, j, Correlation(t.Col(i), kindOf(i), t.Col(j), kindOf(j)))
		}
	}
	return ret, nil
}

// ParameterKinds returns a kindOf function for Correlate for tables whose columns are the
// given parameters, in order.
func ParameterKinds(params []helix.Parameter) func(int) helix.Kind {
	return func(i int) helix.Kind {
		return params[i].Kind()
	}
}

// SameKind returns a kindOf function for Correlate for tables whose columns all have kind k.
func SameKind(k helix.Kind) func(int) helix.Kind {
	return func(int) helix.Kind { return k }
}
