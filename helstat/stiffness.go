/*
 * stiffness.go, part of gohelix.
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

	"gonum.org/v1/gonum/mat"

	helix "github.com/gohelix/helix"
)

// DefaultKT is the Boltzmann temperature factor, in kcal/mol, at 298 K.
const DefaultKT = 0.592186827

// MaxCondition is the largest condition number a covariance matrix can have
// and still be inverted into stiffness constants.
const MaxCondition = 1e12

// DefaultScaling returns the per-coordinate scale factors for a full stiffness matrix, in the
// order shift, slide, rise, tilt, roll, twist.
func DefaultScaling() []float64 {
	return []float64{1, 1, 1, helix.LengthScale, helix.LengthScale, helix.LengthScale}
}

// invertCovariance returns the inverse of the covariance matrix of the columns of t.
// It fails with a SingularMatrixError for non-finite data, constant columns, fewer than two
// snapshots, and ill-conditioned matrices.
func invertCovariance(t *helix.Table) (*mat.SymDense, error) {
	if t.Cols() == 0 {
		return nil, helix.NewConfigurationError("no columns to compute stiffness from", "invertCovariance")
	}
	if t.Rows() < 2 {
		return nil, helix.NewSingularMatrixError(fmt.Sprintf("%s: %d snapshots", helix.SingularCovariance, t.Rows()), math.Inf(1), "invertCovariance")
	}
	for i := 0; i < t.Cols(); i++ {
		if !helix.AllFinite(t.Col(i)) {
			return nil, helix.NewSingularMatrixError(fmt.Sprintf("%s in column %s", helix.NonFiniteData, t.Name(i)), math.NaN(), "invertCovariance")
		}
	}
	cov := Covariance(t)
	for i := 0; i < t.Cols(); i++ {
		if cov.At(i, i) <= 0 {
			return nil, helix.NewSingularMatrixError(fmt.Sprintf("%s: column %s has zero variance", helix.SingularCovariance, t.Name(i)), math.Inf(1), "invertCovariance")
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, helix.NewSingularMatrixError(helix.SingularCovariance, math.Inf(1), "invertCovariance")
	}
	if c := chol.Cond(); c > MaxCondition || math.IsNaN(c) {
		return nil, helix.NewSingularMatrixError(helix.SingularCovariance, c, "invertCovariance")
	}
	inv := mat.NewSymDense(t.Cols(), nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, helix.NewSingularMatrixError(fmt.Sprintf("%s: %v", helix.SingularCovariance, err), chol.Cond(), "invertCovariance")
	}
	return inv, nil
}

// DiagonalStiffness returns the stiffness constant of each column of t: the diagonal of the
// inverse of the covariance matrix of all columns, times KT and scale.
// The usual scale is the parameter's DefaultStiffnessScale.
func DiagonalStiffness(t *helix.Table, KT, scale float64) ([]float64, error) {
	inv, err := invertCovariance(t)
	if err != nil {
		return nil, helix.ErrDecorate(err, "DiagonalStiffness")
	}
	ret := make([]float64, t.Cols())
	for i := range ret {
		ret[i] = inv.At(i, i) * KT * scale
	}
	return ret, nil
}

// FullStiffness returns the stiffness matrix of the six coupled coordinates of one base-pair
// step (shift, slide, rise, tilt, roll, twist) or base pair (shear, stretch, stagger, buckle,
// propel, opening), given as the six columns of t in that order. Element ij of KT times the inverse
// covariance is scaled by sqrt(scaling[i]*scaling[j]), which keeps the matrix symmetric and leaves
// the diagonal scaled by scaling[i]. If scaling is nil, DefaultScaling is used.
func FullStiffness(t *helix.Table, KT float64, scaling []float64) (*mat.SymDense, error) {
	if t.Cols() != 6 {
		return nil, helix.NewConfigurationError(fmt.Sprintf("a full stiffness matrix needs 6 coordinates, got %d", t.Cols()), "FullStiffness")
	}
	if scaling == nil {
		scaling = DefaultScaling()
	}
	if len(scaling) != 6 {
		return nil, helix.NewConfigurationError(fmt.Sprintf("scaling needs 6 elements, got %d", len(scaling)), "FullStiffness")
	}
	for _, s := range scaling {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, helix.NewConfigurationError(fmt.Sprintf("invalid scaling %v", scaling), "FullStiffness")
		}
	}
	inv, err := invertCovariance(t)
	if err != nil {
		return nil, helix.ErrDecorate(err, "FullStiffness")
	}
	ret := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			f := KT
			if i == j {
				f *= scaling[i]
			} else {
				f *= math.Sqrt(scaling[i] * scaling[j])
			}
			ret.SetSym(i, j, inv.At(i, j)*f)
		}
	}
	return ret, nil
}
