/*
 * backbone.go, part of gohelix.
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

// Package backbone classifies the backbone torsions of both strands of a duplex:
// BI/BII populations, canonical alpha/gamma pairs and sugar puckering.
package backbone

import (
	"fmt"
	"math"

	helix "github.com/gohelix/helix"
)

// Class names used in the populations.
const (
	BI        = "BI"
	BII       = "BII"
	Canonical = "Canonical alpha/gamma"
	North     = "North"
	East      = "East"
	West      = "West"
	South     = "South"
)

// Populations contains, for each position of both strands, the percentage of
// snapshots in each conformational class. Positions with no finite snapshots
// (the strand separator) have NaN percentages.
type Populations struct {
	Classes []string
	Labels  []string
	Percent [][]float64 //Percent[class][position]
}

// Class returns the percentages of the given class, and false if there is no such class.
func (P *Populations) Class(name string) ([]float64, bool) {
	for i, v := range P.Classes {
		if v == name {
			return P.Percent[i], true
		}
	}
	return nil, false
}

// Table returns the populations as a table with one row per position and one
// column per class, indexed by position number.
func (P *Populations) Table() *helix.Table {
	index := make([]float64, len(P.Labels))
	for i := range index {
		index[i] = float64(i + 1)
	}
	t, _ := helix.NewTable(index, append([]string(nil), P.Classes...), nil, P.Percent)
	return t
}

// Join lays out one torsion for both strands: the Watson columns, a NaN separator column
// and the Crick columns in reverse order, so that paired nucleotides mirror each other.
// The columns are labeled with helix.StrandLabels. Each table must have one column per
// nucleotide of its strand.
func Join(strand1, strand2 string, watson, crick *helix.Table) (*helix.Table, error) {
	if err := helix.CheckStrand(strand1); err != nil {
		return nil, helix.ErrDecorate(err, "Join")
	}
	if err := helix.CheckStrand(strand2); err != nil {
		return nil, helix.ErrDecorate(err, "Join")
	}
	if watson.Cols() != len(strand1) || crick.Cols() != len(strand2) {
		return nil, helix.NewConfigurationError(fmt.Sprintf("strands of %d and %d nucleotides, but tables with %d and %d columns", len(strand1), len(strand2), watson.Cols(), crick.Cols()), "Join")
	}
	t, err := helix.Concat(watson, helix.Separator(watson.Rows(), helix.SeparatorLabel), crick.Reverse())
	if err != nil {
		return nil, helix.ErrDecorate(err, "Join")
	}
	if err := t.Rename(helix.StrandLabels(strand1, strand2)); err != nil {
		return nil, helix.ErrDecorate(err, "Join")
	}
	return t, nil
}

// populations computes the percentage of the finite snapshots of each position that satisfy
// each of the conditions. Each condition receives the values of all tables for one snapshot.
func populations(classes []string, conditions []func(v []float64) bool, tables ...*helix.Table) *Populations {
	ref := tables[0]
	ret := &Populations{Classes: classes, Labels: ref.Names(), Percent: make([][]float64, len(classes))}
	for c := range classes {
		ret.Percent[c] = make([]float64, ref.Cols())
	}
	v := make([]float64, len(tables))
	for col := 0; col < ref.Cols(); col++ {
		counts := make([]int, len(classes))
		finite := 0
	rows:
		for row := 0; row < ref.Rows(); row++ {
			for k, t := range tables {
				v[k] = t.Col(col)[row]
				if math.IsNaN(v[k]) || math.IsInf(v[k], 0) {
					continue rows
				}
			}
			finite++
			for c, cond := range conditions {
				if cond(v) {
					counts[c]++
				}
			}
		}
		for c := range classes {
			if finite == 0 {
				ret.Percent[c][col] = math.NaN()
				continue
			}
			ret.Percent[c][col] = 100 * float64(counts[c]) / float64(finite)
		}
	}
	return ret
}

// BIFromDifference returns the BI and BII populations from the epsilon-zeta differences
// of each position. A snapshot is BI if the difference is negative.
func BIFromDifference(diff *helix.Table) *Populations {
	p := populations([]string{BI}, []func([]float64) bool{func(v []float64) bool { return v[0] < 0 }}, diff)
	bii := make([]float64, len(p.Percent[0]))
	for i, v := range p.Percent[0] {
		bii[i] = 100 - v
	}
	p.Classes = append(p.Classes, BII)
	p.Percent = append(p.Percent, bii)
	return p
}

func sameShape(caller string, tables ...*helix.Table) error {
	for _, t := range tables[1:] {
		if t.Rows() != tables[0].Rows() || t.Cols() != tables[0].Cols() {
			return helix.NewConfigurationError(fmt.Sprintf("tables of different shapes %dx%d and %dx%d", tables[0].Rows(), tables[0].Cols(), t.Rows(), t.Cols()), caller)
		}
	}
	return nil
}

// BIPopulations returns the BI/BII populations of every nucleotide of both strands from the
// epsilon and zeta torsions of the Watson (W) and Crick (C) strands.
func BIPopulations(strand1, strand2 string, epsW, zetaW, epsC, zetaC *helix.Table) (*Populations, error) {
	if err := sameShape("BIPopulations", epsW, zetaW); err != nil {
		return nil, err
	}
	if err := sameShape("BIPopulations", epsC, zetaC); err != nil {
		return nil, err
	}
	eps, err := Join(strand1, strand2, epsW, epsC)
	if err != nil {
		return nil, helix.ErrDecorate(err, "BIPopulations")
	}
	zeta, err := Join(strand1, strand2, zetaW, zetaC)
	if err != nil {
		return nil, helix.ErrDecorate(err, "BIPopulations")
	}
	diff, err := helix.Sub(eps, zeta)
	if err != nil {
		return nil, helix.ErrDecorate(err, "BIPopulations")
	}
	return BIFromDifference(diff), nil
}

// IsCanonicalAlphaGamma returns true for the canonical alpha/gamma combination, gauche-/gauche+.
// Both angles must be already in [0,360).
func IsCanonicalAlphaGamma(alpha, gamma float64) bool {
	return alpha > 240 && alpha < 360 && gamma > 0 && gamma < 120
}

// CanonicalAlphaGamma returns, for every nucleotide of both strands, the percentage of snapshots
// with canonical alpha and gamma torsions. Angles are wrapped into [0,360) first.
func CanonicalAlphaGamma(strand1, strand2 string, alphaW, gammaW, alphaC, gammaC *helix.Table) (*Populations, error) {
	if err := sameShape("CanonicalAlphaGamma", alphaW, gammaW); err != nil {
		return nil, err
	}
	if err := sameShape("CanonicalAlphaGamma", alphaC, gammaC); err != nil {
		return nil, err
	}
	alpha, err := Join(strand1, strand2, alphaW, alphaC)
	if err != nil {
		return nil, helix.ErrDecorate(err, "CanonicalAlphaGamma")
	}
	gamma, err := Join(strand1, strand2, gammaW, gammaC)
	if err != nil {
		return nil, helix.ErrDecorate(err, "CanonicalAlphaGamma")
	}
	alpha = alpha.Map(helix.WrapDegrees)
	gamma = gamma.Map(helix.WrapDegrees)
	canonical := func(v []float64) bool { return IsCanonicalAlphaGamma(v[0], v[1]) }
	return populations([]string{Canonical}, []func([]float64) bool{canonical}, alpha, gamma), nil
}

// PuckerClass returns the sugar pucker class of a pseudorotation phase in [0,360).
// Phases exactly on a boundary belong to no class, and the empty string is returned.
func PuckerClass(phase float64) string {
	switch {
	case phase > 315 || phase < 45:
		return North
	case phase > 45 && phase < 135:
		return East
	case phase > 135 && phase < 225:
		return South
	case phase > 225 && phase < 315:
		return West
	}
	return ""
}

// Puckering returns, for every nucleotide of both strands, the North, East, West and South
// populations of the sugar pseudorotation phase. Phases are wrapped into [0,360) first.
func Puckering(strand1, strand2 string, phaseW, phaseC *helix.Table) (*Populations, error) {
	phase, err := Join(strand1, strand2, phaseW, phaseC)
	if err != nil {
		return nil, helix.ErrDecorate(err, "Puckering")
	}
	phase = phase.Map(helix.WrapDegrees)
	classes := []string{North, East, West, South}
	conds := make([]func([]float64) bool, len(classes))
	for i, c := range classes {
		c := c
		conds[i] = func(v []float64) bool { return PuckerClass(v[0]) == c }
	}
	return populations(classes, conds, phase), nil
}
