/*
 * bimodality.go, part of gohelix.
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

package bimodal

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	helix "github.com/gohelix/helix"
)

// Evidence is the outcome of the Bayes factor comparison of the one and
// two component models.
type Evidence int

const (
	Uninormal Evidence = iota
	Binormal
	InsufficientEvidence
)

func (e Evidence) String() string {
	switch e {
	case Uninormal:
		return "uninormal"
	case Binormal:
		return "binormal"
	default:
		return "insufficient_evidence"
	}
}

// BayesFactor returns the probability p that the two-component model, with criterion bic2, is
// preferred over the one-component model, with bic1, and the resulting decision for a confidence
// level given in percent. A model with a non-finite BIC is taken as failed, so the other one is
// chosen with certainty. If both are non-finite, p is NaN and the evidence is insufficient.
func BayesFactor(bic1, bic2, confidence float64) (float64, Evidence) {
	ok1 := !math.IsNaN(bic1) && !math.IsInf(bic1, 0)
	ok2 := !math.IsNaN(bic2) && !math.IsInf(bic2, 0)
	var p float64
	switch {
	case ok1 && ok2:
		p = 1 / (1 + math.Exp(0.5*(bic2-bic1)))
	case ok2:
		p = 1
	case ok1:
		p = 0
	default:
		return math.NaN(), InsufficientEvidence
	}
	c := confidence / 100
	switch {
	case p < c:
		return p, Uninormal
	case p > 1-c:
		return p, Binormal
	}
	return p, InsufficientEvidence
}

// SeparationFactor returns Helguero's separation factor for two Gaussians with
// variance ratio r. Two equally weighted Gaussians are bimodal if their means are further apart
// than the factor times the sum of their standard deviations.
func SeparationFactor(r float64) float64 {
	num := -2 + 3*r + 3*r*r - 2*r*r*r + 2*math.Pow(1-r+r*r, 1.5)
	return math.Sqrt(num) / (math.Sqrt(r) * (1 + math.Sqrt(r)))
}

// Helguero applies Helguero's criterion to the low- and high-mean components of a binormal fit.
func Helguero(low, high Component) bool {
	r := low.Variance / high.Variance
	return math.Abs(high.Mean-low.Mean) > SeparationFactor(r)*(low.Std()+high.Std())
}

// Report is the bimodality classification of one column. For binormal columns, component 1
// is the low-mean state and component 2 the high-mean one. Otherwise component 1 is the single
// Gaussian, component 2 has NaN mean and variance and zero weight.
type Report struct {
	Column               string  `csv:"column"`
	Binormal             bool    `csv:"binormal"`
	Uninormal            bool    `csv:"uninormal"`
	InsufficientEvidence bool    `csv:"insuf_ev"`
	Bimodal              bool    `csv:"bimodal"`
	Mean1                float64 `csv:"mean1"`
	Mean2                float64 `csv:"mean2"`
	Var1                 float64 `csv:"var1"`
	Var2                 float64 `csv:"var2"`
	W1                   float64 `csv:"w1"`
	W2                   float64 `csv:"w2"`
	P                    float64 `csv:"p_binormal"`
	BIC1                 float64 `csv:"bic1"`
	BIC2                 float64 `csv:"bic2"`
}

// Evidence returns the Bayes factor decision stored in the report.
func (r *Report) Evidence() Evidence {
	switch {
	case r.Binormal:
		return Binormal
	case r.Uninormal:
		return Uninormal
	}
	return InsufficientEvidence
}

// Low returns the first (single or low-mean) component.
func (r *Report) Low() Component { return Component{r.Mean1, r.Var1, r.W1} }

// High returns the high-mean component. It has zero weight unless the column is binormal.
func (r *Report) High() Component { return Component{r.Mean2, r.Var2, r.W2} }

// Classify fits one- and two-component mixtures to data, decides between them with
// the Bayes factor and, for binormal columns, applies Helguero's criterion.
// column names the data in the report and in errors.
func Classify(column string, data []float64, o ...*Options) (*Report, error) {
	opts := DefaultOptions()
	if len(o) > 0 && o[0] != nil {
		opts = o[0]
	}
	if !helix.AllFinite(data) {
		return nil, helix.NewModelFitError(helix.NonFiniteData, column, "Classify")
	}
	m1, err := FitMixture(column, data, 1, opts)
	if err != nil {
		return nil, helix.ErrDecorate(err, "Classify")
	}
	bic2 := math.Inf(1)
	m2, status := fit(data, 2, opts)
	switch status {
	case fitNotConverged:
		return nil, helix.NewModelFitError(fmt.Sprintf("%s after %d iterations (2 components)", helix.NotConverged, opts.MaxIter()), column, "Classify")
	case fitDegenerate:
		log.Printf("bimodal: two-component fit of %s is degenerate, keeping one component", column)
	default:
		bic2 = m2.BIC
	}
	p, ev := BayesFactor(m1.BIC, bic2, opts.ConfidenceLevel())
	r := &Report{
		Column:               column,
		Binormal:             ev == Binormal,
		Uninormal:            ev == Uninormal,
		InsufficientEvidence: ev == InsufficientEvidence,
		P:                    p,
		BIC1:                 m1.BIC,
		BIC2:                 bic2,
	}
	if ev == Binormal {
		low, high := m2.Components[0], m2.Components[1]
		if low.Mean > high.Mean {
			low, high = high, low
		}
		r.Mean1, r.Var1, r.W1 = low.Mean, low.Variance, low.Weight
		r.Mean2, r.Var2, r.W2 = high.Mean, high.Variance, high.Weight
		r.Bimodal = Helguero(low, high)
		return r, nil
	}
	single := m1.Components[0]
	r.Mean1, r.Var1, r.W1 = single.Mean, single.Variance, single.Weight
	r.Mean2, r.Var2, r.W2 = math.NaN(), math.NaN(), 0
	return r, nil
}

// Synthesize draws a synthetic sample of about n points from the components of r, for plotting:
// int(n*w) points from each component with weight w. The sample reproduces the reported means
// and variances.
func Synthesize(r *Report, n int, seed int64) (low, high []float64) {
	rnd := rand.New(rand.NewSource(seed))
	draw := func(c Component) []float64 {
		m := int(float64(n) * c.Weight)
		if m <= 0 || math.IsNaN(c.Mean) || math.IsNaN(c.Variance) {
			return nil
		}
		ret := make([]float64, m)
		sd := c.Std()
		for i := range ret {
			ret[i] = c.Mean + sd*rnd.NormFloat64()
		}
		return ret
	}
	return draw(r.Low()), draw(r.High())
}
