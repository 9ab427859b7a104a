/*
 * gmm.go, part of gohelix.
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

// Package bimodal decides whether a helical parameter has one or two conformational states,
// by fitting one- and two-component Gaussian mixtures and comparing them.
package bimodal

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	helix "github.com/gohelix/helix"
)

// Component is one Gaussian of a mixture.
type Component struct {
	Mean     float64
	Variance float64
	Weight   float64
}

// Std returns the standard deviation of the component.
func (c Component) Std() float64 { return math.Sqrt(c.Variance) }

// Mixture is a fitted one-dimensional Gaussian mixture.
type Mixture struct {
	Components    []Component
	LogLikelihood float64 //mean over the samples
	BIC           float64
	Iterations    int
}

// K returns the number of components.
func (m *Mixture) K() int { return len(m.Components) }

// FreeParameters returns the number of free parameters of a one-dimensional
// mixture of k Gaussians: k means, k variances and k-1 weights.
func FreeParameters(k int) int { return 3*k - 1 }

// BIC returns the Bayesian information criterion of a model with the given mean
// log-likelihood and number of components, fitted to n samples.
func BIC(meanLogLikelihood float64, k, n int) float64 {
	return -2*meanLogLikelihood*float64(n) + float64(FreeParameters(k))*math.Log(float64(n))
}

type fitStatus int

const (
	fitOK fitStatus = iota
	fitNotConverged
	fitDegenerate
)

// FitMixture fits a mixture of k Gaussians to data with the EM algorithm. The first fit starts
// from the data sorted and split into k equal chunks. Options.Restarts additional fits start from
// randomly chosen data points, and the one with the highest likelihood is returned.
// A ModelFitError naming column is returned if no fit converges or every fit produces a
// degenerate component.
func FitMixture(column string, data []float64, k int, o *Options) (*Mixture, error) {
	m, status := fit(data, k, o)
	switch status {
	case fitNotConverged:
		return nil, helix.NewModelFitError(fmt.Sprintf("%s after %d iterations (%d components)", helix.NotConverged, o.MaxIter(), k), column, "FitMixture")
	case fitDegenerate:
		return nil, helix.NewModelFitError(fmt.Sprintf("%s (%d components)", helix.DegenerateModel, k), column, "FitMixture")
	}
	return m, nil
}

func fit(data []float64, k int, o *Options) (*Mixture, fitStatus) {
	if o == nil {
		o = DefaultOptions()
	}
	if k < 1 || len(data) < FreeParameters(k)+1 || !helix.AllFinite(data) {
		return nil, fitDegenerate
	}
	if stat.Variance(data, nil) <= 0 {
		return nil, fitDegenerate
	}
	var best *Mixture
	worst := fitDegenerate
	rnd := rand.New(rand.NewSource(o.Seed()))
	for try := 0; try <= o.Restarts(); try++ {
		var init []Component
		if try == 0 {
			init = quantileInit(data, k, o.RegCovar())
		} else {
			init = randomInit(data, k, o.RegCovar(), rnd)
		}
		m, status := em(data, init, o)
		if status != fitOK {
			if status == fitNotConverged {
				worst = fitNotConverged
			}
			continue
		}
		if best == nil || m.LogLikelihood > best.LogLikelihood {
			best = m
		}
	}
	if best == nil {
		return nil, worst
	}
	return best, fitOK
}

func quantileInit(data []float64, k int, reg float64) []Component {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	ret := make([]Component, k)
	n := len(sorted)
	for j := range ret {
		chunk := sorted[j*n/k : (j+1)*n/k]
		mean, variance := stat.MeanVariance(chunk, nil)
		if len(chunk) < 2 || math.IsNaN(variance) {
			variance = 0
		}
		ret[j] = Component{Mean: mean, Variance: variance + reg, Weight: float64(len(chunk)) / float64(n)}
	}
	return ret
}

func randomInit(data []float64, k int, reg float64, rnd *rand.Rand) []Component {
	variance := stat.Variance(data, nil)
	ret := make([]Component, k)
	for j, idx := range rnd.Perm(len(data))[:k] {
		ret[j] = Component{Mean: data[idx], Variance: variance + reg, Weight: 1 / float64(k)}
	}
	return ret
}

// estep fills resp with the responsibility of each component for each point and returns
// the mean log-likelihood.
func estep(data []float64, comps []Component, resp [][]float64) float64 {
	dists := make([]distuv.Normal, len(comps))
	logw := make([]float64, len(comps))
	for j, c := range comps {
		dists[j] = distuv.Normal{Mu: c.Mean, Sigma: math.Sqrt(c.Variance)}
		logw[j] = math.Log(c.Weight)
	}
	logp := make([]float64, len(comps))
	var ll float64
	for i, x := range data {
		for j := range comps {
			logp[j] = logw[j] + dists[j].LogProb(x)
		}
		lse := floats.LogSumExp(logp)
		ll += lse
		for j := range comps {
			resp[j][i] = math.Exp(logp[j] - lse)
		}
	}
	return ll / float64(len(data))
}

// mstep updates comps from the responsibilities. It returns false if a component is
// left without points or with a non-finite parameter.
func mstep(data []float64, resp [][]float64, comps []Component, reg float64) bool {
	n := float64(len(data))
	for j := range comps {
		nk := floats.Sum(resp[j]) + 10*floatEps
		mean := floats.Dot(resp[j], data) / nk
		var v float64
		for i, x := range data {
			d := x - mean
			v += resp[j][i] * d * d
		}
		v = v/nk + reg
		comps[j] = Component{Mean: mean, Variance: v, Weight: nk / n}
		if nk < 1 || v <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

const floatEps = 2.220446049250313e-16

func em(data []float64, init []Component, o *Options) (*Mixture, fitStatus) {
	k := len(init)
	comps := append([]Component(nil), init...)
	resp := make([][]float64, k)
	for j := range resp {
		resp[j] = make([]float64, len(data))
	}
	prev := math.Inf(-1)
	converged := false
	iter := 0
	for iter = 1; iter <= o.MaxIter(); iter++ {
		ll := estep(data, comps, resp)
		if !mstep(data, resp, comps, o.RegCovar()) {
			return nil, fitDegenerate
		}
		if math.Abs(ll-prev) < o.Tol() {
			converged = true
			break
		}
		prev = ll
	}
	if !converged {
		return nil, fitNotConverged
	}
	ll := estep(data, comps, resp)
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		return nil, fitDegenerate
	}
	return &Mixture{
		Components:    comps,
		LogLikelihood: ll,
		BIC:           BIC(ll, k, len(data)),
		Iterations:    iter,
	}, fitOK
}
