/*
 * timecorr.go, part of gohelix.
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
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

// crossCorr returns the unnormalized cross-correlation sums of the mean-centered x and y
// for lags 0 to maxLag, where lag k pairs x[t] with y[t+k]. The series are zero-padded to
// twice their length so the FFT correlation is not circular.
func crossCorr(x, y []float64, maxLag int) []float64 {
	n := len(x)
	xmean := stat.Mean(x, nil)
	ymean := stat.Mean(y, nil)
	xpad := make([]complex128, 2*n)
	ypad := make([]complex128, 2*n)
	for i := range x {
		xpad[i] = complex(x[i]-xmean, 0)
		ypad[i] = complex(y[i]-ymean, 0)
	}
	f := fourier.NewCmplxFFT(len(xpad))
	f.Coefficients(xpad, xpad)
	f.Coefficients(ypad, ypad)
	cmplxMulConj(ypad, xpad)
	f.Sequence(ypad, ypad)
	ret := make([]float64, maxLag+1)
	scale := 1 / float64(len(ypad)) //the inverse transform is not normalized
	for i := range ret {
		ret[i] = real(ypad[i]) * scale
	}
	return ret
}

func checkLag(n, maxLag int) int {
	if maxLag < 0 || maxLag >= n {
		return n - 1
	}
	return maxLag
}

// AutoCorrelation returns the normalized autocorrelation function of the time series x for
// lags 0 to maxLag (all lags if maxLag is negative or too large). The value at lag 0 is 1.
// It returns nil if x has fewer than 2 points, and NaNs if x is constant or not finite.
func AutoCorrelation(x []float64, maxLag int) []float64 {
	if len(x) < 2 {
		return nil
	}
	maxLag = checkLag(len(x), maxLag)
	c := crossCorr(x, x, maxLag)
	c0 := c[0]
	for i := range c {
		if c0 <= 0 {
			c[i] = math.NaN()
			continue
		}
		c[i] /= c0
	}
	return c
}
