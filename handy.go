/*
 * handy.go, part of gohelix.
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

package helix

import "math"

const deg2rad = math.Pi / 180

func Deg2Rad(f float64) float64 {
	return f * deg2rad
}

func Rad2Deg(f float64) float64 {
	return f / deg2rad
}

// Deg2RadSlice returns a new slice with the elements of f converted to radians.
func Deg2RadSlice(f []float64) []float64 {
	ret := make([]float64, len(f))
	for i, v := range f {
		ret[i] = v * deg2rad
	}
	return ret
}

// WrapDegrees maps an angle in degrees into [0,360). NaN and infinities are returned unchanged.
func WrapDegrees(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r := math.Mod(f, 360)
	if r < 0 {
		r += 360
	}
	//-1e-20 + 360 rounds to 360
	if r >= 360 {
		r = 0
	}
	return r
}

// AllFinite returns true if no element of f is NaN or infinite.
func AllFinite(f []float64) bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Finite returns the finite elements of f, in order.
func Finite(f []float64) []float64 {
	ret := make([]float64, 0, len(f))
	for _, v := range f {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			ret = append(ret, v)
		}
	}
	return ret
}
