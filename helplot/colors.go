/*
 * colors.go, part of gohelix.
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

package helplot

import (
	"image/color"
	"math"
)

// HSV converts a hue (0-360) and saturation and value (0-1) to an opaque RGBA color.
func HSV(h, s, v float64) color.RGBA {
	full := 255 * v
	if s == 0 {
		return color.RGBA{R: uint8(full), G: uint8(full), B: uint8(full), A: 255}
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return color.RGBA{R: uint8(r * full), G: uint8(g * full), B: uint8(b * full), A: 255}
}

// Spread returns the key-th of steps colors with hues spread over 260 degrees,
// skipping the yellows, which are hard to see on white.
func Spread(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	h := float64(key)*260/float64(steps) + 20
	if h < 55 {
		h -= 20
	} else {
		h += 20
	}
	return HSV(h, 0.8, 0.9)
}
