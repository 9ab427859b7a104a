/*
 * helstat_test.go, part of gohelix.
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
 */

package helstat

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"

	helix "github.com/gohelix/helix"
)

// gaussianTable draws n snapshots from a zero-mean multivariate Gaussian with covariance C.
func gaussianTable(Te *testing.T, C *mat.SymDense, n int, seed int64) *helix.Table {
	var chol mat.Cholesky
	if !chol.Factorize(C) {
		Te.Fatal("test covariance is not positive definite")
	}
	var L mat.TriDense
	chol.LTo(&L)
	k := C.SymmetricDim()
	r := rand.New(rand.NewSource(seed))
	cols := make([][]float64, k)
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	z := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := range z {
			z[j] = r.NormFloat64()
		}
		for a := 0; a < k; a++ {
			var s float64
			for b := 0; b <= a; b++ {
				s += L.At(a, b) * z[b]
			}
			cols[a][i] = s
		}
	}
	t, err := helix.FromColumns(nil, cols...)
	if err != nil {
		Te.Fatal(err)
	}
	return t
}

var testCov = mat.NewSymDense(6, []float64{
	0.50, 0.10, 0.00, 0.20, 0.00, 0.05,
	0.10, 0.40, 0.05, 0.00, 0.10, 0.00,
	0.00, 0.05, 0.09, 0.00, 0.00, 0.02,
	0.20, 0.00, 0.00, 9.00, 1.00, 0.50,
	0.00, 0.10, 0.00, 1.00, 16.0, -2.0,
	0.05, 0.00, 0.02, 0.50, -2.0, 25.0,
})

func TestMoments(Te *testing.T) {
	t, _ := helix.FromColumns([]string{"a", "b"}, []float64{1, 2, 3, 4}, []float64{2, 2, 2, math.NaN()})
	m := Means(t)
	s := StdDevs(t)
	if m[0] != 2.5 || math.Abs(s[0]-math.Sqrt(5.0/3.0)) > 1e-12 {
		Te.Errorf("wrong moments %v %v", m, s)
	}
	if !math.IsNaN(m[1]) {
		Te.Errorf("NaN should propagate to the mean, got %v", m[1])
	}
	sum := Summarize(t)
	fmt.Printf("%+v\n", sum)
	if sum[0].Label != "a" || sum[0].Median != 2.5 || sum[0].Min != 1 || sum[0].Max != 4 {
		Te.Errorf("wrong summary %+v", sum[0])
	}
	if !math.IsNaN(sum[1].Median) {
		Te.Errorf("order statistics of a column with NaN should be NaN, got %+v", sum[1])
	}
	c := Covariance(t)
	if math.Abs(c.At(0, 0)-5.0/3.0) > 1e-12 {
		Te.Errorf("wrong variance %v", c.At(0, 0))
	}
}

func TestDiagonalStiffness(Te *testing.T) {
	C := mat.NewSymDense(3, []float64{
		1.0, 0.3, 0.1,
		0.3, 2.0, -0.4,
		0.1, -0.4, 0.5,
	})
	t := gaussianTable(Te, C, 3000, 1)
	stiff, err := DiagonalStiffness(t, DefaultKT, helix.LengthScale)
	if err != nil {
		Te.Fatal(err)
	}
	//independent inversion of the same covariance.
	cov := Covariance(t)
	elements := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			elements = append(elements, cov.At(i, j))
		}
	}
	inv, err := matrix.MakeDenseMatrix(elements, 3, 3).Inverse()
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range stiff {
		expected := inv.Get(i, i) * DefaultKT * helix.LengthScale
		if math.Abs(v-expected) > 1e-8*math.Abs(expected) {
			Te.Errorf("stiffness %d: %v, expected %v", i, v, expected)
		}
	}
}

func TestFullStiffnessRoundTrip(Te *testing.T) {
	t := gaussianTable(Te, testCov, 20000, 2)
	ones := []float64{1, 1, 1, 1, 1, 1}
	stiff, err := FullStiffness(t, DefaultKT, ones)
	if err != nil {
		Te.Fatal(err)
	}
	//inverse(stiffness/KT) is the covariance.
	var rec mat.Dense
	var s mat.Dense
	s.Scale(1/DefaultKT, stiff)
	if err := rec.Inverse(&s); err != nil {
		Te.Fatal(err)
	}
	sample := Covariance(t)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if d := math.Abs(rec.At(i, j) - sample.At(i, j)); d > 1e-8*math.Max(1, math.Abs(sample.At(i, j))) {
				Te.Errorf("element %d,%d: recovered %v, sample covariance %v", i, j, rec.At(i, j), sample.At(i, j))
			}
			if d := math.Abs(rec.At(i, j) - testCov.At(i, j)); d > 0.08*math.Sqrt(testCov.At(i, i)*testCov.At(j, j)) {
				Te.Errorf("element %d,%d: recovered %v, true covariance %v", i, j, rec.At(i, j), testCov.At(i, j))
			}
		}
	}
	scaled, err := FullStiffness(t, DefaultKT, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if scaled.At(i, j) != scaled.At(j, i) {
				Te.Errorf("stiffness matrix not symmetric at %d,%d", i, j)
			}
		}
		expected := stiff.At(i, i) * DefaultScaling()[i]
		if math.Abs(scaled.At(i, i)-expected) > 1e-12*math.Abs(expected) {
			Te.Errorf("diagonal %d scaled to %v, expected %v", i, scaled.At(i, i), expected)
		}
	}
	if _, err := FullStiffness(t, DefaultKT, []float64{1, 2}); err == nil {
		Te.Error("short scaling accepted")
	}
}

func TestSingularCovariance(Te *testing.T) {
	alt := make([]float64, 40)
	for i := range alt {
		alt[i] = float64(1 + i%2)
	}
	var serr *helix.SingularMatrixError
	t, _ := helix.FromColumns(nil, alt, append([]float64(nil), alt...))
	s, err := DiagonalStiffness(t, DefaultKT, 1)
	if !errors.As(err, &serr) {
		Te.Errorf("duplicated columns should give a SingularMatrixError, got %v %v", s, err)
	}
	fmt.Println(err)
	constant := make([]float64, 40)
	t, _ = helix.FromColumns(nil, alt, constant)
	if _, err := DiagonalStiffness(t, DefaultKT, 1); !errors.As(err, &serr) {
		Te.Errorf("a constant column should give a SingularMatrixError, got %v", err)
	}
	t, _ = helix.FromColumns(nil, []float64{1})
	if _, err := DiagonalStiffness(t, DefaultKT, 1); !errors.As(err, &serr) {
		Te.Errorf("a single snapshot should give a SingularMatrixError, got %v", err)
	}
	nan := append([]float64(nil), alt...)
	nan[3] = math.NaN()
	t, _ = helix.FromColumns(nil, nan)
	if _, err := DiagonalStiffness(t, DefaultKT, 1); !errors.As(err, &serr) {
		Te.Errorf("NaN data should give a SingularMatrixError, got %v", err)
	}
}

func TestCorrelationKind(Te *testing.T) {
	cases := []struct {
		a, b helix.Kind
		s    Statistic
	}{
		{helix.Linear, helix.Linear, Pearson},
		{helix.Circular, helix.Circular, Circular},
		{helix.Linear, helix.Circular, CircularLinear},
		{helix.Circular, helix.Linear, CircularLinear},
	}
	for _, c := range cases {
		if s := CorrelationKind(c.a, c.b); s != c.s {
			Te.Errorf("%v-%v: got %v expected %v", c.a, c.b, s, c.s)
		}
	}
}

func TestCorrelate(Te *testing.T) {
	r := rand.New(rand.NewSource(3))
	n := 500
	shear := make([]float64, n)
	buckle := make([]float64, n)
	twist := make([]float64, n)
	noise := make([]float64, n)
	for i := 0; i < n; i++ {
		shear[i] = r.NormFloat64() * 0.3
		buckle[i] = 20*shear[i] + r.NormFloat64()*5
		twist[i] = 34 + 4*r.NormFloat64()
		noise[i] = r.NormFloat64()
	}
	t, _ := helix.FromColumns([]string{"shear", "buckle", "twist", "noise"}, shear, buckle, twist, noise)
	kinds := ParameterKinds([]helix.Parameter{helix.Shear, helix.Buckle, helix.Twist, helix.Shear})
	c, err := Correlate(t, kinds)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(mat.Formatted(c))
	for i := 0; i < 4; i++ {
		if c.At(i, i) != 1 {
			Te.Errorf("self correlation %d is %v", i, c.At(i, i))
		}
		for j := 0; j < 4; j++ {
			if c.At(i, j) != c.At(j, i) {
				Te.Errorf("not symmetric at %d,%d", i, j)
			}
			if c.At(i, j) < -1 || c.At(i, j) > 1 {
				Te.Errorf("out of bounds at %d,%d: %v", i, j, c.At(i, j))
			}
		}
	}
	if c.At(0, 1) < 0.5 {
		Te.Errorf("shear and buckle should be correlated, got %v", c.At(0, 1))
	}
	if math.Abs(c.At(0, 3)) > 0.2 {
		Te.Errorf("independent columns correlated: %v", c.At(0, 3))
	}
}

func TestCorrelationStatistics(Te *testing.T) {
	x := []float64{10, 20, 25, 40, 33, 12, 18}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = -2*v + 3
	}
	if r := PearsonCorrelation(x, y); math.Abs(r+1) > 1e-12 {
		Te.Errorf("perfect anticorrelation gave %v", r)
	}
	if r := CircularCorrelation(x, x); math.Abs(r-1) > 1e-12 {
		Te.Errorf("circular self correlation gave %v", r)
	}
	//a linear variable that follows the angle
	lin := make([]float64, len(x))
	for i, v := range x {
		lin[i] = math.Sin(helix.Deg2Rad(v))
	}
	r := CircularLinearCorrelation(lin, x)
	if r < 0.99 || r > 1 {
		Te.Errorf("circular-linear correlation of a function of the angle gave %v", r)
	}
	if r2 := Correlation(x, helix.Circular, lin, helix.Linear); r2 != r {
		Te.Errorf("argument order changed the circular-linear result: %v %v", r, r2)
	}
}

func TestAutoCorrelation(Te *testing.T) {
	r := rand.New(rand.NewSource(4))
	x := make([]float64, 300)
	for i := range x {
		x[i] = math.Sin(2*math.Pi*float64(i)/20) + 0.1*r.NormFloat64()
	}
	acf := AutoCorrelation(x, 50)
	if len(acf) != 51 || acf[0] != 1 {
		Te.Fatalf("bad autocorrelation start: len %d, acf[0]=%v", len(acf), acf[0])
	}
	if acf[10] > -0.5 || acf[20] < 0.5 {
		Te.Errorf("periodicity not captured: acf[10]=%v acf[20]=%v", acf[10], acf[20])
	}
	//direct sums
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var c0 float64
	for _, v := range x {
		c0 += (v - mean) * (v - mean)
	}
	for _, k := range []int{1, 7, 33} {
		var ck float64
		for t := 0; t+k < len(x); t++ {
			ck += (x[t] - mean) * (x[t+k] - mean)
		}
		if math.Abs(ck/c0-acf[k]) > 1e-9 {
			Te.Errorf("lag %d: FFT %v direct %v", k, acf[k], ck/c0)
		}
	}
	if AutoCorrelation([]float64{1}, 3) != nil {
		Te.Error("autocorrelation of a single point")
	}
}
