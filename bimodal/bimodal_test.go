package bimodal

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	helix "github.com/gohelix/helix"
)

func normalSample(rnd *rand.Rand, n int, mean, sd float64) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = mean + sd*rnd.NormFloat64()
	}
	return ret
}

func testOptions() *Options {
	o := DefaultOptions()
	o.MaxIter(1000)
	return o
}

func TestClassifyUnimodal(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	data := normalSample(rnd, 2000, 3.5, 0.8)
	r, err := Classify("shift_AT", data, testOptions())
	require.NoError(t, err)
	assert.True(t, r.Uninormal, "p=%v bic1=%v bic2=%v", r.P, r.BIC1, r.BIC2)
	assert.False(t, r.Binormal)
	assert.False(t, r.Bimodal)
	assert.Equal(t, Uninormal, r.Evidence())
	assert.InDelta(t, stat.Mean(data, nil), r.Mean1, 1e-9)
	assert.InDelta(t, 0.64, r.Var1, 0.06)
	assert.Equal(t, 1.0, r.W1)
	assert.True(t, math.IsNaN(r.Mean2))
	assert.Equal(t, 0.0, r.W2)
}

func TestClassifyBimodal(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	data := append(normalSample(rnd, 1200, -20, 4), normalSample(rnd, 800, 25, 5)...)
	rnd.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	r, err := Classify("twist_CG", data, testOptions())
	require.NoError(t, err)
	assert.True(t, r.Binormal, "p=%v", r.P)
	assert.True(t, r.Bimodal)
	assert.False(t, r.InsufficientEvidence)
	assert.Less(t, r.Mean1, r.Mean2)
	assert.InDelta(t, -20, r.Mean1, 0.5)
	assert.InDelta(t, 25, r.Mean2, 0.5)
	assert.InDelta(t, 0.6, r.W1, 0.03)
	assert.InDelta(t, 1, r.W1+r.W2, 1e-9)

	low, high := Synthesize(r, 1000, 3)
	assert.Equal(t, int(1000*r.W1), len(low))
	assert.Equal(t, int(1000*r.W2), len(high))
	assert.InDelta(t, r.Mean1, stat.Mean(low, nil), 0.6)
	assert.InDelta(t, r.Mean2, stat.Mean(high, nil), 0.8)
}

func TestBayesFactor(t *testing.T) {
	p, ev := BayesFactor(100, 100, 5)
	assert.Equal(t, 0.5, p)
	assert.Equal(t, InsufficientEvidence, ev)

	p, ev = BayesFactor(100, 50, 5)
	assert.Greater(t, p, 0.95)
	assert.Equal(t, Binormal, ev)

	p, ev = BayesFactor(50, 100, 5)
	assert.Less(t, p, 0.05)
	assert.Equal(t, Uninormal, ev)

	p, ev = BayesFactor(math.NaN(), 10, 5)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, Binormal, ev)

	p, ev = BayesFactor(10, math.Inf(1), 5)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, Uninormal, ev)

	p, ev = BayesFactor(math.NaN(), math.NaN(), 5)
	assert.True(t, math.IsNaN(p))
	assert.Equal(t, InsufficientEvidence, ev)
}

func TestHelguero(t *testing.T) {
	assert.InDelta(t, 1, SeparationFactor(1), 1e-12)
	//equal variances: bimodal if the means are more than 2 sd apart
	assert.False(t, Helguero(Component{0, 1, 0.5}, Component{1.9, 1, 0.5}))
	assert.True(t, Helguero(Component{0, 1, 0.5}, Component{2.1, 1, 0.5}))
}

func TestClassifyErrors(t *testing.T) {
	var ferr *helix.ModelFitError
	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = 2.5
	}
	_, err := Classify("rise_GC", constant)
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, "rise_GC", ferr.Column())

	withNaN := []float64{1, 2, math.NaN(), 3, 4, 5, 6, 7}
	_, err = Classify("rise_GC", withNaN)
	assert.True(t, errors.As(err, &ferr), "got %v", err)

	rnd := rand.New(rand.NewSource(5))
	o := DefaultOptions()
	o.MaxIter(1)
	_, err = FitMixture("roll_AA", normalSample(rnd, 500, 0, 1), 2, o)
	assert.True(t, errors.As(err, &ferr), "one iteration can't converge, got %v", err)
}

func TestFitMixtureRestarts(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	data := append(normalSample(rnd, 500, 0, 1), normalSample(rnd, 500, 10, 1)...)
	o := testOptions()
	o.Restarts(3)
	o.Seed(42)
	m, err := FitMixture("tilt_TA", data, 2, o)
	require.NoError(t, err)
	again, err := FitMixture("tilt_TA", data, 2, o)
	require.NoError(t, err)
	assert.Equal(t, m.Components, again.Components, "seeded fits should be reproducible")
	assert.Equal(t, 2, m.K())
	assert.InDelta(t, BIC(m.LogLikelihood, 2, len(data)), m.BIC, 1e-9)
}
