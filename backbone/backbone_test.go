package backbone

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helix "github.com/gohelix/helix"
)

func constTable(t *testing.T, rows int, values ...float64) *helix.Table {
	cols := make([][]float64, len(values))
	for i, v := range values {
		cols[i] = make([]float64, rows)
		for j := range cols[i] {
			cols[i][j] = v
		}
	}
	tab, err := helix.FromColumns(nil, cols...)
	require.NoError(t, err)
	return tab
}

func randomTable(rnd *rand.Rand, rows, cols int, lo, hi float64) *helix.Table {
	d := make([][]float64, cols)
	for i := range d {
		d[i] = make([]float64, rows)
		for j := range d[i] {
			d[i][j] = lo + (hi-lo)*rnd.Float64()
		}
	}
	tab, _ := helix.FromColumns(nil, d...)
	return tab
}

func TestBIFromDifference(t *testing.T) {
	diff := constTable(t, 10, -20, -5, -0.1, -90)
	p := BIFromDifference(diff)
	bi, _ := p.Class(BI)
	bii, _ := p.Class(BII)
	assert.Equal(t, []float64{100, 100, 100, 100}, bi)
	assert.Equal(t, []float64{0, 0, 0, 0}, bii)
}

func TestBIPopulations(t *testing.T) {
	s1, s2 := "GCAT", "ATGC"
	//Watson: epsilon - zeta is -10 for the first half of the snapshots and +10 for the rest.
	epsW := constTable(t, 8, 200, 200, 200, 200)
	zetaW := constTable(t, 8, 210, 210, 210, 210)
	for c := 0; c < 4; c++ {
		for r := 4; r < 8; r++ {
			zetaW.Col(c)[r] = 190
		}
	}
	epsC := constTable(t, 8, 200, 200, 200, 200)
	zetaC := constTable(t, 8, 150, 150, 150, 150)
	p, err := BIPopulations(s1, s2, epsW, zetaW, epsC, zetaC)
	require.NoError(t, err)
	assert.Equal(t, helix.StrandLabels(s1, s2), p.Labels)
	bi, _ := p.Class(BI)
	bii, _ := p.Class(BII)
	require.Len(t, bi, 9)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 50.0, bi[i])
		assert.Equal(t, 0.0, bi[i+5])
	}
	assert.True(t, math.IsNaN(bi[4]), "the separator should be NaN")
	for i := range bi {
		if i == 4 {
			continue
		}
		assert.Equal(t, 100.0, bi[i]+bii[i])
	}
	tab := p.Table()
	assert.Equal(t, 9, tab.Rows())
	assert.Equal(t, []string{BI, BII}, tab.Names())

	_, err = BIPopulations("GCA", s2, epsW, zetaW, epsC, zetaC)
	var cerr *helix.ConfigurationError
	assert.True(t, errors.As(err, &cerr), "got %v", err)
}

func TestCanonicalAlphaGamma(t *testing.T) {
	s1, s2 := "GC", "GC"
	//-60 wraps to 300, 420 wraps to 60: canonical
	alphaW := constTable(t, 4, -60, 300)
	gammaW := constTable(t, 4, 420, 60)
	//gamma 180 (trans) is not canonical, nor is alpha exactly 240.
	alphaC := constTable(t, 4, 300, 240)
	gammaC := constTable(t, 4, 180, 60)
	p, err := CanonicalAlphaGamma(s1, s2, alphaW, gammaW, alphaC, gammaC)
	require.NoError(t, err)
	can, ok := p.Class(Canonical)
	require.True(t, ok)
	assert.Equal(t, 100.0, can[0])
	assert.Equal(t, 100.0, can[1])
	assert.True(t, math.IsNaN(can[2]))
	//Crick columns are reversed
	assert.Equal(t, 0.0, can[3])
	assert.Equal(t, 0.0, can[4])
	assert.True(t, IsCanonicalAlphaGamma(290, 50))
	assert.False(t, IsCanonicalAlphaGamma(360, 50))
}

func TestPuckeringClosure(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	s1, s2 := "GCGATC", "GATCGC"
	phaseW := randomTable(rnd, 1000, 6, -180, 540)
	phaseC := randomTable(rnd, 1000, 6, 0, 360)
	p, err := Puckering(s1, s2, phaseW, phaseC)
	require.NoError(t, err)
	assert.Equal(t, []string{North, East, West, South}, p.Classes)
	for pos := range p.Labels {
		if p.Labels[pos] == helix.SeparatorLabel {
			continue
		}
		var sum float64
		for c := range p.Classes {
			sum += p.Percent[c][pos]
		}
		assert.InDelta(t, 100, sum, 1e-9, "position %s", p.Labels[pos])
	}
}

func TestPuckerClass(t *testing.T) {
	cases := map[float64]string{0: North, 350: North, 90: East, 160: South, 270: West, 45: "", 135: "", 225: "", 315: ""}
	for phase, class := range cases {
		assert.Equal(t, class, PuckerClass(phase), "phase %v", phase)
	}
}
