package helplot

import (
	"bytes"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/backbone"
	"github.com/gohelix/helix/bimodal"
	"github.com/gohelix/helix/histo"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestAveragesAndProfile(t *testing.T) {
	labels := []string{"CATG", "AACG", "ACGT"}
	p, err := Averages("Helical Parameter: Roll", "Roll (Degrees)", labels, []float64{3, 5, -1}, []float64{1, 2, 1.5})
	require.NoError(t, err)
	b, err := Encode(p, "png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = Averages("x", "y", labels, []float64{1}, []float64{1})
	var oe *helix.OutputError
	assert.ErrorAs(t, err, &oe)

	//a column with a NaN frame has a NaN mean, which is left out of the figure.
	p, err = Averages("Helical Parameter: Roll", "Roll (Degrees)", labels, []float64{3, math.NaN(), -1}, []float64{1, math.NaN(), 1.5})
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)
	p, err = Averages("Helical Parameter: Roll", "Roll (Degrees)", labels[:1], []float64{math.NaN()}, []float64{math.NaN()})
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)

	p, err = Profile("Stiffness", "Sequence Base Pair", "Roll", labels, []float64{0.02, math.NaN(), 0.03})
	require.NoError(t, err)
	b, err = Encode(p, ".jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestHeatmapAndPopulations(t *testing.T) {
	m := mat.NewSymDense(3, []float64{1, 0.5, -0.2, 0.5, 1, 0.1, -0.2, 0.1, 1})
	p, err := Heatmap("Correlation", []string{"shift", "slide", "rise"}, m)
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)

	pop := &backbone.Populations{
		Classes: []string{backbone.BI, backbone.BII},
		Labels:  []string{"G5'-1", "C3'-2", "-", "G5'-2", "C3'-1"},
		Percent: [][]float64{{80, 60, math.NaN(), 70, 90}, {20, 40, math.NaN(), 30, 10}},
	}
	p, err = Populations("BI/BII Population", "BI/BII Population (%)", pop)
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)
}

func TestHistogramsAndTimeSeries(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	data := make([]float64, 500)
	index := make([]float64, 500)
	for i := range data {
		data[i] = 30 + 5*rnd.NormFloat64()
		index[i] = float64(i)
	}
	p, err := Histogram("Distribution", "Twist (Degrees)", histo.New("twist", data))
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)

	p, err = TimeSeries("Helical Parameter vs Time", "Twist (Degrees)", index, data, 10)
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)

	r := &bimodal.Report{Binormal: true, Mean1: 20, Var1: 4, W1: 0.5, Mean2: 40, Var2: 9, W2: 0.5}
	low, high := bimodal.Synthesize(r, 1000, 2)
	p, err = Bimodality("Distribution of twist states", "Twist (Degrees)", r, low, high, 50)
	require.NoError(t, err)
	_, err = Encode(p, "png")
	require.NoError(t, err)
	assert.Equal(t, "jpg", FormatOf("/tmp/out.JPG"))
}

func TestColors(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, A: 255}, HSV(0, 1, 1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, HSV(120, 1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, HSV(240, 1, 1))
	assert.Equal(t, color.RGBA{R: 127, G: 127, B: 127, A: 255}, HSV(77, 0, 0.5))
	seen := map[color.RGBA]bool{}
	for i := 0; i < 4; i++ {
		seen[Spread(i, 4)] = true
	}
	assert.Len(t, seen, 4, "population classes need distinct colors")
}
