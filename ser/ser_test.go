package ser

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helix "github.com/gohelix/helix"
)

const serSample = `    1   0.10   1.20  -0.30   2.00
    2   0.20   1.10  -0.40   2.10
    3   0.30   1.00  -0.50   NaN
`

func TestParseWhitespace(t *testing.T) {
	tab, err := Parse(strings.NewReader(serSample), "sample.ser", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Rows())
	assert.Equal(t, 4, tab.Cols())
	assert.Equal(t, []float64{1, 2, 3}, tab.Index())
	assert.Equal(t, []float64{1.2, 1.1, 1.0}, tab.Col(1))
	assert.Equal(t, "2", tab.Name(1))
	assert.True(t, math.IsNaN(tab.Col(3)[2]))
}

func TestParsePositions(t *testing.T) {
	tab, err := Parse(strings.NewReader(serSample), "sample.ser", []int{4, 2, 2})
	require.NoError(t, err)
	require.Equal(t, 2, tab.Cols())
	assert.Equal(t, 2, tab.Position(0))
	assert.Equal(t, 4, tab.Position(1))
	assert.Equal(t, []float64{1.2, 1.1, 1.0}, tab.Col(0))

	_, err = Parse(strings.NewReader(serSample), "sample.ser", []int{5})
	var merr *helix.MalformedTableError
	assert.True(t, errors.As(err, &merr), "got %v", err)
}

func TestParseHeaderAndCommas(t *testing.T) {
	in := "frame,a,b\n1,0.5,1.5\n2,0.7,1.7\n3,0.9,1.9\n"
	tab, err := Parse(strings.NewReader(in), "sample.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Names())
	assert.Equal(t, []float64{1.5, 1.7, 1.9}, tab.Col(1))
}

func TestParseMalformed(t *testing.T) {
	var merr *helix.MalformedTableError
	_, err := Parse(strings.NewReader("1 2 3\n2 3\n"), "ragged.ser", nil)
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.Equal(t, 2, merr.Line())
	assert.Equal(t, "ragged.ser", merr.FileName())

	_, err = Parse(strings.NewReader("1 2 3\n2 x 3\n"), "nan.ser", nil)
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.Equal(t, 2, merr.Line())

	_, err = Parse(strings.NewReader("\n\n"), "empty.ser", nil)
	assert.True(t, errors.As(err, &merr), "got %v", err)
}

func writeGzip(t *testing.T, path, content string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func writeZstd(t *testing.T, path, content string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestReadCompressed(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "canal_output_roll.ser")
	require.NoError(t, os.WriteFile(plain, []byte(serSample), 0o644))
	gz := filepath.Join(dir, "canal_output_roll.ser.gz")
	writeGzip(t, gz, serSample)
	zs := filepath.Join(dir, "canal_output_roll.ser.zst")
	writeZstd(t, zs, serSample)

	ref, err := Read(plain, nil)
	require.NoError(t, err)
	for _, name := range []string{gz, zs} {
		tab, err := Read(name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, ref.Index(), tab.Index())
		assert.Equal(t, ref.Col(0), tab.Col(0))
	}
	_, err = Read(filepath.Join(dir, "missing.ser"), nil)
	var merr *helix.MalformedTableError
	assert.True(t, errors.As(err, &merr))
}

const csvSample = `,shift
0,0.31
1,-0.12
2,0.05
`

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series_shift_AT.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvSample), 0o644))
	tab, labels, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Nil(t, labels)
	assert.Equal(t, []string{"shift"}, tab.Names())
	assert.Equal(t, []float64{0, 1, 2}, tab.Index())
	assert.Equal(t, []float64{0.31, -0.12, 0.05}, tab.Col(0))

	labelled := "base,mean,std\nCG,1.5,0.2\nGC,1.7,0.3\n"
	tab, labels, err = ParseCSV(strings.NewReader(labelled), "averages.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"CG", "GC"}, labels)
	assert.Equal(t, []float64{1, 2}, tab.Index())
	assert.Equal(t, []float64{0.2, 0.3}, tab.Col(1))

	_, _, err = ParseCSV(strings.NewReader("a,b\n1,2\n3\n"), "bad.csv")
	var merr *helix.MalformedTableError
	assert.True(t, errors.As(err, &merr), "got %v", err)
}

func TestReadCSVZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	z := zip.NewWriter(f)
	for _, name := range []string{"series_shift_AT.csv", "series_shift_TA.csv"} {
		w, err := z.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(csvSample))
		require.NoError(t, err)
	}
	require.NoError(t, z.Close())
	require.NoError(t, f.Close())

	tab, _, err := ReadCSV(path, "series_shift_TA.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Rows())

	_, _, err = ReadCSV(path)
	var cerr *helix.ConfigurationError
	assert.True(t, errors.As(err, &cerr), "ambiguous archive should need an inner file, got %v", err)
}
