/*
 * ser.go, part of gohelix.
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

// Package ser reads the helical-parameter time series written by Canal (.ser files)
// and the one-column CSV tables derived from them.
package ser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/csimplestring/go-csv/detector"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	helix "github.com/gohelix/helix"
)

// sniffLines is the number of lines given to the delimiter detector.
const sniffLines = 10

// Verbose makes the package log which decompressor it picks.
var Verbose = false

//The zstd decoder doesn't close its input, so we close the file through this.
type closer struct {
	io.Reader
	closers []func() error
}

func (c *closer) Close() error {
	var err error
	for _, f := range c.closers {
		if e := f(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens a file for reading, transparently decompressing it if its extension is
// .gz (gzip), .zst/.zstd (zstandard) or .zz (raw deflate).
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %v", helix.UnableToOpen, err), name, 0, "Open")
	}
	var r io.Reader
	closers := []func() error{f.Close}
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, helix.NewMalformedTableError("Can't read gzip stream: "+err.Error(), name, 0, "Open")
		}
		r = gz
		closers = append([]func() error{gz.Close}, closers...)
	case ".zst", ".zstd":
		zs, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, helix.NewMalformedTableError("Can't read zstd stream: "+err.Error(), name, 0, "Open")
		}
		r = zs
		closers = append([]func() error{func() error { zs.Close(); return nil }}, closers...)
	case ".zz":
		fl := flate.NewReader(bufio.NewReader(f))
		r = fl
		closers = append([]func() error{fl.Close}, closers...)
	default:
		r = f
	}
	if Verbose && r != io.Reader(f) {
		log.Printf("ser: decompressing %s (%s)", name, ext)
	}
	return &closer{r, closers}, nil
}

// Read reads a .ser file. The first column is the snapshot index, the rest are data columns.
// If positions is not nil, only the data columns at those 1-based positions are kept,
// in file order, and the returned table remembers their original positions.
func Read(name string, positions []int) (*helix.Table, error) {
	f, err := Open(name)
	if err != nil {
		return nil, helix.ErrDecorate(err, "Read")
	}
	defer f.Close()
	t, err := Parse(f, name, positions)
	return t, helix.ErrDecorate(err, "Read")
}

// Delimiter guesses the field separator of a delimited text sample. It returns 0 when
// the sample is whitespace-separated.
func Delimiter(sample []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(sample), '"')
	for _, v := range delimiters {
		if v == "," || v == ";" || v == "|" {
			return rune(v[0])
		}
	}
	return 0
}

func splitter(delim rune) func(string) []string {
	if delim == 0 {
		return strings.Fields
	}
	return func(s string) []string {
		f := strings.Split(s, string(delim))
		for i, v := range f {
			f[i] = strings.TrimSpace(v)
		}
		return f
	}
}

func parseFloats(fields []string, dst []float64) error {
	for i, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

// Parse reads a series table from r. name is only used in error messages.
// See Read for the meaning of positions.
func Parse(r io.Reader, name string, positions []int) (*helix.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, helix.NewMalformedTableError(err.Error(), name, 0, "Parse")
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	sample := lines
	if len(sample) > sniffLines {
		sample = sample[:sniffLines]
	}
	split := splitter(Delimiter([]byte(strings.Join(sample, "\n"))))

	var header []string
	var ncols int = -1
	var index []float64
	var rows [][]float64
	for ln, line := range lines {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := split(line)
		if ncols < 0 {
			ncols = len(fields)
			row := make([]float64, ncols)
			if parseFloats(fields, row) != nil {
				header = fields
				continue
			}
		}
		if len(fields) != ncols {
			return nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %d fields, expected %d", helix.RaggedRow, len(fields), ncols), name, ln+1, "Parse")
		}
		row := make([]float64, ncols)
		if err := parseFloats(fields, row); err != nil {
			return nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %v", helix.NotANumber, err), name, ln+1, "Parse")
		}
		index = append(index, row[0])
		rows = append(rows, row[1:])
	}
	if len(rows) == 0 || ncols < 2 {
		return nil, helix.NewMalformedTableError(helix.EmptyTable, name, 0, "Parse")
	}
	ndata := ncols - 1
	keep, err := selectPositions(positions, ndata, name)
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, len(keep))
	names := make([]string, len(keep))
	for j, p := range keep {
		cols[j] = make([]float64, len(rows))
		for i, row := range rows {
			cols[j][i] = row[p-1]
		}
		if header != nil {
			names[j] = header[p]
		} else {
			names[j] = strconv.Itoa(p)
		}
	}
	t, err := helix.NewTable(index, names, keep, cols)
	return t, helix.ErrDecorate(err, "Parse")
}

func selectPositions(positions []int, ndata int, name string) ([]int, error) {
	if positions == nil {
		keep := make([]int, ndata)
		for i := range keep {
			keep[i] = i + 1
		}
		return keep, nil
	}
	keep, err := helix.CheckPositions(positions, ndata, 0)
	if err != nil {
		return nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %v (file has %d data columns)", helix.ColumnOutOfRange, positions, ndata), name, 0, "Parse")
	}
	return keep, nil
}
