/*
 * export.go, part of gohelix.
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

// Package export writes the results of the analyses. Outputs are collected in memory
// and only written, each through a temporary file and a rename, once every
// one of them has been produced, so a failed analysis leaves no partial files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zip"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/helplot"
)

type file struct {
	name string
	data []byte
}

// Outputs is a set of files to be written together.
type Outputs struct {
	files []file
}

// Add queues data to be written to name.
func (O *Outputs) Add(name string, data []byte) {
	O.files = append(O.files, file{name, data})
}

// Len returns the number of queued files.
func (O *Outputs) Len() int { return len(O.files) }

// Names returns the names of the queued files, in order.
func (O *Outputs) Names() []string {
	ret := make([]string, len(O.files))
	for i, v := range O.files {
		ret[i] = v.name
	}
	return ret
}

// AddRecords queues a CSV file with one row per element of records, which must be a slice of
// structs (or pointers to structs) with csv tags.
func (O *Outputs) AddRecords(name string, records interface{}) error {
	b, err := Records(records)
	if err != nil {
		return wrap(err, name, "export.AddRecords")
	}
	O.Add(name, b)
	return nil
}

// AddColumns queues a CSV file with one row per label and one column per name.
func (O *Outputs) AddColumns(name, indexName string, labels, names []string, cols [][]float64) error {
	b, err := Columns(indexName, labels, names, cols)
	if err != nil {
		return wrap(err, name, "export.AddColumns")
	}
	O.Add(name, b)
	return nil
}

// AddMatrix queues a CSV file with a labeled square matrix.
func (O *Outputs) AddMatrix(name, indexName string, labels []string, m mat.Matrix) error {
	b, err := Matrix(indexName, labels, m)
	if err != nil {
		return wrap(err, name, "export.AddMatrix")
	}
	O.Add(name, b)
	return nil
}

// AddPlot queues a figure, in the format given by the extension of name.
func (O *Outputs) AddPlot(name string, p *plot.Plot) error {
	b, err := helplot.Encode(p, helplot.FormatOf(name))
	if err != nil {
		return wrap(err, name, "export.AddPlot")
	}
	O.Add(name, b)
	return nil
}

// Commit writes all queued files. Every file is first written to a temporary file in its
// final directory, and only when all of them are in place are they renamed. If any
// temporary file can't be written, all of them are removed and nothing is replaced.
func (O *Outputs) Commit() error {
	staged := make([]string, 0, len(O.files))
	clean := func(tmps []string) {
		for _, t := range tmps {
			os.Remove(t)
		}
	}
	for _, f := range O.files {
		tmp, err := stage(f.name, f.data)
		if err != nil {
			clean(staged)
			return helix.ErrDecorate(err, "export.Commit")
		}
		staged = append(staged, tmp)
	}
	for i, f := range O.files {
		if err := os.Rename(staged[i], f.name); err != nil {
			clean(staged[i:])
			return helix.NewOutputError(fmt.Sprintf("%s: %v", helix.UnableToWrite, err), f.name, "export.Commit")
		}
	}
	O.files = nil
	return nil
}

// stage writes data to a temporary file next to name and returns the temporary name.
func stage(name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp*")
	if err != nil {
		return "", helix.NewOutputError(fmt.Sprintf("%s: %v", helix.UnableToWrite, err), name, "stage")
	}
	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", helix.NewOutputError(fmt.Sprintf("%s: %v", helix.UnableToWrite, err), name, "stage")
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", helix.NewOutputError(fmt.Sprintf("%s: %v", helix.UnableToWrite, err), name, "stage")
	}
	return tmp.Name(), nil
}

// WriteFile atomically replaces name with data.
func WriteFile(name string, data []byte) error {
	var o Outputs
	o.Add(name, data)
	return helix.ErrDecorate(o.Commit(), "export.WriteFile")
}

// Complete returns true if all the given files exist and are not empty.
func Complete(names ...string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		info, err := os.Stat(n)
		if err != nil || info.IsDir() || info.Size() == 0 {
			return false
		}
	}
	return true
}

// Records renders a slice of tagged structs as CSV.
func Records(records interface{}) ([]byte, error) {
	b, err := gocsv.MarshalBytes(records)
	if err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "Records")
	}
	return b, nil
}

// wrap decorates the library errors, and turns any other into an OutputError for name.
func wrap(err error, name, caller string) error {
	if _, ok := err.(helix.Error); ok {
		return helix.ErrDecorate(err, caller+" "+name)
	}
	return helix.NewOutputError(err.Error(), name, caller)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Columns renders columns of values as CSV, with a header and the labels as the first column.
func Columns(indexName string, labels, names []string, cols [][]float64) ([]byte, error) {
	if len(names) != len(cols) {
		return nil, helix.NewOutputError(fmt.Sprintf("%d names for %d columns", len(names), len(cols)), "", "Columns")
	}
	for i, c := range cols {
		if len(c) != len(labels) {
			return nil, helix.NewOutputError(fmt.Sprintf("column %s has %d values for %d labels", names[i], len(c), len(labels)), "", "Columns")
		}
	}
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	w.Write(append([]string{indexName}, names...))
	row := make([]string, len(cols)+1)
	for i, l := range labels {
		row[0] = l
		for j, c := range cols {
			row[j+1] = ftoa(c[i])
		}
		w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "Columns")
	}
	return b.Bytes(), nil
}

// Matrix renders a labeled square matrix as CSV: a header with indexName and the labels,
// then one row per label.
func Matrix(indexName string, labels []string, m mat.Matrix) ([]byte, error) {
	r, c := m.Dims()
	if r != len(labels) || c != len(labels) {
		return nil, helix.NewOutputError(fmt.Sprintf("%d labels for a %dx%d matrix", len(labels), r, c), "", "Matrix")
	}
	cols := make([][]float64, c)
	for j := range cols {
		cols[j] = make([]float64, r)
		for i := range cols[j] {
			cols[j][i] = m.At(i, j)
		}
	}
	return Columns(indexName, labels, labels, cols)
}

// Archive builds a zip file in memory.
type Archive struct {
	b bytes.Buffer
	w *zip.Writer
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	a := new(Archive)
	a.w = zip.NewWriter(&a.b)
	return a
}

// Add stores data in the archive as name.
func (A *Archive) Add(name string, data []byte) error {
	h := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: time.Now()}
	w, err := A.w.CreateHeader(h)
	if err != nil {
		return helix.NewOutputError(err.Error(), name, "export.Archive.Add")
	}
	if _, err := w.Write(data); err != nil {
		return helix.NewOutputError(err.Error(), name, "export.Archive.Add")
	}
	return nil
}

// AddRecords stores a CSV rendering of records in the archive. See Records.
func (A *Archive) AddRecords(name string, records interface{}) error {
	b, err := Records(records)
	if err != nil {
		return wrap(err, name, "export.Archive.AddRecords")
	}
	return A.Add(name, b)
}

// AddPlot stores a figure in the archive, in the format given by the extension of name.
func (A *Archive) AddPlot(name string, p *plot.Plot) error {
	b, err := helplot.Encode(p, helplot.FormatOf(name))
	if err != nil {
		return wrap(err, name, "export.Archive.AddPlot")
	}
	return A.Add(name, b)
}

// Bytes finishes the archive and returns its contents. Nothing can be added afterwards.
func (A *Archive) Bytes() ([]byte, error) {
	if err := A.w.Close(); err != nil {
		return nil, helix.NewOutputError(err.Error(), "", "export.Archive.Bytes")
	}
	return A.b.Bytes(), nil
}
