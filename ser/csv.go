/*
 * csv.go, part of gohelix.
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

package ser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"

	helix "github.com/gohelix/helix"
)

// ReadCSV reads a per-coordinate CSV table: a header row, then one row per snapshot
// (or position) with the index in the first column and one or more value columns.
// Non-numeric indexes (base labels, for instance) are replaced by the 1-based row number,
// and are returned, in order, as the second value (nil if the index was numeric).
// If name ends in .zip, the member called inner is read. inner may be omitted if the archive
// contains a single .csv file.
func ReadCSV(name string, inner ...string) (*helix.Table, []string, error) {
	if strings.ToLower(filepath.Ext(name)) == ".zip" {
		in := ""
		if len(inner) > 0 {
			in = inner[0]
		}
		return readZipMember(name, in)
	}
	f, err := Open(name)
	if err != nil {
		return nil, nil, helix.ErrDecorate(err, "ReadCSV")
	}
	defer f.Close()
	t, labels, err := ParseCSV(f, name)
	return t, labels, helix.ErrDecorate(err, "ReadCSV")
}

func readZipMember(name, inner string) (*helix.Table, []string, error) {
	z, err := zip.OpenReader(name)
	if err != nil {
		return nil, nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %v", helix.UnableToOpen, err), name, 0, "readZipMember")
	}
	defer z.Close()
	var member *zip.File
	var csvs []*zip.File
	for _, f := range z.File {
		if inner != "" && (f.Name == inner || filepath.Base(f.Name) == inner) {
			member = f
			break
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			csvs = append(csvs, f)
		}
	}
	if member == nil {
		if inner != "" {
			return nil, nil, helix.NewMalformedTableError(fmt.Sprintf("no member %s in archive", inner), name, 0, "readZipMember")
		}
		if len(csvs) != 1 {
			return nil, nil, helix.NewConfigurationError(fmt.Sprintf("%s contains %d csv files, the inner file must be specified", name, len(csvs)), "readZipMember")
		}
		member = csvs[0]
	}
	r, err := member.Open()
	if err != nil {
		return nil, nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %v", helix.UnableToOpen, err), name+":"+member.Name, 0, "readZipMember")
	}
	defer r.Close()
	t, labels, err := ParseCSV(r, name+":"+member.Name)
	return t, labels, helix.ErrDecorate(err, "readZipMember")
}

// ParseCSV reads a comma-separated table with a header from r. See ReadCSV.
func ParseCSV(r io.Reader, name string) (*helix.Table, []string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, helix.NewMalformedTableError(helix.EmptyTable, name, 0, "ParseCSV")
	}
	if err != nil {
		return nil, nil, csvError(err, name)
	}
	if len(header) < 2 {
		return nil, nil, helix.NewMalformedTableError("a CSV table needs an index column and at least one value column", name, 1, "ParseCSV")
	}
	ncols := len(header) - 1
	cols := make([][]float64, ncols)
	var index []float64
	var labels []string
	numeric := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, csvError(err, name)
		}
		line, _ := cr.FieldPos(0)
		labels = append(labels, rec[0])
		i, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			numeric = false
		}
		index = append(index, i)
		for j := 0; j < ncols; j++ {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, nil, helix.NewMalformedTableError(fmt.Sprintf("%s: %q", helix.NotANumber, rec[j+1]), name, line, "ParseCSV")
			}
			cols[j] = append(cols[j], v)
		}
	}
	if len(index) == 0 {
		return nil, nil, helix.NewMalformedTableError(helix.EmptyTable, name, 0, "ParseCSV")
	}
	if numeric {
		labels = nil
	} else {
		for i := range index {
			index[i] = float64(i + 1)
		}
	}
	t, err := helix.NewTable(index, header[1:], nil, cols)
	return t, labels, helix.ErrDecorate(err, "ParseCSV")
}

func csvError(err error, name string) error {
	line := 0
	if pe, ok := err.(*csv.ParseError); ok {
		line = pe.Line
		if pe.Err == csv.ErrFieldCount {
			return helix.NewMalformedTableError(helix.RaggedRow, name, line, "ParseCSV")
		}
	}
	return helix.NewMalformedTableError(err.Error(), name, line, "ParseCSV")
}
