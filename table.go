/*
 * table.go, part of gohelix.
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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Table is a helical-parameter time series: one row per snapshot, one column
// per base, base pair or base-pair step. Data is stored column-major since
// every analysis in the library works on whole columns.
type Table struct {
	index []float64   //snapshot numbers
	names []string    //column names
	pos   []int       //1-based position of each column in the file it came from
	d     [][]float64 //d[col][row]
}

var _ Columner = (*Table)(nil)

// NewTable builds a table from an index and a set of columns. names and positions can be nil,
// in which case columns are named and numbered by their 1-based position. All
// columns must have len(index) elements. The slices are not copied.
func NewTable(index []float64, names []string, positions []int, cols [][]float64) (*Table, error) {
	if names != nil && len(names) != len(cols) {
		return nil, NewConfigurationError(fmt.Sprintf("%d names given for %d columns", len(names), len(cols)), "NewTable")
	}
	if positions != nil && len(positions) != len(cols) {
		return nil, NewConfigurationError(fmt.Sprintf("%d positions given for %d columns", len(positions), len(cols)), "NewTable")
	}
	for i, c := range cols {
		if len(c) != len(index) {
			return nil, NewConfigurationError(fmt.Sprintf("column %d has %d rows, index has %d", i, len(c), len(index)), "NewTable")
		}
	}
	if positions == nil {
		positions = make([]int, len(cols))
		for i := range positions {
			positions[i] = i + 1
		}
	}
	if names == nil {
		names = make([]string, len(cols))
		for i := range names {
			names[i] = fmt.Sprintf("%d", positions[i])
		}
	}
	return &Table{index: index, names: names, pos: positions, d: cols}, nil
}

// FromColumns builds a table with a 1..n index from the given columns.
func FromColumns(names []string, cols ...[]float64) (*Table, error) {
	n := 0
	if len(cols) > 0 {
		n = len(cols[0])
	}
	index := make([]float64, n)
	for i := range index {
		index[i] = float64(i + 1)
	}
	return NewTable(index, names, nil, cols)
}

// Rows returns the number of snapshots.
func (T *Table) Rows() int { return len(T.index) }

// Cols returns the number of data columns.
func (T *Table) Cols() int { return len(T.d) }

// Index returns a view of the snapshot numbers.
func (T *Table) Index() []float64 { return T.index }

// Col returns a view of the ith column. It panics if i is out of range.
func (T *Table) Col(i int) []float64 { return T.d[i] }

// Name returns the name of the ith column.
func (T *Table) Name(i int) string { return T.names[i] }

// Names returns a copy of the column names.
func (T *Table) Names() []string {
	ret := make([]string, len(T.names))
	copy(ret, T.names)
	return ret
}

// Position returns the 1-based position that the ith column had in its source file.
func (T *Table) Position(i int) int { return T.pos[i] }

// Rename replaces the column names. The number of names must match the number of columns.
func (T *Table) Rename(names []string) error {
	if len(names) != len(T.d) {
		return NewConfigurationError(fmt.Sprintf("%d names given for %d columns", len(names), len(T.d)), "Rename")
	}
	T.names = make([]string, len(names))
	copy(T.names, names)
	return nil
}

// Select returns a new table with the given columns (0-based), sharing data with T.
func (T *Table) Select(cols []int) (*Table, error) {
	names := make([]string, 0, len(cols))
	pos := make([]int, 0, len(cols))
	d := make([][]float64, 0, len(cols))
	for _, c := range cols {
		if c < 0 || c >= len(T.d) {
			return nil, NewConfigurationError(fmt.Sprintf("column %d out of range (%d columns)", c, len(T.d)), "Select")
		}
		names = append(names, T.names[c])
		pos = append(pos, T.pos[c])
		d = append(d, T.d[c])
	}
	return &Table{index: T.index, names: names, pos: pos, d: d}, nil
}

// Reverse returns a table with the column order reversed, sharing data with T.
func (T *Table) Reverse() *Table {
	n := len(T.d)
	cols := make([]int, n)
	for i := range cols {
		cols[i] = n - 1 - i
	}
	r, _ := T.Select(cols) //can't fail
	return r
}

// Separator returns a single-column table filled with NaN, used to mark
// the junction of two strands when tables are concatenated.
func Separator(rows int, name string) *Table {
	c := make([]float64, rows)
	index := make([]float64, rows)
	for i := range c {
		c[i] = math.NaN()
		index[i] = float64(i + 1)
	}
	return &Table{index: index, names: []string{name}, pos: []int{0}, d: [][]float64{c}}
}

// Concat joins tables column-wise. All tables must have the same number of rows.
// The index of the first table is kept.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, NewConfigurationError("nothing to concatenate", "Concat")
	}
	rows := tables[0].Rows()
	ret := &Table{index: tables[0].index}
	for i, t := range tables {
		if t.Rows() != rows {
			return nil, NewConfigurationError(fmt.Sprintf("table %d has %d rows, expected %d", i, t.Rows(), rows), "Concat")
		}
		ret.names = append(ret.names, t.names...)
		ret.pos = append(ret.pos, t.pos...)
		ret.d = append(ret.d, t.d...)
	}
	return ret, nil
}

// Dense returns a rows x cols copy of the data as a gonum matrix, the layout
// gonum/stat expects (observations in rows, variables in columns).
func (T *Table) Dense() *mat.Dense {
	r, c := T.Rows(), T.Cols()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	ret := mat.NewDense(r, c, nil)
	for j, col := range T.d {
		ret.SetCol(j, col)
	}
	return ret
}

// Map returns a new table with f applied to every value.
func (T *Table) Map(f func(float64) float64) *Table {
	d := make([][]float64, len(T.d))
	for j, col := range T.d {
		d[j] = make([]float64, len(col))
		for i, v := range col {
			d[j][i] = f(v)
		}
	}
	return &Table{index: T.index, names: T.Names(), pos: append([]int(nil), T.pos...), d: d}
}

// Sub returns T-B element-wise. Both tables must have the same shape; names come from T.
func Sub(T, B *Table) (*Table, error) {
	if T.Rows() != B.Rows() || T.Cols() != B.Cols() {
		return nil, NewConfigurationError(fmt.Sprintf("shape mismatch %dx%d vs %dx%d", T.Rows(), T.Cols(), B.Rows(), B.Cols()), "Sub")
	}
	d := make([][]float64, len(T.d))
	for j := range T.d {
		d[j] = make([]float64, T.Rows())
		for i := range d[j] {
			d[j][i] = T.d[j][i] - B.d[j][i]
		}
	}
	return &Table{index: T.index, names: T.Names(), pos: append([]int(nil), T.pos...), d: d}, nil
}
