/*
 * interfaces.go, part of gohelix.
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

// Columner is anything that exposes helical-parameter data column by column.
type Columner interface {
	//Number of data columns
	Cols() int

	//Number of rows (snapshots) per column
	Rows() int

	//Returns a view of the ith column. Callers must not modify it.
	Col(i int) []float64

	//Name of the ith column
	Name(i int) string
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
// The decoration slice contains the functions in the calling stack, plus any relevant information,
// in the format "FunctionName: Extra info". If passed an empty string, Decorate just returns
// the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is an Error associated with an input file.
type FileError interface {
	Error
	FileName() string
}

// ColumnError is an Error associated with one analyzed column.
type ColumnError interface {
	Error
	Column() string
}
