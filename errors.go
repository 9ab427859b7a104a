/*
 * errors.go, part of gohelix.
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
	"strings"
)

// Messages shared by the packages of the library.
const (
	UnableToOpen       = "Unable to open file"
	RaggedRow          = "Row has a different number of columns than the header"
	NotANumber         = "Field is not a number"
	EmptyTable         = "No data rows"
	ColumnOutOfRange   = "Requested column out of range"
	SingularCovariance = "Covariance matrix is singular"
	NonFiniteData      = "Non-finite values in data"
	NotConverged       = "Mixture fit did not converge"
	DegenerateModel    = "Degenerate mixture component"
	UnableToWrite      = "Unable to write file"
)

func decorate(deco []string, d string) []string {
	if d != "" {
		deco = append(deco, d)
	}
	return deco
}

func joinDeco(deco []string) string {
	if len(deco) == 0 {
		return ""
	}
	return " (" + strings.Join(deco, " <- ") + ")"
}

// MalformedTableError is returned when an input does not parse into a rectangular numeric
// table, or when a requested column subset is out of range.
type MalformedTableError struct {
	message  string
	filename string
	line     int //0 if not associated with a line
	deco     []string
}

// NewMalformedTableError returns a MalformedTableError for the given file and line (0 for none).
func NewMalformedTableError(message, filename string, line int, caller string) *MalformedTableError {
	return &MalformedTableError{message: message, filename: filename, line: line, deco: []string{caller}}
}

func (err *MalformedTableError) Error() string {
	where := err.filename
	if err.line > 0 {
		where = fmt.Sprintf("%s:%d", err.filename, err.line)
	}
	return fmt.Sprintf("malformed table %s: %s%s", where, err.message, joinDeco(err.deco))
}

// Decorate adds new information to the error
func (err *MalformedTableError) Decorate(d string) []string {
	err.deco = decorate(err.deco, d)
	return err.deco
}

// FileName returns the file the error is associated with.
func (err *MalformedTableError) FileName() string { return err.filename }

// Line returns the 1-based line where the problem was found, or 0.
func (err *MalformedTableError) Line() int { return err.line }

// ConfigurationError is returned when a required parameter is missing or invalid.
// It is always raised before any computation starts.
type ConfigurationError struct {
	message string
	deco    []string
}

// NewConfigurationError returns a ConfigurationError with the given message.
func NewConfigurationError(message, caller string) *ConfigurationError {
	return &ConfigurationError{message: message, deco: []string{caller}}
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s%s", err.message, joinDeco(err.deco))
}

// Decorate adds new information to the error
func (err *ConfigurationError) Decorate(d string) []string {
	err.deco = decorate(err.deco, d)
	return err.deco
}

// SingularMatrixError is returned when a covariance matrix can't be inverted.
type SingularMatrixError struct {
	message string
	cond    float64
	deco    []string
}

// NewSingularMatrixError returns a SingularMatrixError. cond is the condition number
// reported by the inversion, +Inf for an exactly singular matrix.
func NewSingularMatrixError(message string, cond float64, caller string) *SingularMatrixError {
	return &SingularMatrixError{message: message, cond: cond, deco: []string{caller}}
}

func (err *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix: %s (condition number %g)%s", err.message, err.cond, joinDeco(err.deco))
}

// Decorate adds new information to the error
func (err *SingularMatrixError) Decorate(d string) []string {
	err.deco = decorate(err.deco, d)
	return err.deco
}

// Cond returns the condition number of the offending matrix.
func (err *SingularMatrixError) Cond() float64 { return err.cond }

// ModelFitError is returned when a mixture model fails to converge or
// produces a degenerate component.
type ModelFitError struct {
	message string
	column  string
	deco    []string
}

// NewModelFitError returns a ModelFitError for the given column.
func NewModelFitError(message, column, caller string) *ModelFitError {
	return &ModelFitError{message: message, column: column, deco: []string{caller}}
}

func (err *ModelFitError) Error() string {
	return fmt.Sprintf("model fit failed for column %q: %s%s", err.column, err.message, joinDeco(err.deco))
}

// Decorate adds new information to the error
func (err *ModelFitError) Decorate(d string) []string {
	err.deco = decorate(err.deco, d)
	return err.deco
}

// Column returns the name of the column that could not be fitted.
func (err *ModelFitError) Column() string { return err.column }

// OutputError is returned when a figure or an output file can't be produced or written.
type OutputError struct {
	message  string
	filename string
	deco     []string
}

// NewOutputError returns an OutputError for the given output file ("" if there is none yet).
func NewOutputError(message, filename, caller string) *OutputError {
	return &OutputError{message: message, filename: filename, deco: []string{caller}}
}

func (err *OutputError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("output error: %s%s", err.message, joinDeco(err.deco))
	}
	return fmt.Sprintf("output error in %s: %s%s", err.filename, err.message, joinDeco(err.deco))
}

// Decorate adds new information to the error
func (err *OutputError) Decorate(d string) []string {
	err.deco = decorate(err.deco, d)
	return err.deco
}

// FileName returns the output file the error is associated with.
func (err *OutputError) FileName() string { return err.filename }

// ErrDecorate decorates err with the caller's name if it implements Error,
// and returns it unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
