/*
 * params.go, part of gohelix.
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
	"path/filepath"
	"strings"
)

// Kind tells whether a variable is linear (a distance) or circular (an angle).
type Kind int

const (
	Linear Kind = iota
	Circular
)

func (k Kind) String() string {
	if k == Circular {
		return "circular"
	}
	return "linear"
}

// Parameter is one of the helical parameters produced by Curves+/Canal.
// The zero value is not a valid parameter.
type Parameter struct {
	name    string
	kind    Kind
	baseLen int //1 for base-pair-step parameters, 0 for single base(-pair) parameters
}

// The helical parameters.
var (
	Shift = Parameter{"shift", Linear, 1}
	Slide = Parameter{"slide", Linear, 1}
	Rise  = Parameter{"rise", Linear, 1}
	Tilt  = Parameter{"tilt", Circular, 1}
	Roll  = Parameter{"roll", Circular, 1}
	Twist = Parameter{"twist", Circular, 1}
	MajW  = Parameter{"majw", Linear, 1}
	MajD  = Parameter{"majd", Linear, 1}
	MinW  = Parameter{"minw", Linear, 1}
	MinD  = Parameter{"mind", Linear, 1}

	Shear   = Parameter{"shear", Linear, 0}
	Stretch = Parameter{"stretch", Linear, 0}
	Stagger = Parameter{"stagger", Linear, 0}
	XDisp   = Parameter{"xdisp", Linear, 0}
	YDisp   = Parameter{"ydisp", Linear, 0}
	Buckle  = Parameter{"buckle", Circular, 0}
	Opening = Parameter{"opening", Circular, 0}
	Propel  = Parameter{"propel", Circular, 0}
	Inclin  = Parameter{"inclin", Circular, 0}
	Tip     = Parameter{"tip", Circular, 0}
)

// StepParameters are the six coupled coordinates of a base-pair step, in the
// order used for stiffness and correlation matrices.
var StepParameters = [6]Parameter{Shift, Slide, Rise, Tilt, Roll, Twist}

// PairParameters are the six intra base-pair coordinates.
var PairParameters = [6]Parameter{Shear, Stretch, Stagger, Buckle, Propel, Opening}

var parameters = []Parameter{
	MajW, MajD, MinW, MinD, Rise, Roll, Shift, Slide, Tilt, Twist,
	Shear, Stagger, Stretch, Buckle, Opening, Propel, Inclin, Tip, XDisp, YDisp,
}

var aliases = map[string]Parameter{
	"propeller": Propel,
	"inclination": Inclin,
}

// Parameters returns all the known helical parameters.
func Parameters() []Parameter {
	ret := make([]Parameter, len(parameters))
	copy(ret, parameters)
	return ret
}

// Name returns the lower-case name of the parameter.
func (p Parameter) Name() string { return p.name }

func (p Parameter) String() string { return p.name }

// Kind returns whether the parameter is an angle or a distance.
func (p Parameter) Kind() Kind { return p.kind }

// IsAngular is shorthand for p.Kind()==Circular.
func (p Parameter) IsAngular() bool { return p.kind == Circular }

// BaseLen is 1 for parameters defined on base-pair steps and 0 for
// parameters defined on single bases or base pairs.
func (p Parameter) BaseLen() int { return p.baseLen }

// IsStep returns true for base-pair-step parameters.
func (p Parameter) IsStep() bool { return p.baseLen == 1 }

// Valid returns false for the zero Parameter.
func (p Parameter) Valid() bool { return p.name != "" }

// Unit returns the unit the parameter is measured in.
func (p Parameter) Unit() string {
	if p.kind == Circular {
		return "Degrees"
	}
	return "Angstroms"
}

// StiffnessUnit returns the unit of the diagonal stiffness constant for the parameter.
func (p Parameter) StiffnessUnit() string {
	if p.kind == Circular {
		return "kcal/(mol*degree²)"
	}
	return "kcal/(mol*Å²)"
}

// DefaultStiffnessScale is the factor applied to the diagonal stiffness of the parameter:
// 1 for angles and LengthScale for distances.
func (p Parameter) DefaultStiffnessScale() float64 {
	if p.kind == Circular {
		return 1
	}
	return LengthScale
}

// Title returns the name with its first letter capitalized, for plot labels.
func (p Parameter) Title() string {
	if p.name == "" {
		return ""
	}
	return strings.ToUpper(p.name[:1]) + p.name[1:]
}

// LengthScale is the empirical unit-conversion factor applied to the stiffness
// of length coordinates.
const LengthScale = 10.6

// ParseParameter returns the Parameter with the given name (case insensitive).
func ParseParameter(name string) (Parameter, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range parameters {
		if p.name == n {
			return p, nil
		}
	}
	if p, ok := aliases[n]; ok {
		return p, nil
	}
	return Parameter{}, NewConfigurationError(fmt.Sprintf("Helical parameter name %q is invalid! Options: %v", name, parameters), "ParseParameter")
}

// ParameterFromFilename infers the helical parameter from the base name of a file, as
// Canal names its output after the parameter (e.g. "canal_output_roll.ser").
// When several names match, the longest one wins.
func ParameterFromFilename(path string) (Parameter, error) {
	base := strings.ToLower(filepath.Base(path))
	var ret Parameter
	for _, p := range parameters {
		if strings.Contains(base, p.name) && len(p.name) > len(ret.name) {
			ret = p
		}
	}
	if !ret.Valid() {
		return ret, NewConfigurationError(fmt.Sprintf("Helical parameter name can't be inferred from file %s, so it must be specified!", path), "ParameterFromFilename")
	}
	return ret, nil
}
