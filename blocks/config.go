/*
 * config.go, part of gohelix.
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

package blocks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/bimodal"
	"github.com/gohelix/helix/helstat"
)

// Block identifies one of the analyses, for validation and messages.
type Block string

const (
	AveragesBlock            Block = "averages"
	TimeSeriesBlock          Block = "timeseries"
	AverageStiffnessBlock    Block = "stiffness"
	BasePairStiffnessBlock   Block = "bpstiffness"
	SequenceCorrelationBlock Block = "seqcorr"
	HelParCorrelationBlock   Block = "hpcorr"
	BimodalityBlock          Block = "bimodality"
	BIPopulationsBlock       Block = "bipopulations"
	AlphaGammaBlock          Block = "alphagamma"
	PuckeringBlock           Block = "puckering"
)

// Blocks returns every block, in the order the command line lists them.
func Blocks() []Block {
	return []Block{AveragesBlock, TimeSeriesBlock, AverageStiffnessBlock, BasePairStiffnessBlock,
		SequenceCorrelationBlock, HelParCorrelationBlock, BimodalityBlock,
		BIPopulationsBlock, AlphaGammaBlock, PuckeringBlock}
}

// Bins is the histogram bin rule: a fixed number of bins, or 0 for the automatic rule.
// In YAML it is either an integer or "auto".
type Bins int

// UnmarshalYAML accepts an integer or the string "auto".
func (B *Bins) UnmarshalYAML(value *yaml.Node) error {
	b, err := ParseBins(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*B = b
	return nil
}

// MarshalYAML writes 0 as "auto".
func (B Bins) MarshalYAML() (interface{}, error) {
	if B == 0 {
		return "auto", nil
	}
	return int(B), nil
}

func (B Bins) String() string {
	if B == 0 {
		return "auto"
	}
	return strconv.Itoa(int(B))
}

// ParseBins parses a bin rule, "auto" or a positive integer.
func ParseBins(s string) (Bins, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid bins %q: must be \"auto\" or a positive integer", s)
	}
	return Bins(n), nil
}

// Config holds the properties of all the blocks. Each block uses only the ones it needs.
type Config struct {
	Strand1    string `yaml:"strand1"`
	Strand2    string `yaml:"strand2"`
	Sequence   string `yaml:"sequence"`
	HelParName string `yaml:"helpar_name"`
	//1-based positions (columns of the series file) to analyze. UseCols is accepted
	//as a synonym; if both are given, SeqPos wins.
	SeqPos  []int `yaml:"seqpos"`
	UseCols []int `yaml:"usecols"`

	KT      float64   `yaml:"KT"`
	Scaling []float64 `yaml:"scaling"`

	ConfidenceLevel float64 `yaml:"confidence_level"`
	MaxIter         int     `yaml:"max_iter"`
	Tol             float64 `yaml:"tol"`
	Seed            int64   `yaml:"seed"`
	Restarts        int     `yaml:"restarts"`

	Stride int  `yaml:"stride"`
	Bins   Bins `yaml:"bins"`
	MaxLag int  `yaml:"max_lag"`

	Restart   bool   `yaml:"restart"`
	InnerFile string `yaml:"inner_file"`
	Base      string `yaml:"base"`
}

// DefaultConfig returns a configuration with every default set.
func DefaultConfig() *Config {
	o := bimodal.DefaultOptions()
	return &Config{
		KT:              helstat.DefaultKT,
		Scaling:         helstat.DefaultScaling(),
		ConfidenceLevel: o.ConfidenceLevel(),
		MaxIter:         o.MaxIter(),
		Tol:             o.Tol(),
		Seed:            o.Seed(),
		Restarts:        o.Restarts(),
		Stride:          10,
		MaxLag:          -1,
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, helix.NewConfigurationError(fmt.Sprintf("%s %s: %s", helix.UnableToOpen, path, err), "LoadConfig")
	}
	return ParseConfig(b)
}

// ParseConfig decodes a YAML configuration over the defaults. Unknown properties are an error.
func ParseConfig(b []byte) (*Config, error) {
	C := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(C); err != nil && !errors.Is(err, io.EOF) {
		return nil, helix.NewConfigurationError(err.Error(), "ParseConfig")
	}
	return C, nil
}

// Positions returns the positions requested, or nil for the default ones.
func (C *Config) Positions() []int {
	if len(C.SeqPos) > 0 {
		return C.SeqPos
	}
	if len(C.UseCols) > 0 {
		return C.UseCols
	}
	return nil
}

// Options returns the bimodality options in the configuration.
func (C *Config) Options() *bimodal.Options {
	o := bimodal.DefaultOptions()
	o.ConfidenceLevel(C.ConfidenceLevel)
	o.MaxIter(C.MaxIter)
	o.Tol(C.Tol)
	o.Seed(C.Seed)
	o.Restarts(C.Restarts)
	return o
}

// Parameter returns the helical parameter given by HelParName or, if that is empty,
// the one named in the base name of the file.
func (C *Config) Parameter(file string) (helix.Parameter, error) {
	if C.HelParName != "" {
		return helix.ParseParameter(C.HelParName)
	}
	return helix.ParameterFromFilename(file)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (C *Config) checkStrands() error {
	if err := helix.CheckStrand(C.Strand1); err != nil {
		return err
	}
	if err := helix.CheckStrand(C.Strand2); err != nil {
		return err
	}
	if len(C.Strand1) != len(C.Strand2) {
		return helix.NewConfigurationError(fmt.Sprintf("strand1 and strand2 have different lengths: %d and %d", len(C.Strand1), len(C.Strand2)), "Validate")
	}
	return nil
}

func (C *Config) checkSequence() error {
	if len(C.Sequence) < 2 {
		return helix.NewConfigurationError("sequence is null or too short!", "Validate")
	}
	if err := helix.CheckStrand(C.Sequence); err != nil {
		return err
	}
	if C.Positions() != nil && len(C.Positions()) < 2 {
		return helix.NewConfigurationError("seqpos must be a list of at least two integers", "Validate")
	}
	return nil
}

func (C *Config) checkHelPar() error {
	if C.HelParName == "" {
		return nil
	}
	_, err := helix.ParseParameter(C.HelParName)
	return err
}

// Validate checks the properties used by the given block, so that a bad configuration
// fails before any file is read.
func (C *Config) Validate(b Block) error {
	var err error
	switch b {
	case AveragesBlock, TimeSeriesBlock:
		if err = C.checkStrands(); err == nil {
			err = C.checkHelPar()
		}
		if err == nil && b == TimeSeriesBlock && C.Stride < 1 {
			err = helix.NewConfigurationError(fmt.Sprintf("stride must be at least 1, got %d", C.Stride), "Validate")
		}
		if err == nil && C.Bins < 0 {
			err = helix.NewConfigurationError(fmt.Sprintf("invalid number of bins %d", C.Bins), "Validate")
		}
	case AverageStiffnessBlock:
		if err = C.checkSequence(); err == nil {
			err = C.checkHelPar()
		}
		if err == nil && !finitePositive(C.KT) {
			err = helix.NewConfigurationError(fmt.Sprintf("KT must be a positive number, got %v", C.KT), "Validate")
		}
	case SequenceCorrelationBlock:
		if err = C.checkSequence(); err == nil {
			err = C.checkHelPar()
		}
	case BasePairStiffnessBlock:
		if !finitePositive(C.KT) {
			err = helix.NewConfigurationError(fmt.Sprintf("KT must be a positive number, got %v", C.KT), "Validate")
			break
		}
		if len(C.Scaling) != 6 {
			err = helix.NewConfigurationError(fmt.Sprintf("scaling needs 6 values, got %d", len(C.Scaling)), "Validate")
			break
		}
		for _, v := range C.Scaling {
			if !finitePositive(v) {
				err = helix.NewConfigurationError(fmt.Sprintf("scaling values must be positive numbers, got %v", C.Scaling), "Validate")
				break
			}
		}
	case HelParCorrelationBlock:
	case BimodalityBlock:
		switch {
		case !finitePositive(C.ConfidenceLevel) || C.ConfidenceLevel >= 50:
			err = helix.NewConfigurationError(fmt.Sprintf("confidence_level must be a percentage between 0 and 50, got %v", C.ConfidenceLevel), "Validate")
		case C.MaxIter < 1:
			err = helix.NewConfigurationError(fmt.Sprintf("max_iter must be at least 1, got %d", C.MaxIter), "Validate")
		case !finitePositive(C.Tol):
			err = helix.NewConfigurationError(fmt.Sprintf("tol must be a positive number, got %v", C.Tol), "Validate")
		case C.Restarts < 0:
			err = helix.NewConfigurationError(fmt.Sprintf("restarts can't be negative, got %d", C.Restarts), "Validate")
		}
	case BIPopulationsBlock, AlphaGammaBlock, PuckeringBlock:
		err = C.checkStrands()
	default:
		err = helix.NewConfigurationError(fmt.Sprintf("unknown block %q", b), "Validate")
	}
	return helix.ErrDecorate(err, "Validate")
}
