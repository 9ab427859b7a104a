/*
 * blocks.go, part of gohelix.
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

// Package blocks contains the analyses as self-contained building blocks. Each block
// validates its configuration, reads its inputs, computes everything and, only if all of
// that succeeded, writes its outputs. With Config.Restart set, a block whose outputs
// already exist is skipped.
package blocks

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/gohelix/helix"
	"github.com/gohelix/helix/bimodal"
	"github.com/gohelix/helix/export"
	"github.com/gohelix/helix/helplot"
	"github.com/gohelix/helix/helstat"
	"github.com/gohelix/helix/histo"
	"github.com/gohelix/helix/ser"
)

// Verbose enables progress messages.
var Verbose bool

func logf(format string, v ...interface{}) {
	if Verbose {
		log.Printf(format, v...)
	}
}

// skip reports whether the block can be skipped because restart is on and its outputs exist.
func skip(cfg *Config, b Block, outputs ...string) bool {
	if cfg.Restart && export.Complete(outputs...) {
		log.Printf("Restart is enabled, block %s will be skipped", b)
		return true
	}
	return false
}

func positionsFor(cfg *Config, n, baseLen int) ([]int, error) {
	if p := cfg.Positions(); p != nil {
		return helix.CheckPositions(p, n, baseLen)
	}
	p := helix.DefaultPositions(n)
	if p == nil {
		return nil, helix.NewConfigurationError(fmt.Sprintf("sequence of length %d is too short", n), "positionsFor")
	}
	return p, nil
}

// positionName is "Base Pair Step" for step parameters and "Base Pair" otherwise.
func positionName(p helix.Parameter) string {
	if p.IsStep() {
		return "Base Pair Step"
	}
	return "Base Pair"
}

func axisLabel(p helix.Parameter) string {
	return fmt.Sprintf("%s (%s)", p.Title(), p.Unit())
}

// readStrands reads the requested positions of a series file and labels them with the
// base (pairs) of the two strands.
func readStrands(name string, p helix.Parameter, cfg *Config) (*helix.Table, []string, error) {
	pos, err := positionsFor(cfg, len(cfg.Strand1), p.BaseLen())
	if err != nil {
		return nil, nil, err
	}
	labels, err := helix.Labels(p, cfg.Strand1, cfg.Strand2, pos)
	if err != nil {
		return nil, nil, err
	}
	return readLabeled(name, pos, labels)
}

// ReadSeries reads the columns of the series file inSer that the Averages and TimeSeries
// blocks analyze: those in cfg.SeqPos (or cfg.UseCols), or all but the terminal ones, named
// after the base (pairs) of cfg.Strand1 and cfg.Strand2.
func ReadSeries(inSer string, cfg *Config) (*helix.Table, helix.Parameter, error) {
	p, err := cfg.Parameter(inSer)
	if err != nil {
		return nil, p, helix.ErrDecorate(err, "ReadSeries")
	}
	t, _, err := readStrands(inSer, p, cfg)
	return t, p, helix.ErrDecorate(err, "ReadSeries")
}

// readSequence is like readStrands for blocks described by a single sequence.
func readSequence(name string, p helix.Parameter, cfg *Config) (*helix.Table, []string, error) {
	pos, err := positionsFor(cfg, len(cfg.Sequence), p.BaseLen())
	if err != nil {
		return nil, nil, err
	}
	labels, err := helix.SequenceLabels(cfg.Sequence, p.BaseLen(), pos)
	if err != nil {
		return nil, nil, err
	}
	return readLabeled(name, pos, labels)
}

func readLabeled(name string, pos []int, labels []string) (*helix.Table, []string, error) {
	t, err := ser.Read(name, pos)
	if err != nil {
		return nil, nil, err
	}
	if err := t.Rename(labels); err != nil {
		return nil, nil, err
	}
	return t, labels, nil
}

// Averages writes the mean and standard deviation of a helical parameter at each position
// to outCSV, and plots them with error bars to outJPG.
func Averages(inSer, outCSV, outJPG string, cfg *Config) error {
	const caller = "Averages"
	if err := cfg.Validate(AveragesBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, AveragesBlock, outCSV, outJPG) {
		return nil
	}
	t, p, err := ReadSeries(inSer, cfg)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	labels := t.Names()
	means, stds := helstat.Means(t), helstat.StdDevs(t)
	var out export.Outputs
	if err := out.AddColumns(outCSV, positionName(p), labels, []string{"mean", "std"}, [][]float64{means, stds}); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Averages(fmt.Sprintf("%s Helical Parameter: %s", positionName(p), p.Title()), axisLabel(p), labels, means, stds)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	logf("%s: %d positions of %s averaged", caller, len(labels), p)
	return helix.ErrDecorate(out.Commit(), caller)
}

func frameLabels(index []float64) []string {
	ret := make([]string, len(index))
	for i, v := range index {
		ret[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return ret
}

// histogram bins data with the given rule. It returns nil if data has no finite values.
func histogram(label string, data []float64, bins Bins) *histo.Data {
	if bins == 0 {
		return histo.New(label, data)
	}
	f := helix.Finite(data)
	if len(f) == 0 {
		return nil
	}
	return histo.NewData(label, histo.Uniform(floats.Min(f), floats.Max(f), int(bins)), data)
}

// TimeSeries writes, for each position, the series, its histogram and its autocorrelation
// function as CSV files (the histogram also as JSON), plus time-series and histogram figures, all in the zip file outZip.
// A summary of all positions is included as summary.<parameter>.csv.
func TimeSeries(inSer, outZip string, cfg *Config) error {
	const caller = "TimeSeries"
	if err := cfg.Validate(TimeSeriesBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, TimeSeriesBlock, outZip) {
		return nil
	}
	t, p, err := ReadSeries(inSer, cfg)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	labels := t.Names()
	hp := p.Name()
	arc := export.NewArchive()
	if err := arc.AddRecords(fmt.Sprintf("summary.%s.csv", hp), helstat.Summarize(t)); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	frames := frameLabels(t.Index())
	for i, label := range labels {
		logf("%s: computing %s %s", caller, positionName(p), label)
		col := t.Col(i)
		seriesName := fmt.Sprintf("series.%s.%s", hp, label)
		b, err := export.Columns("", frames, []string{label}, [][]float64{col})
		if err != nil {
			return helix.ErrDecorate(err, caller)
		}
		if err := arc.Add(seriesName+".csv", b); err != nil {
			return helix.ErrDecorate(err, caller)
		}
		plt, err := helplot.TimeSeries(fmt.Sprintf("Helical Parameter vs Time: %s (base %s)", hp, label), hp, t.Index(), col, cfg.Stride)
		if err != nil {
			return helix.ErrDecorate(err, caller)
		}
		if err := arc.AddPlot(seriesName+".jpg", plt); err != nil {
			return helix.ErrDecorate(err, caller)
		}

		h := histogram(label, col, cfg.Bins)
		if h == nil {
			log.Printf("%s: no finite values for %s, histogram skipped", caller, label)
			continue
		}
		histName := fmt.Sprintf("hist.%s.%s", hp, label)
		if err := arc.AddRecords(histName+".csv", h.Bins()); err != nil {
			return helix.ErrDecorate(err, caller)
		}
		j, err := json.Marshal(h)
		if err != nil {
			return helix.NewOutputError(err.Error(), histName+".json", caller)
		}
		if err := arc.Add(histName+".json", j); err != nil {
			return helix.ErrDecorate(err, caller)
		}
		plt, err = helplot.Histogram(fmt.Sprintf("%s distribution (base %s)", p.Title(), label), axisLabel(p), h)
		if err != nil {
			return helix.ErrDecorate(err, caller)
		}
		if err := arc.AddPlot(histName+".jpg", plt); err != nil {
			return helix.ErrDecorate(err, caller)
		}

		acf := helstat.AutoCorrelation(col, cfg.MaxLag)
		if acf == nil {
			continue
		}
		lags := make([]float64, len(acf))
		for j := range lags {
			lags[j] = float64(j)
		}
		b, err = export.Columns("lag", frameLabels(lags), []string{"acf"}, [][]float64{acf})
		if err != nil {
			return helix.ErrDecorate(err, caller)
		}
		if err := arc.Add(fmt.Sprintf("acf.%s.%s.csv", hp, label), b); err != nil {
			return helix.ErrDecorate(err, caller)
		}
	}
	b, err := arc.Bytes()
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	var out export.Outputs
	out.Add(outZip, b)
	return helix.ErrDecorate(out.Commit(), caller)
}

// AverageStiffness writes the diagonal stiffness constant of a helical parameter at each
// position of cfg.Sequence to outCSV, and plots it to outJPG.
func AverageStiffness(inSer, outCSV, outJPG string, cfg *Config) error {
	const caller = "AverageStiffness"
	if err := cfg.Validate(AverageStiffnessBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, AverageStiffnessBlock, outCSV, outJPG) {
		return nil
	}
	p, err := cfg.Parameter(inSer)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	t, labels, err := readSequence(inSer, p, cfg)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	k, err := helstat.DiagonalStiffness(t, cfg.KT, p.DefaultStiffnessScale())
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	var out export.Outputs
	if err := out.AddColumns(outCSV, "", labels, []string{p.Name() + "_stiffness"}, [][]float64{k}); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Profile("Base Pair Helical Parameter Stiffness: "+p.Title(), "Sequence Base Pair",
		fmt.Sprintf("%s (%s)", p.Title(), p.StiffnessUnit()), labels, k)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// readSix reads one per-coordinate CSV file for each of six helical parameters, and joins
// their first value columns in a table with the parameter names as column names. It also
// returns the name of the first value column of the first file, which is the base (pair) label.
func readSix(inputs [6]string, params [6]helix.Parameter, inner string) (*helix.Table, string, error) {
	names := make([]string, 6)
	cols := make([][]float64, 6)
	var base string
	for i, in := range inputs {
		var inn []string
		if inner != "" {
			inn = []string{inner}
		}
		t, _, err := ser.ReadCSV(in, inn...)
		if err != nil {
			return nil, "", err
		}
		if i == 0 {
			base = t.Name(0)
		}
		names[i] = params[i].Name()
		cols[i] = t.Col(0)
	}
	t, err := helix.FromColumns(names, cols...)
	return t, base, err
}

// BasePairStiffness computes the 6x6 stiffness matrix of one base-pair step from the
// series of its six step parameters, given in the order shift, slide, rise, tilt, roll,
// twist. The matrix goes to outCSV and a heatmap to outJPG.
func BasePairStiffness(inputs [6]string, outCSV, outJPG string, cfg *Config) error {
	const caller = "BasePairStiffness"
	if err := cfg.Validate(BasePairStiffnessBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, BasePairStiffnessBlock, outCSV, outJPG) {
		return nil
	}
	t, base, err := readSix(inputs, helix.StepParameters, cfg.InnerFile)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if cfg.Base != "" {
		base = cfg.Base
	}
	K, err := helstat.FullStiffness(t, cfg.KT, cfg.Scaling)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	names := t.Names()
	var out export.Outputs
	if err := out.AddMatrix(outCSV, base, names, K); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Heatmap(fmt.Sprintf("Stiffness Constants for Base Pair Step '%s'", base), names, K)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// HelParCorrelation computes the correlation matrix of the six helical parameters params of one
// base pair or base-pair step, each read from the matching element of inputs. Each pair of
// parameters is correlated with the statistic suited to their kinds. If params is the zero
// value, the parameters are inferred from the file names.
func HelParCorrelation(inputs [6]string, params [6]helix.Parameter, outCSV, outJPG string, cfg *Config) error {
	const caller = "HelParCorrelation"
	if err := cfg.Validate(HelParCorrelationBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, HelParCorrelationBlock, outCSV, outJPG) {
		return nil
	}
	if !params[0].Valid() {
		for i, in := range inputs {
			p, err := helix.ParameterFromFilename(in)
			if err != nil {
				return helix.ErrDecorate(err, caller)
			}
			params[i] = p
		}
	}
	t, base, err := readSix(inputs, params, cfg.InnerFile)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if cfg.Base != "" {
		base = cfg.Base
	}
	C, err := helstat.Correlate(t, helstat.ParameterKinds(params[:]))
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	names := t.Names()
	var out export.Outputs
	if err := out.AddMatrix(outCSV, "", names, C); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Heatmap(fmt.Sprintf("Helical Parameter Correlation for %s '%s'", positionName(params[0]), base), names, C)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// SequenceCorrelation computes the correlation of one helical parameter between every pair
// of positions of cfg.Sequence: the circular statistic for angles, Pearson's for distances.
func SequenceCorrelation(inSer, outCSV, outJPG string, cfg *Config) error {
	const caller = "SequenceCorrelation"
	if err := cfg.Validate(SequenceCorrelationBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, SequenceCorrelationBlock, outCSV, outJPG) {
		return nil
	}
	p, err := cfg.Parameter(inSer)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	t, labels, err := readSequence(inSer, p, cfg)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	logf("%s: %s correlation of %s", caller, helstat.CorrelationKind(p.Kind(), p.Kind()), p)
	C, err := helstat.Correlate(t, helstat.SameKind(p.Kind()))
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	var out export.Outputs
	if err := out.AddMatrix(outCSV, "", labels, C); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Heatmap(fmt.Sprintf("Base Pair Correlation for Helical Parameter '%s'", p), labels, C)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// Bimodality classifies the first value column of a per-coordinate CSV file (or of the
// cfg.InnerFile member of a zip file) as uni- or binormal, writes the report to outCSV, and
// plots histograms of a synthetic sample of the fitted states to outJPG.
func Bimodality(inCSV, outCSV, outJPG string, cfg *Config) error {
	const caller = "Bimodality"
	if err := cfg.Validate(BimodalityBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, BimodalityBlock, outCSV, outJPG) {
		return nil
	}
	var inner []string
	if cfg.InnerFile != "" {
		inner = []string{cfg.InnerFile}
	}
	t, _, err := ser.ReadCSV(inCSV, inner...)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	column := t.Name(0)
	r, err := bimodal.Classify(column, t.Col(0), cfg.Options())
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	logf("%s: %s is %s (p=%.3g, bimodal: %v)", caller, column, r.Evidence(), r.P, r.Bimodal)
	var out export.Outputs
	if err := out.AddRecords(outCSV, []*bimodal.Report{r}); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	xlabel := column
	if p, err := cfg.Parameter(inCSV); err == nil {
		xlabel = axisLabel(p)
	}
	low, high := bimodal.Synthesize(r, t.Rows(), cfg.Seed)
	plt, err := helplot.Bimodality(fmt.Sprintf("Distribution of %s states", column), xlabel, r, low, high, int(cfg.Bins))
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}
