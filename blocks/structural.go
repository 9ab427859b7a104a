/*
 * structural.go, part of gohelix.
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
	"github.com/gohelix/helix"
	"github.com/gohelix/helix/backbone"
	"github.com/gohelix/helix/export"
	"github.com/gohelix/helix/helplot"
	"github.com/gohelix/helix/ser"
)

// readAll reads whole series files, one column per nucleotide.
func readAll(names ...string) ([]*helix.Table, error) {
	ret := make([]*helix.Table, len(names))
	for i, n := range names {
		t, err := ser.Read(n, nil)
		if err != nil {
			return nil, err
		}
		ret[i] = t
	}
	return ret, nil
}

// writePopulations writes the CSV table and the stacked bar figure of pop.
func writePopulations(pop *backbone.Populations, outCSV, outJPG, title, ylabel string) error {
	const caller = "writePopulations"
	var out export.Outputs
	if err := out.AddColumns(outCSV, "Nucleotide", pop.Labels, pop.Classes, pop.Percent); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Populations(title, ylabel, pop)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// BIPopulations computes the BI/BII population of every nucleotide from the epsilon and zeta
// torsions of the Crick (C) and Watson (W) strands. The CSV file has the BI percentage, the
// figure both populations.
func BIPopulations(inEpsilC, inEpsilW, inZetaC, inZetaW, outCSV, outJPG string, cfg *Config) error {
	const caller = "BIPopulations"
	if err := cfg.Validate(BIPopulationsBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, BIPopulationsBlock, outCSV, outJPG) {
		return nil
	}
	t, err := readAll(inEpsilC, inEpsilW, inZetaC, inZetaW)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	pop, err := backbone.BIPopulations(cfg.Strand1, cfg.Strand2, t[1], t[3], t[0], t[2])
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	bi, _ := pop.Class(backbone.BI)
	var out export.Outputs
	if err := out.AddColumns(outCSV, "", pop.Labels, []string{"BI/BII population"}, [][]float64{bi}); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	plt, err := helplot.Populations("Nucleotide parameter: BI/BII Population", "BI/BII Population (%)", pop)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if err := out.AddPlot(outJPG, plt); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return helix.ErrDecorate(out.Commit(), caller)
}

// CanonicalAlphaGamma computes the percentage of snapshots in which each nucleotide has the
// canonical alpha/gamma conformation.
func CanonicalAlphaGamma(inAlphaC, inAlphaW, inGammaC, inGammaW, outCSV, outJPG string, cfg *Config) error {
	const caller = "CanonicalAlphaGamma"
	if err := cfg.Validate(AlphaGammaBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, AlphaGammaBlock, outCSV, outJPG) {
		return nil
	}
	t, err := readAll(inAlphaC, inAlphaW, inGammaC, inGammaW)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	pop, err := backbone.CanonicalAlphaGamma(cfg.Strand1, cfg.Strand2, t[1], t[3], t[0], t[2])
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return writePopulations(pop, outCSV, outJPG, "Nucleotide parameter: Canonical Alpha-Gamma", "Canonical Alpha-Gamma (%)")
}

// Puckering computes the North, East, West and South sugar pucker populations of every
// nucleotide from the phase angles of the Crick (C) and Watson (W) strands.
func Puckering(inPhaseC, inPhaseW, outCSV, outJPG string, cfg *Config) error {
	const caller = "Puckering"
	if err := cfg.Validate(PuckeringBlock); err != nil {
		return helix.ErrDecorate(err, caller)
	}
	if skip(cfg, PuckeringBlock, outCSV, outJPG) {
		return nil
	}
	t, err := readAll(inPhaseC, inPhaseW)
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	pop, err := backbone.Puckering(cfg.Strand1, cfg.Strand2, t[1], t[0])
	if err != nil {
		return helix.ErrDecorate(err, caller)
	}
	return writePopulations(pop, outCSV, outJPG, "Nucleotide parameter: Puckering", "Puckering (%)")
}
