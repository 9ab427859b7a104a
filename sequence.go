/*
 * sequence.go, part of gohelix.
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
	"sort"
	"strings"
)

// DupSuffix is appended to a label each time it collides with an earlier one.
const DupSuffix = "_dup"

// SeparatorLabel names the NaN column placed between the two strands.
const SeparatorLabel = "-"

const nucleotides = "ACGTUN"

// CheckStrand returns an error if s is empty or contains something other than
// one-letter nucleotide codes.
func CheckStrand(s string) error {
	if s == "" {
		return NewConfigurationError("sequence is null or too short!", "CheckStrand")
	}
	for i, c := range strings.ToUpper(s) {
		if !strings.ContainsRune(nucleotides, c) {
			return NewConfigurationError(fmt.Sprintf("invalid nucleotide %q at position %d of %s", c, i+1, s), "CheckStrand")
		}
	}
	return nil
}

// DefaultPositions returns the 1-based positions analyzed when none are given
// for a sequence of length n: all but the first and the last, since terminal values
// are unreliable.
func DefaultPositions(n int) []int {
	if n < 3 {
		return nil
	}
	ret := make([]int, 0, n-2)
	for p := 2; p <= n-1; p++ {
		ret = append(ret, p)
	}
	return ret
}

// CheckPositions sorts and de-duplicates a list of 1-based positions and checks
// that each of them, plus baseLen following bases, fits in a sequence of length n.
// It returns the cleaned list.
func CheckPositions(positions []int, n, baseLen int) ([]int, error) {
	if len(positions) == 0 {
		return nil, NewConfigurationError("empty position list", "CheckPositions")
	}
	p := append([]int(nil), positions...)
	sort.Ints(p)
	ret := p[:1]
	for _, v := range p[1:] {
		if v != ret[len(ret)-1] {
			ret = append(ret, v)
		}
	}
	if ret[0] < 1 || ret[len(ret)-1]+baseLen > n {
		return nil, NewConfigurationError(fmt.Sprintf("positions must be between 1 and %d", n-baseLen), "CheckPositions")
	}
	return ret, nil
}

func reverse(s string) string {
	r := []byte(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// pairLabels does the actual labeling. strand2 is given 5'->3', so it is reversed to
// align it with strand1.
func pairLabels(strand1, strand2 string, baseLen int, positions []int, caller string) ([]string, error) {
	if err := CheckStrand(strand1); err != nil {
		return nil, ErrDecorate(err, caller)
	}
	if err := CheckStrand(strand2); err != nil {
		return nil, ErrDecorate(err, caller)
	}
	if len(strand1) != len(strand2) {
		return nil, NewConfigurationError(fmt.Sprintf("strands have different lengths: %d and %d", len(strand1), len(strand2)), caller)
	}
	pos, err := resolvePositions(positions, len(strand1), baseLen, caller)
	if err != nil {
		return nil, err
	}
	s2 := reverse(strand2)
	labels := make([]string, 0, len(pos))
	for _, p := range pos {
		i := p - 1
		labels = append(labels, strand1[i:i+1+baseLen]+reverse(s2[i:i+1+baseLen]))
	}
	return Dedup(labels), nil
}

func resolvePositions(positions []int, n, baseLen int, caller string) ([]int, error) {
	if positions == nil {
		pos := DefaultPositions(n)
		if pos == nil {
			return nil, NewConfigurationError(fmt.Sprintf("sequence of length %d is too short", n), caller)
		}
		return pos, nil
	}
	pos, err := CheckPositions(positions, n, baseLen)
	return pos, ErrDecorate(err, caller)
}

// StepLabels returns the labels of the base-pair steps at the given 1-based positions
// (all but the terminal ones if positions is nil). Each label is the dinucleotide of
// strand1 followed by the complementary dinucleotide read on strand2, e.g. "GCGC".
func StepLabels(strand1, strand2 string, positions []int) ([]string, error) {
	return pairLabels(strand1, strand2, 1, positions, "StepLabels")
}

// BaseLabels is like StepLabels for single-base parameters: each label is a base of
// strand1 followed by its partner in strand2, e.g. "GC".
func BaseLabels(strand1, strand2 string, positions []int) ([]string, error) {
	return pairLabels(strand1, strand2, 0, positions, "BaseLabels")
}

// Labels dispatches to StepLabels or BaseLabels depending on the parameter.
func Labels(p Parameter, strand1, strand2 string, positions []int) ([]string, error) {
	return pairLabels(strand1, strand2, p.BaseLen(), positions, "Labels")
}

// SequenceLabels labels positions of a single, self-describing sequence. The labels are
// the 1+baseLen long substrings starting at each position.
func SequenceLabels(sequence string, baseLen int, positions []int) ([]string, error) {
	if err := CheckStrand(sequence); err != nil {
		return nil, ErrDecorate(err, "SequenceLabels")
	}
	pos, err := resolvePositions(positions, len(sequence), baseLen, "SequenceLabels")
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(pos))
	for _, p := range pos {
		labels = append(labels, sequence[p-1:p+baseLen])
	}
	return Dedup(labels), nil
}

// Dedup makes labels unique. The first occurrence of a label is kept as is, and each later
// collision gets DupSuffix appended until it no longer clashes with an earlier label.
func Dedup(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	ret := make([]string, len(labels))
	for i, l := range labels {
		for seen[l] {
			l += DupSuffix
		}
		seen[l] = true
		ret[i] = l
	}
	return ret
}

// StrandLabels returns the per-nucleotide labels used by the backbone analyses:
// the bases of strand1 numbered 1..N, the separator label, and the bases of the reversed
// strand2 numbered N..1. The first and last base of each strand are marked 5' and 3'.
func StrandLabels(strand1, strand2 string) []string {
	w := strandLabels(strand1)
	for i := range w {
		w[i] = fmt.Sprintf("%s-%d", w[i], i+1)
	}
	c := strandLabels(reverse(strand2))
	for i := range c {
		c[i] = fmt.Sprintf("%s-%d", c[i], len(c)-i)
	}
	ret := append(w, SeparatorLabel)
	return append(ret, c...)
}

func strandLabels(s string) []string {
	ret := make([]string, len(s))
	for i := range s {
		ret[i] = s[i : i+1]
	}
	if len(ret) > 0 {
		ret[0] += "5'"
		ret[len(ret)-1] += "3'"
	}
	return ret
}
