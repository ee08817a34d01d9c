/*
 * summary.go, part of golephar.
 *
 *
 * Copyright 2026 The golephar authors
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

// Package dockplot summarizes and plots the scores of docked sets of molecules.
package dockplot

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	lephar "github.com/scipion-chem/golephar"
)

// PocketSummary contains the score statistics for the poses docked in one pocket.
type PocketSummary struct {
	Pocket     int
	Poses      int
	Ligands    int
	Best       float64 //lowest score
	BestLigand string
	Mean       float64
	Std        float64 //0 for less than 2 poses
}

// scores returns the scores of the docked molecules in S, grouped by pocket, and the
// sorted pocket IDs.
func scores(S *lephar.SetOfSmallMolecules) (map[int][]float64, map[int][]*lephar.SmallMolecule, []int) {
	byPocket := make(map[int][]float64)
	mols := make(map[int][]*lephar.SmallMolecule)
	for _, m := range S.Molecules {
		if !m.Docked() {
			continue
		}
		byPocket[m.GridID] = append(byPocket[m.GridID], m.Energy)
		mols[m.GridID] = append(mols[m.GridID], m)
	}
	ids := make([]int, 0, len(byPocket))
	for k := range byPocket {
		ids = append(ids, k)
	}
	sort.Ints(ids)
	return byPocket, mols, ids
}

// Summarize returns the score statistics of the docked molecules in S, one element
// per pocket, sorted by pocket ID. Molecules without a pose are ignored.
func Summarize(S *lephar.SetOfSmallMolecules) []PocketSummary {
	byPocket, mols, ids := scores(S)
	ret := make([]PocketSummary, 0, len(ids))
	for _, id := range ids {
		e := byPocket[id]
		best := floats.MinIdx(e)
		names := make(map[string]bool)
		for _, m := range mols[id] {
			names[m.UniqueName()] = true
		}
		P := PocketSummary{Pocket: id, Poses: len(e), Ligands: len(names), Best: e[best], BestLigand: mols[id][best].UniqueName()}
		if len(e) > 1 {
			P.Mean, P.Std = stat.MeanStdDev(e, nil)
		} else {
			P.Mean = e[0]
		}
		ret = append(ret, P)
	}
	return ret
}

// Best returns the n best-scored molecules in S (all if n<1), best first.
// Ties keep the order in S.
func Best(S *lephar.SetOfSmallMolecules, n int) []*lephar.SmallMolecule {
	ret := make([]*lephar.SmallMolecule, 0, S.Len())
	for _, m := range S.Molecules {
		if m.Docked() {
			ret = append(ret, m)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Energy < ret[j].Energy })
	if n > 0 && n < len(ret) {
		ret = ret[:n]
	}
	return ret
}

func ftoa(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}

// WriteSummary writes the summaries as a table to w.
func WriteSummary(w io.Writer, sums []PocketSummary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Pocket\tPoses\tLigands\tBest\tBest ligand\tMean\tStd")
	for _, s := range sums {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\n", s.Pocket, s.Poses, s.Ligands, ftoa(s.Best), s.BestLigand, ftoa(s.Mean), ftoa(s.Std))
	}
	return tw.Flush()
}
