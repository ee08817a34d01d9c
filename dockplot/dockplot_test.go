/*
 * dockplot_test.go, part of golephar.
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

package dockplot

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lephar "github.com/scipion-chem/golephar"
)

func dockedSet() *lephar.SetOfSmallMolecules {
	S := lephar.NewSet(6)
	S.Docked = true
	add := func(name string, grid, pose int, e float64) {
		m := lephar.NewSmallMolecule("/ligs/" + name + ".mol2")
		m.GridID, m.PoseID, m.Energy = grid, pose, e
		m.PoseFile = "/poses/" + name + ".pdb"
		S.Append(m)
	}
	add("a", 1, 1, -7.0)
	add("a", 1, 2, -6.0)
	add("b", 1, 1, -8.0)
	add("b", 1, 2, -5.0)
	add("a", 2, 1, -4.5)
	S.Append(lephar.NewSmallMolecule("/ligs/undocked.mol2"))
	return S
}

func TestSummarize(Te *testing.T) {
	sums := Summarize(dockedSet())
	if len(sums) != 2 {
		Te.Fatalf("Expected 2 pockets, got %d", len(sums))
	}
	s := sums[0]
	if s.Pocket != 1 || s.Poses != 4 || s.Ligands != 2 || s.Best != -8 || s.BestLigand != "b" || s.Mean != -6.5 {
		Te.Errorf("Wrong summary %+v", s)
	}
	if math.Abs(s.Std-math.Sqrt(5.0/3.0)) > 1e-9 {
		Te.Errorf("Wrong standard deviation %v", s.Std)
	}
	if sums[1].Poses != 1 || sums[1].Std != 0 || sums[1].Mean != -4.5 {
		Te.Errorf("Wrong single-pose summary %+v", sums[1])
	}
	var b strings.Builder
	if err := WriteSummary(&b, sums); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "-8.00") {
		Te.Errorf("Wrong table:\n%s", b.String())
	}
}

func TestBest(Te *testing.T) {
	best := Best(dockedSet(), 2)
	if len(best) != 2 || best[0].Energy != -8 || best[1].Energy != -7 {
		Te.Errorf("Wrong best poses %+v", best)
	}
	if all := Best(dockedSet(), 0); len(all) != 5 {
		Te.Errorf("Expected all 5 docked molecules, got %d", len(all))
	}
}

func TestPlots(Te *testing.T) {
	dir := Te.TempDir()
	S := dockedSet()
	for _, name := range []string{"hist.png", "hist.svg"} {
		out := filepath.Join(dir, name)
		if err := ScoreHistogram(S, 4, out); err != nil {
			Te.Fatal(err)
		}
		if info, err := os.Stat(out); err != nil || info.Size() == 0 {
			Te.Errorf("No plot written to %s", out)
		}
	}
	out := filepath.Join(dir, "scatter.png")
	if err := PoseScatter(S, out); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		Te.Errorf("No plot written to %s", out)
	}
	err := ScoreHistogram(lephar.NewSet(0), 4, filepath.Join(dir, "empty.png"))
	if !errors.Is(err, lephar.Error{Code: lephar.ErrValidation}) {
		Te.Errorf("Plotting nothing should be a validation error, got %v", err)
	}
}

func TestColors(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 5; i++ {
		r, g, b := colors(i, 5)
		seen[[3]uint8{r, g, b}] = true
	}
	if len(seen) != 5 {
		Te.Errorf("Colors are repeated: %v", seen)
	}
}
