/*
 * dock_test.go, part of golephar.
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

package ledock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	lephar "github.com/scipion-chem/golephar"
)

// fakeLeDock writes a script that behaves like LeDock as far as files are
// concerned. Docking writes one .dok file per ligand in the listing, containing
// the number of poses requested. Split mode writes that many pose files.
func fakeLeDock(Te *testing.T, dir string) string {
	script := `#!/bin/sh
if [ "$1" = "-spli" ]; then
  base="${2%.dok}"
  n=$(cat "$2")
  i=1
  while [ $i -le $n ]; do
    f=$(printf "%s_dock%03d.pdb" "$base" $i)
    printf 'REMARK Cluster %d Score: -%d.5 kcal/mol\nREMARK Cluster %d -%d.5 Score\nATOM      1 C1   LIG     0       0.000   0.000   0.000\nATOM      2 Cl2  LIG     0       1.000   0.000   0.000\nEND\n' $i $i $i $i > "$f"
    i=$((i+1))
  done
  exit 0
fi
poses=$(sed -n '13p' "$1")
list=$(sed -n '16p' "$1")
while read lig; do
  [ -z "$lig" ] && continue
  echo "$poses" > "${lig%.mol2}.dok"
done < "$list"
`
	name := filepath.Join(dir, "ledock")
	if err := os.WriteFile(name, []byte(script), 0755); err != nil {
		Te.Fatal(err)
	}
	return name
}

func testJob(Te *testing.T, nligs int) *DockJob {
	dir := Te.TempDir()
	ligs := make([]*lephar.SmallMolecule, nligs)
	for i := range ligs {
		name := filepath.Join(dir, fmt.Sprintf("lig%d.mol2", i))
		require.NoError(Te, os.WriteFile(name, []byte("@<TRIPOS>MOLECULE\nlig\n"), 0644))
		ligs[i] = lephar.NewSmallMolecule(name)
	}
	J := NewDockJob(filepath.Join(dir, "job"), "testdata/receptor.pdb", ligs)
	J.Prepared = true
	J.WholeProtein = true
	J.Radius = 12
	J.Batches = 2
	J.Workers = 2
	J.Handle.SetCommand(fakeLeDock(Te, dir))
	J.Converter.Command = "/nonexistent/obabel"
	return J
}

func TestDockJob(Te *testing.T) {
	J := testJob(Te, 4)
	S, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, 40, S.Len())
	require.True(Te, S.Docked)
	require.NotEmpty(Te, J.DockID)
	require.Equal(Te, []int{1}, S.Grids())
	for i := 0; i < 2; i++ {
		list, err := ReadList(filepath.Join(J.WorkDir, BatchListName(i)))
		require.NoError(Te, err)
		require.Len(Te, list, 2)
		params := filepath.Join(J.WorkDir, "pocket_1", fmt.Sprintf("batch_%d", i), "dock.in")
		require.FileExists(Te, params)
		content, err := os.ReadFile(params)
		require.NoError(Te, err)
		lines := strings.Split(string(content), "\n")
		require.Equal(Te, BatchListName(i), lines[15])
		local, err := ReadList(filepath.Join(filepath.Dir(params), BatchListName(i)))
		require.NoError(Te, err)
		require.Equal(Te, []string{filepath.Base(list[0]), filepath.Base(list[1])}, local)
	}
	perLigand := make(map[string]int)
	for _, m := range S.Molecules {
		require.Equal(Te, 1, m.GridID)
		require.Equal(Te, J.DockID, m.DockID)
		require.Equal(Te, -float64(m.PoseID)-0.5, m.Energy)
		require.FileExists(Te, m.PoseFile)
		perLigand[m.UniqueName()]++
	}
	require.Len(Te, perLigand, 4)
	for name, n := range perLigand {
		require.Equal(Te, 10, n, "poses for %s", name)
	}

	//A resumed job must not run LeDock again, nor post-process the poses twice.
	before, err := os.ReadFile(S.Molecules[0].PoseFile)
	require.NoError(Te, err)
	J.Resume = true
	J.Handle.SetCommand("/nonexistent/ledock")
	R, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, S.Len(), R.Len())
	after, err := os.ReadFile(S.Molecules[0].PoseFile)
	require.NoError(Te, err)
	require.Equal(Te, string(before), string(after))

	//Interrupted after post-processing, before the markers were written.
	for i := 0; i < 2; i++ {
		require.NoError(Te, os.Remove(filepath.Join(J.WorkDir, "pocket_1", fmt.Sprintf("batch_%d", i), processedMarker)))
	}
	R, err = J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, S.Len(), R.Len())
	after, err = os.ReadFile(S.Molecules[0].PoseFile)
	require.NoError(Te, err)
	require.Equal(Te, string(before), string(after))
}

func TestDockJobResumeRebatched(Te *testing.T) {
	J := testJob(Te, 4)
	_, err := J.Run(context.Background())
	require.NoError(Te, err)
	batch0 := filepath.Join(J.WorkDir, "pocket_1", "batch_0", "kept")
	batch1 := filepath.Join(J.WorkDir, "pocket_1", "batch_1", "kept")
	require.NoError(Te, os.WriteFile(batch0, nil, 0644))
	require.NoError(Te, os.WriteFile(batch1, nil, 0644))

	//4 ligands in 3 batches: 2, 1, 1. Only the first batch is unchanged.
	J.Resume = true
	J.Batches = 3
	S, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, 40, S.Len())
	perLigand := make(map[string]int)
	for _, m := range S.Molecules {
		perLigand[m.UniqueName()]++
	}
	require.Equal(Te, map[string]int{"lig0": 10, "lig1": 10, "lig2": 10, "lig3": 10}, perLigand)
	require.FileExists(Te, batch0)
	require.NoFileExists(Te, batch1)
}

func TestDockJobGlobCharsInDir(Te *testing.T) {
	J := testJob(Te, 2)
	J.WorkDir = filepath.Join(Te.TempDir(), "run[1]*?")
	S, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, 20, S.Len())
	leftovers, err := listFiles(filepath.Join(J.WorkDir, "pocket_1", "batch_0"), func(name string) bool {
		return strings.HasSuffix(name, ".dok")
	})
	require.NoError(Te, err)
	require.Empty(Te, leftovers)

	//resuming finds the same poses
	J.Resume = true
	R, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, S.Len(), R.Len())
}

func TestDockJobROIs(Te *testing.T) {
	J := testJob(Te, 3)
	J.WholeProtein = false
	roi := filepath.Join(Te.TempDir(), "roi.pdb")
	data, err := os.ReadFile("testdata/receptor.pdb")
	require.NoError(Te, err)
	require.NoError(Te, os.WriteFile(roi, data, 0644))
	J.ROIs = []string{roi, roi}
	J.Handle.SetPoses(2)
	S, err := J.Run(context.Background())
	require.NoError(Te, err)
	require.Equal(Te, 2*3*2, S.Len())
	require.Equal(Te, []int{1, 2}, S.Grids())
	for i := 1; i < S.Len(); i++ {
		require.LessOrEqual(Te, S.Molecules[i-1].GridID, S.Molecules[i].GridID)
	}
}

func TestDockJobValidate(Te *testing.T) {
	cases := map[string]func(J *DockJob){
		"no receptor":   func(J *DockJob) { J.Receptor = "" },
		"no radius":     func(J *DockJob) { J.Radius = 0 },
		"no ROIs":       func(J *DockJob) { J.WholeProtein = false },
		"no ligands":    func(J *DockJob) { J.Ligands = nil },
		"bad RMSD":      func(J *DockJob) { J.Handle.SetRMSD(0) },
		"no poses":      func(J *DockJob) { J.Handle.SetPoses(-1) },
		"repeated name": func(J *DockJob) { J.Ligands = append(J.Ligands, J.Ligands[0].Copy()) },
		"bad ROI coef": func(J *DockJob) {
			J.WholeProtein = false
			J.ROIs = []string{"roi.pdb"}
			J.ROICoef = 0
		},
	}
	for name, mod := range cases {
		J := testJob(Te, 2)
		mod(J)
		_, err := J.Run(context.Background())
		if !errors.Is(err, lephar.Error{Code: lephar.ErrValidation}) {
			Te.Errorf("%s: expected a validation error, got %v", name, err)
		}
		if _, err := os.Stat(J.WorkDir); err == nil {
			Te.Errorf("%s: the job did something before validating", name)
		}
	}
}

func TestDockJobCanceled(Te *testing.T) {
	J := testJob(Te, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := J.Run(ctx)
	require.ErrorIs(Te, err, context.Canceled)
}
