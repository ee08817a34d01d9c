/*
 * assemble_test.go, part of golephar.
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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lephar "github.com/scipion-chem/golephar"
)

// copyPose copies the raw pose in testdata to dir/lig/lig_index.pdb.
func copyPose(Te *testing.T, dir, lig string, index int) string {
	data, err := os.ReadFile("testdata/pose_raw.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	ligDir := filepath.Join(dir, lig)
	os.MkdirAll(ligDir, 0755)
	name := filepath.Join(ligDir, lig+"_"+string(rune('0'+index))+".pdb")
	if err := os.WriteFile(name, data, 0644); err != nil {
		Te.Fatal(err)
	}
	return name
}

func TestAssemble(Te *testing.T) {
	dir := Te.TempDir()
	inputs := []*lephar.SmallMolecule{lephar.NewSmallMolecule("/ligs/b.mol2"), lephar.NewSmallMolecule("/ligs/a.sdf.gz")}
	poses := []Pose{
		{Ligand: "b", Index: 2, File: copyPose(Te, dir, "b", 2), Pocket: 1},
		{Ligand: "b", Index: 1, File: copyPose(Te, dir, "b", 1), Pocket: 1},
		{Ligand: "a", Index: 1, File: copyPose(Te, filepath.Join(dir, "pocket_2"), "a", 1), Pocket: 2},
		{Ligand: "a", Index: 1, File: copyPose(Te, dir, "a", 1), Pocket: 1},
	}
	empty := filepath.Join(dir, "a", "a_2.pdb")
	os.WriteFile(empty, nil, 0644)
	poses = append(poses, Pose{Ligand: "a", Index: 2, File: empty, Pocket: 1})
	A := NewAssembler("rec.pdb", "run1")
	A.Workers = 3
	S, err := A.Assemble(poses, inputs)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 4 {
		Te.Fatalf("The empty pose should be skipped, got %d molecules", S.Len())
	}
	if !S.Docked || S.ProteinFile != "rec.pdb" || S.DockID != "run1" {
		Te.Errorf("Wrong set attributes %+v", S)
	}
	order := []struct {
		name         string
		grid, poseID int
	}{{"a", 1, 1}, {"b", 1, 1}, {"b", 1, 2}, {"a", 2, 1}}
	for i, m := range S.Molecules {
		o := order[i]
		if m.UniqueName() != o.name || m.GridID != o.grid || m.PoseID != o.poseID {
			Te.Errorf("Molecule %d is %s grid %d pose %d, expected %+v", i, m.UniqueName(), m.GridID, m.PoseID, o)
		}
		if m.Energy != -7.23 || m.MolClass != MolClass || m.DockID != "run1" {
			Te.Errorf("Wrong pose data %+v", m)
		}
	}
	if inputs[0].Docked() || inputs[1].Energy != 0 {
		Te.Errorf("Input molecules were modified")
	}
	data, _ := os.ReadFile(S.Molecules[0].PoseFile)
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "ATOM") && !strings.Contains(line, "  1.00  0.00") {
			Te.Errorf("Pose was not post-processed: %q", line)
		}
	}
}

func TestAssembleUnknownLigand(Te *testing.T) {
	dir := Te.TempDir()
	poses := []Pose{{Ligand: "c", Index: 1, File: copyPose(Te, dir, "c", 1), Pocket: 1}}
	_, err := NewAssembler("rec.pdb", "").Assemble(poses, []*lephar.SmallMolecule{lephar.NewSmallMolecule("a.mol2")})
	if !errors.Is(err, lephar.Error{Code: lephar.ErrParse}) {
		Te.Errorf("Expected a parse error, got %v", err)
	}
}

func TestPostProcess(Te *testing.T) {
	dir := Te.TempDir()
	files := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		files = append(files, copyPose(Te, dir, "lig", i))
	}
	if err := PostProcess(files, 3); err != nil {
		Te.Fatal(err)
	}
	first, _ := os.ReadFile(files[0])
	for _, f := range files[1:] {
		data, _ := os.ReadFile(f)
		if string(data) != string(first) {
			Te.Errorf("%s processed differently", f)
		}
	}
	if err := PostProcess(nil, 4); err != nil {
		Te.Errorf("No files should be no error, got %v", err)
	}
}
