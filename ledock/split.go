/*
 * split.go, part of golephar.
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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	lephar "github.com/scipion-chem/golephar"
)

// Pose is one pose file produced by LeDock for a ligand, in a given pocket and batch.
type Pose struct {
	Ligand    string //unique name of the ligand
	Index     int    //1-based
	File      string
	Pocket    int
	Batch     int
	Processed bool //the PDB columns were already completed
}

// listFiles returns the paths of the regular files in dir whose names
// satisfy match, sorted by name.
func listFiles(dir string, match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && match(e.Name()) {
			ret = append(ret, filepath.Join(dir, e.Name()))
		}
	}
	return ret, nil
}

// SplitOutputs runs the split mode of LeDock on every .dok file in dir.
// The poses from lig.dok end up in dir/lig/lig_N.pdb, where N is the pose index.
// The .dok files are removed after being split. The returned poses have Pocket
// and Batch unset.
func SplitOutputs(H *Handle, dir string) ([]Pose, error) {
	doks, err := listFiles(dir, func(name string) bool {
		return strings.HasSuffix(name, ".dok")
	})
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "LeDock", dir, "SplitOutputs", err)
	}
	ret := make([]Pose, 0, len(doks)*H.poses)
	for _, dok := range doks {
		root := lephar.BaseName(dok)
		ligDir, err := filepath.Abs(filepath.Join(dir, root))
		if err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "LeDock", dok, "SplitOutputs", err)
		}
		//A ligand directory can't be reused, otherwise poses from different
		//ligands would get mixed.
		if err := os.Mkdir(ligDir, 0755); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "LeDock", ligDir, "SplitOutputs", err)
		}
		newDok := filepath.Join(ligDir, filepath.Base(dok))
		if err := os.Rename(dok, newDok); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "LeDock", dok, "SplitOutputs", err)
		}
		if err := H.Split(newDok, dir); err != nil {
			return nil, lephar.ErrDecorate(err, "SplitOutputs")
		}
		if err := os.Remove(newDok); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "LeDock", newDok, "SplitOutputs", err)
		}
		poses, err := renamePoses(ligDir, root)
		if err != nil {
			return nil, lephar.ErrDecorate(err, "SplitOutputs")
		}
		ret = append(ret, poses...)
	}
	return ret, nil
}

// renamePoses renames the lig_dockNNN.pdb files written by the split mode
// in dir to lig_N.pdb.
func renamePoses(dir, ligand string) ([]Pose, error) {
	files, err := listFiles(dir, func(name string) bool {
		return strings.HasSuffix(name, ".pdb") && strings.Contains(name, "dock")
	})
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "LeDock", dir, "renamePoses", err)
	}
	ret := make([]Pose, 0, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		cut := strings.LastIndex(base, "dock")
		index, err := strconv.Atoi(strings.TrimSuffix(base[cut+len("dock"):], ".pdb"))
		if err != nil {
			return nil, lephar.NewError(lephar.ErrParse, "LeDock", f, "renamePoses", err)
		}
		newName := filepath.Join(dir, fmt.Sprintf("%s%d.pdb", base[:cut], index))
		if err := os.Rename(f, newName); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "LeDock", f, "renamePoses", err)
		}
		ret = append(ret, Pose{Ligand: ligand, Index: index, File: newName})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret, nil
}

// ScanPoses collects the poses already split in dir, which must have the layout
// produced by SplitOutputs. It is used to resume an interrupted run.
func ScanPoses(dir string, pocket, batch int) ([]Pose, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "", dir, "ScanPoses", err)
	}
	ret := make([]Pose, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		prefix := e.Name() + "_"
		files, err := listFiles(filepath.Join(dir, e.Name()), func(name string) bool {
			return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".pdb")
		})
		if err != nil {
			return nil, lephar.NewError(lephar.ErrParse, "", dir, "ScanPoses", err)
		}
		for _, f := range files {
			suffix := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(f), e.Name()+"_"), ".pdb")
			index, err := strconv.Atoi(suffix)
			if err != nil {
				continue //not a pose file
			}
			abs, _ := filepath.Abs(f)
			ret = append(ret, Pose{Ligand: e.Name(), Index: index, File: abs, Pocket: pocket, Batch: batch})
		}
	}
	return ret, nil
}
