/*
 * assemble.go, part of golephar.
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
	"runtime"
	"sort"
	"sync"

	lephar "github.com/scipion-chem/golephar"
)

// MolClass is the tag given to the molecules docked by this package.
const MolClass = "LeDock"

// Assembler turns pose files into a set of docked molecules.
type Assembler struct {
	Workers  int //goroutines used to post-process the pose files
	Receptor string
	DockID   string
}

// NewAssembler returns an Assembler that uses one goroutine per CPU.
func NewAssembler(receptor, dockID string) *Assembler {
	return &Assembler{Workers: runtime.NumCPU(), Receptor: receptor, DockID: dockID}
}

// Assemble post-processes the pose files not yet Processed and returns a docked set with one molecule per
// pose. Each molecule is a copy of the input molecule whose unique name matches the pose's
// ligand, with the pose's file, score, index and pocket. Empty pose files are failed poses,
// and are left out without complaint.
func (A *Assembler) Assemble(poses []Pose, inputs []*lephar.SmallMolecule) (*lephar.SetOfSmallMolecules, error) {
	byName := (&lephar.SetOfSmallMolecules{Molecules: inputs}).ByName()
	kept := make([]Pose, 0, len(poses))
	for _, p := range poses {
		info, err := os.Stat(p.File)
		if err != nil {
			return nil, lephar.NewError(lephar.ErrNoOutput, MolClass, p.File, "Assembler.Assemble", err)
		}
		if info.Size() == 0 {
			continue
		}
		if _, ok := byName[p.Ligand]; !ok {
			return nil, lephar.NewError(lephar.ErrParse, MolClass, p.File, "Assembler.Assemble", fmt.Errorf("no input molecule named %s", p.Ligand))
		}
		kept = append(kept, p)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Pocket != b.Pocket {
			return a.Pocket < b.Pocket
		}
		if a.Batch != b.Batch {
			return a.Batch < b.Batch
		}
		if a.Ligand != b.Ligand {
			return a.Ligand < b.Ligand
		}
		return a.Index < b.Index
	})
	files := make([]string, 0, len(kept))
	for _, p := range kept {
		if !p.Processed {
			files = append(files, p.File)
		}
	}
	if err := PostProcess(files, A.Workers); err != nil {
		return nil, lephar.ErrDecorate(err, "Assembler.Assemble")
	}
	S := lephar.NewSet(len(kept))
	S.ProteinFile = A.Receptor
	S.Docked = true
	S.DockID = A.DockID
	for _, p := range kept {
		e, err := ParseEnergy(p.File)
		if err != nil {
			return nil, lephar.ErrDecorate(err, "Assembler.Assemble")
		}
		m := byName[p.Ligand].Copy()
		m.PoseFile = p.File
		m.Energy = e
		m.PoseID = p.Index
		m.GridID = p.Pocket
		m.MolClass = MolClass
		m.DockID = A.DockID
		S.Append(m)
	}
	return S, nil
}

// PostProcess adds the missing PDB columns to each file, in place. The files
// are divided in contiguous chunks, one per worker, processed concurrently.
// It returns the first error found, if any.
func PostProcess(files []string, workers int) error {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))
	chunk := (len(files) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		ini := w * chunk
		if ini >= len(files) {
			break
		}
		end := min(ini+chunk, len(files))
		wg.Add(1)
		go func(w int, part []string) {
			defer wg.Done()
			for _, f := range part {
				if err := lephar.AddPDBColumns(f); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, files[ini:end])
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
