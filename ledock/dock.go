/*
 * dock.go, part of golephar.
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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/convert"
	"github.com/scipion-chem/golephar/lepro"
)

// Names of the files that mark a pocket/batch directory as docked, and
// its poses as post-processed.
const (
	doneMarker      = ".done"
	processedMarker = ".processed"
)

// DockJob docks a library of ligands on a receptor, in one or more pockets.
// The pockets are taken, in this order of preference, from Pockets, from the
// whole receptor if WholeProtein is true, or from the ROIs.
type DockJob struct {
	WorkDir  string
	Receptor string
	Prepared bool //if false, the receptor goes through LePro first

	WholeProtein bool
	Radius       float64 //for the whole-protein pocket
	ROIs         []string
	ROICoef      float64 //the ROI radius is multiplied by this
	Pockets      []*lephar.Pocket

	Ligands []*lephar.SmallMolecule
	Batches int //number of batches the ligands are split in
	Workers int //concurrent LeDock runs. runtime.NumCPU() if < 1
	Resume  bool

	Handle    *Handle
	Converter *convert.Converter
	Preparer  *lepro.Preparer
	DockID    string //a new UUID if empty
}

// NewDockJob returns a job with default handles and one batch per CPU.
func NewDockJob(workDir, receptor string, ligands []*lephar.SmallMolecule) *DockJob {
	return &DockJob{
		WorkDir:   workDir,
		Receptor:  receptor,
		Ligands:   ligands,
		Batches:   runtime.NumCPU(),
		Workers:   runtime.NumCPU(),
		ROICoef:   1.1,
		Handle:    NewHandle(),
		Converter: convert.New(),
		Preparer:  lepro.NewPreparer(),
	}
}

func validationError(format string, a ...interface{}) error {
	return lephar.NewError(lephar.ErrValidation, MolClass, "", "DockJob.Validate", fmt.Errorf(format, a...))
}

// Validate checks the job's parameters. It does not run anything.
func (J *DockJob) Validate() error {
	if J.Receptor == "" {
		return validationError("no receptor given")
	}
	if _, err := os.Stat(J.Receptor); err != nil {
		return validationError("receptor %s can't be read: %v", J.Receptor, err)
	}
	switch {
	case len(J.Pockets) > 0:
	case J.WholeProtein:
		if J.Radius <= 0 {
			return validationError("whole-protein docking needs a radius > 0, got %v", J.Radius)
		}
	default:
		if len(J.ROIs) == 0 {
			return validationError("no pockets or regions of interest given")
		}
		if J.ROICoef <= 0 {
			return validationError("the ROI radius coefficient must be > 0, got %v", J.ROICoef)
		}
	}
	if J.Handle == nil {
		return validationError("no LeDock handle")
	}
	if J.Handle.RMSD() <= 0 {
		return validationError("RMSD must be > 0, got %v", J.Handle.RMSD())
	}
	if J.Handle.Poses() <= 0 {
		return validationError("the number of poses must be > 0, got %d", J.Handle.Poses())
	}
	if len(J.Ligands) == 0 {
		return validationError("no ligands to dock")
	}
	seen := make(map[string]bool, len(J.Ligands))
	for _, v := range J.Ligands {
		n := v.UniqueName()
		if seen[n] {
			return validationError("two ligands share the name %s", n)
		}
		seen[n] = true
	}
	if J.Converter == nil {
		return validationError("no format converter")
	}
	if !J.Prepared && J.Preparer == nil {
		return validationError("the receptor is not prepared and no LePro preparer was given")
	}
	return nil
}

// a pocket/batch combination, run by one LeDock invocation.
type unit struct {
	pocket *lephar.Pocket
	batch  *Batch
}

// Run docks the ligands and returns the docked set, with one molecule per pose.
// The context is checked only between LeDock runs, a running program is never
// interrupted.
func (J *DockJob) Run(ctx context.Context) (*lephar.SetOfSmallMolecules, error) {
	if err := J.Validate(); err != nil {
		return nil, err
	}
	if J.DockID == "" {
		J.DockID = uuid.NewString()
	}
	if err := os.MkdirAll(J.WorkDir, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, MolClass, J.WorkDir, "DockJob.Run", err)
	}
	receptor, err := J.receptor()
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	ligands, err := J.convertLigands()
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	listing, err := WriteLists(J.WorkDir, ligands, J.Batches)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	pockets, err := J.pockets(receptor)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	units := make([]unit, 0, len(pockets)*len(listing.Batches))
	for _, p := range pockets {
		for _, b := range listing.Batches {
			units = append(units, unit{pocket: p, batch: b})
		}
	}
	lephar.LogV(1, "Docking", len(ligands), "ligands in", len(pockets), "pocket(s),", len(listing.Batches), "batch(es)")
	for _, p := range pockets {
		lephar.LogV(2, p)
	}
	poses, err := J.runUnits(ctx, receptor, units)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	A := NewAssembler(J.Receptor, J.DockID)
	if J.Workers > 0 {
		A.Workers = J.Workers
	}
	S, err := A.Assemble(poses, J.Ligands)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.Run")
	}
	for _, u := range units {
		mark := filepath.Join(J.unitDir(u), processedMarker)
		if err := os.WriteFile(mark, nil, 0644); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, MolClass, mark, "DockJob.Run", err)
		}
	}
	lephar.LogV(1, "Docking finished:", S.Len(), "poses")
	return S, nil
}

// receptor returns the absolute path to the receptor to be docked on,
// preparing it if needed.
func (J *DockJob) receptor() (string, error) {
	if J.Prepared {
		r, err := filepath.Abs(J.Receptor)
		if err != nil {
			return "", lephar.NewError(lephar.ErrCantInput, MolClass, J.Receptor, "DockJob.receptor", err)
		}
		return r, nil
	}
	dir := filepath.Join(J.WorkDir, "receptor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.LePro, dir, "DockJob.receptor", err)
	}
	r, err := J.Preparer.Prepare(J.Receptor, dir)
	return r, lephar.ErrDecorate(err, "DockJob.receptor")
}

// convertLigands returns absolute paths to mol2 versions of the ligands,
// in the same order.
func (J *DockJob) convertLigands() ([]string, error) {
	dir, err := filepath.Abs(filepath.Join(J.WorkDir, "ligands"))
	if err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, "", J.WorkDir, "DockJob.convertLigands", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, "", dir, "DockJob.convertLigands", err)
	}
	ret := make([]string, len(J.Ligands))
	for i, v := range J.Ligands {
		ret[i], err = J.Converter.ToFormat(v.File, dir, "mol2")
		if err != nil {
			return nil, lephar.ErrDecorate(err, "DockJob.convertLigands")
		}
	}
	return ret, nil
}

func (J *DockJob) pockets(receptor string) ([]*lephar.Pocket, error) {
	if len(J.Pockets) > 0 {
		return J.Pockets, nil
	}
	if J.WholeProtein {
		P, err := lephar.WholeProtein(receptor, J.Radius)
		if err != nil {
			return nil, lephar.ErrDecorate(err, "DockJob.pockets")
		}
		return []*lephar.Pocket{P}, nil
	}
	ret := make([]*lephar.Pocket, 0, len(J.ROIs))
	for i, roi := range J.ROIs {
		P, err := lephar.PocketFromROI(i+1, roi, J.ROICoef)
		if err != nil {
			return nil, lephar.ErrDecorate(err, "DockJob.pockets")
		}
		ret = append(ret, P)
	}
	return ret, nil
}

// runUnits runs the units on a pool of J.Workers goroutines and returns all
// the poses produced. After the first error, the remaining units are skipped.
func (J *DockJob) runUnits(ctx context.Context, receptor string, units []unit) ([]Pose, error) {
	workers := J.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(units))
	jobs := make(chan unit)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		poses    []Pose
	)
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if failed() {
					continue
				}
				var p []Pose
				err := ctx.Err()
				if err == nil {
					p, err = J.runUnit(receptor, u)
				}
				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				poses = append(poses, p...)
				mu.Unlock()
			}
		}()
	}
	for _, u := range units {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return poses, nil
}

func (J *DockJob) unitDir(u unit) string {
	return filepath.Join(u.pocket.Dir(J.WorkDir), fmt.Sprintf("batch_%d", u.batch.Index))
}

// finished returns true if dir holds a completed docking of exactly the ligands
// in b. A unit left by a run with a different batch layout is not finished.
func finished(dir string, b *Batch) bool {
	if _, err := os.Stat(filepath.Join(dir, doneMarker)); err != nil {
		return false
	}
	list := filepath.Join(dir, BatchListName(b.Index))
	if _, err := os.Stat(list); err != nil {
		return false
	}
	local, err := ReadList(list)
	if err != nil || len(local) != len(b.Files) {
		return false
	}
	for i, f := range b.Files {
		if local[i] != filepath.Base(f) {
			return false
		}
	}
	return true
}

// runUnit docks one batch in one pocket, in WorkDir/pocket_<ID>/batch_<index>.
func (J *DockJob) runUnit(receptor string, u unit) ([]Pose, error) {
	dir, err := filepath.Abs(J.unitDir(u))
	if err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, MolClass, J.WorkDir, "DockJob.runUnit", err)
	}
	if J.Resume && finished(dir, u.batch) {
		lephar.LogV(2, "Reusing finished docking in", dir)
		poses, err := ScanPoses(dir, u.pocket.ID, u.batch.Index)
		if err != nil {
			return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
		}
		_, err = os.Stat(filepath.Join(dir, processedMarker))
		for i := range poses {
			poses[i].Processed = err == nil
		}
		return poses, nil
	}
	//leftovers from an interrupted run would clash with the new outputs.
	if err := os.RemoveAll(dir); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, MolClass, dir, "DockJob.runUnit", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, MolClass, dir, "DockJob.runUnit", err)
	}
	rec, err := LinkLocal(receptor, dir)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
	}
	local := make([]string, len(u.batch.Files))
	for i, f := range u.batch.Files {
		if local[i], err = LinkLocal(f, dir); err != nil {
			return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
		}
	}
	list := BatchListName(u.batch.Index)
	if err := WriteList(filepath.Join(dir, list), local); err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
	}
	params, err := J.Handle.BuildInput(dir, rec, u.pocket, list)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
	}
	lephar.LogV(2, "Docking batch", u.batch.Index, "in pocket", u.pocket.ID)
	if err := J.Handle.Run(params, dir); err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
	}
	poses, err := SplitOutputs(J.Handle, dir)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "DockJob.runUnit")
	}
	for i := range poses {
		poses[i].Pocket = u.pocket.ID
		poses[i].Batch = u.batch.Index
	}
	if err := os.WriteFile(filepath.Join(dir, doneMarker), nil, 0644); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, MolClass, dir, "DockJob.runUnit", err)
	}
	return poses, nil
}
