/*
 * job.go, part of golephar.
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

package filter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/convert"
)

// Names of the files written in the job's directory.
const (
	ligandsFile  = "ligands.mol2"
	filteredFile = "filtered.mol2"
	specFile     = "custom_lefilter.txt"
	defaultSpec  = "le_filter.txt" //distributed with QueryDB
)

// Job filters a set of molecules with QueryDB.
type Job struct {
	command   string
	WorkDir   string
	Converter *convert.Converter
	Runner    lephar.Runner
}

// NewJob returns a Job with the default settings that works in workDir.
func NewJob(workDir string) *Job {
	J := &Job{WorkDir: workDir}
	J.SetDefaults()
	return J
}

// SetDefaults sets the QueryDB binary from the LePhar installation and the default converter.
func (J *Job) SetDefaults() {
	J.command = lephar.ProgramPath(lephar.QueryDB)
	J.Converter = convert.New()
}

// SetCommand sets the QueryDB executable.
func (J *Job) SetCommand(name string) { J.command = name }

// Command returns the QueryDB executable.
func (J *Job) Command() string { return J.command }

// Run filters the ligands and returns the ones that pass all the filters, as
// copies of the input molecules, in the input order. Without filters, the default
// le_filter.txt distributed with QueryDB is used.
func (J *Job) Run(ligands []*lephar.SmallMolecule, filters []Filter) (*lephar.SetOfSmallMolecules, error) {
	if len(ligands) == 0 {
		return nil, lephar.NewError(lephar.ErrValidation, lephar.QueryDB, "", "filter.Job.Run", fmt.Errorf("no ligands to filter"))
	}
	byName := make(map[string]*lephar.SmallMolecule, len(ligands))
	for _, v := range ligands {
		if _, ok := byName[v.UniqueName()]; ok {
			return nil, lephar.NewError(lephar.ErrValidation, lephar.QueryDB, v.File, "filter.Job.Run", fmt.Errorf("two ligands share the name %s", v.UniqueName()))
		}
		byName[v.UniqueName()] = v
	}
	extra := filepath.Join(J.WorkDir, "extra")
	if err := os.MkdirAll(extra, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, extra, "filter.Job.Run", err)
	}
	combined, err := J.combine(ligands, extra)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "filter.Job.Run")
	}
	spec, err := J.spec(filters)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "filter.Job.Run")
	}
	args := []string{"-filter", filepath.Base(spec), "mol2", filepath.Base(combined), filteredFile}
	if err := J.Runner.Run(J.command, args, J.WorkDir); err != nil {
		return nil, lephar.ErrDecorate(err, "filter.Job.Run")
	}
	filtered := filepath.Join(J.WorkDir, filteredFile)
	if _, err := os.Stat(filtered); err != nil {
		return nil, lephar.NewError(lephar.ErrNoOutput, lephar.QueryDB, filtered, "filter.Job.Run", err)
	}
	outDir := filepath.Join(J.WorkDir, "filtered")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, outDir, "filter.Job.Run", err)
	}
	files, err := convert.SplitMol2(filtered, outDir)
	if err != nil {
		return nil, lephar.ErrDecorate(err, "filter.Job.Run")
	}
	passed := make(map[string]bool, len(files))
	for _, f := range files {
		passed[lephar.BaseName(f)] = true
	}
	S := lephar.NewSet(len(files))
	for _, v := range ligands {
		if passed[v.UniqueName()] {
			S.Append(v.Copy())
		}
	}
	lephar.LogV(1, S.Len(), "of", len(ligands), "molecules passed the filters")
	return S, nil
}

// combine writes all the ligands, in mol2 format, to one file, with their
// unique names as titles. It returns the absolute path to that file.
func (J *Job) combine(ligands []*lephar.SmallMolecule, extra string) (string, error) {
	titled := make([]string, len(ligands))
	for i, v := range ligands {
		mol2, err := J.Converter.ToFormat(v.File, extra, "mol2")
		if err != nil {
			return "", lephar.ErrDecorate(err, "combine")
		}
		titled[i] = filepath.Join(extra, v.UniqueName()+"_titled.mol2")
		if err := convert.Retitle(mol2, titled[i], v.UniqueName()); err != nil {
			return "", lephar.ErrDecorate(err, "combine")
		}
	}
	out, err := filepath.Abs(filepath.Join(J.WorkDir, ligandsFile))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, J.WorkDir, "combine", err)
	}
	if err := convert.Combine(titled, out); err != nil {
		return "", lephar.ErrDecorate(err, "combine")
	}
	return out, lephar.ErrDecorate(convert.CleanAttrSection(out, ""), "combine")
}

// spec writes the QueryDB specification file for the filters, or
// copies the default one if there are no filters.
func (J *Job) spec(filters []Filter) (string, error) {
	name := filepath.Join(J.WorkDir, specFile)
	if len(filters) > 0 {
		return name, lephar.ErrDecorate(WriteSpec(name, filters), "spec")
	}
	def := filepath.Join(filepath.Dir(J.command), defaultSpec)
	fin, err := os.Open(def)
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, def, "spec", err)
	}
	defer fin.Close()
	fout, err := os.Create(name)
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, name, "spec", err)
	}
	if _, err := io.Copy(fout, fin); err != nil {
		fout.Close()
		return "", lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, name, "spec", err)
	}
	return name, fout.Close()
}
