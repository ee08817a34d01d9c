/*
 * config.go, part of golephar.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml"

	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/cluster"
	"github.com/scipion-chem/golephar/convert"
	"github.com/scipion-chem/golephar/filter"
	"github.com/scipion-chem/golephar/ledock"
	"github.com/scipion-chem/golephar/lepro"
)

// Config is the content of a job file. Each subcommand reads its own
// section, plus the common settings at the top level.
type Config struct {
	LepharHome string `toml:"lephar_home"`
	Obabel     string `toml:"obabel"`
	Verbosity  int    `toml:"verbosity"`

	Prepare PrepareConfig `toml:"prepare"`
	Dock    DockConfig    `toml:"dock"`
	Filter  FilterConfig  `toml:"filter"`
	Cluster ClusterConfig `toml:"cluster"`
}

type PrepareConfig struct {
	Receptor   string   `toml:"receptor"`
	WorkDir    string   `toml:"work_dir"`
	Chains     []string `toml:"chains"`
	KeepHETATM bool     `toml:"keep_hetatm"`
	KeepWaters bool     `toml:"keep_waters"`
	LePro      string   `toml:"lepro"`
}

type DockConfig struct {
	WorkDir      string   `toml:"work_dir"`
	Receptor     string   `toml:"receptor"`
	Prepared     bool     `toml:"prepared"`
	WholeProtein bool     `toml:"whole_protein"`
	Radius       float64  `toml:"radius"`
	ROIs         []string `toml:"rois"`
	ROICoef      float64  `toml:"roi_coef"`
	Ligands      []string `toml:"ligands"` //file names or glob patterns
	Batches      int      `toml:"batches"`
	Workers      int      `toml:"workers"`
	RMSD         float64  `toml:"rmsd"`
	Poses        int      `toml:"poses"`
	Resume       bool     `toml:"resume"`
	LeDock       string   `toml:"ledock"`
	Output       string   `toml:"output"`
}

type FilterConfig struct {
	WorkDir string   `toml:"work_dir"`
	Ligands []string `toml:"ligands"`
	Filters string   `toml:"filters"` //one filter per line, as read by filter.ParseFilterList
	QueryDB string   `toml:"querydb"`
	Output  string   `toml:"output"`
}

type ClusterConfig struct {
	WorkDir string   `toml:"work_dir"`
	Ligands []string `toml:"ligands"`
	Cutoff  float64  `toml:"cutoff"`
	Python  string   `toml:"python"`
	Script  string   `toml:"script"`
	Output  string   `toml:"output"` //prefix for the per-cluster set files
}

// ReadConfig reads the job file name.
func ReadConfig(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var C Config
	if err := toml.NewDecoder(f).Decode(&C); err != nil {
		return nil, fmt.Errorf("job file %s: %w", name, err)
	}
	if C.LepharHome != "" {
		os.Setenv(lephar.HomeVar, C.LepharHome)
	}
	if C.Obabel != "" {
		os.Setenv(convert.CommandVar, C.Obabel)
	}
	return &C, nil
}

// Ligands expands the patterns and returns one molecule per file, sorted by
// name within each pattern. Patterns that match nothing are an error.
func Ligands(patterns []string) ([]*lephar.SmallMolecule, error) {
	ret := make([]*lephar.SmallMolecule, 0, len(patterns))
	for _, p := range patterns {
		files, err := filepath.Glob(p)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no ligand files match %s", p)
		}
		sort.Strings(files)
		for _, f := range files {
			ret = append(ret, lephar.NewSmallMolecule(f))
		}
	}
	return ret, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Preparer returns a LePro preparer set up from the prepare section.
func (C *Config) Preparer() *lepro.Preparer {
	P := lepro.NewPreparer()
	if C.Prepare.LePro != "" {
		P.SetCommand(C.Prepare.LePro)
	}
	P.Options = lepro.Options{KeepHETATM: C.Prepare.KeepHETATM, KeepWaters: C.Prepare.KeepWaters, Chains: C.Prepare.Chains}
	return P
}

// DockJob returns the docking job described in the dock section. Unset
// numeric values keep the job's defaults.
func (C *Config) DockJob() (*ledock.DockJob, error) {
	D := C.Dock
	ligs, err := Ligands(D.Ligands)
	if err != nil {
		return nil, err
	}
	J := ledock.NewDockJob(orDefault(D.WorkDir, "ledock"), D.Receptor, ligs)
	J.Prepared = D.Prepared
	J.WholeProtein = D.WholeProtein
	J.Radius = D.Radius
	J.ROIs = D.ROIs
	J.Resume = D.Resume
	J.Preparer = C.Preparer()
	if D.ROICoef != 0 {
		J.ROICoef = D.ROICoef
	}
	if D.Batches != 0 {
		J.Batches = D.Batches
	}
	if D.Workers != 0 {
		J.Workers = D.Workers
	}
	if D.RMSD != 0 {
		J.Handle.SetRMSD(D.RMSD)
	}
	if D.Poses != 0 {
		J.Handle.SetPoses(D.Poses)
	}
	if D.LeDock != "" {
		J.Handle.SetCommand(D.LeDock)
	}
	return J, nil
}

// FilterJob returns the filtering job in the filter section, with its ligands and filters.
func (C *Config) FilterJob() (*filter.Job, []*lephar.SmallMolecule, []filter.Filter, error) {
	F := C.Filter
	ligs, err := Ligands(F.Ligands)
	if err != nil {
		return nil, nil, nil, err
	}
	filters, err := filter.ParseFilterList(F.Filters)
	if err != nil {
		return nil, nil, nil, err
	}
	J := filter.NewJob(orDefault(F.WorkDir, "filter"))
	if F.QueryDB != "" {
		J.SetCommand(F.QueryDB)
	}
	return J, ligs, filters, nil
}

// ClusterJob returns the clustering job in the cluster section, with its ligands.
func (C *Config) ClusterJob() (*cluster.Job, []*lephar.SmallMolecule, error) {
	K := C.Cluster
	ligs, err := Ligands(K.Ligands)
	if err != nil {
		return nil, nil, err
	}
	J := cluster.NewJob(orDefault(K.WorkDir, "cluster"))
	if K.Cutoff != 0 {
		J.Cutoff = K.Cutoff
	}
	if K.Python != "" {
		J.Python = K.Python
	}
	if K.Script != "" {
		J.Script = K.Script
	}
	return J, ligs, nil
}
