/*
 * cluster.go, part of golephar.
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

// Package cluster groups small molecules by their maximum common substructure,
// with the ClusterByMCS script from the LePhar suite.
package cluster

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/scu"
	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/convert"
)

// PythonVar is the environment variable that, if set, gives the Python
// interpreter (with RDKit) used to run the clustering script.
const PythonVar = "GOLEPHAR_PYTHON"

// DefaultCutoff is the similarity cutoff suggested by the LePhar authors.
// 0.8 is often better.
const DefaultCutoff = 0.618

// Name of the file the clustering script writes in its working directory.
const clustersFile = "clusters.smi"

// Member is a molecule in a cluster, as given by the clustering script.
type Member struct {
	SMILES string
	Name   string //the molecule's name with its position in the cluster appended: name_1, name_2...
}

// Cluster is a group of similar molecules.
type Cluster struct {
	ID      string
	Members []Member
}

// ParseClusters reads the clusters.smi file written by ClusterByMCS, where each line contains
// the SMILES, the molecule name, an ignored field and the cluster ID. Clusters are returned in
// the order they are first found. Member names get a counter that starts at 1 in each cluster.
func ParseClusters(name string) ([]*Cluster, error) {
	fin, err := scu.NewMustReadFile(name)
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "ClusterByMCS", name, "ParseClusters", err)
	}
	defer fin.Close()
	ret := make([]*Cluster, 0, 10)
	byID := make(map[string]*Cluster)
	n := 0
	for i := fin.Next(); i != "EOF"; i = fin.Next() {
		n++
		fields := strings.Fields(i)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, lephar.NewError(lephar.ErrParse, "ClusterByMCS", name, "ParseClusters", fmt.Errorf("line %d has %d fields, expected 4", n, len(fields)))
		}
		C, ok := byID[fields[3]]
		if !ok {
			C = &Cluster{ID: fields[3]}
			byID[C.ID] = C
			ret = append(ret, C)
		}
		C.Members = append(C.Members, Member{SMILES: fields[0], Name: fmt.Sprintf("%s_%d", fields[1], len(C.Members)+1)})
	}
	return ret, nil
}

// Job clusters a set of molecules.
type Job struct {
	Python    string
	Script    string
	Cutoff    float64
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

// SetDefaults sets the interpreter from GOLEPHAR_PYTHON ("python" if unset), the script
// from the LePhar installation, the default cutoff and the default converter.
func (J *Job) SetDefaults() {
	J.Python = os.Getenv(PythonVar)
	if J.Python == "" {
		J.Python = "python"
	}
	J.Script = filepath.Join(lephar.Home(), "bin", "ClusterByMCS")
	J.Cutoff = DefaultCutoff
	J.Converter = convert.New()
}

// Set is the set of molecules in one cluster.
type Set struct {
	ID string
	*lephar.SetOfSmallMolecules
}

// Run clusters the ligands and returns one set per cluster. The molecules
// in the sets are new mol2 files built from the SMILES given by the script.
func (J *Job) Run(ligands []*lephar.SmallMolecule) ([]Set, error) {
	if len(ligands) == 0 {
		return nil, lephar.NewError(lephar.ErrValidation, "ClusterByMCS", "", "cluster.Job.Run", fmt.Errorf("no ligands to cluster"))
	}
	if J.Cutoff <= 0 || J.Cutoff > 1 {
		return nil, lephar.NewError(lephar.ErrValidation, "ClusterByMCS", "", "cluster.Job.Run", fmt.Errorf("the cutoff must be in (0,1], got %v", J.Cutoff))
	}
	extra := filepath.Join(J.WorkDir, "extra")
	if err := os.MkdirAll(extra, 0755); err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, "ClusterByMCS", extra, "cluster.Job.Run", err)
	}
	files := make([]string, len(ligands))
	for i, v := range ligands {
		var err error
		if files[i], err = J.Converter.ToFormat(v.File, extra, "mol2"); err != nil {
			return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
		}
	}
	combined, err := filepath.Abs(filepath.Join(J.WorkDir, "ligands.mol2"))
	if err != nil {
		return nil, lephar.NewError(lephar.ErrCantInput, "ClusterByMCS", J.WorkDir, "cluster.Job.Run", err)
	}
	if err := convert.Combine(files, combined); err != nil {
		return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
	}
	if err := convert.CleanAttrSection(combined, ""); err != nil {
		return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
	}
	args := []string{J.Script, "mol2", combined, strconv.FormatFloat(J.Cutoff, 'f', -1, 64)}
	if err := J.Runner.Run(J.Python, args, J.WorkDir); err != nil {
		return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
	}
	clusters, err := ParseClusters(filepath.Join(J.WorkDir, clustersFile))
	if err != nil {
		return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
	}
	ret := make([]Set, 0, len(clusters))
	for _, C := range clusters {
		dir := filepath.Join(extra, "cluster_"+C.ID)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "ClusterByMCS", dir, "cluster.Job.Run", err)
		}
		S := Set{ID: C.ID, SetOfSmallMolecules: lephar.NewSet(len(C.Members))}
		for _, m := range C.Members {
			out := filepath.Join(dir, m.Name+".mol2")
			if err := J.Converter.FromSMILES(m.SMILES, out, "mol2"); err != nil {
				return nil, lephar.ErrDecorate(err, "cluster.Job.Run")
			}
			S.Append(lephar.NewSmallMolecule(out))
		}
		ret = append(ret, S)
	}
	lephar.LogV(1, len(ligands), "molecules in", len(ret), "clusters")
	return ret, nil
}
