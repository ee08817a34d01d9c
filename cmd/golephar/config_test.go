/*
 * config_test.go, part of golephar.
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
	"strings"
	"testing"

	"github.com/pkg/errors"

	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/filter"
)

func TestReadConfig(Te *testing.T) {
	defer os.Unsetenv(lephar.HomeVar)
	C, err := ReadConfig("testdata/job.toml")
	if err != nil {
		Te.Fatal(err)
	}
	if C.Verbosity != 2 || lephar.Home() != "/opt/lephar" {
		Te.Errorf("Wrong common settings %+v", C)
	}
	if len(C.Prepare.Chains) != 2 || !C.Prepare.KeepWaters || C.Prepare.KeepHETATM {
		Te.Errorf("Wrong prepare section %+v", C.Prepare)
	}
	J, err := C.DockJob()
	if err != nil {
		Te.Fatal(err)
	}
	if J.WorkDir != "run1" || !J.Prepared || !J.WholeProtein || J.Radius != 15.5 || J.Batches != 3 {
		Te.Errorf("Wrong dock job %+v", J)
	}
	if J.Handle.Poses() != 20 || J.Handle.RMSD() != 1.0 || J.Handle.Command() != "/usr/local/bin/ledock" {
		Te.Errorf("Wrong LeDock settings: %d %v %s", J.Handle.Poses(), J.Handle.RMSD(), J.Handle.Command())
	}
	if J.Preparer.Command() != filepath.Join("/opt/lephar", "bin", "lepro_linux_x86") {
		Te.Errorf("LePro not taken from the LePhar home: %s", J.Preparer.Command())
	}
	names := []string{"a", "b", "c"}
	if len(J.Ligands) != 3 {
		Te.Fatalf("Expected 3 ligands, got %d", len(J.Ligands))
	}
	for i, v := range J.Ligands {
		if v.UniqueName() != names[i] {
			Te.Errorf("Ligand %d is %s, expected %s", i, v.UniqueName(), names[i])
		}
	}
	F, ligs, filters, err := C.FilterJob()
	if err != nil {
		Te.Fatal(err)
	}
	if F.WorkDir != "filter" || len(ligs) != 1 || len(filters) != 2 || filters[1].Kind != filter.FunctionalGroup {
		Te.Errorf("Wrong filter job %+v %v", F, filters)
	}
	K, ligs, err := C.ClusterJob()
	if err != nil {
		Te.Fatal(err)
	}
	if K.Cutoff != 0.8 || len(ligs) != 3 {
		Te.Errorf("Wrong cluster job %+v", K)
	}
}

func TestLigandsNoMatch(Te *testing.T) {
	if _, err := Ligands([]string{"testdata/ligs/*.sdf"}); err == nil {
		Te.Errorf("A pattern matching nothing should be an error")
	}
}

func TestDescribe(Te *testing.T) {
	err := lephar.NewError(lephar.ErrNotRunning, "ledock", "/work", "Runner.Run", errors.WithStack(fmt.Errorf("no such file")))
	if d := describe(err, 1); d != err.Error() {
		Te.Errorf("Low verbosity should give only the message, got %q", d)
	}
	d := describe(err, 3)
	if !strings.HasPrefix(d, err.Error()+"\n") || !strings.Contains(d, "TestDescribe") {
		Te.Errorf("High verbosity should add the stack trace, got %q", d)
	}
	if d := describe(fmt.Errorf("plain"), 3); d != "plain" {
		Te.Errorf("Error without a cause changed to %q", d)
	}
}
