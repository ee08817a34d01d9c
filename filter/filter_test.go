/*
 * filter_test.go, part of golephar.
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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lephar "github.com/scipion-chem/golephar"
)

const list = `1) Functional group: C(=O)O	0	1
2) Descriptor: MolLogP	-1.5	5

3) Descriptor: NumHDonors	0	3`

func TestParseFilterList(Te *testing.T) {
	F, err := ParseFilterList(list)
	if err != nil {
		Te.Fatal(err)
	}
	if len(F) != 3 {
		Te.Fatalf("Expected 3 filters, got %d", len(F))
	}
	if F[0].Kind != FunctionalGroup || F[0].Name != "C(=O)O" || F[0].Max != 1 {
		Te.Errorf("Wrong functional group filter %+v", F[0])
	}
	if F[1].Kind != Descriptor || F[1].Name != "MolLogP" || F[1].Min != -1.5 {
		Te.Errorf("Wrong descriptor filter %+v", F[1])
	}
	if F[1].Line(2) != "2) Descriptor: MolLogP\t-1.5\t5" {
		Te.Errorf("Line does not give back the list format: %q", F[1].Line(2))
	}
	again, err := ParseFilterList(F[0].Line(1))
	if err != nil || again[0] != F[0] {
		Te.Errorf("Line can't be parsed back: %v %+v", err, again)
	}
	for _, bad := range []string{"1) Descriptor: Weight\t0\t500", "1) Descriptor: MolLogP\t5\t1", "1) Color: red\t0\t1", "1) Descriptor: MolLogP\tlow\t1", "1) Descriptor:"} {
		if _, err := ParseFilterList(bad); !errors.Is(err, lephar.Error{Code: lephar.ErrValidation}) {
			Te.Errorf("%q should not be accepted, got %v", bad, err)
		}
	}
}

func TestWriteSpec(Te *testing.T) {
	F, err := ParseFilterList(list)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "spec.txt")
	if err := WriteSpec(name, F); err != nil {
		Te.Fatal(err)
	}
	data, _ := os.ReadFile(name)
	expected := Header + "\nMolLogP\t-1.5\t5\nNumHDonors\t0\t3\nC(=O)O\t0\t1\n"
	if string(data) != expected {
		Te.Errorf("Wrong spec file:\n%s", data)
	}
}

// fakeQueryDB writes a script that keeps the molecules whose titles do not start with
// "bad", and a default specification file next to it.
func fakeQueryDB(Te *testing.T, dir string) string {
	script := `#!/bin/sh
cp "$2" spec.seen
awk '/^@<TRIPOS>MOLECULE/ { getline t; keep = (t !~ /^bad/); if (keep) { print; print t }; next } keep' "$4" > "$5"
`
	name := filepath.Join(dir, "QueryDB")
	if err := os.WriteFile(name, []byte(script), 0755); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, defaultSpec), []byte("MolLogP\t-5\t5\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	return name
}

func mol2(Te *testing.T, dir, name string) *lephar.SmallMolecule {
	file := filepath.Join(dir, name+".mol2")
	content := "@<TRIPOS>MOLECULE\nsome title\n 1 0 0 0 0\nSMALL\n\n@<TRIPOS>ATOM\n      1 C1 0.0 0.0 0.0 C.3 1 LIG 0.0\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	return lephar.NewSmallMolecule(file)
}

func TestJob(Te *testing.T) {
	dir := Te.TempDir()
	J := NewJob(filepath.Join(dir, "job"))
	J.SetCommand(fakeQueryDB(Te, dir))
	ligs := []*lephar.SmallMolecule{mol2(Te, dir, "good1"), mol2(Te, dir, "bad1"), mol2(Te, dir, "good2")}
	F, _ := ParseFilterList(list)
	S, err := J.Run(ligs, F)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 2 || S.Molecules[0].UniqueName() != "good1" || S.Molecules[1].UniqueName() != "good2" {
		Te.Errorf("Wrong molecules passed the filter: %+v", S.Molecules)
	}
	if S.Molecules[0] == ligs[0] {
		Te.Errorf("Output molecules should be copies")
	}
	seen, _ := os.ReadFile(filepath.Join(J.WorkDir, "spec.seen"))
	if !strings.HasPrefix(string(seen), Header) {
		Te.Errorf("QueryDB did not get the custom spec: %s", seen)
	}

	J = NewJob(filepath.Join(dir, "job2"))
	J.SetCommand(fakeQueryDB(Te, dir))
	S, err = J.Run(ligs, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 2 {
		Te.Errorf("Expected 2 molecules with the default filter, got %d", S.Len())
	}
	seen, _ = os.ReadFile(filepath.Join(J.WorkDir, "spec.seen"))
	if string(seen) != "MolLogP\t-5\t5\n" {
		Te.Errorf("QueryDB did not get the default spec: %s", seen)
	}
	if _, err := J.Run(nil, F); !errors.Is(err, lephar.Error{Code: lephar.ErrValidation}) {
		Te.Errorf("No ligands should be a validation error, got %v", err)
	}
}
