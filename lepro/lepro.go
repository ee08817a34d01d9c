/*
 * lepro.go, part of golephar.
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

// Package lepro prepares receptors for docking with LePro, from the LePhar suite.
package lepro

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lephar "github.com/scipion-chem/golephar"
)

// Options select what is kept from the original structure before
// LePro sees it.
type Options struct {
	KeepHETATM bool     //non-water HETATM records
	KeepWaters bool
	Chains     []string //chains to keep. All of them if empty.
}

var waterNames = []string{"HOH", "WAT", "H2O", "TIP", "TIP3", "SOL"}

func isWater(resname string) bool {
	for _, v := range waterNames {
		if resname == v {
			return true
		}
	}
	return false
}

func isInString(container []string, test string) bool {
	for _, v := range container {
		if v == test {
			return true
		}
	}
	return false
}

// column returns the characters of line from ini to end (1-based, inclusive),
// trimmed, or an empty string if line is too short.
func column(line string, ini, end int) string {
	if len(line) < ini {
		return ""
	}
	end = min(end, len(line))
	return strings.TrimSpace(line[ini-1 : end])
}

// keep decides whether a PDB line goes to the cleaned file.
func (O Options) keep(line string) bool {
	record := column(line, 1, 6)
	switch record {
	case "ATOM", "HETATM", "TER":
		if len(O.Chains) > 0 && !isInString(O.Chains, column(line, 22, 22)) {
			return false
		}
		if record != "HETATM" {
			return true
		}
		if isWater(column(line, 18, 20)) {
			return O.KeepWaters
		}
		return O.KeepHETATM
	case "MODEL", "ENDMDL", "END":
		return true
	}
	return false
}

// CleanPDB writes to out the records of the PDB file in selected by o.
// Only coordinate records (plus TER, MODEL, ENDMDL and END) are kept.
func CleanPDB(in, out string, o Options) error {
	fin, err := lephar.OpenFile(in)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, lephar.LePro, in, "CleanPDB", err)
	}
	defer fin.Close()
	fout, err := os.Create(out)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, lephar.LePro, out, "CleanPDB", err)
	}
	r := bufio.NewReader(fin)
	w := bufio.NewWriter(fout)
	atoms := 0
	for {
		line, err := r.ReadString('\n')
		if line != "" && o.keep(line) {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
				atoms++
			}
			w.WriteString(line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			fout.Close()
			return lephar.NewError(lephar.ErrCantInput, lephar.LePro, in, "CleanPDB", err)
		}
	}
	if err := w.Flush(); err != nil {
		fout.Close()
		return lephar.NewError(lephar.ErrCantInput, lephar.LePro, out, "CleanPDB", err)
	}
	if err := fout.Close(); err != nil {
		return lephar.NewError(lephar.ErrCantInput, lephar.LePro, out, "CleanPDB", err)
	}
	if atoms == 0 {
		return lephar.NewError(lephar.ErrValidation, lephar.LePro, in, "CleanPDB", fmt.Errorf("no atoms left after cleaning"))
	}
	return nil
}

// Preparer runs LePro on receptors.
type Preparer struct {
	command string
	Options Options
	Runner  lephar.Runner
}

// NewPreparer returns a Preparer with the default settings.
func NewPreparer() *Preparer {
	P := new(Preparer)
	P.SetDefaults()
	return P
}

// SetDefaults sets the LePro binary from the LePhar installation, and removes
// waters and HETATM records from the receptor, keeping all chains.
func (P *Preparer) SetDefaults() {
	P.command = lephar.ProgramPath(lephar.LePro)
	P.Options = Options{}
}

// SetCommand sets the LePro executable.
func (P *Preparer) SetCommand(name string) { P.command = name }

// Command returns the LePro executable.
func (P *Preparer) Command() string { return P.command }

// Prepare cleans the receptor PDB file and runs LePro on it, in workDir. It returns
// the absolute path to the prepared receptor, workDir/<name>_prep.pdb, which has
// complete PDB columns. LePro always writes pro.pdb, so two preparations can't
// share a working directory.
func (P *Preparer) Prepare(receptor, workDir string) (string, error) {
	name := lephar.BaseName(receptor)
	clean, err := filepath.Abs(filepath.Join(workDir, name+"_clean.pdb"))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.LePro, receptor, "Prepare", err)
	}
	if err := CleanPDB(receptor, clean, P.Options); err != nil {
		return "", lephar.ErrDecorate(err, "Prepare")
	}
	if err := P.Runner.Run(P.command, []string{clean}, workDir); err != nil {
		return "", lephar.ErrDecorate(err, "Prepare")
	}
	pro := filepath.Join(workDir, "pro.pdb")
	if _, err := os.Stat(pro); err != nil {
		return "", lephar.NewError(lephar.ErrNoOutput, lephar.LePro, pro, "Prepare", err)
	}
	out, err := filepath.Abs(filepath.Join(workDir, name+"_prep.pdb"))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.LePro, pro, "Prepare", err)
	}
	if err := os.Rename(pro, out); err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, lephar.LePro, pro, "Prepare", err)
	}
	if err := lephar.AddPDBColumns(out); err != nil {
		return "", lephar.ErrDecorate(err, "Prepare")
	}
	lephar.LogV(2, "Receptor prepared:", out)
	return out, nil
}
