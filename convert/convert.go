/*
 * convert.go, part of golephar.
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

// Package convert converts small-molecule files between formats with Open Babel,
// and provides a few helpers to handle mol2 files.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	lephar "github.com/scipion-chem/golephar"
)

// CommandVar is the environment variable that, if set, gives the Open Babel
// executable to use.
const CommandVar = "GOLEPHAR_OBABEL"

// Converter runs Open Babel.
type Converter struct {
	Command string
	Runner  lephar.Runner
}

// New returns a Converter with the default settings.
func New() *Converter {
	C := new(Converter)
	C.SetDefaults()
	return C
}

// SetDefaults sets the command to the value of GOLEPHAR_OBABEL, or to "obabel"
// if the variable is not set.
func (C *Converter) SetDefaults() {
	C.Command = os.Getenv(CommandVar)
	if C.Command == "" {
		C.Command = "obabel"
	}
}

// ToFormat returns the absolute path of a version of the molecule file in
// in the given format. Compressed files are first decompressed into outDir.
// If the file is already in the requested format, no conversion takes place,
// otherwise the converted file is written to outDir, with the same base name.
func (C *Converter) ToFormat(in, outDir, format string) (string, error) {
	var err error
	if in, err = filepath.Abs(in); err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", in, "ToFormat", err)
	}
	if lephar.IsCompressed(in) {
		in, err = Decompress(in, outDir)
		if err != nil {
			return "", lephar.ErrDecorate(err, "ToFormat")
		}
	}
	inFormat := lephar.FileFormat(in)
	if inFormat == format {
		return in, nil
	}
	out, err := filepath.Abs(filepath.Join(outDir, lephar.BaseName(in)+"."+format))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", in, "ToFormat", err)
	}
	args := []string{"-i" + inFormat, in, "-o" + format, "-O", out}
	if err := C.Runner.Run(C.Command, args, outDir); err != nil {
		return "", lephar.ErrDecorate(err, "ToFormat")
	}
	if _, err := os.Stat(out); err != nil {
		return "", lephar.NewError(lephar.ErrNoOutput, "obabel", out, "ToFormat", err)
	}
	return out, nil
}

// FromSMILES writes the molecule given by the SMILES string smi to
// the file out, in the given format.
func (C *Converter) FromSMILES(smi, out, format string) error {
	out, err := filepath.Abs(out)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", out, "FromSMILES", err)
	}
	args := []string{"-:" + smi, "-o" + format, "-O", out}
	if err := C.Runner.Run(C.Command, args, filepath.Dir(out)); err != nil {
		return lephar.ErrDecorate(err, "FromSMILES")
	}
	if _, err := os.Stat(out); err != nil {
		return lephar.NewError(lephar.ErrNoOutput, "obabel", out, "FromSMILES", fmt.Errorf("no molecule written for %s", smi))
	}
	return nil
}

// Decompress writes the decompressed content of in to outDir, under the same name
// minus the compression suffix, and returns the absolute path of the new file.
func Decompress(in, outDir string) (string, error) {
	out, err := filepath.Abs(filepath.Join(outDir, filepath.Base(lephar.StripCompression(in))))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", in, "Decompress", err)
	}
	fin, err := lephar.OpenFile(in)
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", in, "Decompress", err)
	}
	defer fin.Close()
	fout, err := os.Create(out)
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", out, "Decompress", err)
	}
	if _, err := io.Copy(fout, fin); err != nil {
		fout.Close()
		return "", lephar.NewError(lephar.ErrCantInput, "", in, "Decompress", err)
	}
	return out, fout.Close()
}
