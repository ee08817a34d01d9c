/*
 * handle.go, part of golephar.
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
	"os"
	"path/filepath"

	lephar "github.com/scipion-chem/golephar"
)

// Name of the parameter file written by BuildInput.
const paramFile = "dock.in"

// Handle runs LeDock. Note that the default settings are NOT considered part
// of the API, so they can change.
type Handle struct {
	command string
	rmsd    float64
	poses   int
	Runner  lephar.Runner
}

// NewHandle returns a Handle with the default settings.
func NewHandle() *Handle {
	H := new(Handle)
	H.SetDefaults()
	return H
}

// SetDefaults sets the LeDock binary from the LePhar installation, a
// clustering RMSD of 1.0 A and 10 poses per ligand.
func (H *Handle) SetDefaults() {
	H.command = lephar.ProgramPath(lephar.LeDock)
	H.rmsd = 1.0
	H.poses = 10
}

// SetCommand sets the LeDock executable.
func (H *Handle) SetCommand(name string) { H.command = name }

// Command returns the LeDock executable.
func (H *Handle) Command() string { return H.command }

// SetRMSD sets the RMSD (A) under which two poses are considered the same.
func (H *Handle) SetRMSD(r float64) { H.rmsd = r }

// RMSD returns the clustering RMSD.
func (H *Handle) RMSD() float64 { return H.rmsd }

// SetPoses sets the number of poses per ligand.
func (H *Handle) SetPoses(n int) { H.poses = n }

// Poses returns the number of poses per ligand.
func (H *Handle) Poses() int { return H.poses }

// BuildInput writes the parameter file for a docking in the given pocket to dir,
// and returns its absolute path. receptor and listing are written as given, so
// they must make sense from dir.
func (H *Handle) BuildInput(dir, receptor string, P *lephar.Pocket, listing string) (string, error) {
	name, err := filepath.Abs(filepath.Join(dir, paramFile))
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "LeDock", dir, "BuildInput", err)
	}
	D := DockParams{Receptor: receptor, RMSD: H.rmsd, Box: P.Box(), Poses: H.poses, LigandList: listing}
	if err := D.WriteFile(name); err != nil {
		return "", lephar.ErrDecorate(err, "BuildInput")
	}
	return name, nil
}

// Run runs LeDock on the parameter file, in the directory cwd, and
// waits for it to finish.
func (H *Handle) Run(params, cwd string) error {
	return lephar.ErrDecorate(H.Runner.Run(H.command, []string{params}, cwd), "Handle.Run")
}

// Split runs LeDock's split mode on the .dok file, which writes one PDB
// file per pose, next to the .dok file.
func (H *Handle) Split(dok, cwd string) error {
	return lephar.ErrDecorate(H.Runner.Run(H.command, []string{"-spli", dok}, cwd), "Handle.Split")
}

// LinkLocal creates, in dir, a symbolic link to src with the same base name, unless
// a file with that name already exists there. It returns the base name.
func LinkLocal(src, dir string) (string, error) {
	base := filepath.Base(src)
	target := filepath.Join(dir, base)
	if _, err := os.Lstat(target); err == nil {
		return base, nil
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", src, "LinkLocal", err)
	}
	if err := os.Symlink(abs, target); err != nil {
		return "", lephar.NewError(lephar.ErrCantInput, "", target, "LinkLocal", err)
	}
	return base, nil
}
