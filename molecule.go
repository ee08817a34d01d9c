/*
 * molecule.go, part of golephar.
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

package lephar

import (
	"path/filepath"
	"strings"
)

// SmallMolecule is a ligand, or one docked pose of a ligand. The pose
// fields are at their zero values for molecules that have not been docked.
type SmallMolecule struct {
	Name   string //logical name of the molecule. Conformers of a molecule share it.
	File   string //the file containing the molecule
	Format string //file format, i.e. the extension of File, without compression suffixes

	PoseFile string  //file with the docked pose
	Energy   float64 //docking score, as reported by the docking program
	PoseID   int     //index of the pose for the ligand in the pocket, 1-based
	GridID   int     //pocket in which the pose was obtained
	MolClass string  //program that produced the pose
	DockID   string  //identifier of the docking run that produced the pose
}

// NewSmallMolecule returns a SmallMolecule for file, with its name and
// format derived from the file name.
func NewSmallMolecule(file string) *SmallMolecule {
	M := &SmallMolecule{File: file}
	M.Format = FileFormat(file)
	M.Name = M.UniqueName()
	return M
}

// FileFormat returns the lower-case extension of name, without the dot,
// ignoring compression suffixes.
func FileFormat(name string) string {
	ext := filepath.Ext(StripCompression(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// BaseName returns the name of file without directory, compression suffix
// and extension.
func BaseName(file string) string {
	base := filepath.Base(StripCompression(file))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// UniqueName returns the name that identifies this particular molecule
// file. Docking outputs are named after it, so it is the key used
// to match them with their input molecule.
func (M *SmallMolecule) UniqueName() string {
	return BaseName(M.File)
}

// Docked returns true if the molecule has a docked pose.
func (M *SmallMolecule) Docked() bool {
	return M.PoseFile != ""
}

// Copy returns a copy of the molecule. All the fields are values, so the
// copy shares nothing with the original: Name, File, Format, PoseFile, Energy,
// PoseID, GridID, MolClass and DockID.
func (M *SmallMolecule) Copy() *SmallMolecule {
	r := *M
	return &r
}
