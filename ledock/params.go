/*
 * params.go, part of golephar.
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
	"fmt"
	"os"
	"strconv"

	lephar "github.com/scipion-chem/golephar"
)

// DockParams contains the settings written to a LeDock parameter file.
type DockParams struct {
	Receptor   string //receptor PDB file, as LeDock will see it from its working directory
	RMSD       float64
	Box        lephar.BoundingBox
	Poses      int
	LigandList string //file listing the ligands, one per line
}

const dockTemplate = `Receptor
%s

RMSD
%s

Binding pocket
%s %s
%s %s
%s %s

Number of binding poses
%d

Ligands list
%s

END`

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Render returns the content of the parameter file. No value is checked, LeDock
// is the judge of that.
func (D DockParams) Render() string {
	b := D.Box
	return fmt.Sprintf(dockTemplate, D.Receptor, ftoa(D.RMSD),
		ftoa(b.Min[0]), ftoa(b.Max[0]),
		ftoa(b.Min[1]), ftoa(b.Max[1]),
		ftoa(b.Min[2]), ftoa(b.Max[2]),
		D.Poses, D.LigandList)
}

// WriteFile writes the parameter file to name.
func (D DockParams) WriteFile(name string) error {
	if err := os.WriteFile(name, []byte(D.Render()), 0644); err != nil {
		return lephar.NewError(lephar.ErrCantInput, "LeDock", name, "DockParams.WriteFile", err)
	}
	return nil
}
