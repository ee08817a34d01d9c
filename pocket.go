/*
 * pocket.go, part of golephar.
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
	"fmt"
	"path/filepath"

	chem "github.com/rmera/gochem"
	"gonum.org/v1/gonum/floats"
)

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min [3]float64
	Max [3]float64
}

// Pocket is the region of the receptor where ligands are docked: a sphere
// given by its center and radius. A whole-protein pocket covers the receptor.
type Pocket struct {
	ID     int
	Center [3]float64
	Radius float64
	Whole  bool
}

// NewPocket returns a pocket with the given ID, center and radius.
func NewPocket(id int, center [3]float64, radius float64) *Pocket {
	return &Pocket{ID: id, Center: center, Radius: radius}
}

// WholeProtein returns the single pocket used to dock on the complete receptor
// in the PDB file receptor: its center is the receptor's center of mass.
func WholeProtein(receptor string, radius float64) (*Pocket, error) {
	coords, masses, err := readPDBCoords(receptor)
	if err != nil {
		return nil, ErrDecorate(err, "WholeProtein")
	}
	return &Pocket{ID: 1, Center: MassCenter(coords, masses), Radius: radius, Whole: true}, nil
}

// PocketFromROI returns a pocket for the structural region of interest whose
// atoms are in the PDB file roi. The center is the mass center of the region,
// and the radius is half of the region's diameter, times coef.
func PocketFromROI(id int, roi string, coef float64) (*Pocket, error) {
	coords, masses, err := readPDBCoords(roi)
	if err != nil {
		return nil, ErrDecorate(err, "PocketFromROI")
	}
	return &Pocket{ID: id, Center: MassCenter(coords, masses), Radius: coef * Diameter(coords) / 2}, nil
}

// Box returns the cube that contains the pocket's sphere.
func (P *Pocket) Box() BoundingBox {
	var b BoundingBox
	for i, c := range P.Center {
		b.Min[i] = c - P.Radius
		b.Max[i] = c + P.Radius
	}
	return b
}

// Dir returns the working directory for the pocket under base.
func (P *Pocket) Dir(base string) string {
	return filepath.Join(base, fmt.Sprintf("pocket_%d", P.ID))
}

func (P *Pocket) String() string {
	return fmt.Sprintf("pocket %d: center (%.3f, %.3f, %.3f) radius %.3f", P.ID, P.Center[0], P.Center[1], P.Center[2], P.Radius)
}

// MassCenter returns the center of mass of coords. If masses is nil, or the
// masses add up to zero, all atoms weight the same.
func MassCenter(coords [][3]float64, masses []float64) [3]float64 {
	var ret [3]float64
	if len(coords) == 0 {
		return ret
	}
	if masses == nil || floats.Sum(masses) == 0 {
		masses = make([]float64, len(coords))
		for i := range masses {
			masses[i] = 1
		}
	}
	total := floats.Sum(masses)
	for i, c := range coords {
		for j := range ret {
			ret[j] += c[j] * masses[i]
		}
	}
	for j := range ret {
		ret[j] /= total
	}
	return ret
}

// Diameter returns the largest distance between two points in coords.
func Diameter(coords [][3]float64) float64 {
	var d float64
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			if dist := floats.Distance(coords[i][:], coords[j][:], 2); dist > d {
				d = dist
			}
		}
	}
	return d
}

func readPDBCoords(name string) ([][3]float64, []float64, error) {
	mol, err := chem.PDBFileRead(name)
	if err != nil {
		return nil, nil, NewError(ErrParse, "", name, "readPDBCoords", err)
	}
	if mol.Len() == 0 || len(mol.Coords) == 0 {
		return nil, nil, NewError(ErrParse, "", name, "readPDBCoords", fmt.Errorf("no atoms read"))
	}
	c := mol.Coords[0]
	coords := make([][3]float64, mol.Len())
	masses := make([]float64, mol.Len())
	for i := range coords {
		coords[i] = [3]float64{c.At(i, 0), c.At(i, 1), c.At(i, 2)}
		masses[i] = mol.Atom(i).Mass
	}
	return coords, masses, nil
}
