/*
 * set.go, part of golephar.
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
	"encoding/json"
	"sort"
)

// SetOfSmallMolecules is a collection of molecules, normally the output
// of one protocol. Molecules are only ever appended.
type SetOfSmallMolecules struct {
	Molecules   []*SmallMolecule
	ProteinFile string //receptor used for docking, if the set is docked
	Docked      bool
	DockID      string
}

// NewSet returns an empty set with room for n molecules.
func NewSet(n int) *SetOfSmallMolecules {
	return &SetOfSmallMolecules{Molecules: make([]*SmallMolecule, 0, n)}
}

// Append adds mols to the set.
func (S *SetOfSmallMolecules) Append(mols ...*SmallMolecule) {
	S.Molecules = append(S.Molecules, mols...)
}

// Len returns the number of molecules in the set.
func (S *SetOfSmallMolecules) Len() int {
	return len(S.Molecules)
}

// Grids returns the sorted list of the pocket IDs present in the set.
func (S *SetOfSmallMolecules) Grids() []int {
	seen := make(map[int]bool)
	ret := make([]int, 0, 1)
	for _, v := range S.Molecules {
		if !seen[v.GridID] {
			seen[v.GridID] = true
			ret = append(ret, v.GridID)
		}
	}
	sort.Ints(ret)
	return ret
}

// ByName returns a map from the unique name of each molecule to the molecule.
// If two molecules share a unique name, the last one wins.
func (S *SetOfSmallMolecules) ByName() map[string]*SmallMolecule {
	ret := make(map[string]*SmallMolecule, len(S.Molecules))
	for _, v := range S.Molecules {
		ret[v.UniqueName()] = v
	}
	return ret
}

// Save writes the set as JSON to name. The file is compressed if
// name ends in .gz or .zst.
func (S *SetOfSmallMolecules) Save(name string) error {
	out, err := CreateFile(name)
	if err != nil {
		return NewError(ErrCantInput, "", name, "SetOfSmallMolecules.Save", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(S); err != nil {
		out.Close()
		return NewError(ErrCantInput, "", name, "SetOfSmallMolecules.Save", err)
	}
	return out.Close()
}

// LoadSet reads a set written by Save.
func LoadSet(name string) (*SetOfSmallMolecules, error) {
	in, err := OpenFile(name)
	if err != nil {
		return nil, NewError(ErrParse, "", name, "LoadSet", err)
	}
	defer in.Close()
	S := new(SetOfSmallMolecules)
	if err := json.NewDecoder(in).Decode(S); err != nil {
		return nil, NewError(ErrParse, "", name, "LoadSet", err)
	}
	return S, nil
}
