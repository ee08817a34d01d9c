/*
 * filter.go, part of golephar.
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

// Package filter selects small molecules by their descriptors and functional
// groups with QueryDB, from the LePhar suite.
package filter

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	lephar "github.com/scipion-chem/golephar"
)

// Kind says whether a filter is on a molecular descriptor or on the
// number of matches of a functional group.
type Kind int

const (
	Descriptor Kind = iota
	FunctionalGroup
)

func (k Kind) String() string {
	if k == FunctionalGroup {
		return "Functional group"
	}
	return "Descriptor"
}

// DescChoices contains the descriptors QueryDB can filter on.
var DescChoices = []string{"HeavyAtomCount", "MolLogP", "NumHAcceptors", "NumHDonors", "NumHeteroatoms", "NumRotatableBonds",
	"NumChiralCenters", "RingCount", "NOCount", "TPSA", "FractionCSP3", "NumAromaticRings",
	"NumSaturatedRings", "NumAliphaticRings", "NumAromaticHeterocycles", "NumSaturatedHeterocycles",
	"NumAliphaticHeterocycles", "NumAromaticCarbocycles", "NumSaturatedCarbocycles",
	"NumAliphaticCarbocycles"}

// IsDescriptor returns true if name is one of DescChoices.
func IsDescriptor(name string) bool {
	for _, v := range DescChoices {
		if v == name {
			return true
		}
	}
	return false
}

// Filter keeps the molecules for which the descriptor, or number of matches
// of the functional group (given as SMILES) is between Min and Max.
type Filter struct {
	Kind Kind
	Name string
	Min  float64
	Max  float64
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns the filter as a QueryDB specification line, without
// the newline.
func (F Filter) String() string {
	return F.Name + "\t" + ftoa(F.Min) + "\t" + ftoa(F.Max)
}

// Line returns the filter as the i-th line of a filter list, in the
// format read by ParseFilterList.
func (F Filter) Line(i int) string {
	return fmt.Sprintf("%d) %s: %s", i, F.Kind, F)
}

// ParseFilterList reads a list of filters, one per line, like:
//
//	1) Descriptor: MolLogP	-1	5
//	2) Functional group: C(=O)O	0	1
//
// Blank lines are ignored.
func ParseFilterList(text string) ([]Filter, error) {
	ret := make([]Filter, 0, 5)
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		perr := func(format string, a ...interface{}) error {
			return lephar.NewError(lephar.ErrValidation, "", "", "ParseFilterList", fmt.Errorf("line %d: "+format, append([]interface{}{i + 1}, a...)...))
		}
		if len(fields) < 5 {
			return nil, perr("not enough fields in %q", line)
		}
		var F Filter
		switch fields[1] {
		case "Descriptor:":
			F.Kind = Descriptor
		case "Functional":
			F.Kind = FunctionalGroup
		default:
			return nil, perr("unknown filter type %q", fields[1])
		}
		n := len(fields)
		F.Name = fields[n-3]
		var err error
		if F.Min, err = strconv.ParseFloat(fields[n-2], 64); err != nil {
			return nil, perr("%v", err)
		}
		if F.Max, err = strconv.ParseFloat(fields[n-1], 64); err != nil {
			return nil, perr("%v", err)
		}
		if F.Kind == Descriptor && !IsDescriptor(F.Name) {
			return nil, perr("unknown descriptor %s", F.Name)
		}
		if F.Min > F.Max {
			return nil, perr("minimum %v larger than maximum %v", F.Min, F.Max)
		}
		ret = append(ret, F)
	}
	return ret, nil
}

// Header is the first line of the QueryDB specification files written by WriteSpec.
const Header = "! Custom le_filter file made with the Scipion-chem framework"

// WriteSpec writes a QueryDB specification file with the filters, descriptors first.
func WriteSpec(name string, filters []Filter) error {
	sorted := make([]Filter, len(filters))
	copy(sorted, filters)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Kind < sorted[j].Kind })
	var b strings.Builder
	b.WriteString(Header + "\n")
	for _, F := range sorted {
		b.WriteString(F.String() + "\n")
	}
	if err := os.WriteFile(name, []byte(b.String()), 0644); err != nil {
		return lephar.NewError(lephar.ErrCantInput, lephar.QueryDB, name, "WriteSpec", err)
	}
	return nil
}
