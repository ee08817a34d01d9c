/*
 * batch.go, part of golephar.
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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/scu"
	lephar "github.com/scipion-chem/golephar"
)

// Name of the listing with all the ligands, in the job's directory.
const allLigandsList = "ligands.list"

// Batch is a subset of the ligand library that is docked in one LeDock run.
type Batch struct {
	Index    int
	Files    []string //absolute paths to the ligand files
	ListFile string   //the listing with Files
}

// Listing is the result of splitting a ligand library in batches.
type Listing struct {
	All     string //the listing with all the ligands, in the original order
	Batches []*Batch
}

// Batches splits paths in n batches, keeping the order. Batch sizes differ
// at most by one: the first len(paths)%n batches get one element more than the
// rest. When there are fewer paths than batches, the trailing ones are empty.
// n is set to 1 if smaller than that.
func Batches(paths []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	size, extra := len(paths)/n, len(paths)%n
	ret := make([][]string, n)
	ini := 0
	for i := range ret {
		end := ini + size
		if i < extra {
			end++
		}
		ret[i] = paths[ini:end:end]
		ini = end
	}
	return ret
}

// BatchListName returns the name of the listing for batch i.
func BatchListName(i int) string {
	return fmt.Sprintf("ligands_%d.list", i)
}

// WriteLists splits paths in n batches and writes, in dir, a listing with all
// the paths plus one listing per non-empty batch. Empty batches get no listing
// and are not included in the returned Listing.
func WriteLists(dir string, paths []string, n int) (*Listing, error) {
	L := &Listing{All: filepath.Join(dir, allLigandsList)}
	if err := WriteList(L.All, paths); err != nil {
		return nil, lephar.ErrDecorate(err, "WriteLists")
	}
	for i, b := range Batches(paths, n) {
		if len(b) == 0 {
			continue
		}
		batch := &Batch{Index: i, Files: b, ListFile: filepath.Join(dir, BatchListName(i))}
		if err := WriteList(batch.ListFile, b); err != nil {
			return nil, lephar.ErrDecorate(err, "WriteLists")
		}
		L.Batches = append(L.Batches, batch)
	}
	return L, nil
}

// WriteList writes paths to name, one per line.
func WriteList(name string, paths []string) error {
	f, err := os.Create(name)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", name, "WriteList", err)
	}
	w := bufio.NewWriter(f)
	for _, v := range paths {
		w.WriteString(v + "\n")
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return lephar.NewError(lephar.ErrCantInput, "", name, "WriteList", err)
	}
	return f.Close()
}

// ReadList returns the non-empty lines in the listing name.
func ReadList(name string) ([]string, error) {
	fin, err := scu.NewMustReadFile(name)
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "", name, "ReadList", err)
	}
	defer fin.Close()
	ret := make([]string, 0, 10)
	for i := fin.Next(); i != "EOF"; i = fin.Next() {
		if l := strings.TrimSpace(i); l != "" {
			ret = append(ret, l)
		}
	}
	return ret, nil
}
