/*
 * mol2.go, part of golephar.
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

package convert

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lephar "github.com/scipion-chem/golephar"
)

const (
	molRecord  = "@<TRIPOS>MOLECULE"
	attrRecord = "@<TRIPOS>UNITY_ATOM_ATTR"
)

// Combine concatenates the files in one file, out. Each file
// is followed by a newline. Compressed files are decompressed.
func Combine(files []string, out string) error {
	fout, err := os.Create(out)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", out, "Combine", err)
	}
	w := bufio.NewWriter(fout)
	for _, v := range files {
		fin, err := lephar.OpenFile(v)
		if err != nil {
			fout.Close()
			return lephar.NewError(lephar.ErrCantInput, "", v, "Combine", err)
		}
		_, err = io.Copy(w, fin)
		fin.Close()
		if err != nil {
			fout.Close()
			return lephar.NewError(lephar.ErrCantInput, "", v, "Combine", err)
		}
		w.WriteString("\n")
	}
	if err := w.Flush(); err != nil {
		fout.Close()
		return lephar.NewError(lephar.ErrCantInput, "", out, "Combine", err)
	}
	return fout.Close()
}

// CleanAttrSection copies the mol2 file in to out, leaving out all the
// @<TRIPOS>UNITY_ATOM_ATTR sections, which many parsers can't handle.
// If out is empty, in is replaced.
func CleanAttrSection(in, out string) error {
	replace := out == ""
	if replace {
		out = strings.TrimSuffix(in, ".mol2") + "_aux.mol2"
	}
	fin, err := os.Open(in)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", in, "CleanAttrSection", err)
	}
	defer fin.Close()
	fout, err := os.Create(out)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", out, "CleanAttrSection", err)
	}
	r := bufio.NewReader(fin)
	w := bufio.NewWriter(fout)
	inSection := false
	for {
		line, err := r.ReadString('\n')
		if strings.HasPrefix(line, attrRecord) {
			inSection = true
		} else if strings.HasPrefix(line, "@<") {
			inSection = false
		}
		if !inSection {
			w.WriteString(line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			fout.Close()
			return lephar.NewError(lephar.ErrCantInput, "", in, "CleanAttrSection", err)
		}
	}
	if err := w.Flush(); err != nil {
		fout.Close()
		return lephar.NewError(lephar.ErrCantInput, "", out, "CleanAttrSection", err)
	}
	if err := fout.Close(); err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", out, "CleanAttrSection", err)
	}
	if replace {
		if err := os.Rename(out, in); err != nil {
			return lephar.NewError(lephar.ErrCantInput, "", in, "CleanAttrSection", err)
		}
	}
	return nil
}

// SplitMol2 writes each molecule in the multi-molecule mol2 file to its own file
// in outDir, named after the molecule's title. Repeated titles get a _2, _3,...
// suffix. It returns the names of the files written, in the order they appear.
func SplitMol2(file, outDir string) ([]string, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, lephar.NewError(lephar.ErrParse, "", file, "SplitMol2", err)
	}
	defer fin.Close()
	var mols [][]string
	r := bufio.NewReader(fin)
	for {
		line, err := r.ReadString('\n')
		if strings.HasPrefix(line, molRecord) {
			mols = append(mols, make([]string, 0, 50))
		}
		if len(mols) > 0 && line != "" {
			mols[len(mols)-1] = append(mols[len(mols)-1], line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, lephar.NewError(lephar.ErrParse, "", file, "SplitMol2", err)
		}
	}
	seen := make(map[string]int)
	ret := make([]string, 0, len(mols))
	for i, lines := range mols {
		title := ""
		if len(lines) > 1 {
			title = strings.TrimSpace(lines[1])
		}
		if title == "" {
			title = fmt.Sprintf("molecule_%d", i+1)
		}
		title = strings.ReplaceAll(title, string(filepath.Separator), "_")
		seen[title]++
		if seen[title] > 1 {
			title = fmt.Sprintf("%s_%d", title, seen[title])
		}
		name := filepath.Join(outDir, title+".mol2")
		if err := os.WriteFile(name, []byte(strings.Join(lines, "")), 0644); err != nil {
			return nil, lephar.NewError(lephar.ErrCantInput, "", name, "SplitMol2", err)
		}
		ret = append(ret, name)
	}
	return ret, nil
}

// Retitle copies the mol2 file in to out, replacing the title of every
// molecule with title. Compressed inputs are decompressed.
func Retitle(in, out, title string) error {
	fin, err := lephar.OpenFile(in)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", in, "Retitle", err)
	}
	defer fin.Close()
	fout, err := os.Create(out)
	if err != nil {
		return lephar.NewError(lephar.ErrCantInput, "", out, "Retitle", err)
	}
	r := bufio.NewReader(fin)
	w := bufio.NewWriter(fout)
	titleNext := false
	for {
		line, err := r.ReadString('\n')
		if titleNext && line != "" {
			line = title + "\n"
			titleNext = false
		} else if strings.HasPrefix(line, molRecord) {
			titleNext = true
		}
		w.WriteString(line)
		if err == io.EOF {
			break
		} else if err != nil {
			fout.Close()
			return lephar.NewError(lephar.ErrCantInput, "", in, "Retitle", err)
		}
	}
	if err := w.Flush(); err != nil {
		fout.Close()
		return lephar.NewError(lephar.ErrCantInput, "", out, "Retitle", err)
	}
	return fout.Close()
}
