/*
 * pdbcols.go, part of golephar.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Occupancy and temperature factor columns added by AddPDBColumns.
const pdbExtraColumns = "  1.00  0.00"

// symbolEnd is the width of the field, after the temperature factor, that
// ends with the element symbol.
const symbolEnd = 12

// RemoveTrailingNumbers returns s without its trailing digits, which
// turns an atom name like "C12" into its element symbol.
func RemoveTrailingNumbers(s string) string {
	return strings.TrimRight(s, "0123456789")
}

// CorrectAtomLine returns line with the occupancy, temperature factor and
// element symbol columns appended, if line is an ATOM record. Other lines are
// returned unchanged. The element symbol is taken from the atom name
// (the third field), and always ends in the same column. Lines that already
// carry the extra columns are returned unchanged, so correcting a file twice
// is harmless.
func CorrectAtomLine(line string) (string, error) {
	if !strings.HasPrefix(line, "ATOM") {
		return line, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", fmt.Errorf("ATOM record with %d fields: %q", len(fields), line)
	}
	sym := RemoveTrailingNumbers(fields[2])
	pad := symbolEnd - len(sym)
	if pad < 0 {
		pad = 0
	}
	tail := pdbExtraColumns + strings.Repeat(" ", pad) + sym
	fixed := strings.TrimSpace(line)
	if strings.HasSuffix(fixed, tail) {
		return line, nil //already corrected
	}
	return fixed + tail + "\n", nil
}

// AddPDBColumns rewrites, in place, the PDB-like file name, so its ATOM records
// contain the occupancy, temperature factor and element symbol columns that
// LePhar programs leave out and most PDB readers require.
func AddPDBColumns(name string) error {
	fin, err := os.Open(name)
	if err != nil {
		return NewError(ErrParse, "", name, "AddPDBColumns", err)
	}
	defer fin.Close()
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+"*")
	if err != nil {
		return NewError(ErrCantInput, "", name, "AddPDBColumns", err)
	}
	defer os.Remove(tmp.Name()) //harmless after the rename
	tmp.Chmod(0644)
	out := bufio.NewWriter(tmp)
	in := bufio.NewReader(fin)
	for {
		line, err := in.ReadString('\n')
		if line != "" {
			fixed, err2 := CorrectAtomLine(line)
			if err2 != nil {
				tmp.Close()
				return NewError(ErrParse, "", name, "AddPDBColumns", err2)
			}
			out.WriteString(fixed)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			tmp.Close()
			return NewError(ErrParse, "", name, "AddPDBColumns", err)
		}
	}
	if err := out.Flush(); err != nil {
		tmp.Close()
		return NewError(ErrCantInput, "", name, "AddPDBColumns", err)
	}
	if err := tmp.Close(); err != nil {
		return NewError(ErrCantInput, "", name, "AddPDBColumns", err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return NewError(ErrCantInput, "", name, "AddPDBColumns", err)
	}
	return nil
}
