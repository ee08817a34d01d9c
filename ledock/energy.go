/*
 * energy.go, part of golephar.
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
	"strconv"
	"strings"

	"github.com/rmera/scu"
	lephar "github.com/scipion-chem/golephar"
)

// ParseEnergy returns the score of the pose in the LeDock pose file name.
// The score is the second-to-last field of the second line of the file.
func ParseEnergy(name string) (float64, error) {
	fin, err := scu.NewMustReadFile(name)
	if err != nil {
		return 0, lephar.NewError(lephar.ErrParse, "LeDock", name, "ParseEnergy", err)
	}
	defer fin.Close()
	fin.Next() //the first line has nothing we need
	line := fin.Next()
	if line == "EOF" {
		return 0, lephar.NewError(lephar.ErrParse, "LeDock", name, "ParseEnergy", fmt.Errorf("file too short"))
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, lephar.NewError(lephar.ErrParse, "LeDock", name, "ParseEnergy", fmt.Errorf("no score in line %q", line))
	}
	e, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	if err != nil {
		return 0, lephar.NewError(lephar.ErrParse, "LeDock", name, "ParseEnergy", err)
	}
	return e, nil
}
