/*
 * handle_test.go, part of golephar.
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
	"testing"
)

func TestLinkLocal(Te *testing.T) {
	dir := Te.TempDir()
	src, err := filepath.Abs("testdata/receptor.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		//linking again, as a re-entered step does, is not an error.
		base, err := LinkLocal(src, dir)
		if err != nil {
			Te.Fatalf("Link %d: %v", i, err)
		}
		if base != "receptor.pdb" {
			Te.Errorf("Link %d: got name %s", i, base)
		}
	}
	target, err := os.Readlink(filepath.Join(dir, "receptor.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	if target != src {
		Te.Errorf("Link points to %s, want %s", target, src)
	}
	if _, err := os.Stat(filepath.Join(dir, "receptor.pdb")); err != nil {
		Te.Errorf("Link can't be followed: %v", err)
	}
}
