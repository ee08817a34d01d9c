/*
 * log.go, part of golephar.
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
	"log"
	"os"
	"sync"
)

var (
	verbMu sync.Mutex
	verb   = 1
)

// SetVerbosity sets the level under which LogV and PrintV
// print their messages. 0 silences everything but errors.
func SetVerbosity(level int) {
	verbMu.Lock()
	verb = level
	verbMu.Unlock()
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	verbMu.Lock()
	defer verbMu.Unlock()
	return verb
}

// LogV prints d to the standard logger (stderr) if level is smaller or
// equal to the current verbosity.
func LogV(level int, d ...interface{}) {
	if level <= Verbosity() {
		log.Println(d...)
	}
}

// PrintV prints d to stdout if level is smaller or equal than the
// current verbosity. Use it for results, and LogV for diagnostics.
func PrintV(level int, d ...interface{}) {
	if level <= Verbosity() {
		fmt.Fprintln(os.Stdout, d...)
	}
}
