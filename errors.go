/*
 * errors.go, part of golephar.
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
	"strings"
)

// Error codes. They say what went wrong, the Program and File fields
// of Error say where.
const (
	ErrNotRunning = "Unable to run the program"
	ErrCantInput  = "Can't build the input file"
	ErrNoOutput   = "The program produced no output"
	ErrParse      = "Can't parse the output"
	ErrValidation = "Invalid parameters"
)

// Error is the error type returned by all the packages in this library.
// The Decorate method allows to add information about the call stack
// while the error is passed up, without wrapping it.
type Error struct {
	Code     string //one of the Err* constants
	Program  string //the external program involved, if any
	File     string //the file that has problems, if any
	Message  string
	deco     []string
	err      error
}

// NewError returns an Error with the given code, program and file, created
// in the function where. err can be nil.
func NewError(code, program, file, where string, err error) Error {
	e := Error{Code: code, Program: program, File: file, deco: []string{where}, err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func (err Error) Error() string {
	s := err.Code
	if err.Program != "" {
		s = err.Program + ": " + s
	}
	if err.File != "" {
		s += " (" + err.File + ")"
	}
	if err.Message != "" {
		s += ": " + err.Message
	}
	if len(err.deco) > 0 {
		s += fmt.Sprintf(" [%s]", strings.Join(err.deco, " < "))
	}
	return s
}

// Decorate adds dec to the list of functions the error went through,
// and returns that list. An empty dec only returns the list.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the underlying error, if any.
func (err Error) Unwrap() error { return err.err }

// Is reports whether target is an Error with the same code.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return t.Code == err.Code
}

// ErrDecorate decorates err with caller if err is an Error, and returns it.
// Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
