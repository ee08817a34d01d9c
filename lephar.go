/*
 * lephar.go, part of golephar.
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
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Version is the LePhar version these wrappers were written for.
const Version = "1.0"

// HomeVar is the environment variable that points to the LePhar installation.
const HomeVar = "LEPHAR_HOME"

// The LePhar programs.
const (
	LeDock  = "ledock"
	LePro   = "lepro"
	QueryDB = "QueryDB/QueryDB"
)

// Home returns the LePhar installation directory. If LEPHAR_HOME is not
// set, it returns "lephar-<Version>" in the current directory.
func Home() string {
	h := os.Getenv(HomeVar)
	if h == "" {
		h = "lephar-" + Version
	}
	return h
}

// ProgramBin returns the file name of the distributed binary for program.
// QueryDB is distributed without the platform suffix.
func ProgramBin(program string) string {
	if program == QueryDB {
		return program
	}
	return program + "_linux_x86"
}

// ProgramPath returns the full path to program in the LePhar installation.
func ProgramPath(program string) string {
	return filepath.Join(Home(), "bin", ProgramBin(program))
}

// Runner runs external programs. The zero value runs the program directly,
// with the current environment and discarding its output.
type Runner struct {
	Output io.Writer //receives both stdout and stderr. nil means discard.
}

// Run runs command with args in the directory cwd, and waits for it to finish.
// Only failures to start the program are returned as errors. A non-zero exit
// status is logged and otherwise ignored: the programs are judged by the files
// they leave behind.
func (R Runner) Run(command string, args []string, cwd string) error {
	cmd := exec.Command(command, args...)
	cmd.Dir = cwd
	out := R.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout = out
	cmd.Stderr = out
	LogV(3, "Running", command, strings.Join(args, " "), "in", cwd)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ee, ok := err.(*exec.ExitError); ok {
		LogV(2, filepath.Base(command), "exited with status", ee.ExitCode())
		return nil
	}
	return NewError(ErrNotRunning, filepath.Base(command), cwd, "Runner.Run", errors.WithStack(err))
}
