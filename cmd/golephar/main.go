/*
 * main.go, part of golephar.
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

// golephar runs the LePhar tools (LeDock, LePro, QueryDB and ClusterByMCS) on
// sets of small molecules, as described in a TOML job file.
//
// Usage:
//
//	golephar [-v level] prepare|dock|filter|cluster job.toml
//	golephar [-v level] report [-hist file] [-scatter file] [-bins n] [-best n] set.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"

	lephar "github.com/scipion-chem/golephar"
	"github.com/scipion-chem/golephar/dockplot"
)

func usage() {
	o := flag.CommandLine.Output()
	fmt.Fprintf(o, "Usage:\n  %s [flags] prepare|dock|filter|cluster job.toml\n  %s [flags] report [report flags] set.json\n\nFlags:\n", os.Args[0], os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(o, "\nPlease cite: Wang Z. et al., Phys. Chem. Chem. Phys., 2016, 18, 12964 (doi:10.1039/C6CP01555G)\n")
}

func main() {
	verbose := flag.Int("v", -1, "Level of verbosity. Overrides the one in the job file")
	flag.Usage = usage
	flag.Parse()
	log.SetPrefix("golephar: ")
	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	var err error
	switch args[0] {
	case "report":
		setVerbosity(*verbose, 1)
		err = report(args[1:])
	case "prepare", "dock", "filter", "cluster":
		C, err2 := ReadConfig(args[1])
		if err2 != nil {
			log.Fatal(describe(err2, lephar.Verbosity()))
		}
		setVerbosity(*verbose, C.Verbosity)
		switch args[0] {
		case "prepare":
			err = prepare(C)
		case "dock":
			err = dock(ctx, C)
		case "filter":
			err = filterLigands(C)
		case "cluster":
			err = clusterLigands(C)
		}
	default:
		log.Fatalf("unknown command %q", args[0])
	}
	if err != nil {
		log.Fatal(describe(err, lephar.Verbosity()))
	}
}

// describe returns the message for err. From verbosity 3 on, it adds
// the stack trace of the underlying error, if it carries one.
func describe(err error, level int) string {
	s := err.Error()
	if level < 3 {
		return s
	}
	if inner := errors.Unwrap(err); inner != nil {
		s += fmt.Sprintf("\n%+v", inner)
	}
	return s
}

func setVerbosity(flagged, configured int) {
	if flagged >= 0 {
		lephar.SetVerbosity(flagged)
	} else if configured > 0 {
		lephar.SetVerbosity(configured)
	}
}

func prepare(C *Config) error {
	if C.Prepare.Receptor == "" {
		return fmt.Errorf("no receptor in the prepare section")
	}
	dir := orDefault(C.Prepare.WorkDir, "lepro")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	out, err := C.Preparer().Prepare(C.Prepare.Receptor, dir)
	if err != nil {
		return err
	}
	lephar.PrintV(0, out)
	return nil
}

func dock(ctx context.Context, C *Config) error {
	J, err := C.DockJob()
	if err != nil {
		return err
	}
	S, err := J.Run(ctx)
	if err != nil {
		return err
	}
	out := orDefault(C.Dock.Output, filepath.Join(J.WorkDir, "docked.json.zst"))
	if err := S.Save(out); err != nil {
		return err
	}
	lephar.PrintV(0, out)
	if lephar.Verbosity() >= 1 {
		return dockplot.WriteSummary(os.Stdout, dockplot.Summarize(S))
	}
	return nil
}

func filterLigands(C *Config) error {
	J, ligs, filters, err := C.FilterJob()
	if err != nil {
		return err
	}
	S, err := J.Run(ligs, filters)
	if err != nil {
		return err
	}
	out := orDefault(C.Filter.Output, filepath.Join(J.WorkDir, "filtered.json"))
	if err := S.Save(out); err != nil {
		return err
	}
	lephar.PrintV(0, out)
	return nil
}

func clusterLigands(C *Config) error {
	J, ligs, err := C.ClusterJob()
	if err != nil {
		return err
	}
	sets, err := J.Run(ligs)
	if err != nil {
		return err
	}
	prefix := orDefault(C.Cluster.Output, filepath.Join(J.WorkDir, "cluster"))
	for _, S := range sets {
		out := fmt.Sprintf("%s_%s.json", prefix, S.ID)
		if err := S.Save(out); err != nil {
			return err
		}
		lephar.PrintV(0, out)
	}
	return nil
}

func report(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	hist := fs.String("hist", "", "Save a histogram of the scores to this file (png, svg, pdf)")
	scatter := fs.String("scatter", "", "Save a plot of the scores per pose to this file")
	bins := fs.Int("bins", 20, "Bins in the histogram")
	best := fs.Int("best", 10, "Print this many best-scored poses")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("report needs a set file")
	}
	S, err := lephar.LoadSet(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := dockplot.WriteSummary(os.Stdout, dockplot.Summarize(S)); err != nil {
		return err
	}
	if *best > 0 {
		fmt.Println()
		for _, m := range dockplot.Best(S, *best) {
			fmt.Printf("%-20s pocket %-3d pose %-3d %8.2f  %s\n", m.UniqueName(), m.GridID, m.PoseID, m.Energy, m.PoseFile)
		}
	}
	if *hist != "" {
		if err := dockplot.ScoreHistogram(S, *bins, *hist); err != nil {
			return err
		}
	}
	if *scatter != "" {
		if err := dockplot.PoseScatter(S, *scatter); err != nil {
			return err
		}
	}
	return nil
}

