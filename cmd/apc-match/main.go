/*
DESCRIPTION
  apc-match matches a query image against a set of training images and
  rectifies the query image using chessboard patterns placed in three of its
  quadrants.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

// apc-match reads two image manifests. The part 1 images are matched
// against the first readable part 2 image, match visualisations are written
// to the output directory and the part 2 image is rectified onto a 960x540
// canvas. The -mode flag limits the stages that are run.
//
// Usage:
//
//	apc-match [flags] <part1Manifest> <part2Manifest> <outputDir>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/apc/config"
	"github.com/ausocean/apc/runlog"
)

// Logging configuration.
const logSuppress = false

// logOut receives log output when the log file cannot be opened.
var logOut io.Writer = os.Stderr

// Exit codes.
const (
	exitOK   = 0
	exitFail = 1
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run runs the program with the command line args, including the program
// name, writing console output to out. It returns the exit code.
func run(args []string, out io.Writer) int {
	prog := filepath.Base(args[0])
	cfg, err := config.Parse(prog, args[1:], out)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrArgs):
		return exitFail
	case err != nil:
		fmt.Fprintln(out, err)
		return exitFail
	}

	err = cfg.Validate()
	if err != nil {
		fmt.Fprintln(out, err)
		return exitFail
	}

	rl := runlog.New(cfg.LogPath)
	defer rl.Close()

	// Each run starts a new log file; earlier ones are kept in backups. If the
	// log directory is unusable the run logs to stderr instead.
	var w io.Writer = rl
	rotateErr := rl.Rotate()
	if rotateErr != nil {
		fmt.Fprintln(out, "could not open log file, logging to stderr:", rotateErr)
		w = logOut
	}
	log := logging.New(int8(cfg.LogLevel), w, logSuppress)
	if rotateErr == nil {
		n, err := rl.Archive()
		if err != nil {
			log.Warning("could not archive logs", "error", err.Error())
		}
		log.Debug("archived logs", "count", n)
	}

	log.Info("starting apc-match", "mode", cfg.Mode, "part1", cfg.Part1, "part2", cfg.Part2, "output", cfg.OutputDir)
	s, err := process(cfg, log, out)
	if s != nil {
		fmt.Fprint(out, s.String())
	}
	if err != nil {
		log.Error("run failed", "error", err.Error())
		fmt.Fprintln(out, err)
		return exitFail
	}
	log.Info("finished apc-match", "written", s.Written, "rectified", s.Rectified)
	return exitOK
}
