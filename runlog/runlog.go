/*
NAME
  runlog - runlog implements log file rotation for pipeline runs and archives
  rotated files into a backups directory.

LICENSE
  runlog is Copyright (C) 2026 the Australian Ocean Lab (AusOcean).

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see [GNU licenses](http://www.gnu.org/licenses).
*/

// Package runlog provides the rotating log file written by each pipeline run.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file configuration.
const (
	name      = "apc"
	ext       = ".log"
	maxSize   = 500 // MB.
	maxBackup = 10
	maxAge    = 28 // Days.
	backups   = "backups"
)

// Runlog owns the log file of a run. LogRoller is the io.Writer given to the
// logger.
type Runlog struct {
	path      string
	LogRoller lumberjack.Logger
}

// New returns a Runlog writing to apc.log in the directory path.
func New(path string) *Runlog {
	return &Runlog{
		path: path,
		LogRoller: lumberjack.Logger{
			Filename:   filepath.Join(path, name+ext),
			MaxSize:    maxSize,
			MaxBackups: maxBackup,
			MaxAge:     maxAge,
		},
	}
}

// Path returns the path of the current log file.
func (r *Runlog) Path() string { return r.LogRoller.Filename }

// Write implements io.Writer.
func (r *Runlog) Write(p []byte) (int, error) { return r.LogRoller.Write(p) }

// Rotate closes the current log file and dates it, followed by opening a new
// log file.
func (r *Runlog) Rotate() error {
	return r.LogRoller.Rotate()
}

// Close closes the current log file.
func (r *Runlog) Close() error {
	return r.LogRoller.Close()
}

// Archive moves every rotated log file into the backups directory, which is
// created if needed. It returns the number of files moved. Archive continues
// past files that cannot be moved and returns the first such error.
func (r *Runlog) Archive() (int, error) {
	logFiles, err := filepath.Glob(filepath.Join(r.path, name+"-*"))
	if err != nil {
		return 0, fmt.Errorf("could not glob log files: %w", err)
	}
	if len(logFiles) == 0 {
		return 0, nil
	}

	dir := filepath.Join(r.path, backups)
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return 0, fmt.Errorf("could not create backups directory: %w", err)
	}

	var n int
	var first error
	for _, ff := range logFiles {
		// ff is a full file name; we need the local (base) file name too.
		lf := filepath.Base(ff)
		err = os.Rename(ff, filepath.Join(dir, lf))
		if err != nil {
			if first == nil {
				first = fmt.Errorf("could not move log file %s: %w", lf, err)
			}
			continue
		}
		n++
	}
	return n, first
}
