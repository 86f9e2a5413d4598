/*
DESCRIPTION
  runlog_test.go tests log rotation and archiving.

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

package runlog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
)

const numLogs = 20

// writeTo generates a series of log messages.
func writeTo(log logging.Logger, run int) {
	for i := 0; i < numLogs; i++ {
		log.Info("This is log "+strconv.Itoa(i), "run", run)
	}
}

func TestRotateArchive(t *testing.T) {
	dir := t.TempDir()
	rl := New(dir)
	defer rl.Close()

	if rl.Path() != filepath.Join(dir, "apc.log") {
		t.Errorf("unexpected log path: %s", rl.Path())
	}

	log := logging.New(int8(logging.Debug), rl, true)

	const runs = 3
	for run := 0; run < runs; run++ {
		writeTo(log, run)
		// Rotated files are named by time with millisecond resolution.
		time.Sleep(10 * time.Millisecond)
		err := rl.Rotate()
		if err != nil {
			t.Fatalf("could not rotate: %v", err)
		}
	}

	n, err := rl.Archive()
	if err != nil {
		t.Fatalf("could not archive: %v", err)
	}
	if n != runs {
		t.Errorf("unexpected archive count: got:%d want:%d", n, runs)
	}

	left, err := filepath.Glob(filepath.Join(dir, "apc-*"))
	if err != nil {
		t.Fatalf("could not glob: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("rotated files left after archive: %v", left)
	}

	archived, err := filepath.Glob(filepath.Join(dir, "backups", "apc-*"))
	if err != nil {
		t.Fatalf("could not glob backups: %v", err)
	}
	if len(archived) != runs {
		t.Fatalf("unexpected backups: %v", archived)
	}
	b, err := os.ReadFile(archived[0])
	if err != nil {
		t.Fatalf("could not read backup: %v", err)
	}
	if !strings.Contains(string(b), "This is log 0") {
		t.Errorf("backup does not hold log messages:\n%s", b)
	}

	// Nothing further to archive.
	n, err = rl.Archive()
	if n != 0 || err != nil {
		t.Errorf("unexpected second archive: n=%d err=%v", n, err)
	}
}
