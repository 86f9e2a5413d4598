/*
DESCRIPTION
  main_test.go tests the exit codes and console output of apc-match.

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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
)

func TestRunUsage(t *testing.T) {
	for i, args := range [][]string{
		{"/usr/local/bin/apc-match"},
		{"/usr/local/bin/apc-match", "part1.txt", "part2.txt"},
	} {
		var out bytes.Buffer
		code := run(args, &out)
		if code != exitFail {
			t.Errorf("unexpected exit code for test %d: got:%d want:%d", i, code, exitFail)
		}
		want := "\nFormat:\n\n./apc-match [part1TextFileDir] [part2TextFileDir] [dirToSaveFinalImages]\n\n"
		if out.String() != want {
			t.Errorf("unexpected output for test %d:\n%v", i, diff.LineDiff(want, out.String()))
		}
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"apc-match", "-h"}, &out)
	if code != exitOK {
		t.Errorf("unexpected exit code: got:%d want:%d", code, exitOK)
	}
	if !strings.Contains(out.String(), "-detector") {
		t.Errorf("flags not listed:\n%s", out.String())
	}
}

func TestRunBadConfig(t *testing.T) {
	logDir := t.TempDir()
	for i, args := range [][]string{
		{"apc-match", "-mode", "stitch", "a", "b", "c"},
		{"apc-match", "-matcher", "Nearest", "a", "b", "c"},
		{"apc-match", "-delay", "soon", "a", "b", "c"},
	} {
		args = append(args[:1], append([]string{"-LogPath", logDir}, args[1:]...)...)
		code := run(args, &bytes.Buffer{})
		if code != exitFail {
			t.Errorf("unexpected exit code for test %d: got:%d want:%d", i, code, exitFail)
		}
	}

	// Configuration errors stop the run before logging starts.
	if _, err := os.Stat(filepath.Join(logDir, "apc.log")); err == nil {
		t.Error("log file created for bad configuration")
	}
}

func TestRunFails(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "log")
	args := []string{"apc-match", "-LogPath", logDir, "-display=false", filepath.Join(dir, "none.txt"), filepath.Join(dir, "none.txt"), dir}

	// Run twice so that the first log file is rotated and archived.
	for i := 0; i < 2; i++ {
		code := run(args, &bytes.Buffer{})
		if code != exitFail {
			t.Errorf("unexpected exit code for run %d: got:%d want:%d", i, code, exitFail)
		}
	}

	b, err := os.ReadFile(filepath.Join(logDir, "apc.log"))
	if err != nil {
		t.Fatalf("could not read log file: %v", err)
	}
	if !strings.Contains(string(b), "run failed") {
		t.Errorf("failure not logged:\n%s", b)
	}
	backups, err := filepath.Glob(filepath.Join(logDir, "backups", "apc-*"))
	if err != nil {
		t.Fatalf("could not glob backups: %v", err)
	}
	if len(backups) == 0 {
		t.Error("earlier log not archived")
	}
}

func TestRunUnwritableLog(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	err := os.WriteFile(file, nil, 0o644)
	if err != nil {
		t.Fatalf("could not create file: %v", err)
	}

	var logs bytes.Buffer
	logOut = &logs
	defer func() { logOut = os.Stderr }()

	// A directory cannot be created under a regular file.
	var out bytes.Buffer
	args := []string{"apc-match", "-LogPath", filepath.Join(file, "log"), "-display=false", filepath.Join(dir, "none.txt"), filepath.Join(dir, "none.txt"), dir}
	run(args, &out)

	if !strings.Contains(out.String(), "logging to stderr") {
		t.Errorf("log fallback not reported:\n%s", out.String())
	}
	for _, want := range []string{"starting apc-match", "run failed"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("fallback log does not contain %q:\n%s", want, logs.String())
		}
	}
}
