/*
DESCRIPTION
  manifest.go provides reading of image manifests. A manifest is a plain text
  file listing one relative image filename per line.

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

// Package manifest reads image manifests: text files of relative image
// filenames, one per line, terminated by the first blank line or EOF.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Manifest holds the filenames listed in a manifest file and the directory
// they are relative to.
type Manifest struct {
	Dir   string   // Directory of the manifest, including the trailing separator.
	Names []string // Filenames in file order.
}

// Read reads the manifest at path. Reading stops at the first empty line, so
// any names after a blank line are ignored. If the file cannot be opened the
// returned Manifest holds no names and the error is returned; callers treat
// this the same as an empty manifest.
func Read(path string) (Manifest, error) {
	m := Manifest{Dir: Dir(path)}

	f, err := os.Open(path)
	if err != nil {
		return m, fmt.Errorf("could not open manifest: %w", err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			break
		}
		m.Names = append(m.Names, line)
	}
	if err := s.Err(); err != nil {
		return m, fmt.Errorf("could not scan manifest: %w", err)
	}
	return m, nil
}

// Dir returns the directory part of the manifest path, up to and including the
// last separator. A backslash is looked for first and only if there is none is
// a forward slash used, so the separator style is chosen per path rather than
// per platform. Dir returns "" if path holds no separator.
func Dir(path string) string {
	i := strings.LastIndexByte(path, '\\')
	if i == -1 {
		i = strings.LastIndexByte(path, '/')
	}
	if i == -1 {
		return ""
	}
	return path[:i+1]
}

// Len returns the number of names in the manifest.
func (m Manifest) Len() int { return len(m.Names) }

// Path returns the path of the i'th image, the manifest directory joined by
// plain concatenation with the listed name.
func (m Manifest) Path(i int) string {
	return m.Dir + m.Names[i]
}
