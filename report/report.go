/*
DESCRIPTION
  report.go holds the results of a pipeline run: how many images were read,
  how the matches are spread over the training images and how many
  chessboard corners were found.

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

// Package report summarises a pipeline run as text and as a chart.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ImageMatches holds the matches of a single training image.
type ImageMatches struct {
	Name         string
	Count        int
	MeanDistance float64
	StdDistance  float64
}

// NewImageMatches returns the match statistics of the named training image
// from the distances of its matches.
func NewImageMatches(name string, distances []float64) ImageMatches {
	im := ImageMatches{Name: name, Count: len(distances)}
	switch len(distances) {
	case 0:
	case 1:
		im.MeanDistance = distances[0]
	default:
		im.MeanDistance, im.StdDistance = stat.MeanStdDev(distances, nil)
	}
	return im
}

// Summary holds the results of a run.
type Summary struct {
	Part1Read int
	Part2Read int
	Matches   []ImageMatches
	Corners   int // Corners available for rectification, including the manual one.
	Rectified bool
	Written   int // Match visualisations written.
}

// TotalMatches returns the number of matches over all training images.
func (s *Summary) TotalMatches() int {
	var n int
	for _, m := range s.Matches {
		n += m.Count
	}
	return n
}

// String returns a multi-line text summary.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "part 1 images read: %d\n", s.Part1Read)
	fmt.Fprintf(&b, "part 2 images read: %d\n", s.Part2Read)
	if s.Matches != nil {
		fmt.Fprintf(&b, "matches: %d\n", s.TotalMatches())
		for _, m := range s.Matches {
			fmt.Fprintf(&b, "  %s: %d (mean distance %.2f, std %.2f)\n", m.Name, m.Count, m.MeanDistance, m.StdDistance)
		}
		fmt.Fprintf(&b, "results written: %d\n", s.Written)
	}
	if s.Corners > 0 {
		fmt.Fprintf(&b, "corners found: %d\n", s.Corners)
		fmt.Fprintf(&b, "rectified: %t\n", s.Rectified)
	}
	return b.String()
}
