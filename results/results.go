/*
DESCRIPTION
  results.go provides the naming of written match visualisations.

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

// Package results draws the matches between the query image and each
// training image and writes them to an output directory.
package results

import "image/color"

const prefix = "res_"

// Drawing colours: matched keypoints in blue, unmatched in yellow. DrawMatches
// takes the match colour in BGR channel order and the single point colour as
// RGB, so the two are written differently.
var (
	matchColor  = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	singleColor = color.RGBA{R: 255, G: 255, B: 0, A: 0}
)

// OutputPath returns the path the match visualisation of the training image
// with the given name is written to.
func OutputPath(dir, name string) string {
	return dir + "/" + prefix + name
}
