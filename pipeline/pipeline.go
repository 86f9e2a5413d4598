/*
DESCRIPTION
  pipeline.go provides the errors and console diagnostics of a pipeline run.

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

// Package pipeline runs the stages selected by the configured mode: loading
// both image sets, matching the query image against the part 1 images and
// rectifying the query image onto a fixed canvas.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/ausocean/apc/imageset"
)

// Errors that abort a run.
var (
	ErrPart1   = errors.New("could not load part 1 images")
	ErrPart2   = errors.New("could not load part 2 images")
	ErrRectify = errors.New("could not rectify query image")
)

// Markers bracketing the diagnostics of each image set.
const (
	openMark  = "<"
	closeMark = ">"
)

// unreadable returns the console message for an image that could not be
// decoded.
func unreadable(path string) string { return path + " can not be read." }

// loadMessage returns the console message that ends the loading of an image
// set, given the number of images read and the loading error if any.
func loadMessage(n int, err error) string {
	switch {
	case errors.Is(err, imageset.ErrEmptyManifest):
		return "Train image filenames can not be read."
	case errors.Is(err, imageset.ErrNoneLoaded):
		return "All image(s) can not be read."
	case err != nil:
		return err.Error()
	default:
		return fmt.Sprintf("%d image(s) were read.", n)
	}
}
