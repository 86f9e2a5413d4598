/*
DESCRIPTION
  imageset.go provides the colour modes and scaling rules used when loading
  manifest images.

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

// Package imageset loads the images listed in a manifest. The loaded set is
// always index aligned with the manifest; images that fail to decode are
// kept as empty placeholders.
package imageset

import (
	"errors"
	"image"
)

// Mode selects how images are decoded.
type Mode int

// Colour modes.
const (
	Gray Mode = iota // Decoded as single channel and downscaled to scalePercent.
	Color
)

func (m Mode) String() string {
	switch m {
	case Gray:
		return "gray"
	case Color:
		return "color"
	default:
		return "unknown"
	}
}

// Grayscale images are unconditionally downscaled to this percentage of
// their decoded size.
const scalePercent = 30

// Errors returned by Load. Both mean the pipeline branch must abort.
var (
	ErrEmptyManifest = errors.New("image filenames can not be read")
	ErrNoneLoaded    = errors.New("all image(s) can not be read")
)

// ScaledSize returns the size a w by h image is resized to in Gray mode, using
// integer truncation of (dimension*30)/100.
func ScaledSize(w, h int) image.Point {
	return image.Pt((w*scalePercent)/100, (h*scalePercent)/100)
}
