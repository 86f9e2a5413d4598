//go:build withcv
// +build withcv

/*
DESCRIPTION
  load.go decodes the images of a manifest into gocv matrices.

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

package imageset

import (
	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/ausocean/apc/manifest"
)

// Set is an ordered set of decoded images, index aligned with the manifest it
// was loaded from. Images that could not be decoded are empty.
type Set []gocv.Mat

// Load decodes every image of m using the given mode. In Gray mode each image
// is resized to ScaledSize of its decoded size. An image that cannot be decoded
// is logged and kept as an empty placeholder so that len(set) == m.Len().
// The number of decoded images is returned; Load fails with ErrEmptyManifest
// if m lists no names and with ErrNoneLoaded if nothing could be decoded.
func Load(m manifest.Manifest, mode Mode, log logging.Logger) (Set, int, error) {
	if m.Len() == 0 {
		return nil, 0, ErrEmptyManifest
	}

	flag := gocv.IMReadColor
	if mode == Gray {
		flag = gocv.IMReadGrayScale
	}

	set := make(Set, 0, m.Len())
	var n int
	for i := range m.Names {
		path := m.Path(i)
		img := gocv.IMRead(path, flag)
		if img.Empty() {
			log.Warning("image can not be read", "path", path)
			set = append(set, img)
			continue
		}

		if mode == Gray {
			sz := ScaledSize(img.Cols(), img.Rows())
			gocv.Resize(img, &img, sz, 0, 0, gocv.InterpolationLinear)
		}
		log.Debug("read image", "path", path, "mode", mode.String(), "cols", img.Cols(), "rows", img.Rows())
		set = append(set, img)
		n++
	}

	if n == 0 {
		return set, 0, ErrNoneLoaded
	}
	return set, n, nil
}

// Close releases the memory held by every image of the set.
func (s Set) Close() {
	for i := range s {
		s[i].Close()
	}
}

// Loaded returns the number of non-empty images in the set.
func (s Set) Loaded() int {
	var n int
	for _, img := range s {
		if !img.Empty() {
			n++
		}
	}
	return n
}
