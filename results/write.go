//go:build withcv
// +build withcv

/*
DESCRIPTION
  write.go draws the matches of each training image and writes the result.

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

package results

import (
	"image/color"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/ausocean/apc/features"
)

// Draw returns a side by side composite of the query image and training image
// imgIdx with the matches belonging to that training image drawn between them.
// Without query keypoints, training keypoints or matches there is nothing to
// join, and the composite only shows the keypoints of each image.
func Draw(query gocv.Mat, queryKps []gocv.KeyPoint, train gocv.Mat, trainKps []gocv.KeyPoint, matches []features.Match, imgIdx int) gocv.Mat {
	if len(queryKps) == 0 || len(trainKps) == 0 || len(matches) == 0 {
		return sideBySide(query, queryKps, train, trainKps)
	}
	out := gocv.NewMat()
	mask := features.Mask(matches, imgIdx)
	gocv.DrawMatches(query, queryKps, train, trainKps, features.DMatches(matches), &out, matchColor, singleColor, mask, gocv.DrawDefault)
	return out
}

// sideBySide lays out the two images as DrawMatches does: colour, left
// aligned at the top, padded with black to the taller height.
func sideBySide(left gocv.Mat, leftKps []gocv.KeyPoint, right gocv.Mat, rightKps []gocv.KeyPoint) gocv.Mat {
	rows := max(left.Rows(), right.Rows())
	l := panel(left, leftKps, rows)
	defer l.Close()
	r := panel(right, rightKps, rows)
	defer r.Close()

	out := gocv.NewMat()
	gocv.Hconcat(l, r, &out)
	return out
}

// panel returns a BGR copy of img with kps drawn on it, padded at the bottom
// to the given number of rows.
func panel(img gocv.Mat, kps []gocv.KeyPoint, rows int) gocv.Mat {
	bgr := gocv.NewMat()
	if img.Channels() == 1 {
		gocv.CvtColor(img, &bgr, gocv.ColorGrayToBGR)
	} else {
		img.CopyTo(&bgr)
	}
	if len(kps) != 0 {
		drawn := gocv.NewMat()
		gocv.DrawKeyPoints(bgr, kps, &drawn, singleColor, gocv.DrawDefault)
		bgr.Close()
		bgr = drawn
	}
	if bgr.Rows() == rows {
		return bgr
	}

	out := gocv.NewMat()
	gocv.CopyMakeBorder(bgr, &out, 0, rows-bgr.Rows(), 0, 0, gocv.BorderConstant, color.RGBA{})
	bgr.Close()
	return out
}

// Write draws the matches of every non-empty training image and writes each
// composite to OutputPath(dir, names[i]). A failed write is logged and the
// remaining images are still written. The number of files written is returned.
func Write(dir string, query gocv.Mat, q features.Features, train []gocv.Mat, f []features.Features, matches []features.Match, names []string, log logging.Logger) int {
	var n int
	for i := range train {
		if train[i].Empty() {
			continue
		}

		img := Draw(query, q.Keypoints, train[i], f[i].Keypoints, matches, i)
		path := OutputPath(dir, names[i])
		log.Debug("writing match result", "path", path)
		if !gocv.IMWrite(path, img) {
			log.Warning("image can not be saved", "path", path)
			img.Close()
			continue
		}
		img.Close()
		n++
	}
	return n
}
