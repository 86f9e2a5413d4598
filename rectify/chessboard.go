//go:build withcv
// +build withcv

/*
DESCRIPTION
  chessboard.go locates the chessboard targets of a source image with gocv
  and warps the image onto the output canvas.

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

package rectify

import (
	"fmt"
	"image"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// FindCorner searches region r of src for the 3x3 chessboard pattern. If it is
// found the corners are refined to sub-pixel accuracy and the pattern's centre
// point is returned in source image coordinates.
func FindCorner(src gocv.Mat, r Region) (Point, bool) {
	roi := src.Region(r.Rect())
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if roi.Channels() == 1 {
		roi.CopyTo(&gray)
	} else {
		gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)
	}

	corners := gocv.NewMat()
	defer corners.Close()
	if !gocv.FindChessboardCorners(gray, image.Pt(PatternCols, PatternRows), &corners, gocv.CalibCBAdaptiveThresh|gocv.CalibCBNormalizeImage) {
		return Point{}, false
	}

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, subPixIter, subPixEps)
	gocv.CornerSubPix(gray, &corners, image.Pt(subPixWin, subPixWin), image.Pt(-1, -1), criteria)

	v := corners.GetVecfAt(centreIdx, 0)
	return r.Global(Point{X: float64(v[0]), Y: float64(v[1])}), true
}

// Corners returns ManualTopLeft followed by the corner of each region in which
// a chessboard was found. A region without a chessboard is logged and left
// out, so fewer than four corners may be returned.
func Corners(src gocv.Mat, log logging.Logger) ([]Point, error) {
	sz := MinSourceSize()
	if src.Cols() < sz.X || src.Rows() < sz.Y {
		return nil, fmt.Errorf("%w: got %dx%d want at least %dx%d", ErrSourceSize, src.Cols(), src.Rows(), sz.X, sz.Y)
	}

	corners := []Point{ManualTopLeft}
	for _, r := range Regions() {
		p, ok := FindCorner(src, r)
		if !ok {
			log.Warning("chessboard not found", "region", r.Name)
			continue
		}
		log.Debug("found chessboard", "region", r.Name, "x", p.X, "y", p.Y)
		corners = append(corners, p)
	}
	return corners, nil
}

// Rectify warps src onto the CanvasWidth x CanvasHeight canvas, mapping the
// corners, in top left, top right, bottom right, bottom left order, onto the
// canvas corners. It fails with ErrCornerCount unless there are exactly four
// corners.
func Rectify(src gocv.Mat, corners []Point) (gocv.Mat, error) {
	c, err := CheckCorners(corners)
	if err != nil {
		return gocv.NewMat(), err
	}
	h, err := Solve(c, Destination())
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("could not solve transform: %w", err)
	}

	m := Transform(h)
	defer m.Close()

	out := gocv.NewMat()
	gocv.WarpPerspective(src, &out, m, image.Pt(CanvasWidth, CanvasHeight))
	return out, nil
}

// Transform returns h as a CV_64F matrix for use with OpenCV.
func Transform(h mat.Matrix) gocv.Mat {
	r, c := h.Dims()
	m := gocv.NewMatWithSize(r, c, gocv.MatTypeCV64F)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.SetDoubleAt(i, j, h.At(i, j))
		}
	}
	return m
}

// Write writes the rectified image to dir/name.
func Write(dir, name string, img gocv.Mat) error {
	path := dir + "/" + name
	if !gocv.IMWrite(path, img) {
		return fmt.Errorf("could not write %s: %w", path, ErrWrite)
	}
	return nil
}
