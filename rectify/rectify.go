/*
DESCRIPTION
  rectify.go provides the fixed geometry of the chessboard rectification and
  a solver for the perspective transform of four point correspondences.

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

// Package rectify flattens a photograph of a shelf using chessboard targets.
// A 3x3 chessboard pattern is located in three fixed quadrants of the source
// image; together with a fixed top left point these give four corners which
// are mapped onto a 960x540 canvas by a perspective transform.
package rectify

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Region geometry. The source image is divided into quadrants of this size.
const (
	RegionWidth  = 2160
	RegionHeight = 1216
)

// Chessboard detection parameters.
const (
	PatternCols = 3
	PatternRows = 3
	centreIdx   = 4 // Index of the pattern's centre point in the corner list.

	subPixIter = 30  // Maximum sub-pixel refinement iterations.
	subPixEps  = 0.1 // Sub-pixel refinement convergence.
	subPixWin  = 11  // Half side of the refinement search window.
)

// Output canvas size.
const (
	CanvasWidth  = 960
	CanvasHeight = 540
)

// ManualTopLeft is the top left corner. Its pattern is not detected.
var ManualTopLeft = Point{X: 1050, Y: 200}

// Errors returned during rectification.
var (
	ErrCornerCount = errors.New("need exactly four corners")
	ErrDegenerate  = errors.New("degenerate corner configuration")
	ErrSourceSize  = errors.New("source image smaller than chessboard regions")
	ErrWrite       = errors.New("image can not be saved")
)

// Point is a point in image coordinates.
type Point struct {
	X, Y float64
}

// Region is a fixed crop of the source image searched for a chessboard.
type Region struct {
	Name   string
	Origin image.Point // Top left of the crop in source image coordinates.
}

// Regions returns the searched regions in the order their corners are
// appended after ManualTopLeft: top right, bottom right, bottom left.
func Regions() []Region {
	return []Region{
		{Name: "top-right", Origin: image.Pt(RegionWidth, 0)},
		{Name: "bottom-right", Origin: image.Pt(RegionWidth, RegionHeight)},
		{Name: "bottom-left", Origin: image.Pt(0, RegionHeight)},
	}
}

// Rect returns the crop rectangle of the region.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Origin.X, r.Origin.Y, r.Origin.X+RegionWidth, r.Origin.Y+RegionHeight)
}

// Global converts a point in region coordinates to source image coordinates.
func (r Region) Global(p Point) Point {
	return Point{X: p.X + float64(r.Origin.X), Y: p.Y + float64(r.Origin.Y)}
}

// MinSourceSize returns the smallest source image containing every region.
func MinSourceSize() image.Point {
	return image.Pt(2*RegionWidth, 2*RegionHeight)
}

// Destination returns the canvas corners in corner order: top left, top
// right, bottom right, bottom left.
func Destination() [4]Point {
	return [4]Point{
		{X: 0, Y: 0},
		{X: CanvasWidth, Y: 0},
		{X: CanvasWidth, Y: CanvasHeight},
		{X: 0, Y: CanvasHeight},
	}
}

// CheckCorners returns the corners as an array if there are exactly four.
func CheckCorners(corners []Point) ([4]Point, error) {
	var c [4]Point
	if len(corners) != len(c) {
		return c, fmt.Errorf("%w: got %d", ErrCornerCount, len(corners))
	}
	copy(c[:], corners)
	return c, nil
}

// Solve returns the 3x3 perspective transform mapping each src point to the
// dst point of the same index, normalised so that its bottom right element
// is 1. An error is returned if the points do not determine a transform.
func Solve(src, dst [4]Point) (*mat.Dense, error) {
	if !general(src) || !general(dst) {
		return nil, ErrDegenerate
	}

	// Points are scaled into the unit square to keep the system well
	// conditioned; the scaling is undone once solved.
	ss, ds := extent(src), extent(dst)

	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := range src {
		x, y := src[i].X/ss, src[i].Y/ss
		u, v := dst[i].X/ds, dst[i].Y/ds
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	c := mat.NewVecDense(8, nil)
	qr := new(mat.QR)
	qr.Factorize(a)
	err := qr.SolveVecTo(c, false, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	hs := mat.NewDense(3, 3, nil)
	for i := 0; i < 8; i++ {
		hs.Set(i/3, i%3, c.AtVec(i))
	}
	hs.Set(2, 2, 1)

	h := mat.NewDense(3, 3, nil)
	h.Product(
		mat.NewDiagDense(3, []float64{ds, ds, 1}),
		hs,
		mat.NewDiagDense(3, []float64{1 / ss, 1 / ss, 1}),
	)
	if h.At(2, 2) == 0 {
		return nil, ErrDegenerate
	}
	h.Scale(1/h.At(2, 2), h)
	return h, nil
}

// extent returns the largest absolute coordinate of p, or 1 if all are zero.
func extent(p [4]Point) float64 {
	var m float64
	for _, q := range p {
		m = math.Max(m, math.Max(math.Abs(q.X), math.Abs(q.Y)))
	}
	if m == 0 {
		return 1
	}
	return m
}

// general reports whether no three of the points are collinear.
func general(p [4]Point) bool {
	const eps = 1e-6
	for i := 0; i < 4; i++ {
		a, b, c := p[(i+1)%4], p[(i+2)%4], p[(i+3)%4]
		if math.Abs((b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X)) < eps {
			return false
		}
	}
	return true
}

// Project applies the perspective transform h to p.
func Project(h mat.Matrix, p Point) Point {
	w := h.At(2, 0)*p.X + h.At(2, 1)*p.Y + h.At(2, 2)
	return Point{
		X: (h.At(0, 0)*p.X + h.At(0, 1)*p.Y + h.At(0, 2)) / w,
		Y: (h.At(1, 0)*p.X + h.At(1, 1)*p.Y + h.At(1, 2)) / w,
	}
}
