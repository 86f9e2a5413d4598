//go:build withcv
// +build withcv

/*
DESCRIPTION
  pipeline_test.go tests detection, description and many image matching
  on synthetic images.

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

package features

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"gocv.io/x/gocv"
)

// scene returns a grayscale image of random filled rectangles and circles.
func scene(seed int64) gocv.Mat {
	r := rand.New(rand.NewSource(seed))
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 0, 0, 0), 240, 320, gocv.MatTypeCV8U)
	for i := 0; i < 40; i++ {
		c := color.RGBA{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256))}
		x, y := r.Intn(300), r.Intn(220)
		if i%2 == 0 {
			gocv.Rectangle(&img, image.Rect(x, y, x+5+r.Intn(30), y+5+r.Intn(30)), c, -1)
		} else {
			gocv.Circle(&img, image.Pt(x, y), 3+r.Intn(15), c, -1)
		}
	}
	return img
}

func TestMatchManyImages(t *testing.T) {
	for _, names := range [][3]string{
		{DetectorSIFT, DetectorSIFT, MatcherBruteForce},
		{DetectorORB, DetectorORB, MatcherBruteForceHamming},
		{DetectorSIFT, DetectorSIFT, MatcherFlannBased},
	} {
		p, err := New(names[0], names[1], names[2])
		if err != nil {
			t.Fatalf("could not create pipeline %v: %v", names, err)
		}

		train := []gocv.Mat{scene(1), scene(2), scene(3)}
		query := train[1].Clone()

		q := p.Extract(query)
		f := p.ComputeAll(train, p.DetectAll(train))
		if q.Descriptors.Empty() {
			t.Fatalf("no query descriptors for %v", names)
		}

		matches := p.Match(q.Descriptors, Descriptors(f))
		if len(matches) != q.Descriptors.Rows() {
			t.Errorf("unexpected match count for %v: got:%d want:%d", names, len(matches), q.Descriptors.Rows())
		}

		var self int
		for _, m := range matches {
			if m.ImgIdx < 0 || m.ImgIdx >= len(train) {
				t.Fatalf("match image index out of range for %v: %d", names, m.ImgIdx)
			}
			if m.TrainIdx < 0 || m.TrainIdx >= len(f[m.ImgIdx].Keypoints) {
				t.Fatalf("match train index out of range for %v: %d", names, m.TrainIdx)
			}
			if m.ImgIdx == 1 {
				self++
			}
		}
		if self*2 < len(matches) {
			t.Errorf("expected most matches in identical image for %v: got %d of %d", names, self, len(matches))
		}

		q.Close()
		for i := range f {
			f[i].Close()
			train[i].Close()
		}
		query.Close()
		p.Close()
	}
}

func TestMatchEmpty(t *testing.T) {
	p, err := New(DefaultDetector, DefaultExtractor, DefaultMatcher)
	if err != nil {
		t.Fatalf("could not create pipeline: %v", err)
	}
	defer p.Close()

	img := scene(4)
	defer img.Close()
	f := p.Extract(img)
	defer f.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if m := p.Match(empty, []gocv.Mat{f.Descriptors}); len(m) != 0 {
		t.Errorf("expected no matches for empty query, got %d", len(m))
	}
	if m := p.Match(f.Descriptors, []gocv.Mat{empty, empty}); len(m) != 0 {
		t.Errorf("expected no matches without training descriptors, got %d", len(m))
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("Harris", DefaultExtractor, DefaultMatcher)
	if !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("expected ErrUnknownDetector, got %v", err)
	}
	_, err = NewMatcher("Hamming")
	if !errors.Is(err, ErrUnknownMatcher) {
		t.Errorf("expected ErrUnknownMatcher, got %v", err)
	}
}
