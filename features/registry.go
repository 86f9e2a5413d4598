//go:build withcv
// +build withcv

/*
DESCRIPTION
  registry.go constructs gocv feature detectors, descriptor extractors and
  descriptor matchers from their registered names.

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
	"fmt"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Detector finds keypoints in an image.
type Detector interface {
	Detect(src gocv.Mat) []gocv.KeyPoint
	Close() error
}

// Extractor computes a descriptor for each of the given keypoints. Keypoints
// for which no descriptor can be computed are dropped from the returned slice.
type Extractor interface {
	Compute(src gocv.Mat, mask gocv.Mat, kps []gocv.KeyPoint) ([]gocv.KeyPoint, gocv.Mat)
	Close() error
}

// Matcher finds the best training descriptor for each query descriptor.
type Matcher interface {
	Match(query, train gocv.Mat) []gocv.DMatch
	Close() error
}

// NewDetector returns the detector registered under name.
func NewDetector(name string) (Detector, error) {
	switch name {
	case DetectorSIFT:
		d := gocv.NewSIFT()
		return &d, nil
	case DetectorSURF:
		d := contrib.NewSURFWithParams(surfHessianThreshold, 4, 3, false, false)
		return &d, nil
	case DetectorORB:
		d := gocv.NewORB()
		return &d, nil
	case DetectorBRISK:
		d := gocv.NewBRISK()
		return &d, nil
	case DetectorAKAZE:
		d := gocv.NewAKAZE()
		return &d, nil
	case DetectorKAZE:
		d := gocv.NewKAZE()
		return &d, nil
	case DetectorFAST:
		d := gocv.NewFastFeatureDetectorWithParams(fastThreshold, true, gocv.FastFeatureDetectorType916)
		return &d, nil
	case DetectorSimpleBlob:
		d := gocv.NewSimpleBlobDetector()
		return &d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetector, name)
	}
}

// NewExtractor returns the descriptor extractor registered under name.
func NewExtractor(name string) (Extractor, error) {
	switch name {
	case DetectorSIFT:
		e := gocv.NewSIFT()
		return &e, nil
	case DetectorORB:
		e := gocv.NewORB()
		return &e, nil
	case DetectorBRISK:
		e := gocv.NewBRISK()
		return &e, nil
	case DetectorAKAZE:
		e := gocv.NewAKAZE()
		return &e, nil
	case DetectorKAZE:
		e := gocv.NewKAZE()
		return &e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtractor, name)
	}
}

// NewMatcher returns the descriptor matcher registered under name.
func NewMatcher(name string) (Matcher, error) {
	var norm gocv.NormType
	switch name {
	case MatcherBruteForce:
		norm = gocv.NormL2
	case MatcherBruteForceL1:
		norm = gocv.NormL1
	case MatcherBruteForceHamming:
		norm = gocv.NormHamming
	case MatcherFlannBased:
		return &flannMatcher{m: gocv.NewFlannBasedMatcher()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatcher, name)
	}
	m := gocv.NewBFMatcherWithParams(norm, false)
	return &m, nil
}

// flannMatcher adapts the FLANN based matcher, which only offers k nearest
// neighbour matching, to the Matcher interface.
type flannMatcher struct {
	m gocv.FlannBasedMatcher
}

// Match returns the single nearest neighbour of each query descriptor. FLANN
// requires floating point descriptors so binary descriptors are converted.
func (f *flannMatcher) Match(query, train gocv.Mat) []gocv.DMatch {
	q, t := asFloat(query), asFloat(train)
	defer q.Close()
	defer t.Close()

	var matches []gocv.DMatch
	for _, knn := range f.m.KnnMatch(q, t, 1) {
		if len(knn) != 0 {
			matches = append(matches, knn[0])
		}
	}
	return matches
}

func (f *flannMatcher) Close() error { return f.m.Close() }

// asFloat returns a CV_32F copy of m.
func asFloat(m gocv.Mat) gocv.Mat {
	if m.Type() == gocv.MatTypeCV32F {
		return m.Clone()
	}
	dst := gocv.NewMat()
	m.ConvertTo(&dst, gocv.MatTypeCV32F)
	return dst
}
