//go:build withcv
// +build withcv

/*
DESCRIPTION
  pipeline.go provides the feature pipeline: keypoint detection, descriptor
  computation and matching of one query image against many training images.

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
)

// Features holds the keypoints of an image and their descriptors, one row
// per keypoint.
type Features struct {
	Keypoints   []gocv.KeyPoint
	Descriptors gocv.Mat
}

// Close releases the descriptor matrix.
func (f *Features) Close() error { return f.Descriptors.Close() }

// Pipeline bundles a detector, an extractor and a matcher.
type Pipeline struct {
	det Detector
	ext Extractor
	mat Matcher
}

// New returns a Pipeline built from the named primitives. An unknown or
// unavailable name is a configuration error.
func New(detector, extractor, matcher string) (*Pipeline, error) {
	err := ValidateNames(detector, extractor, matcher)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{}
	p.det, err = NewDetector(detector)
	if err != nil {
		return nil, fmt.Errorf("could not create detector: %w", err)
	}
	p.ext, err = NewExtractor(extractor)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("could not create extractor: %w", err)
	}
	p.mat, err = NewMatcher(matcher)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("could not create matcher: %w", err)
	}
	return p, nil
}

// Close releases the primitives of the pipeline.
func (p *Pipeline) Close() {
	if p.det != nil {
		p.det.Close()
	}
	if p.ext != nil {
		p.ext.Close()
	}
	if p.mat != nil {
		p.mat.Close()
	}
}

// Detect returns the keypoints found in img. An empty image has none.
func (p *Pipeline) Detect(img gocv.Mat) []gocv.KeyPoint {
	if img.Empty() {
		return nil
	}
	return p.det.Detect(img)
}

// DetectAll detects keypoints independently in each image.
func (p *Pipeline) DetectAll(imgs []gocv.Mat) [][]gocv.KeyPoint {
	kps := make([][]gocv.KeyPoint, len(imgs))
	for i, img := range imgs {
		kps[i] = p.Detect(img)
	}
	return kps
}

// Compute computes the descriptors of the keypoints kps found in img.
// Without keypoints the descriptor matrix is empty.
func (p *Pipeline) Compute(img gocv.Mat, kps []gocv.KeyPoint) Features {
	if img.Empty() || len(kps) == 0 {
		return Features{Keypoints: kps, Descriptors: gocv.NewMat()}
	}
	mask := gocv.NewMat()
	defer mask.Close()
	kps, desc := p.ext.Compute(img, mask, kps)
	return Features{Keypoints: kps, Descriptors: desc}
}

// ComputeAll computes descriptors per image; kps[i] are the keypoints of imgs[i].
func (p *Pipeline) ComputeAll(imgs []gocv.Mat, kps [][]gocv.KeyPoint) []Features {
	f := make([]Features, len(imgs))
	for i, img := range imgs {
		f[i] = p.Compute(img, kps[i])
	}
	return f
}

// Extract detects and describes the features of img.
func (p *Pipeline) Extract(img gocv.Mat) Features {
	return p.Compute(img, p.Detect(img))
}

// Match matches the query descriptors against the descriptors of all training
// images. The training descriptors are concatenated into a single index once
// and the query set is matched against it in one call, giving the best match
// for every query descriptor. The result is empty if there are no query or no
// training descriptors.
func (p *Pipeline) Match(query gocv.Mat, train []gocv.Mat) []Match {
	if query.Empty() {
		return nil
	}

	all, idx := concat(train)
	defer all.Close()
	if idx.Rows() == 0 {
		return nil
	}

	dm := p.mat.Match(query, all)
	matches := make([]Match, 0, len(dm))
	for _, d := range dm {
		img, local := idx.Locate(d.TrainIdx)
		matches = append(matches, Match{
			QueryIdx: d.QueryIdx,
			TrainIdx: local,
			ImgIdx:   img,
			Distance: d.Distance,
		})
	}
	return matches
}

// concat stacks the non-empty descriptor matrices of desc vertically and
// returns the result with an Index over its rows.
func concat(desc []gocv.Mat) (gocv.Mat, Index) {
	rows := make([]int, len(desc))
	all := gocv.NewMat()
	for i, d := range desc {
		if d.Empty() {
			continue
		}
		rows[i] = d.Rows()
		if all.Empty() {
			all.Close()
			all = d.Clone()
			continue
		}
		next := gocv.NewMat()
		gocv.Vconcat(all, d, &next)
		all.Close()
		all = next
	}
	return all, NewIndex(rows)
}

// Descriptors returns the descriptor matrices of f.
func Descriptors(f []Features) []gocv.Mat {
	d := make([]gocv.Mat, len(f))
	for i := range f {
		d[i] = f[i].Descriptors
	}
	return d
}

// Keypoints returns the keypoints of f.
func Keypoints(f []Features) [][]gocv.KeyPoint {
	kps := make([][]gocv.KeyPoint, len(f))
	for i := range f {
		kps[i] = f[i].Keypoints
	}
	return kps
}

// DMatches converts matches to gocv matches for drawing.
func DMatches(matches []Match) []gocv.DMatch {
	dm := make([]gocv.DMatch, len(matches))
	for i, m := range matches {
		dm[i] = gocv.DMatch{
			QueryIdx: m.QueryIdx,
			TrainIdx: m.TrainIdx,
			ImgIdx:   m.ImgIdx,
			Distance: m.Distance,
		}
	}
	return dm
}
