/*
DESCRIPTION
  features.go provides the names of the supported feature primitives, the
  match type and the per training image bookkeeping used when matching a
  query image against many training images.

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

// Package features detects keypoints, computes descriptors and matches a
// query image against a set of training images. Detectors, extractors and
// matchers are chosen by name from a fixed registry.
package features

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ausocean/utils/sliceutils"
)

// Names of the supported detectors.
const (
	DetectorSIFT       = "SIFT"
	DetectorSURF       = "SURF"
	DetectorORB        = "ORB"
	DetectorBRISK      = "BRISK"
	DetectorAKAZE      = "AKAZE"
	DetectorKAZE       = "KAZE"
	DetectorFAST       = "FAST"
	DetectorSimpleBlob = "SimpleBlob"
)

// Names of the supported matchers.
const (
	MatcherBruteForce        = "BruteForce"
	MatcherBruteForceL1      = "BruteForce-L1"
	MatcherBruteForceHamming = "BruteForce-Hamming"
	MatcherFlannBased        = "FlannBased"
)

// Default primitive names. The default detector depends on the build, see
// defaults.go and defaults_nonfree.go.
const (
	DefaultExtractor = DetectorSIFT
	DefaultMatcher   = MatcherBruteForce
)

// Fixed detector parameters.
const (
	surfHessianThreshold = 400
	fastThreshold        = 30
)

var (
	detectorNames = []string{
		DetectorSIFT,
		DetectorSURF,
		DetectorORB,
		DetectorBRISK,
		DetectorAKAZE,
		DetectorKAZE,
		DetectorFAST,
		DetectorSimpleBlob,
	}
	extractorNames = []string{
		DetectorSIFT,
		DetectorORB,
		DetectorBRISK,
		DetectorAKAZE,
		DetectorKAZE,
	}
	matcherNames = []string{
		MatcherBruteForce,
		MatcherBruteForceL1,
		MatcherBruteForceHamming,
		MatcherFlannBased,
	}
)

// Configuration errors returned for unsupported primitive names.
var (
	ErrUnknownDetector  = errors.New("unknown feature detector")
	ErrUnknownExtractor = errors.New("unknown descriptor extractor")
	ErrUnknownMatcher   = errors.New("unknown descriptor matcher")
)

// Detectors returns the names of the supported detectors.
func Detectors() []string { return append([]string(nil), detectorNames...) }

// Extractors returns the names of the supported descriptor extractors.
func Extractors() []string { return append([]string(nil), extractorNames...) }

// Matchers returns the names of the supported matchers.
func Matchers() []string { return append([]string(nil), matcherNames...) }

// ValidateNames checks that each of the given names is in the registry.
func ValidateNames(detector, extractor, matcher string) error {
	if !sliceutils.ContainsString(detectorNames, detector) {
		return fmt.Errorf("%w: %q", ErrUnknownDetector, detector)
	}
	if !sliceutils.ContainsString(extractorNames, extractor) {
		return fmt.Errorf("%w: %q", ErrUnknownExtractor, extractor)
	}
	if !sliceutils.ContainsString(matcherNames, matcher) {
		return fmt.Errorf("%w: %q", ErrUnknownMatcher, matcher)
	}
	return nil
}

// Match is a correspondence between a query descriptor and its nearest
// training descriptor. TrainIdx indexes the keypoints of training image
// ImgIdx.
type Match struct {
	QueryIdx int
	TrainIdx int
	ImgIdx   int
	Distance float64
}

// Mask returns a mask over matches selecting those that belong to training
// image imgIdx; mask[j] is 1 iff matches[j].ImgIdx == imgIdx. The mask is
// rebuilt by a full scan on every call.
func Mask(matches []Match, imgIdx int) []byte {
	mask := make([]byte, len(matches))
	for j, m := range matches {
		if m.ImgIdx == imgIdx {
			mask[j] = 1
		}
	}
	return mask
}

// Distances returns the distances of the matches belonging to training image
// imgIdx.
func Distances(matches []Match, imgIdx int) []float64 {
	var d []float64
	for _, m := range matches {
		if m.ImgIdx == imgIdx {
			d = append(d, m.Distance)
		}
	}
	return d
}

// Index maps rows of the concatenated training descriptor matrix back to the
// training image they came from.
type Index struct {
	offsets []int // offsets[i] is the first row of image i; last entry is the total.
}

// NewIndex returns an Index for training images with the given descriptor
// row counts. Images without descriptors have a count of zero.
func NewIndex(rows []int) Index {
	offsets := make([]int, len(rows)+1)
	for i, n := range rows {
		offsets[i+1] = offsets[i] + n
	}
	return Index{offsets: offsets}
}

// Len returns the number of training images in the index.
func (x Index) Len() int {
	if len(x.offsets) == 0 {
		return 0
	}
	return len(x.offsets) - 1
}

// Rows returns the total number of descriptor rows in the index.
func (x Index) Rows() int {
	if len(x.offsets) == 0 {
		return 0
	}
	return x.offsets[len(x.offsets)-1]
}

// Locate returns the training image holding the given row of the concatenated
// descriptor matrix and the row within that image's descriptors.
// Locate returns -1, -1 if row is out of range.
func (x Index) Locate(row int) (imgIdx, local int) {
	if row < 0 || row >= x.Rows() {
		return -1, -1
	}
	// First image whose end lies beyond row; empty images are skipped since
	// their start and end offsets are equal.
	i := sort.Search(x.Len(), func(i int) bool { return x.offsets[i+1] > row })
	return i, row - x.offsets[i]
}
