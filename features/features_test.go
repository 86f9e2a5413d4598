/*
DESCRIPTION
  features_test.go tests primitive name validation, match masking and the
  training descriptor index.

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
	"reflect"
	"testing"
)

var validateTests = []struct {
	detector, extractor, matcher string
	want                         error
}{
	{detector: "SIFT", extractor: "SIFT", matcher: "BruteForce"},
	{detector: "SURF", extractor: "SIFT", matcher: "FlannBased"},
	{detector: "FAST", extractor: "ORB", matcher: "BruteForce-Hamming"},
	{detector: "SimpleBlob", extractor: "BRISK", matcher: "BruteForce-L1"},
	{detector: "Harris", extractor: "SIFT", matcher: "BruteForce", want: ErrUnknownDetector},
	{detector: "SIFT", extractor: "FAST", matcher: "BruteForce", want: ErrUnknownExtractor},
	{detector: "SIFT", extractor: "SIFT", matcher: "BruteForce-Hamming2", want: ErrUnknownMatcher},
	{detector: "sift", extractor: "SIFT", matcher: "BruteForce", want: ErrUnknownDetector},
	{detector: "", extractor: "", matcher: "", want: ErrUnknownDetector},
}

func TestValidateNames(t *testing.T) {
	for i, test := range validateTests {
		err := ValidateNames(test.detector, test.extractor, test.matcher)
		if !errors.Is(err, test.want) || (test.want == nil && err != nil) {
			t.Errorf("unexpected error for test %d (%s/%s/%s): got:%v want:%v",
				i, test.detector, test.extractor, test.matcher, err, test.want)
		}
	}
}

func TestDefaultsRegistered(t *testing.T) {
	err := ValidateNames(DefaultDetector, DefaultExtractor, DefaultMatcher)
	if err != nil {
		t.Errorf("defaults not registered: %v", err)
	}
}

func TestRegistryCopies(t *testing.T) {
	d := Detectors()
	d[0] = "changed"
	if Detectors()[0] == "changed" {
		t.Error("Detectors returned registry backing array")
	}
	if len(Extractors()) != len(extractorNames) || len(Matchers()) != len(matcherNames) {
		t.Error("unexpected registry lengths")
	}
}

func TestMask(t *testing.T) {
	matches := []Match{
		{QueryIdx: 0, TrainIdx: 3, ImgIdx: 1},
		{QueryIdx: 1, TrainIdx: 0, ImgIdx: 0},
		{QueryIdx: 2, TrainIdx: 7, ImgIdx: 1},
		{QueryIdx: 3, TrainIdx: 2, ImgIdx: 2},
	}
	tests := []struct {
		imgIdx int
		want   []byte
	}{
		{imgIdx: 0, want: []byte{0, 1, 0, 0}},
		{imgIdx: 1, want: []byte{1, 0, 1, 0}},
		{imgIdx: 2, want: []byte{0, 0, 0, 1}},
		{imgIdx: 3, want: []byte{0, 0, 0, 0}},
	}
	for _, test := range tests {
		got := Mask(matches, test.imgIdx)
		if len(got) != len(matches) {
			t.Errorf("mask length for image %d: got:%d want:%d", test.imgIdx, len(got), len(matches))
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("unexpected mask for image %d: got:%v want:%v", test.imgIdx, got, test.want)
		}
	}

	if got := Mask(nil, 0); len(got) != 0 {
		t.Errorf("expected empty mask for no matches, got %v", got)
	}
}

func TestDistances(t *testing.T) {
	matches := []Match{
		{ImgIdx: 0, Distance: 1.5},
		{ImgIdx: 1, Distance: 2},
		{ImgIdx: 0, Distance: 3},
	}
	got := Distances(matches, 0)
	want := []float64{1.5, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected distances: got:%v want:%v", got, want)
	}
	if Distances(matches, 4) != nil {
		t.Error("expected nil distances for image without matches")
	}
}

func TestIndexLocate(t *testing.T) {
	x := NewIndex([]int{3, 0, 2, 4})
	if x.Len() != 4 || x.Rows() != 9 {
		t.Fatalf("unexpected index size: len=%d rows=%d", x.Len(), x.Rows())
	}

	tests := []struct {
		row        int
		img, local int
	}{
		{row: 0, img: 0, local: 0},
		{row: 2, img: 0, local: 2},
		{row: 3, img: 2, local: 0},
		{row: 4, img: 2, local: 1},
		{row: 5, img: 3, local: 0},
		{row: 8, img: 3, local: 3},
		{row: 9, img: -1, local: -1},
		{row: -1, img: -1, local: -1},
	}
	for _, test := range tests {
		img, local := x.Locate(test.row)
		if img != test.img || local != test.local {
			t.Errorf("unexpected location for row %d: got:(%d,%d) want:(%d,%d)",
				test.row, img, local, test.img, test.local)
		}
	}

	var empty Index
	if empty.Len() != 0 || empty.Rows() != 0 {
		t.Error("expected zero sized empty index")
	}
	if img, _ := empty.Locate(0); img != -1 {
		t.Errorf("expected -1 for empty index, got %d", img)
	}
}
