//go:build withcv
// +build withcv

/*
DESCRIPTION
  run.go provides Run, which performs a pipeline run with OpenCV.

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

package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"

	"github.com/ausocean/apc/config"
	"github.com/ausocean/apc/display"
	"github.com/ausocean/apc/features"
	"github.com/ausocean/apc/imageset"
	"github.com/ausocean/apc/manifest"
	"github.com/ausocean/apc/rectify"
	"github.com/ausocean/apc/report"
	"github.com/ausocean/apc/results"
)

// Run performs the stages of cfg.Mode. Console diagnostics are written to out
// and everything else is logged. The returned summary holds whatever was
// done before an error, if any, stopped the run.
//
// The part 1 images are the training images. The query image, which is also
// the image that is rectified, is the first part 2 image that could be read.
func Run(cfg config.Config, log logging.Logger, out io.Writer) (*report.Summary, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	// Primitives are created before any work so that a bad name fails early.
	var p *features.Pipeline
	if cfg.Matches() {
		p, err = features.New(cfg.Detector, cfg.Extractor, cfg.Matcher)
		if err != nil {
			return nil, err
		}
		defer p.Close()
	}

	s := &report.Summary{}
	m1, part1, err := load(cfg.Part1, imageset.Gray, log, out)
	defer part1.Close()
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrPart1, err)
	}
	s.Part1Read = part1.Loaded()

	m2, part2, err := load(cfg.Part2, imageset.Color, log, out)
	defer part2.Close()
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrPart2, err)
	}
	s.Part2Read = part2.Loaded()

	var src *display.Display
	if cfg.Display {
		src = display.New(display.SourceWindow)
		defer src.Close()
	}
	src.ShowAll(part1, cfg.Delay)
	src.ShowAll(part2, cfg.Delay)

	if !cfg.Matches() {
		return s, nil
	}

	qi := first(part2)
	query := part2[qi]
	log.Info("matching", "query", m2.Path(qi), "training", len(part1), "detector", cfg.Detector, "extractor", cfg.Extractor, "matcher", cfg.Matcher)
	match(cfg, p, query, m1, part1, s, log, out)

	if cfg.Report {
		path := filepath.Join(cfg.OutputDir, report.ChartName)
		err = report.Plot(path, s)
		if err != nil {
			log.Warning("could not write match report", "path", path, "error", err.Error())
		}
	}

	if !cfg.Rectifies() {
		return s, nil
	}

	img, err := rect(query, s, log)
	defer img.Close()
	if err != nil {
		fmt.Fprintln(out, "Image can not be rectified.")
		return s, fmt.Errorf("%w: %w", ErrRectify, err)
	}

	err = rectify.Write(cfg.OutputDir, m2.Names[qi], img)
	if err != nil {
		log.Error("could not write rectified image", "error", err.Error())
		fmt.Fprintln(out, "Image can not be saved.")
	}

	if cfg.Display {
		res := display.New(display.ResultWindow)
		defer res.Close()
		res.Show(img)
		res.Wait()
	}
	return s, nil
}

// load reads the manifest at path and decodes its images. An unreadable
// manifest is treated as an empty one.
func load(path string, mode imageset.Mode, log logging.Logger, out io.Writer) (manifest.Manifest, imageset.Set, error) {
	fmt.Fprintln(out, openMark)
	defer fmt.Fprintln(out, closeMark)

	m, err := manifest.Read(path)
	if err != nil {
		log.Warning("could not read manifest", "path", path, "error", err.Error())
	}

	set, n, err := imageset.Load(m, mode, log)
	for i := range set {
		if set[i].Empty() {
			fmt.Fprintln(out, unreadable(m.Path(i)))
		}
	}
	fmt.Fprintln(out, loadMessage(n, err))
	log.Info("loaded images", "manifest", path, "mode", mode.String(), "read", n, "listed", m.Len())
	return m, set, err
}

// match matches the query image against the training images, writes the
// match visualisations and records per image match statistics in s.
func match(cfg config.Config, p *features.Pipeline, query gocv.Mat, m manifest.Manifest, train imageset.Set, s *report.Summary, log logging.Logger, out io.Writer) {
	q := p.Extract(query)
	defer q.Close()

	f := p.ComputeAll(train, p.DetectAll(train))
	defer func() {
		for i := range f {
			f[i].Close()
		}
	}()

	matches := p.Match(q.Descriptors, features.Descriptors(f))
	log.Debug("matched", "queryKeypoints", len(q.Keypoints), "matches", len(matches))
	fmt.Fprintf(out, "%d match(es) found.\n", len(matches))

	s.Matches = make([]report.ImageMatches, 0, len(train))
	for i := range train {
		s.Matches = append(s.Matches, report.NewImageMatches(m.Names[i], features.Distances(matches, i)))
	}
	s.Written = results.Write(cfg.OutputDir, query, q, train, f, matches, m.Names, log)
}

// rect locates the chessboard corners of src and warps it onto the canvas.
func rect(src gocv.Mat, s *report.Summary, log logging.Logger) (gocv.Mat, error) {
	corners, err := rectify.Corners(src, log)
	if err != nil {
		return gocv.NewMat(), err
	}
	s.Corners = len(corners)

	img, err := rectify.Rectify(src, corners)
	if err != nil {
		return img, err
	}
	s.Rectified = true
	return img, nil
}

// first returns the index of the first non-empty image of set. Callers
// ensure that there is one.
func first(set imageset.Set) int {
	for i := range set {
		if !set[i].Empty() {
			return i
		}
	}
	return 0
}
