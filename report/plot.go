/*
DESCRIPTION
  plot.go draws a chart of the matches of each training image.

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

package report

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ChartName is the file name of the chart written by the pipeline.
const ChartName = "match_report.png"

const barWidth = 12 * vg.Millimeter

// ErrNoMatches is returned by Plot when the summary holds no training images.
var ErrNoMatches = errors.New("no training images to plot")

// Plot saves a bar chart of the relative match count and relative mean match
// distance of each training image to a PNG file at path.
func Plot(path string, s *Summary) error {
	if len(s.Matches) == 0 {
		return ErrNoMatches
	}

	names := make([]string, len(s.Matches))
	counts := make([]float64, len(s.Matches))
	dists := make([]float64, len(s.Matches))
	for i, m := range s.Matches {
		names[i] = m.Name
		counts[i] = float64(m.Count)
		dists[i] = m.MeanDistance
	}

	return plotToFile(path, "Matches per training image", "Training image", "Relative score",
		func(p *plot.Plot) error {
			for i, series := range []struct {
				name string
				vals []float64
			}{
				{name: "Matches", vals: normalize(counts)},
				{name: "Mean distance", vals: normalize(dists)},
			} {
				bars, err := plotter.NewBarChart(plotter.Values(series.vals), barWidth)
				if err != nil {
					return fmt.Errorf("could not create %s bars: %w", series.name, err)
				}
				bars.LineStyle.Width = vg.Length(0)
				bars.Color = plotutil.Color(i)
				bars.Offset = vg.Length(2*i-1) * barWidth / 2
				p.Add(bars)
				p.Legend.Add(series.name, bars)
			}
			p.Legend.Top = true
			p.NominalX(names...)
			return nil
		},
	)
}

// normalize normalises the values in the given slice to the range [0,1]
// inclusive. A slice of equal values normalises to all ones.
func normalize(s []float64) []float64 {
	max := -math.MaxFloat64
	min := math.MaxFloat64
	out := make([]float64, len(s))

	if len(s) == 0 {
		return out
	}

	// Find the max and min values of s.
	for i := range s {
		if s[i] > max {
			max = s[i]
		}
		if s[i] < min {
			min = s[i]
		}
	}

	for i := range s {
		if max == min {
			out[i] = 1
			continue
		}
		out[i] = (s[i] - min) / (max - min)
	}
	return out
}

// plotToFile creates a plot with the given title and axis titles using the
// provided draw function, and then saves it as a PNG file at path.
func plotToFile(path, title, xTitle, yTitle string, draw func(*plot.Plot) error) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xTitle
	p.Y.Label.Text = yTitle
	err := draw(p)
	if err != nil {
		return fmt.Errorf("could not draw plot contents: %w", err)
	}
	if err := p.Save(15*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}
