//go:build withcv
// +build withcv

/*
DESCRIPTION
  cv.go runs the image pipeline with OpenCV.

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

package main

import (
	"io"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/apc/config"
	"github.com/ausocean/apc/pipeline"
	"github.com/ausocean/apc/report"
)

// process runs the pipeline stages of cfg.Mode.
func process(cfg config.Config, log logging.Logger, out io.Writer) (*report.Summary, error) {
	return pipeline.Run(cfg, log, out)
}
