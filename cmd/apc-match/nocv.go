//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  nocv.go replaces the image pipeline when apc-match is built without the
  withcv tag, in which case every run fails.

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
	"errors"
	"io"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/apc/config"
	"github.com/ausocean/apc/report"
)

var errNoCV = errors.New("apc-match was built without OpenCV support, rebuild with -tags withcv")

// process fails with errNoCV.
func process(cfg config.Config, log logging.Logger, out io.Writer) (*report.Summary, error) {
	return nil, errNoCV
}
