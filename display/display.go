//go:build withcv
// +build withcv

/*
DESCRIPTION
  display.go shows intermediate and final pipeline images in a window for
  visual inspection.

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

// Package display shows images in a resizable window.
package display

import (
	"time"

	"gocv.io/x/gocv"
)

// Window names.
const (
	SourceWindow = "Source Image"
	ResultWindow = "Result Image"
)

// Display is a window that images are shown in. A nil *Display is valid and
// shows nothing, so callers need not check whether display is enabled.
type Display struct {
	w *gocv.Window
}

// New opens a resizable window with the given name.
func New(name string) *Display {
	w := gocv.NewWindow(name)
	w.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowNormal)
	return &Display{w: w}
}

// Show shows img without waiting.
func (d *Display) Show(img gocv.Mat) {
	if d == nil || img.Empty() {
		return
	}
	d.w.IMShow(img)
	d.w.WaitKey(1)
}

// ShowAll shows each non-empty image in turn for the given delay. Delays
// under a millisecond are rounded up so that ShowAll never blocks on a key.
func (d *Display) ShowAll(imgs []gocv.Mat, delay time.Duration) {
	if d == nil {
		return
	}
	ms := int(delay / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	for _, img := range imgs {
		if img.Empty() {
			continue
		}
		d.w.IMShow(img)
		d.w.WaitKey(ms)
	}
}

// Wait blocks until a key is pressed in the window.
func (d *Display) Wait() {
	if d == nil {
		return
	}
	d.w.WaitKey(0)
}

// Close closes the window.
func (d *Display) Close() error {
	if d == nil {
		return nil
	}
	return d.w.Close()
}
