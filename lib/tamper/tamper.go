// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package tamper embeds a watermark into RGBA video frames.
//
// Every frame carries one symbol of the watermark, repeated over a small
// square of pixels. A tag pixel at the top of the frame carries the symbol's
// index and the matching data pixel at the bottom carries its value. In both
// cases the carried number is the pixel's R+G+B sum, modulo 64, and the pixel
// is changed as little as possible to make that sum come out right.
//
// The square is sized in viewport pixels, not frame pixels, so that it stays
// the same size on screen whatever the video's resolution.
package tamper

import (
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/nigeltao/framemark/lib/watermark"
)

var (
	ErrBadArgument = errors.New("tamper: bad argument")
	ErrBadFrame    = errors.New("tamper: bad frame")
)

// DefaultSquareSize is the side length, in viewport pixels, of the tampered
// square when no other size is configured.
const DefaultSquareSize = 3

// Options are optional arguments to Tamper and NewEmbedder. The zero value is
// valid and means to use the default configuration.
type Options struct {
	// Capacity is the Watermark length the Embedder expects. If zero, the
	// default is watermark.DefaultCapacity.
	Capacity int

	// SquareSize is the side length, in viewport pixels, of the tampered
	// square. If zero, the default is DefaultSquareSize.
	SquareSize int

	// VisualizationOnly paints every scheduled pixel white instead of
	// encoding anything, which makes the squares easy to spot.
	VisualizationOnly bool

	// AutoResize makes an Embedder rebuild its Schedule when handed a frame
	// whose size differs from the last Resize, keeping the last viewport.
	// Otherwise such frames are rejected with ErrBadFrame.
	AutoResize bool

	// Logger receives debug reports of pixels that could not be solved. If
	// nil, nothing is logged.
	Logger hclog.Logger
}

func (o *Options) capacity() int {
	if (o != nil) && (o.Capacity > 0) {
		return o.Capacity
	}
	return watermark.DefaultCapacity
}

func (o *Options) squareSize() int {
	if (o != nil) && (o.SquareSize > 0) {
		return o.SquareSize
	}
	return DefaultSquareSize
}

func (o *Options) visualizationOnly() bool {
	return (o != nil) && o.VisualizationOnly
}

func (o *Options) logger() hclog.Logger {
	if (o != nil) && (o.Logger != nil) {
		return o.Logger
	}
	return hclog.NewNullLogger()
}

// Cursor is the index of the Watermark symbol that the next frame carries.
type Cursor int

// Next returns the Cursor for the frame after c, wrapping at capacity.
func (c Cursor) Next(capacity int) Cursor {
	if capacity <= 0 {
		return 0
	}
	return Cursor((int(c) + 1) % capacity)
}

// Stats counts what a Tamper call did.
type Stats struct {
	// Pixels is the number of pixels solved for (two per Block).
	Pixels int

	// Changed is the number of pixels whose color was modified.
	Changed int

	// Unsolved is the number of pixels left unchanged because no bounded
	// color change could carry the symbol.
	Unsolved int

	// Skipped is the number of Blocks ignored because an offset fell outside
	// the frame.
	Skipped int
}

// Add accumulates t into s.
func (s *Stats) Add(t Stats) {
	s.Pixels += t.Pixels
	s.Changed += t.Changed
	s.Unsolved += t.Unsolved
	s.Skipped += t.Skipped
}

var white = [3]uint8{0xFF, 0xFF, 0xFF}

// Tamper writes symbol c of w into pix, an RGBA frame's Pix slice, at every
// Block in s. It returns the Cursor for the next frame.
//
// Only the red, green and blue channels of scheduled pixels are modified.
// Tamper never fails: pixels that can't be solved are left as they are, and
// Blocks outside pix are skipped. Both are counted in the returned Stats.
//
// options may be nil, which means to use the default configuration.
func Tamper(pix []byte, s Schedule, w watermark.Watermark, c Cursor, options *Options) (Cursor, Stats) {
	n := w.Len()
	if n == 0 {
		return 0, Stats{Skipped: len(s)}
	}
	if (c < 0) || (int(c) >= n) {
		c = Cursor(((int(c) % n) + n) % n)
	}

	demo := options.visualizationOnly()
	index, value := uint8(c), w.Symbol(int(c))
	stats := Stats{}
	for _, b := range s {
		if !fits(b.Tag, len(pix)) || !fits(b.Data, len(pix)) {
			stats.Skipped++
			continue
		}
		tamperPixel(pix[b.Tag:b.Tag+3], index, demo, &stats)
		tamperPixel(pix[b.Data:b.Data+3], value, demo, &stats)
	}
	return c.Next(n), stats
}

func tamperPixel(p []byte, target uint8, demo bool, stats *Stats) {
	stats.Pixels++
	px := [3]uint8{p[0], p[1], p[2]}

	q := white
	if !demo {
		ok := false
		if q, ok = Solve(px, target); !ok {
			stats.Unsolved++
			return
		}
	}

	if q != px {
		p[0], p[1], p[2] = q[0], q[1], q[2]
		stats.Changed++
	}
}
