// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package tamper

import (
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/nigeltao/framemark/lib/watermark"
)

// Embedder tampers with a sequence of frames, one Watermark symbol per frame.
//
// It holds the Schedule for the current frame and viewport geometry and the
// Cursor. Call Resize whenever either geometry changes and Frame once per
// displayed frame. An Embedder is not safe for concurrent use.
type Embedder struct {
	wm      watermark.Watermark
	options Options
	logger  hclog.Logger

	frameW, frameH int
	viewW, viewH   int
	schedule       Schedule
	cursor         Cursor
	frames         uint64
}

// NewEmbedder returns an Embedder for w. w's length must match the configured
// capacity.
//
// options may be nil, which means to use the default configuration.
func NewEmbedder(w watermark.Watermark, options *Options) (*Embedder, error) {
	if (w.Len() == 0) || (w.Len() != options.capacity()) {
		return nil, ErrBadArgument
	}
	e := &Embedder{
		wm:     w,
		logger: options.logger(),
	}
	if options != nil {
		e.options = *options
	}
	return e, nil
}

// Resize rebuilds the Schedule for a frameW×frameH frame shown in a
// viewW×viewH viewport. The new Schedule replaces the old one only once it is
// complete.
func (e *Embedder) Resize(frameW int, frameH int, viewW int, viewH int) {
	s := BuildSchedule(frameW, frameH, viewW, viewH, e.options.squareSize())
	e.frameW, e.frameH = frameW, frameH
	e.viewW, e.viewH = viewW, viewH
	e.schedule = s

	if e.logger.IsDebug() {
		e.logger.Debug("schedule rebuilt",
			"frame", image.Pt(frameW, frameH),
			"viewport", image.Pt(viewW, viewH),
			"display", Letterbox(frameW, frameH, viewW, viewH),
			"blocks", len(s),
		)
	}
}

// Schedule returns the current Schedule. Callers must not modify it.
func (e *Embedder) Schedule() Schedule {
	return e.schedule
}

// Cursor returns the index of the symbol that the next frame will carry.
func (e *Embedder) Cursor() Cursor {
	return e.cursor
}

// Frame tampers with m in place and advances the Cursor.
//
// m must be exactly as large as the last Resize said, with no padding between
// rows, unless the AutoResize option is set, in which case a differently
// sized frame triggers a Resize using the last viewport.
func (e *Embedder) Frame(m *image.RGBA) (Stats, error) {
	if m == nil {
		return Stats{}, ErrBadArgument
	}
	b := m.Bounds()
	if m.Stride != 4*b.Dx() {
		return Stats{}, ErrBadFrame
	}
	if (b.Dx() != e.frameW) || (b.Dy() != e.frameH) {
		if !e.options.AutoResize {
			return Stats{}, ErrBadFrame
		}
		e.Resize(b.Dx(), b.Dy(), e.viewW, e.viewH)
	}

	cursor := e.cursor
	next, stats := Tamper(m.Pix, e.schedule, e.wm, cursor, &e.options)
	e.cursor = next
	e.frames++

	if stats.Unsolved > 0 {
		e.logger.Debug("pixels left unsolved",
			"frame", e.frames,
			"cursor", int(cursor),
			"unsolved", stats.Unsolved,
		)
	}
	return stats, nil
}
