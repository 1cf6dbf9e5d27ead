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
	"math"
)

// Block is a pair of byte offsets into an RGBA frame's Pix slice. Each offset
// is that of a pixel's red channel.
//
// Tag pixels, in the frame's top band, carry a symbol's index. Data pixels, in
// the bottom band, carry the symbol's value.
type Block struct {
	Tag  int
	Data int
}

// Schedule is the ordered set of Blocks tampered with in every frame. It is
// only valid for the frame geometry it was built for.
type Schedule []Block

// Dimension returns the side length, in frame pixels, of the square that
// covers squareSize viewport pixels when a frameW-wide frame is shown
// viewW pixels wide.
//
// It returns zero for non-positive arguments.
func Dimension(frameW int, viewW int, squareSize int) int {
	if (frameW <= 0) || (viewW <= 0) || (squareSize <= 0) {
		return 0
	}
	return int(math.Round(float64(squareSize) * float64(frameW) / float64(viewW)))
}

// BuildSchedule returns the Schedule for a frameW×frameH frame shown in a
// viewW×viewH viewport.
//
// The tag square grows rightwards and downwards from the frame's top-left
// pixel. The data square grows rightwards and upwards from the bottom-left
// pixel, mirroring it. Both are Dimension(frameW, viewW, squareSize) pixels
// wide, clamped so that they stay within the frame and do not overlap.
func BuildSchedule(frameW int, frameH int, viewW int, viewH int, squareSize int) Schedule {
	if (frameH <= 0) || (viewH <= 0) {
		return nil
	}
	dim := min(Dimension(frameW, viewW, squareSize), frameW, frameH/2)
	if dim <= 0 {
		return nil
	}

	stride := 4 * frameW
	tag := 0
	data := stride * (frameH - 1)

	s := make(Schedule, 0, dim*dim)
	for range dim {
		for x := range dim {
			s = append(s, Block{
				Tag:  tag + (4 * x),
				Data: data + (4 * x),
			})
		}
		tag += stride
		data -= stride
	}
	return s
}

// Fits returns whether every offset in s addresses a whole pixel within a
// Pix slice of length n.
func (s Schedule) Fits(n int) bool {
	for _, b := range s {
		if !fits(b.Tag, n) || !fits(b.Data, n) {
			return false
		}
	}
	return true
}

func fits(offset int, n int) bool {
	return (offset >= 0) && (offset+3 <= n)
}

// Letterbox returns the rectangle, in viewport pixels, that a frameW×frameH
// frame occupies when scaled to fit inside a viewW×viewH viewport while
// keeping its aspect ratio, centered on the other axis.
func Letterbox(frameW int, frameH int, viewW int, viewH int) image.Rectangle {
	if (frameW <= 0) || (frameH <= 0) || (viewW <= 0) || (viewH <= 0) {
		return image.Rectangle{}
	}

	// Fit to the viewport's height first. If that's too wide, fit to its
	// width instead.
	w := int(math.Round(float64(frameW) * float64(viewH) / float64(frameH)))
	if w > viewW {
		h := int(math.Round(float64(frameH) * float64(viewW) / float64(frameW)))
		y := (viewH - h) / 2
		return image.Rect(0, y, viewW, y+h)
	}
	x := (viewW - w) / 2
	return image.Rect(x, 0, x+w, viewH)
}
