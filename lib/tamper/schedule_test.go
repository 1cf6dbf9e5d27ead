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
	"testing"
)

func TestDimension(tt *testing.T) {
	testCases := []struct {
		frameW, viewW, squareSize int
		want                      int
	}{
		{1200, 1200, 3, 3},
		{1200, 2400, 3, 2},
		{1920, 1280, 3, 5},
		{640, 1920, 3, 1},
		{640, 3840, 3, 1},
		{640, 7680, 3, 0},
		{1200, 0, 3, 0},
		{0, 1200, 3, 0},
		{1200, 1200, 0, 0},
	}

	for _, tc := range testCases {
		if got := Dimension(tc.frameW, tc.viewW, tc.squareSize); got != tc.want {
			tt.Errorf("tc=%v: got %d, want %d", tc, got, tc.want)
		}
	}
}

func TestBuildSchedule(tt *testing.T) {
	const w, h = 1200, 800
	s := BuildSchedule(w, h, 1200, 900, 3)
	if len(s) != 9 {
		tt.Fatalf("len: got %d, want 9", len(s))
	}

	stride := 4 * w
	bottom := stride * (h - 1)
	want := Schedule{
		{0*stride + 0, bottom - 0*stride + 0},
		{0*stride + 4, bottom - 0*stride + 4},
		{0*stride + 8, bottom - 0*stride + 8},
		{1*stride + 0, bottom - 1*stride + 0},
		{1*stride + 4, bottom - 1*stride + 4},
		{1*stride + 8, bottom - 1*stride + 8},
		{2*stride + 0, bottom - 2*stride + 0},
		{2*stride + 4, bottom - 2*stride + 4},
		{2*stride + 8, bottom - 2*stride + 8},
	}
	for i := range want {
		if s[i] != want[i] {
			tt.Errorf("block %d: got %+v, want %+v", i, s[i], want[i])
		}
	}

	if s2 := BuildSchedule(w, h, 2400, 900, 3); len(s2) != 4 {
		tt.Errorf("doubled viewport: len got %d, want 4", len(s2))
	}
}

func TestBuildScheduleStaysInBounds(tt *testing.T) {
	testCases := []struct {
		frameW, frameH, viewW, viewH int
	}{
		{4, 4, 1, 1},
		{100, 3, 10, 10},
		{3, 100, 1, 1},
		{1920, 1080, 1920, 1080},
		{1920, 1080, 640, 360},
	}

	for _, tc := range testCases {
		s := BuildSchedule(tc.frameW, tc.frameH, tc.viewW, tc.viewH, 3)
		pix := make([]byte, 4*tc.frameW*tc.frameH)
		if !s.Fits(len(pix)) {
			tt.Errorf("tc=%v: schedule reaches outside the frame", tc)
		}

		// The tag and data bands never share a pixel.
		tags := map[int]bool{}
		for _, b := range s {
			tags[b.Tag] = true
		}
		for _, b := range s {
			if tags[b.Data] {
				tt.Errorf("tc=%v: offset %d is both tag and data", tc, b.Data)
				break
			}
		}
	}
}

func TestBuildScheduleDegenerate(tt *testing.T) {
	testCases := []struct {
		frameW, frameH, viewW, viewH, squareSize int
	}{
		{0, 0, 0, 0, 3},
		{640, 480, 0, 480, 3},
		{640, 480, 640, 0, 3},
		{640, 480, 100000, 480, 3},
		{640, 1, 640, 480, 3},
		{640, 480, 640, 480, 0},
	}

	for _, tc := range testCases {
		if s := BuildSchedule(tc.frameW, tc.frameH, tc.viewW, tc.viewH, tc.squareSize); len(s) != 0 {
			tt.Errorf("tc=%v: got %d blocks, want none", tc, len(s))
		}
	}
}

func TestFits(tt *testing.T) {
	s := Schedule{{Tag: 0, Data: 12}}
	if !s.Fits(15) {
		tt.Errorf("Fits(15): got false, want true")
	}
	if s.Fits(14) {
		tt.Errorf("Fits(14): got true, want false")
	}
	if (Schedule{{Tag: -4, Data: 0}}).Fits(100) {
		tt.Errorf("negative offset: got true, want false")
	}
}

func TestLetterbox(tt *testing.T) {
	testCases := []struct {
		frameW, frameH, viewW, viewH int
		want                         image.Rectangle
	}{
		// Pillarboxed: the viewport is wider than the frame.
		{640, 480, 1600, 900, image.Rect(200, 0, 1400, 900)},
		// Letterboxed: the viewport is taller than the frame.
		{1920, 1080, 1000, 1000, image.Rect(0, 218, 1000, 781)},
		// Exact fit.
		{1280, 720, 1280, 720, image.Rect(0, 0, 1280, 720)},
		{0, 720, 1280, 720, image.Rectangle{}},
	}

	for _, tc := range testCases {
		if got := Letterbox(tc.frameW, tc.frameH, tc.viewW, tc.viewH); got != tc.want {
			tt.Errorf("tc=%v: got %v, want %v", tc, got, tc.want)
		}
	}
}
