// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package tamper

// maxSampleVariance is the largest sample variance, over a frame's tag or
// data pixels, for which that frame's reading is trusted. Lossy video codecs
// blur the square and frames straddling a symbol change are mixed.
const maxSampleVariance = 3

// Sample reads back the symbol index and value carried by pix, an RGBA
// frame's Pix slice, at the Blocks in s.
//
// ok is false if s is empty or reaches outside pix, or if the tag or data
// readings disagree too much to be trusted. Otherwise index and value are
// the most common tag and data readings.
func Sample(pix []byte, s Schedule) (index uint8, value uint8, ok bool) {
	if (len(s) == 0) || !s.Fits(len(pix)) {
		return 0, 0, false
	}

	tags := make([]uint8, len(s))
	data := make([]uint8, len(s))
	for i, b := range s {
		tags[i] = SymbolOf(pix[b.Tag+0], pix[b.Tag+1], pix[b.Tag+2])
		data[i] = SymbolOf(pix[b.Data+0], pix[b.Data+1], pix[b.Data+2])
	}

	if (variance(tags) >= maxSampleVariance) || (variance(data) >= maxSampleVariance) {
		return 0, 0, false
	}
	return mode(tags), mode(data), true
}

// variance returns the sample (n-1 denominator) variance of xs, or zero if
// there are fewer than two.
func variance(xs []uint8) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += float64(x)
	}
	mean /= float64(len(xs))

	ss := 0.0
	for _, x := range xs {
		d := float64(x) - mean
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}

// mode returns the most common element of xs, preferring the earliest on a
// tie.
func mode(xs []uint8) uint8 {
	counts := [64]int{}
	top := 0
	for _, x := range xs {
		counts[x&63]++
		top = max(top, counts[x&63])
	}
	for _, x := range xs {
		if counts[x&63] == top {
			return x & 63
		}
	}
	return 0
}
