// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package tamper

// SymbolOf returns the symbol carried by a pixel: the sum of its red, green
// and blue channels, modulo 64.
func SymbolOf(r uint8, g uint8, b uint8) uint8 {
	return uint8((uint32(r) + uint32(g) + uint32(b)) & 63)
}

// Solve returns the pixel closest to px whose channel sum is congruent to
// target, modulo 64.
//
// Candidate changes x to the channel sum are tried in order of increasing
// |x|. Each is spread as evenly as possible over three channels, falling back
// to two and then one channel when spreading would push a channel outside
// [0, 255].
//
// ok is false when no candidate fits within the channel bounds. The original
// pixel is returned in that case.
func Solve(px [3]uint8, target uint8) (ret [3]uint8, ok bool) {
	target &= 63
	sum := int32(px[0]) + int32(px[1]) + int32(px[2])

	// Within [-63, +63] there are two candidates, x0-64 and x0, with x0 in
	// [1, 63]. When x0 would be zero, the pixel already carries target. Ties
	// on |x| go to the negative candidate.
	x0 := (int32(target) - sum) & 63
	if x0 == 0 {
		return px, true
	}
	candidates := [2]int32{x0 - 64, x0}
	if x0 < (64 - x0) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, x := range candidates {
		if ret, ok := distribute(px, x); ok {
			return ret, true
		}
	}
	return px, false
}

// distribute adds x to the sum of px's channels. The first unfixed channel
// takes the quotient plus the remainder and the others take the quotient. A
// channel that overflows is fixed at its original value and the split is
// retried over one fewer channel.
func distribute(px [3]uint8, x int32) (ret [3]uint8, ok bool) {
	fixed := [3]bool{}
	for d := int32(3); d > 0; d-- {
		// Go's integer division truncates toward zero, so q*d + r == x.
		q, r := x/d, x%d
		overflowed := false
		for c := range 3 {
			if fixed[c] {
				ret[c] = px[c]
				continue
			}
			v := int32(px[c]) + q + r
			r = 0
			if (v < 0) || (v > 255) {
				fixed[c] = true
				overflowed = true
				break
			}
			ret[c] = uint8(v)
		}
		if !overflowed {
			return ret, true
		}
	}
	return px, false
}
