// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package nie implements the NIE (Naive) image file format.
//
// It is an incomplete implementation (and hence an internal package), only
// providing the 4 bytes per pixel, premultiplied alpha variant, which holds an
// *image.RGBA frame losslessly. framemark uses it to dump single tampered
// frames without PNG's compression cost.
//
// NIE is specified at
// https://github.com/google/wuffs/blob/main/doc/spec/nie-spec.md
package nie

import (
	"errors"
	"image"
)

var (
	ErrBadArgument  = errors.New("nie: bad argument")
	ErrNotANIEFile  = errors.New("nie: not a NIE file")
	ErrUnsupported  = errors.New("nie: unsupported NIE variant")
	ErrTooLarge     = errors.New("nie: image is too large")
	ErrTruncatedNIE = errors.New("nie: truncated NIE file")
)

const headerSize = 16

var magicBP4 = [8]byte{0x6E, 0xC3, 0xAF, 0x45, 0xFF, 'b', 'p', '4'}

// maxDimension matches the NIE spec's 0x7FFFFFFF cap on width and height, but
// the pixel count is also bounded, so that decoding can't exhaust memory.
const (
	maxDimension = 0x7FFFFFFF
	maxPixels    = 1 << 26
)

// EncodeBP4 encodes m as a NIE file in BGRA order, premultiplied alpha, 4
// bytes per pixel.
func EncodeBP4(m *image.RGBA) ([]byte, error) {
	if m == nil {
		return nil, ErrBadArgument
	}
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if (w > maxDimension) || (h > maxDimension) {
		return nil, ErrTooLarge
	}

	ret := make([]byte, 0, headerSize+(4*w*h))
	ret = append(ret, magicBP4[:]...)
	ret = appendU32LE(ret, uint32(w))
	ret = appendU32LE(ret, uint32(h))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for row := m.Pix[i : i+(4*w)]; len(row) >= 4; row = row[4:] {
			ret = append(ret, row[2], row[1], row[0], row[3])
		}
	}
	return ret, nil
}

// DecodeBP4 is the inverse of EncodeBP4.
func DecodeBP4(src []byte) (*image.RGBA, error) {
	if len(src) < headerSize {
		return nil, ErrNotANIEFile
	}
	for i := range 5 {
		if src[i] != magicBP4[i] {
			return nil, ErrNotANIEFile
		}
	}
	if [3]byte(src[5:8]) != [3]byte(magicBP4[5:8]) {
		return nil, ErrUnsupported
	}

	w := readU32LE(src[8:])
	h := readU32LE(src[12:])
	if (w > maxDimension) || (h > maxDimension) ||
		((uint64(w) * uint64(h)) > maxPixels) {
		return nil, ErrTooLarge
	}
	n := 4 * int(w) * int(h)
	src = src[headerSize:]
	if len(src) < n {
		return nil, ErrTruncatedNIE
	}

	m := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for i := 0; i < n; i += 4 {
		m.Pix[i+0] = src[i+2]
		m.Pix[i+1] = src[i+1]
		m.Pix[i+2] = src[i+0]
		m.Pix[i+3] = src[i+3]
	}
	return m, nil
}

func appendU32LE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>0),
		uint8(u>>8),
		uint8(u>>16),
		uint8(u>>24),
	)
}

func readU32LE(b []byte) uint32 {
	return (uint32(b[0]) << 0) |
		(uint32(b[1]) << 8) |
		(uint32(b[2]) << 16) |
		(uint32(b[3]) << 24)
}
