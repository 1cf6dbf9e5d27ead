// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package watermark converts a short payload to and from a fixed-length,
// cyclic sequence of 6-bit symbols.
//
// Each symbol is the index of a character in the standard base64 alphabet
// ("A-Z a-z 0-9 + /"). The payload is base64 encoded without padding and the
// resulting indexes are left-aligned in a capacity-length array, the unused
// tail being zero (the index of 'A').
package watermark

import (
	"encoding/base64"
	"errors"
)

var (
	ErrBadArgument      = errors.New("watermark: bad argument")
	ErrCapacityExceeded = errors.New("watermark: capacity exceeded")
	ErrIncomplete       = errors.New("watermark: incomplete")
)

const (
	// DefaultCapacity is the number of symbols in a Watermark when no other
	// capacity is configured.
	DefaultCapacity = 32

	// MaxCapacity is the largest capacity whose symbol indexes still fit in a
	// 6-bit symbol.
	MaxCapacity = 64

	// Alphabet maps symbol values to base64 characters.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

var alphabetIndex = func() (ret [256]int8) {
	for i := range ret {
		ret[i] = -1
	}
	for i := range len(Alphabet) {
		ret[Alphabet[i]] = int8(i)
	}
	return ret
}()

// Watermark is an immutable sequence of 6-bit symbols. The zero value is an
// empty Watermark.
type Watermark struct {
	symbols []uint8
}

// Encode returns the capacity-length Watermark for payload.
//
// It returns ErrCapacityExceeded, and no partial Watermark, if payload needs
// more than capacity symbols.
func Encode(payload []byte, capacity int) (Watermark, error) {
	if (capacity <= 0) || (capacity > MaxCapacity) {
		return Watermark{}, ErrBadArgument
	}
	if base64.RawStdEncoding.EncodedLen(len(payload)) > capacity {
		return Watermark{}, ErrCapacityExceeded
	}

	encoded := base64.RawStdEncoding.EncodeToString(payload)
	symbols := make([]uint8, capacity)
	for i := range len(encoded) {
		symbols[i] = uint8(alphabetIndex[encoded[i]])
	}
	return Watermark{symbols: symbols}, nil
}

// Len returns the Watermark's capacity.
func (w Watermark) Len() int {
	return len(w.symbols)
}

// Symbol returns the i'th symbol. It panics if i is out of range, like a
// slice index.
func (w Watermark) Symbol(i int) uint8 {
	return w.symbols[i]
}

// Symbols returns a copy of the Watermark's symbols.
func (w Watermark) Symbols() []uint8 {
	return append([]uint8(nil), w.symbols...)
}

// String returns the Watermark's symbols as base64 characters, including the
// trailing 'A' padding.
func (w Watermark) String() string {
	b := make([]byte, len(w.symbols))
	for i, s := range w.symbols {
		b[i] = Alphabet[s&0x3F]
	}
	return string(b)
}

// Decode is the inverse of Encode. Trailing zero symbols are treated as
// padding, so a payload whose encoding itself ends in 'A' characters does not
// survive the round trip exactly.
func Decode(symbols []uint8) ([]byte, error) {
	n := len(symbols)
	for (n > 0) && (symbols[n-1] == 0) {
		n--
	}
	// A base64 string can't be 1 mod 4 long. Restore one stripped zero.
	if (n & 3) == 1 {
		n++
	}

	b := make([]byte, n)
	for i := range n {
		s := uint8(0)
		if i < len(symbols) {
			s = symbols[i]
		}
		if s >= 64 {
			return nil, ErrBadArgument
		}
		b[i] = Alphabet[s]
	}
	return base64.RawStdEncoding.DecodeString(string(b))
}
