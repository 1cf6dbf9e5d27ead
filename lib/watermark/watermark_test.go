// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package watermark

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncode(tt *testing.T) {
	testCases := []struct {
		payload  string
		capacity int
		want     []uint8
	}{
		{"", 4, []uint8{0, 0, 0, 0}},
		{"AB", 4, []uint8{16, 20, 8, 0}},
		{"AB", 3, []uint8{16, 20, 8}},
		{"Man", 4, []uint8{19, 22, 5, 46}},
		{"\xFF\xFF\xFF", 6, []uint8{63, 63, 63, 63, 0, 0}},
		{"\xFB\xEF", 3, []uint8{62, 62, 60}},
	}

	for _, tc := range testCases {
		w, err := Encode([]byte(tc.payload), tc.capacity)
		if err != nil {
			tt.Errorf("tc=%q: Encode: %v", tc.payload, err)
			continue
		}
		if got := w.Symbols(); !bytes.Equal(got, tc.want) {
			tt.Errorf("tc=%q: got %v, want %v", tc.payload, got, tc.want)
		}
		if w.Len() != tc.capacity {
			tt.Errorf("tc=%q: Len: got %d, want %d", tc.payload, w.Len(), tc.capacity)
		}
	}
}

func TestEncodeMatchesAlphabet(tt *testing.T) {
	payloads := []string{
		"",
		"a",
		"hello",
		"user-1234@example",
		"\x00\x01\x02\x03\xFE",
		strings.Repeat("z", 24),
	}

	for _, p := range payloads {
		w, err := Encode([]byte(p), DefaultCapacity)
		if err != nil {
			tt.Errorf("tc=%q: Encode: %v", p, err)
			continue
		}
		encoded := strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(p)), "=")
		for i := range w.Len() {
			want := uint8(0)
			if i < len(encoded) {
				want = uint8(strings.IndexByte(Alphabet, encoded[i]))
			}
			if got := w.Symbol(i); got != want {
				tt.Errorf("tc=%q: symbol %d: got %d, want %d", p, i, got, want)
			}
			if w.Symbol(i) >= 64 {
				tt.Errorf("tc=%q: symbol %d out of range: %d", p, i, w.Symbol(i))
			}
		}
	}
}

func TestEncodeCapacityExceeded(tt *testing.T) {
	testCases := []struct {
		payload  string
		capacity int
	}{
		{"AB", 2},
		{"a", 1},
		{strings.Repeat("z", 25), DefaultCapacity},
		{strings.Repeat("z", 100), MaxCapacity},
	}

	for _, tc := range testCases {
		w, err := Encode([]byte(tc.payload), tc.capacity)
		if !errors.Is(err, ErrCapacityExceeded) {
			tt.Errorf("tc=%q: got %v, want ErrCapacityExceeded", tc.payload, err)
		}
		if w.Len() != 0 {
			tt.Errorf("tc=%q: got a %d symbol Watermark, want none", tc.payload, w.Len())
		}
	}
}

func TestEncodeBadCapacity(tt *testing.T) {
	for _, capacity := range []int{-1, 0, MaxCapacity + 1} {
		if _, err := Encode([]byte("x"), capacity); !errors.Is(err, ErrBadArgument) {
			tt.Errorf("capacity=%d: got %v, want ErrBadArgument", capacity, err)
		}
	}
}

func TestString(tt *testing.T) {
	w, err := Encode([]byte("AB"), 6)
	if err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	if got, want := w.String(), "QUIAAA"; got != want {
		tt.Errorf("got %q, want %q", got, want)
	}
}

func TestDecode(tt *testing.T) {
	testCases := []string{
		"AB",
		"Man",
		"hello, world",
		"x",
		"\xFF",
		strings.Repeat("q", 24),
	}

	for _, tc := range testCases {
		w, err := Encode([]byte(tc), DefaultCapacity)
		if err != nil {
			tt.Errorf("tc=%q: Encode: %v", tc, err)
			continue
		}
		got, err := Decode(w.Symbols())
		if err != nil {
			tt.Errorf("tc=%q: Decode: %v", tc, err)
			continue
		}
		if string(got) != tc {
			tt.Errorf("tc=%q: got %q", tc, got)
		}
	}
}

func TestDecodeBadSymbol(tt *testing.T) {
	if _, err := Decode([]uint8{1, 64, 3}); !errors.Is(err, ErrBadArgument) {
		tt.Errorf("got %v, want ErrBadArgument", err)
	}
}

func TestCollector(tt *testing.T) {
	w, err := Encode([]byte("hidden"), 8)
	if err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	c, err := NewCollector(8)
	if err != nil {
		tt.Fatalf("NewCollector: %v", err)
	}

	if _, err := c.Payload(); !errors.Is(err, ErrIncomplete) {
		tt.Fatalf("Payload before any Add: got %v, want ErrIncomplete", err)
	}

	// Out-of-order and repeated observations, as from a stream joined mid-cycle.
	order := []int{5, 6, 7, 0, 1, 1, 2, 3, 4}
	for i, index := range order {
		if !c.Add(uint8(index), w.Symbol(index)) {
			tt.Fatalf("Add(%d) rejected", index)
		}
		if (i < len(order)-1) && c.Complete() {
			tt.Fatalf("Complete after %d observations", i+1)
		}
	}
	if !c.Complete() || (c.Known() != 8) {
		tt.Fatalf("Complete: got %v (Known %d), want true (8)", c.Complete(), c.Known())
	}

	if c.Add(8, 0) || c.Add(0, 64) {
		tt.Errorf("Add accepted an out-of-range observation")
	}

	got, err := c.Payload()
	if err != nil {
		tt.Fatalf("Payload: %v", err)
	}
	if string(got) != "hidden" {
		tt.Errorf("Payload: got %q, want %q", got, "hidden")
	}
}
