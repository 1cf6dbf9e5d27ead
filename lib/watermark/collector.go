// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package watermark

// Collector reassembles a Watermark from (index, value) observations, such as
// those read back from tampered frames. Later observations of an index
// overwrite earlier ones.
type Collector struct {
	symbols []uint8
	seen    []bool
	count   int
}

// NewCollector returns a Collector for a Watermark of the given capacity.
func NewCollector(capacity int) (*Collector, error) {
	if (capacity <= 0) || (capacity > MaxCapacity) {
		return nil, ErrBadArgument
	}
	return &Collector{
		symbols: make([]uint8, capacity),
		seen:    make([]bool, capacity),
	}, nil
}

// Add records that symbol index holds value. It reports whether the
// observation was usable: index must be within capacity and value a 6-bit
// symbol.
func (c *Collector) Add(index uint8, value uint8) bool {
	if (int(index) >= len(c.symbols)) || (value >= 64) {
		return false
	}
	if !c.seen[index] {
		c.seen[index] = true
		c.count++
	}
	c.symbols[index] = value
	return true
}

// Known returns how many distinct indexes have been observed.
func (c *Collector) Known() int {
	return c.count
}

// Complete returns whether every index has been observed.
func (c *Collector) Complete() bool {
	return c.count == len(c.symbols)
}

// Watermark returns the collected Watermark, or ErrIncomplete.
func (c *Collector) Watermark() (Watermark, error) {
	if !c.Complete() {
		return Watermark{}, ErrIncomplete
	}
	return Watermark{symbols: append([]uint8(nil), c.symbols...)}, nil
}

// Payload decodes the collected Watermark, or returns ErrIncomplete.
func (c *Collector) Payload() ([]byte, error) {
	if !c.Complete() {
		return nil, ErrIncomplete
	}
	return Decode(c.symbols)
}
