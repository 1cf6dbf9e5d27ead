// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package rawvideo reads and writes headerless streams of RGBA video frames,
// the format produced by "ffmpeg -f rawvideo -pix_fmt rgba".
//
// Each frame is width×height×4 bytes, rows top to bottom, with no padding
// between rows or frames. The frame size is not stored in the stream, so
// readers and writers must agree on it out of band.
//
// A stream may optionally be zstd compressed as a whole.
package rawvideo

import (
	"errors"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
)

var (
	ErrBadArgument   = errors.New("rawvideo: bad argument")
	ErrFrameTooLarge = errors.New("rawvideo: frame is too large")
	ErrShortFrame    = errors.New("rawvideo: short frame")
)

// maxFrameBytes bounds a single frame's size, 8K UHD with some slack.
const maxFrameBytes = 1 << 28

// Options are optional arguments to NewReader and NewWriter. The zero value is
// valid and means to use the default configuration.
type Options struct {
	// Zstd means that the stream is zstd compressed.
	Zstd bool
}

func frameBytes(width int, height int) (int, error) {
	if (width <= 0) || (height <= 0) {
		return 0, ErrBadArgument
	}
	if (width > maxFrameBytes/4) || (height > maxFrameBytes/(4*width)) {
		return 0, ErrFrameTooLarge
	}
	return 4 * width * height, nil
}

// Reader reads frames from a raw RGBA stream.
type Reader struct {
	r      io.Reader
	zdec   *zstd.Decoder
	width  int
	height int
	n      int
	frames uint64
}

// NewReader returns a Reader of width×height frames from r.
//
// options may be nil, which means to use the default configuration.
func NewReader(r io.Reader, width int, height int, options *Options) (*Reader, error) {
	if r == nil {
		return nil, ErrBadArgument
	}
	n, err := frameBytes(width, height)
	if err != nil {
		return nil, err
	}
	ret := &Reader{
		r:      r,
		width:  width,
		height: height,
		n:      n,
	}
	if (options != nil) && options.Zstd {
		zdec, err := zstd.NewReader(r,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			return nil, err
		}
		ret.r, ret.zdec = zdec, zdec
	}
	return ret, nil
}

// ReadFrame reads the next frame into dst, allocating a new image if dst is
// nil or the wrong size. It returns io.EOF, and a nil image, at a clean end of
// stream, and ErrShortFrame if the stream ends mid-frame.
func (r *Reader) ReadFrame(dst *image.RGBA) (*image.RGBA, error) {
	if (dst == nil) ||
		(dst.Rect != image.Rect(0, 0, r.width, r.height)) ||
		(dst.Stride != 4*r.width) {
		dst = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	}
	if _, err := io.ReadFull(r.r, dst.Pix[:r.n]); err == io.ErrUnexpectedEOF {
		return nil, ErrShortFrame
	} else if err != nil {
		return nil, err
	}
	r.frames++
	return dst, nil
}

// Frames returns the number of frames read so far.
func (r *Reader) Frames() uint64 {
	return r.frames
}

// Close releases any decompression resources. It does not close the
// underlying io.Reader.
func (r *Reader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
		r.zdec = nil
	}
	return nil
}

// Writer writes frames to a raw RGBA stream.
type Writer struct {
	w      io.Writer
	zenc   *zstd.Encoder
	width  int
	height int
	frames uint64
}

// NewWriter returns a Writer of width×height frames to w. Call Close to flush
// a compressed stream.
//
// options may be nil, which means to use the default configuration.
func NewWriter(w io.Writer, width int, height int, options *Options) (*Writer, error) {
	if w == nil {
		return nil, ErrBadArgument
	}
	if _, err := frameBytes(width, height); err != nil {
		return nil, err
	}
	ret := &Writer{
		w:      w,
		width:  width,
		height: height,
	}
	if (options != nil) && options.Zstd {
		zenc, err := zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedDefault),
		)
		if err != nil {
			return nil, err
		}
		ret.w, ret.zenc = zenc, zenc
	}
	return ret, nil
}

// WriteFrame writes src, which must be exactly width×height pixels.
func (w *Writer) WriteFrame(src *image.RGBA) error {
	if src == nil {
		return ErrBadArgument
	}
	b := src.Bounds()
	if (b.Dx() != w.width) || (b.Dy() != w.height) {
		return ErrBadArgument
	}

	if src.Stride == 4*w.width {
		i := src.PixOffset(b.Min.X, b.Min.Y)
		if _, err := w.w.Write(src.Pix[i : i+(4*w.width*w.height)]); err != nil {
			return err
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			if _, err := w.w.Write(src.Pix[i : i+(4*w.width)]); err != nil {
				return err
			}
		}
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() uint64 {
	return w.frames
}

// Close flushes a compressed stream. It does not close the underlying
// io.Writer.
func (w *Writer) Close() error {
	if w.zenc != nil {
		err := w.zenc.Close()
		w.zenc = nil
		return err
	}
	return nil
}
