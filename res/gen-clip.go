// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build ignore

// This program writes clip.160x120.rgba.zst, a short synthetic video for
// trying out "framemark embed" and "framemark extract" by hand:
//
//	go run gen-clip.go
//	framemark embed -p hello --size 160x120 --zstd clip.160x120.rgba.zst > marked.zst
//	framemark extract --size 160x120 --zstd marked.zst
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/nigeltao/framemark/lib/rawvideo"
)

const (
	width, height = 160, 120
	numFrames     = 96
	filename      = "clip.160x120.rgba.zst"
)

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	f, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return fmt.Errorf("opentype.Parse: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    48,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("opentype.NewFace: %v", err)
	}

	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("os.Create: %v", err)
	}
	defer out.Close()
	w, err := rawvideo.NewWriter(out, width, height, &rawvideo.Options{Zstd: true})
	if err != nil {
		return fmt.Errorf("rawvideo.NewWriter: %v", err)
	}

	for i := range numFrames {
		if err := w.WriteFrame(render(face, i)); err != nil {
			return fmt.Errorf("rawvideo.WriteFrame: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("rawvideo.Close: %v", err)
	}
	return out.Close()
}

// render draws frame i: a drifting radial glow behind the frame number. The
// corners stay busy, so that embedding has real texture to work with.
func render(face font.Face, i int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	cx := 80 + 50*math.Cos(float64(i)*2*math.Pi/numFrames)
	cy := 60 + 40*math.Sin(float64(i)*2*math.Pi/numFrames)
	for y := range height {
		dy := float64(y) - cy
		for x := range width {
			dx := float64(x) - cx
			distance := math.Sqrt((dx * dx) + (dy * dy))
			v := 0xFF - uint8(max(0, min(0xFF, 2*distance)))
			m.SetRGBA(x, y, color.RGBA{v, uint8(x + i), uint8(y ^ i), 0xFF})
		}
	}

	digits := image.NewRGBA(m.Bounds())
	d := font.Drawer{
		Dst:  digits,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(40, 80),
	}
	d.DrawString(fmt.Sprintf("%02d", i))
	draw.DrawMask(m, m.Bounds(), image.Black, image.Point{}, digits, image.Point{}, draw.Over)
	return m
}
