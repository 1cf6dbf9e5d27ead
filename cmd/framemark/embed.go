// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/nigeltao/framemark/internal/nie"
	"github.com/nigeltao/framemark/lib/rawvideo"
	"github.com/nigeltao/framemark/lib/tamper"
	"github.com/nigeltao/framemark/lib/watermark"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrBadFormatFlag = errors.New("main: bad --format flag")

type embedSettings struct {
	settings
	payload string
	demo    bool
	format  string
	cursor  int
}

func newEmbedCmd(newLogger func(*cobra.Command) hclog.Logger) *cobra.Command {
	s := &embedSettings{}
	cmd := &cobra.Command{
		Use:   "embed [path]",
		Short: "Embed a watermark into a raw RGBA stream or a still image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmbed(cmd, args, s, newLogger(cmd))
		},
	}
	addSharedFlags(cmd, &s.settings)
	cmd.Flags().StringVarP(&s.payload, "payload", "p", "", "data to embed (required)")
	cmd.Flags().BoolVar(&s.demo, "demo", false, "paint the tampered squares white instead of embedding")
	cmd.Flags().StringVar(&s.format, "format", "png", "still image output format: png or nie-bp4")
	cmd.Flags().IntVar(&s.cursor, "cursor", 0, "still image only: which watermark symbol to embed")
	if err := cmd.MarkFlagRequired("payload"); err != nil {
		panic(err)
	}
	return cmd
}

func runEmbed(cmd *cobra.Command, args []string, s *embedSettings, logger hclog.Logger) error {
	wm, err := watermark.Encode([]byte(s.payload), s.capacity)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	logger.Debug("watermark", "symbols", wm.String())

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	options := s.options(logger)
	options.VisualizationOnly = s.demo

	if s.size == "" {
		return embedStill(cmd.OutOrStdout(), in, wm, s, options)
	}
	return embedStream(cmd.OutOrStdout(), in, wm, s, options, logger)
}

func embedStream(out io.Writer, in io.Reader, wm watermark.Watermark, s *embedSettings, options *tamper.Options, logger hclog.Logger) error {
	w, h, err := parseSize(s.size)
	if err != nil {
		return err
	}
	viewW, viewH, err := s.viewportFor(w, h)
	if err != nil {
		return err
	}

	rawOptions := &rawvideo.Options{Zstd: s.zstd}
	r, err := rawvideo.NewReader(in, w, h, rawOptions)
	if err != nil {
		return err
	}
	defer r.Close()
	rw, err := rawvideo.NewWriter(out, w, h, rawOptions)
	if err != nil {
		return err
	}

	e, err := tamper.NewEmbedder(wm, options)
	if err != nil {
		return err
	}
	e.Resize(w, h, viewW, viewH)
	if len(e.Schedule()) == 0 {
		logger.Warn("viewport too large for the frame, nothing will be embedded",
			"frame", s.size, "viewport", image.Pt(viewW, viewH))
	}

	total := tamper.Stats{}
	var m *image.RGBA
	for {
		m, err = r.ReadFrame(m)
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("embed: frame %d: %w", r.Frames(), err)
		}
		stats, err := e.Frame(m)
		if err != nil {
			return fmt.Errorf("embed: frame %d: %w", r.Frames(), err)
		}
		total.Add(stats)
		if err := rw.WriteFrame(m); err != nil {
			return err
		}
	}
	if err := rw.Close(); err != nil {
		return err
	}

	logger.Info("embedded",
		"frames", rw.Frames(),
		"blocks", len(e.Schedule()),
		"changed", total.Changed,
		"unsolved", total.Unsolved,
	)
	return nil
}

func embedStill(out io.Writer, in io.Reader, wm watermark.Watermark, s *embedSettings, options *tamper.Options) error {
	switch s.format {
	case "", "png", "nie-bp4":
		// No-op.
	default:
		return ErrBadFormatFlag
	}
	if (s.cursor < 0) || (s.cursor >= wm.Len()) {
		return fmt.Errorf("embed: --cursor must be in [0, %d)", wm.Len())
	}

	src, _, err := image.Decode(in)
	if err != nil {
		return err
	}
	b := src.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)

	viewW, viewH, err := s.viewportFor(b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	sched := tamper.BuildSchedule(b.Dx(), b.Dy(), viewW, viewH, s.squareSize)
	tamper.Tamper(m.Pix, sched, wm, tamper.Cursor(s.cursor), options)

	if s.format == "nie-bp4" {
		enc, err := nie.EncodeBP4(m)
		if err != nil {
			return err
		}
		_, err = out.Write(enc)
		return err
	}
	return png.Encode(out, m)
}
