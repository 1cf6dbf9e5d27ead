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
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/nigeltao/framemark/lib/rawvideo"
	"github.com/nigeltao/framemark/lib/tamper"
	"github.com/nigeltao/framemark/lib/watermark"
)

var ErrNoWatermark = errors.New("main: stream ended before the whole watermark was seen")

func newExtractCmd(newLogger func(*cobra.Command) hclog.Logger) *cobra.Command {
	s := &settings{}
	cmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Read a watermark back from a raw RGBA stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, s, newLogger(cmd))
		},
	}
	addSharedFlags(cmd, s)
	if err := cmd.MarkFlagRequired("size"); err != nil {
		panic(err)
	}
	return cmd
}

func runExtract(cmd *cobra.Command, args []string, s *settings, logger hclog.Logger) error {
	w, h, err := parseSize(s.size)
	if err != nil {
		return err
	}
	viewW, viewH, err := s.viewportFor(w, h)
	if err != nil {
		return err
	}
	c, err := watermark.NewCollector(s.capacity)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	sched := tamper.BuildSchedule(w, h, viewW, viewH, s.squareSize)

	in, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()
	r, err := rawvideo.NewReader(in, w, h, &rawvideo.Options{Zstd: s.zstd})
	if err != nil {
		return err
	}
	defer r.Close()

	rejected := 0
	var m *image.RGBA
	for !c.Complete() {
		m, err = r.ReadFrame(m)
		if err == io.EOF {
			logger.Warn("incomplete watermark",
				"frames", r.Frames(), "known", c.Known(), "rejected", rejected)
			return ErrNoWatermark
		} else if err != nil {
			return fmt.Errorf("extract: frame %d: %w", r.Frames(), err)
		}

		index, value, ok := tamper.Sample(m.Pix, sched)
		if !ok || !c.Add(index, value) {
			rejected++
			continue
		}
		logger.Trace("symbol", "frame", r.Frames(), "index", index, "value", value)
	}

	payload, err := c.Payload()
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	logger.Info("extracted", "frames", r.Frames(), "rejected", rejected)
	_, err = cmd.OutOrStdout().Write(payload)
	return err
}
