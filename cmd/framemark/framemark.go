// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// framemark embeds a short watermark into video frames, and reads it back.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/nigeltao/framemark/internal/logging"
	"github.com/nigeltao/framemark/lib/tamper"
	"github.com/nigeltao/framemark/lib/watermark"
)

const version = "0.1.0"

const longUsage = `framemark embeds a short watermark into video frames, and reads it back.

Each frame carries one symbol of the watermark in the color sums of a small
square of pixels at its top-left (the symbol's index) and bottom-left (its
value) corners. The square is sized for the viewport the video is shown in.

Video is read and written as a headerless stream of RGBA frames, as made by:

    ffmpeg -i in.mp4 -f rawvideo -pix_fmt rgba -

and consumed by:

    ffmpeg -f rawvideo -pix_fmt rgba -s WxH -i - out.mp4

A still image (BMP, GIF, JPEG, PNG, TIFF or WEBP) may be given to embed
instead, in which case a single PNG or NIE frame is written.

The input path is optional. If omitted, stdin is read. Output goes to stdout.
`

var ErrBadSize = errors.New("main: bad WxH size")

// settings are the flags shared by the embed and extract commands.
type settings struct {
	capacity   int
	squareSize int
	size       string
	viewport   string
	zstd       bool
}

func (s *settings) options(logger hclog.Logger) *tamper.Options {
	return &tamper.Options{
		Capacity:   s.capacity,
		SquareSize: s.squareSize,
		Logger:     logger,
	}
}

// viewportFor returns the viewport size, defaulting to the frame size.
func (s *settings) viewportFor(frameW int, frameH int) (int, int, error) {
	if s.viewport == "" {
		return frameW, frameH, nil
	}
	return parseSize(s.viewport)
}

func addSharedFlags(cmd *cobra.Command, s *settings) {
	cmd.Flags().IntVar(&s.capacity, "capacity", watermark.DefaultCapacity, "number of symbols in the watermark (at most 64)")
	cmd.Flags().IntVar(&s.squareSize, "square-size", tamper.DefaultSquareSize, "side of the tampered square, in viewport pixels")
	cmd.Flags().StringVar(&s.size, "size", "", "frame size WxH of a raw RGBA input stream")
	cmd.Flags().StringVar(&s.viewport, "viewport", "", "viewport size WxH the video is displayed at (defaults to the frame size)")
	cmd.Flags().BoolVar(&s.zstd, "zstd", false, "raw streams are zstd compressed")
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, ErrBadSize
	}
	w, err := strconv.Atoi(ws)
	if err != nil || (w <= 0) {
		return 0, 0, ErrBadSize
	}
	h, err := strconv.Atoi(hs)
	if err != nil || (h <= 0) {
		return 0, 0, ErrBadSize
	}
	return w, h, nil
}

// openInput returns the named file, or stdin if there are no args.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

func newRootCmd() *cobra.Command {
	logLevel := ""
	root := &cobra.Command{
		Use:           "framemark",
		Short:         "Embed a watermark into video frames",
		Long:          longUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	newLogger := func(cmd *cobra.Command) hclog.Logger {
		return logging.NewLogger("framemark", logLevel, cmd.ErrOrStderr())
	}

	root.AddCommand(
		newEmbedCmd(newLogger),
		newExtractCmd(newLogger),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "framemark %s\n", version)
				return err
			},
		},
	)
	return root
}

func main() {
	if err := main1(os.Args[1:]); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}
