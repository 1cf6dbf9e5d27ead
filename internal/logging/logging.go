// Copyright 2025 The Framemark Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// Package logging configures the hclog loggers used by framemark's commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	envLevel = "FRAMEMARK_LOG_LEVEL"
	envJSON  = "FRAMEMARK_JSON_LOG"
)

// NewLogger returns a logger writing to output, or to stderr if output is nil.
// An empty level means Level().
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = Level()
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(envJSON) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Level returns the log level named by the environment, defaulting to warn.
func Level() string {
	if level := os.Getenv(envLevel); level != "" {
		return level
	}
	return "warn"
}
