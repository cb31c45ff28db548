// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel is the env var to set with the log level.
	EnvLogLevel = "INVITATION_LOG_LEVEL"

	// DefaultLevel is used when EnvLogLevel is unset or unparseable.
	DefaultLevel = hclog.Info

	name = "invitation"
)

// Options control construction of the process logger.
type Options struct {
	// Output is where log lines are written. Defaults to os.Stderr.
	Output io.Writer

	// Level overrides the level read from the environment when set.
	Level hclog.Level

	// JSON switches the output format to JSON lines.
	JSON bool
}

// New returns the named root logger. Unless opts sets a level, it respects
// the INVITATION_LOG_LEVEL environment variable.
func New(opts *Options) hclog.Logger {
	if opts == nil {
		opts = &Options{}
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := opts.Level
	if level == hclog.NoLevel {
		level = LevelFromEnv()
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// LevelFromEnv parses EnvLogLevel, falling back to DefaultLevel.
func LevelFromEnv() hclog.Level {
	raw := strings.TrimSpace(os.Getenv(EnvLogLevel))
	if raw == "" {
		return DefaultLevel
	}

	level := hclog.LevelFromString(raw)
	if level == hclog.NoLevel {
		return DefaultLevel
	}
	return level
}

// NewTestLogger returns a trace-level logger that writes through the go
// testing.T log function.
func NewTestLogger(t testing.TB) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.Trace,
		Output: testWriter{t: t},
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
