// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package logging builds the process-wide structured logger.

Every record is JSON (log/slog) and carries an "app" attribute. When a log file
is configured, records are duplicated into a size-rotated file managed by
lumberjack; stdout always receives them so container runtimes keep working.
*/
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the logger writes.
type Options struct {
	App        string
	Debug      bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns the root logger and a closer for the rotated file, if any.
//
// The closer is never nil.
func New(opts Options) (*slog.Logger, io.Closer) {
	return NewWithWriter(os.Stdout, opts)
}

// NewWithWriter is [New] with an explicit console sink.
func NewWithWriter(console io.Writer, opts Options) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var (
		sink   = console
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		sink = io.MultiWriter(console, rotated)
		closer = rotated
	}

	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", opts.App)), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
