package hashfinder

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Logger wraps slog.Logger with the field names used throughout a search.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler; a nil handler logs text to stderr at info.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger writes human-readable logs at or above level to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

func (l *Logger) WithWorker(id int) *Logger {
	return &Logger{Logger: l.Logger.With("worker", id)}
}

func (l *Logger) WithZeros(zeros int) *Logger {
	return &Logger{Logger: l.Logger.With("zeros", zeros)}
}

// LogUnit records the end of one job.
func (l *Logger) LogUnit(elapsed time.Duration, pending int, err error) {
	if err != nil {
		l.Error("unit failed", "pending", pending, "error", err)
		return
	}
	l.Debug("unit finished", "elapsed", elapsed, "pending", pending)
}

// LogSearch records the start of a search.
func (l *Logger) LogSearch(units uint64, span uint64, threads int) {
	l.Debug("search started", "units", units, "span", span, "threads", threads)
}
