package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.DiscardHandler)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false and File is empty, all logging is discarded
	File    string     // Append JSON records to this file instead of Writer
	Writer  io.Writer  // Destination for text records. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo
}

// Init configures logging. Call before any log calls.
// The returned function closes the log file, if one was opened.
func Init(opts Options) (func() error, error) {
	noop := func() error { return nil }

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return noop, err
		}
		L = slog.New(slog.NewJSONHandler(f, handlerOpts))
		return f.Close, nil
	}

	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return noop, nil
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, handlerOpts))
	return noop, nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
