// Package xlog is the structured logging facade used for diagnostics
// that are not part of the canonical test-result output: debug traces
// of registration, filtering, and the run driver. Test results
// themselves are written directly to the configured writer by
// internal/report, never through this package, since their line
// formats are part of the external contract (spec.md §6).
package xlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level is the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String satisfies fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var logger *slog.Logger

// LogEntry is one record drained from the channel installed by
// InitForChannel, for a TUI reporter that wants to render diagnostics
// inline with its own view instead of letting slog write over it.
type LogEntry struct {
	Level     Level
	Subsystem string
	Message   string
}

// InitForCLI configures the package-level logger to write a
// slog.TextHandler directly to output. This is the mode used by the
// plain-CLI driver, where stdout is not otherwise being painted over.
func InitForCLI(level Level, output io.Writer) {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.slogLevel()})
	logger = slog.New(handler)
}

// Init is an alias for InitForCLI, kept for call sites that only ever
// ran in CLI mode.
func Init(level Level, output io.Writer) { InitForCLI(level, output) }

// InitForChannel configures the package-level logger to hand every
// entry to entries instead of writing text, so a bubbletea program can
// drain it on its own update loop rather than racing its own output.
// Sends are non-blocking: a full channel drops the entry rather than
// stalling the logging call site.
func InitForChannel(level Level, entries chan<- LogEntry) {
	logger = slog.New(&channelHandler{level: level.slogLevel(), entries: entries})
}

// channelHandler is a slog.Handler that turns each record into a
// LogEntry and sends it non-blockingly to entries.
type channelHandler struct {
	level   slog.Level
	entries chan<- LogEntry
}

func (h *channelHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }

func (h *channelHandler) Handle(_ context.Context, record slog.Record) error {
	entry := LogEntry{Message: record.Message}
	switch {
	case record.Level >= slog.LevelError:
		entry.Level = LevelError
	case record.Level >= slog.LevelWarn:
		entry.Level = LevelWarn
	case record.Level >= slog.LevelInfo:
		entry.Level = LevelInfo
	default:
		entry.Level = LevelDebug
	}
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == "subsystem" {
			entry.Subsystem = a.Value.String()
		}
		return true
	})
	select {
	case h.entries <- entry:
	default:
	}
	return nil
}

func (h *channelHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *channelHandler) WithGroup(name string) slog.Handler       { return h }

func current() *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func log(level Level, subsystem string, err error, messageFmt string, args ...any) {
	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}
	current().LogAttrs(context.Background(), level.slogLevel(), msg, attrs...)
}

// Debug logs a debug-level message.
func Debug(subsystem, messageFmt string, args ...any) { log(LevelDebug, subsystem, nil, messageFmt, args...) }

// Info logs an info-level message.
func Info(subsystem, messageFmt string, args ...any) { log(LevelInfo, subsystem, nil, messageFmt, args...) }

// Warn logs a warn-level message.
func Warn(subsystem, messageFmt string, args ...any) { log(LevelWarn, subsystem, nil, messageFmt, args...) }

// Error logs an error-level message with an attached cause.
func Error(subsystem string, err error, messageFmt string, args ...any) {
	log(LevelError, subsystem, err, messageFmt, args...)
}
