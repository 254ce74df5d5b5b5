// Package log provides categorized, leveled logging for quillkey.
//
// All call sites use the same shape:
//
//	log.Debug(log.CatCapture, "Left scan finished", "steps", n, "runes", len)
//
// Until Init is called every call is a no-op, so packages can log freely in
// tests without any setup.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatConfig  Category = "config"
	CatCapture Category = "capture"
	CatApply   Category = "apply"
	CatPanel   Category = "panel"
	CatReveal  Category = "reveal"
	CatAI      Category = "ai"
	CatUI      Category = "ui"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a config string into a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
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

var (
	mu       sync.RWMutex
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar = new(slog.LevelVar)
)

// Init opens (or creates) the log file at path and routes all logging to it.
// The returned cleanup closes the file and restores the no-op logger.
func Init(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	setWriter(f)

	return func() {
		setWriter(io.Discard)
		_ = f.Close()
	}, nil
}

// SetOutput routes logging to w. Used by tests to capture output.
func SetOutput(w io.Writer) {
	setWriter(w)
}

func setWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	levelVar.Set(l.slog())
}

func write(l Level, cat Category, msg string, args ...any) {
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.Log(context.Background(), l.slog(), msg, append([]any{"cat", string(cat)}, args...)...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, args ...any) { write(LevelDebug, cat, msg, args...) }

// Info logs at info level.
func Info(cat Category, msg string, args ...any) { write(LevelInfo, cat, msg, args...) }

// Warn logs at warn level.
func Warn(cat Category, msg string, args ...any) { write(LevelWarn, cat, msg, args...) }

// Error logs at error level.
func Error(cat Category, msg string, args ...any) { write(LevelError, cat, msg, args...) }

// ErrorErr logs err at error level under the "error" key.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	write(LevelError, cat, msg, append(args, "error", err)...)
}
