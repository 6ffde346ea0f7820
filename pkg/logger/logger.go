package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs a text logger on stdout at the given level.
func Init(level slog.Level) {
	InitWithWriter(os.Stdout, level)
}

// InitWithWriter installs a text logger writing to w.
func InitWithWriter(w io.Writer, level slog.Level) {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	current.Store(l)
	slog.SetDefault(l)
}

func L() *slog.Logger {
	return current.Load()
}

func Debug(msg string, args ...any) {
	current.Load().Log(context.Background(), slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	current.Load().Log(context.Background(), slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	current.Load().Log(context.Background(), slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	current.Load().Log(context.Background(), slog.LevelError, msg, args...)
}
