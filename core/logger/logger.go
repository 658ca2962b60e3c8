package logger

import (
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

// Init replaces the process logger. format is "json" or "text".
func Init(level, format string) {
	InitWithWriter(os.Stdout, level, format)
}

func InitWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	current.Store(l)
	slog.SetDefault(l)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// L exposes the underlying logger for libraries that want a *slog.Logger.
func L() *slog.Logger {
	return current.Load()
}

func Debug(msg string, args ...any) {
	current.Load().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	current.Load().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	current.Load().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	current.Load().Error(msg, normalize(args)...)
}

// normalize lets call sites pass a bare error, as in logger.Error("X:Y:Error", err).
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	return args
}
