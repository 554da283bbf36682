package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type DepthHandler struct {
	slog.Handler
	depth int
}

func NewDepthHandler(inner slog.Handler, depth int) slog.Handler {
	return &DepthHandler{
		Handler: inner,
		depth:   depth,
	}
}

func (h *DepthHandler) Handle(ctx context.Context, r slog.Record) error {
	if _, file, line, ok := runtime.Caller(h.depth); ok {
		source := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		r.Add("source", source)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *DepthHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DepthHandler{Handler: h.Handler.WithAttrs(attrs), depth: h.depth}
}

func (h *DepthHandler) WithGroup(name string) slog.Handler {
	return &DepthHandler{Handler: h.Handler.WithGroup(name), depth: h.depth}
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values fall back to info.
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

func LogSet(level string) {
	LogSetTo(os.Stdout, level)
}

func LogSetTo(w io.Writer, level string) {
	base := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     ParseLevel(level),
	})
	handler := NewDepthHandler(base, 4)

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func Fatal(format string, args ...any) {
	slog.Error(format, args...)
	os.Exit(1)
}

func Info(format string, args ...any) {
	slog.Info(format, args...)
}

func Debug(format string, args ...any) {
	slog.Debug(format, args...)
}

func Warn(format string, args ...any) {
	slog.Warn(format, args...)
}

func Error(format string, args ...any) {
	slog.Error(format, args...)
}
