// Package logger emits one JSON line per event, tagged with the service name
// and an action verb (e.g. "order_created", "payment_updated").
package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	service string
	sl      *slog.Logger
}

func New(service string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level()})
	return &Logger{
		service: service,
		sl:      slog.New(handler).With(slog.String("service", service)),
	}
}

func level() slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (l *Logger) attrs(action string, fields map[string]any) []any {
	out := make([]any, 0, 2+2*len(fields))
	out = append(out, slog.String("action", action))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.sl.Info(action, l.attrs(action, fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.sl.Debug(action, l.attrs(action, fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	attrs := l.attrs(action, fields)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.sl.Error(action, attrs...)
}
