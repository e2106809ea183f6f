package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger writes one JSON object per entry with the fields every service
// agrees on: timestamp, level, service, action, message, hostname, request_id.
type Logger struct {
	service   string
	requestID string
	h         *slog.Logger
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout, "info") }

func NewWithWriter(service string, w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
				a.Value = slog.StringValue(a.Value.Time().UTC().Format("2006-01-02T15:04:05.000000000Z07:00"))
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	return &Logger{service: service, h: slog.New(h)}
}

// WithRequestID returns a copy that stamps every entry with id.
func (l *Logger) WithRequestID(id string) *Logger {
	cp := *l
	cp.requestID = id
	return &cp
}

func (l *Logger) Service() string { return l.service }

func (l *Logger) log(level slog.Level, action string, fields map[string]any, err error) {
	attrs := []slog.Attr{
		slog.String("service", l.service),
		slog.String("action", action),
		slog.String("hostname", hostname()),
		slog.String("request_id", l.requestID),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", fmt.Sprintf("%T", err)),
		))
	}
	l.h.LogAttrs(context.Background(), level, action, attrs...)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log(slog.LevelInfo, action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log(slog.LevelDebug, action, fields, nil) }
func (l *Logger) Warn(action string, err error, fields map[string]any) {
	l.log(slog.LevelWarn, action, fields, err)
}
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(slog.LevelError, action, fields, err)
}

func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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

func hostname() string { h, _ := os.Hostname(); return h }
