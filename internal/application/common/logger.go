package common

import (
	"context"
	"encoding/json"
	"io"
	"log"
)

// Logger provides structured logging for application operations
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a
// no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// NewStdLogger returns a text Logger backed by the standard log package
// that drops entries below minLevel. Unknown levels log unconditionally.
func NewStdLogger(minLevel string) Logger {
	return newStdLogger(minLevel, "text", nil)
}

// NewStdLoggerTo writes level-filtered entries to w, either as plain
// text or as one JSON object per line
func NewStdLoggerTo(w io.Writer, minLevel, format string) Logger {
	return newStdLogger(minLevel, format, log.New(w, "", log.LstdFlags))
}

func newStdLogger(minLevel, format string, out *log.Logger) *stdLogger {
	min, ok := levelRank[minLevel]
	if !ok {
		min = 0
	}
	if out == nil {
		out = log.Default()
	}
	return &stdLogger{min: min, json: format == "json", out: out}
}

type stdLogger struct {
	min  int
	json bool
	out  *log.Logger
}

func (l *stdLogger) Log(level, message string, metadata map[string]interface{}) {
	if rank, ok := levelRank[level]; ok && rank < l.min {
		return
	}
	if l.json {
		entry := make(map[string]interface{}, len(metadata)+2)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["level"] = level
		entry["message"] = message
		if line, err := json.Marshal(entry); err == nil {
			l.out.Print(string(line))
			return
		}
	}
	if len(metadata) == 0 {
		l.out.Printf("%s: %s", level, message)
		return
	}
	l.out.Printf("%s: %s %v", level, message, metadata)
}
