// Package logging configures the process-wide slog logger and provides the
// structured events the command-line tool and the API server emit.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// RequestIDKey is the context key for request IDs.
const RequestIDKey ContextKey = "request_id"

// defaultLogger is swapped by InitLogger; tests replace it directly.
var defaultLogger *slog.Logger

func init() {
	// Quiet by default; commands raise the level from flags.
	InitLogger(LevelWarn, FormatText)
}

// Level is a log verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"":        LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel maps "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// slogLevel converts l; unknown values log at info.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Format selects the handler: JSON lines or slog's key=value text.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// ParseFormat maps "json" or "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "":
		return FormatText, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// InitLogger installs the global logger on stderr so command output on
// stdout stays clean.
func InitLogger(level Level, format Format) {
	InitLoggerTo(os.Stderr, level, format)
}

// InitLoggerTo is InitLogger with an explicit destination.
func InitLoggerTo(w io.Writer, level Level, format Format) {
	opts := &slog.HandlerOptions{
		Level:       level.slogLevel(),
		ReplaceAttr: rfc3339Time,
	}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	defaultLogger = slog.New(h)
	slog.SetDefault(defaultLogger)
}

func rfc3339Time(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
	}
	return a
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// LoggerFromContext returns the global logger, tagged with the request ID
// when ctx carries one.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		return defaultLogger.With("request_id", id)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// InfoContext logs at info with the request ID from ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).Info(msg, args...)
}

// event writes msg with the fixed fields first and the caller's extras after.
func event(l *slog.Logger, level slog.Level, msg string, fields []any, extra []any) {
	l.Log(context.Background(), level, msg, append(fields, extra...)...)
}

// HTTPRequestContext logs one served request.
func HTTPRequestContext(ctx context.Context, method, path, remoteAddr string, statusCode int, duration time.Duration, args ...any) {
	event(LoggerFromContext(ctx), slog.LevelInfo, "http_request", []any{
		"method", method,
		"path", path,
		"remote_addr", remoteAddr,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	}, args)
}

// ReferenceResolved logs a reference that parsed and validated.
func ReferenceResolved(ctx context.Context, input, book, url string, args ...any) {
	event(LoggerFromContext(ctx), slog.LevelDebug, "reference_resolved",
		[]any{"input", input, "book", book, "url", url}, args)
}

// ReferenceRejected logs a reference the parser refused.
func ReferenceRejected(ctx context.Context, input, kind string, err error, args ...any) {
	event(LoggerFromContext(ctx), slog.LevelInfo, "reference_rejected",
		[]any{"input", input, "kind", kind, "error", err.Error()}, args)
}

// TextRewritten logs one text rewrite pass.
func TextRewritten(ctx context.Context, inputBytes, linked int, studyHelps bool, args ...any) {
	event(LoggerFromContext(ctx), slog.LevelDebug, "text_rewritten",
		[]any{"input_bytes", inputBytes, "references_linked", linked, "study_helps", studyHelps}, args)
}

// JobEvent logs a batch job state change.
func JobEvent(jobID, status string, args ...any) {
	event(defaultLogger, slog.LevelInfo, "job_event", []any{"job_id", jobID, "status", status}, args)
}

// WebSocketEvent logs a connection change with the resulting client count.
func WebSocketEvent(name string, clientCount int, args ...any) {
	event(defaultLogger, slog.LevelInfo, "websocket_event", []any{"event", name, "client_count", clientCount}, args)
}

// ServerStartup logs the listening address of a server.
func ServerStartup(serverType, protocol string, port int, args ...any) {
	event(defaultLogger, slog.LevelInfo, "server_startup",
		[]any{"server_type", serverType, "protocol", protocol, "port", port}, args)
}

// SecurityEvent logs authentication, CORS and rate limiting decisions at warn.
func SecurityEvent(name, component string, args ...any) {
	event(defaultLogger, slog.LevelWarn, "security_event", []any{"event", name, "component", component}, args)
}
