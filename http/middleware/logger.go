// Package middleware holds the HTTP middlewares shared by routers.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	cmiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLoggerMiddleware logs every request with logger and stores
// a request scoped logger, available through GetLogEntry.
func NewLoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return cmiddleware.RequestLogger(&structuredLogger{logger})
}

type structuredLogger struct {
	Logger *zap.Logger
}

func (l *structuredLogger) NewLogEntry(r *http.Request) cmiddleware.LogEntry {
	var fields []zapcore.Field

	if reqID := cmiddleware.GetReqID(r.Context()); reqID != "" {
		fields = append(fields, zap.String("req.id", reqID))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	fields = append(fields,
		zap.String("http_scheme", scheme),
		zap.String("http_proto", r.Proto),
		zap.String("http_method", r.Method),
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("user_agent", r.UserAgent()),
		zap.String("uri", fmt.Sprintf("%s://%s%s", scheme, r.Host, r.RequestURI)),
	)

	entry := &StructuredLoggerEntry{Logger: l.Logger.With(fields...)}

	entry.Logger.Debug("request started")

	return entry
}

// StructuredLoggerEntry is the request scoped log entry.
type StructuredLoggerEntry struct {
	Logger *zap.Logger
}

// Write logs the end of the request.
func (l *StructuredLoggerEntry) Write(
	status, bytes int,
	_ http.Header,
	elapsed time.Duration,
	_ interface{},
) {
	l.Logger.Info(
		"request complete",
		zap.Int("status", status),
		zap.Int("bytes_length", bytes),
		zap.Float64("duration_ms", float64(elapsed.Nanoseconds())/float64(time.Millisecond)),
	)
}

// Panic logs a recovered panic.
func (l *StructuredLoggerEntry) Panic(v interface{}, stack []byte) {
	l.Logger.Error(
		"request panic",
		zap.String("stack", string(stack)),
		zap.String("panic", fmt.Sprintf("%+v", v)),
	)
}

// GetLogEntry returns the request scoped logger,
// or a no-op logger outside of NewLoggerMiddleware.
func GetLogEntry(r *http.Request) *zap.Logger {
	entry, _ := cmiddleware.GetLogEntry(r).(*StructuredLoggerEntry)
	if entry == nil {
		return zap.NewNop()
	}

	return entry.Logger
}
