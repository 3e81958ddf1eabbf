// Package logger provides structured logging for the Hoaxify client
// using the Uber zap logging library. The same sugared logger is shared
// by the page server and by the backend HTTP client.
package logger

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

// Log is the global SugaredLogger. It is a no-op logger until Init is called,
// so packages may log from tests without initializing it.
var Log = zap.NewNop().Sugar()

// Write passes the body through and records its size.
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader passes the status code through and records it.
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// Init builds the global logger with the given level ("debug", "info", ...).
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}

	return nil
}

// WithLoggingHTTPMiddleware logs every page request with the chi route it
// matched, its status, size and duration. Form posts answer with a redirect,
// so its target is logged too. The chi request id is included when the
// RequestID middleware runs before it.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	logFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{
			status: http.StatusOK,
			size:   0,
		}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		h.ServeHTTP(&lw, r)

		fields := []any{
			"uri", r.RequestURI,
			"method", r.Method,
			"route", routePattern(r),
			"status", responseData.status,
			"duration", time.Since(start),
			"size", responseData.size,
			"request_id", middleware.GetReqID(r.Context()),
		}
		if location := w.Header().Get("Location"); location != "" {
			fields = append(fields, "redirect", location)
		}
		Log.Infoln(fields...)
	}

	return http.HandlerFunc(logFn)
}

// routePattern is the pattern chi matched, or "-" for unrouted requests.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return "-"
}
