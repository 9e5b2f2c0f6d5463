package web

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// LoggingMiddleware logs one line per request with status, size and
// duration captured via httpsnoop.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := httpsnoop.CaptureMetrics(next, w, r)
		slog.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", metrics.Code,
			"bytes", metrics.Written,
			"duration", metrics.Duration,
		)
	})
}
