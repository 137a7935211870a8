// Package middleware holds the server's cross-cutting HTTP handlers, built on
// gorilla/handlers and logging through slog.
package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gorilla/handlers"
)

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("panic in handler", "error", fmt.Sprint(v...))
}

var recovery = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))

// Recovery turns a handler panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return recovery(next)
}

// Logger logs one line per request once it has been served; websocket
// requests are logged when the connection closes.
func Logger(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, logRequest)
}

func logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	slog.Info("request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"duration", time.Since(p.TimeStamp),
	)
}

// CORS allows browser requests from origins whose host matches one of
// patterns, using the same path.Match syntax as the websocket origin check.
func CORS(patterns []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(origin string) bool {
			return originAllowed(origin, patterns)
		}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "If-Match", "If-None-Match"}),
		handlers.ExposedHeaders([]string{"ETag"}),
		handlers.OptionStatusCode(http.StatusNoContent),
	)
}

func originAllowed(origin string, patterns []string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, p := range patterns {
		if ok, _ := path.Match(strings.ToLower(p), host); ok {
			return true
		}
	}
	return false
}
