// ABOUTME: Outgoing request middleware: bearer auth, request IDs and logging
// ABOUTME: Middlewares wrap http.RoundTripper and never mutate the caller's request

package apiclient

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Middleware wraps a RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain applies middlewares so that the first one is outermost.
func Chain(rt http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	for i := len(middlewares) - 1; i >= 0; i-- {
		rt = middlewares[i](rt)
	}
	return rt
}

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// BearerAuth attaches "Authorization: Bearer <token>" when the source has a
// token. Without one the request passes through untouched and the backend
// answers 401.
func BearerAuth(src TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token := ""
			if src != nil {
				token = src.Token()
			}
			if token == "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// RequestID sets X-Request-ID when the caller did not.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("X-Request-ID", uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// LogRequests logs request start and completion at debug level.
func LogRequests(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")

			logger.Debug("Request started",
				"request_id", requestID,
				"method", r.Method,
				"path", sanitizeForLog(r.URL.Path),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				logger.Debug("Request failed",
					"request_id", requestID,
					"method", r.Method,
					"path", sanitizeForLog(r.URL.Path),
					"error", err,
					"latency_ms", time.Since(start).Milliseconds(),
				)
				return resp, err
			}

			logger.Debug("Request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", sanitizeForLog(r.URL.Path),
				"status", resp.StatusCode,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return resp, nil
		})
	}
}

// sanitizeForLog removes control characters to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
