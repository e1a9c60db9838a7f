// ABOUTME: Tests for outgoing request middleware
// ABOUTME: Verifies bearer injection, request IDs, ordering and no shared-state mutation

package apiclient

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonReader(s string) io.Reader { return strings.NewReader(s) }

func okTransport(seen *http.Request) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		*seen = *r
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(jsonReader("{}")), Header: http.Header{}, Request: r}, nil
	})
}

func TestBearerAuth_AddsHeader(t *testing.T) {
	var seen http.Request
	rt := Chain(okTransport(&seen), BearerAuth(TokenFunc(func() string { return "abc" })))

	req := httptest.NewRequest(http.MethodGet, "http://academy.test/api/alumnos/paged", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := seen.Header.Get("Authorization"); got != "Bearer abc" {
		t.Errorf("Authorization = %q", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("caller's request was mutated")
	}
}

func TestBearerAuth_NoTokenPassesThrough(t *testing.T) {
	var seen http.Request
	rt := Chain(okTransport(&seen), BearerAuth(TokenFunc(func() string { return "" })))

	req := httptest.NewRequest(http.MethodGet, "http://academy.test/api/alumnos/paged", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := seen.Header["Authorization"]; ok {
		t.Error("expected no Authorization header without a token")
	}
}

func TestBearerAuth_NilSource(t *testing.T) {
	var seen http.Request
	rt := Chain(okTransport(&seen), BearerAuth(nil))
	req := httptest.NewRequest(http.MethodGet, "http://academy.test/", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestID(t *testing.T) {
	var seen http.Request
	rt := Chain(okTransport(&seen), RequestID())

	req := httptest.NewRequest(http.MethodGet, "http://academy.test/", nil)
	rt.RoundTrip(req)
	if id := seen.Header.Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a UUID", id)
	}

	req.Header.Set("X-Request-ID", "fixed")
	rt.RoundTrip(req)
	if id := seen.Header.Get("X-Request-ID"); id != "fixed" {
		t.Errorf("existing request ID replaced: %q", id)
	}
}

func TestChain_FirstIsOutermost(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	var seen http.Request
	rt := Chain(okTransport(&seen), mark("a"), mark("b"), mark("c"))
	rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://academy.test/", nil))

	if strings.Join(order, "") != "abc" {
		t.Errorf("order = %v", order)
	}
}

func TestLogRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seen http.Request
	rt := Chain(okTransport(&seen), RequestID(), LogRequests(logger))
	rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://academy.test/api/pagos", nil))

	out := buf.String()
	if !strings.Contains(out, "Request completed") || !strings.Contains(out, "status=200") {
		t.Errorf("log output missing completion line: %s", out)
	}
	if !strings.Contains(out, "request_id=") {
		t.Errorf("log output missing request id: %s", out)
	}
}

func TestClient_SendsBearerFromSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"total":3}`))
	}))
	defer server.Close()

	c := New(server.URL, WithMiddleware(BearerAuth(TokenFunc(func() string { return "session-token" }))))
	if _, err := c.CountStudents(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
