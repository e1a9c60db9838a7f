// ABOUTME: Shared fixtures for command tests
// ABOUTME: Fake backend, isolated data dir and pre-seeded sessions

package cmd

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// backend is a fake API that records requests by "METHOD path?query".
type backend struct {
	mu       sync.Mutex
	requests []string
}

func (b *backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.RequestURI())
}

func (b *backend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// setupBackend points the CLI at a fake API and a private data dir.
func setupBackend(t *testing.T, handler http.HandlerFunc) *backend {
	t.Helper()
	b := &backend{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	t.Setenv("ACADEMIA_API_URL", server.URL)
	t.Setenv("ACADEMIA_DATA_DIR", t.TempDir())
	return b
}

func signedToken(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    subject,
		"roles":  []string{role},
		"userId": 5,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

// signIn stores a session for role in the current data dir.
func signIn(t *testing.T, subject, role string) {
	t.Helper()
	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()
	if err := a.Session.Login(signedToken(t, subject, role)); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func withJSON(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}
