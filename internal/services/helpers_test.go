package services

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/markalston/academia-console/internal/apiclient"
)

// recorder counts requests by "METHOD path".
type recorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recorder) hit(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[req.Method+" "+req.URL.Path]++
}

func (r *recorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[key]
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

// newTestServices starts a fake backend and returns facades talking to it
// plus the buffer receiving their logs.
func newTestServices(t *testing.T, rec *recorder, handler http.HandlerFunc, opts ...Option) (*Services, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.hit(r)
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithLogger(logger)}, opts...)
	svc := New(apiclient.New(server.URL), opts...)
	t.Cleanup(svc.Close)
	return svc, &logs
}

func validStudent() apiclient.StudentCreate {
	return apiclient.StudentCreate{
		Username:  "ana.garcia",
		Password:  "secreto1",
		FirstName: "Ana",
		LastName:  "García",
		DNI:       "12345678Z",
		Email:     "ana@email.com",
	}
}

func testTime(day int) time.Time {
	return time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
}
