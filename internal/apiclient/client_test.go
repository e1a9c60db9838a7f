// ABOUTME: Tests for the academy API client
// ABOUTME: Uses httptest to mock backend responses

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/pagination"
	"github.com/markalston/academia-console/internal/session"
)

func TestListStudents_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/alumnos/paged" {
			t.Errorf("expected path /api/alumnos/paged, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" || q.Get("sortBy") != "email" {
			t.Errorf("unexpected pagination query: %s", r.URL.RawQuery)
		}
		if q.Get("firstName") != "Ana" || q.Get("enrolled") != "true" {
			t.Errorf("unexpected filter query: %s", r.URL.RawQuery)
		}
		if q.Has("dni") {
			t.Error("empty filters should be omitted")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"id":1,"firstName":"Ana","enrolled":true}],
			"number":2,"size":10,"totalElements":21,"totalPages":3,
			"first":false,"last":true,"hasNext":false,"hasPrevious":true}`))
	}))
	defer server.Close()

	enrolled := true
	c := New(server.URL)
	page, err := c.ListStudents(context.Background(),
		StudentFilters{FirstName: "Ana", Enrolled: &enrolled},
		pagination.Params{Page: 2, Size: 10, SortBy: "email", SortDirection: pagination.Asc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].FirstName != "Ana" {
		t.Errorf("unexpected content: %+v", page.Content)
	}
	if page.TotalElements != 21 || page.TotalPages != 3 || !page.Last || !page.HasPrevious {
		t.Errorf("unexpected metadata: %+v", page.Metadata)
	}
}

func TestListStudents_NullContentBecomesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":null,"number":0,"size":20,"totalElements":0,"totalPages":0}`))
	}))
	defer server.Close()

	page, err := New(server.URL).ListStudents(context.Background(), StudentFilters{}, pagination.Defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Content == nil {
		t.Error("expected empty, non-nil content")
	}
}

func TestCreateStudent_SendsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/alumnos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body StudentCreate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Student{ID: 9, Username: body.Username, Email: body.Email})
	}))
	defer server.Close()

	s, err := New(server.URL).CreateStudent(context.Background(), StudentCreate{Username: "ana", Email: "ana@email.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != 9 || s.Username != "ana" {
		t.Errorf("unexpected student: %+v", s)
	}
}

func TestSetStudentEnrolled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/alumnos/4/matricula" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		if !body["enrolled"] {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(Student{ID: 4, Enrolled: true})
	}))
	defer server.Close()

	s, err := New(server.URL).SetStudentEnrolled(context.Background(), 4, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Enrolled {
		t.Error("expected enrolled student")
	}
}

func TestDeleteStudent_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := New(server.URL).DeleteStudent(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateClass_RoutesByKind(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(Class{ID: 1})
	}))
	defer server.Close()

	c := New(server.URL)
	c.CreateClass(context.Background(), ClassCreate{Title: "Go", Kind: ClassKindCourse})
	c.CreateClass(context.Background(), ClassCreate{Title: "Go", Kind: ClassKindWorkshop})

	if len(paths) != 2 || paths[0] != "/api/clases/cursos" || paths[1] != "/api/clases/talleres" {
		t.Errorf("paths = %v", paths)
	}
}

func TestRecentPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pagos/recent" || r.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected request %s", r.URL)
		}
		json.NewEncoder(w).Encode([]Payment{{ID: 1, Status: PaymentSuccess}})
	}))
	defer server.Close()

	ps, err := New(server.URL).RecentPayments(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ps) != 1 || ps[0].Status != PaymentSuccess {
		t.Errorf("payments = %+v", ps)
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req session.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "secret1" {
			t.Errorf("credentials = %+v", req)
		}
		json.NewEncoder(w).Encode(session.LoginResponse{Token: "tok", Username: "admin", Role: "ADMIN"})
	}))
	defer server.Close()

	resp, err := New(server.URL).Login(context.Background(), session.LoginRequest{Username: "admin", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "tok" || resp.Role != "ADMIN" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHTTPError_KeepsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"El email ya existe"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).GetStudent(context.Background(), 1)
	var e *apperror.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apperror.Error, got %T: %v", err, err)
	}
	if e.Kind != apperror.KindHTTP || e.Status != http.StatusConflict {
		t.Errorf("got kind=%v status=%d", e.Kind, e.Status)
	}
	if info := apperror.Normalize(err); info.Message != "El email ya existe" {
		t.Errorf("normalized message = %q", info.Message)
	}
}

func TestInvalidJSON_IsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := New(server.URL).GetStudent(context.Background(), 1)
	if !apperror.IsKind(err, apperror.KindDecode) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.GetStudent(context.Background(), 1)
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if !apperror.IsKind(err, apperror.KindNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
	if !apperror.Normalize(err).CanRetry {
		t.Error("network errors should be retryable")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(Student{ID: 1})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := New(server.URL).GetStudent(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(Student{ID: 1})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).GetStudent(ctx, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestWithTransport(t *testing.T) {
	var called bool
	rt := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(jsonReader(`{"total":12}`)),
			Header:     http.Header{},
			Request:    r,
		}, nil
	})

	n, err := New("http://academy.test", WithTransport(rt)).CountStudents(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || n.Total != 12 {
		t.Errorf("called=%v total=%d", called, n.Total)
	}
}
