// ABOUTME: Tests for get, delete, grade and payment commands
// ABOUTME: Verifies dispatch to the right endpoint and permission checks

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/markalston/academia-console/internal/session"
)

func TestRunGet(t *testing.T) {
	b := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":4,"title":"Guitarra","price":49.5,"kind":"COURSE","studentIds":[1,2]}`)
	})
	signIn(t, "admin", session.RoleAdmin)

	var buf bytes.Buffer
	if code := runGet(context.Background(), &buf, session.EntityClasses, 4); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"title:", "Guitarra", "49.5", "studentIds: 1, 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if got := b.seen(); len(got) != 1 || got[0] != "GET /api/clases/4" {
		t.Errorf("unexpected requests %v", got)
	}
}

func TestRunGetNotFound(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	signIn(t, "admin", session.RoleAdmin)

	var buf bytes.Buffer
	if code := runGet(context.Background(), &buf, session.EntityMaterials, 99); code != exitError {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunDelete(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
		reqs []string
	}{
		{"admin deletes", session.RoleAdmin, exitOK, []string{"DELETE /api/pagos/7"}},
		{"professor denied", session.RoleProfessor, exitError, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			signIn(t, "user", tc.role)

			var buf bytes.Buffer
			if got := runDelete(context.Background(), &buf, session.EntityPayments, 7); got != tc.want {
				t.Errorf("expected exit %d, got %d: %s", tc.want, got, buf.String())
			}
			if got := b.seen(); !slices.Equal(got, tc.reqs) {
				t.Errorf("expected requests %v, got %v", tc.reqs, got)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", ""} {
		if _, err := parseID(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
}

func TestRunGrade(t *testing.T) {
	b := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":8,"studentId":1,"exerciseId":2,"status":"GRADED","grade":8.5}`)
	})
	signIn(t, "profe", session.RoleProfessor)

	var buf bytes.Buffer
	if code := runGrade(context.Background(), &buf, 8, 8.5, "Bien"); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Entrega 8 calificada: 8.5 (GRADED)") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if got := b.seen(); len(got) != 1 || got[0] != "PATCH /api/entregas/8" {
		t.Errorf("unexpected requests %v", got)
	}
}

func TestRunGradeOutOfRange(t *testing.T) {
	b := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	signIn(t, "profe", session.RoleProfessor)

	var buf bytes.Buffer
	if code := runGrade(context.Background(), &buf, 8, 12, ""); code != exitError {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "grade") {
		t.Errorf("expected grade field error, got %q", buf.String())
	}
	if len(b.seen()) != 0 {
		t.Errorf("expected no requests, got %v", b.seen())
	}
}

func TestRunPaymentsRecent(t *testing.T) {
	b := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1,"studentId":2,"amount":30,"status":"SUCCESS","createdAt":"2024-03-09T10:00:00Z"}]`)
	})
	signIn(t, "admin", session.RoleAdmin)

	var buf bytes.Buffer
	if code := runPaymentsRecent(context.Background(), &buf, 5); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"30.00 EUR", "SUCCESS", "09/03/2024"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}
	if got := b.seen(); len(got) != 1 || got[0] != "GET /api/pagos/recent?limit=5" {
		t.Errorf("unexpected requests %v", got)
	}
}

func TestRunPaymentStatusDenied(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	signIn(t, "ana", session.RoleStudent)

	var buf bytes.Buffer
	if code := runPaymentStatus(context.Background(), &buf, 1); code != exitError {
		t.Errorf("expected exit 2, got %d", code)
	}
}
