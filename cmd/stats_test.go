// ABOUTME: Tests for the stats command
// ABOUTME: Verifies role-dependent counters and formatting

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/markalston/academia-console/internal/services"
	"github.com/markalston/academia-console/internal/session"
)

func statsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/alumnos/estadisticas/total":
		fmt.Fprint(w, `{"total":30}`)
	case "/api/alumnos/estadisticas/matriculas":
		fmt.Fprint(w, `{"enrolled":18,"notEnrolled":12}`)
	case "/api/profesores/estadisticas/total":
		fmt.Fprint(w, `{"total":6}`)
	case "/api/profesores/estadisticas/habilitacion":
		fmt.Fprint(w, `{"enabled":5,"disabled":1}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestStatsAsAdmin(t *testing.T) {
	setupBackend(t, statsHandler)
	signIn(t, "admin", session.RoleAdmin)

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	for _, want := range []string{"Alumnos:        30", "Matriculados: 18", "Profesores:     6", "Inactivos:    1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}
}

func TestStatsAsProfessor(t *testing.T) {
	b := setupBackend(t, statsHandler)
	signIn(t, "profe", session.RoleProfessor)

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if strings.Contains(buf.String(), "Profesores") {
		t.Error("professors should not see professor counters")
	}
	for _, req := range b.seen() {
		if strings.Contains(req, "/api/profesores") {
			t.Errorf("unexpected request %s", req)
		}
	}
}

func TestStatsDeniedForStudents(t *testing.T) {
	setupBackend(t, statsHandler)
	signIn(t, "ana", session.RoleStudent)

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != exitError {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestFormatStatsHuman(t *testing.T) {
	out := formatStatsHuman(statsReport{Students: &services.StudentStatistics{Total: 3, Enrolled: 2, NotEnrolled: 1}})
	if !strings.Contains(out, "Sin matrícula: 1") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, " 67%") {
		t.Errorf("expected enrolled share in output %q", out)
	}
}
