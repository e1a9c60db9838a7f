// ABOUTME: Integration tests for the console TUI
// ABOUTME: Tests screen transitions against a fake backend

package tui

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/markalston/academia-console/internal/app"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/tui/browser"
	"github.com/markalston/academia-console/internal/tui/icons"
	"github.com/markalston/academia-console/internal/tui/menu"
)

func tokenFor(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    subject,
		"roles":  []string{role},
		"userId": 3,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/alumnos/mi-perfil":
			fmt.Fprint(w, `{"id":3,"username":"ana","firstName":"Ana","lastName":"Ruiz","dni":"12345678Z","email":"ana@example.com","enrolled":true}`)
		default:
			fmt.Fprint(w, `{"content":[{"id":1,"title":"Guitarra"}],"number":0,"size":20,"totalElements":1,"totalPages":1}`)
		}
	}))
	t.Cleanup(server.Close)

	a, err := app.New(&config.Config{
		APIURL:    server.URL,
		Timeout:   5 * time.Second,
		DataDir:   t.TempDir(),
		LogLevel:  "info",
		LogFormat: "text",
	}, app.WithStorage(session.NewMemoryStorage()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAppStartsAtLoginWithoutSession(t *testing.T) {
	ui := New(newTestApp(t))

	if ui.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin, got %d", ui.screen)
	}
	if ui.login == nil {
		t.Error("expected login to be initialized")
	}
}

func TestAppStartsAtMenuWithSession(t *testing.T) {
	a := newTestApp(t)
	if err := a.Session.Login(tokenFor(t, "admin", session.RoleAdmin)); err != nil {
		t.Fatal(err)
	}

	ui := New(a)
	if ui.screen != ScreenMenu || ui.menu == nil {
		t.Errorf("expected menu screen, got %d", ui.screen)
	}
}

func TestAppLoginFailureStaysOnLogin(t *testing.T) {
	ui := New(newTestApp(t))

	ui.Update(loginResultMsg{username: "ana", err: apperror.HTTP(http.StatusUnauthorized, nil)})

	if ui.screen != ScreenLogin {
		t.Errorf("expected to stay on login, got %d", ui.screen)
	}
}

func TestAppLoginSuccessShowsMenu(t *testing.T) {
	a := newTestApp(t)
	ui := New(a)

	if err := a.Session.Login(tokenFor(t, "profe", session.RoleProfessor)); err != nil {
		t.Fatal(err)
	}
	ui.Update(loginResultMsg{username: "profe"})

	if ui.screen != ScreenMenu {
		t.Fatalf("expected menu after login, got %d", ui.screen)
	}
	if !strings.Contains(ui.View(), "profe · Profesor") {
		t.Error("expected header to show the signed-in user")
	}
}

func TestAppBrowseAndBack(t *testing.T) {
	a := newTestApp(t)
	if err := a.Session.Login(tokenFor(t, "admin", session.RoleAdmin)); err != nil {
		t.Fatal(err)
	}
	ui := New(a)
	ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	_, cmd := ui.Update(menu.SelectedMsg{Choice: session.EntityClasses})
	if ui.screen != ScreenBrowser || ui.browser == nil {
		t.Fatalf("expected browser screen, got %d", ui.screen)
	}
	ui.Update(cmd())

	view := ui.View()
	for _, want := range []string{"Clases", "Guitarra", "Mostrando 1–1 de 1", "b Volver"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	ui.Update(browser.BackMsg{})
	if ui.screen != ScreenMenu || ui.browser != nil {
		t.Errorf("expected back on menu, got %d", ui.screen)
	}
}

func TestAppProfile(t *testing.T) {
	a := newTestApp(t)
	if err := a.Session.Login(tokenFor(t, "ana", session.RoleStudent)); err != nil {
		t.Fatal(err)
	}
	ui := New(a)

	_, cmd := ui.Update(menu.SelectedMsg{Choice: menu.ChoiceProfile})
	if ui.screen != ScreenProfile {
		t.Fatalf("expected profile screen, got %d", ui.screen)
	}
	ui.Update(cmd())

	if !strings.Contains(ui.View(), "Ana Ruiz") {
		t.Error("expected profile to render the student's name")
	}
	if !strings.Contains(ui.View(), icons.CheckOK.String()+" sí") {
		t.Error("expected enrolled status with a check mark")
	}
	if !strings.Contains(ui.View(), "Volver "+icons.Back.String()) {
		t.Error("expected back shortcut in the footer")
	}

	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if ui.screen != ScreenMenu {
		t.Errorf("expected menu after back, got %d", ui.screen)
	}
}

func TestAppProfileError(t *testing.T) {
	ui := New(newTestApp(t))
	ui.screen = ScreenProfile

	ui.Update(profileLoadedMsg{err: errors.New("boom")})
	if !strings.Contains(ui.View(), "Error") {
		t.Errorf("expected error view, got %q", ui.View())
	}
}

func TestAppLogout(t *testing.T) {
	a := newTestApp(t)
	if err := a.Session.Login(tokenFor(t, "admin", session.RoleAdmin)); err != nil {
		t.Fatal(err)
	}
	ui := New(a)

	ui.Update(menu.SelectedMsg{Choice: menu.ChoiceLogout})

	if ui.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", ui.screen)
	}
	if a.Session.IsAuthenticated() {
		t.Error("expected session to be cleared")
	}
}

func TestAppLoginPrefillsRecentUser(t *testing.T) {
	a := newTestApp(t)
	if err := a.Recent.Add("ana"); err != nil {
		t.Fatal(err)
	}
	ui := New(a)

	if ui.screen != ScreenLogin {
		t.Fatalf("expected login screen, got %d", ui.screen)
	}
	if ui.login.Username() != "ana" {
		t.Error("expected login form prefilled with the last username")
	}
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{time.Second, "ahora"},
		{30 * time.Second, "hace 30s"},
		{5 * time.Minute, "hace 5m"},
		{3 * time.Hour, "hace 3h"},
	}
	for _, tc := range tests {
		if got := formatTimeSince(time.Now().Add(-tc.ago)); got != tc.want {
			t.Errorf("%v: expected %q, got %q", tc.ago, tc.want, got)
		}
	}
}
