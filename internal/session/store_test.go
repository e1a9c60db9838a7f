// ABOUTME: Tests for the session store lifecycle
// ABOUTME: Verifies login, logout, restore and the fail-closed decode path

package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/markalston/academia-console/internal/navigation"
)

func newTestStore(storage Storage) (*Store, *navigation.History) {
	nav := &navigation.History{}
	return New(storage, nav, WithClock(fixedClock)), nav
}

func TestLogin_PersistsAndRedirects(t *testing.T) {
	storage := NewMemoryStorage()
	s, nav := newTestStore(storage)
	token := adminToken(t)

	if err := s.Login(token); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !s.IsAuthenticated() || !s.IsAdmin() {
		t.Errorf("expected authenticated admin, got %+v", s.Snapshot())
	}
	if s.IsProfessor() || s.IsStudent() {
		t.Error("admin should not carry professor or student flags")
	}
	if got, _ := storage.Get(KeyToken); got != token {
		t.Errorf("stored token = %q", got)
	}
	if got, _ := storage.Get(KeyUserID); got != "1" {
		t.Errorf("stored user id = %q, want 1", got)
	}
	if nav.Last() != navigation.RouteStudents {
		t.Errorf("redirect = %q, want %q", nav.Last(), navigation.RouteStudents)
	}
}

func TestLogin_MalformedTokenForcesLogout(t *testing.T) {
	storage := NewMemoryStorage()
	s, nav := newTestStore(storage)
	if err := s.Login(adminToken(t)); err != nil {
		t.Fatalf("Login: %v", err)
	}

	err := s.Login("garbage")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	snap := s.Snapshot()
	if snap.Token != "" || snap.Claims != nil {
		t.Errorf("expected empty session, got %+v", snap)
	}
	if _, err := storage.Get(KeyToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("token still stored, err = %v", err)
	}
	if nav.Last() != navigation.RouteLogin {
		t.Errorf("redirect = %q, want %q", nav.Last(), navigation.RouteLogin)
	}
}

func TestLoginWithResponse(t *testing.T) {
	id := int64(7)
	s, nav := newTestStore(NewMemoryStorage())

	err := s.LoginWithResponse(LoginResponse{Token: "opaque", Username: "ana", ID: &id, Role: "ALUMNO"})
	if err != nil {
		t.Fatalf("LoginWithResponse: %v", err)
	}

	c := s.Claims()
	if c.Subject != "ana" || !c.HasRole(RoleStudent) || c.UserID == nil || *c.UserID != 7 {
		t.Errorf("claims = %+v", c)
	}
	if nav.Last() != navigation.RouteProfile {
		t.Errorf("redirect = %q, want %q", nav.Last(), navigation.RouteProfile)
	}
}

func TestLoginWithResponse_MissingFieldsLeavesStateUntouched(t *testing.T) {
	s, nav := newTestStore(NewMemoryStorage())
	if err := s.Login(adminToken(t)); err != nil {
		t.Fatalf("Login: %v", err)
	}
	before := s.Token()

	tests := []LoginResponse{
		{Username: "ana", Role: "ADMIN"},
		{Token: "t", Role: "ADMIN"},
		{Token: "t", Username: "ana"},
	}
	for _, resp := range tests {
		if err := s.LoginWithResponse(resp); err == nil {
			t.Errorf("expected error for %+v", resp)
		}
	}

	if s.Token() != before {
		t.Error("session changed after rejected login response")
	}
	if len(nav.Paths()) != 1 {
		t.Errorf("unexpected redirects: %v", nav.Paths())
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	storage := NewMemoryStorage()
	s, nav := newTestStore(storage)
	if err := s.Login(adminToken(t)); err != nil {
		t.Fatalf("Login: %v", err)
	}

	s.Logout()

	if s.IsAuthenticated() || s.IsAdmin() || s.IsProfessor() || s.IsStudent() {
		t.Errorf("expected all flags false, got %+v", s.Snapshot())
	}
	if _, err := storage.Get(KeyToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("token key still present: %v", err)
	}
	if _, err := storage.Get(KeyUserID); !errors.Is(err, ErrNotFound) {
		t.Errorf("user id key still present: %v", err)
	}
	if nav.Last() != navigation.RouteLogin {
		t.Errorf("redirect = %q", nav.Last())
	}
}

func TestRestore(t *testing.T) {
	storage := NewMemoryStorage()
	token := adminToken(t)
	_ = storage.Set(KeyToken, token)

	s, nav := newTestStore(storage)
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.Token() != token || !s.IsAdmin() {
		t.Errorf("restored session = %+v", s.Snapshot())
	}
	if len(nav.Paths()) != 0 {
		t.Errorf("restore should not redirect, got %v", nav.Paths())
	}
}

func TestRestore_Empty(t *testing.T) {
	s, _ := newTestStore(NewMemoryStorage())
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected no session")
	}
}

func TestRestore_CorruptTokenFailsClosed(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Set(KeyToken, "corrupt")
	_ = storage.Set(KeyUserID, "9")

	s, nav := newTestStore(storage)
	if err := s.Restore(); err == nil {
		t.Fatal("expected decode error")
	}
	if s.IsAuthenticated() {
		t.Error("expected no session after corrupt restore")
	}
	if _, err := storage.Get(KeyToken); !errors.Is(err, ErrNotFound) {
		t.Error("corrupt token should be removed")
	}
	if nav.Last() != navigation.RouteLogin {
		t.Errorf("redirect = %q", nav.Last())
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newTestStore(NewMemoryStorage())
	if err := s.Login(adminToken(t)); err != nil {
		t.Fatalf("Login: %v", err)
	}
	snap := s.Snapshot()
	snap.Claims.Roles[0] = RoleStudent
	if !s.IsAdmin() {
		t.Error("mutating a snapshot changed the store")
	}
}

func TestBoltStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	first, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	s, _ := newTestStore(first)
	token := adminToken(t)
	if err := s.Login(token); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	restored, _ := newTestStore(second)
	if err := restored.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Token() != token {
		t.Error("token did not survive reopen")
	}

	restored.Logout()
	if _, err := second.Get(KeyToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after logout err = %v, want ErrNotFound", err)
	}
}
