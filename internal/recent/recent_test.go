// ABOUTME: Tests for the recent usernames list
// ABOUTME: Covers persistence, ordering, the size limit and corrupt files

package recent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmpty(t *testing.T) {
	u := New(t.TempDir())

	names, err := u.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty list, got %v", names)
	}
	if u.Last() != "" {
		t.Errorf("expected no last user, got %q", u.Last())
	}
}

func TestAddMovesToFront(t *testing.T) {
	dir := t.TempDir()
	u := New(dir)

	for _, name := range []string{"ana", "luis", "ana"} {
		if err := u.Add(name); err != nil {
			t.Fatalf("Add(%q) error: %v", name, err)
		}
	}

	// A fresh reader sees what was persisted
	got := New(dir).List()
	want := []string{"ana", "luis"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSaveTrimsToMax(t *testing.T) {
	u := New(t.TempDir())
	names := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
	if err := u.Save(names); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := u.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != MaxUsers {
		t.Errorf("expected %d users, got %d", MaxUsers, len(loaded))
	}
	if u.Last() != "a1" {
		t.Errorf("expected a1 as last user, got %q", u.Last())
	}
}

func TestAddIgnoresBlank(t *testing.T) {
	dir := t.TempDir()
	u := New(dir)
	if err := u.Add("   "); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Errorf("expected no file for a blank username, stat err: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	names, err := New(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty list for corrupt file, got %v", names)
	}
}
