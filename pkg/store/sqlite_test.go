package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "state", "action-layout.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}

	ids, err := s.Get()
	if err != nil {
		t.Fatalf("Failed to read empty store: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected empty list, got %v", ids)
	}
}

func TestSQLiteStoreKeepsOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "action-layout.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	want := []string{"zeta.nemo_action", "alpha.nemo_action", "mid.nemo_action"}
	if err := s.Set(append(want, "alpha.nemo_action")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	// reopen to make sure the list survived
	s, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if err := s.Set(nil); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}
	got, _ = s.Get()
	if len(got) != 0 {
		t.Errorf("Expected cleared list, got %v", got)
	}
}
