package token

import (
	"path/filepath"
	"testing"
)

func TestBoltStoreRoundTripSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.bolt")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore err: %v", err)
	}
	if err := store.Save("tok1"); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	reopened, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore err: %v", err)
	}
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if got != "tok1" {
		t.Fatalf("unexpected token: got %q want %q", got, "tok1")
	}

	if err := reopened.Delete(); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("Load after delete err: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty token after delete, got %q", got)
	}
}

func TestBoltStoreMissingFile(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "missing.bolt"))
	if err != nil {
		t.Fatalf("NewBoltStore err: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete on empty store err: %v", err)
	}
}

func TestNewBoltStoreRequiresPath(t *testing.T) {
	if _, err := NewBoltStore(""); err != ErrPathRequired {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("seed")
	if got, _ := store.Load(); got != "seed" {
		t.Fatalf("unexpected token: %q", got)
	}
	_ = store.Save("next")
	if got, _ := store.Load(); got != "next" {
		t.Fatalf("unexpected token: %q", got)
	}
	_ = store.Delete()
	if got, _ := store.Load(); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
