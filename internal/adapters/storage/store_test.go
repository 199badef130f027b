package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"app-vet/internal/domain/animals"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver != "memory" || s.Animals == nil || s.Users == nil || s.Clinics == nil {
		t.Fatalf("incomplete store: %+v", s)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "vet.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	list, err := s.Animals.List(ctx, animals.ListFilter{})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", list, err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "mongo"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestClinicInUse(t *testing.T) {
	ctx := context.Background()
	s := Memory()

	now := time.Now().UTC()
	rex := animals.Animal{ID: "a-1", OwnerUserID: "u-1", Name: "Rex", Species: "dog", Status: animals.StatusWaiting, Version: 1, CreatedAt: now, UpdatedAt: now}
	if err := s.Animals.Create(ctx, rex); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Animals.Claim(ctx, rex.ID, "c-1", now); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if used, err := s.ClinicInUse(ctx, "c-1"); err != nil || !used {
		t.Fatalf("expected c-1 in use, got %v err=%v", used, err)
	}
	if used, err := s.ClinicInUse(ctx, "c-2"); err != nil || used {
		t.Fatalf("expected c-2 unused, got %v err=%v", used, err)
	}
}
