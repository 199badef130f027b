package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"app-vet/internal/adapters/storage"
	"app-vet/internal/domain/animals"
	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
	"app-vet/internal/ports/auth"
)

// run ejecuta vetctl contra un sqlite temporal y devuelve stdout+stderr.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--db-driver", "sqlite", "--sqlite-path", dbPath}, args...))
	err := root.Execute()
	return buf.String(), err
}

var idRe = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{"migrate": false, "users": false, "clinics": false, "animals": false, "repair": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestBootstrapClinicAccount(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vet.db")

	out, err := run(t, db, "migrate")
	if err != nil || !strings.Contains(out, "schema up to date (sqlite)") {
		t.Fatalf("migrate: %v out=%s", err, out)
	}

	out, err = run(t, db, "clinics", "create", "--name", "Centro Vet")
	if err != nil {
		t.Fatalf("clinics create: %v out=%s", err, out)
	}
	m := idRe.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no clinic id in %q", out)
	}
	clinicID := m[1]

	t.Setenv("VETCTL_PASSWORD", "secreto1")
	out, err = run(t, db, "users", "create", "--username", "vet", "--role", "clinic", "--clinic-id", clinicID)
	if err != nil || !strings.Contains(out, "created clinic user vet") {
		t.Fatalf("users create: %v out=%s", err, out)
	}
	userID := idRe.FindStringSubmatch(out)[1]

	out, err = run(t, db, "users", "list")
	if err != nil || !strings.Contains(out, "vet") || !strings.Contains(out, clinicID) {
		t.Fatalf("users list must show clinic link: %v out=%s", err, out)
	}

	out, err = run(t, db, "clinics", "list")
	if err != nil || !strings.Contains(out, "Centro Vet") || !strings.Contains(out, userID) {
		t.Fatalf("clinics list must show representative: %v out=%s", err, out)
	}
}

func TestUsersCreate_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vet.db")

	if _, err := run(t, db, "users", "create", "--username", "x", "--password", "123456", "--role", "root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := run(t, db, "users", "create", "--username", "x", "--password", "123"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if _, err := run(t, db, "users", "create", "--username", "admin", "--password", "123456", "--role", "admin"); err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if _, err := run(t, db, "users", "create", "--username", "admin", "--password", "123456", "--role", "admin"); err == nil {
		t.Fatalf("expected duplicate username error")
	}
}

func TestAnimals_ListAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vet.db")

	out, err := run(t, db, "animals", "list")
	if err != nil || !strings.HasPrefix(out, "ID") {
		t.Fatalf("empty list: %v out=%s", err, out)
	}
	if _, err := run(t, db, "animals", "list", "--status", "lost"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, err := run(t, db, "animals", "show", "nope"); err == nil {
		t.Fatalf("expected not found")
	}
	if _, err := run(t, db, "animals", "show"); err == nil {
		t.Fatalf("expected args error")
	}
}

func TestWriteCommands_RefuseMemoryDriver(t *testing.T) {
	t.Setenv("VETCTL_PASSWORD", "secreto1")
	for _, args := range [][]string{
		{"users", "create", "--username", "vet"},
		{"clinics", "create", "--name", "Centro"},
		{"clinics", "delete", "c-1"},
		{"repair", "clinic-links"},
	} {
		root := NewRootCmd()
		buf := new(bytes.Buffer)
		root.SetOut(buf)
		root.SetErr(buf)
		root.SetArgs(append([]string{"--db-driver", "memory"}, args...))
		err := root.Execute()
		if err == nil || !strings.Contains(err.Error(), "memory driver") {
			t.Fatalf("%v: expected memory driver refusal, got %v", args, err)
		}
	}

	// lectura contra memory sigue permitida
	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"--db-driver", "memory", "animals", "list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("read command on memory: %v", err)
	}
}

func TestConfigErrorIsReported(t *testing.T) {
	t.Setenv("AUTH_MODE", "kerberos")
	db := filepath.Join(t.TempDir(), "vet.db")

	out, err := run(t, db, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "warning: environment config") || !strings.Contains(out, "AUTH_MODE") {
		t.Fatalf("expected config warning, got %q", out)
	}
}

func TestClinicsDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vet.db")

	out, err := run(t, db, "clinics", "create", "--name", "Centro Vet")
	if err != nil {
		t.Fatalf("clinics create: %v", err)
	}
	clinicID := idRe.FindStringSubmatch(out)[1]

	if out, err := run(t, db, "clinics", "delete", clinicID); err != nil || !strings.Contains(out, "deleted clinic") {
		t.Fatalf("delete: %v out=%s", err, out)
	}
	if _, err := run(t, db, "clinics", "delete", clinicID); err == nil {
		t.Fatalf("expected not found on second delete")
	}
}

func TestRepairClinicLinks(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "vet.db")
	now := time.Now().UTC()

	// Estado desalineado como el que dejaban las versiones viejas.
	s, err := storage.Open(ctx, storage.Config{Driver: "sqlite", SQLitePath: db})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	vet := users.User{ID: "u-vet", Username: "vet", PasswordHash: "x", Role: auth.RoleClinic, ClinicID: "c-old", CreatedAt: now, UpdatedAt: now}
	tutor := users.User{ID: "u-tutor", Username: "ana", PasswordHash: "x", Role: auth.RoleTutor, CreatedAt: now, UpdatedAt: now}
	for _, u := range []users.User{vet, tutor} {
		if err := s.Users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	for _, c := range []clinics.Clinic{
		{ID: "c-1", Name: "Centro", UserID: "u-vet", CreatedAt: now, UpdatedAt: now},
		{ID: "c-2", Name: "Outra", UserID: "u-tutor", CreatedAt: now, UpdatedAt: now},
	} {
		if err := s.Clinics.Create(ctx, c); err != nil {
			t.Fatalf("seed clinic: %v", err)
		}
	}
	legacy := animals.Animal{ID: "a-1", OwnerUserID: "u-tutor", Name: "Rex", Species: "dog", ClinicID: "u-vet", Status: animals.StatusAwaitingScheduling, Version: 2, CreatedAt: now, UpdatedAt: now}
	if err := s.Animals.Create(ctx, legacy); err != nil {
		t.Fatalf("seed animal: %v", err)
	}
	_ = s.Close()

	out, err := run(t, db, "repair", "clinic-links", "--dry-run")
	if err != nil || !strings.Contains(out, "would fix 3 link(s)") {
		t.Fatalf("dry run: %v out=%s", err, out)
	}

	out, err = run(t, db, "repair", "clinic-links")
	if err != nil || !strings.Contains(out, "fixed 3 link(s)") {
		t.Fatalf("repair: %v out=%s", err, out)
	}
	for _, want := range []string{"clinic c-2: representative u-tutor dropped", "user vet: clinic_id c-old -> c-1", "animal a-1: clinic_id u-vet -> c-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}

	out, err = run(t, db, "repair", "clinic-links")
	if err != nil || !strings.Contains(out, "fixed 0 link(s)") {
		t.Fatalf("second repair must be a no-op: %v out=%s", err, out)
	}

	s, err = storage.Open(ctx, storage.Config{Driver: "sqlite", SQLitePath: db})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if a, _ := s.Animals.GetByID(ctx, "a-1"); a.ClinicID != "c-1" || a.Version != 3 {
		t.Fatalf("unexpected animal after repair: %+v", a)
	}
	if u, _ := s.Users.GetByID(ctx, "u-vet"); u.ClinicID != "c-1" {
		t.Fatalf("unexpected user clinic: %q", u.ClinicID)
	}
}
