package storage

import (
	"context"
	"database/sql"
	"fmt"

	"app-vet/internal/adapters/storage/memory"
	"app-vet/internal/adapters/storage/postgres"
	"app-vet/internal/adapters/storage/sqlite"
	"app-vet/internal/adapters/storage/sqlstore"
	"app-vet/internal/domain/animals"
	"app-vet/internal/domain/clinics"
	"app-vet/internal/domain/users"
)

type Config struct {
	Driver     string // memory | postgres | sqlite
	DSN        string
	SQLitePath string
}

// Store agrupa los repos de un mismo backend.
type Store struct {
	Driver  string
	Animals animals.Repository
	Users   users.Repository
	Clinics clinics.Repository

	db *sql.DB
}

func Memory() *Store {
	return &Store{
		Driver:  "memory",
		Animals: memory.NewAnimalRepo(),
		Users:   memory.NewUserRepo(),
		Clinics: memory.NewClinicRepo(),
	}
}

// Open abre el backend y aplica el schema (idempotente).
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var (
		db      *sql.DB
		dialect sqlstore.Dialect
		migrate func(context.Context, *sql.DB) error
		err     error
	)

	switch cfg.Driver {
	case "", "memory":
		return Memory(), nil
	case "postgres":
		db, err = postgres.Open(cfg.DSN)
		dialect, migrate = sqlstore.Postgres, postgres.Migrate
	case "sqlite":
		db, err = sqlite.Open(cfg.SQLitePath)
		dialect, migrate = sqlstore.SQLite, sqlite.Migrate
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}

	return &Store{
		Driver:  cfg.Driver,
		Animals: sqlstore.NewAnimalsRepo(db, dialect),
		Users:   sqlstore.NewUsersRepo(db, dialect),
		Clinics: sqlstore.NewClinicsRepo(db, dialect),
		db:      db,
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ClinicInUse indica si algún animal tiene asignada la clínica.
func (s *Store) ClinicInUse(ctx context.Context, clinicID string) (bool, error) {
	items, err := s.Animals.List(ctx, animals.ListFilter{ClinicID: clinicID, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}
