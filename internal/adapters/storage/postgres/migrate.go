package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('tutor', 'clinic', 'admin')),
		clinic_id     TEXT,
		contact       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clinics (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		user_id    TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS clinics_user_id_idx ON clinics (user_id)`,
	`CREATE TABLE IF NOT EXISTS animals (
		id                 TEXT PRIMARY KEY,
		owner_user_id      TEXT NOT NULL,
		name               TEXT NOT NULL,
		species            TEXT NOT NULL,
		breed              TEXT NOT NULL DEFAULT '',
		age                INTEGER,
		contact            TEXT NOT NULL DEFAULT '',
		procedure          TEXT NOT NULL DEFAULT '',
		clinic_id          TEXT,
		scheduled_at       TIMESTAMPTZ,
		status             TEXT NOT NULL CHECK (status IN ('waiting', 'awaiting_scheduling', 'scheduled', 'completed')),
		verification_token TEXT NOT NULL DEFAULT '',
		token_validated    BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at       TIMESTAMPTZ,
		version            INTEGER NOT NULL DEFAULT 1,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS animals_owner_idx ON animals (owner_user_id)`,
	`CREATE INDEX IF NOT EXISTS animals_clinic_idx ON animals (clinic_id)`,
	`CREATE INDEX IF NOT EXISTS animals_waiting_idx ON animals (created_at) WHERE status = 'waiting' AND clinic_id IS NULL`,
}

// Migrate crea el esquema si no existe. Idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return nil
}
