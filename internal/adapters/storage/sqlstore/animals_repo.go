package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"app-vet/internal/domain/animals"
)

const animalColumns = `
	id, owner_user_id,
	name, species, breed, age, contact, procedure,
	clinic_id, scheduled_at, status,
	verification_token, token_validated, completed_at,
	version, created_at, updated_at`

type AnimalsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewAnimalsRepo(db *sql.DB, d Dialect) *AnimalsRepo {
	return &AnimalsRepo{db: db, d: d}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO animals (`+animalColumns+`
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`),
		a.ID,
		a.OwnerUserID,
		a.Name,
		a.Species,
		a.Breed,
		nullInt(a.Age),
		a.Contact,
		a.Procedure,
		nullString(a.ClinicID),
		nullTime(a.ScheduledAt),
		string(a.Status),
		a.VerificationToken,
		a.TokenValidated,
		nullTime(a.CompletedAt),
		a.Version,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("animals: insert: %w", err)
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT `+animalColumns+` FROM animals WHERE id = ?`), id)
	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	if err != nil {
		return animals.Animal{}, fmt.Errorf("animals: get: %w", err)
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	var (
		where []string
		args  []any
	)
	if f.OwnerUserID != "" {
		where = append(where, "owner_user_id = ?")
		args = append(args, f.OwnerUserID)
	}
	if f.ClinicID != "" {
		where = append(where, "clinic_id = ?")
		args = append(args, f.ClinicID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Unclaimed {
		where = append(where, "clinic_id IS NULL")
	}

	q := `SELECT ` + animalColumns + ` FROM animals`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id ASC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("animals: list: %w", err)
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("animals: scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Claim es un único UPDATE condicional; el predicado decide quién gana.
func (r *AnimalsRepo) Claim(ctx context.Context, id, clinicID string, at time.Time) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, r.d.Rebind(`
		UPDATE animals
		SET
			clinic_id = ?,
			status = ?,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND status = ? AND clinic_id IS NULL
		RETURNING `+animalColumns),
		clinicID,
		string(animals.StatusAwaitingScheduling),
		at.UTC(),
		id,
		string(animals.StatusWaiting),
	)

	a, err := scanAnimal(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, fmt.Errorf("animals: claim: %w", err)
	}

	// 0 filas: o no existe o ya no es reclamable.
	if _, err := r.GetByID(ctx, id); err != nil {
		return animals.Animal{}, err
	}
	return animals.Animal{}, animals.ErrConflict
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`
		UPDATE animals
		SET
			name = ?,
			species = ?,
			breed = ?,
			age = ?,
			contact = ?,
			procedure = ?,
			clinic_id = ?,
			scheduled_at = ?,
			status = ?,
			verification_token = ?,
			token_validated = ?,
			completed_at = ?,
			version = ?,
			updated_at = ?
		WHERE id = ? AND version = ?
	`),
		a.Name,
		a.Species,
		a.Breed,
		nullInt(a.Age),
		a.Contact,
		a.Procedure,
		nullString(a.ClinicID),
		nullTime(a.ScheduledAt),
		string(a.Status),
		a.VerificationToken,
		a.TokenValidated,
		nullTime(a.CompletedAt),
		a.Version,
		a.UpdatedAt.UTC(),
		a.ID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("animals: update: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return animals.ErrConflict
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM animals WHERE id = ? AND version = ?`), id, expectedVersion)
	if err != nil {
		return fmt.Errorf("animals: delete: %w", err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return animals.ErrConflict
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a                        animals.Animal
		age                      sql.NullInt64
		clinicID                 sql.NullString
		scheduledAt, completedAt sql.NullTime
		status                   string
	)
	if err := s.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&age,
		&a.Contact,
		&a.Procedure,
		&clinicID,
		&scheduledAt,
		&status,
		&a.VerificationToken,
		&a.TokenValidated,
		&completedAt,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Age = intPtr(age)
	a.ClinicID = clinicID.String
	a.ScheduledAt = timePtr(scheduledAt)
	a.CompletedAt = timePtr(completedAt)
	a.Status = animals.Status(status)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
