package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"app-vet/internal/domain/clinics"
)

const clinicColumns = `id, name, address, phone, user_id, created_at, updated_at`

type ClinicsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewClinicsRepo(db *sql.DB, d Dialect) *ClinicsRepo {
	return &ClinicsRepo{db: db, d: d}
}

func (r *ClinicsRepo) Create(ctx context.Context, c clinics.Clinic) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO clinics (`+clinicColumns+`) VALUES (?,?,?,?,?,?,?)
	`),
		c.ID,
		c.Name,
		c.Address,
		c.Phone,
		nullString(c.UserID),
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("clinics: insert: %w", err)
	}
	return nil
}

func (r *ClinicsRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	if strings.TrimSpace(id) == "" {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+clinicColumns+` FROM clinics WHERE id = ?`, id)
}

func (r *ClinicsRepo) GetByUserID(ctx context.Context, userID string) (clinics.Clinic, error) {
	if strings.TrimSpace(userID) == "" {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+clinicColumns+` FROM clinics WHERE user_id = ? ORDER BY created_at ASC LIMIT 1`, userID)
}

func (r *ClinicsRepo) getOne(ctx context.Context, q, arg string) (clinics.Clinic, error) {
	c, err := scanClinic(r.db.QueryRowContext(ctx, r.d.Rebind(q), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	if err != nil {
		return clinics.Clinic{}, fmt.Errorf("clinics: get: %w", err)
	}
	return c, nil
}

func (r *ClinicsRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clinicColumns+` FROM clinics ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("clinics: list: %w", err)
	}
	defer rows.Close()

	out := make([]clinics.Clinic, 0)
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("clinics: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClinicsRepo) Update(ctx context.Context, c clinics.Clinic) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`
		UPDATE clinics
		SET
			name = ?,
			address = ?,
			phone = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`),
		c.Name,
		c.Address,
		c.Phone,
		nullString(c.UserID),
		c.UpdatedAt.UTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("clinics: update: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinics.ErrNotFound
	}
	return nil
}

func (r *ClinicsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM clinics WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("clinics: delete: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clinics.ErrNotFound
	}
	return nil
}

func scanClinic(s scanner) (clinics.Clinic, error) {
	var (
		c      clinics.Clinic
		userID sql.NullString
	)
	if err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&userID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return clinics.Clinic{}, err
	}
	c.UserID = userID.String
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
