package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"app-vet/internal/domain/users"
	"app-vet/internal/ports/auth"
)

const userColumns = `id, username, password_hash, role, clinic_id, contact, created_at, updated_at`

type UsersRepo struct {
	db *sql.DB
	d  Dialect
}

func NewUsersRepo(db *sql.DB, d Dialect) *UsersRepo {
	return &UsersRepo{db: db, d: d}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?)
	`),
		u.ID,
		u.Username,
		u.PasswordHash,
		string(u.Role),
		nullString(u.ClinicID),
		u.Contact,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	if r.d.IsUniqueViolation(err) {
		return users.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg string) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.d.Rebind(q), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("users: get: %w", err)
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`
		UPDATE users
		SET
			password_hash = ?,
			role = ?,
			clinic_id = ?,
			contact = ?,
			updated_at = ?
		WHERE id = ?
	`),
		u.PasswordHash,
		string(u.Role),
		nullString(u.ClinicID),
		u.Contact,
		u.UpdatedAt.UTC(),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(s scanner) (users.User, error) {
	var (
		u        users.User
		role     string
		clinicID sql.NullString
	)
	if err := s.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&role,
		&clinicID,
		&u.Contact,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}
	u.Role = auth.Role(role)
	u.ClinicID = clinicID.String
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
