package users

import (
	"time"

	"app-vet/internal/ports/auth"
)

// User es una cuenta de tutor, clínica o admin.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Role         auth.Role
	ClinicID     string // solo rol clinic
	Contact      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
