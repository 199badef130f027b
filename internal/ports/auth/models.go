package auth

import "strings"

// Role define el tipo de actor autenticado.
type Role string

const (
	RoleTutor  Role = "tutor"
	RoleClinic Role = "clinic"
	RoleAdmin  Role = "admin"
)

// ParseRole normaliza el rol. "user" es el valor histórico de los tutores.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tutor", "user":
		return RoleTutor, true
	case "clinic":
		return RoleClinic, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Username string
	Role     Role
	ClinicID string // vacío si el usuario no representa una clínica
}
