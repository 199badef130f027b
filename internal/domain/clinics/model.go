package clinics

import "time"

// Clinic es el prestador que reclama y atiende animales.
type Clinic struct {
	ID      string
	Name    string
	Address string
	Phone   string
	// UserID es el usuario que representa a la clínica (opcional).
	UserID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
