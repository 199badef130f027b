package animals

import (
	"context"
	"time"
)

// ListFilter: campos vacíos no filtran.
type ListFilter struct {
	OwnerUserID string
	ClinicID    string
	Status      Status
	Unclaimed   bool // solo clinic_id vacío
	Limit       int
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f ListFilter) ([]Animal, error)

	// Claim asigna clinicID solo si el animal sigue waiting y sin clínica,
	// en una única escritura condicional. Si no aplica devuelve ErrConflict.
	Claim(ctx context.Context, id, clinicID string, at time.Time) (Animal, error)

	// Update persiste a si la versión guardada sigue siendo expectedVersion
	// (a.Version debe venir ya incrementada). Si no, ErrConflict.
	Update(ctx context.Context, a Animal, expectedVersion int) error

	// Delete borra solo si la versión guardada sigue siendo expectedVersion.
	Delete(ctx context.Context, id string, expectedVersion int) error
}
