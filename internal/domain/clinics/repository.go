package clinics

import "context"

type Repository interface {
	Create(ctx context.Context, c Clinic) error
	GetByID(ctx context.Context, id string) (Clinic, error)
	// GetByUserID busca por representante; ErrNotFound si no hay.
	GetByUserID(ctx context.Context, userID string) (Clinic, error)
	List(ctx context.Context) ([]Clinic, error)
	Update(ctx context.Context, c Clinic) error
	// Delete devuelve ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}
