package animals

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("animal not found")
	ErrForbidden         = errors.New("forbidden")
	ErrNotOwner          = errors.New("actor is not related to the animal's clinic")
	ErrAlreadyClaimed    = errors.New("animal already claimed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDateTime   = errors.New("invalid datetime")
	ErrInvalidToken      = errors.New("invalid verification token")

	// ErrConflict lo devuelven los repositorios cuando falla una escritura
	// condicional (claim ganado por otro, version desactualizada).
	ErrConflict = errors.New("write conflict")
)
