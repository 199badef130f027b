package clinics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("clinic not found")

	// ErrInvalidRepresentative: el usuario no existe o no tiene rol clinic.
	ErrInvalidRepresentative = errors.New("invalid representative user")

	// ErrInUse: todavía hay animales asignados a la clínica.
	ErrInUse = errors.New("clinic has assigned animals")
)

// UserLinker mantiene user.clinic_id del lado de usuarios.
// LinkClinic devuelve ErrInvalidRepresentative si el usuario no sirve.
type UserLinker interface {
	LinkClinic(ctx context.Context, userID, clinicID string) error
	UnlinkClinic(ctx context.Context, userID string) error
}

// UsageChecker indica si algún animal referencia la clínica.
type UsageChecker interface {
	ClinicInUse(ctx context.Context, clinicID string) (bool, error)
}

type Service struct {
	repo  Repository
	users UserLinker
	usage UsageChecker
	now   func() time.Time
}

// NewService: users y usage pueden ser nil (tests, vetctl sin animales).
func NewService(repo Repository, users UserLinker, usage UsageChecker) *Service {
	return &Service{
		repo:  repo,
		users: users,
		usage: usage,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name    string
	Address string
	Phone   string
	// RepresentativeUserID opcional; debe ser un usuario con rol clinic.
	RepresentativeUserID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Clinic, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Clinic{}, ErrInvalidInput
	}

	now := s.now().UTC()
	c := Clinic{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Se vincula antes de insertar: un representante inválido no deja clínica huérfana.
	undo := undoFunc(noUndo)
	if rep := strings.TrimSpace(in.RepresentativeUserID); rep != "" {
		var err error
		if undo, err = s.linkUser(ctx, rep, c.ID); err != nil {
			return Clinic{}, err
		}
		c.UserID = rep
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Clinic{}, errors.Join(err, undo(ctx))
	}
	return c, nil
}

// UpdateInput: nil = no tocar. RepresentativeUserID "" desvincula.
type UpdateInput struct {
	Name                 *string
	Address              *string
	Phone                *string
	RepresentativeUserID *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Clinic, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Clinic{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Clinic{}, ErrInvalidInput
		}
		c.Name = name
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return Clinic{}, err
	}

	if in.RepresentativeUserID != nil {
		return s.setRepresentative(ctx, c, strings.TrimSpace(*in.RepresentativeUserID))
	}
	return c, nil
}

// setRepresentative mantiene clinic.user_id y user.clinic_id consistentes:
// desvincula al representante anterior y saca al nuevo de otra clínica.
func (s *Service) setRepresentative(ctx context.Context, c Clinic, userID string) (Clinic, error) {
	if c.UserID == userID {
		return c, nil
	}

	undo := undoFunc(noUndo)
	if userID != "" {
		var err error
		if undo, err = s.linkUser(ctx, userID, c.ID); err != nil {
			return Clinic{}, err
		}
	}
	if c.UserID != "" && s.users != nil {
		if err := s.users.UnlinkClinic(ctx, c.UserID); err != nil {
			return Clinic{}, errors.Join(err, undo(ctx))
		}
	}

	prevUser := c.UserID
	c.UserID = userID
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		undoErr := undo(ctx)
		if prevUser != "" && s.users != nil {
			undoErr = errors.Join(undoErr, s.users.LinkClinic(ctx, prevUser, c.ID))
		}
		return Clinic{}, errors.Join(err, undoErr)
	}
	return c, nil
}

type undoFunc func(ctx context.Context) error

func noUndo(context.Context) error { return nil }

// linkUser fija user.clinic_id y saca al usuario de la clínica que representaba antes.
// El undo devuelto revierte ambos lados si la escritura siguiente falla.
func (s *Service) linkUser(ctx context.Context, userID, clinicID string) (undoFunc, error) {
	if s.users == nil {
		return noUndo, nil
	}

	prev, err := s.repo.GetByUserID(ctx, userID)
	hadPrev := err == nil && prev.ID != clinicID
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.users.LinkClinic(ctx, userID, clinicID); err != nil {
		return nil, err
	}
	if !hadPrev {
		if err == nil {
			// ya representaba esta clínica
			return noUndo, nil
		}
		return func(ctx context.Context) error {
			return s.users.UnlinkClinic(ctx, userID)
		}, nil
	}

	prev.UserID = ""
	prev.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, prev); err != nil {
		return nil, errors.Join(err, s.users.LinkClinic(ctx, userID, prev.ID))
	}

	return func(ctx context.Context) error {
		restored := prev
		restored.UserID = userID
		restored.UpdatedAt = s.now().UTC()
		return errors.Join(
			s.repo.Update(ctx, restored),
			s.users.LinkClinic(ctx, userID, prev.ID),
		)
	}, nil
}

// Delete borra la clínica y desvincula a su representante.
// Con animales asignados devuelve ErrInUse: primero hay que reasignarlos.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.usage != nil {
		inUse, err := s.usage.ClinicInUse(ctx, c.ID)
		if err != nil {
			return err
		}
		if inUse {
			return ErrInUse
		}
	}

	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.UserID != "" && s.users != nil {
		return s.users.UnlinkClinic(ctx, c.UserID)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Clinic, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Clinic, error) {
	return s.repo.List(ctx)
}

// ClinicIDForUser resuelve la clínica de un usuario clinic por clinic.user_id.
func (s *Service) ClinicIDForUser(ctx context.Context, userID string) (string, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *Service) Exists(ctx context.Context, clinicID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, clinicID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
