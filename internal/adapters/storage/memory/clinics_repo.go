package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"app-vet/internal/domain/clinics"
)

type clinicRepo struct {
	mu   sync.RWMutex
	byID map[string]clinics.Clinic
}

func NewClinicRepo() clinics.Repository {
	return &clinicRepo{
		byID: make(map[string]clinics.Clinic),
	}
}

func (r *clinicRepo) Create(ctx context.Context, c clinics.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("clinic id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("clinic already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clinicRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	return c, nil
}

func (r *clinicRepo) GetByUserID(ctx context.Context, userID string) (clinics.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if userID == "" {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	for _, c := range r.byID {
		if c.UserID == userID {
			return c, nil
		}
	}
	return clinics.Clinic{}, clinics.ErrNotFound
}

func (r *clinicRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clinics.Clinic, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *clinicRepo) Update(ctx context.Context, c clinics.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return clinics.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clinicRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return clinics.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
