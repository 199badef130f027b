package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"app-vet/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if f.OwnerUserID != "" && a.OwnerUserID != f.OwnerUserID {
			continue
		}
		if f.ClinicID != "" && a.ClinicID != f.ClinicID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Unclaimed && a.Claimed() {
			continue
		}
		out = append(out, a)
	}

	// Más nuevos primero, id como desempate (igual que ORDER BY en SQL).
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Claim hace check-and-set bajo el mismo lock de escritura.
func (r *animalRepo) Claim(ctx context.Context, id, clinicID string, at time.Time) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	if a.Status != animals.StatusWaiting || a.Claimed() {
		return animals.Animal{}, animals.ErrConflict
	}

	a.ClinicID = clinicID
	a.Status = animals.StatusAwaitingScheduling
	a.Version++
	a.UpdatedAt = at
	r.byID[id] = a
	return a, nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[a.ID]
	if !ok {
		return animals.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return animals.ErrConflict
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) Delete(ctx context.Context, id string, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return animals.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return animals.ErrConflict
	}
	delete(r.byID, id)
	return nil
}
