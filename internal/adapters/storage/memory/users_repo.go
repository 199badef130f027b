package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"app-vet/internal/domain/users"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byUsername map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byUsername: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return users.ErrUsernameTaken
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

// Update no permite cambiar username.
func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[u.ID]
	if !ok {
		return users.ErrNotFound
	}
	u.Username = cur.Username
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
