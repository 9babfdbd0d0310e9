package memory

import (
	"context"
	"strings"

	"pet-care-tracker/internal/domain/users"
)

type UsersRepo struct {
	s *Store
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return 0, users.ErrDuplicateUsername
		}
	}
	u.ID = r.s.nextID()
	r.s.users[u.ID] = u
	return u.ID, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return users.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && strings.EqualFold(existing.Username, u.Username) {
			return users.ErrDuplicateUsername
		}
	}
	r.s.users[u.ID] = u
	return nil
}
