package memory

import (
	"context"
	"sync"
	"time"

	"github.com/torchtask/taskhub/internal/apperror"
	"github.com/torchtask/taskhub/internal/domain/user"
)

// UsersRepo is a mutex-guarded map store with the same error semantics as
// the postgres repo. Used by tests and local development.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{items: make(map[int64]user.User)}
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordDigest, name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return user.User{}, apperror.NewConflict("User already exists")
		}
	}

	r.nextID++
	now := time.Now().UTC()

	u := user.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordDigest,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, apperror.NewNotFound("User not found")
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, apperror.NewNotFound("User not found")
}

func (r *UsersRepo) Update(ctx context.Context, id int64, patch user.DigestPatch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, apperror.NewNotFound("User not found")
	}

	if patch.Email != nil {
		for otherID, other := range r.items {
			if otherID != id && other.Email == *patch.Email {
				return user.User{}, apperror.NewConflict("User already exists")
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordDigest != nil {
		u.PasswordHash = *patch.PasswordDigest
	}

	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("User not found")
	}

	delete(r.items, id)
	return nil
}
