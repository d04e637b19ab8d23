// Package memory provides in-process repositories used when no database
// DSN is configured, and by end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
)

// UserRepository keeps users in a map keyed by id.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func (r *UserRepository) UserExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.findByEmail(email)
	return ok, nil
}

func (r *UserRepository) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findByEmail(u.Email); ok {
		return common.ErrDuplicateEmail
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.findByEmail(email)
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) findByEmail(email string) (models.User, bool) {
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// ResourceRepository keeps one kind of owned resource. Values are copied
// on the way in and out so callers never share memory with the store.
type ResourceRepository[T models.Owned] struct {
	mu    sync.RWMutex
	items map[string]T
	clone func(T) T
}

// NewResourceRepository returns an empty store; clone must return a deep
// copy of its argument.
func NewResourceRepository[T models.Owned](clone func(T) T) *ResourceRepository[T] {
	return &ResourceRepository[T]{items: make(map[string]T), clone: clone}
}

func NewNoteRepository() *ResourceRepository[*models.Note] {
	return NewResourceRepository(func(n *models.Note) *models.Note { c := *n; return &c })
}

func NewTodoRepository() *ResourceRepository[*models.Todo] {
	return NewResourceRepository(func(t *models.Todo) *models.Todo { c := *t; return &c })
}

func NewWebSearchRepository() *ResourceRepository[*models.WebSearch] {
	return NewResourceRepository(func(w *models.WebSearch) *models.WebSearch { c := *w; return &c })
}

func (r *ResourceRepository[T]) Create(_ context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[v.Base().ID] = r.clone(v)
	return nil
}

// ListByOwner returns the owner's resources, oldest first.
func (r *ResourceRepository[T]) ListByOwner(_ context.Context, ownerID string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0)
	for _, v := range r.items {
		if v.Base().OwnerID == ownerID {
			out = append(out, r.clone(v))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().CreatedAt.Before(out[j].Base().CreatedAt)
	})
	return out, nil
}

func (r *ResourceRepository[T]) GetByID(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	return r.clone(v), nil
}

func (r *ResourceRepository[T]) Update(_ context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.Base().ID]; !ok {
		return common.ErrNotFound
	}
	r.items[v.Base().ID] = r.clone(v)
	return nil
}

func (r *ResourceRepository[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
