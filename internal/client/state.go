package client

import (
	"context"
	"sync"

	"github.com/atinyakov/notekeeper/internal/models"
)

// API is the server surface a State needs. *Resource implements it.
type API[T models.Owned] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in any) (T, error)
	Update(ctx context.Context, id string, patch any) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// State is the client-side copy of one data domain. It is refreshed with
// Fetch and changed only after the server confirms a mutation.
type State[T models.Owned] struct {
	api API[T]

	mu    sync.Mutex
	items []T
}

// NewState returns an empty State backed by api.
func NewState[T models.Owned](api API[T]) *State[T] {
	return &State[T]{api: api}
}

// Fetch replaces the local items with the server's list.
func (s *State[T]) Fetch(ctx context.Context) error {
	items, err := s.api.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a snapshot of the local items.
func (s *State[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the local item with id.
func (s *State[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Add creates an item on the server and appends it locally.
func (s *State[T]) Add(ctx context.Context, in any) (T, error) {
	created, err := s.api.Create(ctx, in)
	if err != nil {
		return created, err
	}
	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	return created, nil
}

// Edit updates an item on the server and replaces the local copy.
func (s *State[T]) Edit(ctx context.Context, id string, patch any) (T, error) {
	updated, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return updated, err
	}
	s.mu.Lock()
	if i := s.index(id); i >= 0 {
		s.items[i] = updated
	} else {
		s.items = append(s.items, updated)
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes an item on the server and drops it locally.
func (s *State[T]) Remove(ctx context.Context, id string) error {
	if _, err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if i := s.index(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// Reset drops every local item, used on logout.
func (s *State[T]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

func (s *State[T]) index(id string) int {
	for i, v := range s.items {
		if v.Base().ID == id {
			return i
		}
	}
	return -1
}
