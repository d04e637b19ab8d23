package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/google/uuid"
)

// ResourceRepository defines the persistence operations for one kind of
// owned resource.
type ResourceRepository[T models.Owned] interface {
	Create(ctx context.Context, v T) error
	// ListByOwner returns only the resources owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	// GetByID returns common.ErrNotFound for unknown or deleted ids.
	GetByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

// Patch is a partial update for a resource of type T.
type Patch[T any] interface {
	Apply(T)
}

// ResourceService implements the CRUD operations for one resource kind,
// enforcing ownership on every mutation.
type ResourceService[T models.Owned] struct {
	repo ResourceRepository[T]
	now  func() time.Time
}

// NewResourceService constructs a ResourceService over repo.
func NewResourceService[T models.Owned](repo ResourceRepository[T]) *ResourceService[T] {
	return &ResourceService[T]{repo: repo, now: time.Now}
}

// Create stores v as a new resource owned by ownerID. Any id, owner or
// creation time already on v is overwritten.
func (s *ResourceService[T]) Create(ctx context.Context, ownerID string, v T) (T, error) {
	var zero T
	if ownerID == "" {
		return zero, common.ErrUnauthenticated
	}
	base := v.Base()
	base.ID = uuid.NewString()
	base.OwnerID = ownerID
	base.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, v); err != nil {
		return zero, fmt.Errorf("create: %w", err)
	}
	return v, nil
}

// List returns the resources owned by ownerID.
func (s *ResourceService[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return items, nil
}

// Update applies patch to the resource id after checking that ownerID owns it.
func (s *ResourceService[T]) Update(ctx context.Context, ownerID, id string, patch Patch[T]) (T, error) {
	v, err := Authorize(ctx, s.repo.GetByID, id, ownerID)
	if err != nil {
		return v, err
	}
	patch.Apply(v)
	if err := s.repo.Update(ctx, v); err != nil {
		var zero T
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrNotFound
		}
		return zero, fmt.Errorf("update: %w", err)
	}
	return v, nil
}

// Delete removes the resource id after checking that ownerID owns it and
// returns the deleted resource.
func (s *ResourceService[T]) Delete(ctx context.Context, ownerID, id string) (T, error) {
	v, err := Authorize(ctx, s.repo.GetByID, id, ownerID)
	if err != nil {
		return v, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		var zero T
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrNotFound
		}
		return zero, fmt.Errorf("delete: %w", err)
	}
	return v, nil
}
