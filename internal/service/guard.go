package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
)

// LoadFunc fetches a resource by id.
type LoadFunc[T models.Owned] func(ctx context.Context, id string) (T, error)

// Authorize loads the resource id and checks that identityID owns it. It
// fails with common.ErrNotFound when the resource does not exist and with
// common.ErrForbidden when it belongs to someone else.
func Authorize[T models.Owned](ctx context.Context, load LoadFunc[T], id, identityID string) (T, error) {
	var zero T
	if identityID == "" {
		return zero, common.ErrUnauthenticated
	}
	v, err := load(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return zero, common.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", id, err)
	}
	if v.Base().OwnerID != identityID {
		return zero, common.ErrForbidden
	}
	return v, nil
}
