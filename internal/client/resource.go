package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/atinyakov/notekeeper/internal/models"
)

// Resource is the typed API surface of one resource collection.
type Resource[T models.Owned] struct {
	c    *Client
	path string
	kind models.Kind
}

// Notes returns the notes collection of c.
func Notes(c *Client) *Resource[*models.Note] {
	return &Resource[*models.Note]{c: c, path: "/api/notes", kind: models.KindNote}
}

// Todos returns the todos collection of c.
func Todos(c *Client) *Resource[*models.Todo] {
	return &Resource[*models.Todo]{c: c, path: "/api/todos", kind: models.KindTodo}
}

// WebSearches returns the saved web-search collection of c.
func WebSearches(c *Client) *Resource[*models.WebSearch] {
	return &Resource[*models.WebSearch]{c: c, path: "/api/websearch", kind: models.KindWebSearch}
}

// List fetches every item the logged-in user owns.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create posts in and returns the stored item.
func (r *Resource[T]) Create(ctx context.Context, in any) (T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, in, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update sends a partial update for id and returns the stored item.
func (r *Resource[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id), patch, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete removes id and returns the deleted item.
func (r *Resource[T]) Delete(ctx context.Context, id string) (T, error) {
	var body map[string]json.RawMessage
	if err := r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, &body); err != nil {
		var zero T
		return zero, err
	}
	var out T
	if raw, ok := body[string(r.kind)]; ok {
		if err := json.Unmarshal(raw, &out); err != nil {
			var zero T
			return zero, fmt.Errorf("decode response: %w", err)
		}
	}
	return out, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
