package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/notekeeper/internal/middleware"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/atinyakov/notekeeper/internal/service"
	"github.com/atinyakov/notekeeper/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ResourceService is the per-kind CRUD surface the handlers need.
type ResourceService[T models.Owned] interface {
	Create(ctx context.Context, ownerID string, v T) (T, error)
	List(ctx context.Context, ownerID string) ([]T, error)
	Update(ctx context.Context, ownerID, id string, patch service.Patch[T]) (T, error)
	Delete(ctx context.Context, ownerID, id string) (T, error)
}

// Input is a validated create body that builds a new resource.
type Input[T any] interface {
	ToModel() T
}

// ResourceHandler serves the list, create, update and delete endpoints of
// one resource kind. In is the create body, P the partial update body.
type ResourceHandler[T models.Owned, In Input[T], P service.Patch[T]] struct {
	Kind    models.Kind
	Service ResourceService[T]
	Logger  *zap.Logger
}

// NewResourceHandler returns a handler for kind backed by svc.
func NewResourceHandler[T models.Owned, In Input[T], P service.Patch[T]](
	kind models.Kind,
	svc ResourceService[T],
	log *zap.Logger,
) *ResourceHandler[T, In, P] {
	return &ResourceHandler[T, In, P]{Kind: kind, Service: svc, Logger: log}
}

// List responds with every resource the caller owns.
func (h *ResourceHandler[T, In, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create stores a new resource owned by the caller and responds with 201.
func (h *ResourceHandler[T, In, P]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if !decodeBody(w, r, &in) {
		return
	}
	if err := validation.Struct(in); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	created, err := h.Service.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), in.ToModel())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a resource the caller owns.
func (h *ResourceHandler[T, In, P]) Update(w http.ResponseWriter, r *http.Request) {
	var patch P
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := validation.Struct(patch); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a resource the caller owns and echoes it back.
func (h *ResourceHandler[T, In, P]) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      successMessage(h.Kind),
		string(h.Kind): deleted,
	})
}

// Routes mounts the handler on r: GET and POST on "/", PUT and DELETE on
// "/{id}".
func (h *ResourceHandler[T, In, P]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func successMessage(kind models.Kind) string {
	switch kind {
	case models.KindNote:
		return "Note has been deleted"
	case models.KindTodo:
		return "Todo has been deleted"
	case models.KindWebSearch:
		return "Search has been deleted"
	default:
		return "Resource has been deleted"
	}
}
