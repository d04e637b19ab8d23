// Package http provides HTTP handlers and routing for the notekeeper API.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/notekeeper/internal/middleware"
	"github.com/atinyakov/notekeeper/internal/models"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates an identity and returns a token for it.
	Register(ctx context.Context, in models.RegisterInput) (string, error)
	// Login checks credentials and returns a token.
	Login(ctx context.Context, in models.LoginInput) (string, error)
	// GetUser returns the profile of the given identity.
	GetUser(ctx context.Context, identityID string) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration, login and profile lookup.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	Logger      *zap.Logger
}

// NewAuthHandler returns an AuthHandler backed by svc.
func NewAuthHandler(svc AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{AuthService: svc, Logger: log}
}

// Register handles user registration requests. It expects a JSON body with
// name, email and password and responds with {"authToken": "..."}.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterInput
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{AuthToken: token})
}

// Login handles credential login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginInput
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{AuthToken: token})
}

// GetUser returns the authenticated user's profile.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.GetUser(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
