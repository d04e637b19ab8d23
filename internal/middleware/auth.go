// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/notekeeper/internal/common"
	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

// unauthenticatedMessage is returned for both missing and invalid tokens.
const unauthenticatedMessage = "Please authenticate using a valid token"

// TokenVerifier resolves a token to the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenAuth is a middleware that enforces token authentication.
//
// It reads the token from the auth-token header and verifies it. On success
// the identity id is stored in the request context and can be read
// downstream with GetUserIDFromContext. A missing or invalid token ends the
// request with 401 and the next handler is never called.
func TokenAuth(v TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(common.AuthTokenHeader)
			if token == "" {
				writeUnauthenticated(w)
				return
			}

			userID, err := v.Verify(token)
			if err != nil {
				log.Debug("rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				writeUnauthenticated(w)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": unauthenticatedMessage})
}
