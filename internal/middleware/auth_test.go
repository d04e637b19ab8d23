package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(token string) (string, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", common.ErrInvalidToken
}

func TestTokenAuth(t *testing.T) {
	verifier := fakeVerifier{"good": "alice"}

	tests := []struct {
		name       string
		token      string
		wantCalled bool
		wantCode   int
		wantUser   string
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized},
		{name: "invalid token", token: "forged", wantCode: http.StatusUnauthorized},
		{name: "valid token", token: "good", wantCalled: true, wantCode: http.StatusOK, wantUser: "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser = GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tt.token != "" {
				req.Header.Set(common.AuthTokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()

			TokenAuth(verifier, zap.NewNop())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantUser, gotUser)
			if !tt.wantCalled {
				assert.JSONEq(t, `{"error":"Please authenticate using a valid token"}`, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUserIDFromContext(req.Context()))
	assert.Equal(t, "bob", GetUserIDFromContext(WithUserID(req.Context(), "bob")))
}

func TestFakeVerifierMatchesSentinel(t *testing.T) {
	_, err := fakeVerifier{}.Verify("x")
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}
