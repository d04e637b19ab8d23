package client

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/notekeeper/internal/certgen"
	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripperFunc lets tests stub the transport of an http.Client.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripperFunc) *Client {
	return New("http://example.com/", &http.Client{Transport: fn, Timeout: time.Second})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_LoginStoresToken(t *testing.T) {
	var gotPath, gotContentType, gotBody string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		gotContentType = req.Header.Get("Content-Type")
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return jsonResponse(http.StatusOK, `{"authToken":"tok-1"}`), nil
	})

	token, err := c.Login(context.Background(), models.LoginInput{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "tok-1", c.Token())
	assert.Equal(t, "/api/auth/login", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"email":"a@example.com","password":"pw"}`, gotBody)
}

func TestClient_AttachesToken(t *testing.T) {
	var gotToken string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotToken = req.Header.Get(common.AuthTokenHeader)
		return jsonResponse(http.StatusOK, `[]`), nil
	})
	c.SetToken("tok-2")

	items, err := Notes(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "tok-2", gotToken)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		wantMsg  string
	}{
		{name: "unauthenticated", status: http.StatusUnauthorized, body: `{"error":"Please authenticate using a valid token"}`, sentinel: common.ErrUnauthenticated, wantMsg: "Please authenticate"},
		{name: "forbidden", status: http.StatusForbidden, body: `{"error":"not allowed"}`, sentinel: common.ErrForbidden, wantMsg: "not allowed"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"not found"}`, sentinel: common.ErrNotFound, wantMsg: "not found"},
		{name: "conflict", status: http.StatusConflict, body: `{"error":"a user with this email already exists"}`, sentinel: common.ErrDuplicateEmail, wantMsg: "already exists"},
		{name: "plain text body", status: http.StatusInternalServerError, body: "internal error\n", wantMsg: "server error: internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})

			_, err := c.GetUser(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClient_ValidationFields(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":"validation failed","errors":[{"field":"title","message":"is required"}]}`), nil
	})

	_, err := Todos(c).Create(context.Background(), models.TodoInput{})
	require.ErrorIs(t, err, common.ErrValidation)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []common.FieldError{{Field: "title", Message: "is required"}}, apiErr.Fields)
}

func TestClient_NetworkError(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("network down")
	})

	_, err := WebSearches(c).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}

func TestResource_DeleteDecodesItem(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotMethod, gotPath = req.Method, req.URL.Path
		return jsonResponse(http.StatusOK, `{"success":"Todo has been deleted","todo":{"_id":"t-1","title":"buy milk"}}`), nil
	})

	deleted, err := Todos(c).Delete(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/todos/t-1", gotPath)
	assert.Equal(t, "t-1", deleted.ID)
	assert.Equal(t, "buy milk", deleted.Title)
}

func TestClient_ExtractWebSearch(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotMethod, gotPath = req.Method, req.URL.Path
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return jsonResponse(http.StatusCreated, `{"_id":"w-1","title":"go","content":"Go is fun.","reference_link":"https://go.dev","timestamp":"2026-01-02T03:04:05Z"}`), nil
	})

	ws, err := c.ExtractWebSearch(context.Background(), models.WebSearchExtractInput{Title: "go", URL: "https://go.dev"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/websearch/extract", gotPath)
	assert.JSONEq(t, `{"title":"go","url":"https://go.dev"}`, gotBody)
	assert.Equal(t, "Go is fun.", ws.Content)
	assert.Equal(t, 2026, ws.CreatedAt.Year())
}

func TestNewHTTPClient(t *testing.T) {
	c, err := NewHTTPClient("")
	require.NoError(t, err)
	assert.Nil(t, c.Transport)

	_, err = NewHTTPClient("/does/not/exist.crt")
	assert.Error(t, err)
}

func TestNewHTTPClient_TrustsGeneratedCert(t *testing.T) {
	certPEM, keyPEM, err := certgen.GenerateSelfSigned([]string{"127.0.0.1"}, time.Hour)
	require.NoError(t, err)
	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	require.NoError(t, err)
	certPath, _, err := certgen.WriteKeyPair(filepath.Join(t.TempDir(), "certs"), certPEM, keyPEM)
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u-1","name":"Alice"}`))
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{pair}}
	srv.StartTLS()
	defer srv.Close()

	httpClient, err := NewHTTPClient(certPath)
	require.NoError(t, err)

	u, err := New(srv.URL, httpClient).GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = New(srv.URL, &http.Client{Timeout: time.Second}).GetUser(context.Background())
	assert.Error(t, err)
}
