// Package client is the HTTP API client for notekeeper together with the
// per-domain state containers and session handling used by the shell.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/notekeeper/internal/certgen"
	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Fields  []common.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// Is maps the status code onto the shared sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == common.ErrValidation
	case http.StatusUnauthorized:
		return target == common.ErrUnauthenticated
	case http.StatusForbidden:
		return target == common.ErrForbidden
	case http.StatusNotFound:
		return target == common.ErrNotFound
	case http.StatusConflict:
		return target == common.ErrDuplicateEmail
	}
	return false
}

// Client talks to the notekeeper API and attaches the session token to
// every request.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a Client for baseURL. A nil httpClient selects one with a
// ten second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Token returns the current token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the token sent with each request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Register creates an account and stores the returned token on c.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.AuthToken)
	return resp.AuthToken, nil
}

// Login exchanges credentials for a token and stores it on c.
func (c *Client) Login(ctx context.Context, in models.LoginInput) (string, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.AuthToken)
	return resp.AuthToken, nil
}

// GetUser returns the profile of the logged-in user.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/getuser", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExtractWebSearch asks the server to fetch in.URL and save its opening
// paragraphs as a web-search entry.
func (c *Client) ExtractWebSearch(ctx context.Context, in models.WebSearchExtractInput) (*models.WebSearch, error) {
	var ws models.WebSearch
	if err := c.do(ctx, http.MethodPost, "/api/websearch/extract", in, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthTokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var body struct {
		Error  string              `json:"error"`
		Errors []common.FieldError `json:"errors"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Errors
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

// NewHTTPClient returns an http.Client that trusts only the certificate in
// caFile. An empty caFile yields a client using the system roots.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: 10 * time.Second}, nil
	}
	pool, err := certgen.LoadCertPool(caFile)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
		},
	}, nil
}
