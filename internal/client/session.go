package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSessionFile is where the shell keeps its token between runs.
const DefaultSessionFile = "session.json"

// Session persists the auth token on disk. An empty or missing file means
// the user is logged out.
type Session struct {
	Path string
}

type sessionFile struct {
	Token string `json:"authToken"`
}

// Load returns the stored token, or "" if there is none.
func (s *Session) Load() (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	var sf sessionFile
	if err := json.NewDecoder(f).Decode(&sf); err != nil {
		return "", fmt.Errorf("read session %s: %w", s.Path, err)
	}
	return sf.Token, nil
}

// Save writes token to the session file, readable only by the owner.
func (s *Session) Save(token string) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(sessionFile{Token: token})
}

// Clear logs out by removing the session file.
func (s *Session) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
