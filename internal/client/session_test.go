package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LoadMissing(t *testing.T) {
	s := &Session{Path: filepath.Join(t.TempDir(), "session.json")}

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := &Session{Path: path}

	require.NoError(t, s.Save("tok-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.Clear())
}

func TestSession_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	_, err := (&Session{Path: path}).Load()
	assert.Error(t, err)
}
