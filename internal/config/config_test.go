package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParse_Defaults(t *testing.T) {
	opts, err := parse([]string{"-c", ""}, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", opts.Port)
	assert.Empty(t, opts.DatabaseDSN)
	assert.Equal(t, 72*time.Hour, opts.TokenTTL)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, time.Hour, opts.PurgeInterval)
	assert.Equal(t, 30*24*time.Hour, opts.PurgeRetention)
}

func TestParse_Flags(t *testing.T) {
	opts, err := parse([]string{
		"-a", "127.0.0.1:9090", "-d", "postgres://db", "-s", "secret", "-t", "0s", "-l", "debug", "-c", "",
	}, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", opts.Port)
	assert.Equal(t, "postgres://db", opts.DatabaseDSN)
	assert.Equal(t, "secret", opts.TokenSecret)
	assert.Equal(t, time.Duration(0), opts.TokenTTL)
	assert.Equal(t, "debug", opts.LogLevel)
}

func TestParse_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_address": "file:1",
		"database_dsn": "file-dsn",
		"token_secret": "file-secret",
		"token_ttl": "1h"
	}`), 0o600))

	opts, err := parse([]string{"-c", path, "-s", "flag-secret"}, envFrom(map[string]string{
		"DATABASE_DSN": "env-dsn",
		"TOKEN_TTL":    "15m",
	}))
	require.NoError(t, err)

	assert.Equal(t, "file:1", opts.Port)
	assert.Equal(t, "env-dsn", opts.DatabaseDSN)
	assert.Equal(t, "file-secret", opts.TokenSecret)
	assert.Equal(t, 15*time.Minute, opts.TokenTTL)
}

func TestParse_EnvOverridesFlag(t *testing.T) {
	opts, err := parse([]string{"-c", "", "-s", "flag-secret", "-d", "flag-dsn"}, envFrom(map[string]string{
		"TOKEN_SECRET": "env-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", opts.TokenSecret)
	assert.Equal(t, "flag-dsn", opts.DatabaseDSN)
}

func TestParse_PortEnv(t *testing.T) {
	opts, err := parse([]string{"-c", ""}, envFrom(map[string]string{"PORT": "5000"}))
	require.NoError(t, err)
	assert.Equal(t, ":5000", opts.Port)

	opts, err = parse([]string{"-c", ""}, envFrom(map[string]string{"PORT": "5000", "SERVER_ADDRESS": "0.0.0.0:7000"}))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", opts.Port)
}

func TestParse_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	_, err := parse([]string{"-c", bad}, envFrom(nil))
	assert.ErrorContains(t, err, "error while parsing config file")

	_, err = parse([]string{"-c", ""}, envFrom(map[string]string{"TOKEN_TTL": "forever"}))
	assert.ErrorContains(t, err, "invalid TOKEN_TTL")

	_, err = parse([]string{"-unknown"}, envFrom(nil))
	assert.Error(t, err)
}
