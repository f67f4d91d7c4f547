package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Missing(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, cfg.Server)

	_, ok := cfg.Token(time.Now())
	assert.False(t, ok)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(PathEnv, path)

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	want := &Config{
		Server: "http://history.internal:8080",
		Login: &Login{
			Token:     "token",
			Username:  "alice",
			UserID:    "0b7c6f8e-3f0e-4d3a-9a61-2f1f6f7b1a01",
			ExpiresAt: expires,
		},
	}
	require.NoError(t, want.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want.Server, got.Server)
	require.NotNil(t, got.Login)
	assert.Equal(t, "alice", got.Login.Username)
	assert.True(t, expires.Equal(got.Login.ExpiresAt))
}

func TestToken(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		login  *Login
		wantOK bool
	}{
		{name: "logged out", login: nil},
		{name: "empty token", login: &Login{Username: "alice"}},
		{name: "valid", login: &Login{Token: "t", ExpiresAt: now.Add(time.Hour)}, wantOK: true},
		{name: "expired", login: &Login{Token: "t", ExpiresAt: now.Add(-time.Second)}},
		{name: "expires exactly now", login: &Login{Token: "t", ExpiresAt: now}},
		{name: "unknown expiry", login: &Login{Token: "t"}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: DefaultServer, Login: tt.login}
			token, ok := cfg.Token(now)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, "t", token)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0600))
	t.Setenv(PathEnv, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestGetConfigPath_Precedence(t *testing.T) {
	t.Setenv(PathEnv, "/from/env.yaml")
	p, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.yaml", p)

	SetPath("/from/flag.yaml")
	t.Cleanup(func() { SetPath("") })
	p, err = GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.yaml", p)
}
