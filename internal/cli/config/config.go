package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultServer is used until the user logs in somewhere else.
	DefaultServer = "http://localhost:8080"
	// PathEnv overrides the state file location, mainly for tests and scripts.
	PathEnv = "HISTCTL_CONFIG"
)

// Config is histctl's state file. It holds a bearer token and is written 0600.
type Config struct {
	Server string `yaml:"server"`
	Login  *Login `yaml:"login,omitempty"`
}

// Login is the session saved by `histctl login`.
type Login struct {
	Token     string    `yaml:"token"`
	Username  string    `yaml:"username"`
	UserID    string    `yaml:"user_id,omitempty"`
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
}

// pathOverride is set from the --config flag.
var pathOverride string

// SetPath makes every later Load and Save use path.
func SetPath(path string) { pathOverride = path }

// GetConfigPath resolves --config, then $HISTCTL_CONFIG, then ~/.histctl/config.yaml.
func GetConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".histctl", "config.yaml"), nil
}

// Load reads the state file; a missing file is an empty, logged-out state.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	return cfg, nil
}

// Save writes the state file, creating its directory if needed.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Token returns the saved bearer token while it is still valid at now.
// A zero ExpiresAt means the server did not say, so the token is tried anyway.
func (c *Config) Token(now time.Time) (string, bool) {
	if c.Login == nil || c.Login.Token == "" {
		return "", false
	}
	if !c.Login.ExpiresAt.IsZero() && !now.Before(c.Login.ExpiresAt) {
		return "", false
	}
	return c.Login.Token, true
}
