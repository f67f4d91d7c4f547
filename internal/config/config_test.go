package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: debug
log:
  level: debug
  format: text
jwt:
  secret: "`+testSecret+`"
database:
  driver: sqlite
  database: /tmp/history.db
history:
  max_limit: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 50, cfg.History.MaxLimit)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Timeout)
	assert.Equal(t, 30*time.Second, cfg.GetReadTimeout())
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "`+testSecret+`"
database:
  host: db.local
  database: history
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 200, cfg.History.MaxLimit)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "`+testSecret+`"
database:
  driver: sqlite
  database: /tmp/history.db
`)
	t.Setenv("HIST_HISTORY_MAX_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.MaxLimit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			Log:      LogConfig{Level: "info", Format: "json"},
			JWT:      JWTConfig{Secret: testSecret},
			Database: DatabaseConfig{Driver: DriverMySQL, Host: "localhost", Database: "history"},
			History:  HistoryConfig{MaxLimit: 100},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, errContains: "invalid server port"},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "test" }, errContains: "invalid server mode"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, errContains: "invalid log level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, errContains: "invalid log format"},
		{name: "short secret", mutate: func(c *Config) { c.JWT.Secret = "short" }, errContains: "at least 32"},
		{name: "mysql without host", mutate: func(c *Config) { c.Database.Host = "" }, errContains: "database.host"},
		{name: "sqlite without file", mutate: func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.Database = ""
		}, errContains: "sqlite file"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, errContains: "unsupported database driver"},
		{name: "zero max limit", mutate: func(c *Config) { c.History.MaxLimit = 0 }, errContains: "max_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
