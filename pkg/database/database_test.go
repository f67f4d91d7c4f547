package database

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvyanru/chat-history/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteConfig(path string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Database: path,
	}
}

func TestEnsureReady_Idempotent(t *testing.T) {
	ctx := context.Background()
	c := New(sqliteConfig(filepath.Join(t.TempDir(), "history.db")), discardLogger())
	defer c.Close()

	require.NoError(t, c.EnsureReady(ctx))
	first, err := c.Driver(ctx)
	require.NoError(t, err)

	require.NoError(t, c.EnsureReady(ctx))
	second, err := c.Driver(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NoError(t, c.Ping(ctx))
}

func TestEnsureReady_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := New(sqliteConfig(filepath.Join(t.TempDir(), "history.db")), discardLogger())
	defer c.Close()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.EnsureReady(ctx)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	drv, err := c.Driver(ctx)
	require.NoError(t, err)
	for i := 0; i < workers; i++ {
		again, err := c.Driver(ctx)
		require.NoError(t, err)
		assert.Same(t, drv, again)
	}
}

func TestEnsureReady_RetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "not-yet")
	c := New(sqliteConfig(filepath.Join(dir, "history.db")), discardLogger())
	defer c.Close()

	require.Error(t, c.EnsureReady(ctx))

	require.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, c.EnsureReady(ctx))
}

func TestEnsureReady_AfterClose(t *testing.T) {
	ctx := context.Background()
	c := New(sqliteConfig(filepath.Join(t.TempDir(), "history.db")), discardLogger())

	require.NoError(t, c.EnsureReady(ctx))
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.EnsureReady(ctx), ErrClosed)
	_, err := c.Driver(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, c.Close())
}

func TestClose_LogsOnce(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	c := New(sqliteConfig(filepath.Join(t.TempDir(), "history.db")), slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, c.EnsureReady(ctx))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Equal(t, 1, strings.Count(buf.String(), "database closed"))
}

func TestMigrationCreatesTables(t *testing.T) {
	ctx := context.Background()
	c, err := NewClient(ctx, sqliteConfig(filepath.Join(t.TempDir(), "history.db")), discardLogger())
	require.NoError(t, err)
	defer c.Close()

	drv, err := c.Driver(ctx)
	require.NoError(t, err)

	for _, table := range []string{"users", "chats", "chat_items"} {
		var n int
		row := drv.DB().QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, row.Scan(&n))
		assert.Equal(t, 1, n, "table %s", table)
	}
}

func TestDataSource(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		wantDriver  string
		wantDialect string
		dsnContains []string
		wantErr     bool
	}{
		{
			name: "mysql",
			cfg: config.DatabaseConfig{
				Driver: config.DriverMySQL, Host: "db.local", Port: 3306,
				User: "hist", Password: "secret", Database: "history",
			},
			wantDriver:  "mysql",
			wantDialect: dialect.MySQL,
			dsnContains: []string{"hist:secret@tcp(db.local:3306)/history", "parseTime=true", "charset=utf8mb4"},
		},
		{
			name:        "sqlite path",
			cfg:         sqliteConfig("/var/lib/history.db"),
			wantDriver:  "sqlite",
			wantDialect: dialect.SQLite,
			dsnContains: []string{"file:/var/lib/history.db?", "foreign_keys(1)"},
		},
		{
			name:        "sqlite dsn kept as is",
			cfg:         sqliteConfig("file:history.db?mode=ro"),
			wantDriver:  "sqlite",
			wantDialect: dialect.SQLite,
			dsnContains: []string{"file:history.db?mode=ro"},
		},
		{
			name:    "unknown",
			cfg:     config.DatabaseConfig{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driverName, dialectName, dsn, err := dataSource(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driverName)
			assert.Equal(t, tt.wantDialect, dialectName)
			for _, s := range tt.dsnContains {
				assert.True(t, strings.Contains(dsn, s), "dsn %q should contain %q", dsn, s)
			}
		})
	}
}
