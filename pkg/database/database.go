package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-sql-driver/mysql"

	"github.com/lvyanru/chat-history/internal/config"
	"github.com/lvyanru/chat-history/internal/ent/migrate"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by a Client after Close.
var ErrClosed = errors.New("database client is closed")

// Client is the process wide database handle. The connection is opened,
// pinged and migrated on the first EnsureReady call; later calls are no-ops.
// A failed attempt leaves the client unconnected so the next call retries.
type Client struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger

	ready atomic.Pointer[entsql.Driver]

	mu     sync.Mutex
	closed bool
}

// New creates a client without connecting.
func New(cfg config.DatabaseConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// NewClient creates a client and connects it right away.
func NewClient(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Client, error) {
	c := New(cfg, logger)
	if err := c.EnsureReady(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// EnsureReady connects the client if it is not connected yet. It is safe to
// call from many request handlers at once; only one of them opens the pool.
func (c *Client) EnsureReady(ctx context.Context) error {
	if c.ready.Load() != nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	// Another caller may have finished while we waited for the lock.
	if c.ready.Load() != nil {
		return nil
	}

	drv, err := c.open(ctx)
	if err != nil {
		return err
	}
	c.ready.Store(drv)
	return nil
}

// Driver returns the ent SQL driver, connecting first if needed.
func (c *Client) Driver(ctx context.Context) (*entsql.Driver, error) {
	if err := c.EnsureReady(ctx); err != nil {
		return nil, err
	}
	drv := c.ready.Load()
	if drv == nil {
		return nil, ErrClosed
	}
	return drv, nil
}

// Ping checks that the database answers.
func (c *Client) Ping(ctx context.Context) error {
	drv, err := c.Driver(ctx)
	if err != nil {
		return err
	}
	return drv.DB().PingContext(ctx)
}

// Close 关闭database连接
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	drv := c.ready.Swap(nil)
	if drv == nil {
		return nil
	}
	if err := drv.Close(); err != nil {
		c.logger.Error("failed to close database", "error", err)
		return err
	}
	c.logger.Info("database closed")
	return nil
}

func (c *Client) open(ctx context.Context) (*entsql.Driver, error) {
	driverName, dialectName, dsn, err := dataSource(c.cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 配置连接池
	if c.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}
	if c.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	if c.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	drv := entsql.OpenDB(dialectName, db)

	// 自动迁移 schema
	if err := migrate.NewSchema(drv).Create(ctx); err != nil {
		drv.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	c.logger.Info("database connected",
		"driver", c.cfg.Driver,
		"host", c.cfg.Host,
		"database", c.cfg.Database,
		"max_open_conns", c.cfg.MaxOpenConns,
		"max_idle_conns", c.cfg.MaxIdleConns,
	)

	return drv, nil
}

// dataSource maps the configuration to a database/sql driver name, an ent
// dialect and a DSN.
func dataSource(cfg config.DatabaseConfig) (driverName, dialectName, dsn string, err error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		mcfg := mysql.NewConfig()
		mcfg.User = cfg.User
		mcfg.Passwd = cfg.Password
		mcfg.Net = "tcp"
		mcfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mcfg.DBName = cfg.Database
		mcfg.ParseTime = true
		mcfg.Loc = time.Local
		mcfg.Params = map[string]string{"charset": "utf8mb4"}
		return "mysql", dialect.MySQL, mcfg.FormatDSN(), nil
	case config.DriverSQLite:
		dsn := cfg.Database
		if !strings.HasPrefix(dsn, "file:") {
			dsn = "file:" + dsn
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
		return "sqlite", dialect.SQLite, dsn, nil
	default:
		return "", "", "", fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}
