package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds PostgreSQL connection configuration
type Config struct {
	URL         string
	MaxConns    int32
	PingTimeout time.Duration
}

// Client wraps a verified pgx connection pool
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a pool and verifies it with a ping
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgres: url is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return &Client{pool: pool}, nil
}

// Pool returns the underlying pool for repository use
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Shutdown closes the pool
func (c *Client) Shutdown(context.Context) error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}
