package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration
type Config struct {
	URL         string
	PingTimeout time.Duration
}

// Client wraps a verified go-redis client
type Client struct {
	rdb *goredis.Client
}

// NewClient parses the URL, connects and pings
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis: url is required")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Redis returns the underlying client
func (c *Client) Redis() *goredis.Client {
	return c.rdb
}

// Shutdown closes the client
func (c *Client) Shutdown(context.Context) error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
